package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerDraftRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/draft", handler.GetDraftStatus)
	mux.HandleFunc("GET /v1/draft/picks", handler.ListDraftPicks)
	mux.HandleFunc("POST /v1/draft/picks", handler.SubmitDraftPick)
	mux.HandleFunc("GET /v1/draft/available-players", handler.ListAvailablePlayers)
}

func registerManagerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/managers", handler.ListManagers)
	mux.HandleFunc("GET /v1/managers/{managerID}", handler.GetManager)
	mux.HandleFunc("GET /v1/managers/{managerID}/lineups", handler.ListLineupHistory)
	mux.HandleFunc("GET /v1/managers/{managerID}/lineups/{date}", handler.GetResolvedLineup)
	mux.HandleFunc("PUT /v1/managers/{managerID}/lineups/{date}", handler.SubmitLineup)
	mux.HandleFunc("GET /v1/managers/{managerID}/scores", handler.ListManagerScores)
	mux.HandleFunc("GET /v1/managers/{managerID}/scores/{date}/breakdown", handler.GetScoreBreakdown)
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/lineups/{date}", handler.GetLineupBoard)
	mux.HandleFunc("GET /v1/lineups/{date}/lock", handler.GetLineupLock)
}

func registerScoringRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/games/{gameID}/stats", handler.IngestGameStats)
	mux.HandleFunc("POST /v1/games/{gameID}/stats/csv", handler.IngestGameStatsCSV)
	mux.HandleFunc("GET /v1/games/{gameID}/scores", handler.ListGameScores)
	mux.HandleFunc("GET /v1/scores/{date}", handler.ListScoresByDate)
	mux.HandleFunc("POST /v1/scores/recompute", handler.RecomputeScores)
}

func registerCompetitionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
	mux.HandleFunc("POST /v1/tournament/nominations", handler.NominateTournamentPlayer)
	mux.HandleFunc("DELETE /v1/tournament/nominations/{managerID}", handler.WithdrawTournamentNomination)
	mux.HandleFunc("GET /v1/tournament/bracket", handler.GetTournamentBracket)
	mux.HandleFunc("POST /v1/tournament/bracket/generate", handler.GenerateTournamentBracket)
	mux.HandleFunc("POST /v1/tournament/rounds/{round}/resolve", handler.ResolveTournamentRound)
	mux.HandleFunc("GET /v1/recaps", handler.ListRecentRecaps)
	mux.HandleFunc("GET /v1/recaps/{date}", handler.GetDailyRecap)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/averages", handler.GetPlayerAverages)
	mux.HandleFunc("GET /v1/players/{playerID}/trend", handler.GetPlayerTrend)
}

func registerScheduleRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/schedule", handler.ListSchedule)
	mux.HandleFunc("GET /v1/schedule/dates", handler.ListScheduleDates)
	mux.HandleFunc("GET /v1/schedule/{gameID}", handler.GetGame)
}

func registerInternalSyncRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/internal/sync/schedule", handler.RunScheduleSync)
	mux.HandleFunc("POST /v1/internal/sync/boxscores", handler.RunBoxScoreSync)
	mux.HandleFunc("GET /v1/internal/sync/status", handler.GetSyncStatus)
}
