package httpapi

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/roster"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/infrastructure/repository/memory"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/logging"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/usecase"
)

type routerFixture struct {
	router     http.Handler
	rosterRepo *memory.RosterRepository
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()

	managerRepo := memory.NewManagerRepository(memory.SeedManagers())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	scheduleRepo := memory.NewScheduleRepository(memory.SeedSchedule())
	rosterRepo := memory.NewRosterRepository()
	lineupRepo := memory.NewLineupRepository()
	statsRepo := memory.NewStatsRepository()
	scoringRepo := memory.NewScoringRepository()
	tournamentRepo := memory.NewTournamentRepository()

	draftSvc := usecase.NewDraftService(managerRepo, playerRepo, rosterRepo, 6)
	managerSvc := usecase.NewManagerService(managerRepo)
	lineupSvc := usecase.NewLineupService(managerRepo, playerRepo, rosterRepo, lineupRepo, scheduleRepo, "2026-01-05", "2026-02-27")
	scoringSvc := usecase.NewScoringService(managerRepo, playerRepo, rosterRepo, lineupRepo, scheduleRepo, statsRepo, scoringRepo, nil, nil)
	standingsSvc := usecase.NewStandingsService(managerRepo, scoringRepo)
	tournamentSvc := usecase.NewTournamentService(managerRepo, playerRepo, rosterRepo, scoringRepo, tournamentRepo, standingsSvc)
	playerSvc := usecase.NewPlayerService(playerRepo, rosterRepo, statsRepo, scoringRepo)
	recapSvc := usecase.NewRecapService(managerRepo, playerRepo, rosterRepo, lineupRepo, scheduleRepo, scoringRepo)
	scheduleSvc := usecase.NewScheduleService(scheduleRepo)
	feedSyncSvc := usecase.NewFeedSyncService(scheduleRepo, scoringSvc, nil, usecase.FeedSyncConfig{}, logging.NewNop())

	handler := NewHandler(
		draftSvc,
		managerSvc,
		lineupSvc,
		scoringSvc,
		standingsSvc,
		tournamentSvc,
		playerSvc,
		recapSvc,
		scheduleSvc,
		feedSyncSvc,
		logging.NewNop(),
	)

	return routerFixture{
		router:     NewRouter(handler, logging.NewNop(), nil, true, []string{"*"}, nil),
		rosterRepo: rosterRepo,
	}
}

func (fx routerFixture) seedRosters(t *testing.T) {
	t.Helper()

	entries := make([]roster.Entry, 0, 48)
	for m := 1; m <= 8; m++ {
		for p := (m-1)*6 + 1; p <= m*6; p++ {
			entries = append(entries, roster.Entry{
				ManagerID: fmt.Sprintf("mgr-%02d", m),
				PlayerID:  fmt.Sprintf("ply-%03d", p),
			})
		}
	}
	if err := fx.rosterRepo.ReplaceEntries(t.Context(), entries); err != nil {
		t.Fatalf("seed rosters: %v", err)
	}
}

func (fx routerFixture) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("unmarshal response envelope: %v", err)
		}
	}
	return rec.Code, envelope
}

func dataObject(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()

	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object in envelope, got %v", envelope)
	}
	return data
}

func dataList(t *testing.T, envelope map[string]any) []any {
	t.Helper()

	data, ok := envelope["data"].([]any)
	if !ok {
		t.Fatalf("expected data array in envelope, got %v", envelope)
	}
	return data
}

func closeTo(got, want float64) bool {
	return math.Abs(got-want) <= 1e-9
}

func errorStatus(t *testing.T, envelope map[string]any) string {
	t.Helper()

	errObj, ok := envelope["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in envelope, got %v", envelope)
	}
	status, _ := errObj["status"].(string)
	return status
}

func TestRouter_Healthz(t *testing.T) {
	fx := newRouterFixture(t)

	code, envelope := fx.do(t, http.MethodGet, "/healthz", "")
	if code != http.StatusOK {
		t.Fatalf("healthz status: got=%d want=%d", code, http.StatusOK)
	}
	if got := dataObject(t, envelope)["status"]; got != "ok" {
		t.Fatalf("healthz body: got=%v want=ok", got)
	}
}

func TestRouter_DraftFlow(t *testing.T) {
	fx := newRouterFixture(t)

	code, envelope := fx.do(t, http.MethodGet, "/v1/draft", "")
	if code != http.StatusOK {
		t.Fatalf("draft status code: got=%d want=200", code)
	}
	status := dataObject(t, envelope)
	if got := status["totalPicks"].(float64); got != 48 {
		t.Fatalf("total picks: got=%v want=48", got)
	}
	if got := status["nextManagerId"]; got != "mgr-01" {
		t.Fatalf("first pick on the clock: got=%v want=mgr-01", got)
	}

	code, envelope = fx.do(t, http.MethodPost, "/v1/draft/picks", `{"playerId":"ply-001"}`)
	if code != http.StatusCreated {
		t.Fatalf("submit pick code: got=%d want=201", code)
	}
	pick := dataObject(t, envelope)
	if pick["managerId"] != "mgr-01" || pick["playerId"] != "ply-001" {
		t.Fatalf("unexpected pick: %v", pick)
	}
	if got := pick["number"].(float64); got != 1 {
		t.Fatalf("pick number: got=%v want=1", got)
	}

	code, envelope = fx.do(t, http.MethodPost, "/v1/draft/picks", `{"playerId":"ply-001"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("duplicate pick code: got=%d want=400", code)
	}
	if got := errorStatus(t, envelope); got != "INVALID_ARGUMENT" {
		t.Fatalf("duplicate pick error status: got=%q want=INVALID_ARGUMENT", got)
	}

	code, envelope = fx.do(t, http.MethodGet, "/v1/draft/available-players", "")
	if code != http.StatusOK {
		t.Fatalf("available players code: got=%d want=200", code)
	}
	// 48 minus the drafted ply-001 minus the injured ply-043.
	if got := len(dataList(t, envelope)); got != 46 {
		t.Fatalf("available players: got=%d want=46", got)
	}
}

func TestRouter_StandingsEmptySeason(t *testing.T) {
	fx := newRouterFixture(t)

	code, envelope := fx.do(t, http.MethodGet, "/v1/standings", "")
	if code != http.StatusOK {
		t.Fatalf("standings code: got=%d want=200", code)
	}
	rows := dataList(t, envelope)
	if len(rows) != 8 {
		t.Fatalf("standings rows: got=%d want=8", len(rows))
	}
	first := rows[0].(map[string]any)
	if first["rank"].(float64) != 1 || first["managerId"] != "mgr-01" {
		t.Fatalf("unexpected first standings row: %v", first)
	}
	if got := first["totalPoints"].(float64); got != 0 {
		t.Fatalf("empty season total: got=%v want=0", got)
	}
}

func TestRouter_IngestStatsAndReadScores(t *testing.T) {
	fx := newRouterFixture(t)
	fx.seedRosters(t)

	body := `{"rows":[{"playerId":"ply-001","counts":{"REB":5}}]}`
	code, envelope := fx.do(t, http.MethodPost, "/v1/games/game-0105-a/stats", body)
	if code != http.StatusOK {
		t.Fatalf("ingest code: got=%d want=200 envelope=%v", code, envelope)
	}
	result := dataObject(t, envelope)
	rows := result["rows"].([]any)
	if len(rows) != 1 {
		t.Fatalf("ingest rows: got=%d want=1", len(rows))
	}
	if got := rows[0].(map[string]any)["points"].(float64); !closeTo(got, 6.0) {
		t.Fatalf("row points: got=%v want=6", got)
	}
	affected := result["affectedManagers"].([]any)
	if len(affected) != 1 || affected[0] != "mgr-01" {
		t.Fatalf("affected managers: got=%v want=[mgr-01]", affected)
	}

	code, envelope = fx.do(t, http.MethodGet, "/v1/games/game-0105-a/scores", "")
	if code != http.StatusOK {
		t.Fatalf("game scores code: got=%d want=200", code)
	}
	if got := len(dataList(t, envelope)); got != 1 {
		t.Fatalf("game scores rows: got=%d want=1", got)
	}

	code, envelope = fx.do(t, http.MethodGet, "/v1/managers/mgr-01/scores", "")
	if code != http.StatusOK {
		t.Fatalf("manager scores code: got=%d want=200", code)
	}
	daily := dataList(t, envelope)
	if len(daily) != 1 {
		t.Fatalf("daily rows: got=%d want=1", len(daily))
	}
	row := daily[0].(map[string]any)
	if row["date"] != "2026-01-05" || !closeTo(row["points"].(float64), 6.0) {
		t.Fatalf("unexpected daily row: %v", row)
	}

	code, envelope = fx.do(t, http.MethodGet, "/v1/scores/2026-01-05", "")
	if code != http.StatusOK {
		t.Fatalf("scores by date code: got=%d want=200", code)
	}
	if got := len(dataList(t, envelope)); got != 1 {
		t.Fatalf("scores by date rows: got=%d want=1", got)
	}

	code, envelope = fx.do(t, http.MethodPost, "/v1/games/game-9999-z/stats", body)
	if code != http.StatusBadRequest {
		t.Fatalf("unknown game code: got=%d want=400", code)
	}
	if got := errorStatus(t, envelope); got != "INVALID_ARGUMENT" {
		t.Fatalf("unknown game error status: got=%q", got)
	}
}

func TestRouter_IngestStatsCSV(t *testing.T) {
	fx := newRouterFixture(t)
	fx.seedRosters(t)

	csvBody := "player_id,one_pt,two_pt,ft,reb,ast,stl,blk,tov,pf,game_winner,dunk\n" +
		"ply-001,1,9,0,9,1,1,0,3,3,0,0\n"
	req := httptest.NewRequest(http.MethodPost, "/v1/games/game-0105-a/stats/csv", strings.NewReader(csvBody))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("csv ingest code: got=%d want=200 body=%s", rec.Code, rec.Body.String())
	}
	var envelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal csv ingest response: %v", err)
	}
	rows := dataObject(t, envelope)["rows"].([]any)
	if len(rows) != 1 {
		t.Fatalf("csv rows: got=%d want=1", len(rows))
	}
	if got := rows[0].(map[string]any)["points"].(float64); !closeTo(got, 32.8) {
		t.Fatalf("csv row points: got=%v want=32.8", got)
	}

	code, envelope := fx.do(t, http.MethodPost, "/v1/games/game-0105-a/stats/csv", "who,knows\n1,2\n")
	if code != http.StatusBadRequest {
		t.Fatalf("bad csv code: got=%d want=400", code)
	}
	if got := errorStatus(t, envelope); got != "INVALID_ARGUMENT" {
		t.Fatalf("bad csv error status: got=%q", got)
	}
}

func TestRouter_LineupSubmitAndResolve(t *testing.T) {
	fx := newRouterFixture(t)
	fx.seedRosters(t)

	// 2026-01-06 has no games scheduled, so it never locks and the
	// submission is accepted regardless of wall clock.
	code, envelope := fx.do(t, http.MethodPut, "/v1/managers/mgr-01/lineups/2026-01-06", `{"playerIds":["ply-004","ply-005","ply-006"]}`)
	if code != http.StatusOK {
		t.Fatalf("submit lineup code: got=%d want=200 envelope=%v", code, envelope)
	}
	resolved := dataObject(t, envelope)
	if resolved["provenance"] != "explicit" {
		t.Fatalf("submit provenance: got=%v want=explicit", resolved["provenance"])
	}

	code, envelope = fx.do(t, http.MethodGet, "/v1/managers/mgr-01/lineups/2026-01-12", "")
	if code != http.StatusOK {
		t.Fatalf("resolve code: got=%d want=200", code)
	}
	inherited := dataObject(t, envelope)
	if inherited["provenance"] != "inherited" || inherited["sourceDate"] != "2026-01-06" {
		t.Fatalf("resolve inherited: got=%v", inherited)
	}

	code, envelope = fx.do(t, http.MethodGet, "/v1/lineups/2026-01-06/lock", "")
	if code != http.StatusOK {
		t.Fatalf("lock code: got=%d want=200", code)
	}
	lock := dataObject(t, envelope)
	if lock["games"].(float64) != 0 || lock["locked"].(bool) {
		t.Fatalf("no-game date lock: got=%v", lock)
	}
	if _, present := lock["lockAtUtc"]; present {
		t.Fatalf("no-game date should not carry a lock time: %v", lock)
	}

	code, envelope = fx.do(t, http.MethodGet, "/v1/lineups/2026-01-06", "")
	if code != http.StatusOK {
		t.Fatalf("board code: got=%d want=200", code)
	}
	if got := len(dataList(t, envelope)); got != 8 {
		t.Fatalf("board rows: got=%d want=8", got)
	}

	code, envelope = fx.do(t, http.MethodPut, "/v1/managers/mgr-01/lineups/2026-01-06", `{"playerIds":["ply-004","ply-005"]}`)
	if code != http.StatusBadRequest {
		t.Fatalf("short lineup code: got=%d want=400", code)
	}
	if got := errorStatus(t, envelope); got != "INVALID_ARGUMENT" {
		t.Fatalf("short lineup error status: got=%q", got)
	}
}

func TestRouter_TournamentGuards(t *testing.T) {
	fx := newRouterFixture(t)
	fx.seedRosters(t)

	code, envelope := fx.do(t, http.MethodGet, "/v1/tournament/bracket", "")
	if code != http.StatusOK {
		t.Fatalf("bracket code: got=%d want=200", code)
	}
	view := dataObject(t, envelope)
	if view["generated"].(bool) || view["missingNominations"].(float64) != 8 {
		t.Fatalf("empty bracket view: got=%v", view)
	}

	code, envelope = fx.do(t, http.MethodPost, "/v1/tournament/nominations", `{"managerId":"mgr-01","playerId":"ply-013"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("off-roster nomination code: got=%d want=400", code)
	}
	if got := errorStatus(t, envelope); got != "INVALID_ARGUMENT" {
		t.Fatalf("off-roster nomination status: got=%q", got)
	}

	code, _ = fx.do(t, http.MethodPost, "/v1/tournament/nominations", `{"managerId":"mgr-01","playerId":"ply-001"}`)
	if code != http.StatusCreated {
		t.Fatalf("nomination code: got=%d want=201", code)
	}

	code, envelope = fx.do(t, http.MethodPost, "/v1/tournament/nominations", `{"managerId":"mgr-01","playerId":"ply-002"}`)
	if code != http.StatusConflict {
		t.Fatalf("re-nomination code: got=%d want=409", code)
	}
	if got := errorStatus(t, envelope); got != "FAILED_PRECONDITION" {
		t.Fatalf("re-nomination status: got=%q", got)
	}

	code, _ = fx.do(t, http.MethodDelete, "/v1/tournament/nominations/mgr-01", "")
	if code != http.StatusOK {
		t.Fatalf("withdraw code: got=%d want=200", code)
	}

	code, envelope = fx.do(t, http.MethodPost, "/v1/tournament/rounds/quarterfinal/resolve", `{"startDate":"2026-02-02","endDate":"2026-02-08"}`)
	if code != http.StatusConflict {
		t.Fatalf("resolve before generation code: got=%d want=409", code)
	}
	if got := errorStatus(t, envelope); got != "FAILED_PRECONDITION" {
		t.Fatalf("resolve before generation status: got=%q", got)
	}
}

func TestRouter_PlayerFilterAndNotFound(t *testing.T) {
	fx := newRouterFixture(t)

	code, envelope := fx.do(t, http.MethodGet, "/v1/players?status=injured", "")
	if code != http.StatusOK {
		t.Fatalf("injured filter code: got=%d want=200", code)
	}
	injured := dataList(t, envelope)
	if len(injured) != 1 || injured[0].(map[string]any)["id"] != "ply-043" {
		t.Fatalf("injured filter rows: got=%v", injured)
	}

	code, envelope = fx.do(t, http.MethodGet, "/v1/players?status=benched", "")
	if code != http.StatusBadRequest {
		t.Fatalf("bogus filter code: got=%d want=400", code)
	}
	if got := errorStatus(t, envelope); got != "INVALID_ARGUMENT" {
		t.Fatalf("bogus filter status: got=%q", got)
	}

	code, envelope = fx.do(t, http.MethodGet, "/v1/players/ply-999", "")
	if code != http.StatusNotFound {
		t.Fatalf("unknown player code: got=%d want=404", code)
	}
	if got := errorStatus(t, envelope); got != "NOT_FOUND" {
		t.Fatalf("unknown player status: got=%q", got)
	}
}

func TestRouter_SyncDisabled(t *testing.T) {
	fx := newRouterFixture(t)

	code, envelope := fx.do(t, http.MethodPost, "/v1/internal/sync/schedule", `{"startDate":"2026-01-05","endDate":"2026-01-19"}`)
	if code != http.StatusServiceUnavailable {
		t.Fatalf("sync schedule code: got=%d want=503", code)
	}
	if got := errorStatus(t, envelope); got != "UNAVAILABLE" {
		t.Fatalf("sync schedule status: got=%q", got)
	}

	code, envelope = fx.do(t, http.MethodGet, "/v1/internal/sync/status", "")
	if code != http.StatusOK {
		t.Fatalf("sync status code: got=%d want=200", code)
	}
	if got := dataObject(t, envelope)["enabled"].(bool); got {
		t.Fatalf("sync status enabled: got=%v want=false", got)
	}
}

func TestRouter_RecapQuietDate(t *testing.T) {
	fx := newRouterFixture(t)
	fx.seedRosters(t)

	code, envelope := fx.do(t, http.MethodGet, "/v1/recaps/2026-01-05", "")
	if code != http.StatusOK {
		t.Fatalf("recap code: got=%d want=200", code)
	}
	recap := dataObject(t, envelope)
	if got := recap["gamesPlayed"].(float64); got != 2 {
		t.Fatalf("recap games played: got=%v want=2", got)
	}
	if _, present := recap["topScorer"]; present {
		t.Fatalf("quiet date should omit topScorer: %v", recap)
	}
}

func TestRouter_ScheduleReads(t *testing.T) {
	fx := newRouterFixture(t)

	code, envelope := fx.do(t, http.MethodGet, "/v1/schedule?date=2026-01-05", "")
	if code != http.StatusOK {
		t.Fatalf("schedule by date code: got=%d want=200", code)
	}
	if got := len(dataList(t, envelope)); got != 2 {
		t.Fatalf("schedule by date rows: got=%d want=2", got)
	}

	code, envelope = fx.do(t, http.MethodGet, "/v1/schedule/dates", "")
	if code != http.StatusOK {
		t.Fatalf("schedule dates code: got=%d want=200", code)
	}
	if got := len(dataList(t, envelope)); got != 7 {
		t.Fatalf("schedule dates: got=%d want=7", got)
	}

	code, envelope = fx.do(t, http.MethodGet, "/v1/schedule/game-0105-a", "")
	if code != http.StatusOK {
		t.Fatalf("get game code: got=%d want=200", code)
	}
	if got := dataObject(t, envelope)["homeTeam"]; got == "" {
		t.Fatalf("game should carry a home team, got=%v", got)
	}
}
