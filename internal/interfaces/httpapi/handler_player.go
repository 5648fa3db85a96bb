package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/player"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	statusFilter := strings.TrimSpace(strings.ToLower(r.URL.Query().Get("status")))
	switch statusFilter {
	case "", string(player.StatusActive), string(player.StatusInjured):
	default:
		writeError(ctx, w, fmt.Errorf("%w: unknown status filter %q", usecase.ErrInvalidInput, statusFilter))
		return
	}

	summaries, err := h.playerService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(summaries))
	for _, summary := range summaries {
		if statusFilter != "" && string(summary.Player.Status) != statusFilter {
			continue
		}
		items = append(items, playerToDTO(ctx, summary.Player, summary.ManagerID))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, item, ""))
}

func (h *Handler) GetPlayerAverages(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerAverages")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	averages, err := h.playerService.Averages(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player averages failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	totals := make(map[string]int, len(averages.CategoryTotals))
	for category, total := range averages.CategoryTotals {
		totals[string(category)] = total
	}
	perGame := make(map[string]float64, len(averages.CategoryPerGame))
	for category, rate := range averages.CategoryPerGame {
		perGame[string(category)] = rate
	}

	writeSuccess(ctx, w, http.StatusOK, playerAveragesDTO{
		PlayerID:        averages.PlayerID,
		Games:           averages.Games,
		FantasyPoints:   averages.FantasyPoints,
		FantasyPerGame:  averages.FantasyPerGame,
		CategoryTotals:  totals,
		CategoryPerGame: perGame,
	})
}

func (h *Handler) GetPlayerTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerTrend")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	trend, err := h.playerService.Trend(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player trend failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerTrendDTO{
		PlayerID:      trend.PlayerID,
		Form:          string(trend.Form),
		SeasonGames:   trend.SeasonGames,
		SeasonPerGame: trend.SeasonPerGame,
		RecentGames:   trend.RecentGames,
		RecentPerGame: trend.RecentPerGame,
	})
}

type playerAveragesDTO struct {
	PlayerID        string             `json:"playerId"`
	Games           int                `json:"games"`
	FantasyPoints   float64            `json:"fantasyPoints"`
	FantasyPerGame  float64            `json:"fantasyPerGame"`
	CategoryTotals  map[string]int     `json:"categoryTotals"`
	CategoryPerGame map[string]float64 `json:"categoryPerGame"`
}

type playerTrendDTO struct {
	PlayerID      string  `json:"playerId"`
	Form          string  `json:"form"`
	SeasonGames   int     `json:"seasonGames"`
	SeasonPerGame float64 `json:"seasonPerGame"`
	RecentGames   int     `json:"recentGames"`
	RecentPerGame float64 `json:"recentPerGame"`
}
