package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/usecase"
)

func (h *Handler) GetDailyRecap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDailyRecap")
	defer span.End()

	date := strings.TrimSpace(r.PathValue("date"))
	recap, err := h.recapService.Daily(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "get daily recap failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recapToDTO(ctx, recap))
}

func (h *Handler) ListRecentRecaps(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRecentRecaps")
	defer span.End()

	limit := 0
	rawLimit := strings.TrimSpace(r.URL.Query().Get("limit"))
	if rawLimit != "" {
		value, err := strconv.Atoi(rawLimit)
		if err != nil || value <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		limit = value
	}

	recaps, err := h.recapService.Recent(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list recent recaps failed", "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]dailyRecapDTO, 0, len(recaps))
	for _, recap := range recaps {
		items = append(items, recapToDTO(ctx, recap))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type recapTopScorerDTO struct {
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	ProTeam    string  `json:"proTeam"`
	Points     float64 `json:"points"`
}

type recapManagerOfDayDTO struct {
	ManagerID    string  `json:"managerId"`
	ManagerName  string  `json:"managerName"`
	TeamName     string  `json:"teamName"`
	Points       float64 `json:"points"`
	ActivePlayed int     `json:"activePlayed"`
}

type recapBenchMistakeDTO struct {
	ManagerID  string  `json:"managerId"`
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Points     float64 `json:"points"`
}

type dailyRecapDTO struct {
	Date         string                `json:"date"`
	GamesPlayed  int                   `json:"gamesPlayed"`
	TopScorer    *recapTopScorerDTO    `json:"topScorer,omitempty"`
	ManagerOfDay *recapManagerOfDayDTO `json:"managerOfDay,omitempty"`
	BenchMistake *recapBenchMistakeDTO `json:"benchMistake,omitempty"`
}

func recapToDTO(ctx context.Context, v usecase.DailyRecap) dailyRecapDTO {
	ctx, span := startSpan(ctx, "httpapi.recapToDTO")
	defer span.End()

	_ = ctx
	dto := dailyRecapDTO{
		Date:        v.Date,
		GamesPlayed: v.GamesPlayed,
	}
	if v.TopScorer != nil {
		dto.TopScorer = &recapTopScorerDTO{
			PlayerID:   v.TopScorer.PlayerID,
			PlayerName: v.TopScorer.PlayerName,
			ProTeam:    v.TopScorer.ProTeam,
			Points:     v.TopScorer.Points,
		}
	}
	if v.ManagerOfDay != nil {
		dto.ManagerOfDay = &recapManagerOfDayDTO{
			ManagerID:    v.ManagerOfDay.ManagerID,
			ManagerName:  v.ManagerOfDay.ManagerName,
			TeamName:     v.ManagerOfDay.TeamName,
			Points:       v.ManagerOfDay.Points,
			ActivePlayed: v.ManagerOfDay.ActivePlayed,
		}
	}
	if v.BenchMistake != nil {
		dto.BenchMistake = &recapBenchMistakeDTO{
			ManagerID:  v.BenchMistake.ManagerID,
			PlayerID:   v.BenchMistake.PlayerID,
			PlayerName: v.BenchMistake.PlayerName,
			Points:     v.BenchMistake.Points,
		}
	}
	return dto
}
