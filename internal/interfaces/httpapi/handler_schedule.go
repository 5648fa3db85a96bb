package httpapi

import (
	"net/http"
	"strings"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/schedule"
)

func (h *Handler) ListSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSchedule")
	defer span.End()

	date := strings.TrimSpace(r.URL.Query().Get("date"))

	var games []schedule.Game
	var err error
	if date != "" {
		games, err = h.scheduleService.ByDate(ctx, date)
	} else {
		games, err = h.scheduleService.List(ctx)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "list schedule failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, game := range games {
		items = append(items, gameToDTO(ctx, game))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListScheduleDates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScheduleDates")
	defer span.End()

	dates, err := h.scheduleService.Dates(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list schedule dates failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dates)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	game, err := h.scheduleService.Get(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(ctx, game))
}
