package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/roster"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/usecase"
)

func (h *Handler) GetDraftStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftStatus")
	defer span.End()

	status, err := h.draftService.Status(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get draft status failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftStatusDTO{
		Rounds:        status.Rounds,
		TotalPicks:    status.TotalPicks,
		PicksMade:     status.PicksMade,
		Complete:      status.Complete,
		NextPick:      status.NextPick,
		NextRound:     status.NextRound,
		NextManagerID: status.NextManagerID,
	})
}

func (h *Handler) ListDraftPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDraftPicks")
	defer span.End()

	picks, err := h.draftService.ListPicks(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list draft picks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]draftPickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, pickToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SubmitDraftPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitDraftPick")
	defer span.End()

	var req submitPickRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	pick, err := h.draftService.SubmitPick(ctx, usecase.SubmitPickInput{PlayerID: req.PlayerID})
	if err != nil {
		h.logger.WarnContext(ctx, "submit draft pick failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, pickToDTO(ctx, pick))
}

func (h *Handler) ListAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAvailablePlayers")
	defer span.End()

	players, err := h.draftService.AvailablePlayers(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list available players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(ctx, p, ""))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type submitPickRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
}

type draftStatusDTO struct {
	Rounds        int    `json:"rounds"`
	TotalPicks    int    `json:"totalPicks"`
	PicksMade     int    `json:"picksMade"`
	Complete      bool   `json:"complete"`
	NextPick      int    `json:"nextPick,omitempty"`
	NextRound     int    `json:"nextRound,omitempty"`
	NextManagerID string `json:"nextManagerId,omitempty"`
}

type draftPickDTO struct {
	Number    int    `json:"number"`
	Round     int    `json:"round"`
	ManagerID string `json:"managerId"`
	PlayerID  string `json:"playerId"`
	PickedAt  string `json:"pickedAtUtc"`
}

func pickToDTO(ctx context.Context, v roster.Pick) draftPickDTO {
	ctx, span := startSpan(ctx, "httpapi.pickToDTO")
	defer span.End()

	_ = ctx
	return draftPickDTO{
		Number:    v.Number,
		Round:     v.Round,
		ManagerID: v.ManagerID,
		PlayerID:  v.PlayerID,
		PickedAt:  v.PickedAt.UTC().Format(time.RFC3339),
	}
}
