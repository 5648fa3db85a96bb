package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/lineup"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/usecase"
)

func (h *Handler) GetResolvedLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetResolvedLineup")
	defer span.End()

	managerID := strings.TrimSpace(r.PathValue("managerID"))
	date := strings.TrimSpace(r.PathValue("date"))

	resolved, err := h.lineupService.Resolve(ctx, managerID, date)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve lineup failed", "manager_id", managerID, "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resolvedToDTO(ctx, resolved))
}

func (h *Handler) SubmitLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitLineup")
	defer span.End()

	managerID := strings.TrimSpace(r.PathValue("managerID"))
	date := strings.TrimSpace(r.PathValue("date"))

	var req submitLineupRequest
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

	resolved, err := h.lineupService.Submit(ctx, usecase.SubmitLineupInput{
		ManagerID: managerID,
		Date:      date,
		PlayerIDs: req.PlayerIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit lineup failed", "manager_id", managerID, "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resolvedToDTO(ctx, resolved))
}

func (h *Handler) GetLineupBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineupBoard")
	defer span.End()

	date := strings.TrimSpace(r.PathValue("date"))
	rows, err := h.lineupService.Board(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "lineup board failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]resolvedLineupDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, resolvedToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListLineupHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLineupHistory")
	defer span.End()

	managerID := strings.TrimSpace(r.PathValue("managerID"))
	rows, err := h.lineupService.History(ctx, managerID)
	if err != nil {
		h.logger.WarnContext(ctx, "lineup history failed", "manager_id", managerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]lineupSubmissionDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, lineupSubmissionDTO{
			ManagerID:   row.ManagerID,
			Date:        row.Date,
			PlayerIDs:   append([]string(nil), row.PlayerIDs...),
			SubmittedAt: row.SubmittedAt.UTC().Format(time.RFC3339),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLineupLock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineupLock")
	defer span.End()

	date := strings.TrimSpace(r.PathValue("date"))
	info, err := h.lineupService.Lock(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "lineup lock failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := lineupLockDTO{
		Date:   info.Date,
		Games:  info.Games,
		Locked: info.Locked,
	}
	if info.LockAt != nil {
		lockAt := info.LockAt.UTC().Format(time.RFC3339)
		dto.LockAt = &lockAt
		if !info.Locked {
			remaining := time.Until(*info.LockAt)
			if remaining < 0 {
				remaining = 0
			}
			seconds := int64(remaining / time.Second)
			dto.RemainingSeconds = &seconds
		}
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

type submitLineupRequest struct {
	PlayerIDs []string `json:"playerIds" validate:"required,len=3,dive,required"`
}

type resolvedLineupDTO struct {
	ManagerID  string   `json:"managerId"`
	Date       string   `json:"date"`
	PlayerIDs  []string `json:"playerIds"`
	Provenance string   `json:"provenance"`
	SourceDate string   `json:"sourceDate,omitempty"`
	Locked     bool     `json:"locked"`
	LockAt     *string  `json:"lockAtUtc,omitempty"`
}

type lineupSubmissionDTO struct {
	ManagerID   string   `json:"managerId"`
	Date        string   `json:"date"`
	PlayerIDs   []string `json:"playerIds"`
	SubmittedAt string   `json:"submittedAtUtc"`
}

type lineupLockDTO struct {
	Date             string  `json:"date"`
	Games            int     `json:"games"`
	LockAt           *string `json:"lockAtUtc,omitempty"`
	Locked           bool    `json:"locked"`
	RemainingSeconds *int64  `json:"remainingSeconds,omitempty"`
}

func resolvedToDTO(ctx context.Context, v lineup.Resolved) resolvedLineupDTO {
	ctx, span := startSpan(ctx, "httpapi.resolvedToDTO")
	defer span.End()

	_ = ctx
	dto := resolvedLineupDTO{
		ManagerID:  v.ManagerID,
		Date:       v.Date,
		PlayerIDs:  append([]string(nil), v.PlayerIDs...),
		Provenance: string(v.Provenance),
		SourceDate: v.SourceDate,
		Locked:     v.Locked,
	}
	if v.LockAt != nil {
		lockAt := v.LockAt.UTC().Format(time.RFC3339)
		dto.LockAt = &lockAt
	}
	return dto
}
