package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/usecase"
)

func (h *Handler) RunScheduleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScheduleSync")
	defer span.End()

	var req scheduleSyncRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	run, err := h.feedSyncService.SyncSchedule(ctx, usecase.SyncScheduleInput{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "schedule sync failed", "start_date", req.StartDate, "end_date", req.EndDate, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "schedule sync finished",
		"run_id", run.RunID,
		"success", run.SuccessCount,
		"failed", run.FailedCount,
		"skipped", run.SkippedCount,
		"duration_ms", run.DurationMS,
	)

	writeSuccess(ctx, w, http.StatusOK, run)
}

func (h *Handler) RunBoxScoreSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBoxScoreSync")
	defer span.End()

	var req boxScoreSyncRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	run, err := h.feedSyncService.SyncBoxScores(ctx, usecase.SyncBoxScoresInput{
		Date:       req.Date,
		MaxWorkers: req.MaxWorkers,
		DryRun:     req.DryRun,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "box score sync failed", "date", req.Date, "dry_run", req.DryRun, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "box score sync finished",
		"run_id", run.RunID,
		"success", run.SuccessCount,
		"failed", run.FailedCount,
		"skipped", run.SkippedCount,
		"workers", run.WorkerCount,
		"duration_ms", run.DurationMS,
	)

	writeSuccess(ctx, w, http.StatusOK, run)
}

func (h *Handler) GetSyncStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSyncStatus")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.feedSyncService.Status(ctx))
}

// decodeOptionalJSON reads a request body that may legitimately be empty;
// sync triggers accept bare POSTs.
func decodeOptionalJSON(r *http.Request, target any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type scheduleSyncRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type boxScoreSyncRequest struct {
	Date       string `json:"date"`
	MaxWorkers int    `json:"maxWorkers"`
	DryRun     bool   `json:"dryRun"`
}
