package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/player"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/schedule"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/logging"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/usecase"
)

type Handler struct {
	draftService      *usecase.DraftService
	managerService    *usecase.ManagerService
	lineupService     *usecase.LineupService
	scoringService    *usecase.ScoringService
	standingsService  *usecase.StandingsService
	tournamentService *usecase.TournamentService
	playerService     *usecase.PlayerService
	recapService      *usecase.RecapService
	scheduleService   *usecase.ScheduleService
	feedSyncService   *usecase.FeedSyncService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	draftService *usecase.DraftService,
	managerService *usecase.ManagerService,
	lineupService *usecase.LineupService,
	scoringService *usecase.ScoringService,
	standingsService *usecase.StandingsService,
	tournamentService *usecase.TournamentService,
	playerService *usecase.PlayerService,
	recapService *usecase.RecapService,
	scheduleService *usecase.ScheduleService,
	feedSyncService *usecase.FeedSyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		draftService:      draftService,
		managerService:    managerService,
		lineupService:     lineupService,
		scoringService:    scoringService,
		standingsService:  standingsService,
		tournamentService: tournamentService,
		playerService:     playerService,
		recapService:      recapService,
		scheduleService:   scheduleService,
		feedSyncService:   feedSyncService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type playerDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ProTeam   string `json:"proTeam"`
	Status    string `json:"status"`
	ManagerID string `json:"managerId,omitempty"`
}

type gameDTO struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	TipoffAt string `json:"tipoffAtUtc"`
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
	Status   string `json:"status"`
}

func playerToDTO(ctx context.Context, v player.Player, managerID string) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	_ = ctx
	return playerDTO{
		ID:        v.ID,
		Name:      v.Name,
		ProTeam:   v.ProTeam,
		Status:    string(v.Status),
		ManagerID: managerID,
	}
}

func gameToDTO(ctx context.Context, v schedule.Game) gameDTO {
	ctx, span := startSpan(ctx, "httpapi.gameToDTO")
	defer span.End()

	_ = ctx
	return gameDTO{
		ID:       v.ID,
		Date:     v.Date,
		TipoffAt: v.TipoffAt.UTC().Format(time.RFC3339),
		HomeTeam: v.HomeTeam,
		AwayTeam: v.AwayTeam,
		Status:   v.Status,
	}
}
