package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/schedule"
)

// ScheduleService answers read queries about the league calendar.
type ScheduleService struct {
	scheduleRepo schedule.Repository
}

func NewScheduleService(scheduleRepo schedule.Repository) *ScheduleService {
	return &ScheduleService{scheduleRepo: scheduleRepo}
}

// List returns every scheduled game in tipoff order.
func (s *ScheduleService) List(ctx context.Context) ([]schedule.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.List")
	defer span.End()

	games, err := s.scheduleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// ByDate returns the games of one league date.
func (s *ScheduleService) ByDate(ctx context.Context, date string) ([]schedule.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ByDate")
	defer span.End()

	date = strings.TrimSpace(date)
	if _, err := schedule.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	games, err := s.scheduleRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list games by date: %w", err)
	}
	return games, nil
}

// Get returns one game by id.
func (s *ScheduleService) Get(ctx context.Context, gameID string) (schedule.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Get")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return schedule.Game{}, fmt.Errorf("%w: game_id is required", ErrInvalidInput)
	}

	game, found, err := s.scheduleRepo.GetByID(ctx, gameID)
	if err != nil {
		return schedule.Game{}, fmt.Errorf("get game by id: %w", err)
	}
	if !found {
		return schedule.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}
	return game, nil
}

// Dates returns the distinct league dates with at least one game, ascending.
func (s *ScheduleService) Dates(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Dates")
	defer span.End()

	dates, err := s.scheduleRepo.ListDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list game dates: %w", err)
	}
	return dates, nil
}
