package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/lineup"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/manager"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/player"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/roster"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/schedule"
)

// LineupService owns lineup submissions and the sticky resolution that turns
// the sparse submission log into an effective lineup for any (manager, date).
type LineupService struct {
	managerRepo  manager.Repository
	playerRepo   player.Repository
	rosterRepo   roster.Repository
	lineupRepo   lineup.Repository
	scheduleRepo schedule.Repository

	seasonStart string
	seasonEnd   string

	now func() time.Time
}

func NewLineupService(
	managerRepo manager.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	lineupRepo lineup.Repository,
	scheduleRepo schedule.Repository,
	seasonStart string,
	seasonEnd string,
) *LineupService {
	return &LineupService{
		managerRepo:  managerRepo,
		playerRepo:   playerRepo,
		rosterRepo:   rosterRepo,
		lineupRepo:   lineupRepo,
		scheduleRepo: scheduleRepo,
		seasonStart:  seasonStart,
		seasonEnd:    seasonEnd,
		now:          time.Now,
	}
}

type SubmitLineupInput struct {
	ManagerID string
	Date      string
	PlayerIDs []string
}

// LockInfo describes when submissions for a date stop being accepted. A date
// with no scheduled games carries no lock and stays open indefinitely.
type LockInfo struct {
	Date   string
	Games  int
	LockAt *time.Time
	Locked bool
}

// Submit records an explicit lineup for the manager starting on the given
// date. The submission sticks: later dates without their own submission
// inherit it. Submissions are rejected once the date's first game has tipped
// off.
func (s *LineupService) Submit(ctx context.Context, input SubmitLineupInput) (lineup.Resolved, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Submit")
	defer span.End()

	submission := lineup.Lineup{
		ManagerID: strings.TrimSpace(input.ManagerID),
		Date:      strings.TrimSpace(input.Date),
		PlayerIDs: make([]string, 0, len(input.PlayerIDs)),
	}
	for _, id := range input.PlayerIDs {
		submission.PlayerIDs = append(submission.PlayerIDs, strings.TrimSpace(id))
	}

	if err := submission.Validate(); err != nil {
		return lineup.Resolved{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := schedule.ParseDate(submission.Date); err != nil {
		return lineup.Resolved{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if s.seasonStart != "" && submission.Date < s.seasonStart {
		return lineup.Resolved{}, fmt.Errorf("%w: date %s is before the season opener %s", ErrInvalidInput, submission.Date, s.seasonStart)
	}
	if s.seasonEnd != "" && submission.Date > s.seasonEnd {
		return lineup.Resolved{}, fmt.Errorf("%w: date %s is after the season finale %s", ErrInvalidInput, submission.Date, s.seasonEnd)
	}

	if _, exists, err := s.managerRepo.GetByID(ctx, submission.ManagerID); err != nil {
		return lineup.Resolved{}, fmt.Errorf("get manager by id: %w", err)
	} else if !exists {
		return lineup.Resolved{}, fmt.Errorf("%w: manager=%s", ErrNotFound, submission.ManagerID)
	}

	entries, err := s.rosterRepo.ListEntriesByManager(ctx, submission.ManagerID)
	if err != nil {
		return lineup.Resolved{}, fmt.Errorf("list roster entries: %w", err)
	}
	if len(entries) == 0 {
		return lineup.Resolved{}, fmt.Errorf("%w: manager %s has no roster, the draft has not produced one yet", ErrInvalidState, submission.ManagerID)
	}

	onRoster := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		onRoster[entry.PlayerID] = struct{}{}
	}
	for _, id := range submission.PlayerIDs {
		if _, ok := onRoster[id]; !ok {
			return lineup.Resolved{}, fmt.Errorf("%w: player %s is not on manager %s's roster", ErrInvalidInput, id, submission.ManagerID)
		}
	}

	fielded, err := s.playerRepo.GetByIDs(ctx, submission.PlayerIDs)
	if err != nil {
		return lineup.Resolved{}, fmt.Errorf("get players by ids: %w", err)
	}
	if len(fielded) != len(submission.PlayerIDs) {
		return lineup.Resolved{}, fmt.Errorf("%w: lineup references a player missing from the pool", ErrNotFound)
	}
	for _, p := range fielded {
		if p.Injured() {
			return lineup.Resolved{}, fmt.Errorf("%w: player %s (%s) is injured and cannot be fielded", ErrInvalidInput, p.ID, p.Name)
		}
	}

	lock, err := s.lockInfo(ctx, submission.Date)
	if err != nil {
		return lineup.Resolved{}, err
	}
	if lock.Locked {
		return lineup.Resolved{}, fmt.Errorf("%w: lineups for %s locked at first tipoff %s", ErrInvalidState, submission.Date, lock.LockAt.Format(time.RFC3339))
	}

	submission.SubmittedAt = s.now().UTC()
	if err := s.lineupRepo.Upsert(ctx, submission); err != nil {
		return lineup.Resolved{}, fmt.Errorf("upsert lineup: %w", err)
	}

	return s.resolveOne(ctx, submission.ManagerID, submission.Date)
}

// Resolve returns the effective lineup for a (manager, date) without writing
// anything. Resolution order: the date's own submission, then the nearest
// earlier submission, then the roster fallback of the lowest player ids.
func (s *LineupService) Resolve(ctx context.Context, managerID, date string) (lineup.Resolved, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Resolve")
	defer span.End()

	managerID = strings.TrimSpace(managerID)
	date = strings.TrimSpace(date)
	if managerID == "" {
		return lineup.Resolved{}, fmt.Errorf("%w: manager_id is required", ErrInvalidInput)
	}
	if _, err := schedule.ParseDate(date); err != nil {
		return lineup.Resolved{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, exists, err := s.managerRepo.GetByID(ctx, managerID); err != nil {
		return lineup.Resolved{}, fmt.Errorf("get manager by id: %w", err)
	} else if !exists {
		return lineup.Resolved{}, fmt.Errorf("%w: manager=%s", ErrNotFound, managerID)
	}

	return s.resolveOne(ctx, managerID, date)
}

// Board resolves every manager's effective lineup for one date, in manager id
// order.
func (s *LineupService) Board(ctx context.Context, date string) ([]lineup.Resolved, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Board")
	defer span.End()

	date = strings.TrimSpace(date)
	if _, err := schedule.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	managers, err := s.managerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}

	board := make([]lineup.Resolved, 0, len(managers))
	for _, m := range managers {
		resolved, err := s.resolveOne(ctx, m.ID, date)
		if err != nil {
			return nil, err
		}
		board = append(board, resolved)
	}

	return board, nil
}

// History lists a manager's explicit submissions in date order.
func (s *LineupService) History(ctx context.Context, managerID string) ([]lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.History")
	defer span.End()

	managerID = strings.TrimSpace(managerID)
	if managerID == "" {
		return nil, fmt.Errorf("%w: manager_id is required", ErrInvalidInput)
	}

	if _, exists, err := s.managerRepo.GetByID(ctx, managerID); err != nil {
		return nil, fmt.Errorf("get manager by id: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: manager=%s", ErrNotFound, managerID)
	}

	submissions, err := s.lineupRepo.ListByManager(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("list lineups: %w", err)
	}

	return submissions, nil
}

// Lock reports the lock status for a date.
func (s *LineupService) Lock(ctx context.Context, date string) (LockInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Lock")
	defer span.End()

	date = strings.TrimSpace(date)
	if _, err := schedule.ParseDate(date); err != nil {
		return LockInfo{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.lockInfo(ctx, date)
}

func (s *LineupService) lockInfo(ctx context.Context, date string) (LockInfo, error) {
	games, err := s.scheduleRepo.ListByDate(ctx, date)
	if err != nil {
		return LockInfo{}, fmt.Errorf("list games by date: %w", err)
	}

	info := LockInfo{Date: date, Games: len(games)}
	tipoff, ok := schedule.MinTipoff(games)
	if !ok {
		return info, nil
	}

	info.LockAt = &tipoff
	info.Locked = !s.now().Before(tipoff)
	return info, nil
}

func (s *LineupService) resolveOne(ctx context.Context, managerID, date string) (lineup.Resolved, error) {
	lock, err := s.lockInfo(ctx, date)
	if err != nil {
		return lineup.Resolved{}, err
	}

	submissions, err := s.lineupRepo.ListByManager(ctx, managerID)
	if err != nil {
		return lineup.Resolved{}, fmt.Errorf("list lineups: %w", err)
	}
	entries, err := s.rosterRepo.ListEntriesByManager(ctx, managerID)
	if err != nil {
		return lineup.Resolved{}, fmt.Errorf("list roster entries: %w", err)
	}
	rosterIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		rosterIDs = append(rosterIDs, entry.PlayerID)
	}

	resolved := lineup.ResolveForDate(managerID, date, submissions, rosterIDs)
	resolved.Locked = lock.Locked
	resolved.LockAt = lock.LockAt
	return resolved, nil
}
