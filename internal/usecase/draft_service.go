package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/manager"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/player"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/roster"
)

// DraftService runs the snake draft. The pick log is the source of truth:
// whose turn it is, round numbers, and final rosters all derive from it.
type DraftService struct {
	managerRepo manager.Repository
	playerRepo  player.Repository
	rosterRepo  roster.Repository
	rounds      int
	now         func() time.Time
}

type DraftStatus struct {
	Rounds        int
	TotalPicks    int
	PicksMade     int
	Complete      bool
	NextPick      int
	NextRound     int
	NextManagerID string
}

type SubmitPickInput struct {
	PlayerID string
}

func NewDraftService(
	managerRepo manager.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	rounds int,
) *DraftService {
	return &DraftService{
		managerRepo: managerRepo,
		playerRepo:  playerRepo,
		rosterRepo:  rosterRepo,
		rounds:      rounds,
		now:         time.Now,
	}
}

func (s *DraftService) Status(ctx context.Context) (DraftStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Status")
	defer span.End()

	order, err := s.draftOrder(ctx)
	if err != nil {
		return DraftStatus{}, err
	}

	picks, err := s.rosterRepo.ListPicks(ctx)
	if err != nil {
		return DraftStatus{}, fmt.Errorf("list draft picks: %w", err)
	}

	total := roster.TotalPicks(len(order), s.rounds)
	status := DraftStatus{
		Rounds:     s.rounds,
		TotalPicks: total,
		PicksMade:  len(picks),
		Complete:   len(picks) >= total,
	}
	if !status.Complete {
		next := len(picks) + 1
		managerID, _ := roster.ManagerAt(next, order)
		status.NextPick = next
		status.NextRound = roster.RoundOf(next, len(order))
		status.NextManagerID = managerID
	}

	return status, nil
}

func (s *DraftService) ListPicks(ctx context.Context) ([]roster.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.ListPicks")
	defer span.End()

	picks, err := s.rosterRepo.ListPicks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list draft picks: %w", err)
	}

	return picks, nil
}

// SubmitPick appends the next pick for whichever manager is on the clock.
// The final pick also materializes roster entries from the complete log.
func (s *DraftService) SubmitPick(ctx context.Context, input SubmitPickInput) (roster.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.SubmitPick")
	defer span.End()

	playerID := strings.TrimSpace(input.PlayerID)
	if playerID == "" {
		return roster.Pick{}, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}

	order, err := s.draftOrder(ctx)
	if err != nil {
		return roster.Pick{}, err
	}

	picks, err := s.rosterRepo.ListPicks(ctx)
	if err != nil {
		return roster.Pick{}, fmt.Errorf("list draft picks: %w", err)
	}

	total := roster.TotalPicks(len(order), s.rounds)
	if len(picks) >= total {
		return roster.Pick{}, fmt.Errorf("%w: draft is complete after %d picks", ErrInvalidState, total)
	}

	pool, err := s.playerRepo.List(ctx)
	if err != nil {
		return roster.Pick{}, fmt.Errorf("list players: %w", err)
	}
	if len(pool) < total {
		return roster.Pick{}, fmt.Errorf("%w: player pool holds %d players, draft needs %d", ErrInvalidInput, len(pool), total)
	}

	if _, exists, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return roster.Pick{}, fmt.Errorf("get player by id: %w", err)
	} else if !exists {
		return roster.Pick{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	for _, pick := range picks {
		if pick.PlayerID == playerID {
			return roster.Pick{}, fmt.Errorf("%w: player %s was already drafted at pick %d", ErrInvalidInput, playerID, pick.Number)
		}
	}

	next := len(picks) + 1
	managerID, ok := roster.ManagerAt(next, order)
	if !ok {
		return roster.Pick{}, fmt.Errorf("%w: no manager on the clock for pick %d", ErrInvalidState, next)
	}

	pick := roster.Pick{
		Number:    next,
		Round:     roster.RoundOf(next, len(order)),
		ManagerID: managerID,
		PlayerID:  playerID,
		PickedAt:  s.now().UTC(),
	}
	if err := pick.Validate(); err != nil {
		return roster.Pick{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.rosterRepo.AppendPick(ctx, pick); err != nil {
		return roster.Pick{}, fmt.Errorf("append draft pick: %w", err)
	}

	if next == total {
		entries := make([]roster.Entry, 0, total)
		for _, p := range append(picks, pick) {
			entries = append(entries, roster.Entry{ManagerID: p.ManagerID, PlayerID: p.PlayerID})
		}
		if err := s.rosterRepo.ReplaceEntries(ctx, entries); err != nil {
			return roster.Pick{}, fmt.Errorf("materialize rosters from draft log: %w", err)
		}
	}

	return pick, nil
}

// AvailablePlayers lists the undrafted, healthy part of the pool. Injured
// players stay in the pool but are hidden here; drafting one explicitly is
// still allowed.
func (s *DraftService) AvailablePlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.AvailablePlayers")
	defer span.End()

	pool, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	picks, err := s.rosterRepo.ListPicks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list draft picks: %w", err)
	}

	drafted := make(map[string]struct{}, len(picks))
	for _, pick := range picks {
		drafted[pick.PlayerID] = struct{}{}
	}

	out := make([]player.Player, 0, len(pool))
	for _, p := range pool {
		if _, taken := drafted[p.ID]; taken {
			continue
		}
		if p.Injured() {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

type RosterView struct {
	ManagerID string
	Players   []player.Player
}

func (s *DraftService) Rosters(ctx context.Context) ([]RosterView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Rosters")
	defer span.End()

	managers, err := s.managerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}

	out := make([]RosterView, 0, len(managers))
	for _, m := range managers {
		view, err := s.RosterByManager(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}

	return out, nil
}

func (s *DraftService) RosterByManager(ctx context.Context, managerID string) (RosterView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.RosterByManager")
	defer span.End()

	managerID = strings.TrimSpace(managerID)
	if managerID == "" {
		return RosterView{}, fmt.Errorf("%w: manager_id is required", ErrInvalidInput)
	}
	if _, exists, err := s.managerRepo.GetByID(ctx, managerID); err != nil {
		return RosterView{}, fmt.Errorf("get manager by id: %w", err)
	} else if !exists {
		return RosterView{}, fmt.Errorf("%w: manager=%s", ErrNotFound, managerID)
	}

	entries, err := s.rosterRepo.ListEntriesByManager(ctx, managerID)
	if err != nil {
		return RosterView{}, fmt.Errorf("list roster entries: %w", err)
	}

	playerIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		playerIDs = append(playerIDs, e.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return RosterView{}, fmt.Errorf("get roster players: %w", err)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })

	return RosterView{ManagerID: managerID, Players: players}, nil
}

func (s *DraftService) draftOrder(ctx context.Context) ([]string, error) {
	managers, err := s.managerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	if len(managers) == 0 {
		return nil, fmt.Errorf("%w: no managers registered", ErrInvalidState)
	}

	order := make([]string, 0, len(managers))
	for _, m := range managers {
		order = append(order, m.ID)
	}
	return order, nil
}
