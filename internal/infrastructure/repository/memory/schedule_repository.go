package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/schedule"
)

type ScheduleRepository struct {
	mu    sync.RWMutex
	games map[string]schedule.Game
}

func NewScheduleRepository(games []schedule.Game) *ScheduleRepository {
	items := make(map[string]schedule.Game, len(games))
	for _, g := range games {
		items[g.ID] = g
	}

	return &ScheduleRepository{games: items}
}

func (r *ScheduleRepository) List(_ context.Context) ([]schedule.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, g)
	}
	sortGames(out)

	return out, nil
}

func (r *ScheduleRepository) GetByID(_ context.Context, gameID string) (schedule.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[gameID]
	if !ok {
		return schedule.Game{}, false, nil
	}

	return g, true, nil
}

func (r *ScheduleRepository) ListByDate(_ context.Context, date string) ([]schedule.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Game, 0)
	for _, g := range r.games {
		if g.Date == date {
			out = append(out, g)
		}
	}
	sortGames(out)

	return out, nil
}

func (r *ScheduleRepository) ListDates(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, g := range r.games {
		if _, ok := seen[g.Date]; ok {
			continue
		}
		seen[g.Date] = struct{}{}
		out = append(out, g.Date)
	}
	sort.Strings(out)

	return out, nil
}

func (r *ScheduleRepository) UpsertMany(_ context.Context, games []schedule.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range games {
		r.games[g.ID] = g
	}
	return nil
}

func sortGames(games []schedule.Game) {
	sort.Slice(games, func(i, j int) bool {
		if games[i].TipoffAt.Equal(games[j].TipoffAt) {
			return games[i].ID < games[j].ID
		}
		return games[i].TipoffAt.Before(games[j].TipoffAt)
	})
}
