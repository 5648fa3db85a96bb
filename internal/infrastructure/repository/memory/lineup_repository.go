package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/lineup"
)

type LineupRepository struct {
	mu    sync.RWMutex
	items map[string]lineup.Lineup
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{items: make(map[string]lineup.Lineup)}
}

func (r *LineupRepository) Get(_ context.Context, managerID, date string) (lineup.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[lineupKey(managerID, date)]
	if !ok {
		return lineup.Lineup{}, false, nil
	}

	return cloneLineup(item), true, nil
}

func (r *LineupRepository) ListByManager(_ context.Context, managerID string) ([]lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lineup.Lineup, 0)
	for _, item := range r.items {
		if item.ManagerID == managerID {
			out = append(out, cloneLineup(item))
		}
	}
	sortLineups(out)

	return out, nil
}

func (r *LineupRepository) ListByDate(_ context.Context, date string) ([]lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lineup.Lineup, 0)
	for _, item := range r.items {
		if item.Date == date {
			out = append(out, cloneLineup(item))
		}
	}
	sortLineups(out)

	return out, nil
}

func (r *LineupRepository) Upsert(_ context.Context, submission lineup.Lineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[lineupKey(submission.ManagerID, submission.Date)] = cloneLineup(submission)
	return nil
}

func lineupKey(managerID, date string) string {
	return managerID + "::" + date
}

func sortLineups(items []lineup.Lineup) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		return items[i].ManagerID < items[j].ManagerID
	})
}

func cloneLineup(item lineup.Lineup) lineup.Lineup {
	copied := item
	copied.PlayerIDs = append([]string(nil), item.PlayerIDs...)
	return copied
}
