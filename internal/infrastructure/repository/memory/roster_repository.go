package memory

import (
	"context"
	"sync"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/roster"
)

type RosterRepository struct {
	mu      sync.RWMutex
	picks   []roster.Pick
	entries []roster.Entry
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{}
}

func (r *RosterRepository) ListPicks(_ context.Context) ([]roster.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Pick, 0, len(r.picks))
	out = append(out, r.picks...)

	return out, nil
}

func (r *RosterRepository) AppendPick(_ context.Context, pick roster.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.picks = append(r.picks, pick)
	return nil
}

func (r *RosterRepository) ListEntries(_ context.Context) ([]roster.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Entry, 0, len(r.entries))
	out = append(out, r.entries...)

	return out, nil
}

func (r *RosterRepository) ListEntriesByManager(_ context.Context, managerID string) ([]roster.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if e.ManagerID == managerID {
			out = append(out, e)
		}
	}

	return out, nil
}

func (r *RosterRepository) ReplaceEntries(_ context.Context, entries []roster.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append([]roster.Entry(nil), entries...)
	return nil
}
