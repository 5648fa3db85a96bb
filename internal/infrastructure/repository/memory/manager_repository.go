package memory

import (
	"context"
	"sync"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/manager"
)

type ManagerRepository struct {
	mu       sync.RWMutex
	managers []manager.Manager
	index    map[string]manager.Manager
}

// NewManagerRepository keeps managers in their given order; that order is the
// draft order.
func NewManagerRepository(managers []manager.Manager) *ManagerRepository {
	index := make(map[string]manager.Manager, len(managers))
	for _, m := range managers {
		index[m.ID] = m
	}

	return &ManagerRepository{
		managers: append([]manager.Manager(nil), managers...),
		index:    index,
	}
}

func (r *ManagerRepository) List(_ context.Context) ([]manager.Manager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]manager.Manager, 0, len(r.managers))
	out = append(out, r.managers...)

	return out, nil
}

func (r *ManagerRepository) GetByID(_ context.Context, managerID string) (manager.Manager, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.index[managerID]
	if !ok {
		return manager.Manager{}, false, nil
	}

	return m, true, nil
}
