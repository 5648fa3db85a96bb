package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/manager"
)

// ManagerService answers read queries about the league's managers.
type ManagerService struct {
	managerRepo manager.Repository
}

func NewManagerService(managerRepo manager.Repository) *ManagerService {
	return &ManagerService{managerRepo: managerRepo}
}

// List returns all managers in draft order.
func (s *ManagerService) List(ctx context.Context) ([]manager.Manager, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.List")
	defer span.End()

	managers, err := s.managerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	return managers, nil
}

// Get returns one manager by id.
func (s *ManagerService) Get(ctx context.Context, managerID string) (manager.Manager, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.Get")
	defer span.End()

	managerID = strings.TrimSpace(managerID)
	if managerID == "" {
		return manager.Manager{}, fmt.Errorf("%w: manager_id is required", ErrInvalidInput)
	}

	m, exists, err := s.managerRepo.GetByID(ctx, managerID)
	if err != nil {
		return manager.Manager{}, fmt.Errorf("get manager by id: %w", err)
	}
	if !exists {
		return manager.Manager{}, fmt.Errorf("%w: manager=%s", ErrNotFound, managerID)
	}
	return m, nil
}
