package manager

import "context"

// Repository describes manager persistence needs from use cases.
// List returns managers ordered by ascending id; that ordering is the
// draft order and the standings tie break, so it must be stable.
type Repository interface {
	List(ctx context.Context) ([]Manager, error)
	GetByID(ctx context.Context, managerID string) (Manager, bool, error)
}
