package player

import "context"

// Repository describes player pool persistence needs from use cases.
// The pool is supplied reference data; the core never mutates it.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
}
