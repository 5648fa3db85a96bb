package schedule

import "context"

// Repository exposes schedule persistence operations.
type Repository interface {
	List(ctx context.Context) ([]Game, error)
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	ListByDate(ctx context.Context, date string) ([]Game, error)
	ListDates(ctx context.Context) ([]string, error)
	UpsertMany(ctx context.Context, games []Game) error
}
