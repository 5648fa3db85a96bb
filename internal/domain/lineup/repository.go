package lineup

import "context"

// Repository exposes lineup submission persistence operations. Only explicit
// submissions are stored; inherited and default lineups are derived at read
// time.
type Repository interface {
	Get(ctx context.Context, managerID, date string) (Lineup, bool, error)
	ListByManager(ctx context.Context, managerID string) ([]Lineup, error)
	ListByDate(ctx context.Context, date string) ([]Lineup, error)
	Upsert(ctx context.Context, submission Lineup) error
}
