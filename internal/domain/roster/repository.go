package roster

import "context"

// Repository exposes draft pick and roster persistence operations.
type Repository interface {
	ListPicks(ctx context.Context) ([]Pick, error)
	AppendPick(ctx context.Context, pick Pick) error

	ListEntries(ctx context.Context) ([]Entry, error)
	ListEntriesByManager(ctx context.Context, managerID string) ([]Entry, error)
	ReplaceEntries(ctx context.Context, entries []Entry) error
}
