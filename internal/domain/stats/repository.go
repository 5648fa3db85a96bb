package stats

import "context"

// Repository exposes box score persistence operations. ReplaceGameLines makes
// repeated ingestion of the same game idempotent: the new lines fully replace
// whatever was stored before.
type Repository interface {
	ReplaceGameLines(ctx context.Context, gameID string, lines []Line) error
	ListByGame(ctx context.Context, gameID string) ([]Line, error)
	ListByPlayer(ctx context.Context, playerID string) ([]Line, error)
	ListAll(ctx context.Context) ([]Line, error)
}
