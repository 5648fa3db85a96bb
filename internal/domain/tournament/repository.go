package tournament

import "context"

// Repository exposes tournament persistence operations.
type Repository interface {
	ListNominations(ctx context.Context) ([]Nomination, error)
	GetNomination(ctx context.Context, managerID string) (Nomination, bool, error)
	UpsertNomination(ctx context.Context, nomination Nomination) error
	DeleteNomination(ctx context.Context, managerID string) error

	GetBracket(ctx context.Context) (Bracket, bool, error)
	SaveBracket(ctx context.Context, bracket Bracket) error
}
