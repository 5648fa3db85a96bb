package scoring

import "context"

// Repository exposes derived score persistence. Both tables are projections
// of the stat history: ClearDerived wipes them so a full replay can rebuild
// the same rows.
type Repository interface {
	ReplaceGameScores(ctx context.Context, gameID string, gameScores []PlayerGameScore) error
	ListGameScores(ctx context.Context, gameID string) ([]PlayerGameScore, error)
	ListScoresByPlayer(ctx context.Context, playerID string) ([]PlayerGameScore, error)

	UpsertDailyScore(ctx context.Context, dailyScore ManagerDailyScore) error
	DeleteDailyScore(ctx context.Context, managerID, date string) error
	ListDailyScores(ctx context.Context) ([]ManagerDailyScore, error)
	ListDailyScoresByManager(ctx context.Context, managerID string) ([]ManagerDailyScore, error)
	ListDailyScoresByDate(ctx context.Context, date string) ([]ManagerDailyScore, error)

	ClearDerived(ctx context.Context) error
}
