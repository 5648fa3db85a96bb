package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/scoring"
	qb "github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/querybuilder"
	"github.com/lib/pq"
)

// ScoringRepository stores the two derived projections: per game player
// scores and per date manager totals. Both are rebuilt from the stat history,
// never edited in place.
type ScoringRepository struct {
	db *sqlx.DB
}

var playerGameScoreSelectColumns = []string{
	"id",
	"game_public_id",
	"player_public_id",
	"game_date",
	"points",
}

var managerDailyScoreSelectColumns = []string{
	"id",
	"manager_public_id",
	"score_date",
	"points",
	"player_ids",
	"computed_at",
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) ReplaceGameScores(ctx context.Context, gameID string, gameScores []scoring.PlayerGameScore) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace game scores: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("player_game_scores").
		Where(qb.Eq("game_public_id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear game scores query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear game scores: %w", err)
	}

	for _, score := range gameScores {
		insertModel := playerGameScoreInsertModel{
			GameID:   score.GameID,
			PlayerID: score.PlayerID,
			GameDate: score.Date,
			Points:   score.Points,
		}
		query, args, err := qb.InsertModel("player_game_scores", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert game score query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert game score %s/%s: %w", score.GameID, score.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace game scores tx: %w", err)
	}
	return nil
}

func (r *ScoringRepository) ListGameScores(ctx context.Context, gameID string) ([]scoring.PlayerGameScore, error) {
	query, args, err := qb.Select(playerGameScoreSelectColumns...).From("player_game_scores").
		Where(qb.Eq("game_public_id", gameID)).
		OrderBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list game scores query: %w", err)
	}

	var rows []playerGameScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list game scores: %w", err)
	}

	return playerGameScoresToDomain(rows), nil
}

func (r *ScoringRepository) ListScoresByPlayer(ctx context.Context, playerID string) ([]scoring.PlayerGameScore, error) {
	query, args, err := qb.Select(playerGameScoreSelectColumns...).From("player_game_scores").
		Where(qb.Eq("player_public_id", playerID)).
		OrderBy("game_date", "game_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player scores query: %w", err)
	}

	var rows []playerGameScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player scores: %w", err)
	}

	return playerGameScoresToDomain(rows), nil
}

func (r *ScoringRepository) UpsertDailyScore(ctx context.Context, dailyScore scoring.ManagerDailyScore) error {
	insertModel := managerDailyScoreInsertModel{
		ManagerID:  dailyScore.ManagerID,
		ScoreDate:  dailyScore.Date,
		Points:     dailyScore.Points,
		PlayerIDs:  pq.StringArray(dailyScore.PlayerIDs),
		ComputedAt: dailyScore.ComputedAt,
	}
	query, args, err := qb.InsertModel("manager_daily_scores", insertModel, `ON CONFLICT (manager_public_id, score_date)
DO UPDATE SET
    points = EXCLUDED.points,
    player_ids = EXCLUDED.player_ids,
    computed_at = EXCLUDED.computed_at`)
	if err != nil {
		return fmt.Errorf("build upsert daily score query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert daily score %s/%s: %w", dailyScore.ManagerID, dailyScore.Date, err)
	}
	return nil
}

func (r *ScoringRepository) DeleteDailyScore(ctx context.Context, managerID, date string) error {
	query, args, err := qb.DeleteFrom("manager_daily_scores").
		Where(
			qb.Eq("manager_public_id", managerID),
			qb.Eq("score_date", date),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete daily score query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete daily score %s/%s: %w", managerID, date, err)
	}
	return nil
}

func (r *ScoringRepository) ListDailyScores(ctx context.Context) ([]scoring.ManagerDailyScore, error) {
	query, args, err := qb.Select(managerDailyScoreSelectColumns...).From("manager_daily_scores").
		OrderBy("score_date", "manager_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list daily scores query: %w", err)
	}

	var rows []managerDailyScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list daily scores: %w", err)
	}

	return managerDailyScoresToDomain(rows), nil
}

func (r *ScoringRepository) ListDailyScoresByManager(ctx context.Context, managerID string) ([]scoring.ManagerDailyScore, error) {
	query, args, err := qb.Select(managerDailyScoreSelectColumns...).From("manager_daily_scores").
		Where(qb.Eq("manager_public_id", managerID)).
		OrderBy("score_date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list daily scores by manager query: %w", err)
	}

	var rows []managerDailyScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list daily scores by manager: %w", err)
	}

	return managerDailyScoresToDomain(rows), nil
}

func (r *ScoringRepository) ListDailyScoresByDate(ctx context.Context, date string) ([]scoring.ManagerDailyScore, error) {
	query, args, err := qb.Select(managerDailyScoreSelectColumns...).From("manager_daily_scores").
		Where(qb.Eq("score_date", date)).
		OrderBy("manager_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list daily scores by date query: %w", err)
	}

	var rows []managerDailyScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list daily scores by date: %w", err)
	}

	return managerDailyScoresToDomain(rows), nil
}

// ClearDerived wipes both projections ahead of a full replay.
func (r *ScoringRepository) ClearDerived(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx clear derived scores: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"player_game_scores", "manager_daily_scores"} {
		query, args, err := qb.DeleteFrom(table).ToSQL()
		if err != nil {
			return fmt.Errorf("build clear %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear derived scores tx: %w", err)
	}
	return nil
}

func playerGameScoresToDomain(rows []playerGameScoreTableModel) []scoring.PlayerGameScore {
	out := make([]scoring.PlayerGameScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.PlayerGameScore{
			GameID:   row.GameID,
			PlayerID: row.PlayerID,
			Date:     row.GameDate,
			Points:   row.Points,
		})
	}
	return out
}

func managerDailyScoresToDomain(rows []managerDailyScoreTableModel) []scoring.ManagerDailyScore {
	out := make([]scoring.ManagerDailyScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.ManagerDailyScore{
			ManagerID:  row.ManagerID,
			Date:       row.ScoreDate,
			Points:     row.Points,
			PlayerIDs:  append([]string(nil), row.PlayerIDs...),
			ComputedAt: row.ComputedAt,
		})
	}
	return out
}
