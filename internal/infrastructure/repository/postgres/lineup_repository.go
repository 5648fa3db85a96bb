package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/lineup"
	qb "github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/querybuilder"
	"github.com/lib/pq"
)

// LineupRepository stores only explicit submissions; inherited and default
// lineups are derived at read time by the use cases.
type LineupRepository struct {
	db *sqlx.DB
}

var lineupSelectColumns = []string{
	"id",
	"manager_public_id",
	"effective_date",
	"player_ids",
	"submitted_at",
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) Get(ctx context.Context, managerID, date string) (lineup.Lineup, bool, error) {
	query, args, err := qb.Select(lineupSelectColumns...).From("lineups").
		Where(
			qb.Eq("manager_public_id", managerID),
			qb.Eq("effective_date", date),
		).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup: %w", err)
	}

	return lineupToDomain(row), true, nil
}

func (r *LineupRepository) ListByManager(ctx context.Context, managerID string) ([]lineup.Lineup, error) {
	query, args, err := qb.Select(lineupSelectColumns...).From("lineups").
		Where(qb.Eq("manager_public_id", managerID)).
		OrderBy("effective_date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups by manager query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups by manager: %w", err)
	}

	return lineupsToDomain(rows), nil
}

func (r *LineupRepository) ListByDate(ctx context.Context, date string) ([]lineup.Lineup, error) {
	query, args, err := qb.Select(lineupSelectColumns...).From("lineups").
		Where(qb.Eq("effective_date", date)).
		OrderBy("manager_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups by date query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups by date: %w", err)
	}

	return lineupsToDomain(rows), nil
}

// Upsert keeps one submission per manager and date. Resubmitting before the
// lock overwrites the earlier trio.
func (r *LineupRepository) Upsert(ctx context.Context, submission lineup.Lineup) error {
	insertModel := lineupInsertModel{
		ManagerID:   submission.ManagerID,
		Date:        submission.Date,
		PlayerIDs:   pq.StringArray(submission.PlayerIDs),
		SubmittedAt: submission.SubmittedAt,
	}
	query, args, err := qb.InsertModel("lineups", insertModel, `ON CONFLICT (manager_public_id, effective_date)
DO UPDATE SET
    player_ids = EXCLUDED.player_ids,
    submitted_at = EXCLUDED.submitted_at`)
	if err != nil {
		return fmt.Errorf("build upsert lineup query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert lineup %s/%s: %w", submission.ManagerID, submission.Date, err)
	}
	return nil
}

func lineupToDomain(row lineupTableModel) lineup.Lineup {
	return lineup.Lineup{
		ManagerID:   row.ManagerID,
		Date:        row.Date,
		PlayerIDs:   append([]string(nil), row.PlayerIDs...),
		SubmittedAt: row.SubmittedAt,
	}
}

func lineupsToDomain(rows []lineupTableModel) []lineup.Lineup {
	out := make([]lineup.Lineup, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineupToDomain(row))
	}
	return out
}
