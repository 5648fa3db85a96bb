package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/schedule"
	qb "github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/querybuilder"
)

type ScheduleRepository struct {
	db *sqlx.DB
}

var gameSelectColumns = []string{
	"id",
	"public_id",
	"game_date",
	"tipoff_at",
	"home_team",
	"away_team",
	"status",
	"created_at",
	"updated_at",
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) List(ctx context.Context) ([]schedule.Game, error) {
	query, args, err := qb.Select(gameSelectColumns...).From("games").
		OrderBy("game_date", "tipoff_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	out := make([]schedule.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameToDomain(row))
	}
	return out, nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, gameID string) (schedule.Game, bool, error) {
	query, args, err := qb.Select(gameSelectColumns...).From("games").
		Where(qb.Eq("public_id", gameID)).
		ToSQL()
	if err != nil {
		return schedule.Game{}, false, fmt.Errorf("build get game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return schedule.Game{}, false, nil
		}
		return schedule.Game{}, false, fmt.Errorf("get game: %w", err)
	}

	return gameToDomain(row), true, nil
}

func (r *ScheduleRepository) ListByDate(ctx context.Context, date string) ([]schedule.Game, error) {
	query, args, err := qb.Select(gameSelectColumns...).From("games").
		Where(qb.Eq("game_date", date)).
		OrderBy("tipoff_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games by date query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games by date: %w", err)
	}

	out := make([]schedule.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameToDomain(row))
	}
	return out, nil
}

func (r *ScheduleRepository) ListDates(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("game_date").From("games").
		GroupBy("game_date").
		OrderBy("game_date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list game dates query: %w", err)
	}

	var dates []string
	if err := r.db.SelectContext(ctx, &dates, query, args...); err != nil {
		return nil, fmt.Errorf("list game dates: %w", err)
	}
	return dates, nil
}

// UpsertMany refreshes the schedule from a feed pull. Existing games keep
// their row and receive the feed's latest tipoff and status.
func (r *ScheduleRepository) UpsertMany(ctx context.Context, games []schedule.Game) error {
	if len(games) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert games: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, game := range games {
		insertModel := gameInsertModel{
			PublicID: game.ID,
			GameDate: game.Date,
			TipoffAt: game.TipoffAt,
			HomeTeam: game.HomeTeam,
			AwayTeam: game.AwayTeam,
			Status:   game.Status,
		}
		query, args, err := qb.InsertModel("games", insertModel, `ON CONFLICT (public_id)
DO UPDATE SET
    game_date = EXCLUDED.game_date,
    tipoff_at = EXCLUDED.tipoff_at,
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    status = EXCLUDED.status,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert game %s query: %w", game.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert game %s: %w", game.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert games tx: %w", err)
	}
	return nil
}

func gameToDomain(row gameTableModel) schedule.Game {
	return schedule.Game{
		ID:       row.PublicID,
		Date:     row.GameDate,
		TipoffAt: row.TipoffAt,
		HomeTeam: row.HomeTeam,
		AwayTeam: row.AwayTeam,
		Status:   row.Status,
	}
}
