package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/stats"
	qb "github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/querybuilder"
)

type StatsRepository struct {
	db *sqlx.DB
}

var statLineSelectColumns = []string{
	"id",
	"game_public_id",
	"player_public_id",
	"one_pt",
	"two_pt",
	"ft",
	"reb",
	"ast",
	"stl",
	"blk",
	"tov",
	"pf",
	"game_winner",
	"dunk",
	"created_at",
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// ReplaceGameLines purges the game's stored lines and inserts the new batch,
// so re-ingesting a corrected feed converges instead of accumulating.
func (r *StatsRepository) ReplaceGameLines(ctx context.Context, gameID string, lines []stats.Line) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace game lines: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("stat_lines").
		Where(qb.Eq("game_public_id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear game lines query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear game lines: %w", err)
	}

	for _, line := range lines {
		query, args, err := qb.InsertModel("stat_lines", statLineInsertFromDomain(line), "")
		if err != nil {
			return fmt.Errorf("build insert stat line query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert stat line %s/%s: %w", line.GameID, line.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace game lines tx: %w", err)
	}
	return nil
}

func (r *StatsRepository) ListByGame(ctx context.Context, gameID string) ([]stats.Line, error) {
	query, args, err := qb.Select(statLineSelectColumns...).From("stat_lines").
		Where(qb.Eq("game_public_id", gameID)).
		OrderBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list game lines query: %w", err)
	}

	var rows []statLineTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list game lines: %w", err)
	}

	return statLinesToDomain(rows), nil
}

func (r *StatsRepository) ListByPlayer(ctx context.Context, playerID string) ([]stats.Line, error) {
	query, args, err := qb.Select(statLineSelectColumns...).From("stat_lines").
		Where(qb.Eq("player_public_id", playerID)).
		OrderBy("game_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player lines query: %w", err)
	}

	var rows []statLineTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player lines: %w", err)
	}

	return statLinesToDomain(rows), nil
}

func (r *StatsRepository) ListAll(ctx context.Context) ([]stats.Line, error) {
	query, args, err := qb.Select(statLineSelectColumns...).From("stat_lines").
		OrderBy("game_public_id", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list all lines query: %w", err)
	}

	var rows []statLineTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list all lines: %w", err)
	}

	return statLinesToDomain(rows), nil
}

func statLinesToDomain(rows []statLineTableModel) []stats.Line {
	out := make([]stats.Line, 0, len(rows))
	for _, row := range rows {
		out = append(out, statLineToDomain(row))
	}
	return out
}
