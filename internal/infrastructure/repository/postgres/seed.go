package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the league reference data on an empty database: the
// eight franchises, the player pool and the season schedule. A database that
// already has managers is left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM managers`); err != nil {
		return fmt.Errorf("count managers for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range memory.SeedManagers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO managers (public_id, name, team_name)
VALUES (:public_id, :name, :team_name)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": m.ID,
			"name":      m.Name,
			"team_name": m.TeamName,
		})
		if err != nil {
			return fmt.Errorf("bind seed manager %s query: %w", m.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed manager %s: %w", m.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (public_id, name, pro_team, status)
VALUES (:public_id, :name, :pro_team, :status)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": p.ID,
			"name":      p.Name,
			"pro_team":  p.ProTeam,
			"status":    string(p.Status),
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	for _, g := range memory.SeedSchedule() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO games (public_id, game_date, tipoff_at, home_team, away_team, status)
VALUES (:public_id, :game_date, :tipoff_at, :home_team, :away_team, :status)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": g.ID,
			"game_date": g.Date,
			"tipoff_at": g.TipoffAt,
			"home_team": g.HomeTeam,
			"away_team": g.AwayTeam,
			"status":    g.Status,
		})
		if err != nil {
			return fmt.Errorf("bind seed game %s query: %w", g.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed game %s: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
