package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/roster"
	qb "github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

var draftPickSelectColumns = []string{
	"id",
	"pick_number",
	"round",
	"manager_public_id",
	"player_public_id",
	"picked_at",
}

var rosterEntrySelectColumns = []string{
	"id",
	"manager_public_id",
	"player_public_id",
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListPicks(ctx context.Context) ([]roster.Pick, error) {
	query, args, err := qb.Select(draftPickSelectColumns...).From("draft_picks").
		OrderBy("pick_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list draft picks query: %w", err)
	}

	var rows []draftPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list draft picks: %w", err)
	}

	out := make([]roster.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Pick{
			Number:    row.Number,
			Round:     row.Round,
			ManagerID: row.ManagerID,
			PlayerID:  row.PlayerID,
			PickedAt:  row.PickedAt,
		})
	}
	return out, nil
}

// AppendPick inserts one draft pick. The pick number and the player both
// carry unique indexes, so a double submission surfaces as a constraint
// violation instead of silently rewriting history.
func (r *RosterRepository) AppendPick(ctx context.Context, pick roster.Pick) error {
	insertModel := draftPickInsertModel{
		Number:    pick.Number,
		Round:     pick.Round,
		ManagerID: pick.ManagerID,
		PlayerID:  pick.PlayerID,
		PickedAt:  pick.PickedAt,
	}
	query, args, err := qb.InsertModel("draft_picks", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert draft pick query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert draft pick %d: %w", pick.Number, err)
	}
	return nil
}

func (r *RosterRepository) ListEntries(ctx context.Context) ([]roster.Entry, error) {
	query, args, err := qb.Select(rosterEntrySelectColumns...).From("roster_entries").
		OrderBy("manager_public_id", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster entries query: %w", err)
	}

	var rows []rosterEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list roster entries: %w", err)
	}

	return rosterEntriesToDomain(rows), nil
}

func (r *RosterRepository) ListEntriesByManager(ctx context.Context, managerID string) ([]roster.Entry, error) {
	query, args, err := qb.Select(rosterEntrySelectColumns...).From("roster_entries").
		Where(qb.Eq("manager_public_id", managerID)).
		OrderBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster entries by manager query: %w", err)
	}

	var rows []rosterEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list roster entries by manager: %w", err)
	}

	return rosterEntriesToDomain(rows), nil
}

// ReplaceEntries swaps the full roster table for the given entries. The draft
// completion writes rosters this way so a partial failure never leaves a
// mixed state.
func (r *RosterRepository) ReplaceEntries(ctx context.Context, entries []roster.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace roster entries: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("roster_entries").ToSQL()
	if err != nil {
		return fmt.Errorf("build clear roster entries query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear roster entries: %w", err)
	}

	for _, entry := range entries {
		insertModel := rosterEntryInsertModel{
			ManagerID: entry.ManagerID,
			PlayerID:  entry.PlayerID,
		}
		query, args, err := qb.InsertModel("roster_entries", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert roster entry query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert roster entry %s/%s: %w", entry.ManagerID, entry.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace roster entries tx: %w", err)
	}
	return nil
}

func rosterEntriesToDomain(rows []rosterEntryTableModel) []roster.Entry {
	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Entry{
			ManagerID: row.ManagerID,
			PlayerID:  row.PlayerID,
		})
	}
	return out
}
