package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/tournament"
	qb "github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/querybuilder"
)

// TournamentRepository persists nominations and the bracket. The bracket is
// spread over a singleton state row plus seed, matchup and window tables, and
// SaveBracket rewrites the whole snapshot in one transaction.
type TournamentRepository struct {
	db *sqlx.DB
}

var nominationSelectColumns = []string{
	"id",
	"manager_public_id",
	"player_public_id",
	"nominated_at",
	"deleted_at",
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) ListNominations(ctx context.Context) ([]tournament.Nomination, error) {
	query, args, err := qb.Select(nominationSelectColumns...).From("tournament_nominations").
		Where(qb.IsNull("deleted_at")).
		OrderBy("manager_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list nominations query: %w", err)
	}

	var rows []nominationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list nominations: %w", err)
	}

	out := make([]tournament.Nomination, 0, len(rows))
	for _, row := range rows {
		out = append(out, nominationToDomain(row))
	}
	return out, nil
}

func (r *TournamentRepository) GetNomination(ctx context.Context, managerID string) (tournament.Nomination, bool, error) {
	query, args, err := qb.Select(nominationSelectColumns...).From("tournament_nominations").
		Where(
			qb.Eq("manager_public_id", managerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return tournament.Nomination{}, false, fmt.Errorf("build get nomination query: %w", err)
	}

	var row nominationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Nomination{}, false, nil
		}
		return tournament.Nomination{}, false, fmt.Errorf("get nomination: %w", err)
	}

	return nominationToDomain(row), true, nil
}

func (r *TournamentRepository) UpsertNomination(ctx context.Context, nomination tournament.Nomination) error {
	insertModel := nominationInsertModel{
		ManagerID:   nomination.ManagerID,
		PlayerID:    nomination.PlayerID,
		NominatedAt: nomination.NominatedAt,
	}
	query, args, err := qb.InsertModel("tournament_nominations", insertModel, `ON CONFLICT (manager_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    player_public_id = EXCLUDED.player_public_id,
    nominated_at = EXCLUDED.nominated_at,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert nomination query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert nomination %s: %w", nomination.ManagerID, err)
	}
	return nil
}

// DeleteNomination withdraws a manager's entry. The row is kept with a
// deleted_at stamp so a later nomination starts fresh.
func (r *TournamentRepository) DeleteNomination(ctx context.Context, managerID string) error {
	query, args, err := qb.Update("tournament_nominations").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("manager_public_id", managerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build withdraw nomination query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("withdraw nomination %s: %w", managerID, err)
	}
	return nil
}

func (r *TournamentRepository) GetBracket(ctx context.Context) (tournament.Bracket, bool, error) {
	stateQuery, stateArgs, err := qb.Select("id", "updated_at").From("tournament_bracket_state").
		Where(qb.Eq("id", 1)).
		ToSQL()
	if err != nil {
		return tournament.Bracket{}, false, fmt.Errorf("build get bracket state query: %w", err)
	}

	var state bracketStateTableModel
	if err := r.db.GetContext(ctx, &state, stateQuery, stateArgs...); err != nil {
		if isNotFound(err) {
			return tournament.Bracket{}, false, nil
		}
		return tournament.Bracket{}, false, fmt.Errorf("get bracket state: %w", err)
	}

	seedsQuery, seedsArgs, err := qb.Select("id", "seed", "manager_public_id", "player_public_id").
		From("tournament_seeds").
		OrderBy("seed").
		ToSQL()
	if err != nil {
		return tournament.Bracket{}, false, fmt.Errorf("build get bracket seeds query: %w", err)
	}
	var seedRows []bracketSeedTableModel
	if err := r.db.SelectContext(ctx, &seedRows, seedsQuery, seedsArgs...); err != nil {
		return tournament.Bracket{}, false, fmt.Errorf("get bracket seeds: %w", err)
	}

	matchupsQuery, matchupsArgs, err := qb.Select(
		"id", "round", "position", "home_seed", "away_seed",
		"home_points", "away_points", "winner_seed", "resolved",
	).
		From("tournament_matchups").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return tournament.Bracket{}, false, fmt.Errorf("build get bracket matchups query: %w", err)
	}
	var matchupRows []bracketMatchupTableModel
	if err := r.db.SelectContext(ctx, &matchupRows, matchupsQuery, matchupsArgs...); err != nil {
		return tournament.Bracket{}, false, fmt.Errorf("get bracket matchups: %w", err)
	}

	windowsQuery, windowsArgs, err := qb.Select("id", "round", "start_date", "end_date").
		From("tournament_windows").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return tournament.Bracket{}, false, fmt.Errorf("build get bracket windows query: %w", err)
	}
	var windowRows []bracketWindowTableModel
	if err := r.db.SelectContext(ctx, &windowRows, windowsQuery, windowsArgs...); err != nil {
		return tournament.Bracket{}, false, fmt.Errorf("get bracket windows: %w", err)
	}

	bracket := tournament.Bracket{
		Seeds:     make([]tournament.Seed, 0, len(seedRows)),
		Matchups:  make([]tournament.Matchup, 0, len(matchupRows)),
		UpdatedAt: state.UpdatedAt,
	}
	for _, row := range seedRows {
		bracket.Seeds = append(bracket.Seeds, tournament.Seed{
			Seed:      row.Seed,
			ManagerID: row.ManagerID,
			PlayerID:  row.PlayerID,
		})
	}
	for _, row := range matchupRows {
		bracket.Matchups = append(bracket.Matchups, tournament.Matchup{
			Round:      tournament.Round(row.Round),
			Position:   row.Position,
			HomeSeed:   row.HomeSeed,
			AwaySeed:   row.AwaySeed,
			HomePoints: row.HomePoints,
			AwayPoints: row.AwayPoints,
			WinnerSeed: row.WinnerSeed,
			Resolved:   row.Resolved,
		})
	}
	if len(windowRows) > 0 {
		bracket.Windows = make(map[tournament.Round]tournament.Window, len(windowRows))
		for _, row := range windowRows {
			bracket.Windows[tournament.Round(row.Round)] = tournament.Window{
				StartDate: row.StartDate,
				EndDate:   row.EndDate,
			}
		}
	}

	return bracket, true, nil
}

func (r *TournamentRepository) SaveBracket(ctx context.Context, bracket tournament.Bracket) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx save bracket: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stateQuery, stateArgs, err := qb.InsertInto("tournament_bracket_state").
		Columns("id", "updated_at").
		Values(1, bracket.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET updated_at = EXCLUDED.updated_at`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert bracket state query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, stateQuery, stateArgs...); err != nil {
		return fmt.Errorf("upsert bracket state: %w", err)
	}

	for _, table := range []string{"tournament_seeds", "tournament_matchups", "tournament_windows"} {
		clearQuery, clearArgs, err := qb.DeleteFrom(table).ToSQL()
		if err != nil {
			return fmt.Errorf("build clear %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, seed := range bracket.Seeds {
		insertModel := bracketSeedInsertModel{
			Seed:      seed.Seed,
			ManagerID: seed.ManagerID,
			PlayerID:  seed.PlayerID,
		}
		query, args, err := qb.InsertModel("tournament_seeds", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert bracket seed query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert bracket seed %d: %w", seed.Seed, err)
		}
	}

	for _, matchup := range bracket.Matchups {
		insertModel := bracketMatchupInsertModel{
			Round:      string(matchup.Round),
			Position:   matchup.Position,
			HomeSeed:   matchup.HomeSeed,
			AwaySeed:   matchup.AwaySeed,
			HomePoints: matchup.HomePoints,
			AwayPoints: matchup.AwayPoints,
			WinnerSeed: matchup.WinnerSeed,
			Resolved:   matchup.Resolved,
		}
		query, args, err := qb.InsertModel("tournament_matchups", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert bracket matchup query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert bracket matchup %s/%d: %w", matchup.Round, matchup.Position, err)
		}
	}

	for round, window := range bracket.Windows {
		insertModel := bracketWindowInsertModel{
			Round:     string(round),
			StartDate: window.StartDate,
			EndDate:   window.EndDate,
		}
		query, args, err := qb.InsertModel("tournament_windows", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert bracket window query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert bracket window %s: %w", round, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save bracket tx: %w", err)
	}
	return nil
}

func nominationToDomain(row nominationTableModel) tournament.Nomination {
	return tournament.Nomination{
		ManagerID:   row.ManagerID,
		PlayerID:    row.PlayerID,
		NominatedAt: row.NominatedAt,
	}
}
