package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/manager"
	qb "github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/querybuilder"
)

type ManagerRepository struct {
	db *sqlx.DB
}

var managerSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"team_name",
	"created_at",
	"updated_at",
}

func NewManagerRepository(db *sqlx.DB) *ManagerRepository {
	return &ManagerRepository{db: db}
}

// List orders by public_id: that ordering is the draft order and the
// standings tie break.
func (r *ManagerRepository) List(ctx context.Context) ([]manager.Manager, error) {
	query, args, err := qb.Select(managerSelectColumns...).From("managers").
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list managers query: %w", err)
	}

	var rows []managerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}

	out := make([]manager.Manager, 0, len(rows))
	for _, row := range rows {
		out = append(out, manager.Manager{
			ID:       row.PublicID,
			Name:     row.Name,
			TeamName: row.TeamName,
		})
	}
	return out, nil
}

func (r *ManagerRepository) GetByID(ctx context.Context, managerID string) (manager.Manager, bool, error) {
	query, args, err := qb.Select(managerSelectColumns...).From("managers").
		Where(qb.Eq("public_id", managerID)).
		ToSQL()
	if err != nil {
		return manager.Manager{}, false, fmt.Errorf("build get manager query: %w", err)
	}

	var row managerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return manager.Manager{}, false, nil
		}
		return manager.Manager{}, false, fmt.Errorf("get manager: %w", err)
	}

	return manager.Manager{
		ID:       row.PublicID,
		Name:     row.Name,
		TeamName: row.TeamName,
	}, true, nil
}
