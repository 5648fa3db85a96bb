package postgres

import (
	"time"

	"github.com/lib/pq"
)

type lineupTableModel struct {
	ID          int64          `db:"id"`
	ManagerID   string         `db:"manager_public_id"`
	Date        string         `db:"effective_date"`
	PlayerIDs   pq.StringArray `db:"player_ids"`
	SubmittedAt time.Time      `db:"submitted_at"`
}

type lineupInsertModel struct {
	ManagerID   string         `db:"manager_public_id"`
	Date        string         `db:"effective_date"`
	PlayerIDs   pq.StringArray `db:"player_ids"`
	SubmittedAt time.Time      `db:"submitted_at"`
}
