package postgres

import "time"

type draftPickTableModel struct {
	ID        int64     `db:"id"`
	Number    int       `db:"pick_number"`
	Round     int       `db:"round"`
	ManagerID string    `db:"manager_public_id"`
	PlayerID  string    `db:"player_public_id"`
	PickedAt  time.Time `db:"picked_at"`
}

type draftPickInsertModel struct {
	Number    int       `db:"pick_number"`
	Round     int       `db:"round"`
	ManagerID string    `db:"manager_public_id"`
	PlayerID  string    `db:"player_public_id"`
	PickedAt  time.Time `db:"picked_at"`
}

type rosterEntryTableModel struct {
	ID        int64  `db:"id"`
	ManagerID string `db:"manager_public_id"`
	PlayerID  string `db:"player_public_id"`
}

type rosterEntryInsertModel struct {
	ManagerID string `db:"manager_public_id"`
	PlayerID  string `db:"player_public_id"`
}
