package postgres

import "time"

type nominationTableModel struct {
	ID          int64      `db:"id"`
	ManagerID   string     `db:"manager_public_id"`
	PlayerID    string     `db:"player_public_id"`
	NominatedAt time.Time  `db:"nominated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type nominationInsertModel struct {
	ManagerID   string    `db:"manager_public_id"`
	PlayerID    string    `db:"player_public_id"`
	NominatedAt time.Time `db:"nominated_at"`
}

type bracketStateTableModel struct {
	ID        int64     `db:"id"`
	UpdatedAt time.Time `db:"updated_at"`
}

type bracketSeedTableModel struct {
	ID        int64  `db:"id"`
	Seed      int    `db:"seed"`
	ManagerID string `db:"manager_public_id"`
	PlayerID  string `db:"player_public_id"`
}

type bracketSeedInsertModel struct {
	Seed      int    `db:"seed"`
	ManagerID string `db:"manager_public_id"`
	PlayerID  string `db:"player_public_id"`
}

type bracketMatchupTableModel struct {
	ID         int64   `db:"id"`
	Round      string  `db:"round"`
	Position   int     `db:"position"`
	HomeSeed   int     `db:"home_seed"`
	AwaySeed   int     `db:"away_seed"`
	HomePoints float64 `db:"home_points"`
	AwayPoints float64 `db:"away_points"`
	WinnerSeed int     `db:"winner_seed"`
	Resolved   bool    `db:"resolved"`
}

type bracketMatchupInsertModel struct {
	Round      string  `db:"round"`
	Position   int     `db:"position"`
	HomeSeed   int     `db:"home_seed"`
	AwaySeed   int     `db:"away_seed"`
	HomePoints float64 `db:"home_points"`
	AwayPoints float64 `db:"away_points"`
	WinnerSeed int     `db:"winner_seed"`
	Resolved   bool    `db:"resolved"`
}

type bracketWindowTableModel struct {
	ID        int64  `db:"id"`
	Round     string `db:"round"`
	StartDate string `db:"start_date"`
	EndDate   string `db:"end_date"`
}

type bracketWindowInsertModel struct {
	Round     string `db:"round"`
	StartDate string `db:"start_date"`
	EndDate   string `db:"end_date"`
}
