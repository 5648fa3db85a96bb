package postgres

import "time"

type gameTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	GameDate  string    `db:"game_date"`
	TipoffAt  time.Time `db:"tipoff_at"`
	HomeTeam  string    `db:"home_team"`
	AwayTeam  string    `db:"away_team"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type gameInsertModel struct {
	PublicID string    `db:"public_id"`
	GameDate string    `db:"game_date"`
	TipoffAt time.Time `db:"tipoff_at"`
	HomeTeam string    `db:"home_team"`
	AwayTeam string    `db:"away_team"`
	Status   string    `db:"status"`
}
