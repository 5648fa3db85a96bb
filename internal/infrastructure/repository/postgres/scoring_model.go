package postgres

import (
	"time"

	"github.com/lib/pq"
)

type playerGameScoreTableModel struct {
	ID       int64   `db:"id"`
	GameID   string  `db:"game_public_id"`
	PlayerID string  `db:"player_public_id"`
	GameDate string  `db:"game_date"`
	Points   float64 `db:"points"`
}

type playerGameScoreInsertModel struct {
	GameID   string  `db:"game_public_id"`
	PlayerID string  `db:"player_public_id"`
	GameDate string  `db:"game_date"`
	Points   float64 `db:"points"`
}

type managerDailyScoreTableModel struct {
	ID         int64          `db:"id"`
	ManagerID  string         `db:"manager_public_id"`
	ScoreDate  string         `db:"score_date"`
	Points     float64        `db:"points"`
	PlayerIDs  pq.StringArray `db:"player_ids"`
	ComputedAt time.Time      `db:"computed_at"`
}

type managerDailyScoreInsertModel struct {
	ManagerID  string         `db:"manager_public_id"`
	ScoreDate  string         `db:"score_date"`
	Points     float64        `db:"points"`
	PlayerIDs  pq.StringArray `db:"player_ids"`
	ComputedAt time.Time      `db:"computed_at"`
}
