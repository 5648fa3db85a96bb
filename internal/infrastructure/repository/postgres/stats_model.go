package postgres

import (
	"time"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/stats"
)

type statLineTableModel struct {
	ID         int64     `db:"id"`
	GameID     string    `db:"game_public_id"`
	PlayerID   string    `db:"player_public_id"`
	OnePt      int       `db:"one_pt"`
	TwoPt      int       `db:"two_pt"`
	FreeThrow  int       `db:"ft"`
	Rebound    int       `db:"reb"`
	Assist     int       `db:"ast"`
	Steal      int       `db:"stl"`
	Block      int       `db:"blk"`
	Turnover   int       `db:"tov"`
	Foul       int       `db:"pf"`
	GameWinner int       `db:"game_winner"`
	Dunk       int       `db:"dunk"`
	CreatedAt  time.Time `db:"created_at"`
}

type statLineInsertModel struct {
	GameID     string `db:"game_public_id"`
	PlayerID   string `db:"player_public_id"`
	OnePt      int    `db:"one_pt"`
	TwoPt      int    `db:"two_pt"`
	FreeThrow  int    `db:"ft"`
	Rebound    int    `db:"reb"`
	Assist     int    `db:"ast"`
	Steal      int    `db:"stl"`
	Block      int    `db:"blk"`
	Turnover   int    `db:"tov"`
	Foul       int    `db:"pf"`
	GameWinner int    `db:"game_winner"`
	Dunk       int    `db:"dunk"`
}

func statLineInsertFromDomain(line stats.Line) statLineInsertModel {
	return statLineInsertModel{
		GameID:     line.GameID,
		PlayerID:   line.PlayerID,
		OnePt:      line.Counts[stats.CategoryOnePointer],
		TwoPt:      line.Counts[stats.CategoryTwoPointer],
		FreeThrow:  line.Counts[stats.CategoryFreeThrow],
		Rebound:    line.Counts[stats.CategoryRebound],
		Assist:     line.Counts[stats.CategoryAssist],
		Steal:      line.Counts[stats.CategorySteal],
		Block:      line.Counts[stats.CategoryBlock],
		Turnover:   line.Counts[stats.CategoryTurnover],
		Foul:       line.Counts[stats.CategoryFoul],
		GameWinner: line.Counts[stats.CategoryGameWinner],
		Dunk:       line.Counts[stats.CategoryDunk],
	}
}

// statLineToDomain rebuilds the counts map, dropping zero columns: a zero
// count and an absent category score identically.
func statLineToDomain(row statLineTableModel) stats.Line {
	columns := []struct {
		category stats.Category
		count    int
	}{
		{stats.CategoryOnePointer, row.OnePt},
		{stats.CategoryTwoPointer, row.TwoPt},
		{stats.CategoryFreeThrow, row.FreeThrow},
		{stats.CategoryRebound, row.Rebound},
		{stats.CategoryAssist, row.Assist},
		{stats.CategorySteal, row.Steal},
		{stats.CategoryBlock, row.Block},
		{stats.CategoryTurnover, row.Turnover},
		{stats.CategoryFoul, row.Foul},
		{stats.CategoryGameWinner, row.GameWinner},
		{stats.CategoryDunk, row.Dunk},
	}

	counts := make(map[stats.Category]int)
	for _, column := range columns {
		if column.count != 0 {
			counts[column.category] = column.count
		}
	}

	return stats.Line{
		GameID:   row.GameID,
		PlayerID: row.PlayerID,
		Counts:   counts,
	}
}
