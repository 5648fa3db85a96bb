package usecase

import (
	"errors"
	"testing"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/roster"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/scoring"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/stats"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/infrastructure/repository/memory"
)

type playerFixture struct {
	svc         *PlayerService
	rosterRepo  *memory.RosterRepository
	statsRepo   *memory.StatsRepository
	scoringRepo *memory.ScoringRepository
}

func newPlayerFixture(t *testing.T) playerFixture {
	t.Helper()

	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	rosterRepo := memory.NewRosterRepository()
	statsRepo := memory.NewStatsRepository()
	scoringRepo := memory.NewScoringRepository()

	svc := NewPlayerService(playerRepo, rosterRepo, statsRepo, scoringRepo)
	return playerFixture{svc: svc, rosterRepo: rosterRepo, statsRepo: statsRepo, scoringRepo: scoringRepo}
}

// seedPlayerGames records one score per game for a player, dates ascending
// with the schedule ids they belong to.
func seedPlayerGames(t *testing.T, scoringRepo *memory.ScoringRepository, playerID string, points []float64) {
	t.Helper()

	games := []struct {
		id   string
		date string
	}{
		{"game-0105-a", "2026-01-05"},
		{"game-0109-a", "2026-01-09"},
		{"game-0110-a", "2026-01-10"},
		{"game-0112-a", "2026-01-12"},
		{"game-0116-a", "2026-01-16"},
		{"game-0117-a", "2026-01-17"},
	}
	if len(points) > len(games) {
		t.Fatalf("seedPlayerGames supports up to %d games, got %d", len(games), len(points))
	}
	for i, pts := range points {
		score := scoring.PlayerGameScore{
			GameID:   games[i].id,
			PlayerID: playerID,
			Date:     games[i].date,
			Points:   pts,
		}
		if err := scoringRepo.ReplaceGameScores(t.Context(), games[i].id, []scoring.PlayerGameScore{score}); err != nil {
			t.Fatalf("seed game score: %v", err)
		}
	}
}

func TestPlayerService_List_MarksRosterOwnership(t *testing.T) {
	fx := newPlayerFixture(t)

	entries := []roster.Entry{{ManagerID: "mgr-01", PlayerID: "ply-001"}}
	if err := fx.rosterRepo.ReplaceEntries(t.Context(), entries); err != nil {
		t.Fatalf("seed roster: %v", err)
	}

	summaries, err := fx.svc.List(t.Context())
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(summaries) != 48 {
		t.Fatalf("unexpected pool size: got=%d want=48", len(summaries))
	}
	for _, summary := range summaries {
		switch summary.Player.ID {
		case "ply-001":
			if summary.ManagerID != "mgr-01" {
				t.Fatalf("ply-001 owner: got=%q want=mgr-01", summary.ManagerID)
			}
		default:
			if summary.ManagerID != "" {
				t.Fatalf("undrafted %s carries owner %q", summary.Player.ID, summary.ManagerID)
			}
		}
	}
}

func TestPlayerService_Get_UnknownPlayer(t *testing.T) {
	fx := newPlayerFixture(t)

	_, err := fx.svc.Get(t.Context(), "ply-999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayerService_Averages_SumsRecordedLines(t *testing.T) {
	fx := newPlayerFixture(t)

	lines := []struct {
		gameID string
		counts map[stats.Category]int
	}{
		{"game-0105-a", map[stats.Category]int{stats.CategoryRebound: 5, stats.CategoryAssist: 2}},
		{"game-0112-b", map[stats.Category]int{stats.CategoryRebound: 10}},
	}
	for _, l := range lines {
		line := stats.Line{GameID: l.gameID, PlayerID: "ply-001", Counts: l.counts}
		if err := fx.statsRepo.ReplaceGameLines(t.Context(), l.gameID, []stats.Line{line}); err != nil {
			t.Fatalf("seed stat line: %v", err)
		}
	}
	seedPlayerGames(t, fx.scoringRepo, "ply-001", []float64{8, 12})

	averages, err := fx.svc.Averages(t.Context(), "ply-001")
	if err != nil {
		t.Fatalf("averages: %v", err)
	}

	if averages.Games != 2 {
		t.Fatalf("unexpected game count: got=%d want=2", averages.Games)
	}
	if !almostEqual(averages.FantasyPoints, 20) || !almostEqual(averages.FantasyPerGame, 10) {
		t.Fatalf("unexpected fantasy totals: %+v", averages)
	}
	if averages.CategoryTotals[stats.CategoryRebound] != 15 {
		t.Fatalf("unexpected rebound total: got=%d want=15", averages.CategoryTotals[stats.CategoryRebound])
	}
	if !almostEqual(averages.CategoryPerGame[stats.CategoryRebound], 7.5) {
		t.Fatalf("unexpected rebound rate: got=%v want=7.5", averages.CategoryPerGame[stats.CategoryRebound])
	}
}

func TestPlayerService_Trend_FlagsForm(t *testing.T) {
	tests := []struct {
		name   string
		points []float64
		want   Form
	}{
		{
			name:   "hot finish",
			points: []float64{10, 10, 10, 20, 20, 20},
			want:   FormHot,
		},
		{
			name:   "cold finish",
			points: []float64{20, 20, 20, 10, 10, 10},
			want:   FormCold,
		},
		{
			name:   "steady output",
			points: []float64{15, 15, 15, 15, 15, 15},
			want:   FormNeutral,
		},
		{
			name:   "small sample stays neutral",
			points: []float64{5, 5, 30, 30},
			want:   FormNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newPlayerFixture(t)
			seedPlayerGames(t, fx.scoringRepo, "ply-001", tt.points)

			trend, err := fx.svc.Trend(t.Context(), "ply-001")
			if err != nil {
				t.Fatalf("trend: %v", err)
			}
			if trend.Form != tt.want {
				t.Fatalf("unexpected form: got=%s want=%s (trend=%+v)", trend.Form, tt.want, trend)
			}
			if trend.SeasonGames != len(tt.points) {
				t.Fatalf("unexpected season games: got=%d want=%d", trend.SeasonGames, len(tt.points))
			}
		})
	}
}

func TestPlayerService_Trend_NoGames(t *testing.T) {
	fx := newPlayerFixture(t)

	trend, err := fx.svc.Trend(t.Context(), "ply-001")
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if trend.Form != FormNeutral || trend.SeasonGames != 0 || trend.RecentGames != 0 {
		t.Fatalf("unexpected empty trend: %+v", trend)
	}
}
