package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/scoring"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/tournament"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/infrastructure/repository/memory"
)

type tournamentFixture struct {
	svc         *TournamentService
	scoringRepo *memory.ScoringRepository
}

// newTournamentFixture seeds daily scores so mgr-01 leads the standings and
// mgr-08 trails: seed k is mgr-0k.
func newTournamentFixture(t *testing.T) tournamentFixture {
	t.Helper()

	managerRepo := memory.NewManagerRepository(memory.SeedManagers())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	rosterRepo := memory.NewRosterRepository()
	scoringRepo := memory.NewScoringRepository()
	tournamentRepo := memory.NewTournamentRepository()
	standingsSvc := NewStandingsService(managerRepo, scoringRepo)

	seedTestRosters(t, rosterRepo)

	computedAt := time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)
	for m := 1; m <= 8; m++ {
		row := scoring.ManagerDailyScore{
			ManagerID:  fmt.Sprintf("mgr-%02d", m),
			Date:       "2026-01-05",
			Points:     float64(90 - 10*m),
			ComputedAt: computedAt,
		}
		if err := scoringRepo.UpsertDailyScore(t.Context(), row); err != nil {
			t.Fatalf("seed daily score: %v", err)
		}
	}

	svc := NewTournamentService(managerRepo, playerRepo, rosterRepo, scoringRepo, tournamentRepo, standingsSvc)
	svc.now = func() time.Time { return time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC) }

	return tournamentFixture{svc: svc, scoringRepo: scoringRepo}
}

// nominatedPlayerID is each manager's entry: the first player on their block
// roster, except mgr-08 who skips the injured ply-043.
func nominatedPlayerID(m int) string {
	if m == 8 {
		return "ply-044"
	}
	return fmt.Sprintf("ply-%03d", (m-1)*6+1)
}

func nominateField(t *testing.T, svc *TournamentService) {
	t.Helper()

	for m := 1; m <= 8; m++ {
		_, err := svc.Nominate(t.Context(), NominateInput{
			ManagerID: fmt.Sprintf("mgr-%02d", m),
			PlayerID:  nominatedPlayerID(m),
		})
		if err != nil {
			t.Fatalf("nominate mgr-%02d: %v", m, err)
		}
	}
}

// seedWindowScores gives each seeded player the points for one round, dated
// inside the given window.
func seedWindowScores(t *testing.T, scoringRepo *memory.ScoringRepository, gameID, date string, pointsByManager map[int]float64) {
	t.Helper()

	rows := make([]scoring.PlayerGameScore, 0, len(pointsByManager))
	for m, points := range pointsByManager {
		rows = append(rows, scoring.PlayerGameScore{
			GameID:   gameID,
			PlayerID: nominatedPlayerID(m),
			Date:     date,
			Points:   points,
		})
	}
	if err := scoringRepo.ReplaceGameScores(t.Context(), gameID, rows); err != nil {
		t.Fatalf("seed window scores: %v", err)
	}
}

func TestTournamentService_Nominate_RejectsOffRosterPlayer(t *testing.T) {
	fx := newTournamentFixture(t)

	_, err := fx.svc.Nominate(t.Context(), NominateInput{ManagerID: "mgr-01", PlayerID: "ply-007"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTournamentService_Nominate_ChangeRequiresWithdraw(t *testing.T) {
	fx := newTournamentFixture(t)

	if _, err := fx.svc.Nominate(t.Context(), NominateInput{ManagerID: "mgr-01", PlayerID: "ply-001"}); err != nil {
		t.Fatalf("nominate: %v", err)
	}

	_, err := fx.svc.Nominate(t.Context(), NominateInput{ManagerID: "mgr-01", PlayerID: "ply-002"})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for a second nomination, got %v", err)
	}

	if err := fx.svc.Withdraw(t.Context(), "mgr-01"); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if _, err := fx.svc.Nominate(t.Context(), NominateInput{ManagerID: "mgr-01", PlayerID: "ply-002"}); err != nil {
		t.Fatalf("nominate after withdraw: %v", err)
	}
}

func TestTournamentService_Withdraw_UnknownNomination(t *testing.T) {
	fx := newTournamentFixture(t)

	err := fx.svc.Withdraw(t.Context(), "mgr-01")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTournamentService_GenerateBracket_RequiresFullField(t *testing.T) {
	fx := newTournamentFixture(t)

	for m := 1; m <= 7; m++ {
		if _, err := fx.svc.Nominate(t.Context(), NominateInput{
			ManagerID: fmt.Sprintf("mgr-%02d", m),
			PlayerID:  nominatedPlayerID(m),
		}); err != nil {
			t.Fatalf("nominate mgr-%02d: %v", m, err)
		}
	}

	_, err := fx.svc.GenerateBracket(t.Context())
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState with 7 nominations, got %v", err)
	}
}

func TestTournamentService_GenerateBracket_SeedsByStandings(t *testing.T) {
	fx := newTournamentFixture(t)
	nominateField(t, fx.svc)

	bracket, err := fx.svc.GenerateBracket(t.Context())
	if err != nil {
		t.Fatalf("generate bracket: %v", err)
	}

	if len(bracket.Seeds) != 8 {
		t.Fatalf("unexpected seed count: got=%d want=8", len(bracket.Seeds))
	}
	for i, seed := range bracket.Seeds {
		if seed.Seed != i+1 {
			t.Fatalf("seed %d out of order: %+v", i, seed)
		}
		wantManager := fmt.Sprintf("mgr-%02d", i+1)
		if seed.ManagerID != wantManager || seed.PlayerID != nominatedPlayerID(i+1) {
			t.Fatalf("unexpected seed %d: %+v", i+1, seed)
		}
	}

	wantPairs := [][2]int{{1, 8}, {4, 5}, {2, 7}, {3, 6}}
	if len(bracket.Matchups) != 4 {
		t.Fatalf("unexpected matchup count: got=%d want=4", len(bracket.Matchups))
	}
	for i, m := range bracket.Matchups {
		if m.Round != tournament.RoundQuarterfinal || m.Position != i+1 {
			t.Fatalf("unexpected matchup %d: %+v", i, m)
		}
		if m.HomeSeed != wantPairs[i][0] || m.AwaySeed != wantPairs[i][1] {
			t.Fatalf("unexpected pairing %d: %+v", i, m)
		}
	}

	if _, err := fx.svc.GenerateBracket(t.Context()); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on regeneration, got %v", err)
	}
	if _, err := fx.svc.Nominate(t.Context(), NominateInput{ManagerID: "mgr-01", PlayerID: "ply-002"}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected nominations closed after generation, got %v", err)
	}
	if err := fx.svc.Withdraw(t.Context(), "mgr-01"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected withdrawals closed after generation, got %v", err)
	}
}

func TestTournamentService_ResolveRound_RunsTheBracket(t *testing.T) {
	fx := newTournamentFixture(t)
	nominateField(t, fx.svc)

	if _, err := fx.svc.GenerateBracket(t.Context()); err != nil {
		t.Fatalf("generate bracket: %v", err)
	}

	// quarterfinals: straight seeds, 1 beats 8, 4 beats 5, 2 beats 7, 3 beats 6
	seedWindowScores(t, fx.scoringRepo, "game-qf", "2026-02-03", map[int]float64{
		1: 80, 2: 70, 3: 60, 4: 50, 5: 40, 6: 30, 7: 20, 8: 10,
	})
	bracket, err := fx.svc.ResolveRound(t.Context(), ResolveRoundInput{
		Round:     tournament.RoundQuarterfinal,
		StartDate: "2026-02-02",
		EndDate:   "2026-02-08",
	})
	if err != nil {
		t.Fatalf("resolve quarterfinal: %v", err)
	}

	semis := matchupsOfRound(bracket, tournament.RoundSemifinal)
	if len(semis) != 2 {
		t.Fatalf("unexpected semifinal count: got=%d want=2", len(semis))
	}
	if semis[0].HomeSeed != 1 || semis[0].AwaySeed != 4 || semis[1].HomeSeed != 2 || semis[1].AwaySeed != 3 {
		t.Fatalf("unexpected semifinal pairings: %+v", semis)
	}

	// semifinals: 1 and 4 tie so the better seed advances, 3 upsets 2
	seedWindowScores(t, fx.scoringRepo, "game-sf", "2026-02-10", map[int]float64{
		1: 25, 4: 25, 2: 15, 3: 35,
	})
	bracket, err = fx.svc.ResolveRound(t.Context(), ResolveRoundInput{
		Round:     tournament.RoundSemifinal,
		StartDate: "2026-02-09",
		EndDate:   "2026-02-15",
	})
	if err != nil {
		t.Fatalf("resolve semifinal: %v", err)
	}

	finals := matchupsOfRound(bracket, tournament.RoundFinal)
	if len(finals) != 1 {
		t.Fatalf("unexpected final count: got=%d want=1", len(finals))
	}
	if finals[0].HomeSeed != 1 || finals[0].AwaySeed != 3 {
		t.Fatalf("unexpected final pairing: %+v", finals[0])
	}

	seedWindowScores(t, fx.scoringRepo, "game-final", "2026-02-17", map[int]float64{
		1: 20, 3: 50,
	})
	bracket, err = fx.svc.ResolveRound(t.Context(), ResolveRoundInput{
		Round:     tournament.RoundFinal,
		StartDate: "2026-02-16",
		EndDate:   "2026-02-22",
	})
	if err != nil {
		t.Fatalf("resolve final: %v", err)
	}

	view, err := fx.svc.Bracket(t.Context())
	if err != nil {
		t.Fatalf("bracket view: %v", err)
	}
	if view.Champion == nil || view.Champion.Seed != 3 || view.Champion.ManagerID != "mgr-03" {
		t.Fatalf("unexpected champion: %+v", view.Champion)
	}
	if len(bracket.Windows) != 3 {
		t.Fatalf("expected a recorded window per round, got %d", len(bracket.Windows))
	}
}

func TestTournamentService_ResolveRound_EnforcesOrder(t *testing.T) {
	fx := newTournamentFixture(t)
	nominateField(t, fx.svc)

	if _, err := fx.svc.ResolveRound(t.Context(), ResolveRoundInput{
		Round:     tournament.RoundQuarterfinal,
		StartDate: "2026-02-02",
		EndDate:   "2026-02-08",
	}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState before generation, got %v", err)
	}

	if _, err := fx.svc.GenerateBracket(t.Context()); err != nil {
		t.Fatalf("generate bracket: %v", err)
	}

	if _, err := fx.svc.ResolveRound(t.Context(), ResolveRoundInput{
		Round:     tournament.RoundSemifinal,
		StartDate: "2026-02-09",
		EndDate:   "2026-02-15",
	}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState resolving semifinals first, got %v", err)
	}

	if _, err := fx.svc.ResolveRound(t.Context(), ResolveRoundInput{
		Round:     "playin",
		StartDate: "2026-02-02",
		EndDate:   "2026-02-08",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown round, got %v", err)
	}

	if _, err := fx.svc.ResolveRound(t.Context(), ResolveRoundInput{
		Round:     tournament.RoundQuarterfinal,
		StartDate: "2026-02-08",
		EndDate:   "2026-02-02",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a backwards window, got %v", err)
	}

	if _, err := fx.svc.ResolveRound(t.Context(), ResolveRoundInput{
		Round:     tournament.RoundQuarterfinal,
		StartDate: "2026-02-02",
		EndDate:   "2026-02-08",
	}); err != nil {
		t.Fatalf("resolve quarterfinal: %v", err)
	}

	if _, err := fx.svc.ResolveRound(t.Context(), ResolveRoundInput{
		Round:     tournament.RoundQuarterfinal,
		StartDate: "2026-02-02",
		EndDate:   "2026-02-08",
	}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState re-resolving quarterfinals, got %v", err)
	}
}

func matchupsOfRound(bracket tournament.Bracket, round tournament.Round) []tournament.Matchup {
	out := make([]tournament.Matchup, 0, 4)
	for _, m := range bracket.Matchups {
		if m.Round == round {
			out = append(out, m)
		}
	}
	return out
}
