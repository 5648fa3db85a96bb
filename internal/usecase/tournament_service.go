package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/manager"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/player"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/roster"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/schedule"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/scoring"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/standings"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/tournament"
)

// standingsProvider is the slice of StandingsService the bracket seeding
// needs.
type standingsProvider interface {
	Standings(ctx context.Context) ([]standings.Row, error)
}

// TournamentService runs the end of season single elimination bracket. Each
// manager nominates one rostered player; seeds come from the regular season
// standings, and rounds are decided by the nominated players' fantasy points
// inside each round's date window.
type TournamentService struct {
	managerRepo    manager.Repository
	playerRepo     player.Repository
	rosterRepo     roster.Repository
	scoringRepo    scoring.Repository
	tournamentRepo tournament.Repository
	standings      standingsProvider

	now func() time.Time
}

func NewTournamentService(
	managerRepo manager.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	scoringRepo scoring.Repository,
	tournamentRepo tournament.Repository,
	standings standingsProvider,
) *TournamentService {
	return &TournamentService{
		managerRepo:    managerRepo,
		playerRepo:     playerRepo,
		rosterRepo:     rosterRepo,
		scoringRepo:    scoringRepo,
		tournamentRepo: tournamentRepo,
		standings:      standings,
		now:            time.Now,
	}
}

type NominateInput struct {
	ManagerID string
	PlayerID  string
}

// BracketView is the tournament as clients see it. Before generation the
// bracket is nil and MissingNominations says how many managers still owe an
// entry.
type BracketView struct {
	Generated           bool
	NominationsReceived int
	MissingNominations  int
	Nominations         []tournament.Nomination
	Bracket             *tournament.Bracket
	Champion            *tournament.Seed
}

type ResolveRoundInput struct {
	Round     tournament.Round
	StartDate string
	EndDate   string
}

// Nominate records a manager's tournament entry. A nomination is final:
// changing it requires withdrawing first, and nothing changes once the
// bracket is generated.
func (s *TournamentService) Nominate(ctx context.Context, input NominateInput) (tournament.Nomination, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Nominate")
	defer span.End()

	nomination := tournament.Nomination{
		ManagerID: strings.TrimSpace(input.ManagerID),
		PlayerID:  strings.TrimSpace(input.PlayerID),
	}
	if err := nomination.Validate(); err != nil {
		return tournament.Nomination{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, exists, err := s.managerRepo.GetByID(ctx, nomination.ManagerID); err != nil {
		return tournament.Nomination{}, fmt.Errorf("get manager by id: %w", err)
	} else if !exists {
		return tournament.Nomination{}, fmt.Errorf("%w: manager=%s", ErrNotFound, nomination.ManagerID)
	}
	if _, exists, err := s.playerRepo.GetByID(ctx, nomination.PlayerID); err != nil {
		return tournament.Nomination{}, fmt.Errorf("get player by id: %w", err)
	} else if !exists {
		return tournament.Nomination{}, fmt.Errorf("%w: player=%s", ErrNotFound, nomination.PlayerID)
	}

	entries, err := s.rosterRepo.ListEntriesByManager(ctx, nomination.ManagerID)
	if err != nil {
		return tournament.Nomination{}, fmt.Errorf("list roster entries: %w", err)
	}
	onRoster := false
	for _, entry := range entries {
		if entry.PlayerID == nomination.PlayerID {
			onRoster = true
			break
		}
	}
	if !onRoster {
		return tournament.Nomination{}, fmt.Errorf("%w: player %s is not on manager %s's roster", ErrInvalidInput, nomination.PlayerID, nomination.ManagerID)
	}

	if _, generated, err := s.tournamentRepo.GetBracket(ctx); err != nil {
		return tournament.Nomination{}, fmt.Errorf("get bracket: %w", err)
	} else if generated {
		return tournament.Nomination{}, fmt.Errorf("%w: the bracket is generated, nominations are closed", ErrInvalidState)
	}
	if _, exists, err := s.tournamentRepo.GetNomination(ctx, nomination.ManagerID); err != nil {
		return tournament.Nomination{}, fmt.Errorf("get nomination: %w", err)
	} else if exists {
		return tournament.Nomination{}, fmt.Errorf("%w: manager %s already nominated, withdraw first to change", ErrInvalidState, nomination.ManagerID)
	}

	nomination.NominatedAt = s.now().UTC()
	if err := s.tournamentRepo.UpsertNomination(ctx, nomination); err != nil {
		return tournament.Nomination{}, fmt.Errorf("upsert nomination: %w", err)
	}

	return nomination, nil
}

// Withdraw removes a manager's nomination while the bracket is still open.
func (s *TournamentService) Withdraw(ctx context.Context, managerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Withdraw")
	defer span.End()

	managerID = strings.TrimSpace(managerID)
	if managerID == "" {
		return fmt.Errorf("%w: manager_id is required", ErrInvalidInput)
	}

	if _, generated, err := s.tournamentRepo.GetBracket(ctx); err != nil {
		return fmt.Errorf("get bracket: %w", err)
	} else if generated {
		return fmt.Errorf("%w: the bracket is generated, nominations are closed", ErrInvalidState)
	}

	if _, exists, err := s.tournamentRepo.GetNomination(ctx, managerID); err != nil {
		return fmt.Errorf("get nomination: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: nomination for manager=%s", ErrNotFound, managerID)
	}

	if err := s.tournamentRepo.DeleteNomination(ctx, managerID); err != nil {
		return fmt.Errorf("delete nomination: %w", err)
	}
	return nil
}

// Bracket returns the current tournament state, generated or not.
func (s *TournamentService) Bracket(ctx context.Context) (BracketView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Bracket")
	defer span.End()

	nominations, err := s.tournamentRepo.ListNominations(ctx)
	if err != nil {
		return BracketView{}, fmt.Errorf("list nominations: %w", err)
	}

	view := BracketView{
		NominationsReceived: len(nominations),
		Nominations:         nominations,
	}
	if missing := tournament.BracketSize - len(nominations); missing > 0 {
		view.MissingNominations = missing
	}

	bracket, generated, err := s.tournamentRepo.GetBracket(ctx)
	if err != nil {
		return BracketView{}, fmt.Errorf("get bracket: %w", err)
	}
	if !generated {
		return view, nil
	}

	view.Generated = true
	view.Bracket = &bracket
	view.Champion = bracketChampion(bracket)
	return view, nil
}

// GenerateBracket seeds the nominated players by standings rank and lays out
// the quarterfinals. It refuses to run twice: reseeding mid tournament would
// orphan resolved matchups.
func (s *TournamentService) GenerateBracket(ctx context.Context) (tournament.Bracket, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.GenerateBracket")
	defer span.End()

	if _, generated, err := s.tournamentRepo.GetBracket(ctx); err != nil {
		return tournament.Bracket{}, fmt.Errorf("get bracket: %w", err)
	} else if generated {
		return tournament.Bracket{}, fmt.Errorf("%w: the bracket is already generated", ErrInvalidState)
	}

	nominations, err := s.tournamentRepo.ListNominations(ctx)
	if err != nil {
		return tournament.Bracket{}, fmt.Errorf("list nominations: %w", err)
	}
	if len(nominations) < tournament.BracketSize {
		return tournament.Bracket{}, fmt.Errorf("%w: %d of %d nominations received, %d missing", ErrInvalidState, len(nominations), tournament.BracketSize, tournament.BracketSize-len(nominations))
	}

	byManager := make(map[string]tournament.Nomination, len(nominations))
	for _, n := range nominations {
		byManager[n.ManagerID] = n
	}

	table, err := s.standings.Standings(ctx)
	if err != nil {
		return tournament.Bracket{}, fmt.Errorf("compute standings: %w", err)
	}

	seeds := make([]tournament.Seed, 0, tournament.BracketSize)
	for _, row := range table {
		if row.Rank > tournament.BracketSize {
			break
		}
		nomination, ok := byManager[row.ManagerID]
		if !ok {
			return tournament.Bracket{}, fmt.Errorf("%w: manager %s holds rank %d but has no nomination", ErrInvalidState, row.ManagerID, row.Rank)
		}
		seeds = append(seeds, tournament.Seed{
			Seed:      row.Rank,
			ManagerID: row.ManagerID,
			PlayerID:  nomination.PlayerID,
		})
	}

	matchups := make([]tournament.Matchup, 0, len(tournament.QuarterfinalPairs()))
	for i, pair := range tournament.QuarterfinalPairs() {
		matchups = append(matchups, tournament.Matchup{
			Round:    tournament.RoundQuarterfinal,
			Position: i + 1,
			HomeSeed: pair[0],
			AwaySeed: pair[1],
		})
	}

	bracket := tournament.Bracket{
		Seeds:     seeds,
		Matchups:  matchups,
		Windows:   make(map[tournament.Round]tournament.Window),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.tournamentRepo.SaveBracket(ctx, bracket); err != nil {
		return tournament.Bracket{}, fmt.Errorf("save bracket: %w", err)
	}

	return bracket, nil
}

// ResolveRound scores one bracket stage over a date window and advances the
// winners. Each matchup goes to the nominated player with more fantasy points
// across the window's games; a tie goes to the better seed.
func (s *TournamentService) ResolveRound(ctx context.Context, input ResolveRoundInput) (tournament.Bracket, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ResolveRound")
	defer span.End()

	round := tournament.Round(strings.TrimSpace(string(input.Round)))
	window := tournament.Window{
		StartDate: strings.TrimSpace(input.StartDate),
		EndDate:   strings.TrimSpace(input.EndDate),
	}
	if !validRound(round) {
		return tournament.Bracket{}, fmt.Errorf("%w: unknown round %q", ErrInvalidInput, input.Round)
	}
	if _, err := schedule.ParseDate(window.StartDate); err != nil {
		return tournament.Bracket{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := schedule.ParseDate(window.EndDate); err != nil {
		return tournament.Bracket{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if window.EndDate < window.StartDate {
		return tournament.Bracket{}, fmt.Errorf("%w: window ends %s before it starts %s", ErrInvalidInput, window.EndDate, window.StartDate)
	}

	bracket, generated, err := s.tournamentRepo.GetBracket(ctx)
	if err != nil {
		return tournament.Bracket{}, fmt.Errorf("get bracket: %w", err)
	}
	if !generated {
		return tournament.Bracket{}, fmt.Errorf("%w: generate the bracket before resolving rounds", ErrInvalidState)
	}

	pending := make([]*tournament.Matchup, 0, 4)
	for i := range bracket.Matchups {
		m := &bracket.Matchups[i]
		if m.Round != round {
			continue
		}
		if m.Resolved {
			return tournament.Bracket{}, fmt.Errorf("%w: the %s round is already resolved", ErrInvalidState, round)
		}
		pending = append(pending, m)
	}
	if len(pending) == 0 {
		return tournament.Bracket{}, fmt.Errorf("%w: the %s round has no matchups yet, resolve the earlier round first", ErrInvalidState, round)
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Position < pending[j].Position })

	seedsByNumber := make(map[int]tournament.Seed, len(bracket.Seeds))
	for _, seed := range bracket.Seeds {
		seedsByNumber[seed.Seed] = seed
	}

	pointsBySeed := make(map[int]float64, len(pending)*2)
	for _, m := range pending {
		for _, seedNumber := range []int{m.HomeSeed, m.AwaySeed} {
			seed, ok := seedsByNumber[seedNumber]
			if !ok {
				return tournament.Bracket{}, fmt.Errorf("%w: matchup references unknown seed %d", ErrInvalidState, seedNumber)
			}
			points, err := s.playerPointsInWindow(ctx, seed.PlayerID, window)
			if err != nil {
				return tournament.Bracket{}, err
			}
			pointsBySeed[seedNumber] = points
		}
	}

	winners := make([]int, 0, len(pending))
	for _, m := range pending {
		m.HomePoints = pointsBySeed[m.HomeSeed]
		m.AwayPoints = pointsBySeed[m.AwaySeed]
		m.WinnerSeed = m.HomeSeed
		if m.AwayPoints > m.HomePoints {
			m.WinnerSeed = m.AwaySeed
		} else if m.AwayPoints == m.HomePoints && m.AwaySeed < m.HomeSeed {
			m.WinnerSeed = m.AwaySeed
		}
		m.Resolved = true
		winners = append(winners, m.WinnerSeed)
	}

	if next := nextRound(round); next != "" {
		for i := 0; i+1 < len(winners); i += 2 {
			bracket.Matchups = append(bracket.Matchups, tournament.Matchup{
				Round:    next,
				Position: i/2 + 1,
				HomeSeed: winners[i],
				AwaySeed: winners[i+1],
			})
		}
	}

	bracket.Windows[round] = window
	bracket.UpdatedAt = s.now().UTC()
	if err := s.tournamentRepo.SaveBracket(ctx, bracket); err != nil {
		return tournament.Bracket{}, fmt.Errorf("save bracket: %w", err)
	}

	return bracket, nil
}

func (s *TournamentService) playerPointsInWindow(ctx context.Context, playerID string, window tournament.Window) (float64, error) {
	scores, err := s.scoringRepo.ListScoresByPlayer(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("list scores by player: %w", err)
	}

	total := 0.0
	for _, score := range scores {
		if window.Contains(score.Date) {
			total += score.Points
		}
	}
	return total, nil
}

func validRound(round tournament.Round) bool {
	for _, r := range tournament.Rounds {
		if r == round {
			return true
		}
	}
	return false
}

func nextRound(round tournament.Round) tournament.Round {
	for i, r := range tournament.Rounds {
		if r == round && i+1 < len(tournament.Rounds) {
			return tournament.Rounds[i+1]
		}
	}
	return ""
}

func bracketChampion(bracket tournament.Bracket) *tournament.Seed {
	for _, m := range bracket.Matchups {
		if m.Round != tournament.RoundFinal || !m.Resolved {
			continue
		}
		for _, seed := range bracket.Seeds {
			if seed.Seed == m.WinnerSeed {
				champion := seed
				return &champion
			}
		}
	}
	return nil
}
