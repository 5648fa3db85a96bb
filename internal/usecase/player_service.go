package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/player"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/roster"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/scoring"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/stats"
)

// trendWindow is how many recent games feed the hot and cold comparison.
const trendWindow = 3

// Form labels a player's recent output against their season baseline.
type Form string

const (
	FormHot     Form = "hot"
	FormCold    Form = "cold"
	FormNeutral Form = "neutral"
)

// PlayerService answers read queries about the player pool: season averages,
// recent form, and who holds whom.
type PlayerService struct {
	playerRepo  player.Repository
	rosterRepo  roster.Repository
	statsRepo   stats.Repository
	scoringRepo scoring.Repository
}

func NewPlayerService(
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	statsRepo stats.Repository,
	scoringRepo scoring.Repository,
) *PlayerService {
	return &PlayerService{
		playerRepo:  playerRepo,
		rosterRepo:  rosterRepo,
		statsRepo:   statsRepo,
		scoringRepo: scoringRepo,
	}
}

// PlayerSummary pairs a pool player with the manager holding them, if any.
type PlayerSummary struct {
	Player    player.Player
	ManagerID string
}

// PlayerAverages is a player's season to date output.
type PlayerAverages struct {
	PlayerID        string
	Games           int
	FantasyPoints   float64
	FantasyPerGame  float64
	CategoryTotals  map[stats.Category]int
	CategoryPerGame map[stats.Category]float64
}

// PlayerTrend compares a player's last few games against their season rate.
type PlayerTrend struct {
	PlayerID      string
	Form          Form
	SeasonGames   int
	SeasonPerGame float64
	RecentGames   int
	RecentPerGame float64
}

// List returns the full pool with roster ownership attached.
func (s *PlayerService) List(ctx context.Context) ([]PlayerSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	entries, err := s.rosterRepo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roster entries: %w", err)
	}

	heldBy := make(map[string]string, len(entries))
	for _, entry := range entries {
		heldBy[entry.PlayerID] = entry.ManagerID
	}

	out := make([]PlayerSummary, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerSummary{Player: p, ManagerID: heldBy[p.ID]})
	}
	return out, nil
}

// Get returns one player by id.
func (s *PlayerService) Get(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}

	p, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !found {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return p, nil
}

// Averages sums a player's recorded lines into season totals and per game
// rates. Games count stat lines, not schedule appearances: a game the feed
// never reported does not dilute the averages.
func (s *PlayerService) Averages(ctx context.Context, playerID string) (PlayerAverages, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Averages")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerAverages{}, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}
	if _, found, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return PlayerAverages{}, fmt.Errorf("get player by id: %w", err)
	} else if !found {
		return PlayerAverages{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	lines, err := s.statsRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return PlayerAverages{}, fmt.Errorf("list stat lines: %w", err)
	}
	scores, err := s.scoringRepo.ListScoresByPlayer(ctx, playerID)
	if err != nil {
		return PlayerAverages{}, fmt.Errorf("list scores by player: %w", err)
	}

	averages := PlayerAverages{
		PlayerID:        playerID,
		Games:           len(lines),
		CategoryTotals:  make(map[stats.Category]int, len(stats.Categories)),
		CategoryPerGame: make(map[stats.Category]float64, len(stats.Categories)),
	}
	for _, line := range lines {
		for category, count := range line.Counts {
			averages.CategoryTotals[category] += count
		}
	}
	for _, score := range scores {
		averages.FantasyPoints += score.Points
	}
	if averages.Games > 0 {
		averages.FantasyPerGame = averages.FantasyPoints / float64(averages.Games)
		for category, total := range averages.CategoryTotals {
			averages.CategoryPerGame[category] = float64(total) / float64(averages.Games)
		}
	}

	return averages, nil
}

// Trend labels a player hot or cold by comparing their last few games to the
// season rate. Small samples stay neutral: fewer than five season games or
// two recent ones is noise, not form.
func (s *PlayerService) Trend(ctx context.Context, playerID string) (PlayerTrend, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Trend")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerTrend{}, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}
	if _, found, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return PlayerTrend{}, fmt.Errorf("get player by id: %w", err)
	} else if !found {
		return PlayerTrend{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	scores, err := s.scoringRepo.ListScoresByPlayer(ctx, playerID)
	if err != nil {
		return PlayerTrend{}, fmt.Errorf("list scores by player: %w", err)
	}

	trend := PlayerTrend{PlayerID: playerID, Form: FormNeutral, SeasonGames: len(scores)}
	if trend.SeasonGames == 0 {
		return trend, nil
	}

	seasonTotal := 0.0
	for _, score := range scores {
		seasonTotal += score.Points
	}
	trend.SeasonPerGame = seasonTotal / float64(trend.SeasonGames)

	recent := scores
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}
	trend.RecentGames = len(recent)
	recentTotal := 0.0
	for _, score := range recent {
		recentTotal += score.Points
	}
	trend.RecentPerGame = recentTotal / float64(trend.RecentGames)

	if trend.SeasonGames < 5 || trend.RecentGames < 2 {
		return trend, nil
	}
	switch {
	case trend.RecentPerGame > trend.SeasonPerGame*1.2:
		trend.Form = FormHot
	case trend.RecentPerGame < trend.SeasonPerGame*0.8:
		trend.Form = FormCold
	}

	return trend, nil
}
