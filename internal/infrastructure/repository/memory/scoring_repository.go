package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/scoring"
)

type ScoringRepository struct {
	mu          sync.RWMutex
	gameScores  map[string][]scoring.PlayerGameScore
	dailyScores map[string]scoring.ManagerDailyScore
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{
		gameScores:  make(map[string][]scoring.PlayerGameScore),
		dailyScores: make(map[string]scoring.ManagerDailyScore),
	}
}

func (r *ScoringRepository) ReplaceGameScores(_ context.Context, gameID string, gameScores []scoring.PlayerGameScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gameScores[gameID] = append([]scoring.PlayerGameScore(nil), gameScores...)
	return nil
}

func (r *ScoringRepository) ListGameScores(_ context.Context, gameID string) ([]scoring.PlayerGameScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.PlayerGameScore, 0, len(r.gameScores[gameID]))
	out = append(out, r.gameScores[gameID]...)

	return out, nil
}

func (r *ScoringRepository) ListScoresByPlayer(_ context.Context, playerID string) ([]scoring.PlayerGameScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.PlayerGameScore, 0)
	for _, gameScores := range r.gameScores {
		for _, score := range gameScores {
			if score.PlayerID == playerID {
				out = append(out, score)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date == out[j].Date {
			return out[i].GameID < out[j].GameID
		}
		return out[i].Date < out[j].Date
	})

	return out, nil
}

func (r *ScoringRepository) UpsertDailyScore(_ context.Context, dailyScore scoring.ManagerDailyScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.dailyScores[dailyScoreKey(dailyScore.ManagerID, dailyScore.Date)] = cloneDailyScore(dailyScore)
	return nil
}

func (r *ScoringRepository) DeleteDailyScore(_ context.Context, managerID, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.dailyScores, dailyScoreKey(managerID, date))
	return nil
}

func (r *ScoringRepository) ListDailyScores(_ context.Context) ([]scoring.ManagerDailyScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.ManagerDailyScore, 0, len(r.dailyScores))
	for _, score := range r.dailyScores {
		out = append(out, cloneDailyScore(score))
	}
	sortDailyScores(out)

	return out, nil
}

func (r *ScoringRepository) ListDailyScoresByManager(_ context.Context, managerID string) ([]scoring.ManagerDailyScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.ManagerDailyScore, 0)
	for _, score := range r.dailyScores {
		if score.ManagerID == managerID {
			out = append(out, cloneDailyScore(score))
		}
	}
	sortDailyScores(out)

	return out, nil
}

func (r *ScoringRepository) ListDailyScoresByDate(_ context.Context, date string) ([]scoring.ManagerDailyScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.ManagerDailyScore, 0)
	for _, score := range r.dailyScores {
		if score.Date == date {
			out = append(out, cloneDailyScore(score))
		}
	}
	sortDailyScores(out)

	return out, nil
}

func (r *ScoringRepository) ClearDerived(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gameScores = make(map[string][]scoring.PlayerGameScore)
	r.dailyScores = make(map[string]scoring.ManagerDailyScore)
	return nil
}

func dailyScoreKey(managerID, date string) string {
	return managerID + "::" + date
}

func sortDailyScores(scores []scoring.ManagerDailyScore) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Date == scores[j].Date {
			return scores[i].ManagerID < scores[j].ManagerID
		}
		return scores[i].Date < scores[j].Date
	})
}

func cloneDailyScore(score scoring.ManagerDailyScore) scoring.ManagerDailyScore {
	copied := score
	copied.PlayerIDs = append([]string(nil), score.PlayerIDs...)
	return copied
}
