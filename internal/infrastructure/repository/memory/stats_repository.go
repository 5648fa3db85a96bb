package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/stats"
)

type StatsRepository struct {
	mu    sync.RWMutex
	lines map[string][]stats.Line
}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{lines: make(map[string][]stats.Line)}
}

func (r *StatsRepository) ReplaceGameLines(_ context.Context, gameID string, lines []stats.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	replaced := make([]stats.Line, 0, len(lines))
	for _, line := range lines {
		replaced = append(replaced, cloneLine(line))
	}
	r.lines[gameID] = replaced

	return nil
}

func (r *StatsRepository) ListByGame(_ context.Context, gameID string) ([]stats.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.Line, 0, len(r.lines[gameID]))
	for _, line := range r.lines[gameID] {
		out = append(out, cloneLine(line))
	}

	return out, nil
}

func (r *StatsRepository) ListByPlayer(_ context.Context, playerID string) ([]stats.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.Line, 0)
	for _, lines := range r.lines {
		for _, line := range lines {
			if line.PlayerID == playerID {
				out = append(out, cloneLine(line))
			}
		}
	}
	sortLines(out)

	return out, nil
}

func (r *StatsRepository) ListAll(_ context.Context) ([]stats.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.Line, 0)
	for _, lines := range r.lines {
		for _, line := range lines {
			out = append(out, cloneLine(line))
		}
	}
	sortLines(out)

	return out, nil
}

func sortLines(lines []stats.Line) {
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].GameID == lines[j].GameID {
			return lines[i].PlayerID < lines[j].PlayerID
		}
		return lines[i].GameID < lines[j].GameID
	})
}

func cloneLine(line stats.Line) stats.Line {
	copied := line
	copied.Counts = make(map[stats.Category]int, len(line.Counts))
	for category, count := range line.Counts {
		copied.Counts[category] = count
	}
	return copied
}
