package httpapi

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/scoring"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/stats"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/usecase"
)

// statCSVColumns is the admin upload layout: one row per player, one column
// per counted category, in the canonical category order.
var statCSVColumns = []struct {
	Header   string
	Category stats.Category
}{
	{"one_pt", stats.CategoryOnePointer},
	{"two_pt", stats.CategoryTwoPointer},
	{"ft", stats.CategoryFreeThrow},
	{"reb", stats.CategoryRebound},
	{"ast", stats.CategoryAssist},
	{"stl", stats.CategorySteal},
	{"blk", stats.CategoryBlock},
	{"tov", stats.CategoryTurnover},
	{"pf", stats.CategoryFoul},
	{"game_winner", stats.CategoryGameWinner},
	{"dunk", stats.CategoryDunk},
}

func (h *Handler) IngestGameStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestGameStats")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))

	var req ingestStatsRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	// An empty rows array clears the game, so only a missing field is invalid.
	if req.Rows == nil {
		writeError(ctx, w, fmt.Errorf("%w: rows field is required, send an empty array to clear a game", usecase.ErrInvalidInput))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rows := make([]usecase.StatRowInput, 0, len(req.Rows))
	for _, row := range req.Rows {
		counts := make(map[stats.Category]int, len(row.Counts))
		for key, value := range row.Counts {
			counts[stats.Category(key)] = value
		}
		rows = append(rows, usecase.StatRowInput{PlayerID: row.PlayerID, Counts: counts})
	}

	h.ingestRows(ctx, w, gameID, rows)
}

func (h *Handler) IngestGameStatsCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestGameStatsCSV")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))

	rows, err := parseStatCSV(ctx, r.Body)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.ingestRows(ctx, w, gameID, rows)
}

func (h *Handler) ingestRows(ctx context.Context, w http.ResponseWriter, gameID string, rows []usecase.StatRowInput) {
	result, err := h.scoringService.IngestGameStats(ctx, usecase.IngestStatsInput{GameID: gameID, Rows: rows})
	if err != nil {
		h.logger.WarnContext(ctx, "ingest game stats failed", "game_id", gameID, "rows", len(rows), "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "game stats ingested",
		"game_id", result.GameID,
		"date", result.Date,
		"rows", len(result.Rows),
		"daily_rows_written", result.DailyRowsWritten,
		"daily_rows_cleared", result.DailyRowsCleared,
	)

	writeSuccess(ctx, w, http.StatusOK, ingestResultToDTO(ctx, result))
}

func (h *Handler) ListGameScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameScores")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	scores, err := h.scoringService.GameScores(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "list game scores failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameScoreDTO, 0, len(scores))
	for _, score := range scores {
		items = append(items, gameScoreDTO{
			GameID:   score.GameID,
			PlayerID: score.PlayerID,
			Date:     score.Date,
			Points:   score.Points,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListManagerScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListManagerScores")
	defer span.End()

	managerID := strings.TrimSpace(r.PathValue("managerID"))
	scores, err := h.scoringService.ManagerScores(ctx, managerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list manager scores failed", "manager_id", managerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]dailyScoreDTO, 0, len(scores))
	for _, score := range scores {
		items = append(items, dailyScoreToDTO(ctx, score))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListScoresByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScoresByDate")
	defer span.End()

	date := strings.TrimSpace(r.PathValue("date"))
	scores, err := h.scoringService.ScoresByDate(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "list scores by date failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]dailyScoreDTO, 0, len(scores))
	for _, score := range scores {
		items = append(items, dailyScoreToDTO(ctx, score))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetScoreBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreBreakdown")
	defer span.End()

	managerID := strings.TrimSpace(r.PathValue("managerID"))
	date := strings.TrimSpace(r.PathValue("date"))

	breakdown, err := h.scoringService.Breakdown(ctx, managerID, date)
	if err != nil {
		h.logger.WarnContext(ctx, "score breakdown failed", "manager_id", managerID, "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	players := make([]playerDayLineDTO, 0, len(breakdown.Players))
	for _, line := range breakdown.Players {
		players = append(players, playerDayLineDTO{
			PlayerID:   line.PlayerID,
			PlayerName: line.PlayerName,
			Points:     line.Points,
			Games:      line.Games,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, scoreBreakdownDTO{
		ManagerID:  breakdown.ManagerID,
		Date:       breakdown.Date,
		Provenance: string(breakdown.Provenance),
		SourceDate: breakdown.SourceDate,
		Players:    players,
		Total:      breakdown.Total,
	})
}

func (h *Handler) RecomputeScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeScores")
	defer span.End()

	result, err := h.scoringService.RecomputeAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute scores failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "scores recomputed",
		"run_id", result.RunID,
		"games_scored", result.GamesScored,
		"daily_rows", result.DailyRows,
		"duration_ms", result.DurationMS,
	)

	writeSuccess(ctx, w, http.StatusOK, recomputeResultDTO{
		RunID:        result.RunID,
		GamesScored:  result.GamesScored,
		PlayerScores: result.PlayerScores,
		DailyRows:    result.DailyRows,
		Dates:        result.Dates,
		StartedAt:    result.StartedAt.UTC().Format(time.RFC3339),
		DurationMS:   result.DurationMS,
	})
}

func parseStatCSV(ctx context.Context, body io.Reader) ([]usecase.StatRowInput, error) {
	ctx, span := startSpan(ctx, "httpapi.parseStatCSV")
	defer span.End()

	_ = ctx
	reader := csv.NewReader(body)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed CSV: %v", usecase.ErrInvalidInput, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: CSV body is empty, expected a header row", usecase.ErrInvalidInput)
	}

	header := records[0]
	if len(header) != len(statCSVColumns)+1 || !strings.EqualFold(strings.TrimSpace(header[0]), "player_id") {
		return nil, fmt.Errorf("%w: unexpected CSV header, want player_id followed by %d stat columns", usecase.ErrInvalidInput, len(statCSVColumns))
	}
	for i, col := range statCSVColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i+1]), col.Header) {
			return nil, fmt.Errorf("%w: unexpected CSV column %q, want %q", usecase.ErrInvalidInput, header[i+1], col.Header)
		}
	}

	rows := make([]usecase.StatRowInput, 0, len(records)-1)
	for lineNo, record := range records[1:] {
		playerID := strings.TrimSpace(record[0])
		counts := make(map[stats.Category]int, len(statCSVColumns))
		for i, col := range statCSVColumns {
			cell := strings.TrimSpace(record[i+1])
			if cell == "" {
				continue
			}
			value, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %s: %q is not an integer", usecase.ErrInvalidInput, lineNo+2, col.Header, cell)
			}
			if value != 0 {
				counts[col.Category] = value
			}
		}
		rows = append(rows, usecase.StatRowInput{PlayerID: playerID, Counts: counts})
	}

	return rows, nil
}

type ingestStatsRequest struct {
	Rows []ingestStatRow `json:"rows" validate:"dive"`
}

type ingestStatRow struct {
	PlayerID string         `json:"playerId" validate:"required"`
	Counts   map[string]int `json:"counts"`
}

type ingestResultDTO struct {
	GameID           string               `json:"gameId"`
	Date             string               `json:"date"`
	Rows             []ingestRowResultDTO `json:"rows"`
	AffectedManagers []string             `json:"affectedManagers"`
	DailyRowsWritten int                  `json:"dailyRowsWritten"`
	DailyRowsCleared int                  `json:"dailyRowsCleared"`
}

type ingestRowResultDTO struct {
	PlayerID string  `json:"playerId"`
	Points   float64 `json:"points"`
}

type gameScoreDTO struct {
	GameID   string  `json:"gameId"`
	PlayerID string  `json:"playerId"`
	Date     string  `json:"date"`
	Points   float64 `json:"points"`
}

type dailyScoreDTO struct {
	ManagerID  string   `json:"managerId"`
	Date       string   `json:"date"`
	Points     float64  `json:"points"`
	PlayerIDs  []string `json:"playerIds"`
	ComputedAt string   `json:"computedAtUtc"`
}

type playerDayLineDTO struct {
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Points     float64 `json:"points"`
	Games      int     `json:"games"`
}

type scoreBreakdownDTO struct {
	ManagerID  string             `json:"managerId"`
	Date       string             `json:"date"`
	Provenance string             `json:"provenance"`
	SourceDate string             `json:"sourceDate,omitempty"`
	Players    []playerDayLineDTO `json:"players"`
	Total      float64            `json:"total"`
}

type recomputeResultDTO struct {
	RunID        string `json:"runId"`
	GamesScored  int    `json:"gamesScored"`
	PlayerScores int    `json:"playerScores"`
	DailyRows    int    `json:"dailyRows"`
	Dates        int    `json:"dates"`
	StartedAt    string `json:"startedAtUtc"`
	DurationMS   int64  `json:"durationMs"`
}

func ingestResultToDTO(ctx context.Context, v usecase.IngestResult) ingestResultDTO {
	ctx, span := startSpan(ctx, "httpapi.ingestResultToDTO")
	defer span.End()

	_ = ctx
	rows := make([]ingestRowResultDTO, 0, len(v.Rows))
	for _, row := range v.Rows {
		rows = append(rows, ingestRowResultDTO{PlayerID: row.PlayerID, Points: row.Points})
	}

	return ingestResultDTO{
		GameID:           v.GameID,
		Date:             v.Date,
		Rows:             rows,
		AffectedManagers: append([]string(nil), v.AffectedManagers...),
		DailyRowsWritten: v.DailyRowsWritten,
		DailyRowsCleared: v.DailyRowsCleared,
	}
}

func dailyScoreToDTO(ctx context.Context, v scoring.ManagerDailyScore) dailyScoreDTO {
	ctx, span := startSpan(ctx, "httpapi.dailyScoreToDTO")
	defer span.End()

	_ = ctx
	return dailyScoreDTO{
		ManagerID:  v.ManagerID,
		Date:       v.Date,
		Points:     v.Points,
		PlayerIDs:  append([]string(nil), v.PlayerIDs...),
		ComputedAt: v.ComputedAt.UTC().Format(time.RFC3339),
	}
}
