package statsfeed

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/stats"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/metrics"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/logging"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/resilience"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/usecase"
)

const (
	defaultBaseURL   = "https://api.courtfeed.io/v1/threes"
	defaultTimeout   = 20 * time.Second
	maxResponseBytes = 4 << 20
	maxBodyPreview   = 512
)

var errFeedTransient = crerr.New("stats feed transient failure")

type ClientConfig struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	Metrics        *metrics.Recorder
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the stats feed over its JSON API. Requests retry on
// transient failures, collapse duplicates in flight, and trip a circuit
// breaker when the feed keeps failing.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	token          string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	metrics        *metrics.Recorder
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient: &fasthttp.Client{
			Name:                "snapbacks-threes/feed-client",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
		},
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		maxRetries:     maxRetries,
		logger:         logger,
		metrics:        cfg.Metrics,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchSchedule pulls the feed's game calendar for an inclusive date range.
func (c *Client) FetchSchedule(ctx context.Context, startDate, endDate string) ([]usecase.ExternalGame, error) {
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)
	if startDate == "" || endDate == "" {
		return nil, fmt.Errorf("start and end dates are required")
	}

	query := map[string]string{"start": startDate, "end": endDate}
	var envelope scheduleEnvelope
	if _, err := c.doJSON(ctx, "schedule", "/schedule", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch schedule %s..%s: %w", startDate, endDate, err)
	}

	out := make([]usecase.ExternalGame, 0, len(envelope.Games))
	for _, item := range envelope.Games {
		game := usecase.ExternalGame{
			ID:       item.ID,
			Date:     item.Date,
			HomeTeam: item.HomeTeam,
			AwayTeam: item.AwayTeam,
			Status:   item.Status,
		}
		if tipoff, err := time.Parse(time.RFC3339, item.TipoffAt); err != nil {
			c.logger.WarnContext(ctx, "feed game has unparsable tipoff", "game_id", item.ID, "tipoff_at", item.TipoffAt)
		} else {
			game.TipoffAt = tipoff
		}
		out = append(out, game)
	}
	return out, nil
}

// FetchBoxScore pulls one game's stat rows.
func (c *Client) FetchBoxScore(ctx context.Context, gameID string) (usecase.ExternalBoxScore, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return usecase.ExternalBoxScore{}, fmt.Errorf("game id is required")
	}

	path := "/games/" + url.PathEscape(gameID) + "/box_score"
	var envelope boxScoreEnvelope
	if _, err := c.doJSON(ctx, "box_score", path, nil, &envelope); err != nil {
		return usecase.ExternalBoxScore{}, fmt.Errorf("fetch box score game=%s: %w", gameID, err)
	}

	boxScore := usecase.ExternalBoxScore{
		GameID: envelope.GameID,
		Rows:   make([]usecase.StatRowInput, 0, len(envelope.Rows)),
	}
	if boxScore.GameID == "" {
		boxScore.GameID = gameID
	}
	for _, row := range envelope.Rows {
		counts := make(map[stats.Category]int, len(row.Counts))
		for category, count := range row.Counts {
			counts[stats.Category(category)] = count
		}
		boxScore.Rows = append(boxScore.Rows, usecase.StatRowInput{PlayerID: row.PlayerID, Counts: counts})
	}
	return boxScore, nil
}

// BreakerSnapshot exposes the circuit state for the sync status endpoint.
func (c *Client) BreakerSnapshot() resilience.CircuitSnapshot {
	return c.breaker.Snapshot()
}

type scheduleEnvelope struct {
	Games []feedGame `json:"games"`
}

type feedGame struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	TipoffAt string `json:"tipoff_at"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Status   string `json:"status"`
}

type boxScoreEnvelope struct {
	GameID string    `json:"game_id"`
	Rows   []feedRow `json:"rows"`
}

type feedRow struct {
	PlayerID string         `json:"player_id"`
	Counts   map[string]int `json:"counts"`
}

func (c *Client) doJSON(ctx context.Context, endpoint, path string, query map[string]string, target any) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "stats feed circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: stats feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, endpoint, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isTransient(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode feed payload: %w", err)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, endpoint, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		req.SetRequestURI(fullURL)
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.Set(fasthttp.HeaderAccept, "application/json")
		if c.token != "" {
			req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.token)
		}

		started := time.Now()
		err := c.httpClient.DoTimeout(req, resp, c.timeout)
		latency := time.Since(started)
		statusCode := resp.StatusCode()
		raw := append([]byte(nil), resp.Body()...)
		retryAfter := parseRetryAfter(resp)
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)

		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %s", errFeedTransient, c.sanitize(err.Error()))
			c.metrics.RecordFeedAttempt(endpoint, latency, lastErr)
		case statusCode >= 200 && statusCode < 300:
			c.metrics.RecordFeedAttempt(endpoint, latency, nil)
			return raw, nil
		case isRetryableStatus(statusCode):
			lastErr = fmt.Errorf("%w: feed status=%d body=%s", errFeedTransient, statusCode, previewBody(raw))
			c.metrics.RecordFeedAttempt(endpoint, latency, lastErr)
			if statusCode == fasthttp.StatusTooManyRequests {
				c.metrics.RecordFeedRateLimit(endpoint, retryAfter)
			}
		default:
			failure := fmt.Errorf("feed status=%d body=%s", statusCode, previewBody(raw))
			c.metrics.RecordFeedAttempt(endpoint, latency, failure)
			return nil, failure
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "stats feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) sanitize(message string) string {
	if c.token == "" {
		return message
	}
	return strings.ReplaceAll(message, c.token, "REDACTED")
}

func isTransient(err error) bool {
	return stderrors.Is(err, errFeedTransient)
}

func parseRetryAfter(resp *fasthttp.Response) time.Duration {
	raw := strings.TrimSpace(string(resp.Header.Peek(fasthttp.HeaderRetryAfter)))
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func isRetryableStatus(statusCode int) bool {
	if statusCode == fasthttp.StatusRequestTimeout || statusCode == fasthttp.StatusTooManyRequests {
		return true
	}
	return statusCode >= 500
}

// previewBody keeps failure logs readable when the feed returns a large or
// unexpected payload.
func previewBody(raw []byte) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	limit := len(raw)
	if limit > maxBodyPreview {
		limit = maxBodyPreview
	}
	_, _ = buf.Write(raw[:limit])
	if len(raw) > maxBodyPreview {
		_, _ = buf.WriteString("...")
	}
	return buf.String()
}
