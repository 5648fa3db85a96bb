package metrics

import (
	"sync"
	"time"
)

type endpointStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder keeps in-memory counters for stats feed calls alongside the
// exported OpenTelemetry instruments. A nil Recorder is safe to call.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*endpointStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*endpointStats),
		otel:  otel,
	}
}

// RecordHTTPRequest tracks one served API request.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordFeedAttempt counts one stats feed call against the named endpoint and
// stores the last observed latency.
func (r *Recorder) RecordFeedAttempt(endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(endpoint)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFeedAttempt(endpoint, duration, err)
	}
}

// RecordFeedRateLimit tracks that the feed throttled us and keeps the last
// Retry-After it sent.
func (r *Recorder) RecordFeedRateLimit(endpoint string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(endpoint)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFeedRateLimit(endpoint, retryAfter)
	}
}

// FeedCalls returns the total attempts recorded for an endpoint.
func (r *Recorder) FeedCalls(endpoint string) int {
	return r.Snapshot(endpoint).Calls
}

// FeedErrors returns the total failed attempts recorded for an endpoint.
func (r *Recorder) FeedErrors(endpoint string) int {
	return r.Snapshot(endpoint).Errors
}

// Snapshot is a copy of the counters for one feed endpoint.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(endpoint string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(endpoint)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

func (r *Recorder) ensureStatsLocked(endpoint string) *endpointStats {
	stats, ok := r.stats[endpoint]
	if !ok {
		stats = &endpointStats{}
		r.stats[endpoint] = stats
	}
	return stats
}

func (r *Recorder) snapshot(endpoint string) endpointStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[endpoint]; ok && stats != nil {
		return *stats
	}
	return endpointStats{}
}
