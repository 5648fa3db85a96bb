package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksFeedAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordFeedAttempt("schedule", 10*time.Millisecond, nil)
	rec.RecordFeedAttempt("schedule", 15*time.Millisecond, errors.New("boom"))

	if got := rec.FeedCalls("schedule"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.FeedErrors("schedule"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}

	snap := rec.Snapshot("schedule")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.LastCallLatency != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", snap.LastCallLatency)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordFeedRateLimit("box_score", 5*time.Second)
	rec.RecordFeedRateLimit("box_score", 0)

	snap := rec.Snapshot("box_score")
	if snap.RateLimitHits != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", snap.RateLimitHits)
	}
	if snap.LastRetryAfter != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", snap.LastRetryAfter)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordHTTPRequest("GET", "/healthz", 200, time.Millisecond)
	rec.RecordFeedAttempt("schedule", time.Millisecond, nil)
	rec.RecordFeedRateLimit("schedule", time.Second)

	if snap := rec.Snapshot("schedule"); snap.Calls != 0 {
		t.Fatalf("expected empty snapshot from nil recorder, got %+v", snap)
	}
}
