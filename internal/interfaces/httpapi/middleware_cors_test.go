package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsProbe(t *testing.T, allowedOrigins []string, method, origin string) *httptest.ResponseRecorder {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS(allowedOrigins, next)

	req := httptest.NewRequest(method, "/v1/standings", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	rec := corsProbe(t, []string{"https://snapbacks.example"}, http.MethodGet, "https://snapbacks.example")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://snapbacks.example" {
		t.Fatalf("allow origin: got=%q want=https://snapbacks.example", got)
	}
	if got := rec.Header().Get("Vary"); got != "Origin" {
		t.Fatalf("vary: got=%q want=Origin", got)
	}
}

func TestCORSWildcardDoesNotEchoOrigin(t *testing.T) {
	rec := corsProbe(t, []string{"*"}, http.MethodGet, "https://anywhere.example")

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin: got=%q want=*", got)
	}
	if got := rec.Header().Get("Vary"); got != "" {
		t.Fatalf("wildcard must not vary on origin: got=%q", got)
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	rec := corsProbe(t, []string{"https://snapbacks.example"}, http.MethodOptions, "https://snapbacks.example")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status: got=%d want=204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Fatalf("preflight must advertise methods")
	}
}

func TestCORSIgnoresUnlistedOrigin(t *testing.T) {
	rec := corsProbe(t, []string{"https://snapbacks.example"}, http.MethodGet, "https://evil.example")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unlisted origin must get no CORS headers, got=%q", got)
	}
}

func TestCORSWithoutOriginHeaderPassesThrough(t *testing.T) {
	rec := corsProbe(t, []string{"https://snapbacks.example"}, http.MethodGet, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("requests without an origin get no CORS headers, got=%q", got)
	}
}
