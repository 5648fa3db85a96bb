package httpapi

import "testing"

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/healthz", want: false},
		{path: "/health", want: false},
		{path: "/livez", want: false},
		{path: "/readyz", want: false},
		{path: "/metrics", want: false},
		{path: "/HEALTHZ", want: false},
		{path: " /healthz ", want: false},
		{path: "/v1/standings", want: true},
		{path: "/v1/managers/mgr-01/lineups/2026-01-05", want: true},
		{path: "/", want: true},
		{path: "", want: true},
	}

	for _, tt := range tests {
		if got := shouldTraceRequest(tt.path); got != tt.want {
			t.Fatalf("shouldTraceRequest(%q): got=%v want=%v", tt.path, got, tt.want)
		}
	}
}
