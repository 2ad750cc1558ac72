package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNegotiateAPIVersion(t *testing.T) {
	tests := []struct {
		name     string
		accept   string
		expected string
	}{
		{
			name:     "no accept header",
			accept:   "",
			expected: DefaultAPIVersion,
		},
		{
			name:     "plain json accept",
			accept:   "application/json",
			expected: DefaultAPIVersion,
		},
		{
			name:     "vendor v1",
			accept:   "application/vnd.yoas.v1+json",
			expected: "v1",
		},
		{
			name:     "unknown vendor version",
			accept:   "application/vnd.yoas.v9+json",
			expected: DefaultAPIVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}

			if got := negotiateAPIVersion(req); got != tt.expected {
				t.Errorf("expected version %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestSetAPIVersionHeader(t *testing.T) {
	w := httptest.NewRecorder()
	SetAPIVersionHeader(w, "v1")

	if got := w.Header().Get("X-API-Version"); got != "v1" {
		t.Errorf("expected X-API-Version v1, got %s", got)
	}
}
