package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name    string
		inbound string
		keep    bool
	}{
		{name: "generated when missing", inbound: "", keep: false},
		{name: "inbound reused", inbound: "lb-7f3a-0001", keep: true},
		{name: "spaces rejected", inbound: "bad id", keep: false},
		{name: "too long rejected", inbound: strings.Repeat("a", maxRequestIDLen+1), keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r)
			}))

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tt.inbound != "" {
				req.Header.Set(RequestIDHeader, tt.inbound)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if got := rr.Header().Get(RequestIDHeader); got != seen {
				t.Errorf("header = %q, context = %q", got, seen)
			}
			if tt.keep {
				if seen != tt.inbound {
					t.Errorf("request id = %q, want %q", seen, tt.inbound)
				}
				return
			}
			if _, err := uuid.Parse(seen); err != nil {
				t.Errorf("request id = %q, want a generated UUID", seen)
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	handler := DefaultCORS("http://localhost:5173/")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	preflight := func(origin, method string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/budgets", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", method)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	if got := preflight("http://localhost:3000", http.MethodPut).Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("PUT from dev origin: Allow-Origin = %q", got)
	}
	if got := preflight("http://localhost:5173", http.MethodPatch).Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("PATCH should not be allowed, Allow-Origin = %q", got)
	}
	if got := preflight("https://evil.example", http.MethodGet).Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unknown origin allowed: %q", got)
	}
}
