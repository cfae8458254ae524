package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/auth"
)

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	pair, err := tokens.MintTokens("user-1", "user@example.com", "USER")
	if err != nil {
		t.Fatalf("MintTokens() error = %v", err)
	}

	var gotUserID string
	handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserID(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
		wantUserID string
	}{
		{
			name:       "bearer header",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+pair.AccessToken) },
			wantStatus: http.StatusNoContent,
			wantUserID: "user-1",
		},
		{
			name:       "cookie",
			setup:      func(r *http.Request) { r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: pair.AccessToken}) },
			wantStatus: http.StatusNoContent,
			wantUserID: "user-1",
		},
		{
			name:       "missing token",
			setup:      func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "refresh token rejected",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+pair.RefreshToken) },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", pair.AccessToken) },
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			tt.setup(req)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if gotUserID != tt.wantUserID {
				t.Errorf("user ID = %q, want %q", gotUserID, tt.wantUserID)
			}
		})
	}
}
