package services

import (
	"context"
	"testing"
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/auth"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService() (*testutil.MockUserRepository, *auth.TokenManager, *UserService) {
	repo := testutil.NewMockUserRepository()
	tokens := auth.NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	svc := NewUserService(repo, tokens, bcrypt.MinCost, log).(*UserService)
	return repo, tokens, svc
}

func TestUserService_Register(t *testing.T) {
	repo, tokens, service := newTestUserService()
	ctx := context.Background()

	session, err := service.Register(ctx, "  Alice@Example.COM ", "Alice", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if session.User.Email != "alice@example.com" {
		t.Errorf("Email = %q, want normalized", session.User.Email)
	}
	if session.User.PasswordHash == "password123" {
		t.Error("password stored in clear text")
	}
	if _, ok := repo.EmailIndex["alice@example.com"]; !ok {
		t.Error("user not persisted")
	}

	claims, err := tokens.ParseAccessToken(session.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if claims.UserID != session.User.ID || claims.Role != "USER" {
		t.Errorf("claims = %+v", claims)
	}

	tests := []struct {
		name     string
		email    string
		wantCode string
	}{
		{name: "duplicate email", email: "alice@example.com", wantCode: errors.ErrCodeConflict},
		{name: "duplicate email different case", email: "ALICE@example.com", wantCode: errors.ErrCodeConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(ctx, tt.email, "Alice", "password123")
			if got := errCode(err); got != tt.wantCode {
				t.Errorf("Register() code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestUserService_Login(t *testing.T) {
	_, _, service := newTestUserService()
	ctx := context.Background()

	if _, err := service.Register(ctx, "bob@example.com", "Bob", "correct-horse"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "valid credentials", email: "bob@example.com", password: "correct-horse"},
		{name: "email is case insensitive", email: "BOB@example.com", password: "correct-horse"},
		{name: "wrong password", email: "bob@example.com", password: "wrong", wantErr: true},
		{name: "unknown user", email: "nobody@example.com", password: "correct-horse", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := service.Login(ctx, tt.email, tt.password)
			if tt.wantErr {
				appErr, ok := errors.As(err)
				if !ok || appErr.Code != errors.ErrCodeUnauthorized || appErr.Message != "Invalid credentials" {
					t.Errorf("Login() error = %v, want Invalid credentials", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if session.AccessToken == "" || session.RefreshToken == "" {
				t.Error("Login() returned empty tokens")
			}
		})
	}
}

func TestUserService_Refresh(t *testing.T) {
	repo, tokens, service := newTestUserService()
	ctx := context.Background()

	session, err := service.Register(ctx, "carol@example.com", "Carol", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	access, err := service.Refresh(ctx, session.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if _, err := tokens.ParseAccessToken(access); err != nil {
		t.Errorf("refreshed token does not parse: %v", err)
	}

	if _, err := service.Refresh(ctx, session.AccessToken); errCode(err) != errors.ErrCodeUnauthorized {
		t.Errorf("Refresh(access token) error = %v, want unauthorized", err)
	}

	if err := repo.Delete(ctx, session.User.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := service.Refresh(ctx, session.RefreshToken); errCode(err) != errors.ErrCodeUnauthorized {
		t.Errorf("Refresh(deleted user) error = %v, want unauthorized", err)
	}
}
