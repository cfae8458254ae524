package services

import (
	"context"
	"strings"

	"github.com/pratik-mahalle/cloudcost/internal/auth"
	"github.com/pratik-mahalle/cloudcost/internal/domain/user"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
)

// UserService implements user.Service
type UserService struct {
	repo       user.Repository
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, tokens *auth.TokenManager, bcryptCost int, log *logger.Logger) user.Service {
	return &UserService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and signs them in
func (s *UserService) Register(ctx context.Context, email, name, password string) (*user.Session, error) {
	email = normalizeEmail(email)

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, errors.Conflict("User already exists with this email")
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	u := &user.User{
		Email:            email,
		Name:             strings.TrimSpace(name),
		PasswordHash:     hash,
		Role:             user.RoleUser,
		SubscriptionTier: user.TierFree,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if appErr, ok := errors.As(err); !ok || appErr.Code != errors.ErrCodeConflict {
			s.logger.ErrorWithErr(err, "Failed to create user")
		}
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("User registered")

	return s.session(u)
}

// Login verifies credentials and issues a token pair
func (s *UserService) Login(ctx context.Context, email, password string) (*user.Session, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.IsNotFound(err) {
		return nil, errors.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		s.logger.WithFields(map[string]interface{}{
			"user_id": u.ID,
		}).Warn("Login rejected: bad password")
		return nil, errors.Unauthorized("Invalid credentials")
	}

	return s.session(u)
}

// Refresh exchanges a refresh token for a new access token. The user must
// still exist; their current role is used.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", errors.Unauthorized("Invalid refresh token")
	}

	u, err := s.repo.GetByID(ctx, claims.UserID)
	if errors.IsNotFound(err) {
		return "", errors.Unauthorized("Invalid refresh token")
	}
	if err != nil {
		return "", err
	}

	token, err := s.tokens.MintAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return "", errors.Internal("Failed to issue token", err)
	}
	return token, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) session(u *user.User) (*user.Session, error) {
	pair, err := s.tokens.MintTokens(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, errors.Internal("Failed to issue tokens", err)
	}
	return &user.Session{
		User:         u,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
