package user

import "context"

// Service defines registration, login and token refresh
type Service interface {
	// Register creates a user and issues a token pair
	Register(ctx context.Context, email, name, password string) (*Session, error)

	// Login verifies credentials and issues a token pair
	Login(ctx context.Context, email, password string) (*Session, error)

	// Refresh exchanges a refresh token for a new access token
	Refresh(ctx context.Context, refreshToken string) (string, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*User, error)
}
