package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	// Create inserts a user, assigning ID and timestamps. A duplicate email
	// yields a Conflict error.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Delete deletes a user together with their accounts and budgets
	Delete(ctx context.Context, id string) error
}
