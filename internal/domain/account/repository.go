package account

import (
	"context"
	"time"
)

// Repository defines the interface for cloud account data access
type Repository interface {
	Create(ctx context.Context, acct *Account) error

	// GetForUser returns the account only if it belongs to userID
	GetForUser(ctx context.Context, userID, id string) (*Account, error)

	ListByUser(ctx context.Context, userID string) ([]*Account, error)

	// ListDemo returns every demo account across all users
	ListDemo(ctx context.Context) ([]*Account, error)

	UpdateSyncStatus(ctx context.Context, id, status string, lastSyncedAt *time.Time) error

	// Delete removes the account and every row that hangs off it
	Delete(ctx context.Context, id string) error
}
