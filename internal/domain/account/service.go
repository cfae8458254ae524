package account

import "context"

// Service defines the interface for cloud account business logic
type Service interface {
	Create(ctx context.Context, userID string, in CreateInput) (*Account, error)
	List(ctx context.Context, userID string) ([]*Account, error)
	Delete(ctx context.Context, userID, id string) error

	// Sync refreshes cost data for one account
	Sync(ctx context.Context, userID, id string) (*Account, error)

	// SyncAllDemo regenerates data for every demo account and returns how
	// many succeeded
	SyncAllDemo(ctx context.Context) (int, error)
}
