package budget

import "context"

// Repository defines the interface for budget data access
type Repository interface {
	Create(ctx context.Context, b *Budget) error
	GetForUser(ctx context.Context, userID, id string) (*Budget, error)
	ListByUser(ctx context.Context, userID string) ([]*Budget, error)

	// ListAll returns every budget, used by the scheduled check
	ListAll(ctx context.Context) ([]*Budget, error)

	Update(ctx context.Context, b *Budget) error
	Delete(ctx context.Context, userID, id string) error
}
