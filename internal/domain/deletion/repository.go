package deletion

import (
	"context"
	"time"
)

// Repository defines the interface for deletion data access. Every method is
// scoped to the accounts owned by userID.
type Repository interface {
	Create(ctx context.Context, d *Deletion) error
	List(ctx context.Context, userID string, filter Filter) ([]*Deletion, error)
	Count(ctx context.Context, userID string, since *time.Time) (int, error)
	TotalSavings(ctx context.Context, userID string) (float64, error)
	ByResourceType(ctx context.Context, userID string) ([]TypeStat, error)
}
