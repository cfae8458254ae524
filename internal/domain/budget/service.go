package budget

import "context"

// Service defines the interface for budget business logic
type Service interface {
	Create(ctx context.Context, userID string, in CreateInput) (*Budget, error)
	List(ctx context.Context, userID string) ([]*Status, error)
	Update(ctx context.Context, userID, id string, in UpdateInput) (*Budget, error)
	Delete(ctx context.Context, userID, id string) error

	// CheckAll evaluates every budget against current spend
	CheckAll(ctx context.Context) (*CheckResult, error)
}
