package recommendation

import "context"

// Service defines the interface for recommendation business logic
type Service interface {
	// Generate replaces the account's recommendations and returns how many
	// were created
	Generate(ctx context.Context, userID, accountID string) (int, error)

	List(ctx context.Context, userID, accountID string) ([]*Recommendation, error)
	Savings(ctx context.Context, userID string) (*Savings, error)
	Implement(ctx context.Context, userID, id string) (*Recommendation, error)
	Dismiss(ctx context.Context, userID, id string) (*Recommendation, error)
}
