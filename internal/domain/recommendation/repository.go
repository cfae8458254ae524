package recommendation

import "context"

// Repository defines the interface for recommendation data access
type Repository interface {
	// ReplaceForAccount deletes the account's recommendations and inserts recs
	ReplaceForAccount(ctx context.Context, accountID string, recs []*Recommendation) error

	// ListPending returns PENDING rows by priority then savings
	ListPending(ctx context.Context, userID, accountID string) ([]*Recommendation, error)

	// ListAll returns every row with its account, savings desc
	ListAll(ctx context.Context, userID string) ([]*Recommendation, error)

	GetForUser(ctx context.Context, userID, id string) (*Recommendation, error)
	UpdateStatus(ctx context.Context, id, status string) error

	// SumByStatus returns the savings total and row count for one status
	SumByStatus(ctx context.Context, userID, status string) (float64, int, error)
}
