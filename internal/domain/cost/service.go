package cost

import "context"

// Service defines the cost analytics service interface. An empty
// accountID means all of the user's accounts.
type Service interface {
	Summary(ctx context.Context, userID, accountID string) (*Summary, error)
	Trends(ctx context.Context, userID, accountID string, days int) ([]DailyCost, error)
	Breakdown(ctx context.Context, userID, accountID string) ([]ServiceCost, error)
	Providers(ctx context.Context, userID string) ([]ProviderCost, error)
}
