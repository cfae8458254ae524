package cost

import (
	"context"
	"time"
)

// Repository defines the cost repository interface. Ranges are [from, to).
type Repository interface {
	// ReplaceForAccount deletes the account's rows and inserts records in
	// one transaction
	ReplaceForAccount(ctx context.Context, accountID string, records []*Record) error

	Sum(ctx context.Context, filter Filter, from, to time.Time) (float64, error)
	DailyTotals(ctx context.Context, filter Filter, from, to time.Time) ([]DailyCost, error)
	ByService(ctx context.Context, filter Filter, from, to time.Time) ([]ServiceCost, error)
	ByProvider(ctx context.Context, userID string, from, to time.Time) ([]ProviderCost, error)

	// ListDetailed returns the user's rows from since onwards, newest first
	ListDetailed(ctx context.Context, userID string, since time.Time) ([]*DetailedRecord, error)
}

// Fetcher pulls daily cost rows from a provider billing API
type Fetcher interface {
	FetchDailyCosts(ctx context.Context, credentials map[string]string, start, end time.Time) ([]*Record, error)
}
