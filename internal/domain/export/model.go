package export

import "context"

// Report is a generated CSV attachment
type Report struct {
	Name     string // costs, recommendations or deletions
	Filename string
	Content  []byte
}

// Report names
const (
	ReportCosts           = "costs"
	ReportRecommendations = "recommendations"
	ReportDeletions       = "deletions"
)

// Service builds CSV reports for a user
type Service interface {
	Costs(ctx context.Context, userID string, days int) (*Report, error)
	Recommendations(ctx context.Context, userID string) (*Report, error)
	Deletions(ctx context.Context, userID string) (*Report, error)
}

// Archiver stores a copy of a generated report
type Archiver interface {
	Archive(ctx context.Context, userID string, report *Report) error
}
