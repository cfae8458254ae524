package services

import (
	"bytes"
	"context"
	"encoding/csv"

	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
	"github.com/pratik-mahalle/cloudcost/internal/domain/deletion"
	"github.com/pratik-mahalle/cloudcost/internal/domain/export"
	"github.com/pratik-mahalle/cloudcost/internal/domain/recommendation"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/metrics"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/money"
)

const dayLayout = "2006-01-02"

var (
	costHeader = []string{"Date", "Provider", "Account Name", "Service", "Region", "Cost (USD)"}

	recommendationHeader = []string{
		"Title", "Type", "Priority", "Status", "Estimated Savings (USD/mo)", "Provider", "Account", "Resource ID",
	}

	deletionHeader = []string{
		"Date", "Resource Name", "Resource ID", "Resource Type", "Provider", "Account", "Method",
		"Monthly Savings (USD)", "Reason",
	}
)

// ExportService implements export.Service
type ExportService struct {
	costs           cost.Repository
	recommendations recommendation.Repository
	deletions       deletion.Repository
	archiver        export.Archiver
	logger          *logger.Logger
	now             Clock
}

// NewExportService creates a CSV export service. archiver may be nil.
func NewExportService(
	costs cost.Repository,
	recs recommendation.Repository,
	deletions deletion.Repository,
	archiver export.Archiver,
	log *logger.Logger,
) *ExportService {
	return &ExportService{
		costs:           costs,
		recommendations: recs,
		deletions:       deletions,
		archiver:        archiver,
		logger:          log,
		now:             systemClock,
	}
}

// WithClock overrides the service clock
func (s *ExportService) WithClock(c Clock) *ExportService {
	s.now = c
	return s
}

// Costs exports the user's cost rows for the last days days
func (s *ExportService) Costs(ctx context.Context, userID string, days int) (*export.Report, error) {
	if days < 1 || days > cost.MaxTrendDays {
		return nil, errors.BadRequest("days must be between 1 and 365")
	}
	since, _ := lastNDays(s.now(), days)

	records, err := s.costs.ListDetailed(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Date.Format(dayLayout),
			r.Provider,
			r.AccountName,
			r.Service,
			r.Region,
			money.Format(r.CostAmount),
		})
	}
	return s.build(ctx, userID, export.ReportCosts, "cloud-costs.csv", costHeader, rows)
}

// Recommendations exports every recommendation of the user
func (s *ExportService) Recommendations(ctx context.Context, userID string) (*export.Report, error) {
	recs, err := s.recommendations.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		var provider, name string
		if r.CloudAccount != nil {
			provider, name = r.CloudAccount.Provider, r.CloudAccount.AccountName
		}
		rows = append(rows, []string{
			r.Title,
			r.Type,
			r.Priority,
			r.Status,
			money.Format(r.EstimatedSavings),
			provider,
			name,
			r.ResourceID,
		})
	}
	return s.build(ctx, userID, export.ReportRecommendations, "recommendations.csv", recommendationHeader, rows)
}

// Deletions exports the user's Nuke tracker history
func (s *ExportService) Deletions(ctx context.Context, userID string) (*export.Report, error) {
	dels, err := s.deletions.List(ctx, userID, deletion.Filter{})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(dels))
	for _, d := range dels {
		var provider, name, savings string
		if d.CloudAccount != nil {
			provider, name = d.CloudAccount.Provider, d.CloudAccount.AccountName
		}
		if d.EstimatedSavings != nil {
			savings = money.Format(*d.EstimatedSavings)
		}
		rows = append(rows, []string{
			d.DeletedAt.UTC().Format(dayLayout),
			d.ResourceName,
			d.ResourceID,
			d.ResourceType,
			provider,
			name,
			d.DeletionMethod,
			savings,
			d.DeletionReason,
		})
	}
	return s.build(ctx, userID, export.ReportDeletions, "deletions.csv", deletionHeader, rows)
}

func (s *ExportService) build(ctx context.Context, userID, name, filename string, header []string, rows [][]string) (*export.Report, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, errors.Internal("Failed to write CSV", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, errors.Internal("Failed to write CSV", err)
	}

	report := &export.Report{Name: name, Filename: filename, Content: buf.Bytes()}
	metrics.RecordExport(name)

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, userID, report); err != nil {
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"user_id": userID,
				"report":  name,
			}).Warn("Failed to archive export")
		}
	}
	return report, nil
}
