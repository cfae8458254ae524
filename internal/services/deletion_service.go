package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
	"github.com/pratik-mahalle/cloudcost/internal/domain/deletion"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/metrics"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/money"
)

// recentWindowDays bounds "recent" deletions in analytics
const recentWindowDays = 30

// DeletionService implements deletion.Service
type DeletionService struct {
	repo     deletion.Repository
	accounts account.Repository
	logger   *logger.Logger
	now      Clock
}

// NewDeletionService creates a new Nuke tracker service
func NewDeletionService(repo deletion.Repository, accounts account.Repository, log *logger.Logger) *DeletionService {
	return &DeletionService{
		repo:     repo,
		accounts: accounts,
		logger:   log,
		now:      systemClock,
	}
}

// WithClock overrides the service clock
func (s *DeletionService) WithClock(c Clock) *DeletionService {
	s.now = c
	return s
}

// List returns the user's deletions, newest first
func (s *DeletionService) List(ctx context.Context, userID string, filter deletion.Filter) ([]*deletion.Deletion, error) {
	if filter.CloudAccountID != "" {
		if _, err := s.accounts.GetForUser(ctx, userID, filter.CloudAccountID); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, userID, filter)
}

// Record stores a deletion against one of the user's accounts
func (s *DeletionService) Record(ctx context.Context, userID string, in deletion.RecordInput) (*deletion.Deletion, error) {
	if _, err := s.accounts.GetForUser(ctx, userID, in.CloudAccountID); err != nil {
		return nil, err
	}

	deletedBy := in.DeletedBy
	if deletedBy == "" {
		deletedBy = deletion.DefaultDeletedBy
	}

	var savings *float64
	if in.MonthlyCostBefore != nil {
		v := money.Round2(*in.MonthlyCostBefore)
		savings = &v
	}

	d := &deletion.Deletion{
		CloudAccountID:    in.CloudAccountID,
		ResourceID:        in.ResourceID,
		ResourceType:      in.ResourceType,
		ResourceName:      in.ResourceName,
		DeletedAt:         s.now(),
		DeletedBy:         deletedBy,
		DeletionMethod:    in.DeletionMethod,
		MonthlyCostBefore: in.MonthlyCostBefore,
		EstimatedSavings:  savings,
		DeletionReason:    in.DeletionReason,
		RecommendationID:  in.RecommendationID,
		ProtectionStatus:  deletion.ProtectionNone,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.ErrorWithErr(err, "Failed to record deletion")
		return nil, err
	}
	metrics.RecordDeletion(d.DeletionMethod)

	s.logger.WithFields(map[string]interface{}{
		"user_id":     userID,
		"deletion_id": d.ID,
		"resource_id": d.ResourceID,
		"method":      d.DeletionMethod,
	}).Info("Recorded deletion")
	return d, nil
}

// Analytics aggregates the user's deletions
func (s *DeletionService) Analytics(ctx context.Context, userID string) (*deletion.Analytics, error) {
	var out deletion.Analytics
	since := s.now().AddDate(0, 0, -recentWindowDays)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.TotalDeletions, err = s.repo.Count(gctx, userID, nil)
		return err
	})
	g.Go(func() error {
		total, err := s.repo.TotalSavings(gctx, userID)
		out.TotalSavings = money.Round2(total)
		return err
	})
	g.Go(func() error {
		var err error
		out.RecentDeletions, err = s.repo.Count(gctx, userID, &since)
		return err
	})
	g.Go(func() error {
		groups, err := s.repo.ByResourceType(gctx, userID)
		for i := range groups {
			groups[i].Savings = money.Round2(groups[i].Savings)
		}
		out.ByResourceType = groups
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.FromError(err, "Failed to compute deletion analytics")
	}
	if out.ByResourceType == nil {
		out.ByResourceType = []deletion.TypeStat{}
	}
	return &out, nil
}
