package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
	"github.com/pratik-mahalle/cloudcost/internal/domain/recommendation"
	"github.com/pratik-mahalle/cloudcost/internal/mockdata"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/metrics"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/money"
)

// RecommendationService implements recommendation.Service
type RecommendationService struct {
	repo      recommendation.Repository
	accounts  account.Repository
	generator *mockdata.Generator
	engine    *RecommendationEngine
	logger    *logger.Logger
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(
	repo recommendation.Repository,
	accounts account.Repository,
	generator *mockdata.Generator,
	log *logger.Logger,
) recommendation.Service {
	return &RecommendationService{
		repo:      repo,
		accounts:  accounts,
		generator: generator,
		engine:    NewRecommendationEngine(),
		logger:    log,
	}
}

// Generate replaces the account's recommendations with a fresh evaluation
// of its resource inventory
func (s *RecommendationService) Generate(ctx context.Context, userID, accountID string) (int, error) {
	acct, err := s.accounts.GetForUser(ctx, userID, accountID)
	if err != nil {
		return 0, err
	}

	resources := s.generator.Resources(acct.Provider)
	recs := s.engine.Evaluate(acct.ID, acct.Provider, resources)

	if err := s.repo.ReplaceForAccount(ctx, acct.ID, recs); err != nil {
		s.logger.ErrorWithErr(err, "Failed to store recommendations")
		return 0, err
	}

	for _, rec := range recs {
		metrics.RecordRecommendation(rec.Type)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    userID,
		"account_id": acct.ID,
		"count":      len(recs),
	}).Info("Generated recommendations")

	return len(recs), nil
}

// List returns pending recommendations, most urgent first
func (s *RecommendationService) List(ctx context.Context, userID, accountID string) ([]*recommendation.Recommendation, error) {
	if accountID != "" {
		if _, err := s.accounts.GetForUser(ctx, userID, accountID); err != nil {
			return nil, err
		}
	}
	return s.repo.ListPending(ctx, userID, accountID)
}

// Savings totals pending and implemented recommendations
func (s *RecommendationService) Savings(ctx context.Context, userID string) (*recommendation.Savings, error) {
	var out recommendation.Savings

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sum, n, err := s.repo.SumByStatus(gctx, userID, recommendation.StatusPending)
		out.PotentialSavings, out.PendingCount = money.Round2(sum), n
		return err
	})
	g.Go(func() error {
		sum, n, err := s.repo.SumByStatus(gctx, userID, recommendation.StatusImplemented)
		out.ActualSavings, out.ImplementedCount = money.Round2(sum), n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.FromError(err, "Failed to compute savings")
	}
	return &out, nil
}

// Implement marks a recommendation as implemented
func (s *RecommendationService) Implement(ctx context.Context, userID, id string) (*recommendation.Recommendation, error) {
	return s.setStatus(ctx, userID, id, recommendation.StatusImplemented)
}

// Dismiss marks a recommendation as dismissed
func (s *RecommendationService) Dismiss(ctx context.Context, userID, id string) (*recommendation.Recommendation, error) {
	return s.setStatus(ctx, userID, id, recommendation.StatusDismissed)
}

func (s *RecommendationService) setStatus(ctx context.Context, userID, id, status string) (*recommendation.Recommendation, error) {
	if _, err := s.repo.GetForUser(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	metrics.RecordRecommendationStatus(status)

	s.logger.WithFields(map[string]interface{}{
		"user_id":           userID,
		"recommendation_id": id,
		"status":            status,
	}).Info("Recommendation status changed")

	return s.repo.GetForUser(ctx, userID, id)
}
