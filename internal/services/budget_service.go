package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
	"github.com/pratik-mahalle/cloudcost/internal/domain/budget"
	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/metrics"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/money"
)

// enrichLimit bounds concurrent spend queries while listing budgets
const enrichLimit = 4

// BudgetService implements budget.Service
type BudgetService struct {
	repo     budget.Repository
	accounts account.Repository
	costs    cost.Repository
	logger   *logger.Logger
	now      Clock
}

// NewBudgetService creates a new budget service
func NewBudgetService(repo budget.Repository, accounts account.Repository, costs cost.Repository, log *logger.Logger) *BudgetService {
	return &BudgetService{
		repo:     repo,
		accounts: accounts,
		costs:    costs,
		logger:   log,
		now:      systemClock,
	}
}

// WithClock overrides the service clock
func (s *BudgetService) WithClock(c Clock) *BudgetService {
	s.now = c
	return s
}

// Create stores a new budget for the user
func (s *BudgetService) Create(ctx context.Context, userID string, in budget.CreateInput) (*budget.Budget, error) {
	if in.CloudAccountID != nil && *in.CloudAccountID != "" {
		if _, err := s.accounts.GetForUser(ctx, userID, *in.CloudAccountID); err != nil {
			return nil, err
		}
	} else {
		in.CloudAccountID = nil
	}

	threshold := budget.DefaultAlertThreshold
	if in.AlertThreshold != nil {
		threshold = *in.AlertThreshold
	}

	b := &budget.Budget{
		UserID:         userID,
		CloudAccountID: in.CloudAccountID,
		Name:           in.Name,
		Amount:         in.Amount,
		Period:         in.Period,
		AlertThreshold: threshold,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create budget")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":   userID,
		"budget_id": b.ID,
		"period":    b.Period,
	}).Info("Budget created")
	return b, nil
}

// List returns the user's budgets enriched with current spend
func (s *BudgetService) List(ctx context.Context, userID string) ([]*budget.Status, error) {
	budgets, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, budgets)
}

// Update applies the provided fields to a budget
func (s *BudgetService) Update(ctx context.Context, userID, id string, in budget.UpdateInput) (*budget.Budget, error) {
	b, err := s.repo.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		b.Name = *in.Name
	}
	if in.Amount != nil {
		b.Amount = *in.Amount
	}
	if in.AlertThreshold != nil {
		b.AlertThreshold = *in.AlertThreshold
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a budget owned by the user
func (s *BudgetService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// CheckAll evaluates every budget and publishes the state counts
func (s *BudgetService) CheckAll(ctx context.Context) (*budget.CheckResult, error) {
	budgets, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	statuses, err := s.enrich(ctx, budgets)
	if err != nil {
		return nil, err
	}

	result := &budget.CheckResult{Checked: len(statuses)}
	for _, st := range statuses {
		fields := map[string]interface{}{
			"user_id":       st.UserID,
			"budget_id":     st.ID,
			"budget_name":   st.Name,
			"current_spend": st.CurrentSpend,
			"percentage":    st.Percentage,
		}
		switch {
		case st.IsOverBudget:
			result.OverBudget++
			s.logger.WithFields(fields).Warn("Budget exceeded")
		case st.IsNearLimit:
			result.NearLimit++
			s.logger.WithFields(fields).Warn("Budget near limit")
		default:
			result.OK++
		}
	}
	metrics.SetBudgetStates(result.OK, result.NearLimit, result.OverBudget)
	return result, nil
}

func (s *BudgetService) enrich(ctx context.Context, budgets []*budget.Budget) ([]*budget.Status, error) {
	now := s.now()
	tomorrow := startOfDay(now).AddDate(0, 0, 1)
	out := make([]*budget.Status, len(budgets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichLimit)
	for i, b := range budgets {
		g.Go(func() error {
			filter := cost.Filter{UserID: b.UserID}
			if b.CloudAccountID != nil {
				filter.CloudAccountID = *b.CloudAccountID
			}
			spend, err := s.costs.Sum(gctx, filter, budget.PeriodStart(b.Period, now), tomorrow)
			if err != nil {
				return err
			}
			out[i] = evaluateBudget(b, spend)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.FromError(err, "Failed to compute budget spend")
	}
	return out, nil
}

func evaluateBudget(b *budget.Budget, spend float64) *budget.Status {
	spend = money.Round2(spend)
	pct := money.Percent(spend, b.Amount)
	return &budget.Status{
		Budget:       b,
		CurrentSpend: spend,
		Percentage:   pct,
		IsOverBudget: pct >= 100,
		IsNearLimit:  pct >= b.AlertThreshold,
		Remaining:    money.Round2(b.Amount - spend),
	}
}
