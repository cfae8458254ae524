package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/money"
)

// CostService implements cost.Service
type CostService struct {
	costs    cost.Repository
	accounts account.Repository
	logger   *logger.Logger
	now      Clock
}

// NewCostService creates a new cost analytics service
func NewCostService(costs cost.Repository, accounts account.Repository, log *logger.Logger) *CostService {
	return &CostService{
		costs:    costs,
		accounts: accounts,
		logger:   log,
		now:      systemClock,
	}
}

// WithClock overrides the service clock
func (s *CostService) WithClock(c Clock) *CostService {
	s.now = c
	return s
}

// filter validates an optional account and builds the query scope
func (s *CostService) filter(ctx context.Context, userID, accountID string) (cost.Filter, error) {
	if accountID != "" {
		if _, err := s.accounts.GetForUser(ctx, userID, accountID); err != nil {
			return cost.Filter{}, err
		}
	}
	return cost.Filter{UserID: userID, CloudAccountID: accountID}, nil
}

// Summary returns the 30-day total, month-to-date, previous month and a
// linear forecast for the current month
func (s *CostService) Summary(ctx context.Context, userID, accountID string) (*cost.Summary, error) {
	f, err := s.filter(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	monthStart := startOfMonth(now)
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	windowStart, _ := lastNDays(now, cost.Window)

	var total, mtd, prev float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.costs.Sum(gctx, f, windowStart, tomorrow)
		return err
	})
	g.Go(func() error {
		var err error
		mtd, err = s.costs.Sum(gctx, f, monthStart, tomorrow)
		return err
	})
	g.Go(func() error {
		var err error
		prev, err = s.costs.Sum(gctx, f, prevMonthStart, monthStart)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.FromError(err, "Failed to compute cost summary")
	}

	daysInMonth := monthStart.AddDate(0, 1, -1).Day()
	forecast := mtd / float64(now.Day()) * float64(daysInMonth)

	var change float64
	if prev > 0 {
		change = money.Round1((mtd - prev) / prev * 100)
	}

	return &cost.Summary{
		TotalCost:         money.Round2(total),
		MTDCost:           money.Round2(mtd),
		PreviousMonthCost: money.Round2(prev),
		ForecastedCost:    money.Round2(forecast),
		Currency:          money.Currency,
		PercentageChange:  change,
	}, nil
}

// Trends returns daily totals for the last days calendar days, oldest first
func (s *CostService) Trends(ctx context.Context, userID, accountID string, days int) ([]cost.DailyCost, error) {
	if days < 1 || days > cost.MaxTrendDays {
		return nil, errors.BadRequest("days must be between 1 and 365")
	}
	f, err := s.filter(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	from, to := lastNDays(s.now(), days)
	points, err := s.costs.DailyTotals(ctx, f, from, to)
	if err != nil {
		return nil, err
	}
	for i := range points {
		points[i].Cost = money.Round2(points[i].Cost)
	}
	return points, nil
}

// Breakdown splits the last 30 days by service
func (s *CostService) Breakdown(ctx context.Context, userID, accountID string) ([]cost.ServiceCost, error) {
	f, err := s.filter(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	from, to := s.window()
	rows, err := s.costs.ByService(ctx, f, from, to)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, r := range rows {
		total += r.Cost
	}
	for i := range rows {
		rows[i].Percentage = money.Percent(rows[i].Cost, total)
		rows[i].Cost = money.Round2(rows[i].Cost)
	}
	return rows, nil
}

// Providers splits the last 30 days by provider across all the user's accounts
func (s *CostService) Providers(ctx context.Context, userID string) ([]cost.ProviderCost, error) {
	from, to := s.window()
	rows, err := s.costs.ByProvider(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, r := range rows {
		total += r.Cost
	}
	for i := range rows {
		rows[i].Percentage = money.Percent(rows[i].Cost, total)
		rows[i].Cost = money.Round2(rows[i].Cost)
	}
	return rows, nil
}

func (s *CostService) window() (time.Time, time.Time) {
	return lastNDays(s.now(), cost.Window)
}
