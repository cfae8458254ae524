package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
	"github.com/pratik-mahalle/cloudcost/internal/domain/budget"
	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
	"github.com/pratik-mahalle/cloudcost/internal/domain/deletion"
	"github.com/pratik-mahalle/cloudcost/internal/domain/recommendation"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/repository/postgres"
	"github.com/pratik-mahalle/cloudcost/internal/testutil"
)

// fixedNow is mid-month so month-to-date and previous-month windows differ
var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db    *sql.DB
	log   *logger.Logger
	repos struct {
		accounts        account.Repository
		costs           cost.Repository
		recommendations recommendation.Repository
		deletions       deletion.Repository
		budgets         budget.Repository
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	f := &fixture{db: db, log: logger.New(logger.Config{Level: "error", Format: "json"})}
	f.repos.accounts = postgres.NewAccountRepository(db)
	f.repos.costs = postgres.NewCostRepository(db)
	f.repos.recommendations = postgres.NewRecommendationRepository(db)
	f.repos.deletions = postgres.NewDeletionRepository(db)
	f.repos.budgets = postgres.NewBudgetRepository(db)
	return f
}

func day(offset int) time.Time {
	return startOfDay(fixedNow).AddDate(0, 0, offset)
}

func floatPtr(v float64) *float64 { return &v }

func stringPtr(s string) *string { return &s }

func errCode(err error) string {
	if appErr, ok := errors.As(err); ok {
		return appErr.Code
	}
	return ""
}
