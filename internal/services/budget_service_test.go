package services

import (
	"context"
	"testing"

	"github.com/pratik-mahalle/cloudcost/internal/domain/budget"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/testutil"
)

func TestBudgetService_Create(t *testing.T) {
	f := newFixture(t)
	service := NewBudgetService(f.repos.budgets, f.repos.accounts, f.repos.costs, f.log).WithClock(testutil.FixedClock(fixedNow))
	ctx := context.Background()

	userID := testutil.SeedUser(t, f.db, "owner@example.com")
	other := testutil.SeedUser(t, f.db, "other@example.com")
	accountID := testutil.SeedAccount(t, f.db, userID, "AWS", "Prod")

	tests := []struct {
		name          string
		userID        string
		in            budget.CreateInput
		wantThreshold float64
		wantScoped    bool
		wantCode      string
	}{
		{
			name:          "default threshold",
			userID:        userID,
			in:            budget.CreateInput{Name: "Monthly", Amount: 500, Period: budget.PeriodMonthly},
			wantThreshold: 80,
		},
		{
			name:          "scoped with threshold",
			userID:        userID,
			in:            budget.CreateInput{Name: "AWS", Amount: 500, Period: budget.PeriodYearly, CloudAccountID: &accountID, AlertThreshold: floatPtr(90)},
			wantThreshold: 90,
			wantScoped:    true,
		},
		{
			name:          "empty account id is global",
			userID:        userID,
			in:            budget.CreateInput{Name: "Q", Amount: 1, Period: budget.PeriodQuarterly, CloudAccountID: stringPtr("")},
			wantThreshold: 80,
		},
		{
			name:     "foreign account",
			userID:   other,
			in:       budget.CreateInput{Name: "Steal", Amount: 1, Period: budget.PeriodMonthly, CloudAccountID: &accountID},
			wantCode: errors.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := service.Create(ctx, tt.userID, tt.in)
			if tt.wantCode != "" {
				if got := errCode(err); got != tt.wantCode {
					t.Fatalf("Create() code = %q, want %q", got, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if b.AlertThreshold != tt.wantThreshold {
				t.Errorf("AlertThreshold = %v, want %v", b.AlertThreshold, tt.wantThreshold)
			}
			if (b.CloudAccountID != nil) != tt.wantScoped {
				t.Errorf("CloudAccountID = %v, scoped %v", b.CloudAccountID, tt.wantScoped)
			}
		})
	}
}

func TestBudgetService_ListAndCheck(t *testing.T) {
	f := newFixture(t)
	service := NewBudgetService(f.repos.budgets, f.repos.accounts, f.repos.costs, f.log).WithClock(testutil.FixedClock(fixedNow))
	ctx := context.Background()
	userID, awsID, _ := seedCostHistory(t, f)

	inputs := []budget.CreateInput{
		{Name: "Monthly", Amount: 200, Period: budget.PeriodMonthly, AlertThreshold: floatPtr(70)},
		{Name: "AWS quarter", Amount: 1000, Period: budget.PeriodQuarterly, CloudAccountID: &awsID},
		{Name: "Year", Amount: 10000, Period: budget.PeriodYearly},
	}
	for _, in := range inputs {
		if _, err := service.Create(ctx, userID, in); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	statuses, err := service.List(ctx, userID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	byName := map[string]*budget.Status{}
	for _, s := range statuses {
		byName[s.Name] = s
	}

	tests := []struct {
		name          string
		wantSpend     float64
		wantPct       float64
		wantOver      bool
		wantNear      bool
		wantRemaining float64
	}{
		{name: "Monthly", wantSpend: 150, wantPct: 75, wantNear: true, wantRemaining: 50},
		{name: "AWS quarter", wantSpend: 1130, wantPct: 113, wantOver: true, wantNear: true, wantRemaining: -130},
		{name: "Year", wantSpend: 1180, wantPct: 11.8, wantRemaining: 8820},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := byName[tt.name]
			if !ok {
				t.Fatalf("budget %q missing from List()", tt.name)
			}
			if s.CurrentSpend != tt.wantSpend || s.Percentage != tt.wantPct || s.Remaining != tt.wantRemaining {
				t.Errorf("spend/pct/remaining = %v/%v/%v, want %v/%v/%v",
					s.CurrentSpend, s.Percentage, s.Remaining, tt.wantSpend, tt.wantPct, tt.wantRemaining)
			}
			if s.IsOverBudget != tt.wantOver || s.IsNearLimit != tt.wantNear {
				t.Errorf("over/near = %v/%v, want %v/%v", s.IsOverBudget, s.IsNearLimit, tt.wantOver, tt.wantNear)
			}
		})
	}

	result, err := service.CheckAll(ctx)
	if err != nil {
		t.Fatalf("CheckAll() error = %v", err)
	}
	want := budget.CheckResult{Checked: 3, OK: 1, NearLimit: 1, OverBudget: 1}
	if *result != want {
		t.Errorf("CheckAll() = %+v, want %+v", *result, want)
	}
}

func TestBudgetService_UpdateDelete(t *testing.T) {
	f := newFixture(t)
	service := NewBudgetService(f.repos.budgets, f.repos.accounts, f.repos.costs, f.log).WithClock(testutil.FixedClock(fixedNow))
	ctx := context.Background()
	userID := testutil.SeedUser(t, f.db, "owner@example.com")
	other := testutil.SeedUser(t, f.db, "other@example.com")

	b, err := service.Create(ctx, userID, budget.CreateInput{Name: "Original", Amount: 100, Period: budget.PeriodMonthly})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := service.Update(ctx, userID, b.ID, budget.UpdateInput{Amount: floatPtr(250)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Original" || updated.Amount != 250 || updated.AlertThreshold != 80 {
		t.Errorf("Update() = %+v, want only amount changed", updated)
	}

	if _, err := service.Update(ctx, other, b.ID, budget.UpdateInput{Name: stringPtr("x")}); !errors.IsNotFound(err) {
		t.Errorf("Update(other user) error = %v, want not found", err)
	}
	if err := service.Delete(ctx, other, b.ID); !errors.IsNotFound(err) {
		t.Errorf("Delete(other user) error = %v, want not found", err)
	}
	if err := service.Delete(ctx, userID, b.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := service.Delete(ctx, userID, b.ID); !errors.IsNotFound(err) {
		t.Errorf("Delete() twice error = %v, want not found", err)
	}
}
