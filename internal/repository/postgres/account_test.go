package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
	"github.com/pratik-mahalle/cloudcost/internal/domain/budget"
	"github.com/pratik-mahalle/cloudcost/internal/domain/recommendation"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/testutil"
)

func TestAccountRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "owner@example.com")
	other := testutil.SeedUser(t, db, "other@example.com")

	synced := time.Now()
	a := &account.Account{
		UserID:               owner,
		Provider:             account.ProviderAWS,
		AccountName:          "Production",
		AccountID:            "123456789012",
		CredentialsEncrypted: account.DemoCredentials,
		IsDemo:               true,
		LastSyncedAt:         &synced,
	}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if a.ID == "" || a.Status != account.StatusActive {
		t.Fatalf("Create() did not fill defaults: %+v", a)
	}

	got, err := repo.GetForUser(ctx, owner, a.ID)
	if err != nil {
		t.Fatalf("GetForUser() error = %v", err)
	}
	if !got.IsDemo || got.AccountName != "Production" || got.LastSyncedAt == nil {
		t.Errorf("GetForUser() = %+v", got)
	}

	_, err = repo.GetForUser(ctx, other, a.ID)
	appErr, ok := errors.As(err)
	if !ok || appErr.Message != "Cloud account not found" {
		t.Errorf("GetForUser(other) error = %v, want Cloud account not found", err)
	}
}

func TestAccountRepository_ListAndStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "owner@example.com")
	first := &account.Account{UserID: owner, Provider: account.ProviderAWS, AccountName: "first", AccountID: "1", CredentialsEncrypted: "x", IsDemo: true}
	second := &account.Account{UserID: owner, Provider: account.ProviderGCP, AccountName: "second", AccountID: "2", CredentialsEncrypted: "y", IsDemo: false}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if err := repo.Create(ctx, second); err != nil {
		t.Fatal(err)
	}

	list, err := repo.ListByUser(ctx, owner)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("ListByUser() order wrong: %+v", list)
	}

	demo, err := repo.ListDemo(ctx)
	if err != nil {
		t.Fatalf("ListDemo() error = %v", err)
	}
	if len(demo) != 1 || demo[0].ID != first.ID {
		t.Errorf("ListDemo() = %+v", demo)
	}

	if err := repo.UpdateSyncStatus(ctx, second.ID, account.StatusError, nil); err != nil {
		t.Fatalf("UpdateSyncStatus() error = %v", err)
	}
	got, _ := repo.GetForUser(ctx, owner, second.ID)
	if got.Status != account.StatusError {
		t.Errorf("Status = %s, want ERROR", got.Status)
	}
	if err := repo.UpdateSyncStatus(ctx, "missing", account.StatusActive, nil); !errors.IsNotFound(err) {
		t.Errorf("UpdateSyncStatus(missing) error = %v", err)
	}
}

func TestAccountRepository_DeleteRemovesChildren(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewAccountRepository(db)
	recs := NewRecommendationRepository(db)
	budgets := NewBudgetRepository(db)

	owner := testutil.SeedUser(t, db, "owner@example.com")
	accountID := testutil.SeedAccount(t, db, owner, "AWS", "Prod")
	keepID := testutil.SeedAccount(t, db, owner, "GCP", "Keep")
	testutil.SeedCost(t, db, accountID, now(), "EC2", "us-east-1", 12.5)
	testutil.SeedCost(t, db, keepID, now(), "Cloud SQL", "us-central1", 3)

	if err := recs.ReplaceForAccount(ctx, accountID, []*recommendation.Recommendation{{
		ResourceID: "r", Type: recommendation.TypeRightSize, Title: "t", Description: "d",
		EstimatedSavings: 1, Priority: recommendation.PriorityLow,
	}}); err != nil {
		t.Fatal(err)
	}
	scoped := accountID
	if err := budgets.Create(ctx, &budget.Budget{UserID: owner, CloudAccountID: &scoped, Name: "b", Amount: 10, Period: budget.PeriodMonthly, AlertThreshold: 80}); err != nil {
		t.Fatal(err)
	}
	if err := budgets.Create(ctx, &budget.Budget{UserID: owner, Name: "global", Amount: 10, Period: budget.PeriodMonthly, AlertThreshold: 80}); err != nil {
		t.Fatal(err)
	}

	if err := repo.Delete(ctx, accountID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	counts := map[string]int{
		`SELECT COUNT(*) FROM cost_data`:       1,
		`SELECT COUNT(*) FROM recommendations`: 0,
		`SELECT COUNT(*) FROM budgets`:         1,
		`SELECT COUNT(*) FROM cloud_accounts`:  1,
	}
	for q, want := range counts {
		var n int
		if err := db.QueryRow(q).Scan(&n); err != nil {
			t.Fatal(err)
		}
		if n != want {
			t.Errorf("%s = %d, want %d", q, n, want)
		}
	}

	if err := repo.Delete(ctx, accountID); !errors.IsNotFound(err) {
		t.Errorf("second Delete() error = %v, want not found", err)
	}
}
