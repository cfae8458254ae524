package postgres

import (
	"context"
	"testing"

	"github.com/pratik-mahalle/cloudcost/internal/domain/recommendation"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/testutil"
)

func seedRecommendations(t *testing.T, repo recommendation.Repository, accountID string) []*recommendation.Recommendation {
	t.Helper()
	recs := []*recommendation.Recommendation{
		{ResourceID: "a", Type: recommendation.TypeRightSize, Title: "low", Description: "d", EstimatedSavings: 500, Priority: recommendation.PriorityLow, ImplementationSteps: []string{"one"}},
		{ResourceID: "b", Type: recommendation.TypeDeleteIdle, Title: "high small", Description: "d", EstimatedSavings: 50, Priority: recommendation.PriorityHigh, ImplementationSteps: []string{"one", "two"}},
		{ResourceID: "c", Type: recommendation.TypeDeleteIdle, Title: "high big", Description: "d", EstimatedSavings: 250, Priority: recommendation.PriorityHigh},
		{ResourceID: "d", Type: recommendation.TypeRightSize, Title: "medium", Description: "d", EstimatedSavings: 90, Priority: recommendation.PriorityMedium},
	}
	if err := repo.ReplaceForAccount(context.Background(), accountID, recs); err != nil {
		t.Fatalf("ReplaceForAccount() error = %v", err)
	}
	return recs
}

func TestRecommendationRepository_ListPendingOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRecommendationRepository(db)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "owner@example.com")
	accountID := testutil.SeedAccount(t, db, owner, "AWS", "Prod")
	seedRecommendations(t, repo, accountID)

	list, err := repo.ListPending(ctx, owner, "")
	if err != nil {
		t.Fatalf("ListPending() error = %v", err)
	}

	wantTitles := []string{"high big", "high small", "medium", "low"}
	if len(list) != len(wantTitles) {
		t.Fatalf("len = %d, want %d", len(list), len(wantTitles))
	}
	for i, title := range wantTitles {
		if list[i].Title != title {
			t.Errorf("list[%d] = %q, want %q", i, list[i].Title, title)
		}
	}
	if got := list[1].ImplementationSteps; len(got) != 2 || got[1] != "two" {
		t.Errorf("ImplementationSteps = %v", got)
	}
	if list[0].CloudAccount == nil || list[0].CloudAccount.Provider != "AWS" {
		t.Errorf("CloudAccount = %+v", list[0].CloudAccount)
	}
}

func TestRecommendationRepository_StatusAndSavings(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRecommendationRepository(db)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "owner@example.com")
	other := testutil.SeedUser(t, db, "other@example.com")
	accountID := testutil.SeedAccount(t, db, owner, "AWS", "Prod")
	recs := seedRecommendations(t, repo, accountID)

	if _, err := repo.GetForUser(ctx, other, recs[0].ID); !errors.IsNotFound(err) {
		t.Errorf("GetForUser(other) error = %v, want not found", err)
	}

	if err := repo.UpdateStatus(ctx, recs[0].ID, recommendation.StatusImplemented); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if err := repo.UpdateStatus(ctx, recs[1].ID, recommendation.StatusDismissed); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	pending, count, err := repo.SumByStatus(ctx, owner, recommendation.StatusPending)
	if err != nil {
		t.Fatalf("SumByStatus() error = %v", err)
	}
	if pending != 340 || count != 2 {
		t.Errorf("pending = %v/%d, want 340/2", pending, count)
	}

	implemented, count, _ := repo.SumByStatus(ctx, owner, recommendation.StatusImplemented)
	if implemented != 500 || count != 1 {
		t.Errorf("implemented = %v/%d, want 500/1", implemented, count)
	}

	all, err := repo.ListAll(ctx, owner)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 4 || all[0].EstimatedSavings != 500 {
		t.Errorf("ListAll() = %+v", all)
	}

	got, err := repo.GetForUser(ctx, owner, recs[0].ID)
	if err != nil {
		t.Fatalf("GetForUser() error = %v", err)
	}
	if got.Status != recommendation.StatusImplemented {
		t.Errorf("Status = %s", got.Status)
	}

	if err := repo.UpdateStatus(ctx, "missing", recommendation.StatusDismissed); !errors.IsNotFound(err) {
		t.Errorf("UpdateStatus(missing) error = %v", err)
	}
}
