package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/domain/deletion"
	"github.com/pratik-mahalle/cloudcost/internal/testutil"
)

func TestDeletionRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewDeletionRepository(db)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "owner@example.com")
	other := testutil.SeedUser(t, db, "other@example.com")
	aws := testutil.SeedAccount(t, db, owner, "AWS", "Prod")
	foreign := testutil.SeedAccount(t, db, other, "AWS", "Theirs")

	base := time.Now().UTC().Truncate(time.Second)
	f := func(v float64) *float64 { return &v }

	rows := []*deletion.Deletion{
		{CloudAccountID: aws, ResourceID: "i-1", ResourceType: "EC2", DeletedAt: base.AddDate(0, 0, -40), DeletedBy: "user", DeletionMethod: deletion.MethodManual, EstimatedSavings: f(100), ProtectionStatus: deletion.ProtectionNone},
		{CloudAccountID: aws, ResourceID: "i-2", ResourceType: "EC2", DeletedAt: base.AddDate(0, 0, -2), DeletedBy: "user", DeletionMethod: deletion.MethodAutomated, EstimatedSavings: f(50), ProtectionStatus: deletion.ProtectionNone},
		{CloudAccountID: aws, ResourceID: "vol-1", ResourceType: "EBS", ResourceName: "data", DeletedAt: base.AddDate(0, 0, -1), DeletedBy: "ops", DeletionMethod: deletion.MethodRecommendation, ProtectionStatus: deletion.ProtectionNone, DeletionReason: "unused, detached"},
		{CloudAccountID: foreign, ResourceID: "x", ResourceType: "EC2", DeletedAt: base, DeletedBy: "user", DeletionMethod: deletion.MethodManual, EstimatedSavings: f(999), ProtectionStatus: deletion.ProtectionNone},
	}
	for _, d := range rows {
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	start := base.AddDate(0, 0, -10)
	tests := []struct {
		name   string
		filter deletion.Filter
		want   []string
	}{
		{"all", deletion.Filter{}, []string{"vol-1", "i-2", "i-1"}},
		{"by type", deletion.Filter{ResourceType: "EC2"}, []string{"i-2", "i-1"}},
		{"by start", deletion.Filter{StartDate: &start}, []string{"vol-1", "i-2"}},
		{"foreign account", deletion.Filter{CloudAccountID: foreign}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, owner, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("List() len = %d, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ResourceID != id {
					t.Errorf("List()[%d] = %s, want %s", i, got[i].ResourceID, id)
				}
				if got[i].CloudAccount == nil || got[i].CloudAccount.AccountName != "Prod" {
					t.Errorf("missing account ref on %s", id)
				}
			}
		})
	}

	total, err := repo.Count(ctx, owner, nil)
	if err != nil || total != 3 {
		t.Errorf("Count() = %d, %v; want 3", total, err)
	}
	since := base.AddDate(0, 0, -30)
	recent, err := repo.Count(ctx, owner, &since)
	if err != nil || recent != 2 {
		t.Errorf("Count(since) = %d, %v; want 2", recent, err)
	}
	savings, err := repo.TotalSavings(ctx, owner)
	if err != nil || savings != 150 {
		t.Errorf("TotalSavings() = %v, %v; want 150", savings, err)
	}

	groups, err := repo.ByResourceType(ctx, owner)
	if err != nil {
		t.Fatalf("ByResourceType() error = %v", err)
	}
	if len(groups) != 2 || groups[0] != (deletion.TypeStat{ResourceType: "EC2", Count: 2, Savings: 150}) ||
		groups[1] != (deletion.TypeStat{ResourceType: "EBS", Count: 1, Savings: 0}) {
		t.Errorf("ByResourceType() = %+v", groups)
	}
}
