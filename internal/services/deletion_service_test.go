package services

import (
	"context"
	"testing"

	"github.com/pratik-mahalle/cloudcost/internal/domain/deletion"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/testutil"
)

func TestDeletionService_Record(t *testing.T) {
	f := newFixture(t)
	service := NewDeletionService(f.repos.deletions, f.repos.accounts, f.log).WithClock(testutil.FixedClock(fixedNow))
	ctx := context.Background()

	userID := testutil.SeedUser(t, f.db, "owner@example.com")
	other := testutil.SeedUser(t, f.db, "other@example.com")
	accountID := testutil.SeedAccount(t, f.db, userID, "AWS", "Prod")

	tests := []struct {
		name          string
		userID        string
		in            deletion.RecordInput
		wantCode      string
		wantDeletedBy string
		wantSavings   *float64
	}{
		{
			name:   "manual with cost",
			userID: userID,
			in: deletion.RecordInput{
				CloudAccountID: accountID, ResourceID: "i-123", ResourceType: "EC2", ResourceName: "web, old",
				DeletionMethod: deletion.MethodManual, MonthlyCostBefore: floatPtr(120.456), DeletionReason: "unused",
			},
			wantDeletedBy: "user",
			wantSavings:   floatPtr(120.46),
		},
		{
			name:   "automation names itself",
			userID: userID,
			in: deletion.RecordInput{
				CloudAccountID: accountID, ResourceID: "vol-9", ResourceType: "EBS", DeletedBy: "janitor",
				DeletionMethod: deletion.MethodAutomated,
			},
			wantDeletedBy: "janitor",
		},
		{
			name:   "foreign account",
			userID: other,
			in: deletion.RecordInput{
				CloudAccountID: accountID, ResourceID: "i-1", ResourceType: "EC2", DeletionMethod: deletion.MethodManual,
			},
			wantCode: errors.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := service.Record(ctx, tt.userID, tt.in)
			if tt.wantCode != "" {
				if got := errCode(err); got != tt.wantCode {
					t.Fatalf("Record() code = %q, want %q", got, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Record() error = %v", err)
			}
			if d.DeletedBy != tt.wantDeletedBy {
				t.Errorf("DeletedBy = %q, want %q", d.DeletedBy, tt.wantDeletedBy)
			}
			if d.ProtectionStatus != deletion.ProtectionNone {
				t.Errorf("ProtectionStatus = %q", d.ProtectionStatus)
			}
			if !d.DeletedAt.Equal(fixedNow) {
				t.Errorf("DeletedAt = %v, want %v", d.DeletedAt, fixedNow)
			}
			switch {
			case tt.wantSavings == nil && d.EstimatedSavings != nil:
				t.Errorf("EstimatedSavings = %v, want nil", *d.EstimatedSavings)
			case tt.wantSavings != nil && (d.EstimatedSavings == nil || *d.EstimatedSavings != *tt.wantSavings):
				t.Errorf("EstimatedSavings = %v, want %v", d.EstimatedSavings, *tt.wantSavings)
			}
		})
	}

	list, err := service.List(ctx, userID, deletion.Filter{ResourceType: "EC2"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].ResourceID != "i-123" {
		t.Errorf("List(EC2) = %+v", list)
	}
	if _, err := service.List(ctx, other, deletion.Filter{CloudAccountID: accountID}); !errors.IsNotFound(err) {
		t.Errorf("List(foreign account) error = %v, want not found", err)
	}
}

func TestDeletionService_Analytics(t *testing.T) {
	f := newFixture(t)
	service := NewDeletionService(f.repos.deletions, f.repos.accounts, f.log).WithClock(testutil.FixedClock(fixedNow))
	ctx := context.Background()

	userID := testutil.SeedUser(t, f.db, "owner@example.com")
	accountID := testutil.SeedAccount(t, f.db, userID, "AWS", "Prod")

	old := &deletion.Deletion{
		CloudAccountID: accountID, ResourceID: "old-1", ResourceType: "EC2", DeletedAt: day(-45),
		DeletedBy: "user", DeletionMethod: deletion.MethodManual, EstimatedSavings: floatPtr(100.10),
		ProtectionStatus: deletion.ProtectionNone,
	}
	if err := f.repos.deletions.Create(ctx, old); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	for _, in := range []deletion.RecordInput{
		{CloudAccountID: accountID, ResourceID: "i-2", ResourceType: "EC2", DeletionMethod: deletion.MethodRecommendation, MonthlyCostBefore: floatPtr(50.2)},
		{CloudAccountID: accountID, ResourceID: "s3-1", ResourceType: "S3", DeletionMethod: deletion.MethodManual, MonthlyCostBefore: floatPtr(10)},
		{CloudAccountID: accountID, ResourceID: "s3-2", ResourceType: "S3", DeletionMethod: deletion.MethodManual},
	} {
		if _, err := service.Record(ctx, userID, in); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := service.Analytics(ctx, userID)
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if got.TotalDeletions != 4 || got.RecentDeletions != 3 {
		t.Errorf("counts = %d total / %d recent, want 4 / 3", got.TotalDeletions, got.RecentDeletions)
	}
	if got.TotalSavings != 160.3 {
		t.Errorf("TotalSavings = %v, want 160.3", got.TotalSavings)
	}
	if len(got.ByResourceType) != 2 {
		t.Fatalf("ByResourceType = %+v", got.ByResourceType)
	}

	empty, err := service.Analytics(ctx, testutil.SeedUser(t, f.db, "empty@example.com"))
	if err != nil {
		t.Fatalf("Analytics(empty) error = %v", err)
	}
	if empty.TotalDeletions != 0 || empty.ByResourceType == nil {
		t.Errorf("Analytics(empty) = %+v", empty)
	}
}
