package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/pratik-mahalle/cloudcost/internal/domain/deletion"
	"github.com/pratik-mahalle/cloudcost/internal/domain/export"
	"github.com/pratik-mahalle/cloudcost/internal/domain/recommendation"
	"github.com/pratik-mahalle/cloudcost/internal/testutil"
)

func readCSV(t *testing.T, report *export.Report) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(report.Content)).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV in %s: %v", report.Filename, err)
	}
	return records
}

func TestExportService_Costs(t *testing.T) {
	f := newFixture(t)
	archiver := &testutil.MockArchiver{}
	service := NewExportService(f.repos.costs, f.repos.recommendations, f.repos.deletions, archiver, f.log).
		WithClock(testutil.FixedClock(fixedNow))
	ctx := context.Background()

	userID := testutil.SeedUser(t, f.db, "owner@example.com")
	accountID := testutil.SeedAccount(t, f.db, userID, "AWS", "Prod, EU")
	testutil.SeedCost(t, f.db, accountID, day(0), "EC2", "eu-west-1", 12.5)
	testutil.SeedCost(t, f.db, accountID, day(-3), "S3", "eu-west-1", 3)
	testutil.SeedCost(t, f.db, accountID, day(-10), "S3", "eu-west-1", 1)

	report, err := service.Costs(ctx, userID, 7)
	if err != nil {
		t.Fatalf("Costs() error = %v", err)
	}
	if report.Filename != "cloud-costs.csv" || report.Name != export.ReportCosts {
		t.Errorf("report = %s/%s", report.Name, report.Filename)
	}

	rows := readCSV(t, report)
	want := [][]string{
		{"Date", "Provider", "Account Name", "Service", "Region", "Cost (USD)"},
		{"2026-03-15", "AWS", "Prod, EU", "EC2", "eu-west-1", "12.50"},
		{"2026-03-12", "AWS", "Prod, EU", "S3", "eu-west-1", "3.00"},
	}
	if fmt.Sprint(rows) != fmt.Sprint(want) {
		t.Errorf("rows = %v\nwant %v", rows, want)
	}
	if !strings.Contains(string(report.Content), `"Prod, EU"`) {
		t.Error("account name with a comma was not quoted")
	}

	if archiver.Archived() != 1 || archiver.UserIDs[0] != userID {
		t.Errorf("archived %d reports for %v", archiver.Archived(), archiver.UserIDs)
	}

	if _, err := service.Costs(ctx, userID, 0); err == nil {
		t.Error("Costs(0 days) should fail")
	}
}

func TestExportService_RecommendationsAndDeletions(t *testing.T) {
	f := newFixture(t)
	archiver := &testutil.MockArchiver{Err: fmt.Errorf("bucket unavailable")}
	service := NewExportService(f.repos.costs, f.repos.recommendations, f.repos.deletions, archiver, f.log).
		WithClock(testutil.FixedClock(fixedNow))
	ctx := context.Background()

	userID := testutil.SeedUser(t, f.db, "owner@example.com")
	accountID := testutil.SeedAccount(t, f.db, userID, "GCP", "Data")

	recs := NewRecommendationEngine().Evaluate(accountID, "GCP", nil)
	recs = append(recs, &recommendation.Recommendation{
		CloudAccountID: accountID, ResourceID: "vm-1", Type: recommendation.TypeRightSize,
		Title: "Right-size VM: VM-1", Description: "d", EstimatedSavings: 120,
		Priority: recommendation.PriorityHigh, Status: recommendation.StatusImplemented,
	})
	if err := f.repos.recommendations.ReplaceForAccount(ctx, accountID, recs); err != nil {
		t.Fatalf("ReplaceForAccount() error = %v", err)
	}

	report, err := service.Recommendations(ctx, userID)
	if err != nil {
		t.Fatalf("Recommendations() error = %v", err)
	}
	rows := readCSV(t, report)
	if len(rows) != 3 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[0][4] != "Estimated Savings (USD/mo)" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Right-size VM: VM-1" || rows[1][3] != "IMPLEMENTED" || rows[1][4] != "120.00" {
		t.Errorf("first row = %v, want highest savings first", rows[1])
	}
	if rows[2][5] != "GCP" || rows[2][6] != "Data" {
		t.Errorf("account columns = %v", rows[2])
	}

	deletions := NewDeletionService(f.repos.deletions, f.repos.accounts, f.log).WithClock(testutil.FixedClock(fixedNow))
	if _, err := deletions.Record(ctx, userID, deletion.RecordInput{
		CloudAccountID: accountID, ResourceID: "disk-1", ResourceType: "Disk", ResourceName: "scratch",
		DeletionMethod: deletion.MethodManual, MonthlyCostBefore: floatPtr(7.5), DeletionReason: "unused, detached",
	}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	report, err = service.Deletions(ctx, userID)
	if err != nil {
		t.Fatalf("Deletions() error = %v", err)
	}
	if report.Filename != "deletions.csv" {
		t.Errorf("Filename = %q", report.Filename)
	}
	rows = readCSV(t, report)
	want := []string{"2026-03-15", "scratch", "disk-1", "Disk", "GCP", "Data", "MANUAL", "7.50", "unused, detached"}
	if len(rows) != 2 || fmt.Sprint(rows[1]) != fmt.Sprint(want) {
		t.Errorf("rows = %v", rows)
	}

	// Archive failures never fail the export
	if archiver.Archived() != 2 {
		t.Errorf("archive attempts = %d, want 2", archiver.Archived())
	}
}
