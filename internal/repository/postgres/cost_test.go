package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
	"github.com/pratik-mahalle/cloudcost/internal/testutil"
)

func TestCostRepository_ReplaceForAccount(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCostRepository(db)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "owner@example.com")
	accountID := testutil.SeedAccount(t, db, owner, "AWS", "Prod")

	day := time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)
	var records []*cost.Record
	for i := 0; i < 120; i++ {
		records = append(records, &cost.Record{
			Date: day, Service: "EC2", Region: "us-east-1", CostAmount: 1,
			Tags: map[string]string{"team": "DevOps"},
		})
	}

	if err := repo.ReplaceForAccount(ctx, accountID, records); err != nil {
		t.Fatalf("ReplaceForAccount() error = %v", err)
	}
	if err := repo.ReplaceForAccount(ctx, accountID, records[:3]); err != nil {
		t.Fatalf("second ReplaceForAccount() error = %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM cost_data`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("rows = %d, want 3", n)
	}
}

func TestCostRepository_Aggregates(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCostRepository(db)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "owner@example.com")
	other := testutil.SeedUser(t, db, "other@example.com")
	aws := testutil.SeedAccount(t, db, owner, "AWS", "Prod")
	gcp := testutil.SeedAccount(t, db, owner, "GCP", "Data")
	foreign := testutil.SeedAccount(t, db, other, "AWS", "Theirs")

	d1 := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	testutil.SeedCost(t, db, aws, d1, "EC2", "us-east-1", 10)
	testutil.SeedCost(t, db, aws, d1, "S3", "us-east-1", 5)
	testutil.SeedCost(t, db, aws, d2, "EC2", "us-east-1", 20)
	testutil.SeedCost(t, db, gcp, d2, "Cloud SQL", "us-central1", 7)
	testutil.SeedCost(t, db, foreign, d2, "EC2", "us-east-1", 1000)

	from, to := d1, d2.AddDate(0, 0, 1)

	sum, err := repo.Sum(ctx, cost.Filter{UserID: owner}, from, to)
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	if sum != 42 {
		t.Errorf("Sum() = %v, want 42", sum)
	}

	sum, _ = repo.Sum(ctx, cost.Filter{UserID: owner, CloudAccountID: gcp}, from, to)
	if sum != 7 {
		t.Errorf("Sum(gcp) = %v, want 7", sum)
	}

	sum, _ = repo.Sum(ctx, cost.Filter{UserID: owner, CloudAccountID: foreign}, from, to)
	if sum != 0 {
		t.Errorf("Sum(foreign) = %v, want 0", sum)
	}

	sum, _ = repo.Sum(ctx, cost.Filter{UserID: owner}, d2, to)
	if sum != 27 {
		t.Errorf("Sum(d2 only) = %v, want 27", sum)
	}

	daily, err := repo.DailyTotals(ctx, cost.Filter{UserID: owner}, from, to)
	if err != nil {
		t.Fatalf("DailyTotals() error = %v", err)
	}
	want := []cost.DailyCost{{Date: "2024-03-01", Cost: 15}, {Date: "2024-03-02", Cost: 27}}
	if len(daily) != len(want) {
		t.Fatalf("DailyTotals() = %+v", daily)
	}
	for i := range want {
		if daily[i] != want[i] {
			t.Errorf("DailyTotals()[%d] = %+v, want %+v", i, daily[i], want[i])
		}
	}

	services, err := repo.ByService(ctx, cost.Filter{UserID: owner}, from, to)
	if err != nil {
		t.Fatalf("ByService() error = %v", err)
	}
	if len(services) != 3 || services[0].Service != "EC2" || services[0].Cost != 30 {
		t.Errorf("ByService() = %+v", services)
	}

	providers, err := repo.ByProvider(ctx, owner, from, to)
	if err != nil {
		t.Fatalf("ByProvider() error = %v", err)
	}
	if len(providers) != 2 || providers[0].Provider != "AWS" || providers[0].Cost != 35 || providers[1].Cost != 7 {
		t.Errorf("ByProvider() = %+v", providers)
	}

	detailed, err := repo.ListDetailed(ctx, owner, from)
	if err != nil {
		t.Fatalf("ListDetailed() error = %v", err)
	}
	if len(detailed) != 4 {
		t.Fatalf("ListDetailed() len = %d, want 4", len(detailed))
	}
	if !detailed[0].Date.Equal(d2) || detailed[len(detailed)-1].Date.Format(time.DateOnly) != "2024-03-01" {
		t.Errorf("ListDetailed() not newest first: %v .. %v", detailed[0].Date, detailed[len(detailed)-1].Date)
	}
	if detailed[0].Provider == "" || detailed[0].AccountName == "" {
		t.Errorf("ListDetailed() missing account join: %+v", detailed[0])
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    string
		wantErr bool
	}{
		{"time", time.Date(2024, 1, 2, 13, 0, 0, 0, time.UTC), "2024-01-02", false},
		{"sqlite text", "2024-01-02 00:00:00+00:00", "2024-01-02", false},
		{"bytes", []byte("2024-01-02"), "2024-01-02", false},
		{"short", "2024", "", true},
		{"int", 5, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDay() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.Format(time.DateOnly) != tt.want {
				t.Errorf("parseDay() = %v, want %s", got, tt.want)
			}
		})
	}
}
