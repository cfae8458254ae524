package mockdata

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC)
}

func TestCostData(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		services int
	}{
		{"aws", account.ProviderAWS, 6},
		{"azure", account.ProviderAzure, 5},
		{"gcp", account.ProviderGCP, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewSeeded(42).WithClock(fixedClock)
			records := g.CostData(tt.provider)

			want := Days * tt.services * 3
			if len(records) != want {
				t.Fatalf("len(records) = %d, want %d", len(records), want)
			}

			first := records[0].Date
			last := records[len(records)-1].Date
			if !first.Equal(time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)) {
				t.Errorf("first date = %v", first)
			}
			if !last.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)) {
				t.Errorf("last date = %v", last)
			}

			for _, r := range records {
				base := BaseCost(r.Service)
				if r.CostAmount < base*0.85-0.01 || r.CostAmount > base*1.15+0.01 {
					t.Fatalf("%s cost %v outside ±15%% of %v", r.Service, r.CostAmount, base)
				}
				if r.Currency != "USD" {
					t.Fatalf("currency = %q", r.Currency)
				}
				if env := r.Tags["environment"]; env != "production" && env != "development" {
					t.Fatalf("environment tag = %q", env)
				}
				if r.Tags["team"] == "" {
					t.Fatal("missing team tag")
				}
			}
		})
	}
}

func TestCostData_UnknownProvider(t *testing.T) {
	if got := NewSeeded(1).CostData("ORACLE"); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestCostData_Deterministic(t *testing.T) {
	a := NewSeeded(7).WithClock(fixedClock).CostData(account.ProviderGCP)
	b := NewSeeded(7).WithClock(fixedClock).CostData(account.ProviderGCP)
	for i := range a {
		if a[i].CostAmount != b[i].CostAmount || a[i].Tags["team"] != b[i].Tags["team"] {
			t.Fatalf("row %d differs between identically seeded generators", i)
		}
	}
}

func TestResources(t *testing.T) {
	g := NewSeeded(99).WithClock(fixedClock)
	res := g.Resources(account.ProviderAWS)

	if len(res) != ResourceCount {
		t.Fatalf("len = %d, want %d", len(res), ResourceCount)
	}

	allowed := map[string]bool{"EC2": true, "RDS": true, "EBS": true, "S3": true}
	for i, r := range res {
		if !allowed[r.ResourceType] {
			t.Errorf("unexpected type %q", r.ResourceType)
		}
		wantPrefix := "aws-" + strings.ToLower(r.ResourceType) + "-"
		if !strings.HasPrefix(r.ResourceID, wantPrefix) {
			t.Errorf("ResourceID = %q, want prefix %q", r.ResourceID, wantPrefix)
		}
		if !strings.HasSuffix(r.ResourceName, "-"+strconv.Itoa(i+1)) {
			t.Errorf("ResourceName = %q", r.ResourceName)
		}
		if r.Region != "us-east-1" {
			t.Errorf("Region = %q", r.Region)
		}
		if r.MonthlyCost < 0 || r.MonthlyCost > 500 {
			t.Errorf("MonthlyCost = %v", r.MonthlyCost)
		}
		if r.CPUUtilization < 0 || r.CPUUtilization > 100 {
			t.Errorf("CPUUtilization = %v", r.CPUUtilization)
		}
		if r.Status != StatusIdle && r.Status != StatusRunning {
			t.Errorf("Status = %q", r.Status)
		}
		if age := fixedClock().Sub(r.CreatedAt); age < 0 || age > 90*24*time.Hour {
			t.Errorf("CreatedAt age = %v", age)
		}
	}
}

func TestBaseCost(t *testing.T) {
	tests := []struct {
		service string
		want    float64
	}{
		{"EC2", 450},
		{"Virtual Machines", 480},
		{"Cloud CDN", 115},
		{"Unknown", 100},
	}
	for _, tt := range tests {
		if got := BaseCost(tt.service); got != tt.want {
			t.Errorf("BaseCost(%q) = %v, want %v", tt.service, got, tt.want)
		}
	}
}
