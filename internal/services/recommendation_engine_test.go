package services

import (
	"testing"

	"github.com/pratik-mahalle/cloudcost/internal/domain/recommendation"
	"github.com/pratik-mahalle/cloudcost/internal/mockdata"
)

func TestRecommendationEngine_Rules(t *testing.T) {
	engine := NewRecommendationEngine()

	tests := []struct {
		name         string
		resource     mockdata.Resource
		wantType     string
		wantPriority string
		wantSavings  float64
		wantTitle    string
	}{
		{
			name:         "idle and expensive",
			resource:     mockdata.Resource{ResourceID: "i-1", ResourceType: "EC2", ResourceName: "EC2-1", MonthlyCost: 250, CPUUtilization: 2.5, Status: mockdata.StatusIdle},
			wantType:     recommendation.TypeDeleteIdle,
			wantPriority: recommendation.PriorityHigh,
			wantSavings:  250,
			wantTitle:    "Idle EC2 detected: EC2-1",
		},
		{
			name:         "idle and cheap",
			resource:     mockdata.Resource{ResourceID: "i-2", ResourceType: "EBS", ResourceName: "EBS-2", MonthlyCost: 40, CPUUtilization: 1, Status: mockdata.StatusIdle},
			wantType:     recommendation.TypeDeleteIdle,
			wantPriority: recommendation.PriorityMedium,
			wantSavings:  40,
		},
		{
			name:         "underused expensive",
			resource:     mockdata.Resource{ResourceID: "i-3", ResourceType: "RDS", ResourceName: "RDS-3", MonthlyCost: 400, CPUUtilization: 12, Status: mockdata.StatusRunning},
			wantType:     recommendation.TypeRightSize,
			wantPriority: recommendation.PriorityHigh,
			wantSavings:  160,
			wantTitle:    "Right-size RDS: RDS-3",
		},
		{
			name:         "underused cheap",
			resource:     mockdata.Resource{ResourceID: "i-4", ResourceType: "VM", ResourceName: "VM-4", MonthlyCost: 123.45, CPUUtilization: 19.9, Status: mockdata.StatusRunning},
			wantType:     recommendation.TypeRightSize,
			wantPriority: recommendation.PriorityMedium,
			wantSavings:  49.38,
		},
		{
			name:         "steady high usage",
			resource:     mockdata.Resource{ResourceID: "i-5", ResourceType: "EC2", ResourceName: "EC2-5", MonthlyCost: 300, CPUUtilization: 85, Status: mockdata.StatusRunning},
			wantType:     recommendation.TypeReservedInstance,
			wantPriority: recommendation.PriorityHigh,
			wantSavings:  180,
			wantTitle:    "Use Reserved Instance for: EC2-5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := engine.Evaluate("acct-1", "AWS", []mockdata.Resource{tt.resource})
			if len(recs) != 2 {
				t.Fatalf("Evaluate() returned %d recommendations, want rule + storage cleanup", len(recs))
			}
			rec := recs[0]
			if rec.Type != tt.wantType || rec.Priority != tt.wantPriority {
				t.Errorf("got %s/%s, want %s/%s", rec.Type, rec.Priority, tt.wantType, tt.wantPriority)
			}
			if rec.EstimatedSavings != tt.wantSavings {
				t.Errorf("EstimatedSavings = %v, want %v", rec.EstimatedSavings, tt.wantSavings)
			}
			if tt.wantTitle != "" && rec.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", rec.Title, tt.wantTitle)
			}
			if rec.Status != recommendation.StatusPending || rec.CloudAccountID != "acct-1" {
				t.Errorf("rec = %+v", rec)
			}
			if len(rec.ImplementationSteps) == 0 {
				t.Error("ImplementationSteps is empty")
			}
		})
	}
}

func TestRecommendationEngine_NoRuleMatches(t *testing.T) {
	engine := NewRecommendationEngine()

	quiet := []mockdata.Resource{
		// Busy but not idle-flagged, between right-size and reserved bands
		{ResourceID: "a", ResourceType: "EC2", MonthlyCost: 500, CPUUtilization: 50, Status: mockdata.StatusRunning},
		// High usage but too cheap to reserve
		{ResourceID: "b", ResourceType: "EC2", MonthlyCost: 150, CPUUtilization: 90, Status: mockdata.StatusRunning},
		// Low CPU without the idle status and exactly on the threshold
		{ResourceID: "c", ResourceType: "EC2", MonthlyCost: 100, CPUUtilization: 5, Status: mockdata.StatusRunning},
	}

	recs := engine.Evaluate("acct-9", "GCP", quiet)
	if len(recs) != 1 {
		t.Fatalf("Evaluate() = %d recommendations, want only storage cleanup", len(recs))
	}
	cleanup := recs[0]
	if cleanup.Type != recommendation.TypeStorageOptimization || cleanup.ResourceID != "storage-opt-acct-9" {
		t.Errorf("cleanup = %+v", cleanup)
	}
	if cleanup.EstimatedSavings != 85.5 || cleanup.Priority != recommendation.PriorityLow {
		t.Errorf("cleanup savings/priority = %v/%s", cleanup.EstimatedSavings, cleanup.Priority)
	}
}

func TestRecommendationEngine_IdleStepsNameProvider(t *testing.T) {
	engine := NewRecommendationEngine()
	recs := engine.Evaluate("acct", "AZURE", []mockdata.Resource{
		{ResourceID: "vm-1", ResourceType: "VM", ResourceName: "VM-1", MonthlyCost: 10, CPUUtilization: 0.5, Status: mockdata.StatusIdle},
	})
	if got := recs[0].ImplementationSteps[0]; got != "Log into your AZURE console" {
		t.Errorf("first step = %q", got)
	}
	want := "This VM has been running with 0.5% CPU utilization for the past 30 days. Consider terminating it to save costs."
	if recs[0].Description != want {
		t.Errorf("Description = %q", recs[0].Description)
	}
}
