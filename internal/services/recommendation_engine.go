package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pratik-mahalle/cloudcost/internal/domain/recommendation"
	"github.com/pratik-mahalle/cloudcost/internal/mockdata"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/money"
)

// Rule thresholds
const (
	idleCPUThreshold       = 5.0
	rightSizeCPUThreshold  = 20.0
	reservedCPUThreshold   = 70.0
	reservedCostThreshold  = 200.0
	idleHighCostThreshold  = 200.0
	rightSizeHighThreshold = 300.0
	rightSizeSavingsRatio  = 0.4
	reservedSavingsRatio   = 0.6
	storageCleanupSavings  = 85.50
)

// RecommendationEngine turns a resource inventory into recommendations
type RecommendationEngine struct{}

// NewRecommendationEngine creates a new recommendation engine
func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{}
}

// Evaluate applies every rule to each resource and appends the storage
// cleanup suggestion. provider is used in step text.
func (e *RecommendationEngine) Evaluate(accountID, provider string, resources []mockdata.Resource) []*recommendation.Recommendation {
	var recs []*recommendation.Recommendation

	for _, r := range resources {
		if rec := e.idleRule(provider, r); rec != nil {
			recs = append(recs, rec)
		}
		if rec := e.rightSizeRule(r); rec != nil {
			recs = append(recs, rec)
		}
		if rec := e.reservedRule(r); rec != nil {
			recs = append(recs, rec)
		}
	}

	recs = append(recs, e.storageCleanup(accountID))

	for _, rec := range recs {
		rec.CloudAccountID = accountID
		rec.Status = recommendation.StatusPending
		rec.EstimatedSavings = money.Round2(rec.EstimatedSavings)
	}
	return recs
}

func formatCPU(cpu float64) string {
	return strconv.FormatFloat(cpu, 'f', -1, 64)
}

func (e *RecommendationEngine) idleRule(provider string, r mockdata.Resource) *recommendation.Recommendation {
	if r.CPUUtilization >= idleCPUThreshold || r.Status != mockdata.StatusIdle {
		return nil
	}
	priority := recommendation.PriorityMedium
	if r.MonthlyCost > idleHighCostThreshold {
		priority = recommendation.PriorityHigh
	}
	return &recommendation.Recommendation{
		ResourceID: r.ResourceID,
		Type:       recommendation.TypeDeleteIdle,
		Title:      fmt.Sprintf("Idle %s detected: %s", r.ResourceType, r.ResourceName),
		Description: fmt.Sprintf("This %s has been running with %s%% CPU utilization for the past 30 days. "+
			"Consider terminating it to save costs.", r.ResourceType, formatCPU(r.CPUUtilization)),
		EstimatedSavings: r.MonthlyCost,
		Priority:         priority,
		ImplementationSteps: []string{
			fmt.Sprintf("Log into your %s console", provider),
			fmt.Sprintf("Navigate to %s section", r.ResourceType),
			fmt.Sprintf("Find resource: %s (%s)", r.ResourceName, r.ResourceID),
			"Verify no critical workloads are running",
			"Terminate/delete the resource",
			"Monitor for 24 hours to confirm no impact",
		},
	}
}

func (e *RecommendationEngine) rightSizeRule(r mockdata.Resource) *recommendation.Recommendation {
	if r.CPUUtilization <= idleCPUThreshold || r.CPUUtilization >= rightSizeCPUThreshold {
		return nil
	}
	priority := recommendation.PriorityMedium
	if r.MonthlyCost > rightSizeHighThreshold {
		priority = recommendation.PriorityHigh
	}
	return &recommendation.Recommendation{
		ResourceID: r.ResourceID,
		Type:       recommendation.TypeRightSize,
		Title:      fmt.Sprintf("Right-size %s: %s", r.ResourceType, r.ResourceName),
		Description: fmt.Sprintf("This %s is running at only %s%% CPU. "+
			"Downsizing to a smaller instance type could save up to 40%% on costs.", r.ResourceType, formatCPU(r.CPUUtilization)),
		EstimatedSavings: r.MonthlyCost * rightSizeSavingsRatio,
		Priority:         priority,
		ImplementationSteps: []string{
			"Review current instance type and usage metrics",
			"Identify the next smaller instance type",
			"Schedule a maintenance window",
			"Stop the instance",
			"Change instance type to smaller size",
			"Start the instance and monitor performance",
		},
	}
}

func (e *RecommendationEngine) reservedRule(r mockdata.Resource) *recommendation.Recommendation {
	if r.CPUUtilization <= reservedCPUThreshold || r.MonthlyCost <= reservedCostThreshold {
		return nil
	}
	return &recommendation.Recommendation{
		ResourceID: r.ResourceID,
		Type:       recommendation.TypeReservedInstance,
		Title:      fmt.Sprintf("Use Reserved Instance for: %s", r.ResourceName),
		Description: fmt.Sprintf("This %s has consistent high usage (%s%% CPU). "+
			"Switching to a reserved instance could save up to 60%% compared to on-demand pricing.", r.ResourceType, formatCPU(r.CPUUtilization)),
		EstimatedSavings: r.MonthlyCost * reservedSavingsRatio,
		Priority:         recommendation.PriorityHigh,
		ImplementationSteps: []string{
			"Review usage patterns over the last 3 months",
			"Choose between 1-year or 3-year reservation",
			"Purchase reserved instance in the console",
			"Apply reservation to existing instance",
			"Track savings in billing dashboard",
		},
	}
}

func (e *RecommendationEngine) storageCleanup(accountID string) *recommendation.Recommendation {
	return &recommendation.Recommendation{
		ResourceID: "storage-opt-" + accountID,
		Type:       recommendation.TypeStorageOptimization,
		Title:      "Old snapshots detected - Clean up storage",
		Description: strings.Join([]string{
			"Found 12 EBS snapshots older than 90 days totaling 2.4TB.",
			"Deleting unused snapshots can significantly reduce storage costs.",
		}, " "),
		EstimatedSavings: storageCleanupSavings,
		Priority:         recommendation.PriorityLow,
		ImplementationSteps: []string{
			"Navigate to EC2 > Snapshots in AWS Console",
			"Filter snapshots older than 90 days",
			"Verify snapshots are not needed for compliance",
			"Select and delete old snapshots",
			"Set up automated snapshot lifecycle policies",
		},
	}
}
