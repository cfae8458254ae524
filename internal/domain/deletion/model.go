package deletion

import (
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
)

// Deletion records a resource removed by a user or automation
type Deletion struct {
	ID                string       `json:"id"`
	CloudAccountID    string       `json:"cloudAccountId"`
	ResourceID        string       `json:"resourceId"`
	ResourceType      string       `json:"resourceType"`
	ResourceName      string       `json:"resourceName,omitempty"`
	DeletedAt         time.Time    `json:"deletedAt"`
	DeletedBy         string       `json:"deletedBy"`
	DeletionMethod    string       `json:"deletionMethod"`
	MonthlyCostBefore *float64     `json:"monthlyCostBefore,omitempty"`
	EstimatedSavings  *float64     `json:"estimatedSavings,omitempty"`
	DeletionReason    string       `json:"deletionReason,omitempty"`
	RecommendationID  *string      `json:"recommendationId,omitempty"`
	ProtectionStatus  string       `json:"protectionStatus"`
	CloudAccount      *account.Ref `json:"cloudAccount,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
}

// Method constants
const (
	MethodManual         = "MANUAL"
	MethodAutomated      = "AUTOMATED"
	MethodRecommendation = "RECOMMENDATION"
)

// ProtectionNone is the only protection status currently assigned
const ProtectionNone = "NONE"

// DefaultDeletedBy is used when the caller does not name an actor
const DefaultDeletedBy = "user"

// Filter narrows List. Zero values are ignored.
type Filter struct {
	CloudAccountID string
	ResourceType   string
	StartDate      *time.Time
	EndDate        *time.Time
}

// RecordInput carries the fields accepted when recording a deletion
type RecordInput struct {
	CloudAccountID    string
	ResourceID        string
	ResourceType      string
	ResourceName      string
	DeletedBy         string
	DeletionMethod    string
	MonthlyCostBefore *float64
	DeletionReason    string
	RecommendationID  *string
}

// TypeStat groups deletions by resource type
type TypeStat struct {
	ResourceType string  `json:"resourceType"`
	Count        int     `json:"count"`
	Savings      float64 `json:"savings"`
}

// Analytics is the Nuke tracker headline
type Analytics struct {
	TotalDeletions  int        `json:"totalDeletions"`
	TotalSavings    float64    `json:"totalSavings"`
	RecentDeletions int        `json:"recentDeletions"`
	ByResourceType  []TypeStat `json:"byResourceType"`
}
