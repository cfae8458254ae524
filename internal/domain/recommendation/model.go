package recommendation

import (
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
)

// Recommendation is a savings suggestion for one resource
type Recommendation struct {
	ID                  string       `json:"id"`
	CloudAccountID      string       `json:"cloudAccountId"`
	ResourceID          string       `json:"resourceId"`
	Type                string       `json:"type"`
	Title               string       `json:"title"`
	Description         string       `json:"description"`
	EstimatedSavings    float64      `json:"estimatedSavings"`
	Priority            string       `json:"priority"`
	Status              string       `json:"status"`
	ImplementationSteps []string     `json:"implementationSteps"`
	CloudAccount        *account.Ref `json:"cloudAccount,omitempty"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// Type constants
const (
	TypeDeleteIdle          = "DELETE_IDLE"
	TypeRightSize           = "RIGHT_SIZE"
	TypeReservedInstance    = "RESERVED_INSTANCE"
	TypeStorageOptimization = "STORAGE_OPTIMIZATION"
)

// Priority constants, most urgent first
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// Status constants
const (
	StatusPending     = "PENDING"
	StatusImplemented = "IMPLEMENTED"
	StatusDismissed   = "DISMISSED"
)

// Savings aggregates pending and implemented recommendations
type Savings struct {
	PotentialSavings float64 `json:"potentialSavings"`
	ActualSavings    float64 `json:"actualSavings"`
	PendingCount     int     `json:"pendingCount"`
	ImplementedCount int     `json:"implementedCount"`
}
