package client

import "time"

// User represents a registered user
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	SubscriptionTier string    `json:"subscriptionTier"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Account is a connected cloud account
type Account struct {
	ID           string     `json:"id"`
	Provider     string     `json:"provider"`
	AccountName  string     `json:"accountName"`
	AccountID    string     `json:"accountId"`
	IsDemo       bool       `json:"isDemo"`
	Status       string     `json:"status"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// AccountRef names the account a row belongs to
type AccountRef struct {
	Provider    string `json:"provider"`
	AccountName string `json:"accountName"`
}

// CostSummary is the dashboard headline
type CostSummary struct {
	TotalCost         float64 `json:"totalCost"`
	MTDCost           float64 `json:"mtdCost"`
	PreviousMonthCost float64 `json:"previousMonthCost"`
	ForecastedCost    float64 `json:"forecastedCost"`
	Currency          string  `json:"currency"`
	PercentageChange  float64 `json:"percentageChange"`
}

// DailyCost is one point of the trend series
type DailyCost struct {
	Date string  `json:"date"`
	Cost float64 `json:"cost"`
}

// ServiceCost is one row of the service breakdown
type ServiceCost struct {
	Service    string  `json:"service"`
	Cost       float64 `json:"cost"`
	Percentage float64 `json:"percentage"`
}

// ProviderCost is one row of the provider breakdown
type ProviderCost struct {
	Provider   string  `json:"provider"`
	Cost       float64 `json:"cost"`
	Percentage float64 `json:"percentage"`
}

// Recommendation is a savings suggestion
type Recommendation struct {
	ID                  string      `json:"id"`
	CloudAccountID      string      `json:"cloudAccountId"`
	ResourceID          string      `json:"resourceId"`
	Type                string      `json:"type"`
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	EstimatedSavings    float64     `json:"estimatedSavings"`
	Priority            string      `json:"priority"`
	Status              string      `json:"status"`
	ImplementationSteps []string    `json:"implementationSteps"`
	CloudAccount        *AccountRef `json:"cloudAccount,omitempty"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

// Savings aggregates pending and implemented recommendations
type Savings struct {
	PotentialSavings float64 `json:"potentialSavings"`
	ActualSavings    float64 `json:"actualSavings"`
	PendingCount     int     `json:"pendingCount"`
	ImplementedCount int     `json:"implementedCount"`
}

// Deletion records a removed resource
type Deletion struct {
	ID                string      `json:"id"`
	CloudAccountID    string      `json:"cloudAccountId"`
	ResourceID        string      `json:"resourceId"`
	ResourceType      string      `json:"resourceType"`
	ResourceName      string      `json:"resourceName,omitempty"`
	DeletedAt         time.Time   `json:"deletedAt"`
	DeletedBy         string      `json:"deletedBy"`
	DeletionMethod    string      `json:"deletionMethod"`
	MonthlyCostBefore *float64    `json:"monthlyCostBefore,omitempty"`
	EstimatedSavings  *float64    `json:"estimatedSavings,omitempty"`
	DeletionReason    string      `json:"deletionReason,omitempty"`
	RecommendationID  *string     `json:"recommendationId,omitempty"`
	ProtectionStatus  string      `json:"protectionStatus"`
	CloudAccount      *AccountRef `json:"cloudAccount,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
}

// DeletionTypeStat groups deletions by resource type
type DeletionTypeStat struct {
	ResourceType string  `json:"resourceType"`
	Count        int     `json:"count"`
	Savings      float64 `json:"savings"`
}

// DeletionAnalytics is the deletion tracker headline
type DeletionAnalytics struct {
	TotalDeletions  int                `json:"totalDeletions"`
	TotalSavings    float64            `json:"totalSavings"`
	RecentDeletions int                `json:"recentDeletions"`
	ByResourceType  []DeletionTypeStat `json:"byResourceType"`
}

// Budget is a spend limit over a calendar period. The spend fields are only
// populated by List.
type Budget struct {
	ID             string    `json:"id"`
	CloudAccountID *string   `json:"cloudAccountId,omitempty"`
	Name           string    `json:"name"`
	Amount         float64   `json:"amount"`
	Period         string    `json:"period"`
	AlertThreshold float64   `json:"alertThreshold"`
	CurrentSpend   float64   `json:"currentSpend"`
	Percentage     float64   `json:"percentage"`
	IsOverBudget   bool      `json:"isOverBudget"`
	IsNearLimit    bool      `json:"isNearLimit"`
	Remaining      float64   `json:"remaining"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// HealthResponse represents the liveness probe payload
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}
