package cost

import "time"

// Record is one day of spend for a service in a region
type Record struct {
	ID             string            `json:"id"`
	CloudAccountID string            `json:"cloudAccountId"`
	Date           time.Time         `json:"date"`
	Service        string            `json:"service"`
	Region         string            `json:"region"`
	CostAmount     float64           `json:"costAmount"`
	Currency       string            `json:"currency"`
	Tags           map[string]string `json:"tags,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// DetailedRecord is a Record joined with its account, used by CSV export
type DetailedRecord struct {
	Record
	Provider    string
	AccountName string
}

// Filter scopes cost queries to a user and optionally one of their accounts
type Filter struct {
	UserID         string
	CloudAccountID string
}

// Summary is the dashboard headline
type Summary struct {
	TotalCost         float64 `json:"totalCost"`
	MTDCost           float64 `json:"mtdCost"`
	PreviousMonthCost float64 `json:"previousMonthCost"`
	ForecastedCost    float64 `json:"forecastedCost"`
	Currency          string  `json:"currency"`
	PercentageChange  float64 `json:"percentageChange"`
}

// DailyCost is one point of the trend series
type DailyCost struct {
	Date string  `json:"date"` // YYYY-MM-DD
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

// Window is the default look-back for totals and breakdowns
const Window = 30

// MaxTrendDays bounds the trends query
const MaxTrendDays = 365

// InsertBatchSize is the number of rows written per insert statement
const InsertBatchSize = 50
