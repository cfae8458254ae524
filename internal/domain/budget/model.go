package budget

import "time"

// Budget is a spend limit over a calendar period
type Budget struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	CloudAccountID *string   `json:"cloudAccountId,omitempty"`
	Name           string    `json:"name"`
	Amount         float64   `json:"amount"`
	Period         string    `json:"period"`
	AlertThreshold float64   `json:"alertThreshold"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Status is a budget enriched with current spend
type Status struct {
	*Budget
	CurrentSpend float64 `json:"currentSpend"`
	Percentage   float64 `json:"percentage"`
	IsOverBudget bool    `json:"isOverBudget"`
	IsNearLimit  bool    `json:"isNearLimit"`
	Remaining    float64 `json:"remaining"`
}

// Period constants
const (
	PeriodMonthly   = "MONTHLY"
	PeriodQuarterly = "QUARTERLY"
	PeriodYearly    = "YEARLY"
)

// DefaultAlertThreshold is the percentage used when none is given
const DefaultAlertThreshold = 80.0

// PeriodStart returns the UTC start of the period containing now
func PeriodStart(period string, now time.Time) time.Time {
	now = now.UTC()
	switch period {
	case PeriodYearly:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case PeriodQuarterly:
		q := (int(now.Month()) - 1) / 3
		return time.Date(now.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

// CreateInput carries the fields accepted when creating a budget
type CreateInput struct {
	Name           string
	Amount         float64
	Period         string
	CloudAccountID *string
	AlertThreshold *float64
}

// UpdateInput carries optional updates; nil fields are left unchanged
type UpdateInput struct {
	Name           *string
	Amount         *float64
	AlertThreshold *float64
}

// CheckResult summarises a scheduled evaluation of all budgets
type CheckResult struct {
	Checked    int
	OK         int
	NearLimit  int
	OverBudget int
}
