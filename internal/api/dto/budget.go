package dto

import "github.com/pratik-mahalle/cloudcost/internal/domain/budget"

// CreateBudgetRequest creates a budget
type CreateBudgetRequest struct {
	Name           string   `json:"name" validate:"required,notblank,max=255"`
	Amount         float64  `json:"amount" validate:"required,gt=0"`
	Period         string   `json:"period" validate:"required,oneof=MONTHLY QUARTERLY YEARLY"`
	CloudAccountID *string  `json:"cloudAccountId,omitempty"`
	AlertThreshold *float64 `json:"alertThreshold,omitempty" validate:"omitempty,gt=0,lte=100"`
}

// ToInput converts the request to service input
func (r CreateBudgetRequest) ToInput() budget.CreateInput {
	return budget.CreateInput{
		Name:           r.Name,
		Amount:         r.Amount,
		Period:         r.Period,
		CloudAccountID: r.CloudAccountID,
		AlertThreshold: r.AlertThreshold,
	}
}

// UpdateBudgetRequest updates the provided budget fields
type UpdateBudgetRequest struct {
	Name           *string  `json:"name,omitempty" validate:"omitempty,notblank,max=255"`
	Amount         *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	AlertThreshold *float64 `json:"alertThreshold,omitempty" validate:"omitempty,gt=0,lte=100"`
}

// ToInput converts the request to service input
func (r UpdateBudgetRequest) ToInput() budget.UpdateInput {
	return budget.UpdateInput{
		Name:           r.Name,
		Amount:         r.Amount,
		AlertThreshold: r.AlertThreshold,
	}
}
