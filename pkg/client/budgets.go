package client

import (
	"context"
	"net/url"
)

// BudgetService handles budget API calls
type BudgetService struct {
	client *Client
}

// CreateBudgetRequest creates a budget
type CreateBudgetRequest struct {
	Name           string   `json:"name"`
	Amount         float64  `json:"amount"`
	Period         string   `json:"period"` // MONTHLY, QUARTERLY, YEARLY
	CloudAccountID *string  `json:"cloudAccountId,omitempty"`
	AlertThreshold *float64 `json:"alertThreshold,omitempty"`
}

// UpdateBudgetRequest updates the provided budget fields
type UpdateBudgetRequest struct {
	Name           *string  `json:"name,omitempty"`
	Amount         *float64 `json:"amount,omitempty"`
	AlertThreshold *float64 `json:"alertThreshold,omitempty"`
}

// List retrieves budgets with current spend
func (s *BudgetService) List(ctx context.Context) ([]Budget, error) {
	var budgets []Budget
	if _, err := s.client.doRequest(ctx, "GET", "/api/budgets", nil, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

// Create creates a budget
func (s *BudgetService) Create(ctx context.Context, req CreateBudgetRequest) (*Budget, error) {
	var b Budget
	if _, err := s.client.doRequest(ctx, "POST", "/api/budgets", req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Update changes the provided budget fields
func (s *BudgetService) Update(ctx context.Context, id string, req UpdateBudgetRequest) (*Budget, error) {
	var b Budget
	if _, err := s.client.doRequest(ctx, "PUT", "/api/budgets/"+url.PathEscape(id), req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Delete removes a budget
func (s *BudgetService) Delete(ctx context.Context, id string) error {
	_, err := s.client.doRequest(ctx, "DELETE", "/api/budgets/"+url.PathEscape(id), nil, nil)
	return err
}
