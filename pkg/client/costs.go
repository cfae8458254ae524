package client

import (
	"context"
	"net/url"
	"strconv"
)

// CostService handles cost analytics API calls
type CostService struct {
	client *Client
}

func accountQuery(accountID string) string {
	if accountID == "" {
		return ""
	}
	return "?" + url.Values{"cloudAccountId": {accountID}}.Encode()
}

// Summary returns the cost headline. An empty accountID covers all accounts.
func (s *CostService) Summary(ctx context.Context, accountID string) (*CostSummary, error) {
	var summary CostSummary
	if _, err := s.client.doRequest(ctx, "GET", "/api/costs/summary"+accountQuery(accountID), nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Trends returns daily totals for the last days days
func (s *CostService) Trends(ctx context.Context, accountID string, days int) ([]DailyCost, error) {
	query := url.Values{}
	if days > 0 {
		query.Set("days", strconv.Itoa(days))
	}
	if accountID != "" {
		query.Set("cloudAccountId", accountID)
	}
	path := "/api/costs/trends"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var points []DailyCost
	if _, err := s.client.doRequest(ctx, "GET", path, nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// Breakdown splits recent spend by service
func (s *CostService) Breakdown(ctx context.Context, accountID string) ([]ServiceCost, error) {
	var rows []ServiceCost
	if _, err := s.client.doRequest(ctx, "GET", "/api/costs/breakdown"+accountQuery(accountID), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Providers splits recent spend by provider
func (s *CostService) Providers(ctx context.Context) ([]ProviderCost, error) {
	var rows []ProviderCost
	if _, err := s.client.doRequest(ctx, "GET", "/api/costs/providers", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
