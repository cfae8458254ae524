package client

import (
	"context"
	"net/url"
)

// RecommendationService handles recommendation-related API calls
type RecommendationService struct {
	client *Client
}

// GenerateResult reports how many recommendations were created
type GenerateResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// List retrieves pending recommendations, optionally for one account
func (s *RecommendationService) List(ctx context.Context, accountID string) ([]Recommendation, error) {
	var recs []Recommendation
	if _, err := s.client.doRequest(ctx, "GET", "/api/recommendations"+accountQuery(accountID), nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Generate replaces the account's recommendations with a fresh rule run
func (s *RecommendationService) Generate(ctx context.Context, accountID string) (*GenerateResult, error) {
	var result GenerateResult
	req := map[string]string{"cloudAccountId": accountID}
	if _, err := s.client.doRequest(ctx, "POST", "/api/recommendations/generate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Savings returns potential and realised savings
func (s *RecommendationService) Savings(ctx context.Context) (*Savings, error) {
	var savings Savings
	if _, err := s.client.doRequest(ctx, "GET", "/api/recommendations/savings", nil, &savings); err != nil {
		return nil, err
	}
	return &savings, nil
}

// Implement marks a recommendation implemented
func (s *RecommendationService) Implement(ctx context.Context, id string) (*Recommendation, error) {
	return s.transition(ctx, id, "implement")
}

// Dismiss marks a recommendation dismissed
func (s *RecommendationService) Dismiss(ctx context.Context, id string) (*Recommendation, error) {
	return s.transition(ctx, id, "dismiss")
}

func (s *RecommendationService) transition(ctx context.Context, id, action string) (*Recommendation, error) {
	var rec Recommendation
	path := "/api/recommendations/" + url.PathEscape(id) + "/" + action
	if _, err := s.client.doRequest(ctx, "POST", path, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
