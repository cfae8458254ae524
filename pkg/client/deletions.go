package client

import (
	"context"
	"net/url"
)

// DeletionService handles deletion tracking API calls
type DeletionService struct {
	client *Client
}

// DeletionListOptions narrows List. Dates are YYYY-MM-DD or RFC 3339.
type DeletionListOptions struct {
	CloudAccountID string
	ResourceType   string
	StartDate      string
	EndDate        string
}

// RecordDeletionRequest records a deleted resource
type RecordDeletionRequest struct {
	CloudAccountID    string   `json:"cloudAccountId"`
	ResourceID        string   `json:"resourceId"`
	ResourceType      string   `json:"resourceType"`
	DeletionMethod    string   `json:"deletionMethod"` // MANUAL, AUTOMATED, RECOMMENDATION
	ResourceName      string   `json:"resourceName,omitempty"`
	DeletedBy         string   `json:"deletedBy,omitempty"`
	MonthlyCostBefore *float64 `json:"monthlyCostBefore,omitempty"`
	DeletionReason    string   `json:"deletionReason,omitempty"`
	RecommendationID  *string  `json:"recommendationId,omitempty"`
}

// List retrieves recorded deletions, newest first
func (s *DeletionService) List(ctx context.Context, opts *DeletionListOptions) ([]Deletion, error) {
	query := url.Values{}
	if opts != nil {
		if opts.CloudAccountID != "" {
			query.Set("cloudAccountId", opts.CloudAccountID)
		}
		if opts.ResourceType != "" {
			query.Set("resourceType", opts.ResourceType)
		}
		if opts.StartDate != "" {
			query.Set("startDate", opts.StartDate)
		}
		if opts.EndDate != "" {
			query.Set("endDate", opts.EndDate)
		}
	}

	path := "/api/deletions"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var deletions []Deletion
	if _, err := s.client.doRequest(ctx, "GET", path, nil, &deletions); err != nil {
		return nil, err
	}
	return deletions, nil
}

// Record stores a deleted resource
func (s *DeletionService) Record(ctx context.Context, req RecordDeletionRequest) (*Deletion, error) {
	var d Deletion
	if _, err := s.client.doRequest(ctx, "POST", "/api/deletions", req, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Analytics returns deletion totals
func (s *DeletionService) Analytics(ctx context.Context) (*DeletionAnalytics, error) {
	var a DeletionAnalytics
	if _, err := s.client.doRequest(ctx, "GET", "/api/deletions/analytics", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
