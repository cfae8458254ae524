package client

import (
	"context"
	"net/url"
)

// AccountService handles cloud account API calls
type AccountService struct {
	client *Client
}

// CreateAccountRequest connects a cloud account. IsDemo defaults to true
// server-side; real accounts must send Credentials.
type CreateAccountRequest struct {
	Provider    string            `json:"provider"`
	AccountName string            `json:"accountName"`
	AccountID   string            `json:"accountId"`
	IsDemo      *bool             `json:"isDemo,omitempty"`
	Credentials map[string]string `json:"credentials,omitempty"`
}

// List retrieves the caller's cloud accounts
func (s *AccountService) List(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if _, err := s.client.doRequest(ctx, "GET", "/api/cloud-accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Create connects a cloud account
func (s *AccountService) Create(ctx context.Context, req CreateAccountRequest) (*Account, error) {
	var acct Account
	if _, err := s.client.doRequest(ctx, "POST", "/api/cloud-accounts", req, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// Delete removes a cloud account and its data
func (s *AccountService) Delete(ctx context.Context, id string) error {
	_, err := s.client.doRequest(ctx, "DELETE", "/api/cloud-accounts/"+url.PathEscape(id), nil, nil)
	return err
}

// Sync refreshes an account's cost data
func (s *AccountService) Sync(ctx context.Context, id string) (*Account, error) {
	var acct Account
	if _, err := s.client.doRequest(ctx, "POST", "/api/cloud-accounts/"+url.PathEscape(id)+"/sync", nil, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}
