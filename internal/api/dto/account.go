package dto

import "github.com/pratik-mahalle/cloudcost/internal/domain/account"

// CreateAccountRequest connects a cloud account
type CreateAccountRequest struct {
	Provider    string            `json:"provider" validate:"required,oneof=AWS AZURE GCP"`
	AccountName string            `json:"accountName" validate:"required,notblank,max=255"`
	AccountID   string            `json:"accountId" validate:"required,notblank,max=255"`
	IsDemo      *bool             `json:"isDemo,omitempty"`
	Credentials map[string]string `json:"credentials,omitempty"`
}

// ToInput converts the request to service input. isDemo defaults to true.
func (r CreateAccountRequest) ToInput() account.CreateInput {
	isDemo := true
	if r.IsDemo != nil {
		isDemo = *r.IsDemo
	}
	return account.CreateInput{
		Provider:    r.Provider,
		AccountName: r.AccountName,
		AccountID:   r.AccountID,
		IsDemo:      isDemo,
		Credentials: r.Credentials,
	}
}
