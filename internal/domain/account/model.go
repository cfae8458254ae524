package account

import (
	"strings"
	"time"
)

// Account is a cloud billing account connected by a user
type Account struct {
	ID                   string     `json:"id"`
	UserID               string     `json:"userId"`
	Provider             string     `json:"provider"`
	AccountName          string     `json:"accountName"`
	AccountID            string     `json:"accountId"`
	CredentialsEncrypted string     `json:"-"`
	IsDemo               bool       `json:"isDemo"`
	Status               string     `json:"status"`
	LastSyncedAt         *time.Time `json:"lastSyncedAt,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// Ref is the account summary embedded in recommendation and deletion rows
type Ref struct {
	Provider    string `json:"provider"`
	AccountName string `json:"accountName"`
}

// Provider constants
const (
	ProviderAWS   = "AWS"
	ProviderAzure = "AZURE"
	ProviderGCP   = "GCP"
)

// Status constants
const (
	StatusActive = "ACTIVE"
	StatusError  = "ERROR"
)

// DemoCredentials is stored in place of real credentials for demo accounts
const DemoCredentials = "demo-credentials"

// Providers lists the supported providers
var Providers = []string{ProviderAWS, ProviderAzure, ProviderGCP}

// ValidProvider reports whether p is a supported provider
func ValidProvider(p string) bool {
	for _, v := range Providers {
		if v == p {
			return true
		}
	}
	return false
}

// Credential keys accepted in a non-demo account's credentials map
const (
	CredAWSAccessKeyID     = "accessKeyId"
	CredAWSSecretAccessKey = "secretAccessKey"
	CredAWSRegion          = "region"

	CredAzureTenantID       = "tenantId"
	CredAzureClientID       = "clientId"
	CredAzureClientSecret   = "clientSecret"
	CredAzureSubscriptionID = "subscriptionId"

	CredGCPProjectID          = "projectId"
	CredGCPServiceAccountJSON = "serviceAccountJson"
	CredGCPBillingDataset     = "billingDataset"
)

// RequiredCredentials lists the keys each provider's billing API needs
var RequiredCredentials = map[string][]string{
	ProviderAWS:   {CredAWSAccessKeyID, CredAWSSecretAccessKey},
	ProviderAzure: {CredAzureTenantID, CredAzureClientID, CredAzureClientSecret, CredAzureSubscriptionID},
	ProviderGCP:   {CredGCPProjectID, CredGCPBillingDataset},
}

// MissingCredential returns the first required key of provider that is
// absent or blank in creds, or "" when all are present.
func MissingCredential(provider string, creds map[string]string) string {
	for _, k := range RequiredCredentials[provider] {
		if strings.TrimSpace(creds[k]) == "" {
			return k
		}
	}
	return ""
}

// CreateInput carries the fields accepted when connecting an account
type CreateInput struct {
	Provider    string
	AccountName string
	AccountID   string
	IsDemo      bool
	Credentials map[string]string
}
