// Package providers pulls daily billing data from the cloud providers'
// cost APIs for non-demo accounts.
package providers

import (
	"fmt"
	"strings"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
)

// Credential keys accepted in a cloud account's credentials map
const (
	KeyAWSAccessKeyID     = account.CredAWSAccessKeyID
	KeyAWSSecretAccessKey = account.CredAWSSecretAccessKey
	KeyAWSRegion          = account.CredAWSRegion

	KeyAzureTenantID       = account.CredAzureTenantID
	KeyAzureClientID       = account.CredAzureClientID
	KeyAzureClientSecret   = account.CredAzureClientSecret
	KeyAzureSubscriptionID = account.CredAzureSubscriptionID

	KeyGCPProjectID          = account.CredGCPProjectID
	KeyGCPServiceAccountJSON = account.CredGCPServiceAccountJSON
	KeyGCPBillingDataset     = account.CredGCPBillingDataset
)

const dateLayout = "2006-01-02"

// NewFetchers returns a billing client for every supported provider
func NewFetchers() map[string]cost.Fetcher {
	return map[string]cost.Fetcher{
		account.ProviderAWS:   NewAWSCostFetcher(),
		account.ProviderAzure: NewAzureCostFetcher(),
		account.ProviderGCP:   NewGCPCostFetcher(),
	}
}

// require returns the values for keys, failing on the first missing one
func require(creds map[string]string, keys ...string) ([]string, error) {
	out := make([]string, len(keys))
	for i, k := range keys {
		v := strings.TrimSpace(creds[k])
		if v == "" {
			return nil, fmt.Errorf("missing credential %q", k)
		}
		out[i] = v
	}
	return out, nil
}

func nonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func ptr[T any](v T) *T {
	return &v
}
