package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
	"github.com/pratik-mahalle/cloudcost/internal/mockdata"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/metrics"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/vault"
)

// Sync modes reported in metrics and logs
const (
	syncModeDemo     = "demo"
	syncModeProvider = "provider"
)

// AccountService implements account.Service
type AccountService struct {
	accounts  account.Repository
	costs     cost.Repository
	generator *mockdata.Generator
	vault     *vault.Vault
	fetchers  map[string]cost.Fetcher
	logger    *logger.Logger
	now       Clock
}

// NewAccountService creates a new cloud account service. fetchers maps a
// provider to its billing client and may be empty.
func NewAccountService(
	accounts account.Repository,
	costs cost.Repository,
	generator *mockdata.Generator,
	v *vault.Vault,
	fetchers map[string]cost.Fetcher,
	log *logger.Logger,
) *AccountService {
	return &AccountService{
		accounts:  accounts,
		costs:     costs,
		generator: generator,
		vault:     v,
		fetchers:  fetchers,
		logger:    log,
		now:       systemClock,
	}
}

// WithClock overrides the service clock
func (s *AccountService) WithClock(c Clock) *AccountService {
	s.now = c
	return s
}

// Create connects an account. Demo accounts get synthetic data at once.
func (s *AccountService) Create(ctx context.Context, userID string, in account.CreateInput) (*account.Account, error) {
	if !account.ValidProvider(in.Provider) {
		return nil, errors.BadRequest("Invalid provider")
	}

	credentials := account.DemoCredentials
	if !in.IsDemo {
		if len(in.Credentials) == 0 {
			return nil, errors.BadRequest("Credentials are required for non-demo accounts")
		}
		if key := account.MissingCredential(in.Provider, in.Credentials); key != "" {
			return nil, errors.BadRequest("Missing credential: " + key)
		}
		sealed, err := s.vault.SealMap(in.Credentials)
		if err != nil {
			return nil, errors.Internal("Failed to encrypt credentials", err)
		}
		credentials = sealed
	}

	syncedAt := s.now()
	acct := &account.Account{
		UserID:               userID,
		Provider:             in.Provider,
		AccountName:          in.AccountName,
		AccountID:            in.AccountID,
		CredentialsEncrypted: credentials,
		IsDemo:               in.IsDemo,
		Status:               account.StatusActive,
		LastSyncedAt:         &syncedAt,
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create cloud account")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    userID,
		"account_id": acct.ID,
		"provider":   acct.Provider,
		"demo":       acct.IsDemo,
	}).Info("Cloud account created")

	if acct.IsDemo {
		if err := s.generateDemoData(ctx, acct); err != nil {
			if delErr := s.accounts.Delete(ctx, acct.ID); delErr != nil {
				s.logger.ErrorWithErr(delErr, "Failed to remove account after demo data failure")
			}
			return nil, err
		}
	}

	return acct, nil
}

// List returns the user's accounts, newest first
func (s *AccountService) List(ctx context.Context, userID string) ([]*account.Account, error) {
	return s.accounts.ListByUser(ctx, userID)
}

// Delete removes an account owned by the user
func (s *AccountService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.accounts.GetForUser(ctx, userID, id); err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete cloud account")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    userID,
		"account_id": id,
	}).Info("Cloud account deleted")
	return nil
}

// Sync regenerates demo data or pulls the last 30 days from the provider
func (s *AccountService) Sync(ctx context.Context, userID, id string) (*account.Account, error) {
	acct, err := s.accounts.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if acct.IsDemo {
		err = s.generateDemoData(ctx, acct)
	} else {
		err = s.syncFromProvider(ctx, acct)
	}
	if err != nil {
		return nil, err
	}

	syncedAt := s.now()
	if err := s.accounts.UpdateSyncStatus(ctx, acct.ID, account.StatusActive, &syncedAt); err != nil {
		return nil, err
	}
	acct.Status = account.StatusActive
	acct.LastSyncedAt = &syncedAt
	return acct, nil
}

// SyncAllDemo regenerates every demo account. Failures are logged and
// skipped.
func (s *AccountService) SyncAllDemo(ctx context.Context) (int, error) {
	accounts, err := s.accounts.ListDemo(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, acct := range accounts {
		if err := ctx.Err(); err != nil {
			return synced, err
		}
		if err := s.generateDemoData(ctx, acct); err != nil {
			continue
		}
		syncedAt := s.now()
		if err := s.accounts.UpdateSyncStatus(ctx, acct.ID, account.StatusActive, &syncedAt); err != nil {
			s.logger.WithError(err).Warnf("Failed to stamp sync time on account %s", acct.ID)
			continue
		}
		synced++
	}
	return synced, nil
}

func (s *AccountService) generateDemoData(ctx context.Context, acct *account.Account) error {
	start := time.Now()
	records := s.generator.CostData(acct.Provider)

	if err := s.costs.ReplaceForAccount(ctx, acct.ID, records); err != nil {
		metrics.RecordAccountSync(acct.Provider, syncModeDemo, "error", time.Since(start))
		s.logger.WithFields(map[string]interface{}{
			"account_id": acct.ID,
		}).ErrorWithErr(err, "Failed to generate demo data")
		return err
	}

	metrics.RecordAccountSync(acct.Provider, syncModeDemo, "success", time.Since(start))
	metrics.AddCostRecords(acct.Provider, len(records))
	s.logger.WithFields(map[string]interface{}{
		"account_id": acct.ID,
		"records":    len(records),
	}).Info("Generated demo cost data")
	return nil
}

func (s *AccountService) syncFromProvider(ctx context.Context, acct *account.Account) error {
	start := time.Now()
	fail := func(err error) error {
		metrics.RecordAccountSync(acct.Provider, syncModeProvider, "error", time.Since(start))
		s.logger.WithFields(map[string]interface{}{
			"account_id": acct.ID,
			"provider":   acct.Provider,
		}).ErrorWithErr(err, "Provider sync failed")
		if statusErr := s.accounts.UpdateSyncStatus(ctx, acct.ID, account.StatusError, nil); statusErr != nil {
			s.logger.ErrorWithErr(statusErr, "Failed to mark account as errored")
		}
		acct.Status = account.StatusError
		return errors.ProviderAPIError(acct.Provider, err)
	}

	fetcher, ok := s.fetchers[acct.Provider]
	if !ok || fetcher == nil {
		return fail(fmt.Errorf("no billing client for %s", acct.Provider))
	}

	creds, err := s.vault.OpenMap(acct.CredentialsEncrypted)
	if err != nil {
		return fail(err)
	}

	from, to := lastNDays(s.now(), cost.Window)
	records, err := fetcher.FetchDailyCosts(ctx, creds, from, to)
	if err != nil {
		return fail(err)
	}

	if err := s.costs.ReplaceForAccount(ctx, acct.ID, records); err != nil {
		metrics.RecordAccountSync(acct.Provider, syncModeProvider, "error", time.Since(start))
		return err
	}

	metrics.RecordAccountSync(acct.Provider, syncModeProvider, "success", time.Since(start))
	metrics.AddCostRecords(acct.Provider, len(records))
	s.logger.WithFields(map[string]interface{}{
		"account_id": acct.ID,
		"records":    len(records),
	}).Info("Synced provider cost data")
	return nil
}
