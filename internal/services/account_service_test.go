package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
	"github.com/pratik-mahalle/cloudcost/internal/mockdata"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/vault"
	"github.com/pratik-mahalle/cloudcost/internal/testutil"
)

func newTestAccountService(t *testing.T, f *fixture, fetchers map[string]cost.Fetcher) *AccountService {
	t.Helper()
	v, err := vault.New("test-key")
	if err != nil {
		t.Fatalf("vault.New() error = %v", err)
	}
	gen := mockdata.NewSeeded(7).WithClock(testutil.FixedClock(fixedNow))
	return NewAccountService(f.repos.accounts, f.repos.costs, gen, v, fetchers, f.log).
		WithClock(testutil.FixedClock(fixedNow))
}

func countCostRows(t *testing.T, f *fixture, accountID string) int {
	t.Helper()
	var n int
	if err := f.db.QueryRow(`SELECT COUNT(*) FROM cost_data WHERE cloud_account_id = $1`, accountID).Scan(&n); err != nil {
		t.Fatalf("count cost rows: %v", err)
	}
	return n
}

func TestAccountService_Create(t *testing.T) {
	f := newFixture(t)
	service := newTestAccountService(t, f, nil)
	ctx := context.Background()
	userID := testutil.SeedUser(t, f.db, "owner@example.com")

	tests := []struct {
		name     string
		in       account.CreateInput
		wantCode string
		wantRows int
	}{
		{
			name:     "demo AWS account gets 30 days of data",
			in:       account.CreateInput{Provider: account.ProviderAWS, AccountName: "Prod", AccountID: "123456789012", IsDemo: true},
			wantRows: mockdata.Days * len(mockdata.Services("AWS")) * len(mockdata.Regions("AWS")),
		},
		{
			name: "non-demo account with credentials",
			in: account.CreateInput{
				Provider: account.ProviderGCP, AccountName: "Analytics", AccountID: "proj-1",
				Credentials: map[string]string{"projectId": "proj-1", "billingDataset": "proj-1.billing.gcp_billing_export_v1"},
			},
			wantRows: 0,
		},
		{
			name:     "invalid provider",
			in:       account.CreateInput{Provider: "ORACLE", AccountName: "x", AccountID: "1", IsDemo: true},
			wantCode: errors.ErrCodeBadRequest,
		},
		{
			name:     "non-demo account without credentials",
			in:       account.CreateInput{Provider: account.ProviderAzure, AccountName: "x", AccountID: "1"},
			wantCode: errors.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct, err := service.Create(ctx, userID, tt.in)
			if tt.wantCode != "" {
				if got := errCode(err); got != tt.wantCode {
					t.Fatalf("Create() code = %q, want %q (err %v)", got, tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if acct.Status != account.StatusActive {
				t.Errorf("Status = %q, want ACTIVE", acct.Status)
			}
			if got := countCostRows(t, f, acct.ID); got != tt.wantRows {
				t.Errorf("cost rows = %d, want %d", got, tt.wantRows)
			}
			if !acct.IsDemo && acct.CredentialsEncrypted == account.DemoCredentials {
				t.Error("credentials were not sealed")
			}
		})
	}
}

func TestAccountService_CreateRejectsIncompleteCredentials(t *testing.T) {
	f := newFixture(t)
	service := newTestAccountService(t, f, nil)
	ctx := context.Background()
	userID := testutil.SeedUser(t, f.db, "owner@example.com")

	tests := []struct {
		provider string
		creds    map[string]string
		wantMsg  string
	}{
		{provider: account.ProviderAWS, creds: map[string]string{"accessKeyId": "AKIA"}, wantMsg: "Missing credential: secretAccessKey"},
		{provider: account.ProviderAzure, creds: map[string]string{"tenantId": "t"}, wantMsg: "Missing credential: clientId"},
		{provider: account.ProviderAzure, creds: map[string]string{"tenantId": "t", "clientId": "c", "clientSecret": "s", "subscriptionId": " "}, wantMsg: "Missing credential: subscriptionId"},
		{provider: account.ProviderGCP, creds: map[string]string{"foo": "bar"}, wantMsg: "Missing credential: projectId"},
	}

	for _, tt := range tests {
		t.Run(tt.provider+"/"+tt.wantMsg, func(t *testing.T) {
			_, err := service.Create(ctx, userID, account.CreateInput{
				Provider: tt.provider, AccountName: "Real", AccountID: "1", Credentials: tt.creds,
			})
			appErr, ok := errors.As(err)
			if !ok || appErr.Code != errors.ErrCodeBadRequest {
				t.Fatalf("Create() error = %v, want bad request", err)
			}
			if appErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", appErr.Message, tt.wantMsg)
			}
		})
	}

	stored, err := service.List(ctx, userID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("accounts stored = %d, want 0", len(stored))
	}
}

// failingCosts fails every replace so demo data generation errors out
type failingCosts struct {
	cost.Repository
}

func (failingCosts) ReplaceForAccount(ctx context.Context, accountID string, records []*cost.Record) error {
	return errors.DatabaseError("Failed to replace cost data", fmt.Errorf("disk full"))
}

func TestAccountService_CreateRemovesAccountWhenDemoDataFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, f.db, "owner@example.com")

	v, err := vault.New("test-key")
	if err != nil {
		t.Fatalf("vault.New() error = %v", err)
	}
	service := NewAccountService(f.repos.accounts, failingCosts{f.repos.costs}, mockdata.NewSeeded(7), v, nil, f.log)

	if _, err := service.Create(ctx, userID, account.CreateInput{
		Provider: account.ProviderAWS, AccountName: "Prod", AccountID: "1", IsDemo: true,
	}); err == nil {
		t.Fatal("Create() should fail when demo data cannot be written")
	}

	stored, err := service.List(ctx, userID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("accounts stored = %d, want 0", len(stored))
	}
}

func TestAccountService_SyncDemoReplacesData(t *testing.T) {
	f := newFixture(t)
	service := newTestAccountService(t, f, nil)
	ctx := context.Background()
	userID := testutil.SeedUser(t, f.db, "owner@example.com")
	other := testutil.SeedUser(t, f.db, "other@example.com")

	acct, err := service.Create(ctx, userID, account.CreateInput{
		Provider: account.ProviderAzure, AccountName: "Dev", AccountID: "sub-1", IsDemo: true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	before := countCostRows(t, f, acct.ID)

	synced, err := service.Sync(ctx, userID, acct.ID)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if synced.LastSyncedAt == nil || !synced.LastSyncedAt.Equal(fixedNow) {
		t.Errorf("LastSyncedAt = %v, want %v", synced.LastSyncedAt, fixedNow)
	}
	if after := countCostRows(t, f, acct.ID); after != before {
		t.Errorf("rows after sync = %d, want %d (replaced, not appended)", after, before)
	}

	if _, err := service.Sync(ctx, other, acct.ID); !errors.IsNotFound(err) {
		t.Errorf("Sync(other user) error = %v, want not found", err)
	}
}

func TestAccountService_SyncFromProvider(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, f.db, "owner@example.com")

	fetcher := &testutil.MockFetcher{Records: []*cost.Record{
		{Date: day(-1), Service: "Amazon S3", Region: "us-east-1", CostAmount: 12.5},
		{Date: day(0), Service: "Amazon S3", Region: "us-east-1", CostAmount: 13.5},
	}}
	service := newTestAccountService(t, f, map[string]cost.Fetcher{account.ProviderAWS: fetcher})

	acct, err := service.Create(ctx, userID, account.CreateInput{
		Provider: account.ProviderAWS, AccountName: "Real", AccountID: "210987654321",
		Credentials: map[string]string{"accessKeyId": "AKIA", "secretAccessKey": "secret"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := service.Sync(ctx, userID, acct.ID); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if fetcher.Calls != 1 || fetcher.Creds["accessKeyId"] != "AKIA" {
		t.Errorf("fetcher calls = %d creds = %v", fetcher.Calls, fetcher.Creds)
	}
	if got := countCostRows(t, f, acct.ID); got != 2 {
		t.Errorf("cost rows = %d, want 2", got)
	}

	fetcher.Err = fmt.Errorf("throttled")
	_, err = service.Sync(ctx, userID, acct.ID)
	appErr, ok := errors.As(err)
	if !ok || appErr.Code != errors.ErrCodeProviderAPI || appErr.StatusCode != 502 {
		t.Fatalf("Sync() error = %v, want provider API error", err)
	}
	stored, err := f.repos.accounts.GetForUser(ctx, userID, acct.ID)
	if err != nil {
		t.Fatalf("GetForUser() error = %v", err)
	}
	if stored.Status != account.StatusError {
		t.Errorf("Status = %q, want ERROR", stored.Status)
	}
}

func TestAccountService_SyncAllDemo(t *testing.T) {
	f := newFixture(t)
	service := newTestAccountService(t, f, nil)
	ctx := context.Background()

	first := testutil.SeedAccount(t, f.db, testutil.SeedUser(t, f.db, "a@example.com"), "AWS", "A")
	second := testutil.SeedAccount(t, f.db, testutil.SeedUser(t, f.db, "b@example.com"), "GCP", "B")

	n, err := service.SyncAllDemo(ctx)
	if err != nil {
		t.Fatalf("SyncAllDemo() error = %v", err)
	}
	if n != 2 {
		t.Errorf("SyncAllDemo() = %d, want 2", n)
	}
	for _, id := range []string{first, second} {
		if countCostRows(t, f, id) == 0 {
			t.Errorf("account %s has no cost rows", id)
		}
	}
}

func TestAccountService_Delete(t *testing.T) {
	f := newFixture(t)
	service := newTestAccountService(t, f, nil)
	ctx := context.Background()
	userID := testutil.SeedUser(t, f.db, "owner@example.com")
	other := testutil.SeedUser(t, f.db, "other@example.com")
	accountID := testutil.SeedAccount(t, f.db, userID, "AWS", "Prod")
	testutil.SeedCost(t, f.db, accountID, day(0), "Amazon EC2", "us-east-1", 10)

	if err := service.Delete(ctx, other, accountID); !errors.IsNotFound(err) {
		t.Errorf("Delete(other user) error = %v, want not found", err)
	}
	if err := service.Delete(ctx, userID, accountID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got := countCostRows(t, f, accountID); got != 0 {
		t.Errorf("cost rows after delete = %d, want 0", got)
	}
}
