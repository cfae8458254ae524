package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
)

// AccountRepository implements account.Repository
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new cloud account repository
func NewAccountRepository(db *sql.DB) account.Repository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, user_id, provider, account_name, account_id, credentials_encrypted,
	is_demo, status, last_synced_at, created_at, updated_at`

// Create creates a new cloud account
func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	ts := now()
	a.ID = newID()
	a.CreatedAt = ts
	a.UpdatedAt = ts
	if a.Status == "" {
		a.Status = account.StatusActive
	}

	query := `
		INSERT INTO cloud_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.UserID, a.Provider, a.AccountName, a.AccountID, a.CredentialsEncrypted,
		a.IsDemo, a.Status, utcPtr(a.LastSyncedAt), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return errors.DatabaseError("Failed to create cloud account", err)
	}
	return nil
}

// GetForUser retrieves an account owned by userID
func (r *AccountRepository) GetForUser(ctx context.Context, userID, id string) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM cloud_accounts WHERE user_id = $1 AND id = $2`

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, userID, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Cloud account")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get cloud account", err)
	}
	return a, nil
}

// ListByUser lists a user's accounts, newest first
func (r *AccountRepository) ListByUser(ctx context.Context, userID string) ([]*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM cloud_accounts WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// ListDemo lists every demo account
func (r *AccountRepository) ListDemo(ctx context.Context) ([]*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM cloud_accounts WHERE is_demo = $1 ORDER BY created_at`
	return r.list(ctx, query, true)
}

func (r *AccountRepository) list(ctx context.Context, query string, params ...any) ([]*account.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list cloud accounts", err)
	}
	defer rows.Close()

	accounts := []*account.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan cloud account", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate cloud accounts", err)
	}
	return accounts, nil
}

// UpdateSyncStatus sets status and, when given, lastSyncedAt
func (r *AccountRepository) UpdateSyncStatus(ctx context.Context, id, status string, lastSyncedAt *time.Time) error {
	var (
		result sql.Result
		err    error
	)
	if lastSyncedAt != nil {
		result, err = r.db.ExecContext(ctx,
			`UPDATE cloud_accounts SET status = $1, last_synced_at = $2, updated_at = $3 WHERE id = $4`,
			status, lastSyncedAt.UTC(), now(), id)
	} else {
		result, err = r.db.ExecContext(ctx,
			`UPDATE cloud_accounts SET status = $1, updated_at = $2 WHERE id = $3`,
			status, now(), id)
	}
	if err != nil {
		return errors.DatabaseError("Failed to update cloud account", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if n == 0 {
		return errors.NotFound("Cloud account")
	}
	return nil
}

// Delete removes an account and its cost rows, recommendations, deletions
// and account-scoped budgets
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return deleteAccountTx(ctx, tx, id)
	})
}

func deleteAccountTx(ctx context.Context, tx *sql.Tx, id string) error {
	children := []string{
		`DELETE FROM cost_data WHERE cloud_account_id = $1`,
		`DELETE FROM recommendations WHERE cloud_account_id = $1`,
		`DELETE FROM resource_deletions WHERE cloud_account_id = $1`,
		`DELETE FROM budgets WHERE cloud_account_id = $1`,
	}
	for _, q := range children {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return errors.DatabaseError("Failed to delete cloud account data", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM cloud_accounts WHERE id = $1`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete cloud account", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if n == 0 {
		return errors.NotFound("Cloud account")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(s rowScanner) (*account.Account, error) {
	var a account.Account
	var lastSynced sql.NullTime
	err := s.Scan(
		&a.ID, &a.UserID, &a.Provider, &a.AccountName, &a.AccountID, &a.CredentialsEncrypted,
		&a.IsDemo, &a.Status, &lastSynced, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastSynced.Valid {
		t := lastSynced.Time
		a.LastSyncedAt = &t
	}
	return &a, nil
}

func utcPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
