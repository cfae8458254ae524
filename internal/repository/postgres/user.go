package postgres

import (
	"context"
	"database/sql"

	"github.com/pratik-mahalle/cloudcost/internal/domain/user"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, password_hash, role, subscription_tier, created_at, updated_at`

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	ts := now()
	u.ID = newID()
	u.CreatedAt = ts
	u.UpdatedAt = ts
	if u.Role == "" {
		u.Role = user.RoleUser
	}
	if u.SubscriptionTier == "" {
		u.SubscriptionTier = user.TierFree
	}

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.SubscriptionTier, u.CreatedAt, u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return errors.Conflict("User already exists with this email")
	}
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// Delete deletes a user. Accounts and budgets go with it through the
// foreign key cascade.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM budgets WHERE user_id = $1`, id); err != nil {
			return errors.DatabaseError("Failed to delete user budgets", err)
		}

		rows, err := tx.QueryContext(ctx, `SELECT id FROM cloud_accounts WHERE user_id = $1`, id)
		if err != nil {
			return errors.DatabaseError("Failed to list user accounts", err)
		}
		var accountIDs []string
		for rows.Next() {
			var accountID string
			if err := rows.Scan(&accountID); err != nil {
				rows.Close()
				return errors.DatabaseError("Failed to scan account", err)
			}
			accountIDs = append(accountIDs, accountID)
		}
		rows.Close()

		for _, accountID := range accountIDs {
			if err := deleteAccountTx(ctx, tx, accountID); err != nil {
				return err
			}
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return errors.DatabaseError("Failed to delete user", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return errors.DatabaseError("Failed to get affected rows", err)
		}
		if n == 0 {
			return errors.NotFound("User")
		}
		return nil
	})
}

func scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.SubscriptionTier, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}
	return &u, nil
}
