package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pratik-mahalle/cloudcost/internal/domain/budget"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
)

// BudgetRepository implements budget.Repository
type BudgetRepository struct {
	db *sql.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *sql.DB) budget.Repository {
	return &BudgetRepository{db: db}
}

// thresholdsDocument is the stored shape of alert_thresholds
type thresholdsDocument struct {
	Default float64 `json:"default"`
}

const budgetColumns = `id, user_id, cloud_account_id, name, amount, period, alert_thresholds, created_at, updated_at`

// Create creates a budget
func (r *BudgetRepository) Create(ctx context.Context, b *budget.Budget) error {
	ts := now()
	b.ID = newID()
	b.CreatedAt = ts
	b.UpdatedAt = ts

	thresholds, err := toJSON(thresholdsDocument{Default: b.AlertThreshold})
	if err != nil {
		return errors.Internal("Failed to encode alert thresholds", err)
	}

	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.ExecContext(ctx, query,
		b.ID, b.UserID, nullStringPtr(b.CloudAccountID), b.Name, b.Amount, b.Period, thresholds, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return errors.DatabaseError("Failed to create budget", err)
	}
	return nil
}

// GetForUser retrieves a budget owned by userID
func (r *BudgetRepository) GetForUser(ctx context.Context, userID, id string) (*budget.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 AND id = $2`
	b, err := scanBudget(r.db.QueryRowContext(ctx, query, userID, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Budget")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get budget", err)
	}
	return b, nil
}

// ListByUser lists a user's budgets, newest first
func (r *BudgetRepository) ListByUser(ctx context.Context, userID string) ([]*budget.Budget, error) {
	return r.list(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListAll lists every budget
func (r *BudgetRepository) ListAll(ctx context.Context) ([]*budget.Budget, error) {
	return r.list(ctx, `SELECT `+budgetColumns+` FROM budgets ORDER BY created_at`)
}

func (r *BudgetRepository) list(ctx context.Context, query string, params ...any) ([]*budget.Budget, error) {
	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list budgets", err)
	}
	defer rows.Close()

	out := []*budget.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan budget", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate budgets", err)
	}
	return out, nil
}

// Update writes name, amount and threshold
func (r *BudgetRepository) Update(ctx context.Context, b *budget.Budget) error {
	b.UpdatedAt = now()
	thresholds, err := toJSON(thresholdsDocument{Default: b.AlertThreshold})
	if err != nil {
		return errors.Internal("Failed to encode alert thresholds", err)
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE budgets SET name = $1, amount = $2, alert_thresholds = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6`,
		b.Name, b.Amount, thresholds, b.UpdatedAt, b.ID, b.UserID)
	if err != nil {
		return errors.DatabaseError("Failed to update budget", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if n == 0 {
		return errors.NotFound("Budget")
	}
	return nil
}

// Delete deletes a budget owned by userID
func (r *BudgetRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete budget", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if n == 0 {
		return errors.NotFound("Budget")
	}
	return nil
}

func scanBudget(s rowScanner) (*budget.Budget, error) {
	var b budget.Budget
	var accountID, thresholds sql.NullString
	if err := s.Scan(&b.ID, &b.UserID, &accountID, &b.Name, &b.Amount, &b.Period, &thresholds,
		&b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.CloudAccountID = stringPtr(accountID)
	b.AlertThreshold = budget.DefaultAlertThreshold
	if thresholds.Valid {
		var doc thresholdsDocument
		if err := json.Unmarshal([]byte(thresholds.String), &doc); err == nil && doc.Default > 0 {
			b.AlertThreshold = doc.Default
		}
	}
	return &b, nil
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
