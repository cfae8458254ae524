package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
	"github.com/pratik-mahalle/cloudcost/internal/domain/recommendation"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
)

// RecommendationRepository implements recommendation.Repository
type RecommendationRepository struct {
	db *sql.DB
}

// NewRecommendationRepository creates a new recommendation repository
func NewRecommendationRepository(db *sql.DB) recommendation.Repository {
	return &RecommendationRepository{db: db}
}

// stepsDocument is the stored shape of implementation_steps
type stepsDocument struct {
	Steps []string `json:"steps"`
}

const recommendationColumns = `r.id, r.cloud_account_id, r.resource_id, r.type, r.title, r.description,
	r.estimated_savings, r.priority, r.status, r.implementation_steps, r.created_at, r.updated_at,
	a.provider, a.account_name`

const priorityOrder = `CASE r.priority WHEN 'HIGH' THEN 1 WHEN 'MEDIUM' THEN 2 ELSE 3 END`

// ReplaceForAccount deletes the account's recommendations and inserts recs
func (r *RecommendationRepository) ReplaceForAccount(ctx context.Context, accountID string, recs []*recommendation.Recommendation) error {
	ts := now()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM recommendations WHERE cloud_account_id = $1`, accountID); err != nil {
			return errors.DatabaseError("Failed to clear recommendations", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO recommendations (id, cloud_account_id, resource_id, type, title, description,
				estimated_savings, priority, status, implementation_steps, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`)
		if err != nil {
			return errors.DatabaseError("Failed to prepare recommendation insert", err)
		}
		defer stmt.Close()

		for _, rec := range recs {
			steps, err := toJSON(stepsDocument{Steps: rec.ImplementationSteps})
			if err != nil {
				return errors.Internal("Failed to encode implementation steps", err)
			}
			rec.ID = newID()
			rec.CloudAccountID = accountID
			rec.CreatedAt = ts
			rec.UpdatedAt = ts
			if rec.Status == "" {
				rec.Status = recommendation.StatusPending
			}
			if _, err := stmt.ExecContext(ctx, rec.ID, accountID, rec.ResourceID, rec.Type, rec.Title,
				rec.Description, rec.EstimatedSavings, rec.Priority, rec.Status, steps, ts, ts); err != nil {
				return errors.DatabaseError("Failed to insert recommendation", err)
			}
		}
		return nil
	})
}

// ListPending returns pending recommendations, most urgent first
func (r *RecommendationRepository) ListPending(ctx context.Context, userID, accountID string) ([]*recommendation.Recommendation, error) {
	a := &args{}
	query := `
		SELECT ` + recommendationColumns + `
		FROM recommendations r
		JOIN cloud_accounts a ON a.id = r.cloud_account_id
		WHERE ` + accountScope(a, "a", userID, accountID) + `
		  AND r.status = ` + a.add(recommendation.StatusPending) + `
		ORDER BY ` + priorityOrder + `, r.estimated_savings DESC`
	return r.list(ctx, query, a.values...)
}

// ListAll returns every recommendation of the user, highest savings first
func (r *RecommendationRepository) ListAll(ctx context.Context, userID string) ([]*recommendation.Recommendation, error) {
	a := &args{}
	query := `
		SELECT ` + recommendationColumns + `
		FROM recommendations r
		JOIN cloud_accounts a ON a.id = r.cloud_account_id
		WHERE ` + accountScope(a, "a", userID, "") + `
		ORDER BY r.estimated_savings DESC`
	return r.list(ctx, query, a.values...)
}

func (r *RecommendationRepository) list(ctx context.Context, query string, params ...any) ([]*recommendation.Recommendation, error) {
	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list recommendations", err)
	}
	defer rows.Close()

	recs := []*recommendation.Recommendation{}
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan recommendation", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate recommendations", err)
	}
	return recs, nil
}

// GetForUser retrieves a recommendation whose account belongs to userID
func (r *RecommendationRepository) GetForUser(ctx context.Context, userID, id string) (*recommendation.Recommendation, error) {
	query := `
		SELECT ` + recommendationColumns + `
		FROM recommendations r
		JOIN cloud_accounts a ON a.id = r.cloud_account_id
		WHERE a.user_id = $1 AND r.id = $2`

	rec, err := scanRecommendation(r.db.QueryRowContext(ctx, query, userID, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Recommendation")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get recommendation", err)
	}
	return rec, nil
}

// UpdateStatus sets a recommendation's status
func (r *RecommendationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE recommendations SET status = $1, updated_at = $2 WHERE id = $3`, status, now(), id)
	if err != nil {
		return errors.DatabaseError("Failed to update recommendation", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if n == 0 {
		return errors.NotFound("Recommendation")
	}
	return nil
}

// SumByStatus totals savings and counts rows for one status
func (r *RecommendationRepository) SumByStatus(ctx context.Context, userID, status string) (float64, int, error) {
	query := `
		SELECT COALESCE(SUM(r.estimated_savings), 0), COUNT(r.id)
		FROM recommendations r
		JOIN cloud_accounts a ON a.id = r.cloud_account_id
		WHERE a.user_id = $1 AND r.status = $2`

	var sum float64
	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, status).Scan(&sum, &count); err != nil {
		return 0, 0, errors.DatabaseError("Failed to aggregate recommendations", err)
	}
	return sum, count, nil
}

func scanRecommendation(s rowScanner) (*recommendation.Recommendation, error) {
	var rec recommendation.Recommendation
	var steps sql.NullString
	ref := &account.Ref{}
	err := s.Scan(&rec.ID, &rec.CloudAccountID, &rec.ResourceID, &rec.Type, &rec.Title, &rec.Description,
		&rec.EstimatedSavings, &rec.Priority, &rec.Status, &steps, &rec.CreatedAt, &rec.UpdatedAt,
		&ref.Provider, &ref.AccountName)
	if err != nil {
		return nil, err
	}
	rec.CloudAccount = ref
	rec.ImplementationSteps = []string{}
	if steps.Valid && steps.String != "" {
		var doc stepsDocument
		if err := json.Unmarshal([]byte(steps.String), &doc); err == nil && doc.Steps != nil {
			rec.ImplementationSteps = doc.Steps
		}
	}
	return &rec, nil
}
