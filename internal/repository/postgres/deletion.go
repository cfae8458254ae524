package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
	"github.com/pratik-mahalle/cloudcost/internal/domain/deletion"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
)

// DeletionRepository implements deletion.Repository
type DeletionRepository struct {
	db *sql.DB
}

// NewDeletionRepository creates a new deletion repository
func NewDeletionRepository(db *sql.DB) deletion.Repository {
	return &DeletionRepository{db: db}
}

// Create records a deletion
func (r *DeletionRepository) Create(ctx context.Context, d *deletion.Deletion) error {
	ts := now()
	d.ID = newID()
	d.CreatedAt = ts
	if d.DeletedAt.IsZero() {
		d.DeletedAt = ts
	}
	d.DeletedAt = d.DeletedAt.UTC()

	query := `
		INSERT INTO resource_deletions (id, cloud_account_id, resource_id, resource_type, resource_name,
			deleted_at, deleted_by, deletion_method, monthly_cost_before, estimated_savings,
			deletion_reason, recommendation_id, protection_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	var recID sql.NullString
	if d.RecommendationID != nil {
		recID = sql.NullString{String: *d.RecommendationID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.CloudAccountID, d.ResourceID, d.ResourceType, nullString(d.ResourceName),
		d.DeletedAt, d.DeletedBy, d.DeletionMethod, nullFloat(d.MonthlyCostBefore), nullFloat(d.EstimatedSavings),
		nullString(d.DeletionReason), recID, d.ProtectionStatus, d.CreatedAt,
	)
	if err != nil {
		return errors.DatabaseError("Failed to record deletion", err)
	}
	return nil
}

// List returns the user's deletions matching filter, newest first
func (r *DeletionRepository) List(ctx context.Context, userID string, filter deletion.Filter) ([]*deletion.Deletion, error) {
	a := &args{}
	query := `
		SELECT d.id, d.cloud_account_id, d.resource_id, d.resource_type, d.resource_name, d.deleted_at,
			d.deleted_by, d.deletion_method, d.monthly_cost_before, d.estimated_savings, d.deletion_reason,
			d.recommendation_id, d.protection_status, d.created_at, a.provider, a.account_name
		FROM resource_deletions d
		JOIN cloud_accounts a ON a.id = d.cloud_account_id
		WHERE ` + accountScope(a, "a", userID, filter.CloudAccountID)

	if filter.ResourceType != "" {
		query += ` AND d.resource_type = ` + a.add(filter.ResourceType)
	}
	if filter.StartDate != nil {
		query += ` AND d.deleted_at >= ` + a.add(filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query += ` AND d.deleted_at <= ` + a.add(filter.EndDate.UTC())
	}
	query += ` ORDER BY d.deleted_at DESC`

	rows, err := r.db.QueryContext(ctx, query, a.values...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list deletions", err)
	}
	defer rows.Close()

	out := []*deletion.Deletion{}
	for rows.Next() {
		var d deletion.Deletion
		var name, reason, recID sql.NullString
		var before, savings sql.NullFloat64
		ref := &account.Ref{}
		if err := rows.Scan(&d.ID, &d.CloudAccountID, &d.ResourceID, &d.ResourceType, &name, &d.DeletedAt,
			&d.DeletedBy, &d.DeletionMethod, &before, &savings, &reason, &recID, &d.ProtectionStatus,
			&d.CreatedAt, &ref.Provider, &ref.AccountName); err != nil {
			return nil, errors.DatabaseError("Failed to scan deletion", err)
		}
		d.ResourceName = name.String
		d.DeletionReason = reason.String
		d.RecommendationID = stringPtr(recID)
		d.MonthlyCostBefore = floatPtr(before)
		d.EstimatedSavings = floatPtr(savings)
		d.CloudAccount = ref
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate deletions", err)
	}
	return out, nil
}

// Count counts the user's deletions, optionally only those since a time
func (r *DeletionRepository) Count(ctx context.Context, userID string, since *time.Time) (int, error) {
	a := &args{}
	query := `
		SELECT COUNT(d.id)
		FROM resource_deletions d
		JOIN cloud_accounts a ON a.id = d.cloud_account_id
		WHERE ` + accountScope(a, "a", userID, "")
	if since != nil {
		query += ` AND d.deleted_at >= ` + a.add(since.UTC())
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, a.values...).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to count deletions", err)
	}
	return n, nil
}

// TotalSavings sums estimated savings over the user's deletions
func (r *DeletionRepository) TotalSavings(ctx context.Context, userID string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(d.estimated_savings), 0)
		FROM resource_deletions d
		JOIN cloud_accounts a ON a.id = d.cloud_account_id
		WHERE a.user_id = $1`

	var total float64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return 0, errors.DatabaseError("Failed to sum deletion savings", err)
	}
	return total, nil
}

// ByResourceType groups the user's deletions by type, highest savings first
func (r *DeletionRepository) ByResourceType(ctx context.Context, userID string) ([]deletion.TypeStat, error) {
	query := `
		SELECT d.resource_type, COUNT(d.id), COALESCE(SUM(d.estimated_savings), 0) AS savings
		FROM resource_deletions d
		JOIN cloud_accounts a ON a.id = d.cloud_account_id
		WHERE a.user_id = $1
		GROUP BY d.resource_type
		ORDER BY savings DESC, d.resource_type`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to group deletions", err)
	}
	defer rows.Close()

	out := []deletion.TypeStat{}
	for rows.Next() {
		var s deletion.TypeStat
		if err := rows.Scan(&s.ResourceType, &s.Count, &s.Savings); err != nil {
			return nil, errors.DatabaseError("Failed to scan deletion group", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate deletion groups", err)
	}
	return out, nil
}
