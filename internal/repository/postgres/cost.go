package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
)

// CostRepository implements cost.Repository
type CostRepository struct {
	db *sql.DB
}

// NewCostRepository creates a new cost repository
func NewCostRepository(db *sql.DB) cost.Repository {
	return &CostRepository{db: db}
}

const costInsertColumns = 9

// ReplaceForAccount swaps the account's cost rows for records in one
// transaction, inserting cost.InsertBatchSize rows per statement
func (r *CostRepository) ReplaceForAccount(ctx context.Context, accountID string, records []*cost.Record) error {
	ts := now()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cost_data WHERE cloud_account_id = $1`, accountID); err != nil {
			return errors.DatabaseError("Failed to clear cost data", err)
		}

		for start := 0; start < len(records); start += cost.InsertBatchSize {
			end := start + cost.InsertBatchSize
			if end > len(records) {
				end = len(records)
			}
			if err := insertCostBatch(ctx, tx, accountID, records[start:end], ts); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertCostBatch(ctx context.Context, tx *sql.Tx, accountID string, batch []*cost.Record, ts time.Time) error {
	var b strings.Builder
	b.WriteString(`INSERT INTO cost_data (id, cloud_account_id, date, service, region, cost_amount, currency, tags, created_at) VALUES `)

	params := make([]any, 0, len(batch)*costInsertColumns)
	for i, rec := range batch {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j := 0; j < costInsertColumns; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", i*costInsertColumns+j+1)
		}
		b.WriteString(")")

		tags, err := toJSON(rec.Tags)
		if err != nil {
			return errors.Internal("Failed to encode cost tags", err)
		}
		rec.ID = newID()
		rec.CloudAccountID = accountID
		rec.Date = dayUTC(rec.Date)
		rec.CreatedAt = ts
		if rec.Currency == "" {
			rec.Currency = "USD"
		}
		params = append(params, rec.ID, accountID, rec.Date, rec.Service, nullString(rec.Region),
			rec.CostAmount, rec.Currency, tags, ts)
	}

	if _, err := tx.ExecContext(ctx, b.String(), params...); err != nil {
		return errors.DatabaseError("Failed to insert cost data", err)
	}
	return nil
}

// Sum totals cost in [from, to)
func (r *CostRepository) Sum(ctx context.Context, filter cost.Filter, from, to time.Time) (float64, error) {
	a := &args{}
	query := `
		SELECT COALESCE(SUM(c.cost_amount), 0)
		FROM cost_data c
		JOIN cloud_accounts a ON a.id = c.cloud_account_id
		WHERE ` + accountScope(a, "a", filter.UserID, filter.CloudAccountID) + `
		  AND c.date >= ` + a.add(dayUTC(from)) + ` AND c.date < ` + a.add(dayUTC(to))

	var total float64
	if err := r.db.QueryRowContext(ctx, query, a.values...).Scan(&total); err != nil {
		return 0, errors.DatabaseError("Failed to sum costs", err)
	}
	return total, nil
}

// DailyTotals groups cost by day ascending
func (r *CostRepository) DailyTotals(ctx context.Context, filter cost.Filter, from, to time.Time) ([]cost.DailyCost, error) {
	a := &args{}
	query := `
		SELECT c.date, SUM(c.cost_amount)
		FROM cost_data c
		JOIN cloud_accounts a ON a.id = c.cloud_account_id
		WHERE ` + accountScope(a, "a", filter.UserID, filter.CloudAccountID) + `
		  AND c.date >= ` + a.add(dayUTC(from)) + ` AND c.date < ` + a.add(dayUTC(to)) + `
		GROUP BY c.date
		ORDER BY c.date`

	rows, err := r.db.QueryContext(ctx, query, a.values...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to query cost trends", err)
	}
	defer rows.Close()

	points := []cost.DailyCost{}
	for rows.Next() {
		var raw any
		var total float64
		if err := rows.Scan(&raw, &total); err != nil {
			return nil, errors.DatabaseError("Failed to scan cost trend", err)
		}
		day, err := parseDay(raw)
		if err != nil {
			return nil, errors.DatabaseError("Failed to parse cost date", err)
		}
		points = append(points, cost.DailyCost{Date: day.Format(time.DateOnly), Cost: total})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate cost trends", err)
	}
	return points, nil
}

// ByService groups cost by service, highest first. Percentage is left for
// the caller.
func (r *CostRepository) ByService(ctx context.Context, filter cost.Filter, from, to time.Time) ([]cost.ServiceCost, error) {
	a := &args{}
	query := `
		SELECT c.service, SUM(c.cost_amount) AS total
		FROM cost_data c
		JOIN cloud_accounts a ON a.id = c.cloud_account_id
		WHERE ` + accountScope(a, "a", filter.UserID, filter.CloudAccountID) + `
		  AND c.date >= ` + a.add(dayUTC(from)) + ` AND c.date < ` + a.add(dayUTC(to)) + `
		GROUP BY c.service
		ORDER BY total DESC, c.service`

	rows, err := r.db.QueryContext(ctx, query, a.values...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to query cost breakdown", err)
	}
	defer rows.Close()

	out := []cost.ServiceCost{}
	for rows.Next() {
		var sc cost.ServiceCost
		if err := rows.Scan(&sc.Service, &sc.Cost); err != nil {
			return nil, errors.DatabaseError("Failed to scan cost breakdown", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate cost breakdown", err)
	}
	return out, nil
}

// ByProvider groups the user's cost by provider, highest first
func (r *CostRepository) ByProvider(ctx context.Context, userID string, from, to time.Time) ([]cost.ProviderCost, error) {
	a := &args{}
	query := `
		SELECT a.provider, SUM(c.cost_amount) AS total
		FROM cost_data c
		JOIN cloud_accounts a ON a.id = c.cloud_account_id
		WHERE ` + accountScope(a, "a", userID, "") + `
		  AND c.date >= ` + a.add(dayUTC(from)) + ` AND c.date < ` + a.add(dayUTC(to)) + `
		GROUP BY a.provider
		ORDER BY total DESC, a.provider`

	rows, err := r.db.QueryContext(ctx, query, a.values...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to query provider costs", err)
	}
	defer rows.Close()

	out := []cost.ProviderCost{}
	for rows.Next() {
		var pc cost.ProviderCost
		if err := rows.Scan(&pc.Provider, &pc.Cost); err != nil {
			return nil, errors.DatabaseError("Failed to scan provider cost", err)
		}
		out = append(out, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate provider costs", err)
	}
	return out, nil
}

// ListDetailed returns rows joined with their account, newest day first
func (r *CostRepository) ListDetailed(ctx context.Context, userID string, since time.Time) ([]*cost.DetailedRecord, error) {
	a := &args{}
	query := `
		SELECT c.id, c.cloud_account_id, c.date, c.service, c.region, c.cost_amount, c.currency, c.tags, c.created_at,
		       a.provider, a.account_name
		FROM cost_data c
		JOIN cloud_accounts a ON a.id = c.cloud_account_id
		WHERE ` + accountScope(a, "a", userID, "") + `
		  AND c.date >= ` + a.add(dayUTC(since)) + `
		ORDER BY c.date DESC, a.account_name, c.service, c.region`

	rows, err := r.db.QueryContext(ctx, query, a.values...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list cost data", err)
	}
	defer rows.Close()

	out := []*cost.DetailedRecord{}
	for rows.Next() {
		var d cost.DetailedRecord
		var rawDate any
		var region, tags sql.NullString
		if err := rows.Scan(&d.ID, &d.CloudAccountID, &rawDate, &d.Service, &region, &d.CostAmount,
			&d.Currency, &tags, &d.CreatedAt, &d.Provider, &d.AccountName); err != nil {
			return nil, errors.DatabaseError("Failed to scan cost data", err)
		}
		day, err := parseDay(rawDate)
		if err != nil {
			return nil, errors.DatabaseError("Failed to parse cost date", err)
		}
		d.Date = day
		d.Region = region.String
		if tags.Valid && tags.String != "" {
			_ = json.Unmarshal([]byte(tags.String), &d.Tags)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate cost data", err)
	}
	return out, nil
}

// parseDay normalises a DATE column value, which the sqlite driver may hand
// back as text
func parseDay(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return dayUTC(t), nil
	case string:
		return parseDayString(t)
	case []byte:
		return parseDayString(string(t))
	default:
		return time.Time{}, fmt.Errorf("unexpected date type %T", v)
	}
}

func parseDayString(s string) (time.Time, error) {
	if len(s) < len(time.DateOnly) {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return time.Parse(time.DateOnly, s[:len(time.DateOnly)])
}
