package testutil

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/pratik-mahalle/cloudcost/migrations"
)

// NewTestDB creates an in-memory SQLite database migrated with the real
// schema. It is closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// A named shared-cache memory database keeps every connection of the
	// pool on the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_time_format=sqlite&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations.GetFS())
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatalf("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(db, "."); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { CleanupDB(db) })
	return db
}

// CleanupDB closes the test database
func CleanupDB(db *sql.DB) {
	if db != nil {
		db.Close()
	}
}

// SeedUser inserts a user with a throwaway password hash and returns its ID
func SeedUser(t *testing.T, db *sql.DB, email string) string {
	t.Helper()
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := db.Exec(`
		INSERT INTO users (id, email, name, password_hash, role, subscription_tier, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'USER', 'FREE', $5, $6)`,
		id, email, "Test User", "x", now, now)
	if err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return id
}

// SeedAccount inserts a demo cloud account for userID and returns its ID
func SeedAccount(t *testing.T, db *sql.DB, userID, provider, name string) string {
	t.Helper()
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := db.Exec(`
		INSERT INTO cloud_accounts (id, user_id, provider, account_name, account_id, credentials_encrypted,
			is_demo, status, last_synced_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'demo-credentials', $6, 'ACTIVE', $7, $8, $9)`,
		id, userID, provider, name, "acct-"+id[:8], true, now, now, now)
	if err != nil {
		t.Fatalf("Failed to seed account: %v", err)
	}
	return id
}

// SeedCost inserts one cost row
func SeedCost(t *testing.T, db *sql.DB, accountID string, day time.Time, service, region string, amount float64) {
	t.Helper()
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	_, err := db.Exec(`
		INSERT INTO cost_data (id, cloud_account_id, date, service, region, cost_amount, currency, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'USD', '{}', $7)`,
		uuid.NewString(), accountID, day, service, region, amount, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to seed cost: %v", err)
	}
}

// FixedClock returns a clock stuck at t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
