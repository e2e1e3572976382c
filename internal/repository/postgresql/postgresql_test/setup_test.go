package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/onsite-hq/onsite-backend-go/internal/pkg/database"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
	testDBErr  error
)

// setupTestDB connects to the database named by TEST_DATABASE_URL and ensures
// the schema exists. Tests are skipped when the variable is not set so the
// suite stays runnable without a live Postgres.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBOnce.Do(func() {
		testDB, testDBErr = database.NewPostgreSQLDB(dsn)
		if testDBErr != nil {
			testDBErr = fmt.Errorf("failed to connect to test database: %w", testDBErr)
			return
		}
		testDBErr = ensureSchema(context.Background(), testDB)
	})
	if testDBErr != nil {
		t.Fatal(testDBErr)
	}

	return testDB
}

// ensureSchema creates the tables and the unique constraints the repositories
// rely on for their ON CONFLICT clauses.
func ensureSchema(ctx context.Context, db *database.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS leave_requests (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			org_id TEXT,
			type TEXT NOT NULL,
			date DATE NOT NULL,
			end_date DATE,
			notes TEXT,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			UNIQUE (user_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS comp_time_entries (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			org_id TEXT,
			type TEXT NOT NULL,
			source_id TEXT NOT NULL,
			source_date DATE NOT NULL,
			minutes_earned INT NOT NULL,
			minutes_used INT NOT NULL,
			status TEXT NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			UNIQUE (type, source_id)
		)`,
		`CREATE TABLE IF NOT EXISTS comp_time_usages (
			id TEXT PRIMARY KEY,
			comp_time_entry_id TEXT NOT NULL,
			leave_request_id TEXT NOT NULL,
			minutes_used INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			UNIQUE (comp_time_entry_id, leave_request_id)
		)`,
		`CREATE TABLE IF NOT EXISTS leave_policies (
			id TEXT PRIMARY KEY,
			org_id TEXT NOT NULL UNIQUE,
			annual_allowance INT NOT NULL,
			carryover_days INT NOT NULL,
			leave_year_start_month INT NOT NULL,
			leave_year_start_day INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS leave_allowance_overrides (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			org_id TEXT NOT NULL,
			year INT,
			allowance_days INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS leave_allowance_overrides_user_year_idx
			ON leave_allowance_overrides (user_id, year) WHERE year IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS leave_allowance_overrides_user_unscoped_idx
			ON leave_allowance_overrides (user_id) WHERE year IS NULL`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// truncateTables clears every table between tests.
func truncateTables(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	tables := []string{
		"leave_requests",
		"comp_time_entries",
		"comp_time_usages",
		"leave_policies",
		"leave_allowance_overrides",
	}

	for _, table := range tables {
		if _, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
