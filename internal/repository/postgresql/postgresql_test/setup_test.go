package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/database"
)

// TestDatabaseSetup holds a connection to the database named by TEST_DATABASE_URL.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects and applies the schema. Tests are skipped when
// TEST_DATABASE_URL is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(db.Close)

	setup := &TestDatabaseSetup{DB: db}
	if err := setup.migrate(ctx); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := setup.TruncateAllTables(ctx); err != nil {
		t.Fatalf("failed to truncate test database: %v", err)
	}

	return setup
}

func (t *TestDatabaseSetup) migrate(ctx context.Context) error {
	_, file, _, _ := runtime.Caller(0)
	schema, err := os.ReadFile(filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations", "0001_init.sql"))
	if err != nil {
		return err
	}
	_, err = t.DB.Exec(ctx, string(schema))
	return err
}

// TruncateAllTables removes every row from the schema's tables.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"attendances",
		"shift_schedules",
		"shifts",
		"office_settings",
		"users",
	}

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// CreateUser inserts an active employee in categoryID and returns its id.
func (t *TestDatabaseSetup) CreateUser(ctx context.Context, username, categoryID string) (string, error) {
	var id string
	err := t.DB.QueryRow(ctx, `
		INSERT INTO users (name, username, password_hash, role, category_id)
		VALUES ($1, $2, 'x', 'employee', $3)
		RETURNING id
	`, username, username, categoryID).Scan(&id)
	return id, err
}
