package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/shopqa/checkout-e2e/internal/config"
	"github.com/shopqa/checkout-e2e/internal/database"
)

// TestDatabase is an isolated schema holding the run history tables
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
	admin      *sql.DB
}

// localDefaults fill in the docker-compose postgres when POSTGRES_* is unset
var localDefaults = map[string]string{
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "postgres",
	"POSTGRES_HOSTNAME": "localhost",
}

func getenv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return localDefaults[key]
}

// SetupTestDatabase creates a fresh schema, points a connection's search_path
// at it and migrates it. Call Teardown to drop the schema.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	pgConfig, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		t.Fatalf("Failed to load postgres config: %v", err)
	}

	admin, err := database.Open(pgConfig.ConnectionString())
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}

	td := &TestDatabase{
		SchemaName: "checkout_runs_test_" + uuid.NewString()[:8],
		admin:      admin,
	}
	if _, err := admin.Exec(fmt.Sprintf("CREATE SCHEMA %s", td.SchemaName)); err != nil {
		admin.Close()
		t.Fatalf("Failed to create test schema: %v", err)
	}

	td.DB, err = database.Open(fmt.Sprintf("%s search_path=%s", pgConfig.ConnectionString(), td.SchemaName))
	if err != nil {
		td.Teardown(t)
		t.Fatalf("Failed to connect to test schema: %v", err)
	}

	if err := database.RunMigrations(td.DB); err != nil {
		td.Teardown(t)
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return td
}

// Teardown drops the test schema and closes both connections
func (td *TestDatabase) Teardown(t *testing.T) {
	t.Helper()

	if td.DB != nil {
		td.DB.Close()
	}
	if _, err := td.admin.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", td.SchemaName)); err != nil {
		t.Logf("Warning: Failed to drop test schema %s: %v", td.SchemaName, err)
	}
	td.admin.Close()
}
