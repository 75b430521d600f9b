package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Schema creates the checkout run history table
const Schema = `
	CREATE TABLE IF NOT EXISTS checkout_runs (
		id UUID PRIMARY KEY,
		status VARCHAR(20) NOT NULL,
		base_url TEXT NOT NULL,
		failed_step VARCHAR(100) NOT NULL DEFAULT '',
		failure_reason TEXT NOT NULL DEFAULT '',
		screenshot_path TEXT NOT NULL DEFAULT '',
		order_number VARCHAR(50) NOT NULL DEFAULT '',
		item_count INTEGER NOT NULL DEFAULT 0,
		subtotal_cents BIGINT NOT NULL DEFAULT 0,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_checkout_runs_started_at ON checkout_runs(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_checkout_runs_status ON checkout_runs(status);
`

// RunMigrations creates the necessary database tables
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create checkout_runs table: %w", err)
	}

	slog.Info("Database migrations completed successfully")
	return nil
}
