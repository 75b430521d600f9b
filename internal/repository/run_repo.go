package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopqa/checkout-e2e/internal/database"
	"github.com/shopqa/checkout-e2e/internal/models"
)

// ErrRunNotFound is returned when no run has the requested ID
var ErrRunNotFound = errors.New("checkout run not found")

// RunRepository stores checkout runs in PostgreSQL
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a repository on the shared connection
func NewRunRepository() *RunRepository {
	return &RunRepository{
		db: database.DB,
	}
}

// NewRunRepositoryWithDB creates a repository with a specific database connection
func NewRunRepositoryWithDB(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun inserts a newly started run
func (r *RunRepository) CreateRun(run *models.CheckoutRun) error {
	query := `
		INSERT INTO checkout_runs (id, status, base_url, started_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(query, run.ID, run.Status, run.BaseURL, run.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create checkout run: %w", err)
	}
	return nil
}

// UpdateRun writes the outcome of a run
func (r *RunRepository) UpdateRun(run *models.CheckoutRun) error {
	query := `
		UPDATE checkout_runs
		SET status = $1, failed_step = $2, failure_reason = $3, screenshot_path = $4,
		    order_number = $5, item_count = $6, subtotal_cents = $7, finished_at = $8
		WHERE id = $9
	`

	var finishedAt sql.NullTime
	if !run.FinishedAt.IsZero() {
		finishedAt = sql.NullTime{Time: run.FinishedAt, Valid: true}
	}

	result, err := r.db.Exec(query,
		run.Status,
		run.FailedStep,
		run.FailureReason,
		run.ScreenshotPath,
		run.OrderNumber,
		run.ItemCount,
		int64(run.Subtotal),
		finishedAt,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update checkout run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrRunNotFound
	}
	return nil
}

const selectRun = `
	SELECT id, status, base_url, failed_step, failure_reason, screenshot_path,
	       order_number, item_count, subtotal_cents, started_at, finished_at
	FROM checkout_runs
`

// GetRun retrieves a run by ID
func (r *RunRepository) GetRun(id string) (*models.CheckoutRun, error) {
	run, err := scanRun(r.db.QueryRow(selectRun+" WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout run: %w", err)
	}
	return run, nil
}

// ListRecentRuns returns up to limit runs, newest first
func (r *RunRepository) ListRecentRuns(limit int) ([]*models.CheckoutRun, error) {
	rows, err := r.db.Query(selectRun+" ORDER BY started_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkout runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.CheckoutRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checkout run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list checkout runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*models.CheckoutRun, error) {
	run := &models.CheckoutRun{}
	var subtotal int64
	var finishedAt sql.NullTime

	err := s.Scan(
		&run.ID,
		&run.Status,
		&run.BaseURL,
		&run.FailedStep,
		&run.FailureReason,
		&run.ScreenshotPath,
		&run.OrderNumber,
		&run.ItemCount,
		&subtotal,
		&run.StartedAt,
		&finishedAt,
	)
	if err != nil {
		return nil, err
	}

	run.Subtotal = models.Money(subtotal)
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	return run, nil
}
