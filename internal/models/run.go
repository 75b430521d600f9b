package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents valid checkout run states
type RunStatus string

// Run statuses
const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
)

// CheckoutRun is one execution of the end-to-end checkout flow
type CheckoutRun struct {
	ID             string
	Status         RunStatus
	BaseURL        string
	FailedStep     string
	FailureReason  string
	ScreenshotPath string
	OrderNumber    string
	ItemCount      int
	Subtotal       Money
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Domain errors
var (
	ErrInvalidBaseURL          = errors.New("base URL cannot be empty")
	ErrInvalidStatusTransition = errors.New("invalid run status transition")
	ErrMissingOrderNumber      = errors.New("order number cannot be empty")
	ErrMissingFailedStep       = errors.New("failed step cannot be empty")
)

// NewCheckoutRun starts a new run against baseURL
func NewCheckoutRun(baseURL string) (*CheckoutRun, error) {
	if baseURL == "" {
		return nil, ErrInvalidBaseURL
	}

	return &CheckoutRun{
		ID:        uuid.New().String(),
		Status:    RunStatusRunning,
		BaseURL:   baseURL,
		StartedAt: time.Now(),
	}, nil
}

// RecordCart stores the validated cart figures on the run
func (r *CheckoutRun) RecordCart(snapshot *CartSnapshot) {
	if snapshot == nil {
		return
	}
	r.ItemCount = snapshot.Len()
	r.Subtotal = snapshot.Subtotal()
}

// Pass marks the run as passed with the confirmed order number
func (r *CheckoutRun) Pass(orderNumber string) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot pass run with status %s", ErrInvalidStatusTransition, r.Status)
	}
	if orderNumber == "" {
		return ErrMissingOrderNumber
	}

	r.Status = RunStatusPassed
	r.OrderNumber = orderNumber
	r.FinishedAt = time.Now()
	return nil
}

// Fail marks the run as failed at step
func (r *CheckoutRun) Fail(step, reason, screenshotPath string) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot fail run with status %s", ErrInvalidStatusTransition, r.Status)
	}
	if step == "" {
		return ErrMissingFailedStep
	}

	r.Status = RunStatusFailed
	r.FailedStep = step
	r.FailureReason = reason
	r.ScreenshotPath = screenshotPath
	r.FinishedAt = time.Now()
	return nil
}

// IsRunning returns true if the run has not finished yet
func (r *CheckoutRun) IsRunning() bool {
	return r.Status == RunStatusRunning
}

// IsPassed returns true if the run passed
func (r *CheckoutRun) IsPassed() bool {
	return r.Status == RunStatusPassed
}

// IsFailed returns true if the run failed
func (r *CheckoutRun) IsFailed() bool {
	return r.Status == RunStatusFailed
}

// Duration returns how long the run took, or zero while it is still running
func (r *CheckoutRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
