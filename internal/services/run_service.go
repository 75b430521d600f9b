package services

import (
	"fmt"
	"log/slog"

	"github.com/shopqa/checkout-e2e/internal/models"
)

// RunRepository defines the interface for checkout run persistence
type RunRepository interface {
	CreateRun(run *models.CheckoutRun) error
	UpdateRun(run *models.CheckoutRun) error
	GetRun(id string) (*models.CheckoutRun, error)
	ListRecentRuns(limit int) ([]*models.CheckoutRun, error)
}

// RunService records the lifecycle of checkout runs
type RunService interface {
	StartRun(baseURL string) (*models.CheckoutRun, error)
	PassRun(run *models.CheckoutRun, orderNumber string) error
	FailRun(run *models.CheckoutRun, step, reason, screenshotPath string) error
	RecentRuns(limit int) ([]*models.CheckoutRun, error)
}

// RunServiceImpl implements RunService. Storage failures never fail a
// run; they are logged and the run carries on.
type RunServiceImpl struct {
	runRepo RunRepository
	logger  *slog.Logger
}

// NewRunService creates a new run service
func NewRunService(runRepo RunRepository, logger *slog.Logger) RunService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RunServiceImpl{
		runRepo: runRepo,
		logger:  logger,
	}
}

// StartRun creates a running checkout run against baseURL
func (s *RunServiceImpl) StartRun(baseURL string) (*models.CheckoutRun, error) {
	run, err := models.NewCheckoutRun(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid run: %w", err)
	}

	if err := s.runRepo.CreateRun(run); err != nil {
		s.logger.Warn("Failed to record run start", "run_id", run.ID, "error", err)
	}
	return run, nil
}

// PassRun marks run as passed with the confirmed order number
func (s *RunServiceImpl) PassRun(run *models.CheckoutRun, orderNumber string) error {
	if err := run.Pass(orderNumber); err != nil {
		return err
	}
	s.save(run)
	return nil
}

// FailRun marks run as failed at step
func (s *RunServiceImpl) FailRun(run *models.CheckoutRun, step, reason, screenshotPath string) error {
	if err := run.Fail(step, reason, screenshotPath); err != nil {
		return err
	}
	s.save(run)
	return nil
}

// RecentRuns returns up to limit runs, newest first
func (s *RunServiceImpl) RecentRuns(limit int) ([]*models.CheckoutRun, error) {
	runs, err := s.runRepo.ListRecentRuns(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

func (s *RunServiceImpl) save(run *models.CheckoutRun) {
	if err := s.runRepo.UpdateRun(run); err != nil {
		s.logger.Warn("Failed to record run outcome", "run_id", run.ID, "status", run.Status, "error", err)
	}
}
