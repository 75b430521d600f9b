package repository

import (
	"sort"
	"sync"

	"github.com/shopqa/checkout-e2e/internal/models"
)

// MemoryRunRepository keeps runs for the lifetime of the process
type MemoryRunRepository struct {
	mu   sync.RWMutex
	runs map[string]models.CheckoutRun
}

// NewMemoryRunRepository creates an empty in-memory repository
func NewMemoryRunRepository() *MemoryRunRepository {
	return &MemoryRunRepository{runs: make(map[string]models.CheckoutRun)}
}

// CreateRun stores a copy of run
func (r *MemoryRunRepository) CreateRun(run *models.CheckoutRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = *run
	return nil
}

// UpdateRun replaces the stored copy of run
func (r *MemoryRunRepository) UpdateRun(run *models.CheckoutRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[run.ID]; !ok {
		return ErrRunNotFound
	}
	r.runs[run.ID] = *run
	return nil
}

// GetRun returns a copy of the run with the given id
func (r *MemoryRunRepository) GetRun(id string) (*models.CheckoutRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return &run, nil
}

// ListRecentRuns returns up to limit runs, newest first
func (r *MemoryRunRepository) ListRecentRuns(limit int) ([]*models.CheckoutRun, error) {
	r.mu.RLock()
	runs := make([]*models.CheckoutRun, 0, len(r.runs))
	for _, run := range r.runs {
		run := run
		runs = append(runs, &run)
	}
	r.mu.RUnlock()

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit >= 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
