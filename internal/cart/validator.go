package cart

import (
	"log/slog"

	"github.com/shopqa/checkout-e2e/internal/models"
)

// AnyCount disables the item count check in Validate
const AnyCount = -1

// Validator extracts, counts and reconciles the cart in a single pass.
// Callers must wait for the cart to render before calling Validate.
type Validator struct {
	extractor *Extractor
	logger    *slog.Logger
}

// NewValidator creates a validator using the given extractor
func NewValidator(extractor *Extractor, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		extractor: extractor,
		logger:    logger,
	}
}

// Validate checks the row count against expectedCount (unless AnyCount), extracts
// the line items and reconciles them with the displayed subtotal.
func (v *Validator) Validate(rows []Row, displayed models.Money, expectedCount int) (*models.CartSnapshot, error) {
	v.logger.Info("Validating cart details")

	itemCount := len(rows)
	if expectedCount != AnyCount && itemCount != expectedCount {
		return nil, &models.UnexpectedItemCountError{Expected: expectedCount, Actual: itemCount}
	}

	items := v.extractor.Extract(rows)
	if len(items) == 0 {
		return nil, models.ErrEmptyCart
	}

	subtotal, err := Reconcile(items, displayed)
	if err != nil {
		return nil, err
	}

	snapshot := models.NewCartSnapshot(items, subtotal)
	v.logger.Info("Cart validated successfully",
		"items", itemCount,
		"extracted", snapshot.Len(),
		"subtotal", subtotal.String())
	return snapshot, nil
}
