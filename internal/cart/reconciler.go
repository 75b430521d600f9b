package cart

import (
	"fmt"

	"github.com/shopqa/checkout-e2e/internal/models"
)

// Reconcile checks that the line totals add up to the displayed subtotal and
// returns the displayed subtotal when they do.
func Reconcile(items []models.CartLineItem, displayed models.Money) (models.Money, error) {
	calculated, err := models.SumLineTotals(items)
	if err != nil {
		return 0, fmt.Errorf("failed to sum line totals: %w", err)
	}
	if (displayed - calculated).Abs() >= models.SubtotalTolerance {
		return 0, &models.ReconciliationMismatchError{
			Calculated: calculated,
			Displayed:  displayed,
		}
	}
	return displayed, nil
}
