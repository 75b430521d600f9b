package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shopqa/checkout-e2e/internal/cart"
	"github.com/shopqa/checkout-e2e/internal/models"
)

// ValidateCartFile validates a saved cart page and prints the extracted items
func ValidateCartFile(path string, expectedCount int, out io.Writer, logger *slog.Logger) (*models.CartSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cart page: %w", err)
	}
	defer f.Close()

	return ValidateCartHTML(f, expectedCount, out, logger)
}

// ValidateCartHTML runs the cart validator over an HTML cart page
func ValidateCartHTML(r io.Reader, expectedCount int, out io.Writer, logger *slog.Logger) (*models.CartSnapshot, error) {
	page, err := cart.ParseHTML(r, cart.DefaultSelectors)
	if err != nil {
		return nil, err
	}

	rows := page.Rows()
	var displayed models.Money
	if len(rows) > 0 {
		if displayed, err = page.DisplayedSubtotal(); err != nil {
			return nil, fmt.Errorf("failed to read subtotal: %w", err)
		}
	}

	validator := cart.NewValidator(cart.NewExtractor(cart.DefaultSelectors, logger), logger)
	snapshot, err := validator.Validate(rows, displayed, expectedCount)
	if err != nil {
		return nil, err
	}
	if out != nil {
		RenderCart(out, snapshot)
	}
	return snapshot, nil
}
