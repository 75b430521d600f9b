package pages

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopqa/checkout-e2e/internal/models"
)

const (
	successMessage   = ".order-completed .title"
	orderNumberLine  = ".order-completed .details li:has-text('Order number:')"
	orderDetailsLink = "a:has-text('Click here for order details')"
)

// OrderCompletionPage is the page shown after an order is placed
type OrderCompletionPage struct {
	driver Driver
	logger *slog.Logger
}

// NewOrderCompletionPage creates a new OrderCompletionPage
func NewOrderCompletionPage(d Driver, logger *slog.Logger) *OrderCompletionPage {
	return &OrderCompletionPage{driver: d, logger: orDefault(logger)}
}

// ConfirmAndValidateOrder checks the success message, reads the order number
// and opens the order details.
func (p *OrderCompletionPage) ConfirmAndValidateOrder() (models.OrderConfirmation, error) {
	p.logger.Info("Validating order completion page")

	message, err := p.driver.Text(successMessage)
	if err != nil {
		return models.OrderConfirmation{}, err
	}
	p.logger.Info("Success message found", "message", message)
	if !strings.Contains(message, models.SuccessMessage) {
		return models.OrderConfirmation{}, fmt.Errorf("success message not found, got %q", message)
	}

	line, err := p.driver.Text(orderNumberLine)
	if err != nil {
		return models.OrderConfirmation{}, err
	}
	orderNumber, err := models.ParseOrderNumber(line)
	if err != nil {
		return models.OrderConfirmation{}, err
	}
	p.logger.Info("Extracted order number", "order_number", orderNumber)

	if err := p.driver.Click(orderDetailsLink); err != nil {
		return models.OrderConfirmation{}, err
	}
	p.logger.Info("Navigated to order details page", "order_number", orderNumber)

	return models.OrderConfirmation{Message: message, OrderNumber: orderNumber}, nil
}
