package pages

import "log/slog"

const confirmButton = "input[value='Confirm']"

// SubmitOrderPage is the confirm step of the checkout
type SubmitOrderPage struct {
	driver Driver
	logger *slog.Logger
}

// NewSubmitOrderPage creates a new SubmitOrderPage
func NewSubmitOrderPage(d Driver, logger *slog.Logger) *SubmitOrderPage {
	return &SubmitOrderPage{driver: d, logger: orDefault(logger)}
}

// SubmitOrder places the order and hands over to the completion page
func (p *SubmitOrderPage) SubmitOrder() (*OrderCompletionPage, error) {
	p.logger.Info("Submitting order")
	if err := p.driver.Click(confirmButton); err != nil {
		return nil, err
	}
	p.logger.Info("Confirm button clicked, waiting for thank you page")
	return NewOrderCompletionPage(p.driver, p.logger), nil
}
