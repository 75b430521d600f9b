package pages

import "log/slog"

const (
	termsCheckbox  = "#termsofservice"
	checkoutButton = "#checkout"
)

// CheckoutPage is the checkout area of the cart page
type CheckoutPage struct {
	driver Driver
	logger *slog.Logger
}

// NewCheckoutPage creates a new CheckoutPage
func NewCheckoutPage(d Driver, logger *slog.Logger) *CheckoutPage {
	return &CheckoutPage{driver: d, logger: orDefault(logger)}
}

// AgreeToTerms ticks the terms of service checkbox
func (p *CheckoutPage) AgreeToTerms() error {
	p.logger.Info("Agreeing to terms of service")
	return p.driver.Check(termsCheckbox)
}

// ProceedToCheckout clicks the checkout button
func (p *CheckoutPage) ProceedToCheckout() error {
	p.logger.Info("Proceed to checkout")
	return p.driver.Click(checkoutButton)
}
