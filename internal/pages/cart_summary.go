package pages

import (
	"errors"
	"log/slog"

	"github.com/shopqa/checkout-e2e/internal/cart"
	"github.com/shopqa/checkout-e2e/internal/models"
)

const cartLink = "a.ico-cart"

// CartSummaryPage reads the shopping cart and validates it
type CartSummaryPage struct {
	driver    Driver
	selectors cart.Selectors
	extractor *cart.Extractor
	validator *cart.Validator
	logger    *slog.Logger
}

// NewCartSummaryPage creates a CartSummaryPage using the default cart selectors
func NewCartSummaryPage(d Driver, logger *slog.Logger) *CartSummaryPage {
	logger = orDefault(logger)
	extractor := cart.NewExtractor(cart.DefaultSelectors, logger)
	return &CartSummaryPage{
		driver:    d,
		selectors: cart.DefaultSelectors,
		extractor: extractor,
		validator: cart.NewValidator(extractor, logger),
		logger:    logger,
	}
}

// NavigateToCart opens the cart from the header link and waits for the cart table
func (p *CartSummaryPage) NavigateToCart() error {
	p.logger.Info("Navigating to cart page")
	if err := p.driver.ScrollToTop(); err != nil {
		return err
	}
	if err := p.driver.Click(cartLink); err != nil {
		return err
	}
	if err := p.driver.WaitVisible(p.selectors.CartContainer, 0); err != nil {
		return err
	}
	p.logger.Info("Cart page loaded successfully")
	return nil
}

// ItemCount returns the number of cart rows
func (p *CartSummaryPage) ItemCount() (int, error) {
	rows, err := p.rows(cart.AnyCount)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// CartDetails extracts the readable cart rows
func (p *CartSummaryPage) CartDetails() ([]models.CartLineItem, error) {
	p.logger.Info("Extracting cart details")
	rows, err := p.rows(cart.AnyCount)
	if err != nil {
		return nil, err
	}
	return p.extractor.Extract(rows), nil
}

// TotalPrice sums the line totals of every readable row
func (p *CartSummaryPage) TotalPrice() (models.Money, error) {
	items, err := p.CartDetails()
	if err != nil {
		return 0, err
	}
	total, err := models.SumLineTotals(items)
	if err != nil {
		return 0, err
	}
	p.logger.Info("Total price of items in cart", "total", total.String())
	return total, nil
}

// Validate checks the cart against expectedCount (cart.AnyCount to skip)
// and reconciles the rows with the displayed subtotal.
func (p *CartSummaryPage) Validate(expectedCount int) (*models.CartSnapshot, error) {
	rows, err := p.rows(expectedCount)
	if err != nil {
		return nil, err
	}

	var displayed models.Money
	if len(rows) > 0 {
		text, err := p.driver.Text(p.selectors.Subtotal)
		if err != nil {
			return nil, err
		}
		displayed, err = models.ParseMoney(text)
		if err != nil {
			return nil, err
		}
	}

	return p.validator.Validate(rows, displayed, expectedCount)
}

// rows treats a cart that never renders a row as empty, unless rows were
// expected, in which case the timeout is returned
func (p *CartSummaryPage) rows(expectedCount int) ([]cart.Row, error) {
	rows, err := p.driver.FindAll(p.selectors.Row)
	if errors.Is(err, models.ErrTimeout) && (expectedCount == cart.AnyCount || expectedCount == 0) {
		p.logger.Warn("No cart rows rendered", "selector", p.selectors.Row)
		return nil, nil
	}
	return rows, err
}
