package pages

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopqa/checkout-e2e/internal/testdata"
)

const (
	searchField       = "#small-searchterms"
	searchButton      = "input[value='Search']"
	autocompleteList  = ".ui-autocomplete"
	headerLogo        = ".header-logo"
	searchResultTitle = ".search-results .product-title a"
	addedNotification = ".bar-notification.success"
	autocompleteWait  = 3 * time.Second
)

// SearchPage finds products through the header search box and adds them to the cart
type SearchPage struct {
	driver  Driver
	baseURL string
	logger  *slog.Logger
}

// NewSearchPage creates a SearchPage for the shop at baseURL
func NewSearchPage(d Driver, baseURL string, logger *slog.Logger) *SearchPage {
	return &SearchPage{
		driver:  d,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  orDefault(logger),
	}
}

// NavigateToHomepage opens the home page unless it is already open
func (p *SearchPage) NavigateToHomepage() error {
	if strings.TrimRight(p.driver.URL(), "/") == p.baseURL {
		return nil
	}
	p.logger.Info("Navigating to homepage")
	if err := p.driver.Goto(p.baseURL); err != nil {
		return err
	}
	if err := p.driver.WaitVisible(headerLogo, 0); err != nil {
		return err
	}
	p.logger.Info("Homepage loaded successfully")
	return nil
}

// SearchAndSelectProduct opens the product page, preferring the autocomplete
// suggestion and falling back to the search results.
func (p *SearchPage) SearchAndSelectProduct(product testdata.Product) error {
	p.logger.Info("Searching for product", "product", product.Name)
	if err := p.NavigateToHomepage(); err != nil {
		return err
	}
	if err := p.driver.Fill(searchField, product.Name); err != nil {
		return err
	}

	if err := p.driver.WaitVisible(autocompleteList, autocompleteWait); err == nil {
		if err := p.driver.Press(searchField, "ArrowDown"); err != nil {
			return err
		}
		if err := p.driver.Press(searchField, "Enter"); err != nil {
			return err
		}
		p.logger.Info("Selected product from autocomplete", "product", product.Name)
	} else {
		p.logger.Info("No autocomplete, clicking search button", "product", product.Name)
		if err := p.driver.Click(searchButton); err != nil {
			return err
		}
		if err := p.driver.Click(searchResultTitle); err != nil {
			return err
		}
	}

	if product.URL != "" && strings.TrimRight(p.driver.URL(), "/") != strings.TrimRight(product.URL, "/") {
		p.logger.Warn("Unexpected URL", "url", p.driver.URL(), "expected", product.URL)
	}
	p.logger.Info("Navigated to product page", "product", product.Name)
	return nil
}

// AddToCart clicks the product's add button and waits for the success bar
func (p *SearchPage) AddToCart(selector string) error {
	p.logger.Info("Attempting to add product to cart", "selector", selector)
	if err := p.driver.ScrollToBottom(); err != nil {
		return err
	}
	if err := p.driver.ScrollIntoView(selector); err != nil {
		return err
	}
	if err := p.driver.Click(selector); err != nil {
		return err
	}
	if err := p.driver.WaitVisible(addedNotification, 0); err != nil {
		return fmt.Errorf("add to cart not confirmed: %w", err)
	}
	p.logger.Info("Product added to cart successfully")
	return nil
}

// AddProducts adds every product in order. A failing product is logged and
// skipped; the names of the products that failed are returned.
func (p *SearchPage) AddProducts(products []testdata.Product) []string {
	var failed []string
	for _, product := range products {
		p.logger.Info("Processing product", "product", product.Name)
		if err := p.SearchAndSelectProduct(product); err != nil {
			p.logger.Error("Failed to process product", "product", product.Name, "error", err)
			failed = append(failed, product.Name)
			continue
		}
		if err := p.AddToCart(product.AddToCartSelector); err != nil {
			p.logger.Error("Failed to process product", "product", product.Name, "error", err)
			failed = append(failed, product.Name)
			continue
		}
		p.logger.Info("Product added to cart", "product", product.Name)
	}
	return failed
}
