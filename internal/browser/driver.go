// Package browser drives a Chromium page through Playwright on behalf of the
// page objects.
package browser

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/shopqa/checkout-e2e/internal/cart"
	"github.com/shopqa/checkout-e2e/internal/config"
	"github.com/shopqa/checkout-e2e/internal/models"
)

const (
	viewportWidth  = 1920
	viewportHeight = 1080
)

// Driver wraps a single Playwright page. Every wait is bounded by the
// configured timeout unless the caller passes its own.
type Driver struct {
	page    playwright.Page
	timeout time.Duration
	logger  *slog.Logger
	closers []func() error
}

// Launch starts Playwright and opens a page in a fresh browser context
func Launch(cfg *config.BrowserConfig, logger *slog.Logger) (*Driver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Setting up browser", "headless", cfg.Headless, "timeout", cfg.WaitTimeout)

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
		Args: []string{
			"--disable-popup-blocking",
			"--disable-notifications",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	bctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: viewportWidth, Height: viewportHeight},
	})
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	d := NewDriver(page, cfg.WaitTimeout, logger)
	d.closers = []func() error{
		func() error { return bctx.Close() },
		func() error { return b.Close() },
		pw.Stop,
	}
	return d, nil
}

// NewDriver wraps an existing page. Closing the driver closes only the page.
func NewDriver(page playwright.Page, timeout time.Duration, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	page.SetDefaultTimeout(float64(timeout.Milliseconds()))
	return &Driver{
		page:    page,
		timeout: timeout,
		logger:  logger,
	}
}

// Goto navigates to url and waits for the DOM content to load
func (d *Driver) Goto(url string) error {
	d.logger.Debug("Navigating", "url", url)
	if _, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return d.wrap("goto", url, d.timeout, err)
	}
	return nil
}

// URL returns the current page URL
func (d *Driver) URL() string {
	return d.page.URL()
}

// WaitVisible blocks until selector is visible. A zero timeout uses the driver default.
func (d *Driver) WaitVisible(selector string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = d.timeout
	}
	err := d.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return d.wrap("wait", selector, timeout, err)
	}
	return nil
}

// IsVisible reports whether selector is visible right now, without waiting
func (d *Driver) IsVisible(selector string) bool {
	visible, err := d.page.Locator(selector).First().IsVisible()
	return err == nil && visible
}

// Click clicks the first element matching selector
func (d *Driver) Click(selector string) error {
	if err := d.WaitVisible(selector, 0); err != nil {
		return err
	}
	if err := d.page.Locator(selector).First().Click(); err != nil {
		return d.wrap("click", selector, d.timeout, err)
	}
	return nil
}

// Fill replaces the value of the input matching selector
func (d *Driver) Fill(selector, value string) error {
	if err := d.WaitVisible(selector, 0); err != nil {
		return err
	}
	if err := d.page.Locator(selector).First().Fill(value); err != nil {
		return d.wrap("fill", selector, d.timeout, err)
	}
	return nil
}

// Press sends key to the element matching selector
func (d *Driver) Press(selector, key string) error {
	if err := d.page.Locator(selector).First().Press(key); err != nil {
		return d.wrap("press", selector, d.timeout, err)
	}
	return nil
}

// Check ticks the checkbox matching selector
func (d *Driver) Check(selector string) error {
	if err := d.WaitVisible(selector, 0); err != nil {
		return err
	}
	if err := d.page.Locator(selector).First().Check(); err != nil {
		return d.wrap("check", selector, d.timeout, err)
	}
	return nil
}

// SelectOption picks the option with the given visible label
func (d *Driver) SelectOption(selector, label string) error {
	_, err := d.page.Locator(selector).First().SelectOption(playwright.SelectOptionValues{
		Labels: playwright.StringSlice(label),
	})
	if err != nil {
		return d.wrap("select", selector, d.timeout, err)
	}
	return nil
}

// Text returns the trimmed text content of the first element matching selector
func (d *Driver) Text(selector string) (string, error) {
	loc := d.page.Locator(selector).First()
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateAttached,
	}); err != nil {
		return "", d.wrap("text", selector, d.timeout, err)
	}
	text, err := loc.TextContent()
	if err != nil {
		return "", d.wrap("text", selector, d.timeout, err)
	}
	return strings.TrimSpace(text), nil
}

// ScrollIntoView scrolls until selector is in the viewport
func (d *Driver) ScrollIntoView(selector string) error {
	if err := d.page.Locator(selector).First().ScrollIntoViewIfNeeded(); err != nil {
		return d.wrap("scroll", selector, d.timeout, err)
	}
	return nil
}

// ScrollToTop scrolls the window to the top of the page
func (d *Driver) ScrollToTop() error {
	_, err := d.page.Evaluate("window.scrollTo(0, 0)")
	return err
}

// ScrollToBottom scrolls the window to the bottom of the page
func (d *Driver) ScrollToBottom() error {
	_, err := d.page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")
	return err
}

// FindAll waits for the first match of selector and returns every match as a cart row
func (d *Driver) FindAll(selector string) ([]cart.Row, error) {
	loc := d.page.Locator(selector)
	if err := loc.First().WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateAttached,
	}); err != nil {
		return nil, d.wrap("find", selector, d.timeout, err)
	}

	matches, err := loc.All()
	if err != nil {
		return nil, d.wrap("find", selector, d.timeout, err)
	}

	rows := make([]cart.Row, len(matches))
	for i, m := range matches {
		rows[i] = locatorRow{loc: m}
	}
	return rows, nil
}

// Screenshot saves a full-page PNG at path, creating parent directories
func (d *Driver) Screenshot(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create screenshot dir: %w", err)
	}
	if _, err := d.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return fmt.Errorf("failed to take screenshot: %w", err)
	}
	return nil
}

// Close closes the page and, for launched drivers, the context, browser and Playwright
func (d *Driver) Close() error {
	d.logger.Info("Tearing down browser")
	errs := []error{d.page.Close()}
	for _, c := range d.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func (d *Driver) wrap(op, selector string, timeout time.Duration, err error) error {
	return wrapError(op, selector, timeout, err)
}

func wrapError(op, selector string, timeout time.Duration, err error) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return &models.TimeoutError{Selector: selector, Timeout: timeout, Err: err}
	}
	return fmt.Errorf("%s %s: %w", op, selector, err)
}
