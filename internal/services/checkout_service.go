package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopqa/checkout-e2e/internal/models"
	"github.com/shopqa/checkout-e2e/internal/pages"
	"github.com/shopqa/checkout-e2e/internal/testdata"
)

// Checkout step names, in execution order
const (
	StepLogin                = "login"
	StepSelectHomepageItem   = "select item from homepage"
	StepAddProducts          = "search and add multiple products"
	StepValidateCart         = "validate cart summary"
	StepProceedToCheckout    = "proceed to checkout"
	StepEnterBillingAddress  = "enter billing address"
	StepSubmitOrder          = "submit order"
	StepValidateConfirmation = "validate order confirmation"
)

// Browser is the page driver plus screenshot capture
type Browser interface {
	pages.Driver
	Screenshot(path string) error
}

// StepError reports the checkout step that failed
type StepError struct {
	Step       string
	Screenshot string
	Err        error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// CheckoutOptions configures a checkout run. ExpectedItemCount is compared
// with the number of cart rows; cart.AnyCount skips the comparison.
type CheckoutOptions struct {
	BaseURL           string
	ScreenshotDir     string
	ExpectedItemCount int
}

// CheckoutResult is what a run produced, filled in as far as it got
type CheckoutResult struct {
	Run            *models.CheckoutRun
	Cart           *models.CartSnapshot
	Confirmation   models.OrderConfirmation
	FailedProducts []string
}

type step struct {
	name string
	run  func() error
}

// CheckoutService drives the whole purchase through the page objects
type CheckoutService struct {
	browser Browser
	data    *testdata.TestData
	runs    RunService
	opts    CheckoutOptions
	logger  *slog.Logger
	now     func() time.Time
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(browser Browser, data *testdata.TestData, runs RunService, opts CheckoutOptions, logger *slog.Logger) *CheckoutService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutService{
		browser: browser,
		data:    data,
		runs:    runs,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// Run executes the checkout steps strictly in order and stops at the first
// failure, returning a *StepError. Cancellation is checked between steps.
func (s *CheckoutService) Run(ctx context.Context) (*CheckoutResult, error) {
	run, err := s.runs.StartRun(s.opts.BaseURL)
	if err != nil {
		return nil, err
	}
	result := &CheckoutResult{Run: run}
	log := s.logger.With("run_id", run.ID)

	var completion *pages.OrderCompletionPage
	steps := []step{
		{StepLogin, func() error {
			login := pages.NewLoginPage(s.browser, log)
			if err := login.Open(s.opts.BaseURL); err != nil {
				return err
			}
			return login.Login(s.data.Credentials.Email, s.data.Credentials.Password)
		}},
		{StepSelectHomepageItem, func() error {
			home := pages.NewHomePage(s.browser, log)
			creds := s.data.Credentials
			return firstError(
				home.ScrollToItem,
				home.ChooseItem,
				func() error { return home.EnterRecipientInformation(creds.RecipientName, creds.RecipientEmail) },
				home.AddToCart,
				home.ItemAddedToCart,
			)
		}},
		{StepAddProducts, func() error {
			search := pages.NewSearchPage(s.browser, s.opts.BaseURL, log)
			result.FailedProducts = search.AddProducts(s.data.Products)
			log.Info("All products processed", "failed", len(result.FailedProducts))
			return nil
		}},
		{StepValidateCart, func() error {
			summary := pages.NewCartSummaryPage(s.browser, log)
			if err := summary.NavigateToCart(); err != nil {
				return err
			}
			snapshot, err := summary.Validate(s.opts.ExpectedItemCount)
			if err != nil {
				return err
			}
			result.Cart = snapshot
			run.RecordCart(snapshot)
			return nil
		}},
		{StepProceedToCheckout, func() error {
			checkout := pages.NewCheckoutPage(s.browser, log)
			return firstError(checkout.AgreeToTerms, checkout.ProceedToCheckout)
		}},
		{StepEnterBillingAddress, func() error {
			return pages.NewBillingPage(s.browser, log).EnterBillingAddress(s.data.ShippingBillingAddress)
		}},
		{StepSubmitOrder, func() error {
			var err error
			completion, err = pages.NewSubmitOrderPage(s.browser, log).SubmitOrder()
			return err
		}},
		{StepValidateConfirmation, func() error {
			confirmation, err := completion.ConfirmAndValidateOrder()
			if err != nil {
				return err
			}
			result.Confirmation = confirmation
			return nil
		}},
	}

	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return result, s.fail(log, run, st.name, err, false)
		}

		log.Info("Step started", "step", st.name)
		if err := st.run(); err != nil {
			return result, s.fail(log, run, st.name, err, true)
		}
		log.Info("Step completed", "step", st.name)
	}

	if err := s.runs.PassRun(run, result.Confirmation.OrderNumber); err != nil {
		return result, err
	}
	log.Info("Test completed successfully", "order_number", result.Confirmation.OrderNumber, "duration", run.Duration())
	return result, nil
}

func (s *CheckoutService) fail(log *slog.Logger, run *models.CheckoutRun, stepName string, cause error, capture bool) error {
	log.Error("Step failed", "step", stepName, "error", cause)

	var screenshot string
	if capture {
		path := filepath.Join(s.opts.ScreenshotDir, ScreenshotName(stepName, s.now()))
		if err := s.browser.Screenshot(path); err != nil {
			log.Warn("Failed to capture screenshot", "path", path, "error", err)
		} else {
			screenshot = path
			log.Info("Saved failure screenshot", "path", path)
		}
	}

	if err := s.runs.FailRun(run, stepName, cause.Error(), screenshot); err != nil {
		log.Warn("Failed to mark run as failed", "error", err)
	}
	return &StepError{Step: stepName, Screenshot: screenshot, Err: cause}
}

// ScreenshotName builds "<step_slug>_error_<YYYYmmdd_HHMMSS>.png"
func ScreenshotName(stepName string, at time.Time) string {
	slug := strings.Join(strings.Fields(strings.ToLower(stepName)), "_")
	return fmt.Sprintf("%s_error_%s.png", slug, at.Format("20060102_150405"))
}

func firstError(actions ...func() error) error {
	for _, action := range actions {
		if err := action(); err != nil {
			return err
		}
	}
	return nil
}
