package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shopqa/checkout-e2e/internal/browser"
	"github.com/shopqa/checkout-e2e/internal/config"
	"github.com/shopqa/checkout-e2e/internal/database"
	"github.com/shopqa/checkout-e2e/internal/repository"
	"github.com/shopqa/checkout-e2e/internal/services"
	"github.com/shopqa/checkout-e2e/internal/testdata"
)

var _ services.Browser = (*browser.Driver)(nil)

// RunOptions configures a single checkout run from the command line
type RunOptions struct {
	Browser           *config.BrowserConfig
	ExpectedItemCount int
	// Record stores the run in postgres instead of process memory
	Record bool
	Output io.Writer
}

// OpenRunRepository returns the postgres run history when record is set and
// an in-memory one otherwise. The returned func releases the connection.
func OpenRunRepository(record bool) (services.RunRepository, func(), error) {
	if !record {
		return repository.NewMemoryRunRepository(), func() {}, nil
	}

	if err := database.Connect(os.Getenv); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(database.DB); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return repository.NewRunRepository(), func() { database.Close() }, nil
}

// RunCheckout launches the browser and drives one checkout against the shop
func RunCheckout(ctx context.Context, opts RunOptions, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := testdata.Load(opts.Browser.TestDataPath)
	if err != nil {
		return err
	}

	repo, closeRepo, err := OpenRunRepository(opts.Record)
	if err != nil {
		return err
	}
	defer closeRepo()

	driver, err := browser.Launch(opts.Browser, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := driver.Close(); err != nil {
			logger.Warn("Failed to close browser", "error", err)
		}
	}()

	checkout := services.NewCheckoutService(driver, data, services.NewRunService(repo, logger), services.CheckoutOptions{
		BaseURL:           opts.Browser.BaseURL,
		ScreenshotDir:     opts.Browser.ScreenshotDir,
		ExpectedItemCount: opts.ExpectedItemCount,
	}, logger)

	result, runErr := checkout.Run(ctx)
	if result != nil && opts.Output != nil {
		if result.Cart != nil {
			RenderCart(opts.Output, result.Cart)
		}
		RenderRun(opts.Output, result.Run)
		if len(result.FailedProducts) > 0 {
			fmt.Fprintf(opts.Output, "Products not added: %v\n", result.FailedProducts)
		}
	}
	return runErr
}
