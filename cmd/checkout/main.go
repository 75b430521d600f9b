package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/shopqa/checkout-e2e/internal/cart"
	internalcli "github.com/shopqa/checkout-e2e/internal/cli"
	"github.com/shopqa/checkout-e2e/internal/config"
	"github.com/shopqa/checkout-e2e/internal/handlers"
	"github.com/shopqa/checkout-e2e/internal/logger"
	"github.com/shopqa/checkout-e2e/internal/models"
	"github.com/shopqa/checkout-e2e/internal/services"
)

var version = "0.1.0"

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Drive a full checkout in the browser and validate the cart on the way",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Usage: "shop to test", EnvVars: []string{"BASE_URL"}},
			&cli.StringFlag{Name: "test-data", Usage: "JSON or JSON5 test data file", EnvVars: []string{"TEST_DATA_PATH"}},
			&cli.StringFlag{Name: "screenshot-dir", Usage: "where failure screenshots are written", EnvVars: []string{"SCREENSHOT_DIR"}},
			&cli.BoolFlag{Name: "headed", Usage: "show the browser window"},
			&cli.IntFlag{Name: "expected-count", Value: cart.AnyCount, Usage: "number of cart rows to expect, -1 for any"},
			&cli.BoolFlag{Name: "record", Usage: "record the run in postgres", EnvVars: []string{"RECORD_RUNS"}},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadBrowserConfig(os.Getenv)
			if err != nil {
				return err
			}
			if c.IsSet("base-url") {
				cfg.BaseURL = c.String("base-url")
			}
			if c.IsSet("test-data") {
				cfg.TestDataPath = c.String("test-data")
			}
			if c.IsSet("screenshot-dir") {
				cfg.ScreenshotDir = c.String("screenshot-dir")
			}
			if c.Bool("headed") {
				cfg.Headless = false
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return internalcli.RunCheckout(ctx, internalcli.RunOptions{
				Browser:           cfg,
				ExpectedItemCount: c.Int("expected-count"),
				Record:            c.Bool("record"),
				Output:            c.App.Writer,
			}, slog.Default())
		},
	}
}

// ValidateCartCommand returns the validate-cart command
func ValidateCartCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate-cart",
		Usage:     "Validate a saved cart page without a browser",
		ArgsUsage: "<cart.html>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "expected-count", Value: cart.AnyCount, Usage: "number of cart rows to expect, -1 for any"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one cart page, got %d arguments", c.NArg())
			}
			_, err := internalcli.ValidateCartFile(c.Args().First(), c.Int("expected-count"), c.App.Writer, slog.Default())
			return err
		},
	}
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the local fake shop for hermetic browser runs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Value: "checkout.e2e@example.com", Usage: "account allowed to log in"},
			&cli.StringFlag{Name: "password", Value: "ChangeMe123!", Usage: "password of the account"},
			&cli.StringFlag{Name: "subtotal-offset", Usage: "amount added to the displayed cart subtotal, e.g. 0.50"},
		},
		Action: func(c *cli.Context) error {
			var offset models.Money
			if raw := c.String("subtotal-offset"); raw != "" {
				var err error
				if offset, err = models.ParseMoney(raw); err != nil {
					return fmt.Errorf("invalid subtotal offset: %w", err)
				}
			}

			store := handlers.NewStore(handlers.StoreOptions{
				Accounts:       map[string]string{c.String("email"): c.String("password")},
				SubtotalOffset: offset,
			})
			deps, err := internalcli.BuildShop(config.LoadServerConfig(os.Getenv), store)
			if err != nil {
				return err
			}
			return internalcli.RunServe(deps)
		},
	}
}

// HistoryCommand returns the history command
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded checkout runs",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of runs to show"},
		},
		Action: func(c *cli.Context) error {
			repo, closeRepo, err := internalcli.OpenRunRepository(true)
			if err != nil {
				return err
			}
			defer closeRepo()

			return internalcli.ShowHistory(services.NewRunService(repo, slog.Default()), c.Int("limit"), c.App.Writer)
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found, using environment variables")
	}

	logging := config.LoadLoggingConfig(os.Getenv)
	logger.New(logger.Options{Level: logging.Level, Format: logging.Format})

	app := &cli.App{
		Name:    "checkout",
		Usage:   "End-to-end checkout tests for the demo web shop",
		Version: version,
		Commands: []*cli.Command{
			RunCommand(),
			ValidateCartCommand(),
			ServeCommand(),
			HistoryCommand(),
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
