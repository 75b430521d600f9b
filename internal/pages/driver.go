// Package pages holds one page object per screen of the demo web shop's
// checkout journey.
package pages

import (
	"log/slog"
	"time"

	"github.com/shopqa/checkout-e2e/internal/cart"
)

// Driver is the subset of the browser driver the page objects use
type Driver interface {
	Goto(url string) error
	URL() string
	WaitVisible(selector string, timeout time.Duration) error
	IsVisible(selector string) bool
	Click(selector string) error
	Fill(selector, value string) error
	Press(selector, key string) error
	Check(selector string) error
	SelectOption(selector, label string) error
	Text(selector string) (string, error)
	ScrollIntoView(selector string) error
	ScrollToTop() error
	ScrollToBottom() error
	FindAll(selector string) ([]cart.Row, error)
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
