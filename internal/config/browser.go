package config

import (
	"fmt"
	"strconv"
	"time"
)

// BrowserConfig holds configuration for the browser-driven checkout run
type BrowserConfig struct {
	BaseURL       string
	Headless      bool
	WaitTimeout   time.Duration
	SlowMo        time.Duration
	ScreenshotDir string
	TestDataPath  string
}

// LoadBrowserConfig loads browser configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	config := &BrowserConfig{
		BaseURL:       getenv("BASE_URL"),
		Headless:      true,
		WaitTimeout:   10 * time.Second,
		ScreenshotDir: getenv("SCREENSHOT_DIR"),
		TestDataPath:  getenv("TEST_DATA_PATH"),
	}

	if config.BaseURL == "" {
		config.BaseURL = "https://demowebshop.tricentis.com" // Default to the public demo shop
	}
	if config.ScreenshotDir == "" {
		config.ScreenshotDir = "screenshots"
	}
	if config.TestDataPath == "" {
		config.TestDataPath = "test_data.json"
	}

	if v := getenv("HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}

	if v := getenv("WAIT_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("WAIT_TIMEOUT_MS must be a positive integer, got %q", v)
		}
		config.WaitTimeout = time.Duration(ms) * time.Millisecond
	}

	if v := getenv("SLOW_MO_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("SLOW_MO_MS must be a non-negative integer, got %q", v)
		}
		config.SlowMo = time.Duration(ms) * time.Millisecond
	}

	return config, nil
}

// WaitTimeoutMS returns the wait timeout in the milliseconds Playwright expects
func (c *BrowserConfig) WaitTimeoutMS() float64 {
	return float64(c.WaitTimeout.Milliseconds())
}
