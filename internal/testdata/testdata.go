// Package testdata loads the credentials, products and address used by a
// checkout run.
package testdata

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// ErrInvalidTestData is returned when a required value is missing
var ErrInvalidTestData = errors.New("invalid test data")

// Credentials are the shopper's login and gift card recipient
type Credentials struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	RecipientName  string `json:"recipient_name"`
	RecipientEmail string `json:"recipient_email"`
}

// Product is searched for by name and added with the button matched by AddToCartSelector.
// The selector may be CSS or XPath.
type Product struct {
	Name              string `json:"name"`
	URL               string `json:"url"`
	AddToCartSelector string `json:"add_to_cart_xpath"`
}

// Address is the billing and shipping address entered at checkout
type Address struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	Country     string `json:"country"`
	State       string `json:"state"`
	City        string `json:"city"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	ZipCode     string `json:"zip_code"`
	PhoneNumber string `json:"phone_number"`
	FaxNumber   string `json:"fax_number"`
}

// TestData is the content of the test data file
type TestData struct {
	Credentials            Credentials `json:"credentials"`
	Products               []Product   `json:"products"`
	ShippingBillingAddress Address     `json:"shipping_billing_address"`
}

// Load reads the test data file at path. JSON5 syntax is accepted. A sibling
// <name>.local.<ext> file, when present, overrides individual values.
func Load(path string) (*TestData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Test data file not found", "path", path)
		return nil, fmt.Errorf("failed to read test data: %w", err)
	}

	slog.Info("Reading test data", "path", path)
	var data TestData
	if err := json5.Unmarshal(raw, &data); err != nil {
		slog.Error("Failed to parse test data", "path", path, "error", err)
		return nil, fmt.Errorf("failed to parse test data %s: %w", path, err)
	}

	localPath := localOverridePath(path)
	localRaw, err := os.ReadFile(localPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read test data override: %w", err)
	}
	if len(localRaw) > 0 {
		var override TestData
		if err := json5.Unmarshal(localRaw, &override); err != nil {
			return nil, fmt.Errorf("failed to parse test data %s: %w", localPath, err)
		}
		if err := mergo.Merge(&data, override, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge test data override: %w", err)
		}
		slog.Info("Merging test data with local overrides", "local", localPath)
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// Validate checks the values every run needs
func (d *TestData) Validate() error {
	if strings.TrimSpace(d.Credentials.Email) == "" {
		return fmt.Errorf("%w: credentials.email is required", ErrInvalidTestData)
	}
	if d.Credentials.Password == "" {
		return fmt.Errorf("%w: credentials.password is required", ErrInvalidTestData)
	}
	for i, p := range d.Products {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: products[%d].name is required", ErrInvalidTestData, i)
		}
		if strings.TrimSpace(p.AddToCartSelector) == "" {
			return fmt.Errorf("%w: products[%d].add_to_cart_xpath is required", ErrInvalidTestData, i)
		}
	}
	return nil
}

func localOverridePath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}
