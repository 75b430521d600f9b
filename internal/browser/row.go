package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/shopqa/checkout-e2e/internal/cart"
)

type locatorRow struct {
	loc playwright.Locator
}

// Field fails fast instead of waiting when the row has no matching element
func (r locatorRow) Field(selector string) (cart.Field, error) {
	sub := r.loc.Locator(selector).First()
	n, err := sub.Count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", cart.ErrFieldNotFound, selector)
	}
	return locatorField{loc: sub}, nil
}

type locatorField struct {
	loc playwright.Locator
}

func (f locatorField) Text() (string, error) {
	text, err := f.loc.TextContent()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Attribute reads the live input value for "value" and the DOM attribute otherwise
func (f locatorField) Attribute(name string) (string, error) {
	if name == "value" {
		return f.loc.InputValue()
	}
	value, err := f.loc.GetAttribute(name)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", fmt.Errorf("%w: attribute %s", cart.ErrFieldNotFound, name)
	}
	return value, nil
}
