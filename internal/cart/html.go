package cart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shopqa/checkout-e2e/internal/models"
)

// ErrFieldNotFound is returned when a row has no element matching a selector
var ErrFieldNotFound = errors.New("field not found")

// HTMLPage is a saved cart page parsed with goquery
type HTMLPage struct {
	doc       *goquery.Document
	selectors Selectors
}

// ParseHTML reads a cart page from r
func ParseHTML(r io.Reader, selectors Selectors) (*HTMLPage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cart page: %w", err)
	}
	return &HTMLPage{doc: doc, selectors: selectors}, nil
}

// Rows returns the cart rows in document order
func (p *HTMLPage) Rows() []Row {
	var rows []Row
	p.doc.Find(p.selectors.Row).Each(func(_ int, s *goquery.Selection) {
		rows = append(rows, htmlRow{sel: s})
	})
	return rows
}

// DisplayedSubtotal parses the subtotal shown on the page
func (p *HTMLPage) DisplayedSubtotal() (models.Money, error) {
	found := p.doc.Find(p.selectors.Subtotal).First()
	if found.Length() == 0 {
		return 0, fmt.Errorf("%w: %s", ErrFieldNotFound, p.selectors.Subtotal)
	}
	return models.ParseMoney(found.Text())
}

type htmlRow struct {
	sel *goquery.Selection
}

func (r htmlRow) Field(selector string) (Field, error) {
	found := r.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, selector)
	}
	return htmlField{sel: found}, nil
}

type htmlField struct {
	sel *goquery.Selection
}

func (f htmlField) Text() (string, error) {
	return strings.TrimSpace(f.sel.Text()), nil
}

func (f htmlField) Attribute(name string) (string, error) {
	value, ok := f.sel.Attr(name)
	if !ok {
		return "", fmt.Errorf("%w: attribute %s", ErrFieldNotFound, name)
	}
	return value, nil
}
