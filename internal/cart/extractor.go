package cart

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopqa/checkout-e2e/internal/models"
)

var errNegativeQuantity = errors.New("quantity must not be negative")

// Extractor turns cart rows into line items
type Extractor struct {
	selectors Selectors
	logger    *slog.Logger
}

// NewExtractor creates an extractor. A nil logger uses slog.Default().
func NewExtractor(selectors Selectors, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		selectors: selectors,
		logger:    logger,
	}
}

// Extract returns one line item per well-formed row, in row order.
// Rows that fail to parse are logged and skipped.
func (e *Extractor) Extract(rows []Row) []models.CartLineItem {
	items := make([]models.CartLineItem, 0, len(rows))
	for i, row := range rows {
		item, err := e.extractRow(i, row)
		if err != nil {
			e.logger.Error("Error processing cart row", "row", i, "error", err)
			continue
		}
		e.logger.Info("Found item",
			"name", item.Name,
			"qty", item.Quantity,
			"price", item.UnitPrice.String(),
			"total", item.LineTotal.String())
		items = append(items, item)
	}
	return items
}

func (e *Extractor) extractRow(index int, row Row) (models.CartLineItem, error) {
	var item models.CartLineItem

	name, err := e.text(row, e.selectors.ProductName)
	if err != nil {
		return item, &models.RowParseError{Index: index, Field: "name", Err: err}
	}
	item.Name = strings.TrimSpace(name)

	qtyText, err := e.attribute(row, e.selectors.Quantity, e.selectors.QuantityAttr)
	if err != nil {
		return item, &models.RowParseError{Index: index, Field: "quantity", Err: err}
	}
	item.Quantity, err = strconv.Atoi(strings.TrimSpace(qtyText))
	if err != nil {
		return item, &models.RowParseError{Index: index, Field: "quantity", Err: err}
	}
	if item.Quantity < 0 {
		return item, &models.RowParseError{Index: index, Field: "quantity", Err: errNegativeQuantity}
	}

	item.UnitPrice, err = e.money(row, e.selectors.UnitPrice)
	if err != nil {
		return item, &models.RowParseError{Index: index, Field: "unit price", Err: err}
	}

	item.LineTotal, err = e.money(row, e.selectors.LineTotal)
	if err != nil {
		return item, &models.RowParseError{Index: index, Field: "line total", Err: err}
	}

	return item, nil
}

func (e *Extractor) text(row Row, selector string) (string, error) {
	field, err := row.Field(selector)
	if err != nil {
		return "", fmt.Errorf("find %s: %w", selector, err)
	}
	return field.Text()
}

func (e *Extractor) attribute(row Row, selector, name string) (string, error) {
	field, err := row.Field(selector)
	if err != nil {
		return "", fmt.Errorf("find %s: %w", selector, err)
	}
	return field.Attribute(name)
}

func (e *Extractor) money(row Row, selector string) (models.Money, error) {
	text, err := e.text(row, selector)
	if err != nil {
		return 0, err
	}
	return models.ParseMoney(text)
}
