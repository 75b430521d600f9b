package models

import "fmt"

// CartLineItem is one row of the shopping cart as the shop displays it
type CartLineItem struct {
	Name      string
	Quantity  int
	UnitPrice Money
	LineTotal Money
}

// Consistent reports whether the line total equals unit price times quantity
// within SubtotalTolerance. The validator does not require it.
func (i CartLineItem) Consistent() bool {
	expected := i.UnitPrice * Money(i.Quantity)
	return (expected - i.LineTotal).Abs() < SubtotalTolerance
}

// CartSnapshot is the validated content of the cart at one point in time.
// It is immutable once constructed.
type CartSnapshot struct {
	items    []CartLineItem
	subtotal Money
}

// NewCartSnapshot creates a snapshot from items in page display order
func NewCartSnapshot(items []CartLineItem, displayedSubtotal Money) *CartSnapshot {
	copied := make([]CartLineItem, len(items))
	copy(copied, items)

	return &CartSnapshot{
		items:    copied,
		subtotal: displayedSubtotal,
	}
}

// Items returns a copy of the line items
func (s *CartSnapshot) Items() []CartLineItem {
	copied := make([]CartLineItem, len(s.items))
	copy(copied, s.items)
	return copied
}

// Subtotal returns the subtotal displayed by the shop
func (s *CartSnapshot) Subtotal() Money {
	return s.subtotal
}

// Len returns the number of line items
func (s *CartSnapshot) Len() int {
	return len(s.items)
}

// CalculatedTotal sums the line totals
func (s *CartSnapshot) CalculatedTotal() (Money, error) {
	return SumLineTotals(s.items)
}

// SumLineTotals sums the line totals of items. Negative line totals and sums
// that do not fit in a Money are errors.
func SumLineTotals(items []CartLineItem) (Money, error) {
	var total Money
	for i, item := range items {
		if item.LineTotal < 0 {
			return 0, fmt.Errorf("%w: line %d total %d", ErrNegativeAmount, i, item.LineTotal)
		}
		var err error
		if total, err = total.Add(item.LineTotal); err != nil {
			return 0, err
		}
	}
	return total, nil
}
