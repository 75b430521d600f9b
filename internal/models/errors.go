package models

import (
	"errors"
	"fmt"
	"time"
)

// Cart validation errors
var (
	ErrRowParse               = errors.New("cart row could not be parsed")
	ErrUnexpectedItemCount    = errors.New("unexpected cart item count")
	ErrEmptyCart              = errors.New("no items found in cart")
	ErrReconciliationMismatch = errors.New("subtotal mismatch")
	ErrTimeout                = errors.New("timed out waiting for element")
)

// RowParseError describes a cart row that was skipped during extraction
type RowParseError struct {
	Index int
	Field string
	Err   error
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("row %d: field %s: %v", e.Index, e.Field, e.Err)
}

func (e *RowParseError) Unwrap() error { return e.Err }

func (e *RowParseError) Is(target error) bool { return target == ErrRowParse }

// UnexpectedItemCountError is returned when the cart holds a different number of rows than expected
type UnexpectedItemCountError struct {
	Expected int
	Actual   int
}

func (e *UnexpectedItemCountError) Error() string {
	return fmt.Sprintf("expected %d items, but found %d", e.Expected, e.Actual)
}

func (e *UnexpectedItemCountError) Is(target error) bool { return target == ErrUnexpectedItemCount }

// ReconciliationMismatchError is returned when line totals do not add up to the displayed subtotal
type ReconciliationMismatchError struct {
	Calculated Money
	Displayed  Money
}

func (e *ReconciliationMismatchError) Error() string {
	return fmt.Sprintf("subtotal mismatch: expected %s, got %s", e.Calculated, e.Displayed)
}

func (e *ReconciliationMismatchError) Is(target error) bool {
	return target == ErrReconciliationMismatch
}

// TimeoutError is returned when an awaited element never reached the expected state
type TimeoutError struct {
	Selector string
	Timeout  time.Duration
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for %q", e.Timeout, e.Selector)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }
