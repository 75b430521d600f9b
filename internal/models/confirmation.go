package models

import (
	"errors"
	"fmt"
	"regexp"
)

// SuccessMessage is shown by the shop once an order has been placed
const SuccessMessage = "Your order has been successfully processed!"

var orderNumberPattern = regexp.MustCompile(`Order number:\s*(\d+)`)

// ErrNoOrderNumber is returned when the confirmation page carries no order number
var ErrNoOrderNumber = errors.New("no valid order number found")

// OrderConfirmation is what the order-completed page reported
type OrderConfirmation struct {
	Message     string
	OrderNumber string
}

// ParseOrderNumber extracts the digits following "Order number:" in text
func ParseOrderNumber(text string) (string, error) {
	match := orderNumberPattern.FindStringSubmatch(text)
	if len(match) < 2 {
		return "", fmt.Errorf("%w in: %q", ErrNoOrderNumber, text)
	}
	return match[1], nil
}
