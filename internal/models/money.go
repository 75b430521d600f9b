package models

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Money is an amount in minor currency units (cents)
type Money int64

// SubtotalTolerance is the absolute slack allowed between a calculated and a displayed subtotal
const SubtotalTolerance Money = 1

// MaxAmount is the largest amount ParseMoney accepts ($1,000,000,000,000.00)
const MaxAmount Money = 100_000_000_000_000

// Money parsing errors
var (
	ErrEmptyAmount    = errors.New("amount is empty")
	ErrInvalidAmount  = errors.New("amount is not a number")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrAmountTooLarge = errors.New("amount is too large")
	ErrAmountOverflow = errors.New("sum of amounts overflows")
)

// amountPattern is a cleaned amount: whole units, optionally with one or two decimals
var amountPattern = regexp.MustCompile(`^(\d+)(?:\.(\d{1,2}))?$`)

// ParseMoney parses currency-formatted text such as "$1,234.50" into cents.
// The currency symbol, thousands separators and whitespace are ignored.
func ParseMoney(text string) (Money, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "", "\u00a0", "").Replace(strings.TrimSpace(text))
	if cleaned == "" {
		return 0, ErrEmptyAmount
	}

	if strings.HasPrefix(cleaned, "-") && amountPattern.MatchString(cleaned[1:]) {
		return 0, fmt.Errorf("%w: %q", ErrNegativeAmount, text)
	}
	match := amountPattern.FindStringSubmatch(cleaned)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}

	whole, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil || whole > int64(MaxAmount/100) {
		return 0, fmt.Errorf("%w: %q", ErrAmountTooLarge, text)
	}

	var cents int64
	if fraction := match[2]; fraction != "" {
		if len(fraction) == 1 {
			fraction += "0"
		}
		cents, _ = strconv.ParseInt(fraction, 10, 64)
	}

	amount := Money(whole*100 + cents)
	if amount > MaxAmount {
		return 0, fmt.Errorf("%w: %q", ErrAmountTooLarge, text)
	}
	return amount, nil
}

// Add returns m + other, failing instead of wrapping around
func (m Money) Add(other Money) (Money, error) {
	if (other > 0 && m > math.MaxInt64-other) || (other < 0 && m < math.MinInt64-other) {
		return 0, fmt.Errorf("%w: %d + %d", ErrAmountOverflow, m, other)
	}
	return m + other, nil
}

// Abs returns the absolute value of m, saturating at math.MaxInt64
func (m Money) Abs() Money {
	if m == math.MinInt64 {
		return math.MaxInt64
	}
	if m < 0 {
		return -m
	}
	return m
}

// String formats the amount the way the shop displays it, e.g. "$1,234.50"
func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}

	whole := strconv.FormatInt(int64(m)/100, 10)
	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	return fmt.Sprintf("%s$%s.%02d", sign, grouped.String(), int64(m)%100)
}
