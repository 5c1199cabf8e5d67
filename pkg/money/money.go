// Package money formats integer minor-unit amounts for display.
// Amounts are never stored or computed as floats.
package money

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Money is a display value derived from an integer minor-unit amount.
// It is never persisted; it is recomputed on every read.
type Money struct {
	Amount    int64  `json:"amount"`
	Formatted string `json:"formatted"`
}

// minorUnits is the number of minor units per major unit for supported currencies.
const minorUnits = 100

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// New returns a Money value for the given minor-unit amount and ISO currency code.
// Unknown codes fall back to "<CODE> " as the prefix.
func New(amount int64, currency string) Money {
	return Money{Amount: amount, Formatted: Format(amount, currency)}
}

// Format renders a minor-unit amount as a display string, e.g. 2000 ("USD") -> "$20.00"
// and 123456 -> "$1,234.56".
func Format(amount int64, currency string) string {
	symbol, ok := symbols[currency]
	if !ok {
		symbol = currency + " "
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	major := amount / minorUnits
	minor := amount % minorUnits
	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, humanize.Comma(major), minor)
}
