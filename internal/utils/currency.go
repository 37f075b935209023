package utils

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatCurrency renders integer cents as US dollars, e.g. 123456 -> "$1,234.56".
func FormatCurrency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(cents/100), cents%100)
}

// CentsToDollars converts integer cents to a decimal dollar amount.
func CentsToDollars(cents int64) float64 {
	return float64(cents) / 100
}
