package domain

import "fmt"

// CurrencyPEN is the storefront's fixed display currency.
const CurrencyPEN = "PEN"

// FormatPEN renders an amount in cents as the fixed-locale display string,
// e.g. 12345 -> "S/. 123.45".
func FormatPEN(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sS/. %d.%02d", sign, cents/100, cents%100)
}
