// Package export renders estimates for people: spreadsheets and terminal tables.
package export

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatMoney formats v as US dollars with thousands separators, e.g. "$12,750.00".
func FormatMoney(v float64) string {
	if v < 0 {
		return "-" + printer.Sprintf("$%.2f", math.Abs(v))
	}
	return printer.Sprintf("$%.2f", v)
}

// FormatPercent formats a percentage with one decimal, e.g. "92.5%".
func FormatPercent(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}

// FormatCount formats a count with thousands separators and no decimals.
func FormatCount(v float64) string {
	return printer.Sprintf("%.0f", v)
}
