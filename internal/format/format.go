// Package format renders money and rates for the calculator pages.
package format

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("en-NZ"))

// Currency formats an NZD amount with grouping and two decimals, e.g. "$9,616.50".
func Currency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "$" + printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// Percent renders a fractional rate as a percentage with the given number of
// decimals and no sign, e.g. Percent(0.0625, 2) == "6.25".
func Percent(rate float64, decimals int) string {
	return strconv.FormatFloat(rate*100, 'f', decimals, 64)
}
