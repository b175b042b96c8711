package listing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency prefixes formatted prices.
var Currency = "$"

// FormatPrice renders a whole-unit price with digit grouping, e.g. "$20,000".
func FormatPrice(amount int) string {
	return Currency + printer.Sprintf("%d", amount)
}

// FormatCount renders a count with digit grouping.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
