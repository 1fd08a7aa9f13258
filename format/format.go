// Package format renders loan figures for display.
package format

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const mediumDate = "Jan 2, 2006"

var printer = message.NewPrinter(language.English)

// FormatCurrency groups thousands with commas: 10000 -> "10,000".
func FormatCurrency(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatCurrencyDouble drops the fractional part, then groups thousands:
// 1500.5 -> "1,500".
func FormatCurrencyDouble(v float64) string {
	whole := decimal.NewFromFloat(v).Truncate(0).IntPart()
	return FormatCurrency(int(whole))
}

// FormatDate renders t in its own location as "Nov 14, 2023".
func FormatDate(t time.Time) string {
	return t.Format(mediumDate)
}
