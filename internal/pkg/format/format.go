// Package format renders ledger figures for presentation clients.
// Inputs are plain numbers from the calculators; nothing here feeds back into them.
package format

import (
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is the cooperative's single currency
const DefaultCurrency = "UGX"

const (
	dateLayout     = "02 Jan 2006"
	dateTimeLayout = "02 Jan 2006, 15:04"
)

var printer = message.NewPrinter(language.English)

// Currency formats v as whole units of DefaultCurrency, e.g. "UGX 1,234,567"
func Currency(v float64) string {
	return CurrencyIn(DefaultCurrency, v)
}

// CurrencyIn formats v as whole units of code with thousands grouping
func CurrencyIn(code string, v float64) string {
	n := int64(math.Round(finite(v)))
	if n < 0 {
		return "-" + code + " " + printer.Sprintf("%d", -n)
	}
	return code + " " + printer.Sprintf("%d", n)
}

// Percent formats v with one decimal place, e.g. "71.4%"
func Percent(v float64) string {
	return strconv.FormatFloat(finite(v), 'f', 1, 64) + "%"
}

// Date formats t as "02 Jan 2006"; the zero time renders empty
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// DateTime formats t as "02 Jan 2006, 15:04"; the zero time renders empty
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeLayout)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
