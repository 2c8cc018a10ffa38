package rules

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// taxRate is the flat marginal rate used to estimate tax owed when a
// registered account is collapsed into income in the year of death.
const taxRate = 0.4

// currencyPrinter formats amounts with Canadian English digit grouping.
var currencyPrinter = message.NewPrinter(language.MustParse("en-CA"))

// formatCurrency renders an amount as dollars with thousands separators:
// 200000 becomes "$200,000" and 0 becomes "$0". Fractional cents are kept
// up to three digits and trailing zeros are dropped.
func formatCurrency(amount float64) string {
	return "$" + currencyPrinter.Sprint(number.Decimal(amount, number.MaxFractionDigits(3)))
}

// estimatedTax returns the rounded tax estimate on a registered balance,
// rounding halves away from zero.
func estimatedTax(balance float64) float64 {
	return math.Round(balance * taxRate)
}
