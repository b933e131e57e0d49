// Package format renders amounts and durations for display.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyInfo describes a selectable display currency. Amounts are never
// converted between currencies.
type CurrencyInfo struct {
	Symbol string `json:"symbol"`
	Code   string `json:"code"`
	Name   string `json:"name"`
}

// Currencies lists the selectable currencies in menu order.
var Currencies = []CurrencyInfo{
	{Symbol: "kr", Code: "SEK", Name: "Swedish Krona (SEK)"},
	{Symbol: "$", Code: "USD", Name: "US Dollar (USD)"},
	{Symbol: "€", Code: "EUR", Name: "Euro (EUR)"},
	{Symbol: "C$", Code: "CAD", Name: "Canadian Dollar (CAD)"},
	{Symbol: "A$", Code: "AUD", Name: "Australian Dollar (AUD)"},
	{Symbol: "₹", Code: "INR", Name: "Indian Rupee (INR)"},
	{Symbol: "¥", Code: "JPY", Name: "Japanese Yen (JPY)"},
	{Symbol: "£", Code: "GBP", Name: "British Pound (GBP)"},
}

// LookupCurrency finds a currency by symbol or ISO code.
func LookupCurrency(symbolOrCode string) (CurrencyInfo, bool) {
	for _, c := range Currencies {
		if c.Symbol == symbolOrCode || strings.EqualFold(c.Code, symbolOrCode) {
			return c, true
		}
	}
	return CurrencyInfo{}, false
}

// CurrencyName returns the long name for a symbol, or "" if unknown.
func CurrencyName(symbol string) string {
	c, _ := LookupCurrency(symbol)
	return c.Name
}

// Symbol returns the display symbol for a symbol or code, falling back to
// the default currency when empty.
func Symbol(symbolOrCode string) string {
	if symbolOrCode == "" {
		return constants.DefaultCurrency
	}
	if c, ok := LookupCurrency(symbolOrCode); ok {
		return c.Symbol
	}
	return symbolOrCode
}

var printer = message.NewPrinter(language.English)

// Currency returns the amount with the symbol prefixed and thousands
// separators, e.g. "kr1,234.56" or "-$1,234.56".
// Half cents round away from zero.
func Currency(amount float64, symbol string) string {
	rounded := mathutil.Round(amount)
	formatted := printer.Sprintf("%.2f", math.Abs(rounded))
	if rounded < 0 {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// WholeCurrency is Currency rounded to whole units, e.g. "kr1,235".
func WholeCurrency(amount float64, symbol string) string {
	formatted := printer.Sprintf("%.0f", math.Abs(amount))
	if amount < 0 && formatted != "0" {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// Number returns the amount with separators and two decimals, no symbol.
func Number(amount float64) string {
	return printer.Sprintf("%.2f", mathutil.Round(amount))
}

// YearsMonths renders a month count as "2 years, 3 months".
func YearsMonths(months int) string {
	if months < 0 {
		months = 0
	}
	return fmt.Sprintf("%d years, %d months", months/constants.MonthsPerYear, months%constants.MonthsPerYear)
}
