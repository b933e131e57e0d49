// Package numparse converts user-entered amounts and rates into numbers.
package numparse

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/shopspring/decimal"
)

// ErrInvalidNumber is wrapped by every parse failure.
var ErrInvalidNumber = errors.New("invalid number format")

var currencyStripper = newCurrencyStripper()

// newCurrencyStripper removes every known symbol and ISO code. Longer glyphs
// come first so "C$" is not left behind as "C".
func newCurrencyStripper() *strings.Replacer {
	var glyphs []string
	for _, c := range format.Currencies {
		glyphs = append(glyphs, strings.ToUpper(c.Symbol), c.Code)
	}
	sort.SliceStable(glyphs, func(i, j int) bool { return len(glyphs[i]) > len(glyphs[j]) })

	pairs := make([]string, 0, len(glyphs)*2)
	for _, g := range glyphs {
		pairs = append(pairs, g, "")
	}
	return strings.NewReplacer(pairs...)
}

// Normalize strips currency glyphs and whitespace, maps ',' to '.', and
// keeps only the first decimal separator: "kr 1 500,50" becomes "1500.50"
// and "1.234.567" becomes "1.234567".
func Normalize(value string) string {
	cleaned := currencyStripper.Replace(strings.ToUpper(value))
	cleaned = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cleaned)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	if first := strings.IndexByte(cleaned, '.'); first >= 0 {
		cleaned = cleaned[:first+1] + strings.ReplaceAll(cleaned[first+1:], ".", "")
	}
	return cleaned
}

// ParseFloat parses a user-entered number. An empty value (after stripping)
// parses as zero.
func ParseFloat(value string) (float64, error) {
	cleaned := Normalize(value)
	if cleaned == "" {
		return 0, nil
	}
	if strings.ContainsAny(cleaned, "E") {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, value)
	}

	cleaned = strings.TrimSuffix(cleaned, ".")
	switch {
	case strings.HasPrefix(cleaned, "-."):
		cleaned = "-0" + cleaned[1:]
	case strings.HasPrefix(cleaned, "."):
		cleaned = "0" + cleaned
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, value)
	}
	return d.InexactFloat64(), nil
}

// ParseInt parses a whole number such as a term in years. Decimal input is
// rejected rather than truncated.
func ParseInt(value string) (int, error) {
	f, err := ParseFloat(value)
	if err != nil {
		return 0, err
	}
	d := decimal.NewFromFloat(f)
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: %s is not a whole number", ErrInvalidNumber, value)
	}
	return int(d.IntPart()), nil
}
