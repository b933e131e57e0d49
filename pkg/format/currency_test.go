package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		symbol   string
		expected string
	}{
		{"krona", 1234.5, "kr", "kr1,234.50"},
		{"dollar negative", -1234.567, "$", "-$1,234.57"},
		{"small", 5, "€", "€5.00"},
		{"millions", 1234567.891, "C$", "C$1,234,567.89"},
		{"negative zero", -0.001, "£", "£0.00"},
		{"half cent rounds up", 1.005, "kr", "kr1.01"},
		{"negative half cent rounds away from zero", -2.675, "$", "-$2.68"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount, tt.symbol); got != tt.expected {
				t.Errorf("Currency(%v, %q) = %q, expected %q", tt.amount, tt.symbol, got, tt.expected)
			}
		})
	}
}

func TestWholeCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{1520.06, "kr1,520"},
		{144500, "kr144,500"},
		{-2500.7, "-kr2,501"},
		{0.2, "kr0"},
	}

	for _, tt := range tests {
		if got := WholeCurrency(tt.amount, "kr"); got != tt.expected {
			t.Errorf("WholeCurrency(%v) = %q, expected %q", tt.amount, got, tt.expected)
		}
	}
}

func TestNumber(t *testing.T) {
	if got := Number(1234567.5); got != "1,234,567.50" {
		t.Errorf("Number() = %q, expected %q", got, "1,234,567.50")
	}
	if got := Number(0.125); got != "0.13" {
		t.Errorf("Number(0.125) = %q, expected %q", got, "0.13")
	}
}

func TestYearsMonths(t *testing.T) {
	tests := map[int]string{
		0:   "0 years, 0 months",
		11:  "0 years, 11 months",
		12:  "1 years, 0 months",
		340: "28 years, 4 months",
		510: "42 years, 6 months",
		-4:  "0 years, 0 months",
	}

	for months, expected := range tests {
		if got := YearsMonths(months); got != expected {
			t.Errorf("YearsMonths(%d) = %q, expected %q", months, got, expected)
		}
	}
}

func TestLookupCurrency(t *testing.T) {
	tests := []struct {
		input  string
		symbol string
		found  bool
	}{
		{"kr", "kr", true},
		{"SEK", "kr", true},
		{"usd", "$", true},
		{"₹", "₹", true},
		{"XYZ", "", false},
	}

	for _, tt := range tests {
		c, ok := LookupCurrency(tt.input)
		if ok != tt.found || c.Symbol != tt.symbol {
			t.Errorf("LookupCurrency(%q) = (%q, %v), expected (%q, %v)", tt.input, c.Symbol, ok, tt.symbol, tt.found)
		}
	}

	if CurrencyName("€") != "Euro (EUR)" {
		t.Errorf("CurrencyName(€) = %q", CurrencyName("€"))
	}
	if Symbol("") != "kr" || Symbol("GBP") != "£" || Symbol("CHF") != "CHF" {
		t.Errorf("Symbol fallbacks not applied")
	}
}
