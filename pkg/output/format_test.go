package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/iwvelando/mortgage-calculator/internal/calculator"
	"github.com/iwvelando/mortgage-calculator/pkg/amortization"
	"github.com/iwvelando/mortgage-calculator/pkg/testutil"
)

func referenceResults(t *testing.T) []calculator.Result {
	t.Helper()
	result, err := calculator.CalculateLoan(nil, "Test Scenario", "kr", testutil.ReferenceLoan())
	if err != nil {
		t.Fatalf("CalculateLoan() error = %v", err)
	}
	return []calculator.Result{result}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, referenceResults(t), Options{Chart: true}); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	expected := []string{
		"--- Results for scenario Test Scenario ---",
		"Loan Details",
		"kr200,000.00",
		"kr30,000.00",
		"kr170,000.00",
		"4.50%",
		"30 years",
		"Monthly Payment Breakdown",
		"kr637.50",
		"kr1,187.50",
		"With Extra Payments (approximate)",
		"Fixed-term annuity interest:",
		"Year | Base Principal | Extra Principal | Interest | Total",
		"kr2,400.00",
		"kr3,600.00",
		"Yearly Payments (# base principal, + extra principal, ~ interest)",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q", want)
		}
	}
}

func TestPrettyFormatWithoutChartOrProjection(t *testing.T) {
	results := referenceResults(t)
	results[0].Projection = nil

	var buf bytes.Buffer
	if err := PrettyFormat(&buf, results, Options{}); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	if strings.Contains(output, "Yearly Payments (") {
		t.Errorf("chart rendered although disabled")
	}
	if strings.Contains(output, "With Extra Payments") {
		t.Errorf("projection section rendered without a projection")
	}
}

func TestPrettyFormatMultipleScenarios(t *testing.T) {
	results := append(referenceResults(t), referenceResults(t)...)
	results[1].Name = "Second"

	var buf bytes.Buffer
	if err := PrettyFormat(&buf, results, Options{}); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	if strings.Count(buf.String(), "--- Results for scenario") != 2 {
		t.Errorf("expected two scenario headers")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrettyFormatWriteError(t *testing.T) {
	if err := PrettyFormat(failingWriter{}, referenceResults(t), Options{}); err == nil {
		t.Errorf("PrettyFormat() expected write error")
	}
}

func TestBarChart(t *testing.T) {
	series := amortization.YearlySeries{Rows: []amortization.YearlyRow{
		{Year: 1, BasePrincipal: 50, ExtraPrincipal: 25, Interest: 25, Total: 100},
		{Year: 2, BasePrincipal: 25, ExtraPrincipal: 0, Interest: 25, Total: 50},
		{Year: 3},
	}}

	lines := BarChart(series, 20)
	if len(lines) != 3 {
		t.Fatalf("BarChart() returned %d lines, expected 3", len(lines))
	}

	tests := []struct {
		line int
		bar  string
	}{
		{0, "##########+++++~~~~~"},
		{1, "#####~~~~~"},
		{2, ""},
	}
	for _, tt := range tests {
		parts := strings.Split(lines[tt.line], " | ")
		if len(parts) != 3 {
			t.Fatalf("line %d has unexpected shape: %q", tt.line, lines[tt.line])
		}
		if got := strings.TrimRight(parts[1], " "); got != tt.bar {
			t.Errorf("line %d bar = %q, expected %q", tt.line, got, tt.bar)
		}
	}
	if !strings.HasSuffix(lines[0], "100.00") {
		t.Errorf("line 0 should end with the total, got %q", lines[0])
	}
}

func TestBarChartDefaultWidth(t *testing.T) {
	series := amortization.YearlySeries{Rows: []amortization.YearlyRow{{Year: 1, BasePrincipal: 10, Total: 10}}}
	lines := BarChart(series, 0)
	if !strings.Contains(lines[0], strings.Repeat("#", DefaultChartWidth)) {
		t.Errorf("expected a full-width bar, got %q", lines[0])
	}
}

func TestCsvFormat(t *testing.T) {
	results := referenceResults(t)
	results[0].Name = `Say "hi"`

	output := CsvString(results)
	lines := strings.Split(strings.TrimSpace(output), "\n")

	if lines[0] != `"scenario","year","base principal","extra principal","interest","total"` {
		t.Errorf("unexpected CSV header: %s", lines[0])
	}
	if len(lines)-1 != len(results[0].Yearly.Rows) {
		t.Errorf("expected %d data rows, got %d", len(results[0].Yearly.Rows), len(lines)-1)
	}
	if !strings.HasPrefix(lines[1], `"Say ""hi""","1","2400.00","3600.00",`) {
		t.Errorf("unexpected first CSV row: %s", lines[1])
	}
	if strings.Contains(output, "2,400.00") {
		t.Errorf("CSV values must not contain thousands separators")
	}
}

func TestCsvFormatRoundsHalfCentsAwayFromZero(t *testing.T) {
	results := []calculator.Result{{
		Name: "rounding",
		Yearly: amortization.YearlySeries{Rows: []amortization.YearlyRow{
			{Year: 1, BasePrincipal: 1.005, ExtraPrincipal: 0, Interest: 2.675, Total: 3.68},
		}},
	}}

	lines := strings.Split(strings.TrimSpace(CsvString(results)), "\n")
	expected := `"rounding","1","1.01","0.00","2.68","3.68"`
	if lines[1] != expected {
		t.Errorf("CSV row = %s, expected %s", lines[1], expected)
	}
}

func TestCsvFormatEmpty(t *testing.T) {
	output := CsvString(nil)
	if strings.Count(output, "\n") != 1 {
		t.Errorf("expected header only, got %q", output)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, referenceResults(t)); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSONFormat() produced invalid JSON: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 result, got %d", len(decoded))
	}
	for _, key := range []string{"id", "name", "breakdown", "schedule", "projection", "yearly", "annuityTotalInterest"} {
		if _, ok := decoded[0][key]; !ok {
			t.Errorf("JSON output missing key %q", key)
		}
	}
}

func TestJSONFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, nil); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected empty array, got %q", buf.String())
	}
}
