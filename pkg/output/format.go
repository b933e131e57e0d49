// Package output provides utilities for formatting and displaying mortgage results.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/iwvelando/mortgage-calculator/internal/calculator"
	"github.com/iwvelando/mortgage-calculator/pkg/amortization"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultChartWidth is the number of characters used by the longest bar.
const DefaultChartWidth = 50

// Chart glyphs, one per stacked series.
const (
	baseGlyph     = '#'
	extraGlyph    = '+'
	interestGlyph = '~'
)

// Options controls PrettyFormat.
type Options struct {
	Chart      bool
	ChartWidth int
}

// printer collects the first write error so the renderers can write freely.
type printer struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, p: message.NewPrinter(language.English)}
}

func (pr *printer) printf(layout string, args ...interface{}) {
	if pr.err != nil {
		return
	}
	_, pr.err = pr.p.Fprintf(pr.w, layout, args...)
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, results []calculator.Result, opts Options) error {
	pr := newPrinter(w)
	for i, result := range results {
		if i > 0 {
			pr.printf("\n")
		}
		prettyResult(pr, result, opts)
	}
	return pr.err
}

func prettyResult(pr *printer, result calculator.Result, opts Options) {
	sym := result.Currency
	money := func(v float64) string { return format.Currency(v, sym) }
	params := result.Params

	pr.printf("--- Results for scenario %s ---\n", result.Name)

	pr.printf("Loan Details\n")
	pr.printf("  %-28s %s\n", "Loan seeking:", money(result.LoanSeeking))
	pr.printf("  %-28s %s\n", "Down payment:", money(result.DownPayment))
	pr.printf("  %-28s %s\n", "Loan amount:", money(params.Principal))
	pr.printf("  %-28s %.2f%%\n", "Interest rate:", params.AnnualRatePercent)
	pr.printf("  %-28s %d years\n", "Loan term:", params.Term())

	b := result.Breakdown
	pr.printf("Monthly Payment Breakdown\n")
	pr.printf("  %-28s %s\n", "Principal payment:", money(b.Principal))
	pr.printf("  %-28s %s\n", "Extra payment:", money(b.Extra))
	pr.printf("  %-28s %s\n", "Total principal:", money(b.TotalPrincipal))
	pr.printf("  %-28s %s\n", "Interest (first month):", money(b.Interest))
	pr.printf("  %-28s %s\n", "Monthly fee:", money(b.Fee))
	pr.printf("  %-28s %s\n", "Total monthly payment:", money(b.Total))

	schedule := result.Schedule
	pr.printf("Amortization Schedule\n")
	pr.printf("  %-28s %s\n", "Annuity payment:", money(result.AnnuityPayment))
	pr.printf("  %-28s %s (%d payments)\n", "Paid off after:", format.YearsMonths(schedule.PayoffMonth), schedule.PayoffMonth)
	pr.printf("  %-28s %s\n", "Total interest:", money(schedule.TotalInterest))
	pr.printf("  %-28s %s\n", "Fixed-term annuity interest:", money(result.AnnuityTotalInterest))

	if proj := result.Projection; proj != nil {
		pr.printf("With Extra Payments (approximate)\n")
		pr.printf("  %-28s %s\n", "Monthly principal reduction:", money(proj.MonthlyReduction))
		pr.printf("  %-28s %s\n", "Loan payoff time:", format.YearsMonths(proj.MonthsToPayoff))
		pr.printf("  %-28s %s\n", "Without extra payments:", format.YearsMonths(proj.BaselineMonths))
		pr.printf("  %-28s %s\n", "Time saved:", format.YearsMonths(proj.TimeSavedMonths))
		pr.printf("  %-28s %s\n", "Interest paid:", money(proj.InterestPaid))
		pr.printf("  %-28s %s\n", "Interest saved:", money(proj.InterestSaved))
	}

	for _, note := range result.Notes {
		pr.printf("Note: %s\n", note)
	}

	pr.printf("Yearly Breakdown\n")
	pr.printf("Year | %s\n", strings.Join(amortization.SeriesLabels, " | "))
	pr.printf("____ | _______________ | _______________ | _______________ | _______________\n")
	for _, row := range result.Yearly.Rows {
		pr.printf("%4d | %15s | %15s | %15s | %15s\n", row.Year,
			money(row.BasePrincipal), money(row.ExtraPrincipal), money(row.Interest), money(row.Total))
	}

	if opts.Chart {
		pr.printf("Yearly Payments (%c base principal, %c extra principal, %c interest)\n",
			baseGlyph, extraGlyph, interestGlyph)
		for _, line := range BarChart(result.Yearly, opts.ChartWidth) {
			pr.printf("%s\n", line)
		}
	}
}

// BarChart renders one stacked horizontal bar per year, scaled so the
// largest year spans width characters.
func BarChart(series amortization.YearlySeries, width int) []string {
	if width <= 0 {
		width = DefaultChartWidth
	}

	var longest float64
	for _, row := range series.Rows {
		if sum := row.BasePrincipal + row.ExtraPrincipal + row.Interest; sum > longest {
			longest = sum
		}
	}

	lines := make([]string, 0, len(series.Rows))
	for _, row := range series.Rows {
		var bar strings.Builder
		if longest > 0 {
			scale := float64(width) / longest
			// Segment ends are rounded cumulatively so bars never exceed width.
			end := 0
			cumulative := 0.0
			for _, seg := range []struct {
				value float64
				glyph rune
			}{
				{row.BasePrincipal, baseGlyph},
				{row.ExtraPrincipal, extraGlyph},
				{row.Interest, interestGlyph},
			} {
				cumulative += seg.value
				next := int(math.Round(cumulative * scale))
				if n := next - end; n > 0 {
					bar.WriteString(strings.Repeat(string(seg.glyph), n))
				}
				if next > end {
					end = next
				}
			}
		}
		lines = append(lines, fmt.Sprintf("%4d | %-*s | %s", row.Year, width, bar.String(), format.Number(row.Total)))
	}
	return lines
}

// CsvFormat outputs the yearly series of every result in comma-separated
// value format.
func CsvFormat(w io.Writer, results []calculator.Result) error {
	pr := newPrinter(w)
	pr.printf(`"scenario","year"`)
	for _, label := range amortization.SeriesLabels {
		pr.printf(`,"%s"`, strings.ToLower(label))
	}
	pr.printf("\n")
	for _, result := range results {
		for _, row := range result.Yearly.Rows {
			pr.printf(`"%s","%d"`, csvEscape(result.Name), row.Year)
			for _, v := range row.Values() {
				// %.2f through the message printer would add thousands separators.
				pr.printf(`,"%s"`, fmt.Sprintf("%.2f", mathutil.Round(v)))
			}
			pr.printf("\n")
		}
	}
	return pr.err
}

// CsvString returns CsvFormat output as a string.
func CsvString(results []calculator.Result) string {
	var buf bytes.Buffer
	_ = CsvFormat(&buf, results)
	return buf.String()
}

func csvEscape(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

// JSONFormat outputs the results as indented JSON.
func JSONFormat(w io.Writer, results []calculator.Result) error {
	if results == nil {
		results = []calculator.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
