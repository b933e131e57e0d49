// Package report renders a calculation as a one-page landscape PDF.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/calculator"
	"github.com/iwvelando/mortgage-calculator/pkg/amortization"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/jung-kurt/gofpdf"
)

// FilePrefix starts every exported report name.
const FilePrefix = "mortgage_calculation_"

// Footer is printed at the bottom of every report.
const Footer = "*Note: Calculations are based on the entered loan amount, interest rate, and payment schedule. " +
	"Payoff figures use a flat monthly principal reduction and are approximate."

const (
	margin      = 50.0
	lineHeight  = 15.0
	chartHeight = 175.0
)

type rgb struct{ r, g, b int }

// Series colors in amortization.SeriesLabels order.
var seriesColors = []rgb{
	{0x2e, 0xcc, 0x71}, // base principal
	{0xff, 0xa5, 0x00}, // extra principal
	{0xe7, 0x4c, 0x3c}, // interest
	{0x34, 0x98, 0xdb}, // total
}

// ErrNoLoan is returned for results without a principal to report on.
var ErrNoLoan = errors.New("calculate loan details before exporting")

// WritePDF renders res to w.
func WritePDF(w io.Writer, res calculator.Result, generatedAt time.Time) error {
	if res.Params.Principal <= 0 || res.LoanSeeking <= 0 {
		return ErrNoLoan
	}

	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.SetCreationDate(generatedAt)
	pdf.SetTitle("Mortgage Calculator Results", true)
	pdf.SetCreator("mortgage-calculator", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	sym := pdfSymbol(res.Currency)
	money := func(v float64) string { return format.Currency(v, sym) }
	pageW, pageH := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(margin, 40, "Mortgage Calculator Results")
	pdf.Line(margin, 50, pageW-margin, 50)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(margin, 70, "Generated on: "+generatedAt.Format("2006-01-02 15:04:05"))
	if res.Name != "" {
		pdf.Text(pageW/2+margin, 70, tr("Scenario: "+res.Name))
	}

	p := res.Params
	y := section(pdf, tr, margin, 100, "Loan Details", []string{
		"Loan Seeking For: " + money(res.LoanSeeking),
		"Down Payment: " + money(res.DownPayment),
		"Loan Amount: " + money(p.Principal),
		fmt.Sprintf("Interest Rate: %.2f%%", p.AnnualRatePercent),
		fmt.Sprintf("Loan Term: %d years", p.Term()),
	})

	b := res.Breakdown
	section(pdf, tr, margin, y+10, "Monthly Payment Breakdown", []string{
		"Principal Payment: " + money(b.Principal),
		"Extra Payment: " + money(b.Extra),
		"Total Principal: " + money(b.TotalPrincipal),
		"Interest Payment: " + money(b.Interest),
		"Monthly House Fee: " + money(b.Fee),
		"Total Monthly Payment: " + money(b.Total),
	})

	rightX := pageW/2 + margin
	var extra, payoff []string
	if proj := res.Projection; proj != nil {
		extra = []string{
			"Time Saved: " + format.YearsMonths(proj.TimeSavedMonths),
			"Interest Saved: " + money(proj.InterestSaved),
		}
		payoff = []string{format.YearsMonths(proj.MonthsToPayoff) + " (approximate)"}
	} else {
		extra = []string{"Not available without a principal payment"}
		payoff = []string{format.YearsMonths(res.Schedule.PayoffMonth) + " (annuity schedule)"}
	}
	payoff = append(payoff,
		"Total interest: "+money(res.Schedule.TotalInterest),
		"Fixed-term annuity interest: "+money(res.AnnuityTotalInterest),
	)
	y = section(pdf, tr, rightX, 100, "With Extra Payments", extra)
	section(pdf, tr, rightX, y+10, "Loan Payoff Time", payoff)

	chartTop := pageH - margin - 40 - chartHeight
	pdf.Line(margin, chartTop-10, pageW-margin, chartTop-10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(margin, chartTop-20, "Plot:")
	drawChart(pdf, tr, sym, res.Yearly, margin, chartTop, pageW-2*margin, chartHeight)

	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(margin, pageH-30, Footer)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return pdf.Output(w)
}

// section draws a bold heading and indented lines, returning the next free y.
func section(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, title string, lines []string) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(x, y, title)
	pdf.SetFont("Helvetica", "", 10)
	y += 20
	for _, line := range lines {
		pdf.Text(x+20, y, tr(line))
		y += lineHeight
	}
	return y
}

// drawChart draws the yearly series as grouped bars: base and extra
// principal stacked, then interest, then the total.
func drawChart(pdf *gofpdf.Fpdf, tr func(string) string, sym string, series amortization.YearlySeries, x, y, w, h float64) {
	const (
		axisW   = 60.0
		legendH = 16.0
		labelH  = 14.0
	)

	pdf.SetFont("Helvetica", "B", 10)
	title := "Mortgage Payment Breakdown by Year"
	pdf.Text(x+(w-pdf.GetStringWidth(title))/2, y, title)

	// Legend.
	pdf.SetFont("Helvetica", "", 8)
	lx := x + axisW
	for i, label := range amortization.SeriesLabels {
		c := seriesColors[i]
		pdf.SetFillColor(c.r, c.g, c.b)
		pdf.Rect(lx, y+5, 8, 8, "F")
		pdf.Text(lx+11, y+12, label)
		lx += 20 + pdf.GetStringWidth(label)
	}

	plotX := x + axisW
	plotY := y + legendH + 6
	plotW := w - axisW
	plotH := h - legendH - 6 - labelH*2

	top := niceCeil(series.MaxTotal())
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetDashPattern([]float64{3, 3}, 0)
	for i := 0; i <= 4; i++ {
		gy := plotY + plotH - plotH*float64(i)/4
		pdf.Line(plotX, gy, plotX+plotW, gy)
		tick := format.WholeCurrency(top*float64(i)/4, sym)
		pdf.Text(plotX-6-pdf.GetStringWidth(tr(tick)), gy+3, tr(tick))
	}
	pdf.SetDashPattern([]float64{}, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(plotX, plotY+plotH, plotX+plotW, plotY+plotH)

	rows := series.Rows
	if len(rows) == 0 || top <= 0 {
		return
	}

	slot := plotW / float64(len(rows))
	barW := slot * 0.2
	scale := plotH / top
	base := plotY + plotH
	bar := func(left, bottom, value float64, c rgb) {
		if value <= 0 {
			return
		}
		height := value * scale
		pdf.SetFillColor(c.r, c.g, c.b)
		pdf.Rect(left, bottom-height, barW, height, "F")
	}

	step := 1 + len(rows)/30
	for i, row := range rows {
		center := plotX + slot*(float64(i)+0.5)
		principalH := row.BasePrincipal * scale
		bar(center-barW*1.5, base, row.BasePrincipal, seriesColors[0])
		bar(center-barW*1.5, base-principalH, row.ExtraPrincipal, seriesColors[1])
		bar(center-barW*0.5, base, row.Interest, seriesColors[2])
		bar(center+barW*0.5, base, row.Total, seriesColors[3])

		if i%step == 0 {
			label := fmt.Sprintf("%d", row.Year)
			pdf.Text(center-pdf.GetStringWidth(label)/2, base+labelH-3, label)
		}
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(plotX+(plotW-pdf.GetStringWidth("Year"))/2, base+labelH*2-2, "Year")
	pdf.TransformBegin()
	pdf.TransformRotate(90, x+8, plotY+plotH/2)
	pdf.Text(x+8-pdf.GetStringWidth("Amount")/2, plotY+plotH/2, tr("Amount ("+sym+")"))
	pdf.TransformEnd()
}

// niceCeil rounds v up to 1, 2 or 5 times a power of ten.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 0
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if v <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}

// pdfSymbol keeps symbols the core fonts can draw and falls back to the ISO
// code for the rest.
func pdfSymbol(symbol string) string {
	for _, r := range symbol {
		if r < 0x80 {
			continue
		}
		switch r {
		case '€', '£', '¥':
			continue
		}
		if c, ok := format.LookupCurrency(symbol); ok {
			return c.Code + " "
		}
		return ""
	}
	return format.Symbol(symbol)
}

// FileName returns the report name for a date, with an optional counter.
func FileName(now time.Time, counter int) string {
	name := FilePrefix + now.Format("02-01-2006")
	if counter > 0 {
		name = fmt.Sprintf("%s_%d", name, counter)
	}
	return name + ".pdf"
}

// Export writes res into dir under the first unused FileName for now and
// returns the path.
func Export(dir string, res calculator.Result, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, res, now); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	for counter := 0; ; counter++ {
		path := filepath.Join(dir, FileName(now, counter))
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", path, err)
		}

		_, err = buf.WriteTo(file)
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
		return path, nil
	}
}
