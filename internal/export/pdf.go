// Package export renders projections as downloadable documents.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/theirongolddev/upsell/internal/cli"
	"github.com/theirongolddev/upsell/internal/content"
	"github.com/theirongolddev/upsell/internal/report"
)

// DefaultFileName is the name offered for downloaded reports.
const DefaultFileName = "SaaS_Upsell_Analysis.pdf"

// DefaultCompanyName is printed when no company is configured.
const DefaultCompanyName = "Your Company Name"

// ReportTitle heads the first page and the document metadata.
const ReportTitle = "SaaS Upsell Revenue Analysis"

// ErrEmptyReport is returned for a report without any projected periods.
var ErrEmptyReport = errors.New("export: report has no monthly data")

const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

type rgb struct{ r, g, b int }

var (
	colorBaseline = rgb{0x24, 0x5e, 0x4f}
	colorUpsell   = rgb{0x7a, 0xc9, 0xa7}
	colorText     = rgb{50, 50, 50}
	colorMuted    = rgb{120, 120, 120}
)

// Options controls PDF rendering.
type Options struct {
	CompanyName  string
	Generated    time.Time
	IncludeGuide bool
}

type pdfReport struct {
	pdf  *fpdf.Fpdf
	tr   func(string) string
	rep  report.Report
	opts Options
}

// PDF renders rep as an A4 document.
func PDF(rep report.Report, opts Options) ([]byte, error) {
	if len(rep.Result.MonthlyData) == 0 {
		return nil, ErrEmptyReport
	}
	if opts.CompanyName == "" {
		opts.CompanyName = DefaultCompanyName
	}
	if opts.Generated.IsZero() {
		opts.Generated = time.Now()
	}

	r := &pdfReport{
		pdf:  fpdf.New("P", "mm", "A4", ""),
		rep:  rep,
		opts: opts,
	}
	r.tr = r.pdf.UnicodeTranslatorFromDescriptor("")

	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetTitle(ReportTitle, false)
	r.pdf.SetAuthor(r.text(opts.CompanyName), false)
	r.pdf.SetCreator("upsell", false)
	r.pdf.SetCreationDate(opts.Generated)
	r.pdf.AliasNbPages("")
	r.pdf.SetFooterFunc(r.footer)

	r.addSummaryPage()
	r.addMonthlyPage()
	if opts.IncludeGuide {
		r.addGuidePage()
	}

	if err := r.pdf.Error(); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// The core fonts are cp1252, which has no rupee sign.
func (r *pdfReport) text(s string) string {
	return r.tr(strings.ReplaceAll(s, "₹", "Rs. "))
}

func (r *pdfReport) setText(c rgb) { r.pdf.SetTextColor(c.r, c.g, c.b) }
func (r *pdfReport) setFill(c rgb) { r.pdf.SetFillColor(c.r, c.g, c.b) }
func (r *pdfReport) setDraw(c rgb) { r.pdf.SetDrawColor(c.r, c.g, c.b) }

func (r *pdfReport) footer() {
	r.pdf.SetY(-15)
	r.pdf.SetFont("Arial", "I", 8)
	r.setText(colorMuted)
	left := fmt.Sprintf("%s - generated %s", r.opts.CompanyName, r.opts.Generated.Format("2 January 2006"))
	r.pdf.CellFormat(contentWidth/2, 10, r.text(left), "", 0, "L", false, 0, "")
	r.pdf.CellFormat(contentWidth/2, 10, fmt.Sprintf("Page %d/{nb}", r.pdf.PageNo()), "", 0, "R", false, 0, "")
}

func (r *pdfReport) addSummaryPage() {
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 22)
	r.setText(colorBaseline)
	r.pdf.CellFormat(contentWidth, 12, ReportTitle, "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "", 13)
	r.setText(colorText)
	r.pdf.CellFormat(contentWidth, 8, r.text(r.opts.CompanyName), "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "I", 10)
	r.setText(colorMuted)
	r.pdf.CellFormat(contentWidth, 6, "Generated: "+r.opts.Generated.Format("2 January 2006"), "", 1, "C", false, 0, "")
	r.pdf.Ln(8)

	r.drawSectionHeader("Business Inputs")
	widths := []float64{contentWidth * 0.6, contentWidth * 0.4}
	for _, row := range report.InputRows(r.rep.Input) {
		r.drawTableRow(row[:], widths, false)
	}
	r.pdf.Ln(8)

	r.drawSectionHeader("Projected Revenue")
	r.drawCards()
	r.pdf.Ln(4)
	r.drawSplitBar()
	r.pdf.Ln(8)

	r.drawSectionHeader("Monthly Revenue Projection")
	r.drawChart()
}

func (r *pdfReport) drawCards() {
	cardW := (contentWidth - 2*4) / 3
	top := r.pdf.GetY()
	for i, c := range r.rep.Cards {
		x := marginLeft + float64(i)*(cardW+4)
		fill, title, value := rgb{245, 247, 246}, colorMuted, colorText
		if c.Highlight {
			fill, title, value = colorBaseline, rgb{220, 240, 232}, rgb{255, 255, 255}
		}

		r.setFill(fill)
		r.setDraw(rgb{210, 215, 212})
		r.pdf.Rect(x, top, cardW, 24, "FD")

		r.pdf.SetXY(x, top+2)
		r.pdf.SetFont("Arial", "", 9)
		r.setText(title)
		r.pdf.CellFormat(cardW, 5, c.Title, "", 2, "C", false, 0, "")
		r.pdf.SetFont("Arial", "B", 13)
		r.setText(value)
		r.pdf.CellFormat(cardW, 8, r.text(c.Value), "", 2, "C", false, 0, "")
		r.pdf.SetFont("Arial", "", 8)
		r.setText(title)
		r.pdf.CellFormat(cardW, 5, r.text(c.Note), "", 2, "C", false, 0, "")
	}
	r.pdf.SetXY(marginLeft, top+24)
	r.pdf.Ln(2)
}

func (r *pdfReport) drawSplitBar() {
	y := r.pdf.GetY()
	upsellShare := r.rep.Result.UpsellPercentage / 100
	baseW := contentWidth * (1 - upsellShare)

	r.setFill(colorBaseline)
	r.pdf.Rect(marginLeft, y, baseW, 6, "F")
	r.setFill(colorUpsell)
	r.pdf.Rect(marginLeft+baseW, y, contentWidth-baseW, 6, "F")
	r.pdf.SetY(y + 7)

	r.pdf.SetFont("Arial", "", 9)
	r.setText(colorText)
	for _, s := range r.rep.Split {
		line := fmt.Sprintf("%s: %s (%s)", s.Label, cli.FormatCurrency(s.Value), cli.FormatPercent(s.Share))
		r.pdf.CellFormat(contentWidth/2, 5, r.text(line), "", 0, "L", false, 0, "")
	}
	r.pdf.Ln(-1)
}

// drawChart draws the sampled series as stacked horizontal bars.
func (r *pdfReport) drawChart() {
	const (
		labelW = 22.0
		valueW = 28.0
		rowH   = 5.0
	)
	barW := contentWidth - labelW - valueW
	max := report.MaxTotal(r.rep.Chart)
	if max <= 0 {
		max = 1
	}

	r.pdf.SetFont("Arial", "", 8)
	for _, p := range r.rep.Chart {
		if r.pdf.GetY() > pageHeight-marginBottom-rowH {
			r.pdf.AddPage()
		}
		y := r.pdf.GetY()
		r.setText(colorText)
		r.pdf.CellFormat(labelW, rowH, p.Label, "", 0, "L", false, 0, "")

		baseW := barW * p.Baseline / max
		upW := barW * p.Upsell / max
		x := marginLeft + labelW
		r.setFill(colorBaseline)
		r.pdf.Rect(x, y+0.8, baseW, rowH-1.6, "F")
		r.setFill(colorUpsell)
		r.pdf.Rect(x+baseW, y+0.8, upW, rowH-1.6, "F")

		r.pdf.SetX(marginLeft + labelW + barW)
		r.pdf.CellFormat(valueW, rowH, cli.FormatCompact(p.Total), "", 1, "R", false, 0, "")
	}

	r.pdf.Ln(2)
	r.setFill(colorBaseline)
	r.pdf.Rect(marginLeft, r.pdf.GetY()+1, 3, 3, "F")
	r.pdf.SetX(marginLeft + 5)
	r.pdf.CellFormat(40, 5, "Baseline Revenue", "", 0, "L", false, 0, "")
	r.setFill(colorUpsell)
	r.pdf.Rect(r.pdf.GetX(), r.pdf.GetY()+1, 3, 3, "F")
	r.pdf.SetX(r.pdf.GetX() + 5)
	r.pdf.CellFormat(40, 5, "Upsell Revenue", "", 1, "L", false, 0, "")
}

func (r *pdfReport) addMonthlyPage() {
	r.pdf.AddPage()
	r.drawSectionHeader("Month-by-Month Detail")

	widths := []float64{16, 30, 46, 46, 44}
	r.drawTableHeader(report.MonthlyHeaders, widths)
	for _, row := range report.MonthlyRows(r.rep.Result.MonthlyData) {
		if r.pdf.GetY() > pageHeight-marginBottom-10 {
			r.pdf.AddPage()
			r.drawTableHeader(report.MonthlyHeaders, widths)
		}
		r.drawTableRow(row, widths, false)
	}
	r.drawTableRow(report.TotalsRow(r.rep.Cumulative), widths, true)

	r.pdf.Ln(4)
	r.pdf.SetFont("Arial", "I", 8)
	r.setText(colorMuted)
	r.pdf.MultiCell(contentWidth, 4,
		"Headline figures describe the final projected month. The Total row sums every month of the projection.",
		"", "L", false)
}

func (r *pdfReport) addGuidePage() {
	g := content.Load()
	r.pdf.AddPage()
	r.drawSectionHeader(g.Title)

	r.pdf.SetFont("Arial", "", 10)
	r.setText(colorText)
	r.pdf.MultiCell(contentWidth, 5, r.text(g.Intro), "", "L", false)

	for _, s := range g.Sections {
		r.pdf.Ln(3)
		r.pdf.SetFont("Arial", "B", 11)
		r.setText(colorBaseline)
		r.pdf.CellFormat(contentWidth, 7, r.text(s.Heading), "", 1, "L", false, 0, "")
		r.pdf.SetFont("Arial", "", 10)
		r.setText(colorText)
		if s.Body != "" {
			r.pdf.MultiCell(contentWidth, 5, r.text(s.Body), "", "L", false)
		}
		for _, item := range s.Bullets {
			r.pdf.MultiCell(contentWidth, 5, r.text("- "+item), "", "L", false)
		}
		for _, t := range s.Terms {
			r.pdf.MultiCell(contentWidth, 5, r.text("- "+t.Term+": "+t.Text), "", "L", false)
		}
	}

	r.pdf.Ln(3)
	r.pdf.SetFont("Arial", "B", 11)
	r.setText(colorBaseline)
	r.pdf.CellFormat(contentWidth, 7, "How to Use This Calculator", "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 10)
	r.setText(colorText)
	for i, st := range g.Steps {
		r.pdf.MultiCell(contentWidth, 5, r.text(fmt.Sprintf("%d. %s - %s", i+1, st.Title, st.Text)), "", "L", false)
	}
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.setText(colorBaseline)
	r.pdf.CellFormat(contentWidth, 9, r.text(title), "", 1, "L", false, 0, "")
	r.setDraw(colorBaseline)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(4)
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.setFill(colorBaseline)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.setText(colorText)
	r.setDraw(rgb{200, 200, 200})

	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(236, 244, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, r.text(cell), "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
