package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/upsell/internal/report"
	"github.com/theirongolddev/upsell/internal/tui/components"
	"github.com/theirongolddev/upsell/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// monthlyChrome is the number of lines around the table rows: card border
// and title, column header, rule, totals rule and row, footer.
const monthlyChrome = 8

func (a App) monthlyVisibleRows() int {
	rows := a.contentHeight() - monthlyChrome
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (a App) maxMonthlyOffset() int {
	n := len(a.rep.Result.MonthlyData) - a.monthlyVisibleRows()
	if n < 0 {
		return 0
	}
	return n
}

func (a App) updateMonthlyKeys(key string) App {
	halfPage := a.monthlyVisibleRows() / 2
	if halfPage < minHalfPageScroll {
		halfPage = minHalfPageScroll
	}

	switch key {
	case "j", "down":
		a.monthlyOffset++
	case "k", "up":
		a.monthlyOffset--
	case "ctrl+d", "pgdown":
		a.monthlyOffset += halfPage
	case "ctrl+u", "pgup":
		a.monthlyOffset -= halfPage
	case "g", "home":
		a.monthlyOffset = 0
	case "G", "end":
		a.monthlyOffset = a.maxMonthlyOffset()
	}

	if a.monthlyOffset > a.maxMonthlyOffset() {
		a.monthlyOffset = a.maxMonthlyOffset()
	}
	if a.monthlyOffset < 0 {
		a.monthlyOffset = 0
	}
	return a
}

func (a App) renderMonthlyTab(cw int) string {
	t := theme.Active
	records := a.rep.Result.MonthlyData
	if len(records) == 0 {
		return components.ContentCard("Monthly Breakdown", "No projection yet. Press e to enter your inputs.", cw)
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	upsellStyle := lipgloss.NewStyle().Foreground(t.Upsell).Background(t.Surface)
	totalStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	ruleStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	rows := report.MonthlyRows(records)
	totals := report.TotalsRow(a.rep.Cumulative)

	// Column widths from the widest cell, shared by header, rows and totals.
	widths := make([]int, len(report.MonthlyHeaders))
	for i, hdr := range report.MonthlyHeaders {
		widths[i] = lipgloss.Width(hdr)
	}
	for _, row := range append(rows, totals) {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	const colGap = 3
	tableW := 0
	for _, w := range widths {
		tableW += w
	}
	tableW += colGap * (len(widths) - 1)

	renderRow := func(cells []string, style func(col int) lipgloss.Style) string {
		var b strings.Builder
		for i, cell := range cells {
			if i > 0 {
				b.WriteString(space.Render(strings.Repeat(" ", colGap)))
			}
			pad := widths[i] - lipgloss.Width(cell)
			if i == 0 {
				b.WriteString(style(i).Render(cell))
				b.WriteString(space.Render(strings.Repeat(" ", pad)))
			} else {
				b.WriteString(space.Render(strings.Repeat(" ", pad)))
				b.WriteString(style(i).Render(cell))
			}
		}
		return b.String()
	}

	visible := a.monthlyVisibleRows()
	start := a.monthlyOffset
	if start > a.maxMonthlyOffset() {
		start = a.maxMonthlyOffset()
	}
	end := start + visible
	if end > len(rows) {
		end = len(rows)
	}

	var b strings.Builder
	b.WriteString(renderRow(report.MonthlyHeaders, func(int) lipgloss.Style { return headerStyle }))
	b.WriteString("\n")
	b.WriteString(ruleStyle.Render(strings.Repeat("─", tableW)))
	b.WriteString("\n")
	for _, row := range rows[start:end] {
		b.WriteString(renderRow(row, func(col int) lipgloss.Style {
			if col == 3 {
				return upsellStyle
			}
			return rowStyle
		}))
		b.WriteString("\n")
	}
	b.WriteString(ruleStyle.Render(strings.Repeat("─", tableW)))
	b.WriteString("\n")
	b.WriteString(renderRow(totals, func(int) lipgloss.Style { return totalStyle }))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Months %d-%d of %d · j/k scroll · cumulative totals",
		start+1, end, len(rows))))

	title := "Monthly Breakdown " + components.Sparkline(a.chartTotals(), t.Upsell)
	return components.ContentCard(title, b.String(), cw)
}

// chartTotals returns the sampled total revenue series.
func (a App) chartTotals() []float64 {
	vals := make([]float64, len(a.rep.Chart))
	for i, p := range a.rep.Chart {
		vals[i] = p.Total
	}
	return vals
}
