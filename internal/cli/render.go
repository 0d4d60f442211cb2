package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Brand colors
var (
	ColorBorder    = lipgloss.Color("#2A3B35")
	ColorTextDim   = lipgloss.Color("#5C6E67")
	ColorTextMuted = lipgloss.Color("#7F918A")
	ColorText      = lipgloss.Color("#F4FBF8")
	ColorAccent    = lipgloss.Color("#7AC9A7")
	ColorBaseline  = lipgloss.Color("#245E4F")
	ColorUpsell    = lipgloss.Color("#7AC9A7")
	ColorOrange    = lipgloss.Color("#DA702C")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	baselineStyle = lipgloss.NewStyle().
			Foreground(ColorBaseline)

	upsellStyle = lipgloss.NewStyle().
			Foreground(ColorUpsell)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	// Calculate column widths
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			if lipgloss.Width(h) > widths[i] {
				widths[i] = lipgloss.Width(h)
			}
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols && lipgloss.Width(cell) > widths[i] {
					widths[i] = lipgloss.Width(cell)
				}
			}
		}
	}

	var b strings.Builder

	// Title above table if present
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	// Top border
	b.WriteString(dimStyle.Render("╭"))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < numCols-1 {
			b.WriteString(dimStyle.Render("┬"))
		}
	}
	b.WriteString(dimStyle.Render("╮"))
	b.WriteString("\n")

	// Header row
	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			w := widths[i]
			padded := " " + padRight(h, w) + " "
			b.WriteString(headerStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")

		// Header separator
		b.WriteString(dimStyle.Render("├"))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("┼"))
			}
		}
		b.WriteString(dimStyle.Render("┤"))
		b.WriteString("\n")
	}

	// Data rows
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			// Separator row
			b.WriteString(dimStyle.Render("├"))
			for i, w := range widths {
				b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
				if i < numCols-1 {
					b.WriteString(dimStyle.Render("┼"))
				}
			}
			b.WriteString(dimStyle.Render("┤"))
			b.WriteString("\n")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			w := widths[i]
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			// Right-align numeric columns (all except first)
			var padded string
			if i == 0 {
				padded = " " + padRight(cell, w) + " "
			} else {
				padded = " " + padLeft(cell, w) + " "
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	// Bottom border
	b.WriteString(dimStyle.Render("╰"))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < numCols-1 {
			b.WriteString(dimStyle.Render("┴"))
		}
	}
	b.WriteString(dimStyle.Render("╯"))
	b.WriteString("\n")

	return b.String()
}

// Cells may carry multi-byte currency symbols, so padding counts cells, not bytes.
func padRight(s string, w int) string {
	if n := w - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, w int) string {
	if n := w - lipgloss.Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// RenderSplitBar renders a two-tone bar showing the upsell share of a
// total, followed by the share as a percentage.
func RenderSplitBar(upsellPct float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct := upsellPct / 100
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	upsell := int(math.Round(pct * float64(width)))
	if upsell == 0 && pct > 0 {
		upsell = 1
	}
	baseline := width - upsell

	return fmt.Sprintf("%s%s %s",
		baselineStyle.Render(strings.Repeat("█", baseline)),
		upsellStyle.Render(strings.Repeat("█", upsell)),
		mutedStyle.Render(FormatPercent(upsellPct)+" upsell"),
	)
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / max * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderStackedBar renders one chart row: the label, the baseline segment,
// then the upsell segment stacked on its end, scaled against maxValue.
func RenderStackedBar(label string, baseline, upsell, maxValue float64, maxWidth int) string {
	if maxValue <= 0 || maxWidth <= 0 {
		return fmt.Sprintf("  %s", label)
	}
	baseLen := barLen(baseline, maxValue, maxWidth)
	upLen := barLen(baseline+upsell, maxValue, maxWidth) - baseLen
	if upLen < 0 {
		upLen = 0
	}

	return fmt.Sprintf("  %s %s%s %s",
		mutedStyle.Render(label),
		baselineStyle.Render(strings.Repeat("█", baseLen)),
		upsellStyle.Render(strings.Repeat("█", upLen)),
		dimStyle.Render(FormatCompact(baseline+upsell)),
	)
}

func barLen(value, maxValue float64, maxWidth int) int {
	n := int(value / maxValue * float64(maxWidth))
	if n < 0 {
		return 0
	}
	if n > maxWidth {
		return maxWidth
	}
	return n
}

// RenderLegend renders the baseline/upsell color key.
func RenderLegend() string {
	return fmt.Sprintf("  %s Baseline Revenue   %s Upsell Revenue",
		baselineStyle.Render("█"), upsellStyle.Render("█"))
}
