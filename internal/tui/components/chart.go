package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/upsell/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// StackedBarChart renders vertical bars with the baseline segment at the
// bottom and the upsell segment stacked on top. baseline and upsell must
// have the same length; labels (optional) are drawn under the x axis.
func StackedBarChart(baseline, upsell []float64, labels []string, width, height int) string {
	n := len(baseline)
	if n == 0 || len(upsell) != n {
		return ""
	}

	t := theme.Active

	totals := make([]float64, n)
	maxVal := 0.0
	for i := range baseline {
		totals[i] = baseline[i] + upsell[i]
		if totals[i] > maxVal {
			maxVal = totals[i]
		}
	}
	if width < 15 || height < 3 {
		return Sparkline(totals, t.Accent)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Y-axis: compute tick step and ceiling
	tickStep := chartTickStep(maxVal)
	maxIntervals := height / 2
	if maxIntervals < 2 {
		maxIntervals = 2
	}
	for {
		k := int(math.Ceil(maxVal / tickStep))
		if k <= maxIntervals {
			break
		}
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := int(math.Round(ceiling / tickStep))
	if numIntervals < 1 {
		numIntervals = 1
	}

	rowsPerTick := height / numIntervals
	if rowsPerTick < 2 {
		rowsPerTick = 2
	}
	chartH := rowsPerTick * numIntervals

	yLabelW := len(formatChartLabel(ceiling)) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}
	tickLabels := make(map[int]string)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	}
	if barW < 1 {
		barW = 1
	}
	if barW > 6 {
		barW = 6
	}
	axisLen := n*barW + max(0, n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	baseStyle := lipgloss.NewStyle().Foreground(t.Baseline).Background(t.Surface)
	upStyle := lipgloss.NewStyle().Foreground(t.Upsell).Background(t.Surface)
	// A partial baseline block directly under upsell revenue.
	seamStyle := lipgloss.NewStyle().Foreground(t.Baseline).Background(t.Upsell)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder

	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i := range totals {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			base, total := baseline[i], totals[i]
			switch {
			case base >= rowTop:
				b.WriteString(baseStyle.Render(strings.Repeat("█", barW)))
			case base > rowBottom && total >= rowTop:
				idx := partialBlock(base, rowBottom, rowTop)
				b.WriteString(seamStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			case total >= rowTop:
				b.WriteString(upStyle.Render(strings.Repeat("█", barW)))
			case total > rowBottom:
				style := upStyle
				if upsell[i] == 0 {
					style = baseStyle
				}
				idx := partialBlock(total, rowBottom, rowTop)
				b.WriteString(style.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	// X-axis line with 0 label
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) == n {
		buf := []byte(strings.Repeat(" ", axisLen))
		lastEnd := -1
		for i, lbl := range labels {
			pos := i * (barW + gap)
			end := pos + len(lbl)
			if pos <= lastEnd || end > axisLen {
				continue
			}
			copy(buf[pos:end], lbl)
			lastEnd = end
		}

		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(strings.TrimRight(string(buf), " ")))
	}

	return b.String()
}

func partialBlock(v, bottom, top float64) int {
	idx := int((v - bottom) / (top - bottom) * 8)
	if idx > 8 {
		idx = 8
	}
	if idx < 1 {
		idx = 1
	}
	return idx
}

// ChartLegend renders the baseline/upsell color key.
func ChartLegend() string {
	t := theme.Active
	bg := lipgloss.NewStyle().Background(t.Surface)
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	return lipgloss.NewStyle().Foreground(t.Baseline).Background(t.Surface).Render("█") +
		label.Render(" Baseline Revenue") + bg.Render("   ") +
		lipgloss.NewStyle().Foreground(t.Upsell).Background(t.Surface).Render("█") +
		label.Render(" Upsell Revenue")
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e9:
		if v == math.Trunc(v/1e9)*1e9 {
			return fmt.Sprintf("%.0fB", v/1e9)
		}
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fK", v/1e3)
		}
		return fmt.Sprintf("%.1fK", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
