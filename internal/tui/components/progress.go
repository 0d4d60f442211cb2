package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/upsell/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a progress bar with percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	if width < 1 {
		width = 1
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	barColor := t.Accent
	if pct >= 0.8 {
		barColor = t.AccentBright
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// SplitBar renders the revenue split as a single bar: upsell share filled
// from the left, baseline share as the remainder. upsellPct is 0-100.
func SplitBar(upsellPct float64, barWidth int) string {
	t := theme.Active

	pct := upsellPct / 100
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if barWidth < 4 {
		barWidth = 4
	}

	bar := progress.New(
		progress.WithSolidFill(string(t.Upsell)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.Full = '█'
	bar.Empty = '█'
	bar.EmptyColor = string(t.Baseline)

	return bar.ViewAs(pct)
}

// SplitLegend renders the two revenue shares under a SplitBar.
func SplitLegend(baselineShare, upsellShare string) string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)
	return lipgloss.NewStyle().Foreground(t.Upsell).Background(t.Surface).Bold(true).Render(upsellShare) +
		label.Render(" upsell") + space.Render("   ") +
		lipgloss.NewStyle().Foreground(t.Baseline).Background(t.Surface).Bold(true).Render(baselineShare) +
		label.Render(" baseline")
}
