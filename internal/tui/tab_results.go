package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/upsell/internal/cli"
	"github.com/theirongolddev/upsell/internal/config"
	"github.com/theirongolddev/upsell/internal/model"
	"github.com/theirongolddev/upsell/internal/report"
	"github.com/theirongolddev/upsell/internal/tui/components"
	"github.com/theirongolddev/upsell/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) renderResultsTab(cw int) string {
	rep := a.rep
	var b strings.Builder

	if a.err != nil {
		b.WriteString(a.renderInputError(cw))
		b.WriteString("\n")
	}
	if len(rep.Result.MonthlyData) == 0 {
		return b.String()
	}

	// Row 1: summary cards
	b.WriteString(components.MetricCardRow(rep.Cards, cw))
	b.WriteString("\n")

	// Row 2: inputs + split next to the chart, stacked when compact
	if a.isCompactLayout() {
		b.WriteString(a.renderChartCard(cw, 8))
		b.WriteString("\n")
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			a.renderInputsCard(halves[0]),
			a.renderSplitCard(halves[1]),
		}))
		return b.String()
	}

	cols := components.LayoutRow(cw, 3)
	side := lipgloss.JoinVertical(lipgloss.Left,
		a.renderInputsCard(cols[0]),
		a.renderSplitCard(cols[0]),
	)
	b.WriteString(components.CardRow([]string{
		side,
		// Chart rows plus axis, labels, legend, title and border.
		a.renderChartCard(cols[1]+cols[2], lipgloss.Height(side)-6),
	}))
	return b.String()
}

// inputField returns input i in config.InputBounds order.
func inputField(in model.Input, i int) float64 {
	switch i {
	case 0:
		return float64(in.CurrentCustomers)
	case 1:
		return in.AverageRevenue
	case 2:
		return in.UpsellConversionRate
	case 3:
		return in.UpsellAverageValue
	case 4:
		return in.GrowthRate
	default:
		return float64(in.Timeframe)
	}
}

func setInputField(in *model.Input, i int, v float64) {
	switch i {
	case 0:
		in.CurrentCustomers = int(v)
	case 1:
		in.AverageRevenue = v
	case 2:
		in.UpsellConversionRate = v
	case 3:
		in.UpsellAverageValue = v
	case 4:
		in.GrowthRate = v
	default:
		in.Timeframe = int(v)
	}
}

// updateResultsKeys selects an input with j/k and steps it like a slider
// with +/-, re-projecting after every step.
func (a App) updateResultsKeys(key string) (App, tea.Cmd) {
	n := 0
	switch key {
	case "j", "down":
		a.selInput = (a.selInput + 1) % len(config.InputBounds)
		return a, nil
	case "k", "up":
		a.selInput = (a.selInput - 1 + len(config.InputBounds)) % len(config.InputBounds)
		return a, nil
	case "+", "=":
		n = 1
	case "-", "_":
		n = -1
	default:
		return a, nil
	}

	b := config.InputBounds[a.selInput]
	cur := inputField(a.input, a.selInput)
	next := b.Nudge(cur, n)
	if next == cur {
		return a, nil
	}
	in := a.input
	setInputField(&in, a.selInput, next)
	if !a.calculate(in) {
		a.setToast(a.err.Error(), components.ToastError)
	}
	return a, nil
}

func (a App) renderInputError(cw int) string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	body := errStyle.Render(a.err.Error()) + "\n" +
		hintStyle.Render("Press e to adjust the inputs.")
	return components.ContentCard("Invalid input", body, cw)
}

func (a App) renderInputsCard(w int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	selLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	selValueStyle := lipgloss.NewStyle().Foreground(t.Upsell).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface)

	inner := components.CardInnerWidth(w)
	rows := report.InputRows(a.rep.Input)

	var b strings.Builder
	for i, row := range rows {
		ls, vs, marker := labelStyle, valueStyle, "  "
		if i == a.selInput {
			ls, vs, marker = selLabelStyle, selValueStyle, "▸ "
		}
		value := row[1]
		labelW := inner - lipgloss.Width(value) - 1
		label := truncStr(marker+row[0], labelW)
		gap := inner - lipgloss.Width(label) - lipgloss.Width(value)
		if gap < 1 {
			gap = 1
		}
		b.WriteString(ls.Render(label))
		b.WriteString(space.Render(strings.Repeat(" ", gap)))
		b.WriteString(vs.Render(value))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return components.ContentCard("Business Inputs (j/k, +/-)", b.String(), w)
}

func (a App) renderSplitCard(w int) string {
	res := a.rep.Result
	inner := components.CardInnerWidth(w)

	body := components.SplitBar(res.UpsellPercentage, inner) + "\n" +
		components.SplitLegend(
			cli.FormatPercent(100-res.UpsellPercentage),
			cli.FormatPercent(res.UpsellPercentage),
		)
	return components.ContentCard("Revenue Split", body, w)
}

func (a App) renderChartCard(w, h int) string {
	if h < 6 {
		h = 6
	}
	points := a.rep.Chart
	baseline := make([]float64, len(points))
	upsell := make([]float64, len(points))
	labels := make([]string, len(points))
	for i, p := range points {
		baseline[i] = p.Baseline
		upsell[i] = p.Upsell
		labels[i] = strconv.Itoa(p.Period)
	}

	inner := components.CardInnerWidth(w)
	body := components.StackedBarChart(baseline, upsell, labels, inner, h) + "\n" +
		components.ChartLegend()

	title := fmt.Sprintf("Monthly Revenue Projection (%s)", cli.FormatMonths(a.rep.Input.Timeframe))
	return components.ContentCard(title, body, w)
}
