package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/upsell/internal/report"
	"github.com/theirongolddev/upsell/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	widths := LayoutRow(100, 3)
	if len(widths) != 3 {
		t.Fatalf("len = %d, want 3", len(widths))
	}
	sum := 0
	for _, w := range widths {
		sum += w
	}
	if sum != 100 {
		t.Fatalf("sum = %d, want 100", sum)
	}
	if widths[0] != 34 || widths[2] != 33 {
		t.Fatalf("widths = %v, want [34 33 33]", widths)
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow(n=0) should be nil")
	}
}

func TestCardRowPadsShorterCards(t *testing.T) {
	theme.SetActive("evergreen")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	if lipgloss.Height(shortCard) >= lipgloss.Height(tallCard) {
		t.Fatal("test setup: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != lipgloss.Height(tallCard) {
		t.Fatalf("joined height = %d, want %d", len(lines), lipgloss.Height(tallCard))
	}

	want := lipgloss.Width(tallCard) + lipgloss.Width(shortCard)
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Fatalf("line %d width = %d, want %d", i, w, want)
		}
		if !strings.Contains(line, "\x1b[") {
			t.Fatalf("line %d has no styling: %q", i, line)
		}
	}
}

func TestMetricCardRow(t *testing.T) {
	cards := []report.Card{
		{Title: "Baseline Revenue", Value: "₹60,00,000", Note: "After 12 months"},
		{Title: "Upsell Revenue", Value: "₹12,00,000", Note: "16.7% of total revenue", Highlight: true},
		{Title: "Total Revenue", Value: "₹72,00,000", Note: "Projected final revenue"},
	}
	row := MetricCardRow(cards, 90)
	if w := lipgloss.Width(row); w != 90 {
		t.Fatalf("row width = %d, want 90", w)
	}
	for _, c := range cards {
		if !strings.Contains(row, c.Title) || !strings.Contains(row, c.Value) {
			t.Fatalf("row missing card %q", c.Title)
		}
	}
	if MetricCardRow(nil, 90) != "" {
		t.Fatal("empty card list should render nothing")
	}
}

func TestStackedBarChart(t *testing.T) {
	baseline := []float64{100, 200, 300, 400}
	upsell := []float64{10, 20, 30, 40}
	labels := []string{"1", "2", "3", "4"}

	out := StackedBarChart(baseline, upsell, labels, 40, 8)
	if out == "" {
		t.Fatal("chart is empty")
	}
	if !strings.Contains(out, "█") {
		t.Fatal("chart has no bars")
	}
	lines := strings.Split(out, "\n")
	if last := lines[len(lines)-1]; !strings.Contains(last, "1") || !strings.Contains(last, "4") {
		t.Fatalf("label row = %q, want month labels", last)
	}

	if got := StackedBarChart([]float64{1}, nil, nil, 40, 8); got != "" {
		t.Fatalf("mismatched series rendered %q", got)
	}
	// All-zero data still renders an axis.
	if got := StackedBarChart([]float64{0, 0}, []float64{0, 0}, nil, 40, 8); !strings.Contains(got, "└") {
		t.Fatalf("zero chart missing axis: %q", got)
	}
	// Too small for bars falls back to a sparkline.
	if got := StackedBarChart(baseline, upsell, nil, 10, 2); strings.Contains(got, "└") {
		t.Fatalf("small chart should be a sparkline, got %q", got)
	}
}

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 1},
		{100, 20},
		{5_565_000, 1_000_000},
		{40_000, 5_000},
	}
	for _, tc := range tests {
		if got := chartTickStep(tc.in); got != tc.want {
			t.Fatalf("chartTickStep(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5, "5"},
		{50_000, "50K"},
		{1_500_000, "1.5M"},
		{2_000_000, "2M"},
		{3_000_000_000, "3B"},
	}
	for _, tc := range tests {
		if got := formatChartLabel(tc.in); got != tc.want {
			t.Fatalf("formatChartLabel(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplitBarWidth(t *testing.T) {
	for _, pct := range []float64{0, 5.66, 50, 100, 140} {
		if w := lipgloss.Width(SplitBar(pct, 30)); w != 30 {
			t.Fatalf("SplitBar(%v) width = %d, want 30", pct, w)
		}
	}
}

func TestProgressBar(t *testing.T) {
	out := ProgressBar(0.5, 10)
	if !strings.Contains(out, "50%") {
		t.Fatalf("ProgressBar = %q, want 50%%", out)
	}
	if got := strings.Count(out, "█"); got != 5 {
		t.Fatalf("filled cells = %d, want 5", got)
	}
}

func TestRenderStatusBar(t *testing.T) {
	out := RenderStatusBar(80, "[?]help  [q]uit", Toast{Text: "Results calculated successfully", Kind: ToastSuccess})
	if w := lipgloss.Width(out); w != 80 {
		t.Fatalf("width = %d, want 80", w)
	}
	if !strings.Contains(out, "Results calculated successfully") || !strings.Contains(out, "[q]uit") {
		t.Fatalf("status bar = %q", out)
	}

	// Narrow terminals drop the hints and keep the toast.
	narrow := RenderStatusBar(30, "[?]help  [q]uit  [p]df  [m]ail", Toast{Text: "Saved"})
	if strings.Contains(narrow, "[m]ail") || !strings.Contains(narrow, "Saved") {
		t.Fatalf("narrow status bar = %q", narrow)
	}
}

func TestTabs(t *testing.T) {
	if got := TabIdxByKey('o'); got != 1 {
		t.Fatalf("TabIdxByKey('o') = %d, want 1", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Fatalf("TabIdxByKey('z') = %d, want -1", got)
	}
	for _, tab := range Tabs {
		want := len(tab.Name) + 2
		if got := TabVisualWidth(tab, true); got != want {
			t.Fatalf("active %s width = %d, want %d", tab.Name, got, want)
		}
		if got := TabVisualWidth(tab, false); got != want {
			t.Fatalf("inactive %s width = %d, want %d", tab.Name, got, want)
		}
	}

	bar := RenderTabBar(0, 60)
	if lines := strings.Split(bar, "\n"); len(lines) != 2 {
		t.Fatalf("tab bar lines = %d, want 2", len(lines))
	}
}
