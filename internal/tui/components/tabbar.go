package components

import (
	"strings"

	"github.com/theirongolddev/upsell/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Results", Key: 'r', KeyPos: 0},
	{Name: "Monthly", Key: 'o', KeyPos: 1},
	{Name: "Learn", Key: 'l', KeyPos: 0},
}

func renderTab(tab Tab, active bool) string {
	t := theme.Active

	if active {
		return lipgloss.NewStyle().
			Foreground(t.Accent).
			Background(t.SurfaceHover).
			Bold(true).
			Padding(0, 1).
			Render(tab.Name)
	}

	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	pad := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		return pad +
			inactiveStyle.Render(tab.Name[:tab.KeyPos]) +
			keyStyle.Render(tab.Name[tab.KeyPos:tab.KeyPos+1]) +
			inactiveStyle.Render(tab.Name[tab.KeyPos+1:]) +
			pad
	}
	return pad + inactiveStyle.Render(tab.Name) +
		inactiveStyle.Render("[") + keyStyle.Render(string(tab.Key)) + inactiveStyle.Render("]") +
		pad
}

// TabVisualWidth returns the rendered width of a tab.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders the tab bar with the given active index, followed
// by a thin rule.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	sep := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface).Render("│")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}

	row := lipgloss.NewStyle().Background(t.Surface).Width(width).
		Render(strings.Join(parts, sep))
	rule := lipgloss.NewStyle().Foreground(t.Border).Background(t.Background).
		Render(strings.Repeat("─", max(width, 0)))

	return row + "\n" + rule
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
