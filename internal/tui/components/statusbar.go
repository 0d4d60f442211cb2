package components

import (
	"strings"

	"github.com/theirongolddev/upsell/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// ToastKind selects the color of a status bar toast.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

// Toast is a short-lived status message.
type Toast struct {
	Text string
	Kind ToastKind
}

// RenderStatusBar renders the bottom status bar: key hints on the left,
// the toast (if any) on the right.
func RenderStatusBar(width int, hints string, toast Toast) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	left := base.Render(" " + hints)
	right := ""
	if toast.Text != "" {
		color := t.Accent
		switch toast.Kind {
		case ToastSuccess:
			color = t.Green
		case ToastError:
			color = t.Red
		}
		right = lipgloss.NewStyle().
			Foreground(color).
			Background(t.SurfaceHover).
			Bold(true).
			Padding(0, 1).
			Render(toast.Text) + base.Render(" ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Toast wins over hints when space is short.
		return lipgloss.NewStyle().Background(t.Surface).Width(width).MaxWidth(width).Render(right)
	}

	return left + base.Render(strings.Repeat(" ", padding)) + right
}
