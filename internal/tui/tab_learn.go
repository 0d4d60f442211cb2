package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/upsell/internal/content"
	"github.com/theirongolddev/upsell/internal/tui/components"
	"github.com/theirongolddev/upsell/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// resizeLearn fits the guide viewport inside a ContentCard spanning the
// content area and re-wraps the guide text.
func (a *App) resizeLearn() {
	w := components.CardInnerWidth(a.contentWidth())
	h := a.contentHeight() - 3 // card border + title
	if h < 1 {
		h = 1
	}
	a.learn.Width = w
	a.learn.Height = h
	a.learn.SetContent(renderGuide(a.guide, w))
}

func (a App) renderLearnTab(cw int) string {
	title := a.guide.Title
	if pct := a.learn.ScrollPercent(); a.learn.TotalLineCount() > a.learn.Height {
		title = fmt.Sprintf("%s (%.0f%%)", title, pct*100)
	}
	return components.ContentCard(title, a.learn.View(), cw)
}

// renderGuide lays out the educational guide for a terminal of width w.
func renderGuide(g content.Guide, w int) string {
	t := theme.Active
	if w < 20 {
		w = 20
	}

	wrap := lipgloss.NewStyle().Width(w).Background(t.Surface)
	subtitleStyle := wrap.Foreground(t.TextMuted).Italic(true)
	textStyle := wrap.Foreground(t.TextPrimary)
	headingStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	termStyle := lipgloss.NewStyle().Foreground(t.Upsell).Background(t.Surface).Bold(true)
	bulletStyle := wrap.Foreground(t.TextPrimary).Width(w - 2).PaddingLeft(2)
	stepNumStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(subtitleStyle.Render(g.Subtitle))
	b.WriteString("\n\n")
	b.WriteString(textStyle.Render(g.Intro))
	b.WriteString("\n")

	for _, s := range g.Sections {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render(s.Heading))
		b.WriteString("\n")
		if s.Body != "" {
			b.WriteString(textStyle.Render(s.Body))
			b.WriteString("\n")
		}
		for _, item := range s.Bullets {
			b.WriteString(bulletStyle.Render("• " + item))
			b.WriteString("\n")
		}
		for _, term := range s.Terms {
			b.WriteString(bulletStyle.Render(termStyle.Render(term.Term+":") + " " + term.Text))
			b.WriteString("\n")
		}
	}

	if g.Closing != "" {
		b.WriteString("\n")
		b.WriteString(textStyle.Render(g.Closing))
		b.WriteString("\n")
	}

	if len(g.Steps) > 0 {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("How to Use This Calculator"))
		b.WriteString("\n")
		for i, step := range g.Steps {
			line := stepNumStyle.Render(fmt.Sprintf("%d.", i+1)) + " " + termStyle.Render(step.Title)
			if step.Text != "" {
				line += " - " + step.Text
			}
			b.WriteString(bulletStyle.Render(line))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
