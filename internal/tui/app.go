// Package tui provides the interactive Bubble Tea calculator for upsell.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/upsell/internal/cli"
	"github.com/theirongolddev/upsell/internal/config"
	"github.com/theirongolddev/upsell/internal/content"
	"github.com/theirongolddev/upsell/internal/export"
	"github.com/theirongolddev/upsell/internal/model"
	"github.com/theirongolddev/upsell/internal/notify"
	"github.com/theirongolddev/upsell/internal/projection"
	"github.com/theirongolddev/upsell/internal/report"
	"github.com/theirongolddev/upsell/internal/tui/components"
	"github.com/theirongolddev/upsell/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Toast texts shown in the status bar.
const (
	toastCalculated = "Results calculated successfully"
	toastDownloaded = "Analysis downloaded successfully!"
)

const toastTTL = 3 * time.Second

// ExportedMsg is sent when the PDF has been written.
type ExportedMsg struct {
	Path string
	Err  error
}

// EmailSentMsg is sent when the simulated delivery finishes.
type EmailSentMsg struct {
	Receipt notify.Receipt
	Err     error
}

type formKind int

const (
	formNone formKind = iota
	formInput
	formEmail
	formSetup
)

const (
	tabResults = iota
	tabMonthly
	tabLearn
)

// Options configures a new App.
type Options struct {
	Input     model.Input
	Config    config.Config
	Mailer    notify.Mailer
	NeedSetup bool // show the setup wizard before the calculator
}

// App is the root Bubble Tea model.
type App struct {
	cfg    config.Config
	mailer notify.Mailer

	// Data
	input model.Input
	rep   report.Report
	err   error
	guide content.Guide

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	selInput      int // index into config.InputBounds
	monthlyOffset int
	learn         viewport.Model

	// Forms (huh). Answers live behind pointers so they survive the
	// value copies of Update.
	form      *huh.Form
	formKind  formKind
	inputVals *inputValues
	emailVals *emailValues
	setupVals *SetupValues

	// Simulated email delivery
	spinner   spinner.Model
	sending   bool
	sendStart time.Time

	toast      components.Toast
	toastUntil time.Time
}

const (
	minTerminalWidth  = 80
	compactWidth      = 120
	maxContentWidth   = 180
	minContentHeight  = 5
	minHalfPageScroll = 3
)

// NewApp creates the calculator and runs the first projection.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	mailer := opts.Mailer
	if mailer == nil {
		mailer = notify.NewSimulated(time.Duration(opts.Config.Email.SimulateDelayMS) * time.Millisecond)
	}

	a := App{
		cfg:     opts.Config,
		mailer:  mailer,
		guide:   content.Load(),
		spinner: sp,
		learn:   viewport.New(0, 0),
	}
	a.calculate(opts.Input)

	if opts.NeedSetup {
		vals := NewSetupValues(opts.Config)
		a.setupVals = &vals
		a.openForm(formSetup, NewSetupForm(a.setupVals))
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion, tickCmd()}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	return tea.Batch(cmds...)
}

// calculate projects in and rebuilds the report. On invalid input the
// previous report stays on screen.
func (a *App) calculate(in model.Input) bool {
	a.input = in
	res, err := projection.Project(in)
	if err != nil {
		a.err = err
		return false
	}
	a.err = nil
	a.rep = report.Build(in, res)
	a.monthlyOffset = 0
	return true
}

func (a *App) setToast(text string, kind components.ToastKind) {
	a.toast = components.Toast{Text: text, Kind: kind}
	a.toastUntil = time.Now().Add(toastTTL)
}

func (a *App) openForm(kind formKind, f *huh.Form) tea.Cmd {
	a.formKind = kind
	a.form = f
	a.showHelp = false
	if a.width > 0 {
		a.form = a.form.WithWidth(a.formWidth())
	}
	return a.form.Init()
}

func (a App) formWidth() int {
	w := a.width - 8
	if w > 72 {
		w = 72
	}
	if w < 30 {
		w = 30
	}
	return w
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeLearn()
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.form != nil || a.sending {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.form != nil {
			if key == "esc" {
				a.closeForm()
				return a, nil
			}
			return a.updateForm(msg)
		}

		if a.sending {
			return a, nil
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "e":
			vals := newInputValues(a.input)
			a.inputVals = &vals
			return a, a.openForm(formInput, newInputForm(a.inputVals))
		case "p":
			return a, exportCmd(a.rep, a.cfg.Report.FileName, a.exportOptions())
		case "m":
			a.emailVals = &emailValues{company: a.cfg.Report.CompanyName}
			return a, a.openForm(formEmail, newEmailForm(a.emailVals))
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}

		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		switch a.activeTab {
		case tabResults:
			return a.updateResultsKeys(key)
		case tabMonthly:
			return a.updateMonthlyKeys(key), nil
		case tabLearn:
			var cmd tea.Cmd
			a.learn, cmd = a.learn.Update(msg)
			return a, cmd
		}
		return a, nil

	case ExportedMsg:
		if msg.Err != nil {
			a.setToast("Export failed: "+msg.Err.Error(), components.ToastError)
			return a, nil
		}
		a.setToast(toastDownloaded+" "+msg.Path, components.ToastSuccess)
		return a, nil

	case EmailSentMsg:
		a.sending = false
		if msg.Err != nil {
			a.setToast("Email failed: "+msg.Err.Error(), components.ToastError)
			return a, nil
		}
		a.setToast(notify.SuccessMessage, components.ToastSuccess)
		return a, nil

	case spinner.TickMsg:
		if a.sending {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		if a.toast.Text != "" && time.Now().After(a.toastUntil) {
			a.toast = components.Toast{}
		}
		return a, tickCmd()
	}

	// Forward unhandled messages to the active form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}

	return a, nil
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		kind := a.formKind
		a.closeForm()
		return a.submitForm(kind)
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}

	return a, cmd
}

func (a App) submitForm(kind formKind) (tea.Model, tea.Cmd) {
	switch kind {
	case formInput:
		in, err := a.inputVals.input()
		if err != nil {
			a.setToast(err.Error(), components.ToastError)
			return a, nil
		}
		if !a.calculate(in) {
			a.setToast(a.err.Error(), components.ToastError)
			return a, nil
		}
		a.setToast(toastCalculated, components.ToastSuccess)
		return a, nil

	case formEmail:
		a.sending = true
		a.sendStart = time.Now()
		return a, tea.Batch(
			a.spinner.Tick,
			sendEmailCmd(a.mailer, a.emailVals.request(), a.cfg, a.rep, a.exportOptions()),
		)

	case formSetup:
		cfg := a.cfg
		if err := a.setupVals.Apply(&cfg); err != nil {
			a.setToast("Setup not saved: "+err.Error(), components.ToastError)
			return a, nil
		}
		if err := config.Save(cfg); err != nil {
			a.setToast("Setup not saved: "+err.Error(), components.ToastError)
		}
		a.cfg = cfg
		theme.SetActive(cfg.Appearance.Theme)
		if err := cli.Configure(cfg.Appearance.Locale, cfg.Appearance.Currency); err != nil {
			a.setToast(err.Error(), components.ToastError)
		}
		a.calculate(cfg.Defaults)
		a.resizeLearn()
		return a, nil
	}
	return a, nil
}

func (a App) exportOptions() export.Options {
	return export.Options{
		CompanyName:  a.cfg.Report.CompanyName,
		Generated:    time.Now(),
		IncludeGuide: true,
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// contentHeight is the height left for tab content between the tab bar
// (two lines) and the status bar.
func (a App) contentHeight() int {
	h := a.height - 3
	if h < minContentHeight {
		h = minContentHeight
	}
	return h
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.form != nil {
		return a.viewForm()
	}

	if a.sending {
		return a.viewSending()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  upsell needs at least %d columns.\n  Current width: %d\n",
		a.width,
		minTerminalWidth,
		a.width,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(a.form.View()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewSending() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ upsell"))
	b.WriteString(subtitleStyle.Render(" · Email Your Analysis"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Sending to " + a.emailVals.request().Email))

	if delay := time.Duration(a.cfg.Email.SimulateDelayMS) * time.Millisecond; delay > 0 {
		pct := float64(time.Since(a.sendStart)) / float64(delay)
		if pct > 1 {
			pct = 1
		}
		b.WriteString("\n\n")
		b.WriteString(components.ProgressBar(pct, 36))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Upsell).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"r o l", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Scroll monthly table / guide"},
			{"^d ^u", "Half-page scroll"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"e", "Edit inputs and recalculate"},
			{"p", "Download PDF analysis"},
			{"m", "Email the analysis"},
			{"Esc", "Close form"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, "[?]help  [+/-]adjust  [e]dit  [p]df  [m]ail  [q]uit", a.toast)

	contentH := a.contentHeight()

	var body string
	switch a.activeTab {
	case tabResults:
		body = a.renderResultsTab(cw)
	case tabMonthly:
		body = a.renderMonthlyTab(cw)
	case tabLearn:
		body = a.renderLearnTab(cw)
	}

	body = padHeight(truncateHeight(body, contentH), contentH)
	body = fillLinesWithBackground(body, cw, t.Background)
	body = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, body,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// exportCmd writes the PDF report in the background.
func exportCmd(rep report.Report, path string, opts export.Options) tea.Cmd {
	return func() tea.Msg {
		p, err := export.WriteFile(path, rep, opts)
		return ExportedMsg{Path: p, Err: err}
	}
}

// sendEmailCmd renders the PDF, composes the message and hands it to the
// mailer in a background goroutine.
func sendEmailCmd(m notify.Mailer, req notify.Request, cfg config.Config, rep report.Report, opts export.Options) tea.Cmd {
	return func() tea.Msg {
		pdf, err := export.PDF(rep, opts)
		if err != nil {
			return EmailSentMsg{Err: fmt.Errorf("rendering pdf: %w", err)}
		}
		msg, err := notify.Compose(req, cfg.Email.From, rep, pdf, filepath.Base(cfg.Report.FileName))
		if err != nil {
			return EmailSentMsg{Err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		receipt, err := m.Send(ctx, msg)
		return EmailSentMsg{Receipt: receipt, Err: err}
	}
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.activeTab == tabLearn && msg.Y > 1 {
		var cmd tea.Cmd
		a.learn, cmd = a.learn.Update(msg)
		return a, cmd
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabMonthly {
			return a.updateMonthlyKeys("k"), nil
		}
		return a, nil

	case tea.MouseButtonWheelDown:
		if a.activeTab == tabMonthly {
			return a.updateMonthlyKeys("j"), nil
		}
		return a, nil

	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil
	}
	return a, nil
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
