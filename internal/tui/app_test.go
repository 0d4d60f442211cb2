package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/upsell/internal/config"
	"github.com/theirongolddev/upsell/internal/model"
	"github.com/theirongolddev/upsell/internal/notify"
	"github.com/theirongolddev/upsell/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newTestApp(t *testing.T) App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Report.FileName = filepath.Join(t.TempDir(), "analysis.pdf")
	cfg.Email.SimulateDelayMS = 0

	a := NewApp(Options{
		Input:  model.DefaultInput(),
		Config: cfg,
		Mailer: notify.NewSimulated(0),
	})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m.(App)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return app, cmd
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < len(components.Tabs)-1 {
				pos++ // separator
			}
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("x past last tab -> %d, want -1", got)
		}
	}
}

func TestNewAppProjects(t *testing.T) {
	a := newTestApp(t)
	if a.err != nil {
		t.Fatalf("err = %v", a.err)
	}
	if got := len(a.rep.Result.MonthlyData); got != 12 {
		t.Fatalf("months = %d, want 12", got)
	}

	view := a.View()
	for _, want := range []string{"Baseline Revenue", "Upsell Revenue", "Total Revenue", "Results"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestNewAppInvalidInput(t *testing.T) {
	in := model.DefaultInput()
	in.Timeframe = 0
	a := NewApp(Options{Input: in, Config: config.DefaultConfig()})
	if a.err == nil {
		t.Fatal("expected an input error")
	}
	if a.input.Timeframe != 0 {
		t.Fatal("rejected input should still be offered for editing")
	}
}

func TestTabKeys(t *testing.T) {
	a := newTestApp(t)

	a, _ = press(t, a, keyMsg("o"))
	if a.activeTab != tabMonthly {
		t.Fatalf("activeTab = %d, want monthly", a.activeTab)
	}
	a, _ = press(t, a, keyMsg("l"))
	if a.activeTab != tabLearn {
		t.Fatalf("activeTab = %d, want learn", a.activeTab)
	}
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyRight})
	if a.activeTab != tabResults {
		t.Fatalf("activeTab = %d, want results after wrap", a.activeTab)
	}
}

func TestEditFormOpensAndCancels(t *testing.T) {
	a := newTestApp(t)

	a, _ = press(t, a, keyMsg("e"))
	if a.form == nil || a.formKind != formInput {
		t.Fatal("e did not open the input form")
	}
	if a.inputVals[5] != "12" {
		t.Fatalf("timeframe field = %q, want 12", a.inputVals[5])
	}

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.form != nil {
		t.Fatal("esc did not close the form")
	}
}

func TestSubmitInputForm(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, keyMsg("e"))

	a.inputVals[5] = "24"
	a.closeForm()
	m, _ := a.submitForm(formInput)
	a = m.(App)

	if got := len(a.rep.Result.MonthlyData); got != 24 {
		t.Fatalf("months = %d, want 24", got)
	}
	if a.toast.Text != toastCalculated {
		t.Fatalf("toast = %q, want %q", a.toast.Text, toastCalculated)
	}
}

func TestMonthlyScrollClamps(t *testing.T) {
	a := newTestApp(t)
	in := model.DefaultInput()
	in.Timeframe = 60
	a.calculate(in)
	a.activeTab = tabMonthly

	a, _ = press(t, a, keyMsg("G"))
	if a.monthlyOffset != a.maxMonthlyOffset() || a.monthlyOffset == 0 {
		t.Fatalf("offset = %d, want max %d", a.monthlyOffset, a.maxMonthlyOffset())
	}
	a, _ = press(t, a, keyMsg("j"))
	if a.monthlyOffset != a.maxMonthlyOffset() {
		t.Fatal("offset moved past the last row")
	}
	a, _ = press(t, a, keyMsg("g"))
	a, _ = press(t, a, keyMsg("k"))
	if a.monthlyOffset != 0 {
		t.Fatalf("offset = %d, want 0", a.monthlyOffset)
	}

	if view := a.View(); !strings.Contains(view, "Total") {
		t.Fatal("monthly view missing totals row")
	}
}

func TestExportKey(t *testing.T) {
	a := newTestApp(t)

	_, cmd := press(t, a, keyMsg("p"))
	if cmd == nil {
		t.Fatal("p returned no command")
	}
	msg, ok := cmd().(ExportedMsg)
	if !ok {
		t.Fatalf("command returned %T, want ExportedMsg", msg)
	}
	if msg.Err != nil {
		t.Fatalf("export: %v", msg.Err)
	}
	if _, err := os.Stat(msg.Path); err != nil {
		t.Fatalf("exported file: %v", err)
	}

	a, _ = press(t, a, msg)
	if !strings.HasPrefix(a.toast.Text, toastDownloaded) {
		t.Fatalf("toast = %q", a.toast.Text)
	}
}

func TestSendEmail(t *testing.T) {
	a := newTestApp(t)
	mailer := notify.NewSimulated(0)

	cmd := sendEmailCmd(mailer, notify.Request{Email: "ops@example.com"}, a.cfg, a.rep, a.exportOptions())
	msg, ok := cmd().(EmailSentMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("send = %+v", msg)
	}
	if got := len(mailer.Sent()); got != 1 {
		t.Fatalf("sent = %d, want 1", got)
	}
	if msg.Receipt.Attachments != 1 {
		t.Fatalf("attachments = %d, want 1", msg.Receipt.Attachments)
	}

	a.sending = true
	a, _ = press(t, a, msg)
	if a.sending || a.toast.Text != notify.SuccessMessage {
		t.Fatalf("sending=%v toast=%q", a.sending, a.toast.Text)
	}
}

func TestToastExpires(t *testing.T) {
	a := newTestApp(t)
	a.setToast("hello", components.ToastInfo)
	a.toastUntil = time.Now().Add(-time.Second)

	a, _ = press(t, a, tickMsg{})
	if a.toast.Text != "" {
		t.Fatalf("toast = %q, want cleared", a.toast.Text)
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(a.View(), "Terminal too narrow") {
		t.Fatal("narrow terminal warning missing")
	}
}

func TestResultsKeysStepSelectedInput(t *testing.T) {
	a := newTestApp(t)

	a, _ = press(t, a, keyMsg("+"))
	if got := a.rep.Input.CurrentCustomers; got != 1100 {
		t.Fatalf("CurrentCustomers = %d, want 1100", got)
	}
	if got := a.rep.Result.MonthlyData[0].Customers; got != 1155 {
		t.Fatalf("month 1 customers = %d, want 1155", got)
	}

	// k wraps from the first input to the timeframe.
	a, _ = press(t, a, keyMsg("k"))
	if a.selInput != 5 {
		t.Fatalf("selInput = %d, want 5", a.selInput)
	}
	a, _ = press(t, a, keyMsg("-"))
	if got := a.rep.Input.Timeframe; got != 11 {
		t.Fatalf("Timeframe = %d, want 11", got)
	}
	if got := len(a.rep.Result.MonthlyData); got != 11 {
		t.Fatalf("len(MonthlyData) = %d, want 11", got)
	}

	view := a.View()
	if !strings.Contains(view, "▸ Projection Timeframe") {
		t.Fatal("selected input is not marked in the view")
	}
}

func TestResultsKeysStopAtSliderMax(t *testing.T) {
	a := newTestApp(t)
	in := model.DefaultInput()
	in.Timeframe = 36
	a.calculate(in)
	a.selInput = 5

	a, _ = press(t, a, keyMsg("+"))
	if got := a.rep.Input.Timeframe; got != 36 {
		t.Fatalf("Timeframe = %d, want slider max 36", got)
	}

	// A typed value past the slider keeps stepping up to the input limit.
	in.Timeframe = 59
	a.calculate(in)
	a, _ = press(t, a, keyMsg("+"))
	a, _ = press(t, a, keyMsg("+"))
	if got := a.rep.Input.Timeframe; got != 60 {
		t.Fatalf("Timeframe = %d, want 60", got)
	}
}
