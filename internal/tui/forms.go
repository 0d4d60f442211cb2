package tui

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/theirongolddev/upsell/internal/cli"
	"github.com/theirongolddev/upsell/internal/config"
	"github.com/theirongolddev/upsell/internal/model"
	"github.com/theirongolddev/upsell/internal/notify"
	"github.com/theirongolddev/upsell/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// inputValues holds the text of the six calculator fields while a form is
// being edited, in config.InputBounds order.
type inputValues [6]string

func newInputValues(in model.Input) inputValues {
	return inputValues{
		strconv.Itoa(in.CurrentCustomers),
		formatField(in.AverageRevenue),
		formatField(in.UpsellConversionRate),
		formatField(in.UpsellAverageValue),
		formatField(in.GrowthRate),
		strconv.Itoa(in.Timeframe),
	}
}

func formatField(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// groupedNumber matches plain digits or digits grouped by commas in
// thousands (1,000,000) or lakhs (10,00,000), with an optional fraction.
var groupedNumber = regexp.MustCompile(`^-?(\d+|\d{1,3}(,\d{3})+|\d{1,2}(,\d{2})*,\d{3})(\.\d+)?$`)

// parseField accepts "5,000", "15%", "₹2000" and plain numbers. Anything
// else, including exponents and stray letters, is rejected.
func parseField(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean, _ = cli.TrimSymbol(clean)
	clean = strings.TrimSpace(strings.TrimSuffix(clean, "%"))
	if clean == "" {
		return 0, errors.New("enter a number")
	}
	if !groupedNumber.MatchString(clean) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(clean, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func boundValidator(b config.Bound, integer bool) func(string) error {
	return func(s string) error {
		v, err := parseField(s)
		if err != nil {
			return err
		}
		if integer && v != float64(int64(v)) {
			return errors.New("enter a whole number")
		}
		if v < b.Min || v > b.InputMax {
			return fmt.Errorf("must be between %s and %s", formatBound(b, b.Min), formatBound(b, b.InputMax))
		}
		return nil
	}
}

func formatBound(b config.Bound, v float64) string {
	switch {
	case b.Currency:
		return cli.FormatCurrency(v)
	case b.Percent:
		return cli.FormatRate(v)
	default:
		return cli.FormatNumber(int64(v))
	}
}

// input converts the edited text back into a model.Input.
func (v inputValues) input() (model.Input, error) {
	var nums [6]float64
	for i, s := range v {
		n, err := parseField(s)
		if err != nil {
			return model.Input{}, fmt.Errorf("%s: %w", config.InputBounds[i].Label, err)
		}
		nums[i] = n
	}
	return model.Input{
		CurrentCustomers:     int(nums[0]),
		AverageRevenue:       nums[1],
		UpsellConversionRate: nums[2],
		UpsellAverageValue:   nums[3],
		GrowthRate:           nums[4],
		Timeframe:            int(nums[5]),
	}, nil
}

func inputFields(v *inputValues) []huh.Field {
	fields := make([]huh.Field, 0, len(config.InputBounds))
	for i, b := range config.InputBounds {
		integer := b.Field == "currentCustomers" || b.Field == "timeframe"
		fields = append(fields, huh.NewInput().
			Title(b.Label).
			Description(fmt.Sprintf("%s to %s", formatBound(b, b.Min), formatBound(b, b.Max))).
			Value(&v[i]).
			Validate(boundValidator(b, integer)))
	}
	return fields
}

func formTheme() *huh.Theme {
	t := huh.ThemeBase()
	if theme.Active.Name != "terminal" {
		t = huh.ThemeCharm()
	}
	return t
}

func newInputForm(v *inputValues) *huh.Form {
	group := huh.NewGroup(inputFields(v)...).
		Title("SaaS Upsell Revenue Calculator").
		Description("Adjust your business inputs and press Enter on the last field to calculate.")
	return huh.NewForm(group).
		WithTheme(formTheme()).
		WithShowHelp(true)
}

type emailValues struct {
	email   string
	name    string
	company string
}

func (v emailValues) request() notify.Request {
	return notify.Request{
		Email:   strings.TrimSpace(v.email),
		Name:    strings.TrimSpace(v.name),
		Company: strings.TrimSpace(v.company),
	}
}

func newEmailForm(v *emailValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@company.com").
				Value(&v.email).
				Validate(func(s string) error {
					return notify.Request{Email: s}.Validate()
				}),
			huh.NewInput().
				Title("Name").
				Description("Optional").
				Value(&v.name),
			huh.NewInput().
				Title("Company").
				Description("Optional").
				Value(&v.company),
		).
			Title("Email Your Analysis").
			Description("The PDF report is attached to the message."),
	).
		WithTheme(formTheme()).
		WithShowHelp(true)
}

var currencyOptions = []string{"INR", "USD", "EUR", "GBP", "JPY"}

// SetupValues holds the answers of the first-run setup form.
type SetupValues struct {
	Theme    string
	Locale   string
	Currency string
	Company  string
	Defaults inputValues
}

// NewSetupValues seeds the setup form from cfg.
func NewSetupValues(cfg config.Config) SetupValues {
	return SetupValues{
		Theme:    cfg.Appearance.Theme,
		Locale:   cfg.Appearance.Locale,
		Currency: cfg.Appearance.Currency,
		Company:  cfg.Report.CompanyName,
		Defaults: newInputValues(cfg.Defaults),
	}
}

// NewSetupForm builds the setup wizard used by `upsell setup` and the first
// TUI launch.
func NewSetupForm(v *SetupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.Theme),
			huh.NewSelect[string]().
				Title("Currency").
				Options(huh.NewOptions(currencyOptions...)...).
				Value(&v.Currency),
			huh.NewInput().
				Title("Number format locale").
				Description("BCP 47 tag, e.g. en-IN or en-US").
				Value(&v.Locale).
				Validate(func(s string) error {
					_, err := cli.NewMoney(strings.TrimSpace(s), "USD")
					return err
				}),
			huh.NewInput().
				Title("Company name").
				Description("Shown on exported reports").
				Value(&v.Company),
		).Title("Welcome to upsell!").Description("Let's set up a few things."),
		huh.NewGroup(inputFields(&v.Defaults)...).
			Title("Default inputs").
			Description("Used whenever a value isn't given on the command line."),
	).
		WithTheme(formTheme()).
		WithShowHelp(true)
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) error {
	locale := strings.TrimSpace(v.Locale)
	if _, err := cli.NewMoney(locale, v.Currency); err != nil {
		return err
	}
	in, err := v.Defaults.input()
	if err != nil {
		return err
	}

	cfg.Appearance.Theme = v.Theme
	cfg.Appearance.Locale = locale
	cfg.Appearance.Currency = v.Currency
	if company := strings.TrimSpace(v.Company); company != "" {
		cfg.Report.CompanyName = company
	}
	cfg.Defaults = in
	return nil
}
