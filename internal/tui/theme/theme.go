// Package theme defines color themes for the upsell TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	SurfaceHover lipgloss.Color // Highlighted surface (active tab, toast)
	Border       lipgloss.Color // Subtle borders
	BorderAccent lipgloss.Color // Highlighted card and focus borders
	TextDim      lipgloss.Color // Lowest contrast text (hints, disabled)
	TextMuted    lipgloss.Color // Secondary text (labels, metadata)
	TextPrimary  lipgloss.Color // Primary content text
	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	Baseline     lipgloss.Color // Baseline revenue series
	Upsell       lipgloss.Color // Upsell revenue series
	Green        lipgloss.Color
	Orange       lipgloss.Color
	Red          lipgloss.Color
}

// Active is the currently selected theme.
var Active = Evergreen

// Evergreen is the default theme, built around the calculator's brand greens.
var Evergreen = Theme{
	Name:         "evergreen",
	Background:   lipgloss.Color("#0F1A17"),
	Surface:      lipgloss.Color("#16241F"),
	SurfaceHover: lipgloss.Color("#1F332C"),
	Border:       lipgloss.Color("#2C453C"),
	BorderAccent: lipgloss.Color("#7AC9A7"),
	TextDim:      lipgloss.Color("#4F6B60"),
	TextMuted:    lipgloss.Color("#8FA89D"),
	TextPrimary:  lipgloss.Color("#EEF6F2"),
	Accent:       lipgloss.Color("#7AC9A7"),
	AccentBright: lipgloss.Color("#A6E3C8"),
	Baseline:     lipgloss.Color("#3E8C74"),
	Upsell:       lipgloss.Color("#7AC9A7"),
	Green:        lipgloss.Color("#7AC9A7"),
	Orange:       lipgloss.Color("#E59F5A"),
	Red:          lipgloss.Color("#E0675E"),
}

// FlexokiDark is a warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Baseline:     lipgloss.Color("#4385BE"),
	Upsell:       lipgloss.Color("#879A39"),
	Green:        lipgloss.Color("#879A39"),
	Orange:       lipgloss.Color("#DA702C"),
	Red:          lipgloss.Color("#D14D41"),
}

// CatppuccinMocha is a warm pastel theme with soft, soothing colors.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   lipgloss.Color("#1E1E2E"),
	Surface:      lipgloss.Color("#313244"),
	SurfaceHover: lipgloss.Color("#45475A"),
	Border:       lipgloss.Color("#585B70"),
	BorderAccent: lipgloss.Color("#89B4FA"),
	TextDim:      lipgloss.Color("#6C7086"),
	TextMuted:    lipgloss.Color("#A6ADC8"),
	TextPrimary:  lipgloss.Color("#CDD6F4"),
	Accent:       lipgloss.Color("#89B4FA"),
	AccentBright: lipgloss.Color("#B4D0FB"),
	Baseline:     lipgloss.Color("#89B4FA"),
	Upsell:       lipgloss.Color("#A6E3A1"),
	Green:        lipgloss.Color("#A6E3A1"),
	Orange:       lipgloss.Color("#FAB387"),
	Red:          lipgloss.Color("#F38BA8"),
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Baseline:     lipgloss.Color("2"),
	Upsell:       lipgloss.Color("10"),
	Green:        lipgloss.Color("2"),
	Orange:       lipgloss.Color("3"),
	Red:          lipgloss.Color("1"),
}

// All available themes.
var All = []Theme{Evergreen, FlexokiDark, CatppuccinMocha, Terminal}

// Names returns the names of all themes in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns a theme by its name, defaulting to Evergreen.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Evergreen
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
