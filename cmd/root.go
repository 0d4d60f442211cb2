package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/upsell/internal/cli"
	"github.com/theirongolddev/upsell/internal/config"
	"github.com/theirongolddev/upsell/internal/model"
	"github.com/theirongolddev/upsell/internal/projection"
	"github.com/theirongolddev/upsell/internal/report"
	"github.com/theirongolddev/upsell/internal/scenario"
	"github.com/theirongolddev/upsell/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagCustomers   int
	flagRevenue     float64
	flagConversion  float64
	flagUpsellValue float64
	flagGrowth      float64
	flagMonths      int
	flagScenario    string
	flagEnvFile     string
	flagQuiet       bool
)

// appCfg is loaded once per invocation by loadSettings.
var appCfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "upsell",
	Short: "SaaS upsell revenue calculator",
	Long: "Project how upselling your existing customers grows revenue:\n" +
		"baseline vs upsell revenue, month by month, with PDF and email reports.",
	PersistentPreRunE: loadSettings,
	RunE:              runProject,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&flagCustomers, "customers", "c", 0, "Current number of customers")
	pf.Float64VarP(&flagRevenue, "revenue", "r", 0, "Average monthly revenue per customer")
	pf.Float64Var(&flagConversion, "conversion", 0, "Upsell conversion rate (percent)")
	pf.Float64VarP(&flagUpsellValue, "upsell-value", "u", 0, "Average upsell value per converted customer")
	pf.Float64VarP(&flagGrowth, "growth", "g", 0, "Monthly customer growth rate (percent)")
	pf.IntVarP(&flagMonths, "months", "m", 0, "Projection timeframe in months")
	pf.StringVarP(&flagScenario, "scenario", "s", "", "Built-in scenario name or YAML/JSON scenario file")
	pf.StringVar(&flagEnvFile, "env-file", "", "Load environment overrides from this file instead of .env")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadSettings reads .env, the config file and UPSELL_* overrides, then
// applies the appearance settings to the formatters and theme.
func loadSettings(_ *cobra.Command, _ []string) error {
	var envFiles []string
	if flagEnvFile != "" {
		envFiles = append(envFiles, flagEnvFile)
	}
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v (using defaults)\n", err)
	}
	appCfg = cfg

	if err := cli.Configure(cfg.Appearance.Locale, cfg.Appearance.Currency); err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v\n", err)
	}
	theme.SetActive(cfg.Appearance.Theme)
	return nil
}

// resolveInput layers the inputs: config defaults, then the --scenario,
// then any input flag given explicitly.
func resolveInput(cmd *cobra.Command) (model.Input, error) {
	in := appCfg.Defaults
	if flagScenario != "" {
		sc, err := scenario.Resolve(flagScenario, in)
		if err != nil {
			return in, err
		}
		in = sc.Input
	}

	flags := cmd.Flags()
	if flags.Changed("customers") {
		in.CurrentCustomers = flagCustomers
	}
	if flags.Changed("revenue") {
		in.AverageRevenue = flagRevenue
	}
	if flags.Changed("conversion") {
		in.UpsellConversionRate = flagConversion
	}
	if flags.Changed("upsell-value") {
		in.UpsellAverageValue = flagUpsellValue
	}
	if flags.Changed("growth") {
		in.GrowthRate = flagGrowth
	}
	if flags.Changed("months") {
		in.Timeframe = flagMonths
	}
	return in, nil
}

// buildReport is the shared projection path used by all commands.
func buildReport(cmd *cobra.Command) (report.Report, error) {
	in, err := resolveInput(cmd)
	if err != nil {
		return report.Report{}, err
	}
	res, err := projection.Project(in)
	if err != nil {
		return report.Report{Input: in}, err
	}
	return report.Build(in, res), nil
}
