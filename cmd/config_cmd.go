// Package cmd implements the upsell CLI commands.
package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/upsell/internal/cli"
	"github.com/theirongolddev/upsell/internal/config"
	"github.com/theirongolddev/upsell/internal/report"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Defaults]")
	for _, row := range report.InputRows(cfg.Defaults) {
		fmt.Printf("    %-28s %s\n", row[0]+":", row[1])
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:    %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Locale:   %s\n", cfg.Appearance.Locale)
	fmt.Printf("    Currency: %s (%s)\n", cfg.Appearance.Currency, cli.Active().Symbol())
	fmt.Println()

	fmt.Println("  [Report]")
	fmt.Printf("    Company name: %s\n", cfg.Report.CompanyName)
	fmt.Printf("    File name:    %s\n", cfg.Report.FileName)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	if len(cfg.Server.AllowedOrigins) > 0 {
		fmt.Printf("    Allowed origins: %s\n", strings.Join(cfg.Server.AllowedOrigins, ", "))
	} else {
		fmt.Println("    Allowed origins: any")
	}
	fmt.Println()

	fmt.Println("  [Email]")
	fmt.Printf("    From:  %s\n", cfg.Email.From)
	fmt.Printf("    Delay: %dms (simulated)\n", cfg.Email.SimulateDelayMS)
	fmt.Println()

	fmt.Println("  Run `upsell setup` to reconfigure.")
	return nil
}
