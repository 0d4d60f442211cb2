package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/upsell/internal/export"

	"github.com/spf13/cobra"
)

var (
	flagOutput  string
	flagCompany string
	flagNoGuide bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the analysis as a PDF report",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output path (default from config)")
	exportCmd.Flags().StringVar(&flagCompany, "company", "", "Company name shown on the report")
	exportCmd.Flags().BoolVar(&flagNoGuide, "no-guide", false, "Leave out the educational appendix")
	rootCmd.AddCommand(exportCmd)
}

func exportOptions() export.Options {
	company := appCfg.Report.CompanyName
	if flagCompany != "" {
		company = flagCompany
	}
	return export.Options{
		CompanyName:  company,
		Generated:    time.Now(),
		IncludeGuide: !flagNoGuide,
	}
}

func runExport(cmd *cobra.Command, _ []string) error {
	rep, err := buildReport(cmd)
	if err != nil {
		return err
	}

	path := flagOutput
	if path == "" {
		path = appCfg.Report.FileName
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Rendering PDF...\n")
	}

	written, err := export.WriteFile(path, rep, exportOptions())
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Printf("  Analysis downloaded successfully!\n")
	fmt.Printf("  Saved to %s\n", written)
	return nil
}
