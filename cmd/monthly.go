package cmd

import (
	"fmt"

	"github.com/theirongolddev/upsell/internal/cli"
	"github.com/theirongolddev/upsell/internal/report"

	"github.com/spf13/cobra"
)

var flagCumulative bool

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Month-by-month revenue breakdown",
	RunE:  runMonthly,
}

func init() {
	monthlyCmd.Flags().BoolVar(&flagCumulative, "cumulative", true, "Append a row with totals across all months")
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(cmd *cobra.Command, _ []string) error {
	rep, err := buildReport(cmd)
	if err != nil {
		return err
	}

	rows := report.MonthlyRows(rep.Result.MonthlyData)
	if flagCumulative {
		rows = append(rows, report.TotalsRow(rep.Cumulative))
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("  Monthly Breakdown | %s", cli.FormatMonths(rep.Input.Timeframe))))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: report.MonthlyHeaders,
		Rows:    rows,
	}))
	return nil
}
