package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/theirongolddev/upsell/internal/cli"
	"github.com/theirongolddev/upsell/internal/model"
	"github.com/theirongolddev/upsell/internal/report"

	"github.com/spf13/cobra"
)

var flagJSON bool

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project baseline and upsell revenue (default command)",
	RunE:  runProject,
}

func init() {
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the projection as JSON")
	projectCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the projection as JSON")
	rootCmd.AddCommand(projectCmd)
}

type projectionJSON struct {
	Input      model.Input  `json:"input"`
	Result     model.Result `json:"result"`
	Cumulative model.Totals `json:"cumulative"`
}

func runProject(cmd *cobra.Command, _ []string) error {
	rep, err := buildReport(cmd)
	if err != nil {
		return err
	}

	if flagJSON {
		data, err := json.MarshalIndent(projectionJSON{
			Input:      rep.Input,
			Result:     rep.Result,
			Cumulative: rep.Cumulative,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding projection: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printSummary(rep)
	return nil
}

func printSummary(rep report.Report) {
	res := rep.Result

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("  Upsell Revenue Projection | %s", cli.FormatMonths(rep.Input.Timeframe))))
	fmt.Println()

	inputs := cli.Table{Title: "Business Inputs", Headers: []string{"Input", "Value"}}
	for _, row := range report.InputRows(rep.Input) {
		inputs.Rows = append(inputs.Rows, []string{row[0], row[1]})
	}
	fmt.Print(cli.RenderTable(inputs))

	cards := cli.Table{Title: "Final Month", Headers: []string{"Revenue", "Amount", ""}}
	for _, c := range rep.Cards {
		cards.Rows = append(cards.Rows, []string{c.Title, c.Value, c.Note})
	}
	fmt.Print(cli.RenderTable(cards))

	fmt.Printf("  Revenue Split\n")
	fmt.Printf("  %s\n", cli.RenderSplitBar(res.UpsellPercentage, 40))
	fmt.Printf("  Baseline %s · Upsell %s\n\n",
		cli.FormatPercent(100-res.UpsellPercentage),
		cli.FormatPercent(res.UpsellPercentage),
	)

	maxTotal := report.MaxTotal(rep.Chart)
	fmt.Printf("  Monthly Revenue  %s\n", cli.RenderSparkline(chartTotals(rep.Chart)))
	for _, p := range rep.Chart {
		label := fmt.Sprintf("M%-3s", strconv.Itoa(p.Period))
		fmt.Println(cli.RenderStackedBar(label, p.Baseline, p.Upsell, maxTotal, 40))
	}
	fmt.Println(cli.RenderLegend())
	fmt.Println()

	fmt.Printf("  Over %s: %s total, %s from upsells\n\n",
		cli.FormatMonths(rep.Input.Timeframe),
		cli.FormatCurrency(rep.Cumulative.TotalRevenue),
		cli.FormatCurrency(rep.Cumulative.UpsellRevenue),
	)
}

func chartTotals(points []report.Point) []float64 {
	vals := make([]float64, len(points))
	for i, p := range points {
		vals[i] = p.Total
	}
	return vals
}
