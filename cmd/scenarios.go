package cmd

import (
	"fmt"

	"github.com/theirongolddev/upsell/internal/cli"
	"github.com/theirongolddev/upsell/internal/projection"
	"github.com/theirongolddev/upsell/internal/scenario"

	"github.com/spf13/cobra"
)

var flagScenarioDescription string

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the built-in scenarios",
	RunE:  runScenarios,
}

var scenarioSaveCmd = &cobra.Command{
	Use:   "save <file.yaml|file.json> [name]",
	Short: "Save the resolved inputs as a scenario file",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runScenarioSave,
}

func init() {
	scenarioSaveCmd.Flags().StringVar(&flagScenarioDescription, "description", "", "Scenario description")
	scenariosCmd.AddCommand(scenarioSaveCmd)
	rootCmd.AddCommand(scenariosCmd)
}

func runScenarios(_ *cobra.Command, _ []string) error {
	t := cli.Table{
		Title:   "Built-in Scenarios",
		Headers: []string{"Name", "Customers", "Conversion", "Growth", "Final Month Total"},
	}
	for _, name := range scenario.BuiltinNames() {
		sc, err := scenario.Builtin(name)
		if err != nil {
			return err
		}
		total := "-"
		if res, err := projection.Project(sc.Input); err == nil {
			total = cli.FormatCurrency(res.TotalRevenue)
		}
		t.Rows = append(t.Rows, []string{
			name,
			cli.FormatNumber(int64(sc.Input.CurrentCustomers)),
			cli.FormatRate(sc.Input.UpsellConversionRate),
			cli.FormatRate(sc.Input.GrowthRate),
			total,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(t))
	fmt.Println("  Use one with: upsell --scenario <name>")
	return nil
}

func runScenarioSave(cmd *cobra.Command, args []string) error {
	in, err := resolveInput(cmd)
	if err != nil {
		return err
	}
	if err := projection.Validate(in); err != nil {
		return err
	}

	sc := scenario.Scenario{Name: "custom", Description: flagScenarioDescription, Input: in}
	if len(args) == 2 {
		sc.Name = args[1]
	}
	if err := scenario.Save(args[0], sc); err != nil {
		return err
	}

	fmt.Printf("  Saved scenario %q to %s\n", sc.Name, args[0])
	return nil
}
