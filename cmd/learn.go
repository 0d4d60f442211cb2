package cmd

import (
	"fmt"

	"github.com/theirongolddev/upsell/internal/content"

	"github.com/spf13/cobra"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Explain how upsell revenue works (markdown)",
	RunE:  runLearn,
}

func init() {
	rootCmd.AddCommand(learnCmd)
}

func runLearn(_ *cobra.Command, _ []string) error {
	fmt.Print(content.Load().Markdown())
	return nil
}
