package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"household/internal/app"
	"household/internal/cli"
)

var predictCmd = &cobra.Command{
	Use:   "predict <resource_type>",
	Short: "Forecast usage of one resource type over the policy horizon",
	Args:  cobra.ExactArgs(1),
	RunE:  runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	f, err := a.Suggestions.PredictUsage(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), cli.RenderForecast(args[0], f))
	return nil
}
