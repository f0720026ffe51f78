package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"household/internal/app"
	"household/internal/cli"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Print restocking and saving suggestions",
	RunE:  runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	list, err := a.Suggestions.Suggest(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle("Household suggestions"))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderSuggestions(list))
	return nil
}
