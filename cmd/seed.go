package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"household/internal/app"
	"household/internal/cli"
	"household/internal/config"
)

var errSeedMemory = errors.New("seed needs a persistent store: use --store sqlite or --store postgres")

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo items and a week of consumption logs into the configured store",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	// данные in-memory пропадут вместе с процессом
	if cfg.Store.Driver == config.DriverMemory || cfg.Store.Driver == "" {
		return errSeedMemory
	}

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	items, err := app.Seed(cmd.Context(), a.Inventory, time.Now())
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		exp := "-"
		if !it.ExpirationDate.IsZero() {
			exp = it.ExpirationDate.Format(time.DateOnly)
		}
		rows = append(rows, []string{
			strconv.FormatInt(it.ID, 10),
			it.Name,
			strconv.FormatFloat(it.Quantity, 'f', -1, 64) + " " + it.Unit,
			it.Category,
			exp,
		})
	}
	fmt.Fprint(cmd.OutOrStdout(), cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Seeded %d items into %s store", len(items), cfg.Store.Driver),
		Headers: []string{"ID", "Name", "Quantity", "Category", "Expires"},
		Rows:    rows,
	}))
	return nil
}
