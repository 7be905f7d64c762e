// Package cmd - recipe command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pottery-cost/core/material"
	"pottery-cost/core/output"
	"pottery-cost/core/units"
	"pottery-cost/internal/config"
	"pottery-cost/internal/errors"
)

var (
	batchSize float64
	batchUnit string
)

var recipeCmd = &cobra.Command{
	Use:   "recipe [profile]",
	Short: "Scale a glaze recipe to a batch and cost it",
	Long: `Scale the profile's glaze recipe to a batch mass and price every line
against the materials catalog.

Examples:
  potcost recipe celadon.hcl
  potcost recipe celadon.hcl --batch 5 --unit kg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecipe,
}

func init() {
	recipeCmd.Flags().Float64Var(&batchSize, "batch", 1000, "batch size")
	recipeCmd.Flags().StringVar(&batchUnit, "unit", "g", "batch size unit (g, oz, lb, kg)")

	rootCmd.AddCommand(recipeCmd)
}

func runRecipe(cmd *cobra.Command, args []string) error {
	if batchSize < 0 {
		return errors.Input("--batch must not be negative")
	}
	p, err := loadSession(args)
	if err != nil {
		return err
	}
	sess := p.Session
	cur := config.Get().Currency

	catalog := material.NewCatalog(sess.Catalog)
	batch := material.BatchTable(catalog, sess.Recipe, material.BatchSizeToGrams(batchSize, units.ParseMassUnit(batchUnit)))

	w := newWriter()
	w.Header(fmt.Sprintf("Glaze batch: %.2f g", batch.BatchGrams))

	table := w.NewTable("Material", "%", "Grams", "Ounces", "Pounds", "Cost").AlignRight(1, 2, 3, 4, 5)
	for _, row := range batch.Rows {
		name := row.Material
		if !row.Matched {
			name += " *"
		}
		table.AddRow(name,
			fmt.Sprintf("%.2f", row.Percent),
			fmt.Sprintf("%.2f", row.Grams),
			fmt.Sprintf("%.2f", row.Ounces),
			fmt.Sprintf("%.3f", row.Pounds),
			output.MoneyIn(row.Cost, cur),
		)
	}
	table.Render()

	w.Println("")
	w.Print("Batch total    %s\n", output.MoneyIn(batch.BatchTotal, cur))
	w.Print("Cost per gram  %s\n", output.MoneyIn(batch.CostPerGram, cur))
	w.Print("Cost per ounce %s\n", output.MoneyIn(batch.CostPerOunce, cur))
	w.Print("Cost per pound %s\n", output.MoneyIn(batch.CostPerPound, cur))

	if len(batch.Unmatched) > 0 {
		w.Println("")
		w.Warning("Not in the materials catalog (costed at 0): %v", batch.Unmatched)
	}
	if dups := catalog.Duplicates(); len(dups) > 0 {
		w.Info("Catalog lists these more than once, the last price wins: %v", dups)
	}
	return nil
}
