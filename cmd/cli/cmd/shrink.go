// Package cmd - shrink command
package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"pottery-cost/core/shrink"
	"pottery-cost/internal/errors"
)

var shrinkFlags struct {
	rate      float64
	unit      string
	wet       float64
	fired     float64
	target    float64
	rim       float64
	clearance float64
}

var shrinkCmd = &cobra.Command{
	Use:   "shrink",
	Short: "Convert between wet and fired sizes",
	Long: `Shrinkage helpers for a clay body. Rates are the percent of wet size
lost in firing.

Examples:
  potcost shrink tile --wet 100 --fired 88
  potcost shrink fired --wet 4.5 --rate 12
  potcost shrink wet --target 4 --rate 12
  potcost shrink lid --rim 3.5 --rate 12 --unit in`,
}

var shrinkTileCmd = &cobra.Command{
	Use:   "tile",
	Short: "Measure the shrink rate from a test tile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if shrinkFlags.wet <= 0 {
			return errors.Input("--wet must be greater than 0")
		}
		pct := shrink.FromTestTile(shrinkFlags.wet, shrinkFlags.fired)
		newWriter().Println("Shrink rate: %.2f%%", pct)
		return nil
	},
}

var shrinkFiredCmd = &cobra.Command{
	Use:   "fired",
	Short: "Fired size of a wet measurement",
	RunE: func(cmd *cobra.Command, args []string) error {
		u := shrink.ParseLengthUnit(shrinkFlags.unit)
		size := shrink.FiredFromWet(shrinkFlags.wet, shrinkFlags.rate)
		newWriter().Println("Fired size: %.3f %s", size, u)
		return nil
	},
}

var shrinkWetCmd = &cobra.Command{
	Use:   "wet",
	Short: "Wet size to throw for a fired target",
	RunE: func(cmd *cobra.Command, args []string) error {
		u := shrink.ParseLengthUnit(shrinkFlags.unit)
		size := shrink.WetForFired(shrinkFlags.target, shrinkFlags.rate)
		newWriter().Println("Throw at: %.3f %s", size, u)
		return nil
	},
}

var shrinkLidCmd = &cobra.Command{
	Use:   "lid",
	Short: "Wet gallery diameter for a lid that fits a fired rim",
	RunE: func(cmd *cobra.Command, args []string) error {
		u := shrink.ParseLengthUnit(shrinkFlags.unit)
		clearance := shrinkFlags.clearance
		if !cmd.Flags().Changed("clearance") {
			clearance = shrink.DefaultClearance(u)
		}
		gallery := shrink.LidGallery(shrinkFlags.rim, clearance, shrinkFlags.rate)

		w := newWriter()
		w.Println("Throw the gallery at: %.3f %s ID", gallery, u)
		w.Println("Expected fired ID:    %.3f %s", shrink.ExpectedFired(gallery, shrinkFlags.rate), u)
		w.Caption("Clearance " + formatLength(clearance, u))
		return nil
	},
}

func formatLength(v float64, u shrink.LengthUnit) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + string(u)
}

func init() {
	shrinkCmd.PersistentFlags().Float64Var(&shrinkFlags.rate, "rate", shrink.DefaultRatePct, "shrink rate in percent")
	shrinkCmd.PersistentFlags().StringVar(&shrinkFlags.unit, "unit", "in", "length unit (in, mm, cm)")

	shrinkTileCmd.Flags().Float64Var(&shrinkFlags.wet, "wet", 0, "wet tile length")
	shrinkTileCmd.Flags().Float64Var(&shrinkFlags.fired, "fired", 0, "fired tile length")

	shrinkFiredCmd.Flags().Float64Var(&shrinkFlags.wet, "wet", 0, "wet size")

	shrinkWetCmd.Flags().Float64Var(&shrinkFlags.target, "target", 0, "fired size wanted")

	shrinkLidCmd.Flags().Float64Var(&shrinkFlags.rim, "rim", 0, "fired rim outer diameter")
	shrinkLidCmd.Flags().Float64Var(&shrinkFlags.clearance, "clearance", 0, "fit clearance (default depends on unit)")

	shrinkCmd.AddCommand(shrinkTileCmd, shrinkFiredCmd, shrinkWetCmd, shrinkLidCmd)
	rootCmd.AddCommand(shrinkCmd)
}
