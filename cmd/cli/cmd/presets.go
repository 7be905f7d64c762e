// Package cmd - presets command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pottery-cost/adapters/presets"
	"pottery-cost/internal/errors"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the form presets",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every form preset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, src := presetLoader().Load(context.Background())

		w := newWriter()
		table := w.NewTable("Form", "Clay (lb, wet)", "Glaze (g)", "Notes").AlignRight(1, 2)
		for _, p := range list {
			table.AddRow(p.Form, fmt.Sprintf("%.2f", p.ClayLbWet), fmt.Sprintf("%.0f", p.DefaultGlazeG), p.Notes)
		}
		table.Render()
		w.Caption(fmt.Sprintf("%d presets from %s", len(list), src))
		return nil
	},
}

var presetsShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show one form preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, _ := presetLoader().Load(context.Background())
		p, ok := presets.Find(list, args[0])
		if !ok {
			return errors.NotFound("preset", args[0])
		}

		w := newWriter()
		w.Header(p.Form)
		w.Println("Clay per piece (wet): %.2f lb", p.ClayLbWet)
		w.Println("Glaze per piece:      %.0f g", p.DefaultGlazeG)
		if p.Notes != "" {
			w.Caption(p.Notes)
		}
		return nil
	},
}

func init() {
	presetsCmd.AddCommand(presetsListCmd, presetsShowCmd)
	rootCmd.AddCommand(presetsCmd)
}
