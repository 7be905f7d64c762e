// Package cmd - estimate command
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pottery-cost/core/cost"
	"pottery-cost/core/material"
	"pottery-cost/core/output"
	"pottery-cost/internal/config"
	"pottery-cost/internal/errors"
	"pottery-cost/internal/logging"
)

var (
	outputFormat string
	outputFile   string
	glazeSource  string
	presetName   string
	reportTitle  string
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate [profile]",
	Short: "Estimate the cost and prices of one piece",
	Long: `Work out the per-piece cost breakdown and suggested prices.

The profile can be an HCL studio profile (.hcl) or a saved settings file
(.json). Without one, a new session with default values is costed.

Examples:
  potcost estimate
  potcost estimate mugs.hcl
  potcost estimate --format json settings.json
  potcost estimate --preset "Bowl (cereal)" --glaze piece_table mugs.hcl
  potcost estimate --format xlsx --out mugs.xlsx mugs.hcl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown, xlsx)")
	estimateCmd.Flags().StringVarP(&outputFile, "out", "o", "", "write the report to a file instead of stdout")
	estimateCmd.Flags().StringVar(&glazeSource, "glaze", "", "glaze cost source (recipe, piece_table)")
	estimateCmd.Flags().StringVarP(&presetName, "preset", "p", "", "apply a form preset before costing")
	estimateCmd.Flags().StringVarP(&reportTitle, "title", "t", "", "report title")

	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	if f == output.FormatXLSX && outputFile == "" {
		return errors.Input("xlsx output needs --out FILE")
	}

	p, err := loadSession(args)
	if err != nil {
		return err
	}
	sess := p.Session

	if name := firstNonEmpty(presetName, p.Preset); name != "" {
		preset, err := applyPreset(ctx, name, &sess)
		if err != nil {
			return err
		}
		logging.Debug("applied preset", zap.String("form", preset.Form))
	}
	if glazeSource != "" {
		sess.GlazeSource = material.ParseGlazeSource(glazeSource)
	}

	est, err := cost.NewEngine(logging.Named("engine")).Estimate(ctx, sess.Request())
	if err != nil {
		return err
	}

	title := reportTitle
	if title == "" && presetName != "" {
		title = presetName
	}
	report := output.NewReport(title, sess.Inputs, est, cfg.Currency)

	formatter, ok := output.DefaultRegistry(noColor || cfg.Output.NoColor).Get(f)
	if !ok {
		return errors.Newf(errors.TypeInput, "no formatter for %s", f)
	}

	var w io.Writer = os.Stdout
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			return errors.Wrap(errors.TypeInput, "create output file", err)
		}
		defer file.Close()
		w = file
	}
	if err := formatter.Render(w, report); err != nil {
		return err
	}
	if outputFile != "" {
		newWriter().Success("Wrote %s report to %s", f, outputFile)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
