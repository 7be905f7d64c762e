package output

import (
	"fmt"
	"io"

	"pottery-cost/core/ui"
)

// CLIFormatter renders aligned terminal tables
type CLIFormatter struct {
	NoColor bool
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format { return FormatCLI }

// Render writes the breakdown, prices, captions and warnings
func (f *CLIFormatter) Render(w io.Writer, r *Report) error {
	if err := r.validate(); err != nil {
		return err
	}
	est := r.Estimate
	out := ui.NewWriter(w, f.NoColor)

	title := r.Title
	if title == "" {
		title = "Cost per piece"
	}
	out.Header(title)

	tbl := out.NewTable("Component", "Per piece").AlignRight(1)
	for _, l := range est.Breakdown.Lines() {
		tbl.AddRow(l.Label, r.money(l.Amount))
	}
	tbl.AddRow("Total", r.money(est.Breakdown.Total))
	tbl.Render()

	summary := out.NewPriceSummary()
	summary.Total = r.money(est.Breakdown.Total)
	summary.Wholesale = r.price(est.Breakdown.Prices.Wholesale)
	summary.Retail = r.price(est.Breakdown.Prices.Retail)
	summary.Distributor = r.price(est.Breakdown.Prices.Distributor)
	summary.Warnings = len(est.Warnings)
	summary.Render()

	out.Println("")
	out.Caption(r.FuelCaption)
	out.Caption(r.GlazeCaption)
	out.Caption(r.ClayCaption)

	if g := est.Glaze.Recipe; g != nil && len(g.Rows) > 0 {
		out.Println("")
		out.SubHeader(fmt.Sprintf("Glaze recipe (%.2f g per piece)", g.GramsPerPiece))
		t := out.NewTable("Material", "Percent", "Grams", "Cost").AlignRight(1, 2, 3)
		for _, row := range g.Rows {
			t.AddRow(row.Material, fmt.Sprintf("%.2f", row.Percent), fmt.Sprintf("%.3f", row.Grams), fmt.Sprintf("%s%.4f", r.Currency.Symbol(), row.Cost))
		}
		t.Render()
	}
	if g := est.Glaze.PieceTable; g != nil && len(g.Rows) > 0 {
		out.Println("")
		out.SubHeader("Glaze piece table")
		t := out.NewTable("Material", "Cost/lb", "Grams", "Cost").AlignRight(1, 2, 3)
		for _, row := range g.Rows {
			t.AddRow(row.Material, r.money(row.CostPerLb), fmt.Sprintf("%.3f", row.GramsPerPiece), fmt.Sprintf("%s%.4f", r.Currency.Symbol(), row.CostPerPiece))
		}
		t.Render()
	}

	if o := est.Other; len(o.Rows) > 0 {
		out.Println("")
		out.SubHeader(fmt.Sprintf("Other materials (%d pieces)", o.Pieces))
		t := out.NewTable("Item", "Unit", "Line total", "Per piece").AlignRight(2, 3)
		for _, row := range o.Rows {
			t.AddRow(row.Item, row.Unit, r.money(row.LineTotal), r.money(row.CostPerPiece))
		}
		t.Render()
		out.Caption(fmt.Sprintf("Project total %s • Adds %s per piece", r.money(o.ProjectTotal), r.money(o.CostPerPiece)))
	}

	if len(est.Warnings) > 0 {
		out.Println("")
		for _, a := range est.Warnings {
			out.Warning("%s", a)
		}
	}
	return nil
}
