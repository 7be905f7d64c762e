package output

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownFormatter renders a report suitable for notes or a shop wiki
type MarkdownFormatter struct{}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

// Render writes per-piece totals, prices and captions
func (f *MarkdownFormatter) Render(w io.Writer, r *Report) error {
	if err := r.validate(); err != nil {
		return err
	}
	est := r.Estimate

	var b strings.Builder
	title := r.Title
	if title == "" {
		title = "Pottery cost report"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("## Per piece totals\n\n")
	b.WriteString("| Component | Per piece |\n|---|---:|\n")
	for _, l := range est.Breakdown.Lines() {
		fmt.Fprintf(&b, "| %s | %s |\n", l.Label, r.money(l.Amount))
	}
	fmt.Fprintf(&b, "| **Total cost** | **%s** |\n\n", r.money(est.Breakdown.Total))

	b.WriteString("## Prices\n\n")
	prices := est.Breakdown.Prices
	fmt.Fprintf(&b, "- Wholesale %s\n", r.price(prices.Wholesale))
	fmt.Fprintf(&b, "- Retail %s\n", r.price(prices.Retail))
	if prices.Distributor.OK() {
		fmt.Fprintf(&b, "- Distributor %s\n", r.price(prices.Distributor))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "_%s_\n\n", r.FuelCaption)
	fmt.Fprintf(&b, "_%s_\n\n", r.GlazeCaption)
	fmt.Fprintf(&b, "_%s_\n", r.ClayCaption)

	if len(est.Warnings) > 0 {
		b.WriteString("\n## Assumptions\n\n")
		for _, a := range est.Warnings {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
