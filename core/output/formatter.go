// Package output renders cost estimates for people and machines.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"pottery-cost/core/cost"
	"pottery-cost/core/energy"
	"pottery-cost/core/material"
	"pottery-cost/core/types"
	"pottery-cost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"

	// FormatXLSX is an Excel workbook
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a flag value to a format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cli", "text", "table":
		return FormatCLI, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return "", errors.Newf(errors.TypeInput, "unknown output format %q", s)
	}
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is an estimate with the captions shown beside it
type Report struct {
	Title        string           `json:"title,omitempty"`
	Currency     types.Currency   `json:"currency"`
	Inputs       types.CostInputs `json:"inputs"`
	Estimate     *cost.Estimate   `json:"estimate"`
	FuelCaption  string           `json:"fuel_caption"`
	GlazeCaption string           `json:"glaze_caption"`
	ClayCaption  string           `json:"clay_caption"`
}

// NewReport builds a report for an estimate computed from inputs
func NewReport(title string, in types.CostInputs, est *cost.Estimate, currency types.Currency) *Report {
	if currency == "" {
		currency = types.CurrencyUSD
	}
	money := func(v float64) string { return MoneyIn(v, currency) }
	r := &Report{
		Title:       title,
		Currency:    currency,
		Inputs:      in,
		Estimate:    est,
		FuelCaption: energy.FuelSummary(in, money),
	}
	if est != nil {
		r.GlazeCaption = GlazeCaption(est.Glaze.Source)
		r.ClayCaption = fmt.Sprintf("You pay for about %.2f lb of clay per finished piece given %.0f%% loss.",
			est.Clay.EffectiveLb, est.Clay.WastePercent)
	}
	return r
}

// GlazeCaption explains where the glaze cost came from
func GlazeCaption(s material.GlazeSource) string {
	if s == material.GlazeFromPieceTable {
		return "Glaze costs taken from the manual per-piece glaze table."
	}
	return "Glaze costs calculated from Catalog cost per lb/kg and recipe percents."
}

// money formats an amount in the report currency
func (r *Report) money(v float64) string {
	return MoneyIn(v, r.Currency)
}

// price formats a price tier in the report currency
func (r *Report) price(p types.Price) string {
	return PriceText(p, r.Currency)
}

func (r *Report) validate() error {
	if r == nil || r.Estimate == nil {
		return errors.New(errors.TypeInternal, "report has no estimate")
	}
	return nil
}

// Registry holds formatters by format
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// DefaultRegistry returns a registry with every built-in formatter
func DefaultRegistry(noColor bool) *Registry {
	r := NewRegistry()
	for _, f := range []Formatter{
		&CLIFormatter{NoColor: noColor},
		&JSONFormatter{Indent: true},
		&MarkdownFormatter{},
		&XLSXFormatter{},
	} {
		_ = r.Register(f)
	}
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.formatters[f.Format()]; exists {
		return errors.Newf(errors.TypeInternal, "formatter %q already registered", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formatters[format]
	return f, ok
}

// Formats returns the registered formats, sorted
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
