// Package ui - Terminal user interface
// Headers, status lines, aligned tables and the price summary box.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int

	bold    *color.Color
	heading *color.Color
	dim     *color.Color
	green   *color.Color
	yellow  *color.Color
	red     *color.Color
	blue    *color.Color
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	w := &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
		bold:      color.New(color.Bold),
		heading:   color.New(color.Bold, color.FgCyan),
		dim:       color.New(color.Faint),
		green:     color.New(color.FgGreen),
		yellow:    color.New(color.FgYellow),
		red:       color.New(color.FgRed),
		blue:      color.New(color.FgBlue),
	}
	if noColor {
		for _, c := range []*color.Color{w.bold, w.heading, w.dim, w.green, w.yellow, w.red, w.blue} {
			c.DisableColor()
		}
	}
	return w
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// Print writes formatted text
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.heading.Sprint("━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println("%s", w.bold.Sprint("▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println("%s%s", w.green.Sprint("✓ "), fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println("%s%s", w.yellow.Sprint("⚠ "), fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Println("%s%s", w.red.Sprint("✗ "), fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.Println("%s%s", w.blue.Sprint("ℹ "), fmt.Sprintf(format, args...))
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	w.Println("%s", w.dim.Sprint("  "+fmt.Sprintf(format, args...)))
}

// Caption prints dim explanatory text
func (w *Writer) Caption(text string) {
	w.Println("%s", w.dim.Sprint(text))
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
	right   []bool
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		widths:  widths,
		right:   make([]bool, len(headers)),
	}
}

// AlignRight right-aligns the given columns
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		if c >= 0 && c < len(t.right) {
			t.right[c] = true
		}
	}
	return t
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := utf8.RuneCountInString(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) line(cells []string) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(" │ ")
		}
		pad := strings.Repeat(" ", t.widths[i]-utf8.RuneCountInString(cell))
		if t.right[i] {
			b.WriteString(pad + cell)
		} else {
			b.WriteString(cell + pad)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println("%s", t.w.bold.Sprint(t.line(t.headers)))

	sep := make([]string, len(t.widths))
	for i, w := range t.widths {
		sep[i] = strings.Repeat("─", w)
	}
	t.w.Println("%s", strings.Join(sep, "─┼─"))

	for _, row := range t.rows {
		t.w.Println("%s", t.line(row))
	}
}

// PriceSummary renders the boxed total and price tiers
type PriceSummary struct {
	w           *Writer
	Total       string
	Wholesale   string
	Retail      string
	Distributor string
	Warnings    int
}

// NewPriceSummary creates a price summary
func (w *Writer) NewPriceSummary() *PriceSummary {
	return &PriceSummary{w: w}
}

// Render prints the price summary. Empty tiers are left out.
func (s *PriceSummary) Render() {
	s.w.Header("Price Summary")

	border := "╭─────────────────────────────────────╮"
	s.w.Println("%s", s.w.bold.Sprint(border))
	s.row(s.w.green, "Total cost:", s.Total)
	s.row(s.w.bold, "Wholesale:", s.Wholesale)
	s.row(s.w.bold, "Retail:", s.Retail)
	if s.Distributor != "" {
		s.row(s.w.bold, "Distributor:", s.Distributor)
	}
	s.w.Println("%s", s.w.bold.Sprint("╰─────────────────────────────────────╯"))

	if s.Warnings > 0 {
		s.w.Println("")
		s.w.Warning("%d assumptions applied", s.Warnings)
	}
}

func (s *PriceSummary) row(c *color.Color, label, value string) {
	if value == "" {
		return
	}
	text := fmt.Sprintf("  %-13s%-22s", label, value)
	s.w.Println("%s%s%s", s.w.bold.Sprint("│"), c.Sprint(text), s.w.bold.Sprint("│"))
}
