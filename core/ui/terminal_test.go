package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableAlignment(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	tbl := w.NewTable("Item", "Amount").AlignRight(1)
	tbl.AddRow("Clay", "$2.22")
	tbl.AddRow("Other materials", "€10.00")
	tbl.AddRow("Extra", "x", "dropped")
	tbl.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "Item") {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != "Clay            │  $2.22" {
		t.Errorf("row = %q", lines[2])
	}
	if lines[3] != "Other materials │ €10.00" {
		t.Errorf("row = %q", lines[3])
	}
	if strings.Contains(buf.String(), "dropped") {
		t.Error("extra cell should be dropped")
	}
}

func TestNoColorHasNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.Header("Report")
	w.Success("saved %s", "abc")
	w.Warning("careful")
	w.Caption("note")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("unexpected escape codes: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "✓ saved abc") {
		t.Errorf("missing success line: %q", buf.String())
	}
}

func TestVerbosity(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.Debug("hidden")
	w.SetVerbosity(0)
	w.Info("also hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
	w.SetVerbosity(2)
	w.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("debug not shown at verbosity 2")
	}
}

func TestPriceSummarySkipsEmptyTiers(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	s := w.NewPriceSummary()
	s.Total = "$10.00"
	s.Wholesale = "$20.00"
	s.Retail = "$44.00"
	s.Warnings = 2
	s.Render()

	out := buf.String()
	if strings.Contains(out, "Distributor") {
		t.Error("distributor should be omitted")
	}
	for _, want := range []string{"Total cost:", "$44.00", "2 assumptions applied"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}
