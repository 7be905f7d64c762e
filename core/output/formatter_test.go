package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"pottery-cost/core/cost"
	"pottery-cost/core/material"
	"pottery-cost/core/types"
)

func testReport(t *testing.T, mutate func(*cost.Request)) *Report {
	t.Helper()
	in := types.DefaultInputs()
	in.UnitsMade = 18
	req := cost.Request{
		Inputs:              in,
		Catalog:             []types.MaterialPrice{{Name: "Silica 325m", CostPerLb: 0.8}},
		Recipe:              []types.RecipeLine{{Material: "Silica 325m", Percent: 100}, {Material: "=Rutile", Percent: 5}},
		RecipeGramsPerPiece: 8,
		OtherMaterials:      []types.OtherMaterialLine{{Item: "Hand pump", Unit: "each", CostPerUnit: 0.85, QuantityForProject: 16}},
	}
	if mutate != nil {
		mutate(&req)
	}
	est, err := cost.NewEngine(nil).Estimate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	return NewReport("Mugs", req.Inputs, est, types.CurrencyUSD)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatCLI, "JSON": FormatJSON, "md": FormatMarkdown, "excel": FormatXLSX} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("expected error for pdf")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry(true)
	got := r.Formats()
	want := []Format{FormatCLI, FormatJSON, FormatMarkdown, FormatXLSX}
	if len(got) != len(want) {
		t.Fatalf("Formats() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if err := r.Register(&JSONFormatter{}); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestCLIFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CLIFormatter{NoColor: true}).Render(&buf, testReport(t, nil)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"━━━ Mugs ━━━", "Other materials", "Wholesale:", "Fuel: None (only electric firing costs included)", "Hand pump", "=Rutile"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Distributor:") {
		t.Error("margin policy should not show a distributor price")
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Render(&buf, testReport(t, func(r *cost.Request) { r.Inputs.WholesaleMarginPct = 100 })); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Currency string `json:"currency"`
		Estimate struct {
			Breakdown struct {
				Total  float64 `json:"total"`
				Prices struct {
					Wholesale types.Price `json:"wholesale"`
				} `json:"prices"`
			} `json:"breakdown"`
		} `json:"estimate"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if decoded.Currency != "USD" || decoded.Estimate.Breakdown.Total <= 0 {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Estimate.Breakdown.Prices.Wholesale.Status != types.PriceUnpriceable {
		t.Errorf("wholesale = %+v", decoded.Estimate.Breakdown.Prices.Wholesale)
	}
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	report := testReport(t, func(r *cost.Request) { r.Inputs.UseDoubling = true })
	if err := (&MarkdownFormatter{}).Render(&buf, report); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"# Mugs", "| Clay |", "- Distributor $", "## Assumptions", "Rutile"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestXLSXFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&XLSXFormatter{}).Render(&buf, testReport(t, nil)); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{"Summary", "Glaze", "Other materials"}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v", sheets)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Errorf("sheet %d = %q, want %q", i, sheets[i], want[i])
		}
	}

	if v, _ := f.GetCellValue("Summary", "A1"); v != "Component" {
		t.Errorf("Summary!A1 = %q", v)
	}
	if v, _ := f.GetCellValue("Other materials", "A2"); v != "Hand pump" {
		t.Errorf("Other materials!A2 = %q", v)
	}
	if v, _ := f.GetCellValue("Glaze", "A3"); v != "'=Rutile" {
		t.Errorf("Glaze!A3 = %q, want sanitized", v)
	}
}

func TestXLSXPieceTableSheet(t *testing.T) {
	var buf bytes.Buffer
	report := testReport(t, func(r *cost.Request) {
		r.GlazeSource = material.GlazeFromPieceTable
		r.PieceTable = []types.PieceTableRow{{Material: "Frit 3134", CostPerLb: 2, GramsPerPiece: 8}}
	})
	if err := (&XLSXFormatter{}).Render(&buf, report); err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue("Glaze", "B1"); v != "Cost_per_lb" {
		t.Errorf("Glaze!B1 = %q", v)
	}
}

func TestRenderWithoutEstimate(t *testing.T) {
	for _, f := range []Formatter{&CLIFormatter{}, &JSONFormatter{}, &MarkdownFormatter{}, &XLSXFormatter{}} {
		if err := f.Render(&bytes.Buffer{}, &Report{}); err == nil {
			t.Errorf("%s: expected error for empty report", f.Format())
		}
	}
}

func TestGlazeCaption(t *testing.T) {
	if !strings.Contains(GlazeCaption(material.GlazeFromRecipe), "recipe percents") {
		t.Error("recipe caption")
	}
	if !strings.Contains(GlazeCaption(material.GlazeFromPieceTable), "manual") {
		t.Error("table caption")
	}
}
