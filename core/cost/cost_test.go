package cost

import (
	"context"
	"math"
	"testing"

	"pottery-cost/core/material"
	"pottery-cost/core/types"
	"pottery-cost/core/usage"
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func TestAggregateDefaults(t *testing.T) {
	in := types.DefaultInputs()
	b := Aggregate(in, 0.25, 0.5)

	if want := 1.0 / 0.9 * 2.0; math.Abs(b.Clay-want) > 1e-9 {
		t.Errorf("Clay = %v, want %v", b.Clay, want)
	}
	if b.Labor != 6.25 {
		t.Errorf("Labor = %v, want 6.25", b.Labor)
	}
	if b.Overhead != 2.5 {
		t.Errorf("Overhead = %v, want 2.5", b.Overhead)
	}
	if math.Abs(b.Energy-65*0.15/40) > 1e-9 {
		t.Errorf("Energy = %v", b.Energy)
	}
	if !b.Prices.Wholesale.OK() || !b.Prices.Retail.OK() {
		t.Errorf("prices not derived: %+v", b.Prices)
	}
}

func TestAggregateIsExactlyAdditive(t *testing.T) {
	in := types.DefaultInputs()
	in.PackagingPerPiece = 0.4
	in.Fuel = types.FuelPropane
	in.LPGalBisque = 6
	in.LPGalGlaze = 8.1

	b := Aggregate(in, 0.1234, 0.7556)
	sum := b.Clay + b.Glaze + b.Packaging + b.OtherMaterials + b.Energy + b.Labor + b.Overhead
	if b.Total != sum {
		t.Errorf("Total = %v, components sum to %v", b.Total, sum)
	}
	if b.Materials() != b.Clay+b.Glaze+b.Packaging+b.OtherMaterials {
		t.Errorf("Materials() = %v", b.Materials())
	}
}

func TestAggregateDivisionGuards(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *types.CostInputs)
		check  func(t *testing.T, b types.CostBreakdown)
	}{
		{
			name:   "zero bag weight",
			mutate: func(in *types.CostInputs) { in.ClayBagWeightLb = 0 },
			check: func(t *testing.T, b types.CostBreakdown) {
				if b.Clay != 0 {
					t.Errorf("Clay = %v, want 0 for weightless bag", b.Clay)
				}
			},
		},
		{
			name:   "zero yield",
			mutate: func(in *types.CostInputs) { in.ClayYield = 0 },
			check: func(t *testing.T, b types.CostBreakdown) {
				if b.Clay <= 0 {
					t.Errorf("Clay = %v, want the unadjusted clay cost", b.Clay)
				}
			},
		},
		{
			name:   "zero pieces per month",
			mutate: func(in *types.CostInputs) { in.PiecesPerMonth = 0 },
			check: func(t *testing.T, b types.CostBreakdown) {
				if b.Overhead != 500 {
					t.Errorf("Overhead = %v, want the whole month 500", b.Overhead)
				}
			},
		},
		{
			name:   "zero pieces per electric firing",
			mutate: func(in *types.CostInputs) { in.PiecesPerElectricFiring = 0 },
			check: func(t *testing.T, b types.CostBreakdown) {
				if math.Abs(b.Energy-65*0.15) > 1e-9 {
					t.Errorf("Energy = %v, want one whole firing 9.75", b.Energy)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := types.DefaultInputs()
			tt.mutate(&in)
			b := Aggregate(in, 0, 0)

			for _, l := range b.Lines() {
				if !finite(l.Amount) {
					t.Errorf("%s = %v, want finite", l.Label, l.Amount)
				}
			}
			if !finite(b.Total) {
				t.Fatalf("Total = %v", b.Total)
			}
			tt.check(t, b)
		})
	}
}

func TestClay(t *testing.T) {
	got := Clay(types.CostInputs{ClayWeightPerPieceLb: 1.8, ClayYield: 0.9})
	if math.Abs(got.EffectiveLb-2) > 1e-9 {
		t.Errorf("EffectiveLb = %v, want 2", got.EffectiveLb)
	}
	if math.Abs(got.WastePercent-10) > 1e-9 {
		t.Errorf("WastePercent = %v, want 10", got.WastePercent)
	}
}

func TestEngineEstimate(t *testing.T) {
	in := types.DefaultInputs()
	in.UnitsMade = 18
	req := Request{
		Inputs: in,
		Catalog: []types.MaterialPrice{
			{Name: "Silica 325m", CostPerLb: 0.8},
			{Name: "silica 325M", CostPerLb: 0.9},
		},
		Recipe:              []types.RecipeLine{{Material: "Silica 325m", Percent: 60}, {Material: "Gerstley Borate", Percent: 40}},
		RecipeGramsPerPiece: 10,
		PieceTable:          []types.PieceTableRow{{Material: "Frit", CostPerLb: 100, GramsPerPiece: 100}},
		OtherMaterials:      []types.OtherMaterialLine{{Item: "Hand pump", CostPerUnit: 0.85, QuantityForProject: 16}},
	}

	got, err := NewEngine(nil).Estimate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if want := 6 * 0.9 / 453.592; math.Abs(got.Breakdown.Glaze-want) > 1e-9 {
		t.Errorf("Glaze = %v, want %v (recipe source, last duplicate)", got.Breakdown.Glaze, want)
	}
	if math.Abs(got.Breakdown.OtherMaterials-13.6/18) > 1e-9 {
		t.Errorf("OtherMaterials = %v", got.Breakdown.OtherMaterials)
	}
	if got.Energy.Total != got.Breakdown.Energy {
		t.Errorf("energy detail %v != breakdown %v", got.Energy.Total, got.Breakdown.Energy)
	}
	if len(got.Glaze.Unmatched) != 1 || got.Glaze.Unmatched[0] != "Gerstley Borate" {
		t.Errorf("Unmatched = %v", got.Glaze.Unmatched)
	}

	var unmatched, duplicate int
	for _, w := range got.Warnings {
		switch w.Kind {
		case usage.KindUnmatched:
			unmatched++
		case usage.KindDuplicate:
			duplicate++
		}
	}
	if unmatched != 1 || duplicate != 1 {
		t.Errorf("warnings = %+v", got.Warnings)
	}
	if got.EstimatedAt.IsZero() {
		t.Error("EstimatedAt not set")
	}

	req.GlazeSource = material.GlazeFromPieceTable
	table, err := NewEngine(nil).Estimate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if want := 100.0 / 453.592 * 100; math.Abs(table.Breakdown.Glaze-want) > 1e-9 {
		t.Errorf("table Glaze = %v, want %v", table.Breakdown.Glaze, want)
	}
	for _, w := range table.Warnings {
		if w.Kind == usage.KindUnmatched {
			t.Errorf("piece table source reported recipe warning %v", w)
		}
	}
}

func TestEngineEstimateRecordsClamps(t *testing.T) {
	in := types.DefaultInputs()
	in.PiecesPerMonth = 0
	in.UnitsMade = 0
	in.ClayYield = 0
	in.ClayBagWeightLb = 0
	in.WholesaleMarginPct = 100

	got, err := NewEngine(nil).Estimate(context.Background(), Request{Inputs: in})
	if err != nil {
		t.Fatal(err)
	}

	fields := make(map[string]bool)
	for _, w := range got.Warnings {
		fields[w.Field] = true
	}
	for _, f := range []string{"pieces_per_month", "units_made", "clay_yield", "clay_bag_weight_lb", "wholesale_margin_pct"} {
		if !fields[f] {
			t.Errorf("missing warning for %s in %+v", f, got.Warnings)
		}
	}
	if fields["pieces_per_electric_firing"] {
		t.Error("unexpected electric clamp warning")
	}
	if got.Breakdown.Prices.Wholesale.Status != types.PriceUnpriceable {
		t.Errorf("wholesale = %+v", got.Breakdown.Prices.Wholesale)
	}
}

func TestEngineEstimateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewEngine(nil).Estimate(ctx, Request{Inputs: types.DefaultInputs()}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
