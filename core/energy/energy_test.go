package energy

import (
	"math"
	"testing"

	"pottery-cost/core/types"
)

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEstimate(t *testing.T) {
	base := types.CostInputs{
		KwhRate:                 0.15,
		KwhBisque:               30,
		KwhGlaze:                35,
		KwhThird:                39,
		PiecesPerElectricFiring: 40,
	}

	tests := []struct {
		name     string
		mutate   func(*types.CostInputs)
		electric float64
		fuel     float64
	}{
		{
			name:     "electric only",
			mutate:   func(in *types.CostInputs) {},
			electric: 0.39,
		},
		{
			name: "propane adds to electric",
			mutate: func(in *types.CostInputs) {
				in.Fuel = types.FuelPropane
				in.LPPricePerGal = 3.5
				in.LPGalBisque = 6
				in.LPGalGlaze = 8.1
				in.PiecesPerGasFiring = 40
			},
			electric: 0.39,
			fuel:     3.5 * 14.1 / 40,
		},
		{
			name: "natural gas",
			mutate: func(in *types.CostInputs) {
				in.Fuel = types.FuelNaturalGas
				in.NGPricePerTherm = 1.2
				in.NGThermsBisque = 10
				in.NGThermsGlaze = 15
				in.PiecesPerGasFiring = 20
			},
			electric: 0.39,
			fuel:     1.5,
		},
		{
			name: "wood mixes cords and face cords",
			mutate: func(in *types.CostInputs) {
				in.Fuel = types.FuelWood
				in.WoodPricePerCord = 300
				in.WoodPricePerFacecord = 120
				in.WoodCordsGlaze = 1
				in.WoodFacecordsBisque = 1
				in.WoodFacecordsThird = 1
				in.PiecesPerWoodFiring = 60
			},
			electric: 0.39,
			fuel:     (300 + 240) / 60.0,
		},
		{
			name: "zero piece counts clamp to one",
			mutate: func(in *types.CostInputs) {
				in.PiecesPerElectricFiring = 0
				in.Fuel = types.FuelPropane
				in.LPPricePerGal = 2
				in.LPGalBisque = 1
				in.PiecesPerGasFiring = -4
			},
			electric: 104 * 0.15,
			fuel:     2,
		},
		{
			name: "fuel fields ignored when none selected",
			mutate: func(in *types.CostInputs) {
				in.LPPricePerGal = 100
				in.LPGalBisque = 100
			},
			electric: 0.39,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			got := Estimate(in)
			if !nearlyEqual(got.Electric, tt.electric) {
				t.Errorf("Electric = %v, want %v", got.Electric, tt.electric)
			}
			if !nearlyEqual(got.Fuel, tt.fuel) {
				t.Errorf("Fuel = %v, want %v", got.Fuel, tt.fuel)
			}
			if got.Total != got.Electric+got.Fuel {
				t.Errorf("Total %v != %v + %v", got.Total, got.Electric, got.Fuel)
			}
			if PerPiece(in) != got.Total {
				t.Errorf("PerPiece = %v, want %v", PerPiece(in), got.Total)
			}
		})
	}
}

func TestPropaneWorkedExample(t *testing.T) {
	tests := []struct {
		name string
		in   types.CostInputs
		want float64
	}{
		{
			name: "three electric firings",
			in: types.CostInputs{
				KwhRate: 0.15, KwhBisque: 30, KwhGlaze: 35, KwhThird: 39, PiecesPerElectricFiring: 40,
				Fuel: types.FuelPropane, LPPricePerGal: 3.5, LPGalBisque: 6, LPGalGlaze: 8.1, PiecesPerGasFiring: 40,
			},
			want: 1.62375,
		},
		{
			name: "bisque and glaze only",
			in: types.CostInputs{
				KwhRate: 0.24, KwhBisque: 30, KwhGlaze: 35, PiecesPerElectricFiring: 40,
				Fuel: types.FuelPropane, LPPricePerGal: 3.5, LPGalBisque: 4.7, LPGalGlaze: 9.4, PiecesPerGasFiring: 40,
			},
			want: 1.62375,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.in)
			if math.Abs(got.Total-tt.want) > 1e-4 {
				t.Errorf("Total = %.4f, want %.4f", got.Total, tt.want)
			}
			if PerPiece(tt.in) != got.Total {
				t.Errorf("PerPiece = %v, want %v", PerPiece(tt.in), got.Total)
			}
		})
	}
}

func TestFuelSummary(t *testing.T) {
	tests := []struct {
		in   types.CostInputs
		want string
	}{
		{types.CostInputs{}, "Fuel: None (only electric firing costs included)"},
		{types.CostInputs{Fuel: types.FuelPropane, LPPricePerGal: 3.5}, "Fuel: Propane at $3.50 per gallon"},
		{types.CostInputs{Fuel: types.FuelNaturalGas, NGPricePerTherm: 1.2}, "Fuel: Natural Gas at $1.20 per therm"},
		{types.CostInputs{Fuel: types.FuelWood, WoodPricePerCord: 300, WoodPricePerFacecord: 120},
			"Fuel: Wood at $300.00 per cord and $120.00 per face cord"},
	}
	for _, tt := range tests {
		if got := FuelSummary(tt.in, nil); got != tt.want {
			t.Errorf("FuelSummary(%v) = %q, want %q", tt.in.Fuel, got, tt.want)
		}
	}

	custom := FuelSummary(types.CostInputs{Fuel: types.FuelPropane, LPPricePerGal: 3}, func(v float64) string { return "X" })
	if custom != "Fuel: Propane at X per gallon" {
		t.Errorf("custom formatter ignored: %q", custom)
	}
}

func TestPieceCountField(t *testing.T) {
	if PieceCountField(types.FuelWood) != "pieces_per_wood_firing" {
		t.Error("wood field")
	}
	if PieceCountField(types.FuelNaturalGas) != "pieces_per_gas_firing" {
		t.Error("gas field")
	}
	if PieceCountField(types.FuelNone) != "" {
		t.Error("none field")
	}
}
