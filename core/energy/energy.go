// Package energy computes the per-piece firing cost: electric kiln energy
// plus at most one combustion fuel.
package energy

import (
	"fmt"

	"pottery-cost/core/types"
)

// Breakdown is the firing cost of one piece
type Breakdown struct {
	Electric float64        `json:"electric"`
	Fuel     float64        `json:"fuel"`
	Total    float64        `json:"total"`
	FuelKind types.FuelKind `json:"fuel_kind"`
}

// Estimate returns the electric and fuel cost per piece.
// Each energy source divides its stages by one shared piece count, clamped to 1.
func Estimate(in types.CostInputs) Breakdown {
	b := Breakdown{
		Electric: Electric(in),
		Fuel:     Fuel(in),
		FuelKind: in.Fuel,
	}
	b.Total = b.Electric + b.Fuel
	return b
}

// PerPiece returns the total firing cost of one piece
func PerPiece(in types.CostInputs) float64 {
	return Estimate(in).Total
}

// Electric returns the electric kiln cost per piece. It is always included.
func Electric(in types.CostInputs) float64 {
	kwh := in.KwhBisque + in.KwhGlaze + in.KwhThird
	return kwh * in.KwhRate / float64(types.ClampPieces(in.PiecesPerElectricFiring))
}

// Fuel returns the cost per piece of the selected combustion fuel
func Fuel(in types.CostInputs) float64 {
	switch in.Fuel {
	case types.FuelPropane:
		return in.LPPricePerGal * (in.LPGalBisque + in.LPGalGlaze) /
			float64(types.ClampPieces(in.PiecesPerGasFiring))
	case types.FuelNaturalGas:
		return in.NGPricePerTherm * (in.NGThermsBisque + in.NGThermsGlaze) /
			float64(types.ClampPieces(in.PiecesPerGasFiring))
	case types.FuelWood:
		cords := in.WoodCordsBisque + in.WoodCordsGlaze + in.WoodCordsThird
		facecords := in.WoodFacecordsBisque + in.WoodFacecordsGlaze + in.WoodFacecordsThird
		return (in.WoodPricePerCord*cords + in.WoodPricePerFacecord*facecords) /
			float64(types.ClampPieces(in.PiecesPerWoodFiring))
	default:
		return 0
	}
}

// PieceCountField names the piece-count input the selected fuel divides by,
// or "" when no fuel is selected.
func PieceCountField(k types.FuelKind) string {
	switch k {
	case types.FuelPropane, types.FuelNaturalGas:
		return "pieces_per_gas_firing"
	case types.FuelWood:
		return "pieces_per_wood_firing"
	default:
		return ""
	}
}

// FuelSummary describes the selected fuel and its unit price.
// money formats amounts; nil uses two-decimal dollars.
func FuelSummary(in types.CostInputs, money func(float64) string) string {
	if money == nil {
		money = func(v float64) string { return fmt.Sprintf("$%.2f", v) }
	}
	switch in.Fuel {
	case types.FuelPropane:
		return fmt.Sprintf("Fuel: Propane at %s per gallon", money(in.LPPricePerGal))
	case types.FuelNaturalGas:
		return fmt.Sprintf("Fuel: Natural Gas at %s per therm", money(in.NGPricePerTherm))
	case types.FuelWood:
		return fmt.Sprintf("Fuel: Wood at %s per cord and %s per face cord",
			money(in.WoodPricePerCord), money(in.WoodPricePerFacecord))
	default:
		return "Fuel: None (only electric firing costs included)"
	}
}
