// Package cost combines material, energy, labor and overhead costs into the
// per-piece breakdown and runs one full recalculation for a session.
package cost

import (
	"pottery-cost/core/energy"
	"pottery-cost/core/pricing"
	"pottery-cost/core/types"
)

// minClayYield stands in for a zero yield so clay cost stays finite
const minClayYield = 1e-9

// ClayCostPerLb returns the bag price spread over its weight, 0 for a weightless bag
func ClayCostPerLb(in types.CostInputs) float64 {
	if in.ClayBagWeightLb == 0 {
		return 0
	}
	return in.ClayPricePerBag / in.ClayBagWeightLb
}

// Aggregate builds the per-piece cost breakdown and its prices.
// Total is the unrounded sum of the seven components.
func Aggregate(in types.CostInputs, glazePerPiece, otherPerPiece float64) types.CostBreakdown {
	b := types.CostBreakdown{
		Clay:           in.ClayWeightPerPieceLb / max(in.ClayYield, minClayYield) * ClayCostPerLb(in),
		Glaze:          glazePerPiece,
		Packaging:      in.PackagingPerPiece,
		OtherMaterials: otherPerPiece,
		Energy:         energy.PerPiece(in),
		Labor:          in.LaborRate * in.HoursPerPiece,
		Overhead:       in.OverheadPerMonth / float64(types.ClampPieces(in.PiecesPerMonth)),
	}
	b.Total = b.Clay + b.Glaze + b.Packaging + b.OtherMaterials + b.Energy + b.Labor + b.Overhead
	b.Prices = pricing.Derive(b.Total, in)
	return b
}

// ClayUsage is the clay paid for per finished piece once trimming loss is included
type ClayUsage struct {
	EffectiveLb  float64 `json:"effective_lb"`
	WastePercent float64 `json:"waste_percent"`
}

// Clay returns the effective clay weight and loss percentage for the inputs
func Clay(in types.CostInputs) ClayUsage {
	return ClayUsage{
		EffectiveLb:  in.ClayWeightPerPieceLb / max(in.ClayYield, minClayYield),
		WastePercent: (1 - in.ClayYield) * 100,
	}
}
