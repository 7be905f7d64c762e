package cost

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pottery-cost/core/energy"
	"pottery-cost/core/material"
	"pottery-cost/core/pricing"
	"pottery-cost/core/types"
	"pottery-cost/core/usage"
)

// Request is everything one recalculation reads
type Request struct {
	Inputs              types.CostInputs          `json:"inputs"`
	Catalog             []types.MaterialPrice     `json:"catalog"`
	Recipe              []types.RecipeLine        `json:"recipe"`
	RecipeGramsPerPiece float64                   `json:"recipe_grams_per_piece"`
	PieceTable          []types.PieceTableRow     `json:"piece_table"`
	OtherMaterials      []types.OtherMaterialLine `json:"other_materials"`
	GlazeSource         material.GlazeSource      `json:"glaze_source"`
}

// Estimate is the result of one recalculation
type Estimate struct {
	Breakdown types.CostBreakdown     `json:"breakdown"`
	Policy    pricing.Policy          `json:"policy"`
	Glaze     material.GlazeCost      `json:"glaze"`
	Other     material.OtherMaterials `json:"other_materials"`
	Energy    energy.Breakdown        `json:"energy"`
	Clay      ClayUsage               `json:"clay"`

	// Warnings lists every default the calculation had to assume
	Warnings []usage.Assumption `json:"warnings,omitempty"`

	EstimatedAt time.Time `json:"estimated_at"`
}

// Engine runs full recalculations
type Engine struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewEngine creates an engine. A nil logger discards output.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, now: time.Now}
}

// Estimate recomputes everything derived from the request.
// Numeric input never fails; the only error is a done context.
func (e *Engine) Estimate(ctx context.Context, req Request) (*Estimate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in := req.Inputs
	tracker := usage.NewTracker()

	glaze := material.Glaze(material.GlazeInput{
		Source:        req.GlazeSource,
		Catalog:       req.Catalog,
		Recipe:        req.Recipe,
		GramsPerPiece: req.RecipeGramsPerPiece,
		PieceTable:    req.PieceTable,
	})
	other := material.Amortize(req.OtherMaterials, in.UnitsMade)
	breakdown := Aggregate(in, glaze.CostPerPiece, other.CostPerPiece)

	recordAssumptions(tracker, in, glaze, breakdown)

	result := &Estimate{
		Breakdown:   breakdown,
		Policy:      pricing.PolicyFor(in),
		Glaze:       glaze,
		Other:       other,
		Energy:      energy.Estimate(in),
		Clay:        Clay(in),
		Warnings:    tracker.All(),
		EstimatedAt: e.now().UTC(),
	}

	e.logger.Debug("estimate computed",
		zap.Float64("total", breakdown.Total),
		zap.String("glaze_source", glaze.Source.String()),
		zap.String("fuel", in.Fuel.String()),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

func recordAssumptions(t *usage.Tracker, in types.CostInputs, glaze material.GlazeCost, b types.CostBreakdown) {
	t.ClampedPieces("units_made", in.UnitsMade)
	t.ClampedPieces("pieces_per_electric_firing", in.PiecesPerElectricFiring)
	if field := energy.PieceCountField(in.Fuel); field != "" {
		count := in.PiecesPerGasFiring
		if in.Fuel == types.FuelWood {
			count = in.PiecesPerWoodFiring
		}
		t.ClampedPieces(field, count)
	}
	t.ClampedPieces("pieces_per_month", in.PiecesPerMonth)
	t.ClampedFloat("clay_yield", in.ClayYield, minClayYield)
	if in.ClayBagWeightLb == 0 {
		t.ZeroDivisor("clay_bag_weight_lb", "clay cost")
	}

	t.Unmatched("recipe", glaze.Unmatched)
	t.Duplicates(glaze.Duplicates)
	if b.Prices.Wholesale.Status == types.PriceUnpriceable {
		t.Unpriceable(in.WholesaleMarginPct)
	}
}
