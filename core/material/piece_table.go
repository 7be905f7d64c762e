package material

import (
	"strings"

	"pottery-cost/core/types"
	"pottery-cost/core/units"
)

// PieceRow is one costed row of a glaze piece table
type PieceRow struct {
	Material      string  `json:"material"`
	CostPerLb     float64 `json:"cost_per_lb"`
	GramsPerPiece float64 `json:"grams_per_piece"`
	CostPerGram   float64 `json:"cost_per_gram"`
	CostPerPiece  float64 `json:"cost_per_piece"`
}

// PieceTableResult is the summed piece table
type PieceTableResult struct {
	Rows         []PieceRow `json:"rows"`
	CostPerPiece float64    `json:"cost_per_piece"`
}

// PieceTableCost prices each row on its own and sums them.
// Rows carry their own price, so no catalog is involved.
func PieceTableCost(rows []types.PieceTableRow) PieceTableResult {
	out := PieceTableResult{Rows: make([]PieceRow, 0, len(rows))}
	for _, r := range rows {
		perGram := units.PerPoundToPerGram(r.CostPerLb)
		cost := perGram * r.GramsPerPiece
		out.CostPerPiece += cost
		out.Rows = append(out.Rows, PieceRow{
			Material:      strings.TrimSpace(r.Material),
			CostPerLb:     r.CostPerLb,
			GramsPerPiece: r.GramsPerPiece,
			CostPerGram:   perGram,
			CostPerPiece:  cost,
		})
	}
	return out
}
