package material

import "pottery-cost/core/types"

// OtherRow is one project purchase with its share per piece
type OtherRow struct {
	types.OtherMaterialLine
	LineTotal    float64 `json:"line_total"`
	CostPerPiece float64 `json:"cost_per_piece"`
}

// OtherMaterials is the amortized project purchase list
type OtherMaterials struct {
	Rows         []OtherRow `json:"rows"`
	ProjectTotal float64    `json:"project_total"`
	CostPerPiece float64    `json:"cost_per_piece"`
	Pieces       int        `json:"pieces"`
}

// Amortize spreads one-off project costs evenly over the pieces of the batch.
// Every row and the total use the same clamped piece count.
func Amortize(lines []types.OtherMaterialLine, piecesInBatch int) OtherMaterials {
	pieces := types.ClampPieces(piecesInBatch)
	out := OtherMaterials{
		Rows:   make([]OtherRow, 0, len(lines)),
		Pieces: pieces,
	}
	for _, l := range lines {
		total := l.LineTotal()
		out.ProjectTotal += total
		out.Rows = append(out.Rows, OtherRow{
			OtherMaterialLine: l,
			LineTotal:         total,
			CostPerPiece:      total / float64(pieces),
		})
	}
	out.CostPerPiece = out.ProjectTotal / float64(pieces)
	return out
}
