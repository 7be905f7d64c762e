package material

import (
	"strings"

	"pottery-cost/core/types"
)

// GlazeSource selects which table supplies the glaze cost of a piece.
// The two sources are alternatives and are never added together.
type GlazeSource int

const (
	GlazeFromRecipe GlazeSource = iota
	GlazeFromPieceTable
)

// String returns the persisted name
func (s GlazeSource) String() string {
	if s == GlazeFromPieceTable {
		return "Manual table"
	}
	return "Recipe tab"
}

// ParseGlazeSource is total: anything unrecognized selects the recipe
func ParseGlazeSource(s string) GlazeSource {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manual table", "manual", "piece_table", "piece-table", "piece table", "table":
		return GlazeFromPieceTable
	default:
		return GlazeFromRecipe
	}
}

// MarshalText implements encoding.TextMarshaler
func (s GlazeSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (s *GlazeSource) UnmarshalText(text []byte) error {
	*s = ParseGlazeSource(string(text))
	return nil
}

// GlazeInput carries both possible glaze sources and the selection
type GlazeInput struct {
	Source        GlazeSource
	Catalog       []types.MaterialPrice
	Recipe        []types.RecipeLine
	GramsPerPiece float64
	PieceTable    []types.PieceTableRow
}

// GlazeCost is the glaze cost of one piece from the selected source
type GlazeCost struct {
	Source       GlazeSource       `json:"source"`
	CostPerPiece float64           `json:"cost_per_piece"`
	Recipe       *RecipePerPiece   `json:"recipe,omitempty"`
	PieceTable   *PieceTableResult `json:"piece_table,omitempty"`
	Unmatched    []string          `json:"unmatched,omitempty"`
	Duplicates   []string          `json:"duplicates,omitempty"`
}

// Glaze computes the glaze cost from exactly one source
func Glaze(in GlazeInput) GlazeCost {
	out := GlazeCost{Source: in.Source}
	if in.Source == GlazeFromPieceTable {
		pt := PieceTableCost(in.PieceTable)
		out.PieceTable = &pt
		out.CostPerPiece = pt.CostPerPiece
		return out
	}

	catalog := NewCatalog(in.Catalog)
	pp := PerPiece(catalog, in.Recipe, in.GramsPerPiece)
	out.Recipe = &pp
	out.CostPerPiece = pp.CostPerPiece
	out.Unmatched = pp.Unmatched
	out.Duplicates = catalog.Duplicates()
	return out
}
