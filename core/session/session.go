// Package session holds the complete editable state of one costing session
// and its settings-file encoding.
package session

import (
	"pottery-cost/core/cost"
	"pottery-cost/core/material"
	"pottery-cost/core/types"
)

// DefaultGramsPerPiece is the glaze applied to one piece in a new session
const DefaultGramsPerPiece = 8.0

// Session is everything a user edits
type Session struct {
	Inputs              types.CostInputs
	Catalog             []types.MaterialPrice
	Recipe              []types.RecipeLine
	RecipeGramsPerPiece float64
	PieceTable          []types.PieceTableRow
	OtherMaterials      []types.OtherMaterialLine
	GlazeSource         material.GlazeSource
}

var starterMaterials = []string{"Custer Feldspar", "Silica 325m", "EPK Kaolin", "Frit 3134"}

// Default returns the starting state of a new session
func Default() Session {
	s := Session{
		Inputs:              types.DefaultInputs(),
		RecipeGramsPerPiece: DefaultGramsPerPiece,
		PieceTable:          defaultPieceTable(),
		OtherMaterials:      defaultOtherMaterials(),
		GlazeSource:         material.GlazeFromRecipe,
	}
	s.Catalog = defaultCatalog()
	s.Recipe = defaultRecipe()
	return s
}

func defaultCatalog() []types.MaterialPrice {
	out := make([]types.MaterialPrice, len(starterMaterials))
	for i, name := range starterMaterials {
		out[i] = types.MaterialPrice{Name: name}
	}
	return out
}

func defaultRecipe() []types.RecipeLine {
	out := make([]types.RecipeLine, len(starterMaterials))
	for i, name := range starterMaterials {
		out[i] = types.RecipeLine{Material: name}
	}
	return out
}

func defaultPieceTable() []types.PieceTableRow {
	return []types.PieceTableRow{{Material: "Frit 3134"}}
}

func defaultOtherMaterials() []types.OtherMaterialLine {
	return []types.OtherMaterialLine{{Item: "Hand pump", Unit: "each", CostPerUnit: 0.85, QuantityForProject: 16}}
}

// Request converts the session into a recalculation request
func (s Session) Request() cost.Request {
	return cost.Request{
		Inputs:              s.Inputs,
		Catalog:             s.Catalog,
		Recipe:              s.Recipe,
		RecipeGramsPerPiece: s.RecipeGramsPerPiece,
		PieceTable:          s.PieceTable,
		OtherMaterials:      s.OtherMaterials,
		GlazeSource:         s.GlazeSource,
	}
}
