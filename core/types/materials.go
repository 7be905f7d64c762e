package types

import (
	"strings"

	"pottery-cost/core/units"
)

// MaterialPrice is one row of the raw-material price catalog
type MaterialPrice struct {
	Name      string  `json:"material"`
	CostPerLb float64 `json:"cost_per_lb"`
}

// MaterialPriceFromKg builds a catalog row from a price entered per kg
func MaterialPriceFromKg(name string, costPerKg float64) MaterialPrice {
	return MaterialPrice{Name: name, CostPerLb: units.PerKgToPerPound(costPerKg)}
}

// CostPerKg returns the row price per kg
func (m MaterialPrice) CostPerKg() float64 {
	return units.PerPoundToPerKg(m.CostPerLb)
}

// Key returns the lookup key: trimmed and lower-cased
func (m MaterialPrice) Key() string {
	return MaterialKey(m.Name)
}

// MaterialKey normalizes a material name for catalog lookups
func MaterialKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RecipeLine is one ingredient of a percent-based recipe.
// Percents are relative to the recipe's own total.
type RecipeLine struct {
	Material string  `json:"material"`
	Percent  float64 `json:"percent"`
}

// PieceTableRow is a self-contained glaze row priced without the catalog
type PieceTableRow struct {
	Material      string  `json:"material"`
	CostPerLb     float64 `json:"cost_per_lb"`
	GramsPerPiece float64 `json:"grams_per_piece"`
}

// OtherMaterialLine is a one-off project purchase shared by the batch
type OtherMaterialLine struct {
	Item               string  `json:"item"`
	Unit               string  `json:"unit"`
	CostPerUnit        float64 `json:"cost_per_unit"`
	QuantityForProject float64 `json:"quantity_for_project"`
}

// LineTotal returns cost per unit times quantity
func (l OtherMaterialLine) LineTotal() float64 {
	return l.CostPerUnit * l.QuantityForProject
}
