package material

import (
	"math"
	"strings"

	"pottery-cost/core/types"
	"pottery-cost/core/units"
)

// RecipeRow is one line of a costed recipe
type RecipeRow struct {
	Material string  `json:"material"`
	Percent  float64 `json:"percent"`
	Grams    float64 `json:"grams"`
	Ounces   float64 `json:"ounces"`
	Pounds   float64 `json:"pounds"`
	Cost     float64 `json:"cost"`
	Matched  bool    `json:"matched"`
}

// RecipeBatch is a recipe scaled to a batch mass
type RecipeBatch struct {
	Rows         []RecipeRow `json:"rows"`
	BatchGrams   float64     `json:"batch_grams"`
	BatchTotal   float64     `json:"batch_total"`
	CostPerGram  float64     `json:"cost_per_gram"`
	CostPerOunce float64     `json:"cost_per_ounce"`
	CostPerPound float64     `json:"cost_per_pound"`

	// Unmatched lists recipe materials missing from the catalog
	Unmatched []string `json:"unmatched,omitempty"`
}

// RecipePerPiece is a recipe scaled to the glaze used on one piece
type RecipePerPiece struct {
	Rows          []RecipeRow `json:"rows"`
	GramsPerPiece float64     `json:"grams_per_piece"`
	CostPerPiece  float64     `json:"cost_per_piece"`
	Unmatched     []string    `json:"unmatched,omitempty"`
}

// Denominator returns the percent total a recipe is normalized by: the sum
// of its percents, or 100 when they sum to zero.
func Denominator(recipe []types.RecipeLine) float64 {
	var total float64
	for _, l := range recipe {
		total += l.Percent
	}
	if total == 0 {
		return 100
	}
	return total
}

// BatchSizeToGrams converts a batch size entered in g, oz or lb
func BatchSizeToGrams(value float64, unit units.MassUnit) float64 {
	return units.ToGrams(value, unit)
}

// BatchTable scales the recipe to batchGrams and prices every line.
// Displayed masses are rounded; costs are not.
func BatchTable(c *Catalog, recipe []types.RecipeLine, batchGrams float64) RecipeBatch {
	rows, total, unmatched := scale(c, recipe, batchGrams)

	out := RecipeBatch{
		Rows:       make([]RecipeRow, len(rows)),
		BatchGrams: batchGrams,
		BatchTotal: total,
		Unmatched:  unmatched,
	}
	for i, r := range rows {
		r.Ounces = round(r.Grams/units.GramsPerOunce, 2)
		r.Pounds = round(r.Grams/units.GramsPerPound, 3)
		r.Grams = round(r.Grams, 2)
		out.Rows[i] = r
	}
	if batchGrams != 0 {
		out.CostPerGram = total / batchGrams
	}
	out.CostPerOunce = out.CostPerGram * units.GramsPerOunce
	out.CostPerPound = out.CostPerGram * units.GramsPerPound
	return out
}

// PerPiece treats gramsPerPiece as the batch mass and returns the glaze cost of one piece
func PerPiece(c *Catalog, recipe []types.RecipeLine, gramsPerPiece float64) RecipePerPiece {
	rows, total, unmatched := scale(c, recipe, gramsPerPiece)

	out := RecipePerPiece{
		Rows:          make([]RecipeRow, len(rows)),
		GramsPerPiece: gramsPerPiece,
		CostPerPiece:  total,
		Unmatched:     unmatched,
	}
	for i, r := range rows {
		r.Percent = round(r.Percent, 2)
		r.Ounces = round(r.Grams/units.GramsPerOunce, 3)
		r.Pounds = round(r.Grams/units.GramsPerPound, 4)
		r.Grams = round(r.Grams, 3)
		out.Rows[i] = r
	}
	return out
}

// scale computes unrounded grams and cost per line. Mass and cost are
// independent: an unpriced line still carries its full share of grams.
func scale(c *Catalog, recipe []types.RecipeLine, mass float64) ([]RecipeRow, float64, []string) {
	denom := Denominator(recipe)
	rows := make([]RecipeRow, 0, len(recipe))
	var total float64
	var unmatched []string
	seen := make(map[string]bool)

	for _, l := range recipe {
		name := strings.TrimSpace(l.Material)
		grams := mass * l.Percent / denom
		price, ok := c.PricePerGram(name)
		cost := grams * price
		total += cost

		if !ok && name != "" && !seen[types.MaterialKey(name)] {
			seen[types.MaterialKey(name)] = true
			unmatched = append(unmatched, name)
		}
		rows = append(rows, RecipeRow{
			Material: name,
			Percent:  l.Percent,
			Grams:    grams,
			Cost:     cost,
			Matched:  ok,
		})
	}
	return rows, total, unmatched
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
