// Package material costs glaze recipes, glaze piece tables and one-off project
// materials. Every function is pure and total: missing prices cost zero and
// are reported, never returned as errors.
package material

import (
	"sort"

	"pottery-cost/core/types"
	"pottery-cost/core/units"
)

// Catalog is the normalized price lookup built from catalog rows.
// Names are matched trimmed and case-insensitively. When a name appears
// more than once the last row wins and the key is listed in Duplicates.
type Catalog struct {
	perGram    map[string]float64
	duplicates []string
}

// NewCatalog builds a catalog from price rows
func NewCatalog(rows []types.MaterialPrice) *Catalog {
	c := &Catalog{perGram: make(map[string]float64, len(rows))}
	dup := make(map[string]bool)
	for _, r := range rows {
		key := r.Key()
		if _, exists := c.perGram[key]; exists && !dup[key] {
			dup[key] = true
			c.duplicates = append(c.duplicates, key)
		}
		c.perGram[key] = units.PerPoundToPerGram(r.CostPerLb)
	}
	sort.Strings(c.duplicates)
	return c
}

// PricePerGram returns the price of one gram of the named material
func (c *Catalog) PricePerGram(name string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	p, ok := c.perGram[types.MaterialKey(name)]
	return p, ok
}

// PriceMap returns a copy of the lookup: normalized name to price per gram
func (c *Catalog) PriceMap() map[string]float64 {
	out := make(map[string]float64)
	if c == nil {
		return out
	}
	for k, v := range c.perGram {
		out[k] = v
	}
	return out
}

// Duplicates returns the normalized names that appeared more than once, sorted
func (c *Catalog) Duplicates() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.duplicates))
	copy(out, c.duplicates)
	return out
}

// Len returns the number of distinct materials
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.perGram)
}
