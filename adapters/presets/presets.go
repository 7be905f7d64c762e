// Package presets provides the library of common pottery forms with their
// typical wet clay weight and glaze amount.
package presets

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cast"

	"pottery-cost/core/session"
)

// Preset is one form in the library
type Preset struct {
	Form          string  `json:"form"`
	ClayLbWet     float64 `json:"clay_lb_wet"`
	DefaultGlazeG float64 `json:"default_glaze_g"`
	Notes         string  `json:"notes,omitempty"`
}

// BuiltIn returns the compiled-in starter list
func BuiltIn() []Preset {
	return []Preset{
		{Form: "Mug (12 oz)", ClayLbWet: 0.90, DefaultGlazeG: 40, Notes: "straight"},
		{Form: "Mug (14 oz)", ClayLbWet: 1.00, DefaultGlazeG: 45},
		{Form: "Creamer (small)", ClayLbWet: 0.75, DefaultGlazeG: 30},
		{Form: "Pitcher (medium)", ClayLbWet: 2.50, DefaultGlazeG: 85},
		{Form: "Bowl (cereal)", ClayLbWet: 1.25, DefaultGlazeG: 55, Notes: "≈6\""},
		{Form: "Bowl (small)", ClayLbWet: 1.00, DefaultGlazeG: 45},
		{Form: "Bowl (medium)", ClayLbWet: 2.00, DefaultGlazeG: 80},
		{Form: "Bowl (large)", ClayLbWet: 4.50, DefaultGlazeG: 140},
		{Form: "Plate (10 in dinner)", ClayLbWet: 2.50, DefaultGlazeG: 110},
		{Form: "Pie plate", ClayLbWet: 3.25, DefaultGlazeG: 120, Notes: "3¼–3½ lb"},
		{Form: "Sugar jar", ClayLbWet: 1.00, DefaultGlazeG: 35},
		{Form: "Honey jar", ClayLbWet: 1.25, DefaultGlazeG: 45},
		{Form: "Crock (small)", ClayLbWet: 1.75, DefaultGlazeG: 60},
		{Form: "Crock (medium)", ClayLbWet: 3.00, DefaultGlazeG: 95},
		{Form: "Crock (large)", ClayLbWet: 4.00, DefaultGlazeG: 130},
	}
}

// column keys after header normalization
const (
	colForm  = "form"
	colClay  = "clay_lb_wet"
	colGlaze = "default_glaze_g"
	colNotes = "notes"
)

// ParseCSV reads a preset sheet with columns Form, Clay_lb_wet,
// Default_glaze_g and Notes. Missing columns and non-numeric cells read as
// zero or empty; rows without a form name are skipped.
func ParseCSV(r io.Reader) ([]Preset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("preset sheet is empty")
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := index[colForm]; !ok {
		return nil, fmt.Errorf("preset sheet has no Form column")
	}

	get := func(row []string, key string) string {
		i, ok := index[key]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]Preset, 0, len(rows)-1)
	for _, row := range rows[1:] {
		form := get(row, colForm)
		if form == "" {
			continue
		}
		out = append(out, Preset{
			Form:          form,
			ClayLbWet:     cast.ToFloat64(get(row, colClay)),
			DefaultGlazeG: cast.ToFloat64(get(row, colGlaze)),
			Notes:         get(row, colNotes),
		})
	}
	return out, nil
}

// Find returns the preset whose form matches name, ignoring case
func Find(list []Preset, name string) (Preset, bool) {
	name = strings.TrimSpace(name)
	for _, p := range list {
		if strings.EqualFold(p.Form, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// Apply copies the preset's clay weight and glaze grams into the session
func Apply(p Preset, s *session.Session) {
	s.Inputs.ClayWeightPerPieceLb = p.ClayLbWet
	s.RecipeGramsPerPiece = p.DefaultGlazeG
}
