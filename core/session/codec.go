package session

import (
	"encoding/json"
	stderrors "errors"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"pottery-cost/core/material"
	"pottery-cost/core/types"
	"pottery-cost/internal/errors"
)

// Settings file keys
const (
	keyInputs        = "inputs"
	keyPieceTable    = "glaze_piece_df"
	keyCatalog       = "catalog_df"
	keyRecipe        = "recipe_df"
	keyGramsPerPiece = "recipe_grams_per_piece"
	keyOther         = "other_mat_df"
	keyGlazeSource   = "glaze_source"
)

type pieceColumns struct {
	Material      []string  `json:"Material"`
	CostPerLb     []float64 `json:"Cost_per_lb"`
	GramsPerPiece []float64 `json:"Grams_per_piece"`
}

type catalogColumns struct {
	Material  []string  `json:"Material"`
	CostPerLb []float64 `json:"Cost_per_lb"`
	CostPerKg []float64 `json:"Cost_per_kg"`
}

type recipeColumns struct {
	Material []string  `json:"Material"`
	Percent  []float64 `json:"Percent"`
}

type otherColumns struct {
	Item               []string  `json:"Item"`
	Unit               []string  `json:"Unit"`
	CostPerUnit        []float64 `json:"Cost_per_unit"`
	QuantityForProject []float64 `json:"Quantity_for_project"`
}

// document is the settings file layout: tables are stored column-wise
type document struct {
	Inputs              types.CostInputs     `json:"inputs"`
	PieceTable          pieceColumns         `json:"glaze_piece_df"`
	Catalog             catalogColumns       `json:"catalog_df"`
	Recipe              recipeColumns        `json:"recipe_df"`
	RecipeGramsPerPiece float64              `json:"recipe_grams_per_piece"`
	OtherMaterials      otherColumns         `json:"other_mat_df"`
	GlazeSource         material.GlazeSource `json:"glaze_source"`
}

// Encode writes the session as an indented settings file
func Encode(s Session) ([]byte, error) {
	doc := document{
		Inputs:              s.Inputs,
		RecipeGramsPerPiece: s.RecipeGramsPerPiece,
		GlazeSource:         s.GlazeSource,
		PieceTable: pieceColumns{
			Material:      make([]string, len(s.PieceTable)),
			CostPerLb:     make([]float64, len(s.PieceTable)),
			GramsPerPiece: make([]float64, len(s.PieceTable)),
		},
		Catalog: catalogColumns{
			Material:  make([]string, len(s.Catalog)),
			CostPerLb: make([]float64, len(s.Catalog)),
			CostPerKg: make([]float64, len(s.Catalog)),
		},
		Recipe: recipeColumns{
			Material: make([]string, len(s.Recipe)),
			Percent:  make([]float64, len(s.Recipe)),
		},
		OtherMaterials: otherColumns{
			Item:               make([]string, len(s.OtherMaterials)),
			Unit:               make([]string, len(s.OtherMaterials)),
			CostPerUnit:        make([]float64, len(s.OtherMaterials)),
			QuantityForProject: make([]float64, len(s.OtherMaterials)),
		},
	}
	for i, r := range s.PieceTable {
		doc.PieceTable.Material[i] = r.Material
		doc.PieceTable.CostPerLb[i] = r.CostPerLb
		doc.PieceTable.GramsPerPiece[i] = r.GramsPerPiece
	}
	for i, r := range s.Catalog {
		doc.Catalog.Material[i] = r.Name
		doc.Catalog.CostPerLb[i] = r.CostPerLb
		doc.Catalog.CostPerKg[i] = r.CostPerKg()
	}
	for i, r := range s.Recipe {
		doc.Recipe.Material[i] = r.Material
		doc.Recipe.Percent[i] = r.Percent
	}
	for i, r := range s.OtherMaterials {
		doc.OtherMaterials.Item[i] = r.Item
		doc.OtherMaterials.Unit[i] = r.Unit
		doc.OtherMaterials.CostPerUnit[i] = r.CostPerUnit
		doc.OtherMaterials.QuantityForProject[i] = r.QuantityForProject
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Internal("encode session", err)
	}
	return data, nil
}

// Decode reads a settings file. Only input that is not a JSON object fails.
// Anything missing or unusable takes its default, and the returned list names
// every field that did.
func Decode(data []byte) (Session, []string, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Session{}, nil, errors.Parsing("settings file is not a JSON object", err)
	}
	if raw == nil {
		return Session{}, nil, errors.New(errors.TypeParsing, "settings file is not a JSON object")
	}

	d := &decoder{}
	s := Default()

	s.Inputs = d.inputs(raw[keyInputs], raw[keyInputs] != nil)

	if t, ok := d.table(raw, keyPieceTable); ok {
		s.PieceTable = make([]types.PieceTableRow, t.rows)
		for i := range s.PieceTable {
			s.PieceTable[i] = types.PieceTableRow{
				Material:      t.str("Material", i),
				CostPerLb:     t.num("Cost_per_lb", i),
				GramsPerPiece: t.num("Grams_per_piece", i),
			}
		}
	}

	if t, ok := d.table(raw, keyCatalog); ok {
		s.Catalog = make([]types.MaterialPrice, t.rows)
		for i := range s.Catalog {
			name := t.str("Material", i)
			if lb, ok := t.numOK("Cost_per_lb", i); ok {
				s.Catalog[i] = types.MaterialPrice{Name: name, CostPerLb: lb}
			} else if kg, ok := t.numOK("Cost_per_kg", i); ok {
				s.Catalog[i] = types.MaterialPriceFromKg(name, kg)
			} else {
				s.Catalog[i] = types.MaterialPrice{Name: name}
			}
		}
	}

	if t, ok := d.table(raw, keyRecipe); ok {
		s.Recipe = make([]types.RecipeLine, t.rows)
		for i := range s.Recipe {
			s.Recipe[i] = types.RecipeLine{Material: t.str("Material", i), Percent: t.num("Percent", i)}
		}
	}

	if t, ok := d.table(raw, keyOther); ok {
		s.OtherMaterials = make([]types.OtherMaterialLine, t.rows)
		for i := range s.OtherMaterials {
			s.OtherMaterials[i] = types.OtherMaterialLine{
				Item:               t.str("Item", i),
				Unit:               t.str("Unit", i),
				CostPerUnit:        t.num("Cost_per_unit", i),
				QuantityForProject: t.num("Quantity_for_project", i),
			}
		}
	}

	if v, ok := raw[keyGramsPerPiece]; ok && v != nil {
		if f, err := toFloat(v); err == nil {
			s.RecipeGramsPerPiece = f
		} else {
			d.fallback(keyGramsPerPiece)
		}
	} else {
		d.fallback(keyGramsPerPiece)
	}

	if v, ok := raw[keyGlazeSource]; ok && v != nil {
		str, err := cast.ToStringE(v)
		if err != nil {
			d.fallback(keyGlazeSource)
		}
		s.GlazeSource = material.ParseGlazeSource(str)
	} else {
		d.fallback(keyGlazeSource)
	}

	return s, d.fallbacks, nil
}

// toFloat coerces v to a finite number. NaN and ±Inf text parse as floats
// but are not usable settings, so they count as a failed coercion.
func toFloat(v interface{}) (float64, error) {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, stderrors.New("not a finite number")
	}
	return f, nil
}

type decoder struct {
	fallbacks []string
}

func (d *decoder) fallback(field string) {
	d.fallbacks = append(d.fallbacks, field)
}

var fuelKindType = reflect.TypeOf(types.FuelKind(0))

// inputs overlays every coercible value onto the defaults field by field
func (d *decoder) inputs(v interface{}, present bool) types.CostInputs {
	in := types.DefaultInputs()
	values, err := cast.ToStringMapE(v)
	if !present || err != nil {
		d.fallback(keyInputs)
		return in
	}

	rv := reflect.ValueOf(&in).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		key := strings.Split(f.Tag.Get("json"), ",")[0]
		raw, ok := values[key]
		if !ok || raw == nil {
			d.fallback(keyInputs + "." + key)
			continue
		}

		field := rv.Field(i)
		var cerr error
		switch {
		case f.Type == fuelKindType:
			var s string
			if s, cerr = cast.ToStringE(raw); cerr == nil {
				field.SetInt(int64(types.ParseFuelKind(s)))
			}
		case f.Type.Kind() == reflect.Int:
			var n int
			if n, cerr = cast.ToIntE(raw); cerr == nil {
				field.SetInt(int64(n))
			}
		case f.Type.Kind() == reflect.Float64:
			var x float64
			if x, cerr = toFloat(raw); cerr == nil {
				field.SetFloat(x)
			}
		case f.Type.Kind() == reflect.Bool:
			var b bool
			if b, cerr = cast.ToBoolE(raw); cerr == nil {
				field.SetBool(b)
			}
		}
		if cerr != nil {
			d.fallback(keyInputs + "." + key)
		}
	}
	return in
}

// columns is one decoded column-wise table
type columns struct {
	d    *decoder
	key  string
	cols map[string][]interface{}
	rows int
	bad  map[string]bool
}

// table reads a column-wise table. ok is false when the table is absent or
// unusable, and the caller keeps its default.
func (d *decoder) table(raw map[string]interface{}, key string) (*columns, bool) {
	v, present := raw[key]
	if !present || v == nil {
		d.fallback(key)
		return nil, false
	}
	m, err := cast.ToStringMapE(v)
	if err != nil {
		d.fallback(key)
		return nil, false
	}

	t := &columns{d: d, key: key, cols: make(map[string][]interface{}, len(m)), bad: make(map[string]bool)}
	for name, col := range m {
		cells := columnCells(col)
		if cells == nil {
			d.fallback(key + "." + name)
			continue
		}
		t.cols[name] = cells
		if len(cells) > t.rows {
			t.rows = len(cells)
		}
	}
	return t, true
}

// columnCells accepts a list or an index-keyed object, the two shapes a
// column is written in.
func columnCells(col interface{}) []interface{} {
	if list, ok := col.([]interface{}); ok {
		return list
	}
	m, err := cast.ToStringMapE(col)
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}

func (t *columns) cell(name string, i int) (interface{}, bool) {
	col, ok := t.cols[name]
	if !ok || i >= len(col) || col[i] == nil {
		t.mark(name)
		return nil, false
	}
	return col[i], true
}

func (t *columns) mark(name string) {
	if !t.bad[name] {
		t.bad[name] = true
		t.d.fallback(t.key + "." + name)
	}
}

func (t *columns) str(name string, i int) string {
	v, ok := t.cell(name, i)
	if !ok {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		t.mark(name)
		return ""
	}
	return s
}

func (t *columns) numOK(name string, i int) (float64, bool) {
	col, ok := t.cols[name]
	if !ok || i >= len(col) || col[i] == nil {
		return 0, false
	}
	f, err := toFloat(col[i])
	if err != nil {
		t.mark(name)
		return 0, false
	}
	return f, true
}

func (t *columns) num(name string, i int) float64 {
	v, ok := t.cell(name, i)
	if !ok {
		return 0
	}
	f, err := toFloat(v)
	if err != nil {
		t.mark(name)
		return 0
	}
	return f
}
