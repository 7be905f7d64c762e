// Package profile loads studio profiles: HCL files describing a costing
// session, or JSON settings files saved by a previous session.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"pottery-cost/core/material"
	"pottery-cost/core/session"
	"pottery-cost/core/types"
	"pottery-cost/internal/errors"
)

// Profile is a loaded session plus anything the file asked for beyond it
type Profile struct {
	Path    string
	Session session.Session

	// Preset names a form whose clay weight and glaze grams apply on top
	Preset string

	// Fallbacks lists settings-file fields that took their default
	Fallbacks []string
}

type materialBlock struct {
	Name      string   `hcl:"name,label"`
	CostPerLb *float64 `hcl:"cost_per_lb,optional"`
	CostPerKg *float64 `hcl:"cost_per_kg,optional"`
}

type recipeBlock struct {
	Material string  `hcl:"material,label"`
	Percent  float64 `hcl:"percent"`
}

type pieceBlock struct {
	Material      string  `hcl:"material,label"`
	CostPerLb     float64 `hcl:"cost_per_lb,optional"`
	GramsPerPiece float64 `hcl:"grams_per_piece,optional"`
}

type otherBlock struct {
	Item        string  `hcl:"item,label"`
	Unit        string  `hcl:"unit,optional"`
	CostPerUnit float64 `hcl:"cost_per_unit,optional"`
	Quantity    float64 `hcl:"quantity,optional"`
}

type hclFile struct {
	Preset        *string  `hcl:"preset,optional"`
	GlazeSource   *string  `hcl:"glaze_source,optional"`
	GramsPerPiece *float64 `hcl:"grams_per_piece,optional"`

	Materials []materialBlock `hcl:"material,block"`
	Recipe    []recipeBlock   `hcl:"recipe,block"`
	Pieces    []pieceBlock    `hcl:"piece,block"`
	Other     []otherBlock    `hcl:"other,block"`

	Inputs hcl.Body `hcl:",remain"`
}

// Load reads a profile, choosing the format by file extension
func Load(path string) (*Profile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("profile", path)
		}
		return nil, errors.Wrap(errors.TypeParsing, "failed to read profile", err).WithContext("file", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(src, path)
	case ".hcl", ".pot":
		return ParseHCL(src, path)
	default:
		return nil, errors.Newf(errors.TypeInput, "unsupported profile extension %q (want .hcl or .json)", filepath.Ext(path))
	}
}

// ParseJSON reads a saved settings file
func ParseJSON(src []byte, filename string) (*Profile, error) {
	s, fallbacks, err := session.Decode(src)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return nil, e.WithContext("file", filename)
		}
		return nil, err
	}
	return &Profile{Path: filename, Session: s, Fallbacks: fallbacks}, nil
}

// ParseHCL reads an HCL profile. Top-level attributes override the default
// inputs by their settings-file names; blocks replace whole tables.
func ParseHCL(src []byte, filename string) (*Profile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	var f hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &f); diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	s := session.Default()
	inputs, diags := decodeInputs(f.Inputs)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}
	s.Inputs = inputs

	if f.GlazeSource != nil {
		s.GlazeSource = material.ParseGlazeSource(*f.GlazeSource)
	}
	if f.GramsPerPiece != nil {
		s.RecipeGramsPerPiece = *f.GramsPerPiece
	}

	if len(f.Materials) > 0 {
		s.Catalog = make([]types.MaterialPrice, len(f.Materials))
		for i, m := range f.Materials {
			switch {
			case m.CostPerLb != nil:
				s.Catalog[i] = types.MaterialPrice{Name: m.Name, CostPerLb: *m.CostPerLb}
			case m.CostPerKg != nil:
				s.Catalog[i] = types.MaterialPriceFromKg(m.Name, *m.CostPerKg)
			default:
				s.Catalog[i] = types.MaterialPrice{Name: m.Name}
			}
		}
	}
	if len(f.Recipe) > 0 {
		s.Recipe = make([]types.RecipeLine, len(f.Recipe))
		for i, r := range f.Recipe {
			s.Recipe[i] = types.RecipeLine{Material: r.Material, Percent: r.Percent}
		}
	}
	if len(f.Pieces) > 0 {
		s.PieceTable = make([]types.PieceTableRow, len(f.Pieces))
		for i, p := range f.Pieces {
			s.PieceTable[i] = types.PieceTableRow{Material: p.Material, CostPerLb: p.CostPerLb, GramsPerPiece: p.GramsPerPiece}
		}
	}
	if len(f.Other) > 0 {
		s.OtherMaterials = make([]types.OtherMaterialLine, len(f.Other))
		for i, o := range f.Other {
			s.OtherMaterials[i] = types.OtherMaterialLine{Item: o.Item, Unit: o.Unit, CostPerUnit: o.CostPerUnit, QuantityForProject: o.Quantity}
		}
	}

	p := &Profile{Path: filename, Session: s}
	if f.Preset != nil {
		p.Preset = *f.Preset
	}
	return p, nil
}

const fuelAttr = "fuel_gas"

// decodeInputs overlays the remaining attributes onto DefaultInputs,
// matching attribute names to the inputs' JSON keys.
func decodeInputs(body hcl.Body) (types.CostInputs, hcl.Diagnostics) {
	in := types.DefaultInputs()
	if body == nil {
		return in, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return in, diags
	}

	rv := reflect.ValueOf(&in).Elem()
	fields := make(map[string]int, rv.NumField())
	for i := 0; i < rv.NumField(); i++ {
		key := strings.Split(rv.Type().Field(i).Tag.Get("json"), ",")[0]
		fields[key] = i
	}

	for name, attr := range attrs {
		idx, ok := fields[name]
		if !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown setting",
				Detail:   fmt.Sprintf("%q is not a cost input.", name),
				Subject:  attr.NameRange.Ptr(),
			})
			continue
		}
		if name == fuelAttr {
			var fuel string
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &fuel)...)
			in.Fuel = types.ParseFuelKind(fuel)
			continue
		}
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, rv.Field(idx).Addr().Interface())...)
	}
	return in, diags
}

// diagError turns the first error diagnostic into a parsing error with its position
func diagError(filename string, diags hcl.Diagnostics) error {
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		e := errors.New(errors.TypeParsing, strings.TrimSuffix(d.Summary+": "+d.Detail, ": ")).WithContext("file", filename)
		if d.Subject != nil {
			e = e.WithContext("line", d.Subject.Start.Line)
			e.Message = fmt.Sprintf("%s:%d: %s", filename, d.Subject.Start.Line, e.Message)
		}
		return e
	}
	return errors.New(errors.TypeParsing, diags.Error()).WithContext("file", filename)
}
