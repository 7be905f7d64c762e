package types

import "strings"

// FuelKind selects the combustion fuel used alongside electric firing
type FuelKind int

const (
	FuelNone FuelKind = iota
	FuelPropane
	FuelNaturalGas
	FuelWood
)

// String returns the persisted name
func (k FuelKind) String() string {
	switch k {
	case FuelPropane:
		return "Propane"
	case FuelNaturalGas:
		return "Natural Gas"
	case FuelWood:
		return "Wood"
	default:
		return "None"
	}
}

// ParseFuelKind is total: anything unrecognized is FuelNone
func ParseFuelKind(s string) FuelKind {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "propane", "lp":
		return FuelPropane
	case "natural gas", "natural_gas", "naturalgas", "ng":
		return FuelNaturalGas
	case "wood":
		return FuelWood
	default:
		return FuelNone
	}
}

// MarshalText implements encoding.TextMarshaler
func (k FuelKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (k *FuelKind) UnmarshalText(text []byte) error {
	*k = ParseFuelKind(string(text))
	return nil
}

// CostInputs is the flat per-session configuration every costing function reads.
// JSON keys match the saved settings file.
type CostInputs struct {
	UnitsMade int `json:"units_made"`

	ClayPricePerBag      float64 `json:"clay_price_per_bag"`
	ClayBagWeightLb      float64 `json:"clay_bag_weight_lb"`
	ClayWeightPerPieceLb float64 `json:"clay_weight_per_piece_lb"`
	ClayYield            float64 `json:"clay_yield"`

	PackagingPerPiece float64 `json:"packaging_per_piece"`

	KwhRate                 float64 `json:"kwh_rate"`
	KwhBisque               float64 `json:"kwh_bisque"`
	KwhGlaze                float64 `json:"kwh_glaze"`
	KwhThird                float64 `json:"kwh_third"`
	PiecesPerElectricFiring int     `json:"pieces_per_electric_firing"`

	Fuel FuelKind `json:"fuel_gas"`

	LPPricePerGal      float64 `json:"lp_price_per_gal"`
	LPGalBisque        float64 `json:"lp_gal_bisque"`
	LPGalGlaze         float64 `json:"lp_gal_glaze"`
	PiecesPerGasFiring int     `json:"pieces_per_gas_firing"`

	NGPricePerTherm float64 `json:"ng_price_per_therm"`
	NGThermsBisque  float64 `json:"ng_therms_bisque"`
	NGThermsGlaze   float64 `json:"ng_therms_glaze"`

	WoodPricePerCord     float64 `json:"wood_price_per_cord"`
	WoodPricePerFacecord float64 `json:"wood_price_per_facecord"`
	WoodCordsBisque      float64 `json:"wood_cords_bisque"`
	WoodCordsGlaze       float64 `json:"wood_cords_glaze"`
	WoodCordsThird       float64 `json:"wood_cords_third"`
	WoodFacecordsBisque  float64 `json:"wood_facecords_bisque"`
	WoodFacecordsGlaze   float64 `json:"wood_facecords_glaze"`
	WoodFacecordsThird   float64 `json:"wood_facecords_third"`
	PiecesPerWoodFiring  int     `json:"pieces_per_wood_firing"`

	LaborRate     float64 `json:"labor_rate"`
	HoursPerPiece float64 `json:"hours_per_piece"`

	OverheadPerMonth float64 `json:"overhead_per_month"`
	PiecesPerMonth   int     `json:"pieces_per_month"`

	// UseDoubling selects the 2x2x2 rule instead of the margin policy
	UseDoubling        bool    `json:"use_2x2x2"`
	WholesaleMarginPct float64 `json:"wholesale_margin_pct"`
	RetailMultiplier   float64 `json:"retail_multiplier"`
}

// DefaultInputs returns the starting values of a new session
func DefaultInputs() CostInputs {
	return CostInputs{
		UnitsMade:               1,
		ClayPricePerBag:         50.0,
		ClayBagWeightLb:         25.0,
		ClayWeightPerPieceLb:    1.0,
		ClayYield:               0.9,
		KwhRate:                 0.15,
		KwhBisque:               30.0,
		KwhGlaze:                35.0,
		PiecesPerElectricFiring: 40,
		Fuel:                    FuelNone,
		LPPricePerGal:           3.50,
		PiecesPerGasFiring:      40,
		NGPricePerTherm:         1.20,
		WoodPricePerCord:        300.0,
		WoodPricePerFacecord:    120.0,
		PiecesPerWoodFiring:     40,
		LaborRate:               25.0,
		HoursPerPiece:           0.25,
		OverheadPerMonth:        500.0,
		PiecesPerMonth:          200,
		WholesaleMarginPct:      50,
		RetailMultiplier:        2.2,
	}
}

// ClampPieces returns n, or 1 when n is zero or negative
func ClampPieces(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
