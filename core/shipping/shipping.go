// Package shipping estimates the cost of sending finished pieces: billable
// weight, carrier charge by zone and speed, and import duty and VAT on
// international parcels. Amounts are decimal and rounded to cents.
package shipping

import (
	"strings"

	"github.com/shopspring/decimal"

	"pottery-cost/internal/errors"
)

// DefaultDimDivisor converts cm³ to volumetric kg
const DefaultDimDivisor = 5000

// cent is the rounding precision of every amount
const cent = 2

var (
	two = decimal.NewFromInt(2)
	pct = decimal.NewFromInt(100)
)

// Zone is a destination band relative to the sender
type Zone int

const (
	Domestic Zone = iota
	Zone1
	Zone2
	Zone3
	Zone4
)

var zoneNames = []string{"domestic", "zone1", "zone2", "zone3", "zone4"}

var zoneMultipliers = []decimal.Decimal{
	decimal.NewFromInt(1),
	decimal.RequireFromString("1.35"),
	decimal.RequireFromString("1.7"),
	decimal.RequireFromString("2.1"),
	decimal.RequireFromString("2.6"),
}

// String returns the zone name
func (z Zone) String() string {
	if z < Domestic || z > Zone4 {
		return "unknown"
	}
	return zoneNames[z]
}

// Multiplier returns the carrier surcharge factor for the zone
func (z Zone) Multiplier() decimal.Decimal {
	if z < Domestic || z > Zone4 {
		return zoneMultipliers[Domestic]
	}
	return zoneMultipliers[z]
}

// International reports whether customs charges can apply
func (z Zone) International() bool {
	return z != Domestic
}

// ParseZone accepts "domestic", "zone1".."zone4" or a bare digit
func ParseZone(s string) (Zone, error) {
	v := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if v == "" {
		return Domestic, nil
	}
	for i, name := range zoneNames {
		if v == name || (i > 0 && v == name[len(name)-1:]) {
			return Zone(i), nil
		}
	}
	return Domestic, errors.Newf(errors.TypeInput, "unknown shipping zone %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (z Zone) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (z *Zone) UnmarshalText(text []byte) error {
	v, err := ParseZone(string(text))
	if err != nil {
		return err
	}
	*z = v
	return nil
}

// Speed is the service level
type Speed int

const (
	Standard Speed = iota
	Economy
	Express
)

// String returns the speed name
func (s Speed) String() string {
	switch s {
	case Economy:
		return "economy"
	case Express:
		return "express"
	default:
		return "standard"
	}
}

// Multiplier returns the service level factor
func (s Speed) Multiplier() decimal.Decimal {
	switch s {
	case Economy:
		return decimal.RequireFromString("0.85")
	case Express:
		return decimal.RequireFromString("1.6")
	default:
		return decimal.NewFromInt(1)
	}
}

// ParseSpeed accepts "economy", "standard" or "express"; empty is standard
func ParseSpeed(s string) (Speed, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return Standard, nil
	case "economy":
		return Economy, nil
	case "express":
		return Express, nil
	default:
		return Standard, errors.Newf(errors.TypeInput, "unknown shipping speed %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Speed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Speed) UnmarshalText(text []byte) error {
	v, err := ParseSpeed(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Parcel is a packed box
type Parcel struct {
	ActualWeightKg decimal.Decimal `json:"actual_weight_kg"`
	LengthCm       decimal.Decimal `json:"length_cm"`
	WidthCm        decimal.Decimal `json:"width_cm"`
	HeightCm       decimal.Decimal `json:"height_cm"`
}

// Rates is a carrier tariff
type Rates struct {
	BaseRate   decimal.Decimal `json:"base_rate"`
	PerKgRate  decimal.Decimal `json:"per_kg_rate"`
	DimDivisor decimal.Decimal `json:"dim_divisor"`
}

// DefaultRates returns a typical parcel tariff
func DefaultRates() Rates {
	return Rates{
		BaseRate:   decimal.RequireFromString("8.50"),
		PerKgRate:  decimal.RequireFromString("4.25"),
		DimDivisor: decimal.NewFromInt(DefaultDimDivisor),
	}
}

// Customs holds the destination's import rules for one parcel
type Customs struct {
	DeclaredValue decimal.Decimal `json:"declared_value"`
	DutyPercent   decimal.Decimal `json:"duty_percent"`
	VATPercent    decimal.Decimal `json:"vat_percent"`
	DeMinimis     decimal.Decimal `json:"de_minimis"`
}

// Request is one quote request
type Request struct {
	Parcel  Parcel  `json:"parcel"`
	Zone    Zone    `json:"zone"`
	Speed   Speed   `json:"speed"`
	Rates   Rates   `json:"rates"`
	Customs Customs `json:"customs"`
}

// Result is a priced shipment
type Result struct {
	VolumetricWeightKg decimal.Decimal `json:"volumetric_weight_kg"`
	BillableWeightKg   decimal.Decimal `json:"billable_weight_kg"`
	Shipping           decimal.Decimal `json:"shipping"`
	DutyApplied        bool            `json:"duty_applied"`
	Duty               decimal.Decimal `json:"duty"`
	VAT                decimal.Decimal `json:"vat"`
	Landed             decimal.Decimal `json:"landed"`
	Zone               Zone            `json:"zone"`
	Speed              Speed           `json:"speed"`
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// VolumetricWeight returns L×W×H divided by divisor. A divisor of zero or
// less uses DefaultDimDivisor.
func VolumetricWeight(p Parcel, divisor decimal.Decimal) decimal.Decimal {
	if !divisor.IsPositive() {
		divisor = decimal.NewFromInt(DefaultDimDivisor)
	}
	vol := nonNegative(p.LengthCm).Mul(nonNegative(p.WidthCm)).Mul(nonNegative(p.HeightCm))
	return vol.Div(divisor)
}

// BillableWeight returns the greater of actual and volumetric weight, rounded up to the next 0.5 kg
func BillableWeight(p Parcel, divisor decimal.Decimal) decimal.Decimal {
	w := decimal.Max(nonNegative(p.ActualWeightKg), VolumetricWeight(p, divisor))
	return w.Mul(two).Ceil().Div(two)
}

// Quote prices a shipment. Negative amounts are treated as zero.
func Quote(req Request) Result {
	rates := req.Rates
	res := Result{
		Zone:               req.Zone,
		Speed:              req.Speed,
		VolumetricWeightKg: VolumetricWeight(req.Parcel, rates.DimDivisor).Round(3),
		BillableWeightKg:   BillableWeight(req.Parcel, rates.DimDivisor),
		Duty:               decimal.Zero,
		VAT:                decimal.Zero,
	}

	shipping := nonNegative(rates.BaseRate).
		Add(nonNegative(rates.PerKgRate).Mul(res.BillableWeightKg)).
		Mul(req.Zone.Multiplier()).
		Mul(req.Speed.Multiplier())
	res.Shipping = shipping.Round(cent)

	if req.Zone.International() {
		c := req.Customs
		declared := nonNegative(c.DeclaredValue)
		if declared.GreaterThan(nonNegative(c.DeMinimis)) {
			res.DutyApplied = true
			res.Duty = declared.Mul(nonNegative(c.DutyPercent)).Div(pct).Round(cent)
		}
		res.VAT = declared.Add(res.Shipping).Add(res.Duty).
			Mul(nonNegative(c.VATPercent)).Div(pct).Round(cent)
	}

	res.Landed = res.Shipping.Add(res.Duty).Add(res.VAT)
	return res
}
