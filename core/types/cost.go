package types

import "math"

// PriceStatus tags whether a price tier has a usable amount
type PriceStatus int

const (
	// PriceOK means Amount is meaningful
	PriceOK PriceStatus = iota

	// PriceUnpriceable means cost cannot be recovered at the configured margin
	PriceUnpriceable

	// PriceNotOffered means the pricing policy has no such tier
	PriceNotOffered
)

// String returns the status name
func (s PriceStatus) String() string {
	switch s {
	case PriceUnpriceable:
		return "unpriceable"
	case PriceNotOffered:
		return "not_offered"
	default:
		return "priced"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s PriceStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *PriceStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "unpriceable":
		*s = PriceUnpriceable
	case "not_offered":
		*s = PriceNotOffered
	default:
		*s = PriceOK
	}
	return nil
}

// Price is one tier of the derived price list.
// Amount is zero unless Status is PriceOK.
type Price struct {
	Amount float64     `json:"amount"`
	Status PriceStatus `json:"status"`
}

// Priced returns a usable price
func Priced(amount float64) Price {
	return Price{Amount: amount, Status: PriceOK}
}

// Unpriceable returns the tag for an unrecoverable cost
func Unpriceable() Price {
	return Price{Status: PriceUnpriceable}
}

// NotOffered returns the tag for a tier the policy does not produce
func NotOffered() Price {
	return Price{Status: PriceNotOffered}
}

// OK reports whether Amount can be used
func (p Price) OK() bool {
	return p.Status == PriceOK
}

// Float returns the amount, +Inf when unpriceable and NaN when not offered
func (p Price) Float() float64 {
	switch p.Status {
	case PriceUnpriceable:
		return math.Inf(1)
	case PriceNotOffered:
		return math.NaN()
	default:
		return p.Amount
	}
}

// Prices is the projected price list for one piece
type Prices struct {
	Wholesale   Price `json:"wholesale"`
	Retail      Price `json:"retail"`
	Distributor Price `json:"distributor"`
}

// CostBreakdown is the decomposed cost of one finished piece
type CostBreakdown struct {
	Clay           float64 `json:"clay"`
	Glaze          float64 `json:"glaze"`
	Packaging      float64 `json:"packaging"`
	OtherMaterials float64 `json:"other_materials"`
	Energy         float64 `json:"energy"`
	Labor          float64 `json:"labor"`
	Overhead       float64 `json:"overhead"`
	Total          float64 `json:"total"`

	Prices Prices `json:"prices"`
}

// Materials returns clay, glaze, packaging and other materials combined
func (b CostBreakdown) Materials() float64 {
	return b.Clay + b.Glaze + b.Packaging + b.OtherMaterials
}

// Line is a labelled component amount
type Line struct {
	Label  string
	Amount float64
}

// Lines returns the components in display order
func (b CostBreakdown) Lines() []Line {
	return []Line{
		{"Clay", b.Clay},
		{"Glaze", b.Glaze},
		{"Packaging", b.Packaging},
		{"Other materials", b.OtherMaterials},
		{"Energy", b.Energy},
		{"Labor", b.Labor},
		{"Overhead", b.Overhead},
	}
}
