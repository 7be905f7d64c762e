// Package pricing derives wholesale, retail and distributor prices from the
// total cost of one piece.
package pricing

import "pottery-cost/core/types"

// Policy is the rule used to derive prices
type Policy int

const (
	// PolicyMargin divides cost by (1 - margin) and multiplies out to retail
	PolicyMargin Policy = iota

	// PolicyDoubling doubles cost to wholesale, wholesale to retail, retail to distributor
	PolicyDoubling
)

// String returns the policy name
func (p Policy) String() string {
	if p == PolicyDoubling {
		return "2x2x2"
	}
	return "margin"
}

// MarshalText implements encoding.TextMarshaler
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PolicyFor returns the policy selected by the inputs
func PolicyFor(in types.CostInputs) Policy {
	if in.UseDoubling {
		return PolicyDoubling
	}
	return PolicyMargin
}

// Derive computes the three price tiers for a total cost per piece.
// A margin of 100% or more leaves wholesale and retail unpriceable.
func Derive(total float64, in types.CostInputs) types.Prices {
	if PolicyFor(in) == PolicyDoubling {
		wholesale := 2 * total
		retail := 2 * wholesale
		return types.Prices{
			Wholesale:   types.Priced(wholesale),
			Retail:      types.Priced(retail),
			Distributor: types.Priced(2 * retail),
		}
	}

	margin := in.WholesaleMarginPct / 100
	if margin >= 1 {
		return types.Prices{
			Wholesale:   types.Unpriceable(),
			Retail:      types.Unpriceable(),
			Distributor: types.NotOffered(),
		}
	}
	wholesale := total / (1 - margin)
	return types.Prices{
		Wholesale:   types.Priced(wholesale),
		Retail:      types.Priced(wholesale * in.RetailMultiplier),
		Distributor: types.NotOffered(),
	}
}
