// Package units holds the fixed mass conversion constants used by every costing table.
package units

import "strings"

const (
	// GramsPerPound is the avoirdupois pound in grams
	GramsPerPound = 453.592

	// GramsPerOunce is the avoirdupois ounce in grams
	GramsPerOunce = 28.3495

	// PoundsPerKilogram converts catalog prices between lb and kg
	PoundsPerKilogram = 2.20462
)

// MassUnit is a unit a batch size or catalog price can be entered in
type MassUnit string

const (
	Gram     MassUnit = "g"
	Ounce    MassUnit = "oz"
	Pound    MassUnit = "lb"
	Kilogram MassUnit = "kg"
)

// ParseMassUnit maps user input to a unit. Unknown input is treated as grams.
func ParseMassUnit(s string) MassUnit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "oz", "ounce", "ounces":
		return Ounce
	case "lb", "lbs", "pound", "pounds":
		return Pound
	case "kg", "kilogram", "kilograms":
		return Kilogram
	default:
		return Gram
	}
}

// gramsPer returns how many grams one unit weighs
func (u MassUnit) gramsPer() float64 {
	switch u {
	case Ounce:
		return GramsPerOunce
	case Pound:
		return GramsPerPound
	case Kilogram:
		return GramsPerPound * PoundsPerKilogram
	default:
		return 1
	}
}

// ToGrams converts value in unit u to grams
func ToGrams(value float64, u MassUnit) float64 {
	return value * u.gramsPer()
}

// FromGrams converts grams to unit u
func FromGrams(grams float64, u MassUnit) float64 {
	return grams / u.gramsPer()
}

// PerPoundToPerGram converts a price per lb to a price per gram
func PerPoundToPerGram(perLb float64) float64 {
	return perLb / GramsPerPound
}

// PerKgToPerPound converts a price per kg to a price per lb
func PerKgToPerPound(perKg float64) float64 {
	return perKg / PoundsPerKilogram
}

// PerPoundToPerKg converts a price per lb to a price per kg
func PerPoundToPerKg(perLb float64) float64 {
	return perLb * PoundsPerKilogram
}
