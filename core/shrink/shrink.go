// Package shrink converts between wet and fired sizes for a clay body.
// Rates are percent of wet size lost in firing; negative rates count as 0.
package shrink

import "strings"

// DefaultRatePct is a typical stoneware shrink rate
const DefaultRatePct = 12.0

// minRemaining keeps the wet size finite when a rate reaches 100%
const minRemaining = 1e-9

// LengthUnit is the unit sizes are measured in
type LengthUnit string

const (
	Inch       LengthUnit = "in"
	Millimeter LengthUnit = "mm"
	Centimeter LengthUnit = "cm"
)

// ParseLengthUnit maps user input to a unit; unknown input is inches
func ParseLengthUnit(s string) LengthUnit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mm", "millimeter", "millimeters":
		return Millimeter
	case "cm", "centimeter", "centimeters":
		return Centimeter
	default:
		return Inch
	}
}

// DefaultClearance is the extra lid diameter that keeps a fit comfortable
func DefaultClearance(u LengthUnit) float64 {
	switch u {
	case Millimeter:
		return 0.8
	case Centimeter:
		return 0.08
	default:
		return 0.03
	}
}

func rate(pct float64) float64 {
	return max(0, pct) / 100
}

// FromTestTile returns the shrink percent measured on a test tile
func FromTestTile(wetLen, firedLen float64) float64 {
	if wetLen <= 0 {
		return 0
	}
	return max(0, (wetLen-firedLen)/wetLen*100)
}

// FiredFromWet returns the fired size of a wet measurement
func FiredFromWet(wetSize, ratePct float64) float64 {
	return wetSize * (1 - rate(ratePct))
}

// WetForFired returns the wet size to throw to reach a fired target
func WetForFired(targetFired, ratePct float64) float64 {
	return targetFired / max(minRemaining, 1-rate(ratePct))
}

// LidGallery returns the wet gallery inner diameter to throw for a lid
// that fits a fired rim with the given clearance.
func LidGallery(firedRimOD, clearance, ratePct float64) float64 {
	return WetForFired(firedRimOD+clearance, ratePct)
}

// ExpectedFired returns the fired gallery inner diameter of a lid already thrown
func ExpectedFired(wetID, ratePct float64) float64 {
	return FiredFromWet(wetID, ratePct)
}
