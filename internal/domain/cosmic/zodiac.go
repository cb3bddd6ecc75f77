package cosmic

import "math"

// NormalizeDegrees reduces an angle into [0,360).
func NormalizeDegrees(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	if m >= 360 {
		m = 0
	}
	return m
}

// MapLongitude converts an ecliptic longitude into its zodiac sign and the
// degree within that sign. Total function: any finite input maps somewhere.
func MapLongitude(longitudeDeg float64) (ZodiacSign, float64) {
	norm := NormalizeDegrees(longitudeDeg)
	idx := int(norm / 30)
	if idx > 11 {
		idx = 11
	}
	return Signs[idx], norm - float64(idx)*30
}
