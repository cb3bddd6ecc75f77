package analytic

import (
	"math"
	"time"

	"github.com/veya-app/cosmic-engine/internal/domain/cosmic"
)

const degToRad = math.Pi / 180

// julianCenturies converts an instant to Julian centuries since J2000.0.
func julianCenturies(t time.Time) float64 {
	jd := float64(t.UnixMilli())/86400000.0 + 2440587.5
	return (jd - 2451545.0) / 36525.0
}

func sinDeg(deg float64) float64 { return math.Sin(deg * degToRad) }
func cosDeg(deg float64) float64 { return math.Cos(deg * degToRad) }

// solarLongitude is the apparent geocentric ecliptic longitude of the Sun:
// mean longitude plus equation of center, corrected for aberration and
// nutation. Good to roughly 0.01 degrees, far inside the half-degree the
// engine cares about.
func solarLongitude(T float64) float64 {
	l0 := 280.46646 + 36000.76983*T + 0.0003032*T*T
	m := 357.52911 + 35999.05029*T - 0.0001537*T*T
	c := (1.914602-0.004817*T-0.000014*T*T)*sinDeg(m) +
		(0.019993-0.000101*T)*sinDeg(2*m) +
		0.000289*sinDeg(3*m)
	omega := 125.04 - 1934.136*T
	return cosmic.NormalizeDegrees(l0 + c - 0.00569 - 0.00478*sinDeg(omega))
}

// lunarLongitude is a truncated lunar theory: the mean longitude plus the
// largest periodic terms. Worst case error stays under a few tenths of a
// degree, which moves lunation instants by minutes, not hours.
func lunarLongitude(T float64) float64 {
	lp := 218.3164477 + 481267.88123421*T // mean longitude
	d := 297.8501921 + 445267.1114034*T   // mean elongation
	m := 357.5291092 + 35999.0502909*T    // solar mean anomaly
	mp := 134.9633964 + 477198.8675055*T  // lunar mean anomaly
	f := 93.2720950 + 483202.0175233*T    // argument of latitude

	lon := lp +
		6.288774*sinDeg(mp) +
		1.274027*sinDeg(2*d-mp) +
		0.658314*sinDeg(2*d) +
		0.213618*sinDeg(2*mp) -
		0.185116*sinDeg(m) -
		0.114332*sinDeg(2*f) +
		0.058793*sinDeg(2*d-2*mp) +
		0.057066*sinDeg(2*d-m-mp) +
		0.053322*sinDeg(2*d+mp) +
		0.045758*sinDeg(2*d-m) -
		0.040923*sinDeg(m-mp) -
		0.034720*sinDeg(d) -
		0.030383*sinDeg(m+mp) +
		0.015327*sinDeg(2*d-2*f) -
		0.012528*sinDeg(mp+2*f) +
		0.010980*sinDeg(mp-2*f)
	return cosmic.NormalizeDegrees(lon)
}
