package analytic

import (
	"math"

	"github.com/veya-app/cosmic-engine/internal/domain/cosmic"
)

// orbitalElements are Keplerian mean elements at J2000.0 with linear
// century rates: semi-major axis (au), eccentricity, inclination, mean
// longitude, longitude of perihelion and longitude of the ascending node
// (degrees).
type orbitalElements struct {
	a, aDot       float64
	e, eDot       float64
	i, iDot       float64
	l, lDot       float64
	peri, periDot float64
	node, nodeDot float64
}

// planetElements carries the JPL approximate elements valid 1800-2050.
var planetElements = map[cosmic.Body]orbitalElements{
	cosmic.BodyMercury: {
		0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749,
		252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081,
	},
	cosmic.BodyVenus: {
		0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890,
		181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418,
	},
	cosmic.BodyMars: {
		1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131,
		-4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343,
	},
	cosmic.BodyJupiter: {
		5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714,
		34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106,
	},
	cosmic.BodySaturn: {
		9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609,
		49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794,
	},
	cosmic.BodyUranus: {
		19.18916464, -0.00196176, 0.04725744, -0.00004397, 0.77263783, -0.00242939,
		313.23810451, 428.48202785, 170.95427630, 0.40805281, 74.01692503, 0.04240589,
	},
	cosmic.BodyNeptune: {
		30.06992276, 0.00026291, 0.00859048, 0.00005105, 1.77004347, 0.00035372,
		-55.12002969, 218.45945325, 44.96476227, -0.32241464, 131.78422574, -0.00508664,
	},
	cosmic.BodyPluto: {
		39.48211675, -0.00031596, 0.24882730, 0.00005170, 17.14001206, 0.00004818,
		238.92903833, 145.20780515, 224.06891629, -0.04062942, 110.30393684, -0.01183482,
	},
}

// earthElements are the Earth-Moon barycenter elements from the same table.
var earthElements = orbitalElements{
	1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668,
	100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0.0, 0.0,
}

// planetLongitude computes the geocentric ecliptic longitude of a planet by
// differencing its heliocentric position against the Earth's.
func planetLongitude(body cosmic.Body, T float64) (float64, bool) {
	el, ok := planetElements[body]
	if !ok {
		return 0, false
	}
	xp, yp := heliocentricPosition(el, T)
	xe, ye := heliocentricPosition(earthElements, T)
	return cosmic.NormalizeDegrees(math.Atan2(yp-ye, xp-xe) / degToRad), true
}

// heliocentricPosition projects the orbital-plane position into ecliptic
// x/y coordinates (au). The z component never feeds into longitude.
func heliocentricPosition(el orbitalElements, T float64) (x, y float64) {
	a := el.a + el.aDot*T
	e := el.e + el.eDot*T
	inc := el.i + el.iDot*T
	l := el.l + el.lDot*T
	peri := el.peri + el.periDot*T
	node := el.node + el.nodeDot*T

	m := math.Mod(l-peri, 360)
	if m > 180 {
		m -= 360
	}
	if m < -180 {
		m += 360
	}
	ecc := solveKepler(m, e)

	xp := a * (cosDeg(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * sinDeg(ecc)

	w := peri - node
	cw, sw := cosDeg(w), sinDeg(w)
	cn, sn := cosDeg(node), sinDeg(node)
	ci := cosDeg(inc)

	x = (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp
	y = (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp
	return x, y
}

// solveKepler iterates Newton's method on Kepler's equation in degrees.
// Convergence is quadratic; the iteration cap guarantees termination even
// for Pluto's eccentricity.
func solveKepler(mDeg, e float64) float64 {
	eStar := e / degToRad
	ecc := mDeg + eStar*sinDeg(mDeg)
	for i := 0; i < 40; i++ {
		dm := mDeg - (ecc - eStar*sinDeg(ecc))
		de := dm / (1 - e*cosDeg(ecc))
		ecc += de
		if math.Abs(de) < 1e-7 {
			break
		}
	}
	return ecc
}
