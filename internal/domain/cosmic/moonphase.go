package cosmic

import (
	"context"
	"math"
	"time"
)

const (
	// phaseSearchStep walks the phase angle forward when hunting the next
	// full or new moon.
	phaseSearchStep = time.Hour

	// phaseSearchHorizon bounds the forward search. The synodic month is
	// ~29.53 days, so 40 days leaves ample margin; running past it means
	// the provider returned inconsistent longitudes.
	phaseSearchHorizon = 40 * 24 * time.Hour

	// phaseRefineTolerance is the bisection target for lunation instants.
	phaseRefineTolerance = time.Minute
)

// phaseBuckets follows the canonical phase angles in 45 degree steps.
var phaseBuckets = [8]MoonPhase{
	PhaseNewMoon,
	PhaseWaxingCrescent,
	PhaseFirstQuarter,
	PhaseWaxingGibbous,
	PhaseFullMoon,
	PhaseWaningGibbous,
	PhaseLastQuarter,
	PhaseWaningCrescent,
}

// phaseNameFor buckets a phase angle into one of the eight names. Each
// bucket covers [center-22.5, center+22.5) with New Moon wrapping 360/0.
func phaseNameFor(angleDeg float64) MoonPhase {
	idx := int(NormalizeDegrees(angleDeg+22.5) / 45)
	if idx > 7 {
		idx = 7
	}
	return phaseBuckets[idx]
}

// illuminatedFraction follows the cosine phase law.
func illuminatedFraction(angleDeg float64) float64 {
	return (1 - math.Cos(angleDeg*math.Pi/180)) / 2
}

// phaseAngleAt is the geocentric elongation of the Moon from the Sun.
func phaseAngleAt(ctx context.Context, eph EphemerisProvider, at time.Time) (float64, error) {
	sunLon, err := eph.Longitude(ctx, BodySun, at)
	if err != nil {
		return 0, err
	}
	moonLon, err := eph.Longitude(ctx, BodyMoon, at)
	if err != nil {
		return 0, err
	}
	return NormalizeDegrees(moonLon - sunLon), nil
}

// moonPhaseAt assembles the full lunar snapshot for an instant.
func moonPhaseAt(ctx context.Context, eph EphemerisProvider, at time.Time) (MoonPhaseInfo, error) {
	angle, err := phaseAngleAt(ctx, eph, at)
	if err != nil {
		return MoonPhaseInfo{}, err
	}
	moonLon, err := eph.Longitude(ctx, BodyMoon, at)
	if err != nil {
		return MoonPhaseInfo{}, err
	}
	sign, degree := MapLongitude(moonLon)

	nextFull, err := nextPhaseInstant(ctx, eph, at, 180)
	if err != nil {
		return MoonPhaseInfo{}, err
	}
	nextNew, err := nextPhaseInstant(ctx, eph, at, 0)
	if err != nil {
		return MoonPhaseInfo{}, err
	}

	return MoonPhaseInfo{
		PhaseAngleDeg:       angle,
		IlluminatedFraction: illuminatedFraction(angle),
		PhaseName:           phaseNameFor(angle),
		MoonSign:            sign,
		MoonDegreeInSign:    degree,
		DaysUntilFullMoon:   nextFull.Sub(at).Hours() / 24,
		DaysUntilNewMoon:    nextNew.Sub(at).Hours() / 24,
		NextFullMoon:        nextFull,
		NextNewMoon:         nextNew,
	}, nil
}

// nextPhaseInstant finds the first instant at or after from where the phase
// angle crosses targetDeg. The signed distance to the target increases
// through zero at the event because the Moon always outruns the Sun.
func nextPhaseInstant(ctx context.Context, eph EphemerisProvider, from time.Time, targetDeg float64) (time.Time, error) {
	distance := func(at time.Time) (float64, error) {
		angle, err := phaseAngleAt(ctx, eph, at)
		if err != nil {
			return 0, err
		}
		return shortestArc(angle - targetDeg), nil
	}

	prev, err := distance(from)
	if err != nil {
		return time.Time{}, err
	}
	if prev == 0 {
		return from, nil
	}

	lo := from
	for step := phaseSearchStep; step <= phaseSearchHorizon; step += phaseSearchStep {
		hi := from.Add(step)
		cur, err := distance(hi)
		if err != nil {
			return time.Time{}, err
		}
		if prev < 0 && cur >= 0 {
			return refinePhaseCrossing(lo, hi, distance)
		}
		prev = cur
		lo = hi
	}
	return time.Time{}, errSearchExhausted
}

func refinePhaseCrossing(lo, hi time.Time, distance func(time.Time) (float64, error)) (time.Time, error) {
	for i := 0; i < maxBisectIterations && hi.Sub(lo) > phaseRefineTolerance; i++ {
		mid := lo.Add(hi.Sub(lo) / 2)
		d, err := distance(mid)
		if err != nil {
			return time.Time{}, err
		}
		if d < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi, nil
}
