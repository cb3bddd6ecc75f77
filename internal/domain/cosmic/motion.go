package cosmic

import (
	"context"
	"math"
	"time"
)

const (
	// speedSampleOffset is the half-width of the centered finite difference
	// used for angular speed. Six hours exceeds provider noise while staying
	// short against the Moon's ~27 day period.
	speedSampleOffset = 6 * time.Hour

	// stationTolerance is the bisection target when refining a station.
	stationTolerance = time.Hour

	// stationSampleStep spaces the coarse speed samples for bracketing.
	stationSampleStep = 24 * time.Hour

	// maxBisectIterations caps every bisection loop so a pathological
	// provider cannot stall a query.
	maxBisectIterations = 40
)

// shortestArc wraps a longitude difference onto (-180,180] so a 359->1
// degree step reads as +2, not -358.
func shortestArc(delta float64) float64 {
	d := math.Mod(delta, 360)
	if d > 180 {
		d -= 360
	}
	if d <= -180 {
		d += 360
	}
	return d
}

// speedAt estimates angular speed in degrees per day via a centered finite
// difference around the instant.
func speedAt(ctx context.Context, eph EphemerisProvider, body Body, at time.Time) (float64, error) {
	before, err := eph.Longitude(ctx, body, at.Add(-speedSampleOffset))
	if err != nil {
		return 0, err
	}
	after, err := eph.Longitude(ctx, body, at.Add(speedSampleOffset))
	if err != nil {
		return 0, err
	}
	span := 2 * speedSampleOffset.Hours() / 24
	return shortestArc(after-before) / span, nil
}

// classifyBody produces the full position snapshot for one body.
func classifyBody(ctx context.Context, eph EphemerisProvider, body Body, at time.Time) (BodyPosition, error) {
	lon, err := eph.Longitude(ctx, body, at)
	if err != nil {
		return BodyPosition{}, err
	}
	speed, err := speedAt(ctx, eph, body, at)
	if err != nil {
		return BodyPosition{}, err
	}
	sign, degree := MapLongitude(lon)
	return BodyPosition{
		Body:           body,
		LongitudeDeg:   NormalizeDegrees(lon),
		Sign:           sign,
		DegreeInSign:   degree,
		SpeedDegPerDay: speed,
		Retrograde:     speed < 0,
	}, nil
}

// findStations locates every direction change of a body between from and to.
// The range is padded by one sample step on each side so stations sitting on
// a boundary are not missed. Windows still open at either edge carry a nil
// start or end.
func findStations(ctx context.Context, eph EphemerisProvider, body Body, from, to time.Time) ([]RetrogradeWindow, error) {
	start := from.Add(-stationSampleStep)
	end := to.Add(stationSampleStep)

	type sample struct {
		at    time.Time
		speed float64
	}
	var samples []sample
	for t := start; !t.After(end); t = t.Add(stationSampleStep) {
		s, err := speedAt(ctx, eph, body, t)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample{at: t, speed: s})
	}
	if len(samples) < 2 {
		return nil, nil
	}

	var windows []RetrogradeWindow
	var open *RetrogradeWindow
	if samples[0].speed < 0 {
		open = &RetrogradeWindow{Body: body}
	}

	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		if (prev.speed < 0) == (cur.speed < 0) {
			continue
		}
		crossing, err := refineStation(ctx, eph, body, prev.at, cur.at, prev.speed)
		if err != nil {
			return nil, err
		}
		if cur.speed < 0 {
			// Station retrograde: a new window opens.
			t := crossing
			open = &RetrogradeWindow{Body: body, Start: &t}
		} else if open != nil {
			// Station direct: the open window closes.
			t := crossing
			open.End = &t
			windows = append(windows, *open)
			open = nil
		}
	}
	if open != nil {
		windows = append(windows, *open)
	}

	// Drop windows that never touch the unpadded query range.
	kept := windows[:0]
	for _, w := range windows {
		if w.Start != nil && !w.Start.Before(to) {
			continue
		}
		if w.End != nil && !w.End.After(from) {
			continue
		}
		kept = append(kept, w)
	}
	return kept, nil
}

// refineStation bisects a bracketed speed sign change down to
// stationTolerance.
func refineStation(ctx context.Context, eph EphemerisProvider, body Body, lo, hi time.Time, loSpeed float64) (time.Time, error) {
	for i := 0; i < maxBisectIterations && hi.Sub(lo) > stationTolerance; i++ {
		mid := lo.Add(hi.Sub(lo) / 2)
		s, err := speedAt(ctx, eph, body, mid)
		if err != nil {
			return time.Time{}, err
		}
		if (s < 0) == (loSpeed < 0) {
			lo = mid
			loSpeed = s
		} else {
			hi = mid
		}
	}
	return lo.Add(hi.Sub(lo) / 2), nil
}
