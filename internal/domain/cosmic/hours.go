package cosmic

import (
	"context"
	"time"

	apperrors "github.com/veya-app/cosmic-engine/pkg/errors"
)

// chaldeanOrder is the traditional slowest-to-fastest planetary sequence
// that rulers cycle through, one step per hour.
var chaldeanOrder = []Body{
	BodySaturn, BodyJupiter, BodyMars, BodySun, BodyVenus, BodyMercury, BodyMoon,
}

// weekdayRulers assigns the classical planet to each civil weekday.
var weekdayRulers = map[time.Weekday]Body{
	time.Sunday:    BodySun,
	time.Monday:    BodyMoon,
	time.Tuesday:   BodyMars,
	time.Wednesday: BodyMercury,
	time.Thursday:  BodyJupiter,
	time.Friday:    BodyVenus,
	time.Saturday:  BodySaturn,
}

// planetaryHoursFor partitions [sunrise, sunset) into twelve day hours and
// [sunset, nextSunrise) into twelve night hours. Hour 1 is ruled by the
// weekday's planet; every following hour advances one Chaldean step.
func planetaryHoursFor(ctx context.Context, eph EphemerisProvider, date CivilDate, loc GeoCoordinate) (PlanetaryHoursDay, error) {
	today, err := eph.SunTimes(ctx, date, loc)
	if err != nil {
		return PlanetaryHoursDay{}, err
	}
	tomorrow, err := eph.SunTimes(ctx, date.Next(), loc)
	if err != nil {
		return PlanetaryHoursDay{}, err
	}

	dayRuler := weekdayRulers[date.Weekday()]
	rulerIdx := chaldeanIndex(dayRuler)

	hours := make([]PlanetaryHour, 0, 24)
	appendSpan := func(spanStart, spanEnd time.Time, isDay bool) {
		total := spanEnd.Sub(spanStart)
		for i := 0; i < 12; i++ {
			// Integer boundary math keeps the twelve hours gap-free and
			// lands the last end exactly on the span end.
			start := spanStart.Add(time.Duration(int64(total) * int64(i) / 12))
			end := spanStart.Add(time.Duration(int64(total) * int64(i+1) / 12))
			hours = append(hours, PlanetaryHour{
				Index: len(hours) + 1,
				IsDay: isDay,
				Ruler: chaldeanOrder[(rulerIdx+len(hours))%len(chaldeanOrder)],
				Start: start,
				End:   end,
			})
		}
	}
	appendSpan(today.Sunrise, today.Sunset, true)
	appendSpan(today.Sunset, tomorrow.Sunrise, false)

	return PlanetaryHoursDay{
		Date:        date,
		Location:    loc,
		Sunrise:     today.Sunrise,
		Sunset:      today.Sunset,
		NextSunrise: tomorrow.Sunrise,
		DayRuler:    dayRuler,
		Hours:       hours,
	}, nil
}

// HourAt resolves the hour whose [start,end) contains the instant. Instants
// outside [sunrise, nextSunrise) belong to a different planetary day and
// are rejected.
func (d PlanetaryHoursDay) HourAt(at time.Time) (PlanetaryHour, error) {
	if at.Before(d.Sunrise) || !at.Before(d.NextSunrise) {
		return PlanetaryHour{}, apperrors.Wrap(CodeOutOfRange, "instant outside the planetary day window", nil)
	}
	for _, h := range d.Hours {
		if !at.Before(h.Start) && at.Before(h.End) {
			return h, nil
		}
	}
	return PlanetaryHour{}, apperrors.Wrap(CodeOutOfRange, "instant outside the planetary day window", nil)
}

func chaldeanIndex(body Body) int {
	for i, b := range chaldeanOrder {
		if b == body {
			return i
		}
	}
	return 0
}
