package cosmic

import (
	"context"
	"sort"
	"time"
)

// monthEventsFor collects every significant event inside a UTC calendar
// month: sign ingresses, retrograde stations and lunations. The result is
// complete or the call fails; no partial months.
func monthEventsFor(ctx context.Context, eph EphemerisProvider, year int, month time.Month, policy ImpactPolicy) ([]MonthEvent, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	days := int(next.Sub(first).Hours() / 24)

	var raw []MonthEvent

	// Ingresses: a sign change between consecutive day boundaries lands on
	// the later day. The previous month's last boundary seeds the scan so
	// an ingress on the 1st is not lost.
	for _, body := range Bodies {
		prevLon, err := eph.Longitude(ctx, body, first.AddDate(0, 0, -1))
		if err != nil {
			return nil, err
		}
		prevSign, _ := MapLongitude(prevLon)
		for d := 0; d < days; d++ {
			boundary := first.AddDate(0, 0, d)
			lon, err := eph.Longitude(ctx, body, boundary)
			if err != nil {
				return nil, err
			}
			sign, _ := MapLongitude(lon)
			if sign != prevSign {
				raw = append(raw, MonthEvent{
					Instant:     boundary,
					Body:        body,
					Kind:        EventIngress,
					Impact:      policy.Ingress,
					Description: body.Display() + " enters " + sign.Display(),
				})
			}
			prevSign = sign
		}
	}

	// Retrograde stations inside the month.
	for _, body := range Planets {
		windows, err := findStations(ctx, eph, body, first, next)
		if err != nil {
			return nil, err
		}
		for _, w := range windows {
			if w.Start != nil && inRange(*w.Start, first, next) {
				ev, err := stationEvent(ctx, eph, body, *w.Start, true, policy)
				if err != nil {
					return nil, err
				}
				raw = append(raw, ev)
			}
			if w.End != nil && inRange(*w.End, first, next) {
				ev, err := stationEvent(ctx, eph, body, *w.End, false, policy)
				if err != nil {
					return nil, err
				}
				raw = append(raw, ev)
			}
		}
	}

	// Lunations: a full or new moon is emitted on the first day whose local
	// noon sample lands in the corresponding phase bucket.
	prevName, err := noonPhaseName(ctx, eph, first.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	for d := 0; d < days; d++ {
		noon := first.AddDate(0, 0, d).Add(12 * time.Hour)
		name, err := noonPhaseName(ctx, eph, first.AddDate(0, 0, d))
		if err != nil {
			return nil, err
		}
		if name != prevName && (name == PhaseFullMoon || name == PhaseNewMoon) {
			moonLon, err := eph.Longitude(ctx, BodyMoon, noon)
			if err != nil {
				return nil, err
			}
			sign, _ := MapLongitude(moonLon)
			kind, impact := EventFullMoon, policy.FullMoon
			if name == PhaseNewMoon {
				kind, impact = EventNewMoon, policy.NewMoon
			}
			raw = append(raw, MonthEvent{
				Instant:     noon,
				Kind:        kind,
				Impact:      impact,
				Description: string(name) + " in " + sign.Display(),
			})
		}
		prevName = name
	}

	return mergeAndSort(raw), nil
}

func stationEvent(ctx context.Context, eph EphemerisProvider, body Body, at time.Time, entering bool, policy ImpactPolicy) (MonthEvent, error) {
	lon, err := eph.Longitude(ctx, body, at)
	if err != nil {
		return MonthEvent{}, err
	}
	sign, _ := MapLongitude(lon)
	direction, impact := "direct", policy.StationDirect
	if entering {
		direction, impact = "retrograde", policy.StationRetrograde
	}
	return MonthEvent{
		Instant:     at,
		Body:        body,
		Kind:        EventRetrogradeStation,
		Impact:      impact,
		Description: body.Display() + " stations " + direction + " in " + sign.Display(),
	}, nil
}

func noonPhaseName(ctx context.Context, eph EphemerisProvider, dayStart time.Time) (MoonPhase, error) {
	angle, err := phaseAngleAt(ctx, eph, dayStart.Add(12*time.Hour))
	if err != nil {
		return "", err
	}
	return phaseNameFor(angle), nil
}

func inRange(at, from, to time.Time) bool {
	return !at.Before(from) && at.Before(to)
}

// mergeAndSort collapses duplicates sharing (day, kind, body) onto the
// earliest instant and orders the result deterministically.
func mergeAndSort(events []MonthEvent) []MonthEvent {
	type key struct {
		day  string
		kind EventKind
		body Body
	}
	best := make(map[key]MonthEvent, len(events))
	for _, ev := range events {
		k := key{day: ev.Instant.UTC().Format("2006-01-02"), kind: ev.Kind, body: ev.Body}
		if cur, ok := best[k]; !ok || ev.Instant.Before(cur.Instant) {
			best[k] = ev
		}
	}

	out := make([]MonthEvent, 0, len(best))
	for _, ev := range best {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Instant.Equal(out[j].Instant) {
			return out[i].Instant.Before(out[j].Instant)
		}
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Body < out[j].Body
	})
	return out
}
