package cosmic

import (
	"context"
	"time"
)

const (
	// upcomingHorizon limits how far ahead the tracker reports windows.
	upcomingHorizon = 90 * 24 * time.Hour

	// retrogradeLookback covers the longest running retrograde (Pluto,
	// under six months) so a window containing the query instant always
	// carries its real start.
	retrogradeLookback = 250 * 24 * time.Hour
)

// retrogradeSummaryAt digests current and upcoming retrograde windows
// around an instant. At most one upcoming window per body.
func retrogradeSummaryAt(ctx context.Context, eph EphemerisProvider, at time.Time) (RetrogradeSummary, error) {
	current := make([]RetrogradeWindow, 0, len(Planets))
	upcoming := make([]RetrogradeWindow, 0, len(Planets))

	for _, body := range Planets {
		windows, err := findStations(ctx, eph, body, at.Add(-retrogradeLookback), at.Add(upcomingHorizon))
		if err != nil {
			return RetrogradeSummary{}, err
		}
		for _, w := range windows {
			if w.Contains(at) {
				current = append(current, w)
				continue
			}
			if w.Start != nil && w.Start.After(at) && w.Start.Sub(at) <= upcomingHorizon {
				upcoming = append(upcoming, w)
				break
			}
		}
	}

	return RetrogradeSummary{
		Current:  current,
		Upcoming: upcoming,
		Count:    len(current),
		Message:  summaryMessage(len(current)),
	}, nil
}

// summaryMessage picks from a fixed set keyed by how many planets are
// currently retrograde.
func summaryMessage(count int) string {
	switch {
	case count == 0:
		return "All planets are moving direct. Clear skies for new beginnings."
	case count <= 2:
		return "A couple of planets are backspinning. Review plans twice before committing."
	default:
		return "Heavy retrograde season. Slow down, revisit, and finish what you started."
	}
}
