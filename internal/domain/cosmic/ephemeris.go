package cosmic

import (
	"context"
	"time"
)

// SunTimes carries the rise and set instants for one date and location,
// both in UTC.
type SunTimes struct {
	Sunrise time.Time
	Sunset  time.Time
}

// EphemerisProvider is the engine's only required collaborator. An
// implementation may be an analytic low-precision model, a bundled
// ephemeris table, or a remote service; the analyzers above it do not care.
type EphemerisProvider interface {
	// Longitude returns the geocentric apparent ecliptic longitude of a
	// body in degrees [0,360).
	Longitude(ctx context.Context, body Body, at time.Time) (float64, error)

	// SunTimes returns sunrise and sunset for a civil date and location,
	// or ErrNoSunEvent for polar day/night.
	SunTimes(ctx context.Context, date CivilDate, loc GeoCoordinate) (SunTimes, error)
}
