// Package analytic implements the engine's ephemeris provider with
// closed-form low-precision models: Meeus-style series for the Sun and
// Moon, Keplerian mean elements for the planets, and go-sunrise for rise
// and set instants. No network, no data files, fully deterministic.
package analytic

import (
	"context"
	"fmt"
	"time"

	sunrise "github.com/nathan-osman/go-sunrise"

	"github.com/veya-app/cosmic-engine/internal/domain/cosmic"
)

// Provider is stateless and safe for concurrent use.
type Provider struct{}

// NewProvider builds the bundled analytic ephemeris.
func NewProvider() *Provider {
	return &Provider{}
}

// Longitude returns the geocentric apparent ecliptic longitude in degrees.
func (p *Provider) Longitude(ctx context.Context, body cosmic.Body, at time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	T := julianCenturies(at)
	switch body {
	case cosmic.BodySun:
		return solarLongitude(T), nil
	case cosmic.BodyMoon:
		return lunarLongitude(T), nil
	default:
		if lon, ok := planetLongitude(body, T); ok {
			return lon, nil
		}
		return 0, fmt.Errorf("unknown body %q", body)
	}
}

// SunTimes returns sunrise and sunset in UTC, or ErrNoSunEvent during
// polar day or night.
func (p *Provider) SunTimes(ctx context.Context, date cosmic.CivilDate, loc cosmic.GeoCoordinate) (cosmic.SunTimes, error) {
	if err := ctx.Err(); err != nil {
		return cosmic.SunTimes{}, err
	}
	rise, set := sunrise.SunriseSunset(loc.Latitude, loc.Longitude, date.Year, date.Month, date.Day)
	if rise.IsZero() || set.IsZero() {
		return cosmic.SunTimes{}, cosmic.ErrNoSunEvent
	}
	return cosmic.SunTimes{Sunrise: rise.UTC(), Sunset: set.UTC()}, nil
}

var _ cosmic.EphemerisProvider = (*Provider)(nil)
