package analytic

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/veya-app/cosmic-engine/internal/domain/cosmic"
)

// arc reduces a longitude difference onto (-180,180].
func arc(delta float64) float64 {
	d := math.Mod(delta+540, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	at, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return at
}

func TestSolarLongitudeAtJ2000(t *testing.T) {
	p := NewProvider()
	lon, err := p.Longitude(context.Background(), cosmic.BodySun, mustParse(t, "2000-01-01T12:00:00Z"))
	require.NoError(t, err)
	// Apparent solar longitude at the J2000.0 epoch.
	require.InDelta(t, 280.4, lon, 0.5)
}

func TestElongationAtKnownLunations(t *testing.T) {
	p := NewProvider()
	ctx := context.Background()

	elongation := func(at time.Time) float64 {
		sun, err := p.Longitude(ctx, cosmic.BodySun, at)
		require.NoError(t, err)
		moon, err := p.Longitude(ctx, cosmic.BodyMoon, at)
		require.NoError(t, err)
		return moon - sun
	}

	// New moon of 2024-01-11 11:57 UTC.
	require.InDelta(t, 0, arc(elongation(mustParse(t, "2024-01-11T11:57:00Z"))), 2)

	// Full moon of 2024-01-25 17:54 UTC.
	require.InDelta(t, 0, arc(elongation(mustParse(t, "2024-01-25T17:54:00Z"))-180), 2)
}

func TestOuterPlanetSigns(t *testing.T) {
	p := NewProvider()
	at := mustParse(t, "2023-06-15T00:00:00Z")

	jupiter, err := p.Longitude(context.Background(), cosmic.BodyJupiter, at)
	require.NoError(t, err)
	jupiterSign, _ := cosmic.MapLongitude(jupiter)
	require.Equal(t, cosmic.SignTaurus, jupiterSign)

	saturn, err := p.Longitude(context.Background(), cosmic.BodySaturn, at)
	require.NoError(t, err)
	saturnSign, _ := cosmic.MapLongitude(saturn)
	require.Equal(t, cosmic.SignPisces, saturnSign)
}

func TestMercuryRetrogradeApril2024(t *testing.T) {
	// Mercury ran retrograde from April 1 to April 25, 2024.
	p := NewProvider()
	ctx := context.Background()
	at := mustParse(t, "2024-04-10T00:00:00Z")

	before, err := p.Longitude(ctx, cosmic.BodyMercury, at.Add(-12*time.Hour))
	require.NoError(t, err)
	after, err := p.Longitude(ctx, cosmic.BodyMercury, at.Add(12*time.Hour))
	require.NoError(t, err)
	require.Negative(t, arc(after-before))
}

func TestLongitudeUnknownBody(t *testing.T) {
	p := NewProvider()
	_, err := p.Longitude(context.Background(), cosmic.Body("vulcan"), time.Now())
	require.Error(t, err)
}

func TestLongitudeRespectsContext(t *testing.T) {
	p := NewProvider()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Longitude(ctx, cosmic.BodySun, time.Now())
	require.ErrorIs(t, err, context.Canceled)
}

func TestSunTimesEquatorEquinox(t *testing.T) {
	p := NewProvider()
	date := cosmic.CivilDate{Year: 2024, Month: time.March, Day: 20}

	times, err := p.SunTimes(context.Background(), date, cosmic.GeoCoordinate{})
	require.NoError(t, err)
	require.True(t, times.Sunset.After(times.Sunrise))

	// Day and night are nearly equal on the equinox at the equator.
	dayLength := times.Sunset.Sub(times.Sunrise)
	require.InDelta(t, (12 * time.Hour).Minutes(), dayLength.Minutes(), 15)
}

func TestSunTimesPolarNight(t *testing.T) {
	p := NewProvider()
	date := cosmic.CivilDate{Year: 2024, Month: time.June, Day: 21}

	_, err := p.SunTimes(context.Background(), date, cosmic.GeoCoordinate{Latitude: -80})
	require.ErrorIs(t, err, cosmic.ErrNoSunEvent)
}
