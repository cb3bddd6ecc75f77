package cosmic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// phaseStub returns an ephemeris whose Sun sits at 0 and whose Moon runs
// ahead at a constant 12 degrees per day, so the phase angle is exactly
// startAngle + 12*days.
func phaseStub(epoch time.Time, startAngle float64) *stubEphemeris {
	return &stubEphemeris{
		lonFn: func(body Body, at time.Time) float64 {
			if body != BodyMoon {
				return 0
			}
			days := at.Sub(epoch).Hours() / 24
			return NormalizeDegrees(startAngle + 12*days)
		},
	}
}

func TestPhaseNameFor(t *testing.T) {
	cases := []struct {
		angle float64
		want  MoonPhase
	}{
		{0, PhaseNewMoon},
		{22.49, PhaseNewMoon},
		{22.5, PhaseWaxingCrescent},
		{90, PhaseFirstQuarter},
		{157.5, PhaseFullMoon},
		{180, PhaseFullMoon},
		{202.49, PhaseFullMoon},
		{202.5, PhaseWaningGibbous},
		{270, PhaseLastQuarter},
		{337.49, PhaseWaningCrescent},
		{337.5, PhaseNewMoon},
		{359.99, PhaseNewMoon},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, phaseNameFor(tc.angle), "angle %v", tc.angle)
	}
}

func TestIlluminatedFraction(t *testing.T) {
	require.InDelta(t, 0, illuminatedFraction(0), 1e-9)
	require.InDelta(t, 0.5, illuminatedFraction(90), 1e-9)
	require.InDelta(t, 1, illuminatedFraction(180), 1e-9)
	require.InDelta(t, 0.5, illuminatedFraction(270), 1e-9)

	for angle := 0.0; angle < 360; angle += 3.7 {
		f := illuminatedFraction(angle)
		require.GreaterOrEqual(t, f, 0.0)
		require.LessOrEqual(t, f, 1.0)
	}
}

func TestMoonPhaseAtFirstQuarter(t *testing.T) {
	epoch := mustParse("2024-06-01T00:00:00Z")
	eph := phaseStub(epoch, 90)

	info, err := moonPhaseAt(context.Background(), eph, epoch)
	require.NoError(t, err)

	require.Equal(t, PhaseFirstQuarter, info.PhaseName)
	require.InDelta(t, 90, info.PhaseAngleDeg, 1e-6)
	require.InDelta(t, 0.5, info.IlluminatedFraction, 1e-6)
	require.Equal(t, SignCancer, info.MoonSign)

	// 90 degrees to go at 12 degrees per day.
	require.InDelta(t, 7.5, info.DaysUntilFullMoon, 0.01)
	require.WithinDuration(t, epoch.Add(time.Duration(7.5*24)*time.Hour), info.NextFullMoon, 2*time.Minute)

	require.InDelta(t, 22.5, info.DaysUntilNewMoon, 0.01)
	require.WithinDuration(t, epoch.Add(time.Duration(22.5*24)*time.Hour), info.NextNewMoon, 2*time.Minute)
}

func TestMoonPhaseAtExactNewMoon(t *testing.T) {
	epoch := mustParse("2024-01-11T12:00:00Z")
	eph := phaseStub(epoch, 0)

	info, err := moonPhaseAt(context.Background(), eph, epoch)
	require.NoError(t, err)

	require.Equal(t, PhaseNewMoon, info.PhaseName)
	require.Less(t, info.IlluminatedFraction, 0.02)
	require.Equal(t, epoch, info.NextNewMoon, "an exact new moon is its own next new moon")
	require.InDelta(t, 0, info.DaysUntilNewMoon, 1e-9)
	require.InDelta(t, 15, info.DaysUntilFullMoon, 0.01)
}

func TestNextPhaseInstantExhaustsBoundedSearch(t *testing.T) {
	// A frozen angle never reaches the target; the search must stop at the
	// horizon instead of looping.
	eph := &stubEphemeris{
		lonFn: func(body Body, _ time.Time) float64 {
			if body == BodyMoon {
				return 90
			}
			return 0
		},
	}

	_, err := nextPhaseInstant(context.Background(), eph, mustParse("2024-06-01T00:00:00Z"), 180)
	require.ErrorIs(t, err, errSearchExhausted)
}
