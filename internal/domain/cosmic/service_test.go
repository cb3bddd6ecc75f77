package cosmic

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/veya-app/cosmic-engine/pkg/errors"
)

func TestServiceRejectsZeroInstant(t *testing.T) {
	svc := newServiceUnderTest(&stubEphemeris{}, nil)

	_, err := svc.CurrentPositions(context.Background(), time.Time{})
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))

	_, err = svc.CurrentPhase(context.Background(), time.Time{})
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))

	_, err = svc.RetrogradeSummary(context.Background(), time.Time{})
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))
}

func TestServiceRejectsInvalidMonthAndCoordinate(t *testing.T) {
	svc := newServiceUnderTest(&stubEphemeris{}, nil)

	_, err := svc.EventsForMonth(context.Background(), 2024, time.Month(13))
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))

	_, err = svc.HoursForDay(context.Background(), CivilDate{Year: 2024, Month: time.March, Day: 20}, GeoCoordinate{Latitude: 95})
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))

	_, err = svc.HoursForDay(context.Background(), CivilDate{Year: 2024, Month: time.February, Day: 30}, GeoCoordinate{})
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))
}

func TestServiceDegenerateLocation(t *testing.T) {
	eph := &stubEphemeris{
		sunFn: func(CivilDate, GeoCoordinate) (SunTimes, error) {
			return SunTimes{}, ErrNoSunEvent
		},
	}
	svc := newServiceUnderTest(eph, nil)

	_, err := svc.HoursForDay(context.Background(), CivilDate{Year: 2024, Month: time.June, Day: 21}, GeoCoordinate{Latitude: 80})
	require.True(t, apperrors.IsCode(err, CodeDegenerateLocation))
}

func TestServiceProviderFailure(t *testing.T) {
	eph := &stubEphemeris{lonErr: io.ErrUnexpectedEOF}
	svc := newServiceUnderTest(eph, nil)

	_, err := svc.CurrentPositions(context.Background(), mustParse("2024-06-01T00:00:00Z"))
	require.True(t, apperrors.IsCode(err, CodeProviderUnavailable))
}

func TestServicePhaseSearchOutOfRange(t *testing.T) {
	// A frozen phase angle never crosses full or new, so the bounded
	// search must give up instead of walking forever.
	eph := &stubEphemeris{
		lonFn: func(body Body, _ time.Time) float64 {
			if body == BodyMoon {
				return 90
			}
			return 0
		},
	}
	svc := newServiceUnderTest(eph, nil)

	_, err := svc.CurrentPhase(context.Background(), mustParse("2024-06-01T00:00:00Z"))
	require.True(t, apperrors.IsCode(err, CodeOutOfRange))
}

func TestServiceMemoizesPositions(t *testing.T) {
	at := mustParse("2024-06-01T00:00:00Z")
	eph := &stubEphemeris{
		lonFn: func(body Body, _ time.Time) float64 { return 123.4 },
	}
	store := newStubStore()
	svc := newServiceUnderTest(eph, store)

	first, err := svc.CurrentPositions(context.Background(), at)
	require.NoError(t, err)
	callsAfterFirst := eph.callCount()
	require.Positive(t, callsAfterFirst)
	require.Equal(t, 1, store.sets)

	second, err := svc.CurrentPositions(context.Background(), at)
	require.NoError(t, err)
	require.Equal(t, callsAfterFirst, eph.callCount())
	require.Equal(t, first, second)
}

func TestServiceSurvivesStoreFailure(t *testing.T) {
	at := mustParse("2024-06-01T00:00:00Z")
	eph := &stubEphemeris{
		lonFn: func(Body, time.Time) float64 { return 10 },
	}
	store := newStubStore()
	store.failReads = true
	svc := newServiceUnderTest(eph, store)

	positions, err := svc.CurrentPositions(context.Background(), at)
	require.NoError(t, err)
	require.Len(t, positions, len(Bodies))
}

func newServiceUnderTest(eph EphemerisProvider, store Store) Service {
	return &service{
		cfg:    Config{Policy: DefaultImpactPolicy()},
		eph:    eph,
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    func() time.Time { return mustParse("2024-06-01T09:00:00Z") },
	}
}

func mustParse(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

type stubEphemeris struct {
	mu     sync.Mutex
	lonFn  func(body Body, at time.Time) float64
	sunFn  func(date CivilDate, loc GeoCoordinate) (SunTimes, error)
	lonErr error
	calls  int
}

func (s *stubEphemeris) Longitude(_ context.Context, body Body, at time.Time) (float64, error) {
	if s.lonErr != nil {
		return 0, s.lonErr
	}
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.lonFn == nil {
		return 0, nil
	}
	return s.lonFn(body, at), nil
}

func (s *stubEphemeris) SunTimes(_ context.Context, date CivilDate, loc GeoCoordinate) (SunTimes, error) {
	if s.sunFn == nil {
		return SunTimes{}, ErrNoSunEvent
	}
	return s.sunFn(date, loc)
}

func (s *stubEphemeris) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubStore struct {
	entries   map[string][]byte
	sets      int
	failReads bool
}

func newStubStore() *stubStore {
	return &stubStore{entries: make(map[string][]byte)}
}

func (s *stubStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if s.failReads {
		return nil, false, io.ErrClosedPipe
	}
	payload, ok := s.entries[key]
	return payload, ok, nil
}

func (s *stubStore) Set(_ context.Context, key string, payload []byte, _ time.Duration) error {
	s.entries[key] = payload
	s.sets++
	return nil
}
