package cosmic

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	apperrors "github.com/veya-app/cosmic-engine/pkg/errors"
	"github.com/veya-app/cosmic-engine/pkg/util"
)

// Service exposes the cosmic timing engine to the serving layer.
type Service interface {
	CurrentPositions(ctx context.Context, at time.Time) ([]BodyPosition, error)
	CurrentPhase(ctx context.Context, at time.Time) (MoonPhaseInfo, error)
	EventsForMonth(ctx context.Context, year int, month time.Month) ([]MonthEvent, error)
	HoursForDay(ctx context.Context, date CivilDate, loc GeoCoordinate) (PlanetaryHoursDay, error)
	RetrogradeSummary(ctx context.Context, at time.Time) (RetrogradeSummary, error)
}

type service struct {
	cfg    Config
	eph    EphemerisProvider
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the engine. A nil store disables memoization.
func NewService(cfg Config, eph EphemerisProvider, store Store, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		eph:    eph,
		store:  store,
		logger: logger.With("component", "cosmic.service"),
		now:    util.NowUTC,
	}
}

func (s *service) CurrentPositions(ctx context.Context, at time.Time) ([]BodyPosition, error) {
	if at.IsZero() {
		return nil, apperrors.Wrap(CodeInvalidInput, "instant must be provided", nil)
	}
	return withCache(ctx, s, cacheKey("positions", at, nil), func() ([]BodyPosition, error) {
		positions := make([]BodyPosition, 0, len(Bodies))
		for _, body := range Bodies {
			pos, err := classifyBody(ctx, s.eph, body, at)
			if err != nil {
				return nil, wrapEngineError(err)
			}
			positions = append(positions, pos)
		}
		return positions, nil
	})
}

func (s *service) CurrentPhase(ctx context.Context, at time.Time) (MoonPhaseInfo, error) {
	if at.IsZero() {
		return MoonPhaseInfo{}, apperrors.Wrap(CodeInvalidInput, "instant must be provided", nil)
	}
	return withCache(ctx, s, cacheKey("moon", at, nil), func() (MoonPhaseInfo, error) {
		info, err := moonPhaseAt(ctx, s.eph, at)
		if err != nil {
			return MoonPhaseInfo{}, wrapEngineError(err)
		}
		return info, nil
	})
}

func (s *service) EventsForMonth(ctx context.Context, year int, month time.Month) ([]MonthEvent, error) {
	if month < time.January || month > time.December {
		return nil, apperrors.Wrap(CodeInvalidInput, "month must be between 1 and 12", nil)
	}
	if year < 1 || year > 9999 {
		return nil, apperrors.Wrap(CodeInvalidInput, "year out of supported range", nil)
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return withCache(ctx, s, cacheKey("events", first, nil), func() ([]MonthEvent, error) {
		events, err := monthEventsFor(ctx, s.eph, year, month, s.cfg.Policy)
		if err != nil {
			return nil, wrapEngineError(err)
		}
		return events, nil
	})
}

func (s *service) HoursForDay(ctx context.Context, date CivilDate, loc GeoCoordinate) (PlanetaryHoursDay, error) {
	if err := date.Validate(); err != nil {
		return PlanetaryHoursDay{}, apperrors.Wrap(CodeInvalidInput, "invalid civil date", err)
	}
	if err := loc.Validate(); err != nil {
		return PlanetaryHoursDay{}, apperrors.Wrap(CodeInvalidInput, "invalid coordinate", err)
	}
	return withCache(ctx, s, cacheKey("hours", date.Time(), &loc), func() (PlanetaryHoursDay, error) {
		day, err := planetaryHoursFor(ctx, s.eph, date, loc)
		if err != nil {
			return PlanetaryHoursDay{}, wrapEngineError(err)
		}
		return day, nil
	})
}

func (s *service) RetrogradeSummary(ctx context.Context, at time.Time) (RetrogradeSummary, error) {
	if at.IsZero() {
		return RetrogradeSummary{}, apperrors.Wrap(CodeInvalidInput, "instant must be provided", nil)
	}
	return withCache(ctx, s, cacheKey("retro", at, nil), func() (RetrogradeSummary, error) {
		summary, err := retrogradeSummaryAt(ctx, s.eph, at)
		if err != nil {
			return RetrogradeSummary{}, wrapEngineError(err)
		}
		return summary, nil
	})
}

// wrapEngineError translates collaborator failures into the engine's error
// taxonomy without retrying or substituting defaults.
func wrapEngineError(err error) error {
	switch {
	case errors.Is(err, ErrNoSunEvent):
		return apperrors.Wrap(CodeDegenerateLocation, "sun does not rise or set at this location on this date", err)
	case errors.Is(err, errSearchExhausted):
		return apperrors.Wrap(CodeOutOfRange, "no lunation found within the 40 day search horizon", err)
	default:
		return apperrors.Wrap(CodeProviderUnavailable, "ephemeris provider failed", err)
	}
}

// withCache serves a query from the memo store when possible. Store
// failures degrade to a fresh computation; the cache is never a source of
// truth. Entries expire at the next UTC midnight.
func withCache[T any](ctx context.Context, s *service, key string, compute func() (T, error)) (T, error) {
	var zero T
	if s.store != nil {
		payload, ok, err := s.store.Get(ctx, key)
		if err != nil {
			s.logger.Debug("memo read failed", "key", key, "error", err)
		} else if ok {
			var value T
			if err := json.Unmarshal(payload, &value); err == nil {
				return value, nil
			}
			s.logger.Debug("memo payload corrupt", "key", key)
		}
	}

	value, err := compute()
	if err != nil {
		return zero, err
	}

	if s.store != nil {
		if payload, err := json.Marshal(value); err == nil {
			if err := s.store.Set(ctx, key, payload, util.UntilNextMidnightUTC(s.now())); err != nil {
				s.logger.Debug("memo write failed", "key", key, "error", err)
			}
		}
	}
	return value, nil
}
