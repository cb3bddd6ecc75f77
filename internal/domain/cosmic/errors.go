package cosmic

import "errors"

// Error codes carried by pkg/errors.AppError for every failure the engine
// can produce. The engine never retries and never substitutes defaults;
// callers branch on these codes.
const (
	CodeProviderUnavailable = "provider_unavailable"
	CodeDegenerateLocation  = "degenerate_location"
	CodeOutOfRange          = "out_of_range"
	CodeInvalidInput        = "invalid_input"
)

// ErrNoSunEvent is returned by EphemerisProvider.SunTimes when the sun
// neither rises nor sets on the requested date (polar day or night).
var ErrNoSunEvent = errors.New("sun does not rise or set on this date")

// errSearchExhausted signals that a bounded forward search ran out of road.
// The synodic month fits the bound with margin, so hitting it means the
// provider fed the search inconsistent longitudes.
var errSearchExhausted = errors.New("phase search exceeded its horizon")
