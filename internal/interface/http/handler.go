package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veya-app/cosmic-engine/internal/domain/cosmic"
	apperrors "github.com/veya-app/cosmic-engine/pkg/errors"
)

// Handler wires the HTTP transport to the cosmic timing engine.
type Handler struct {
	engine cosmic.Service
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler constructs the root HTTP handler.
func NewHandler(engine cosmic.Service, logger *slog.Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger.With("component", "http.handler"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Positions returns the zodiacal snapshot of every tracked body.
func (h *Handler) Positions(c *gin.Context) {
	at, ok := h.instantParam(c, "at")
	if !ok {
		return
	}
	positions, err := h.engine.CurrentPositions(c.Request.Context(), at)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"instant": at, "positions": positions})
}

// MoonPhase returns the lunar phase snapshot.
func (h *Handler) MoonPhase(c *gin.Context) {
	at, ok := h.instantParam(c, "at")
	if !ok {
		return
	}
	info, err := h.engine.CurrentPhase(c.Request.Context(), at)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// MonthEvents lists the significant events of a calendar month.
func (h *Handler) MonthEvents(c *gin.Context) {
	year, okYear := h.intParam(c, "year")
	month, okMonth := h.intParam(c, "month")
	if !okYear || !okMonth {
		return
	}
	events, err := h.engine.EventsForMonth(c.Request.Context(), year, time.Month(month))
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "month": month, "events": events})
}

// PlanetaryHours partitions a civil day into its 24 unequal hours. With an
// `at` parameter the response also resolves the hour containing it.
func (h *Handler) PlanetaryHours(c *gin.Context) {
	date, err := cosmic.ParseCivilDate(c.Query("date"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "date must be formatted as YYYY-MM-DD", err))
		return
	}
	lat, okLat := h.floatParam(c, "lat")
	lon, okLon := h.floatParam(c, "lon")
	if !okLat || !okLon {
		return
	}

	day, err := h.engine.HoursForDay(c.Request.Context(), date, cosmic.GeoCoordinate{Latitude: lat, Longitude: lon})
	if err != nil {
		abortWithEngineError(c, err)
		return
	}

	if raw := strings.TrimSpace(c.Query("at")); raw != "" {
		at, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "at must be RFC3339", parseErr))
			return
		}
		hour, hourErr := day.HourAt(at.UTC())
		if hourErr != nil {
			abortWithEngineError(c, hourErr)
			return
		}
		day.CurrentHour = &hour
	}

	c.JSON(http.StatusOK, day)
}

// Retrogrades summarizes current and upcoming retrograde windows.
func (h *Handler) Retrogrades(c *gin.Context) {
	at, ok := h.instantParam(c, "at")
	if !ok {
		return
	}
	summary, err := h.engine.RetrogradeSummary(c.Request.Context(), at)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// instantParam reads an optional RFC3339 query parameter, defaulting to now.
func (h *Handler) instantParam(c *gin.Context, name string) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return h.now(), true
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", name+" must be RFC3339", err))
		return time.Time{}, false
	}
	return at.UTC(), true
}

func (h *Handler) intParam(c *gin.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	value, err := strconv.Atoi(raw)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", name+" must be an integer", err))
		return 0, false
	}
	return value, true
}

func (h *Handler) floatParam(c *gin.Context, name string) (float64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", name+" must be a number", err))
		return 0, false
	}
	return value, true
}

// abortWithEngineError maps the engine's error taxonomy onto HTTP statuses.
func abortWithEngineError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := apperrors.Code(err)
	switch code {
	case cosmic.CodeInvalidInput:
		status = http.StatusBadRequest
	case cosmic.CodeDegenerateLocation, cosmic.CodeOutOfRange:
		status = http.StatusUnprocessableEntity
	case cosmic.CodeProviderUnavailable:
		status = http.StatusBadGateway
	default:
		code = "internal_error"
	}
	abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
