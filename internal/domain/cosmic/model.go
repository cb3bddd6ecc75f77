package cosmic

import (
	"fmt"
	"time"
)

// Body identifies a tracked celestial body.
type Body string

const (
	BodySun     Body = "sun"
	BodyMoon    Body = "moon"
	BodyMercury Body = "mercury"
	BodyVenus   Body = "venus"
	BodyMars    Body = "mars"
	BodyJupiter Body = "jupiter"
	BodySaturn  Body = "saturn"
	BodyUranus  Body = "uranus"
	BodyNeptune Body = "neptune"
	BodyPluto   Body = "pluto"
)

// Bodies lists every tracked body in traditional order.
var Bodies = []Body{
	BodySun, BodyMoon, BodyMercury, BodyVenus, BodyMars,
	BodyJupiter, BodySaturn, BodyUranus, BodyNeptune, BodyPluto,
}

// Planets lists the bodies that show apparent retrograde motion as seen
// from Earth. The Sun and Moon never station geocentrically.
var Planets = []Body{
	BodyMercury, BodyVenus, BodyMars, BodyJupiter,
	BodySaturn, BodyUranus, BodyNeptune, BodyPluto,
}

var bodyDisplayNames = map[Body]string{
	BodySun:     "Sun",
	BodyMoon:    "Moon",
	BodyMercury: "Mercury",
	BodyVenus:   "Venus",
	BodyMars:    "Mars",
	BodyJupiter: "Jupiter",
	BodySaturn:  "Saturn",
	BodyUranus:  "Uranus",
	BodyNeptune: "Neptune",
	BodyPluto:   "Pluto",
}

// Display returns the human readable body name.
func (b Body) Display() string {
	if name, ok := bodyDisplayNames[b]; ok {
		return name
	}
	return string(b)
}

// ZodiacSign is one of the twelve fixed 30 degree segments of the ecliptic.
type ZodiacSign string

const (
	SignAries       ZodiacSign = "aries"
	SignTaurus      ZodiacSign = "taurus"
	SignGemini      ZodiacSign = "gemini"
	SignCancer      ZodiacSign = "cancer"
	SignLeo         ZodiacSign = "leo"
	SignVirgo       ZodiacSign = "virgo"
	SignLibra       ZodiacSign = "libra"
	SignScorpio     ZodiacSign = "scorpio"
	SignSagittarius ZodiacSign = "sagittarius"
	SignCapricorn   ZodiacSign = "capricorn"
	SignAquarius    ZodiacSign = "aquarius"
	SignPisces      ZodiacSign = "pisces"
)

// Signs lists the zodiac in ecliptic order starting at 0 degrees.
var Signs = []ZodiacSign{
	SignAries, SignTaurus, SignGemini, SignCancer, SignLeo, SignVirgo,
	SignLibra, SignScorpio, SignSagittarius, SignCapricorn, SignAquarius, SignPisces,
}

var signDisplayNames = map[ZodiacSign]string{
	SignAries:       "Aries",
	SignTaurus:      "Taurus",
	SignGemini:      "Gemini",
	SignCancer:      "Cancer",
	SignLeo:         "Leo",
	SignVirgo:       "Virgo",
	SignLibra:       "Libra",
	SignScorpio:     "Scorpio",
	SignSagittarius: "Sagittarius",
	SignCapricorn:   "Capricorn",
	SignAquarius:    "Aquarius",
	SignPisces:      "Pisces",
}

// Display returns the human readable sign name.
func (s ZodiacSign) Display() string {
	if name, ok := signDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

// GeoCoordinate is a point on the Earth's surface in decimal degrees.
type GeoCoordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate rejects coordinates outside the valid ranges.
func (g GeoCoordinate) Validate() error {
	if g.Latitude < -90 || g.Latitude > 90 {
		return fmt.Errorf("latitude %.4f outside [-90,90]", g.Latitude)
	}
	if g.Longitude < -180 || g.Longitude > 180 {
		return fmt.Errorf("longitude %.4f outside [-180,180]", g.Longitude)
	}
	return nil
}

// CivilDate is a calendar date without a time component. Planetary hours
// need it for weekday determination; everything else works on UTC instants.
type CivilDate struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// ParseCivilDate reads a YYYY-MM-DD string.
func ParseCivilDate(value string) (CivilDate, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return CivilDate{}, err
	}
	return CivilDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Validate rejects impossible calendar dates.
func (d CivilDate) Validate() error {
	if d.Month < time.January || d.Month > time.December {
		return fmt.Errorf("month %d outside [1,12]", d.Month)
	}
	if d.Day < 1 || d.Day > 31 {
		return fmt.Errorf("day %d outside [1,31]", d.Day)
	}
	if t := d.Time(); t.Day() != d.Day || t.Month() != d.Month {
		return fmt.Errorf("%s is not a calendar date", d)
	}
	return nil
}

// Time returns UTC midnight at the start of the date.
func (d CivilDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Next returns the following calendar date.
func (d CivilDate) Next() CivilDate {
	t := d.Time().AddDate(0, 0, 1)
	return CivilDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Weekday reports the civil weekday of the date.
func (d CivilDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d CivilDate) String() string {
	return d.Time().Format("2006-01-02")
}

// BodyPosition is the zodiacal snapshot of one body at an instant.
type BodyPosition struct {
	Body           Body       `json:"body"`
	LongitudeDeg   float64    `json:"longitudeDeg"`
	Sign           ZodiacSign `json:"sign"`
	DegreeInSign   float64    `json:"degreeInSign"`
	SpeedDegPerDay float64    `json:"speedDegPerDay"`
	Retrograde     bool       `json:"retrograde"`
}

// MoonPhase names one of the eight canonical lunar phases.
type MoonPhase string

const (
	PhaseNewMoon        MoonPhase = "New Moon"
	PhaseWaxingCrescent MoonPhase = "Waxing Crescent"
	PhaseFirstQuarter   MoonPhase = "First Quarter"
	PhaseWaxingGibbous  MoonPhase = "Waxing Gibbous"
	PhaseFullMoon       MoonPhase = "Full Moon"
	PhaseWaningGibbous  MoonPhase = "Waning Gibbous"
	PhaseLastQuarter    MoonPhase = "Last Quarter"
	PhaseWaningCrescent MoonPhase = "Waning Crescent"
)

// MoonPhaseInfo describes the lunar cycle around an instant.
type MoonPhaseInfo struct {
	PhaseAngleDeg       float64    `json:"phaseAngleDeg"`
	IlluminatedFraction float64    `json:"illuminatedFraction"`
	PhaseName           MoonPhase  `json:"phaseName"`
	MoonSign            ZodiacSign `json:"moonSign"`
	MoonDegreeInSign    float64    `json:"moonDegreeInSign"`
	DaysUntilFullMoon   float64    `json:"daysUntilFullMoon"`
	DaysUntilNewMoon    float64    `json:"daysUntilNewMoon"`
	NextFullMoon        time.Time  `json:"nextFullMoon"`
	NextNewMoon         time.Time  `json:"nextNewMoon"`
}

// RetrogradeWindow spans one retrograde period of a body. A nil boundary
// means the window extends past the query horizon.
type RetrogradeWindow struct {
	Body  Body       `json:"body"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Contains reports whether the instant falls inside the window.
func (w RetrogradeWindow) Contains(at time.Time) bool {
	if w.Start != nil && at.Before(*w.Start) {
		return false
	}
	if w.End != nil && !at.Before(*w.End) {
		return false
	}
	return true
}

// EventKind classifies a month event.
type EventKind string

const (
	EventIngress           EventKind = "ingress"
	EventRetrogradeStation EventKind = "retrograde_station"
	EventFullMoon          EventKind = "full_moon"
	EventNewMoon           EventKind = "new_moon"
)

// Impact is the presentation weight assigned to a month event.
type Impact string

const (
	ImpactPositive    Impact = "positive"
	ImpactChallenging Impact = "challenging"
	ImpactSignificant Impact = "significant"
)

// MonthEvent is one significant celestial event inside a calendar month.
// Body is empty for lunar phase events.
type MonthEvent struct {
	Instant     time.Time `json:"instant"`
	Body        Body      `json:"body,omitempty"`
	Kind        EventKind `json:"kind"`
	Impact      Impact    `json:"impactClass"`
	Description string    `json:"description"`
}

// PlanetaryHour is one of the 24 unequal hours of a civil day.
type PlanetaryHour struct {
	Index int       `json:"hourIndex"`
	IsDay bool      `json:"isDay"`
	Ruler Body      `json:"rulingBody"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PlanetaryHoursDay partitions a civil day into twelve day and twelve
// night hours between consecutive sunrises.
type PlanetaryHoursDay struct {
	Date        CivilDate       `json:"date"`
	Location    GeoCoordinate   `json:"location"`
	Sunrise     time.Time       `json:"sunrise"`
	Sunset      time.Time       `json:"sunset"`
	NextSunrise time.Time       `json:"nextSunrise"`
	DayRuler    Body            `json:"dayRuler"`
	Hours       []PlanetaryHour `json:"hours"`
	CurrentHour *PlanetaryHour  `json:"currentHour,omitempty"`
}

// RetrogradeSummary is the user facing digest of retrograde activity.
type RetrogradeSummary struct {
	Current  []RetrogradeWindow `json:"currentRetrogrades"`
	Upcoming []RetrogradeWindow `json:"upcomingRetrogrades"`
	Count    int                `json:"retrogradeCount"`
	Message  string             `json:"message"`
}
