package weather

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is the normalized weather for one city at one point in time.
// It is built once by the client and cannot be modified afterwards.
type Record struct {
	city         string
	country      string
	temperatureC int
	feelsLikeC   int
	description  string
	humidityPct  int
	pressureHPa  int
	windSpeedMps float64
	iconCode     string
	fetchedAt    string
}

// RecordSnapshot is a plain copy of a Record for serialization.
type RecordSnapshot struct {
	City         string  `json:"city"`
	Country      string  `json:"country"`
	TemperatureC int     `json:"temperature"`
	FeelsLikeC   int     `json:"feels_like"`
	Description  string  `json:"description"`
	HumidityPct  int     `json:"humidity"`
	PressureHPa  int     `json:"pressure"`
	WindSpeedMps float64 `json:"wind_speed"`
	IconCode     string  `json:"icon"`
	FetchedAt    string  `json:"last_updated"`
}

func (r Record) City() string          { return r.city }
func (r Record) Country() string       { return r.country }
func (r Record) TemperatureC() int     { return r.temperatureC }
func (r Record) FeelsLikeC() int       { return r.feelsLikeC }
func (r Record) Description() string   { return r.description }
func (r Record) HumidityPct() int      { return r.humidityPct }
func (r Record) PressureHPa() int      { return r.pressureHPa }
func (r Record) WindSpeedMps() float64 { return r.windSpeedMps }
func (r Record) IconCode() string      { return r.iconCode }

// FetchedAt is the local wall-clock time of mapping, formatted HH:MM:SS.
func (r Record) FetchedAt() string { return r.fetchedAt }

// IsZero reports whether r is the zero Record returned alongside errors.
func (r Record) IsZero() bool {
	return r == Record{}
}

// Snapshot returns the record's values as an exported struct.
func (r Record) Snapshot() RecordSnapshot {
	return RecordSnapshot{
		City:         r.city,
		Country:      r.country,
		TemperatureC: r.temperatureC,
		FeelsLikeC:   r.feelsLikeC,
		Description:  r.description,
		HumidityPct:  r.humidityPct,
		PressureHPa:  r.pressureHPa,
		WindSpeedMps: r.windSpeedMps,
		IconCode:     r.iconCode,
		FetchedAt:    r.fetchedAt,
	}
}

// String renders the multi-line summary, for example:
//
//	Weather in London, GB:
//	Temperature: 15°C (feels like 15°C)
//	...
func (r Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weather in %s, %s:\n", r.city, r.country)
	fmt.Fprintf(&b, "Temperature: %d°C (feels like %d°C)\n", r.temperatureC, r.feelsLikeC)
	fmt.Fprintf(&b, "Description: %s\n", r.description)
	fmt.Fprintf(&b, "Humidity: %d%%\n", r.humidityPct)
	fmt.Fprintf(&b, "Wind Speed: %s m/s\n", FormatWindSpeed(r.windSpeedMps))
	fmt.Fprintf(&b, "Pressure: %d hPa\n", r.pressureHPa)
	fmt.Fprintf(&b, "Last Updated: %s", r.fetchedAt)
	return b.String()
}

// FormatWindSpeed prints the speed with the shortest exact representation,
// keeping at least one decimal ("3.2", "4.0").
func FormatWindSpeed(speed float64) string {
	s := strconv.FormatFloat(speed, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
