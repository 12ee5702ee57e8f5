package weather

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/tphakala/weatherapp/internal/errors"
)

// Defaults for fields missing from the provider payload
const (
	defaultUnknown  = "Unknown"
	defaultIconCode = "01d"

	fetchedAtLayout = "15:04:05"
)

// openWeatherResponse is the subset of the current weather payload the client
// reads. Pointer fields distinguish missing values from zeros.
type openWeatherResponse struct {
	Name *string `json:"name"`
	Sys  *struct {
		Country *string `json:"country"`
	} `json:"sys"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
		Pressure  *float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

// decodeResponse parses a 200 body. Anything other than a JSON object, or a
// field of the wrong type, is a ParseError.
func decodeResponse(body []byte) (*openWeatherResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ParseError{Err: errors.NewStd("response body is not a JSON object")}
	}

	var resp openWeatherResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &resp, nil
}

// mapResponse converts the payload into a Record. Every default lives here.
func mapResponse(resp *openWeatherResponse, now time.Time) Record {
	r := Record{
		city:        defaultUnknown,
		country:     defaultUnknown,
		description: defaultUnknown,
		iconCode:    defaultIconCode,
		fetchedAt:   now.Local().Format(fetchedAtLayout),
	}

	if resp.Name != nil {
		r.city = *resp.Name
	}
	if resp.Sys != nil && resp.Sys.Country != nil {
		r.country = *resp.Sys.Country
	}
	if m := resp.Main; m != nil {
		r.temperatureC = roundToInt(m.Temp)
		r.feelsLikeC = roundToInt(m.FeelsLike)
		r.humidityPct = truncToInt(m.Humidity)
		r.pressureHPa = truncToInt(m.Pressure)
	}
	if len(resp.Weather) > 0 {
		w := resp.Weather[0]
		if w.Description != nil {
			r.description = *w.Description
		}
		if w.Icon != nil {
			r.iconCode = *w.Icon
		}
	}
	if resp.Wind != nil && resp.Wind.Speed != nil {
		r.windSpeedMps = *resp.Wind.Speed
	}

	return r
}

// roundToInt rounds half away from zero; nil maps to 0
func roundToInt(v *float64) int {
	if v == nil {
		return 0
	}
	return int(math.Round(*v))
}

// truncToInt converts provider integers that decode as float64; nil maps to 0
func truncToInt(v *float64) int {
	if v == nil {
		return 0
	}
	return int(*v)
}
