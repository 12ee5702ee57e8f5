package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/weatherapp/internal/logger"
	"github.com/tphakala/weatherapp/internal/weather"
)

// Messages returned in the error field of the weather endpoint.
const (
	MsgAPIKeyNotConfigured = "OpenWeatherMap API key is not configured. Please set the OPENWEATHERMAP_API_KEY environment variable."
	MsgEmptyCity           = "Please enter a city name"
	msgFetchFailedPrefix   = "Could not retrieve weather data: "
)

// WeatherResponse is the JSON body of POST /weather. Failures are reported
// in-band with HTTP 200 and success=false.
type WeatherResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	*weather.RecordSnapshot
}

func weatherError(msg string) WeatherResponse {
	return WeatherResponse{Error: msg}
}

// handleIndex renders the search page.
func (s *Server) handleIndex(c echo.Context) error {
	if !s.weather.HasAPIKey() {
		s.log.Warn("Serving app without API key - searches will fail")
	}

	page, err := s.renderIndex()
	if err != nil {
		s.log.Error("failed to render index page", logger.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to render page")
	}
	return c.HTMLBlob(http.StatusOK, page)
}

// handleWeather looks up the city from the "city" form field.
func (s *Server) handleWeather(c echo.Context) error {
	log := s.log.WithContext(c.Request().Context())

	if !s.weather.HasAPIKey() {
		return c.JSON(http.StatusOK, weatherError(MsgAPIKeyNotConfigured))
	}

	city := strings.TrimSpace(c.FormValue("city"))
	if city == "" {
		return c.JSON(http.StatusOK, weatherError(MsgEmptyCity))
	}

	log.Info("Fetching weather data", logger.String("city", city))

	record, err := s.weather.FetchCurrentWeather(c.Request().Context(), city)
	if err != nil {
		log.Error("Error fetching weather data", logger.String("city", city), logger.Error(err))
		return c.JSON(http.StatusOK, weatherError(msgFetchFailedPrefix+err.Error()))
	}

	snapshot := record.Snapshot()
	snapshot.Description = Capitalize(snapshot.Description)

	log.Info("Successfully retrieved weather data", logger.String("city", city))
	return c.JSON(http.StatusOK, WeatherResponse{Success: true, RecordSnapshot: &snapshot})
}

// healthCheck handles the liveness endpoint.
func (s *Server) healthCheck(c echo.Context) error {
	uptime := time.Since(s.startTime)

	return c.JSON(http.StatusOK, map[string]any{
		"status":             "healthy",
		"api_key_configured": s.weather.HasAPIKey(),
		"uptime":             uptime.String(),
		"uptime_seconds":     uptime.Seconds(),
		"timestamp":          time.Now().Format(time.RFC3339),
	})
}
