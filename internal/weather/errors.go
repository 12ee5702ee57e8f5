package weather

import (
	"fmt"

	"github.com/tphakala/weatherapp/internal/errors"
)

// ConfigurationError is returned when the client has no API key.
type ConfigurationError struct{}

func (e *ConfigurationError) Error() string {
	return "API key not set. Please set the OPENWEATHERMAP_API_KEY environment variable."
}

// ErrorCategory implements errors.CategorizedError
func (e *ConfigurationError) ErrorCategory() errors.ErrorCategory {
	return errors.CategoryConfiguration
}

// NotFoundError is returned when the provider does not know the city (HTTP 404).
type NotFoundError struct {
	City string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("City '%s' not found. Please check the spelling and try again.", e.City)
}

// ErrorCategory implements errors.CategorizedError
func (e *NotFoundError) ErrorCategory() errors.ErrorCategory {
	return errors.CategoryNotFound
}

// APIError is returned for any status other than 200 and 404.
type APIError struct {
	StatusCode int
	Reason     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d - %s", e.StatusCode, e.Reason)
}

// ErrorCategory implements errors.CategorizedError
func (e *APIError) ErrorCategory() errors.ErrorCategory {
	return errors.CategoryHTTP
}

// NetworkError wraps a transport failure: DNS, refused connection, TLS, timeout.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("Network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ErrorCategory implements errors.CategorizedError
func (e *NetworkError) ErrorCategory() errors.ErrorCategory {
	return errors.CategoryNetwork
}

// ParseError is returned when a 200 response body is not a JSON object of the
// expected shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Error parsing weather data: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrorCategory implements errors.CategorizedError
func (e *ParseError) ErrorCategory() errors.ErrorCategory {
	return errors.CategoryFileParsing
}

// newWeatherError wraps a typed weather error with component and context fields
func newWeatherError(err errors.CategorizedError, operation, city string) error {
	return errors.New(err).
		Component("weather").
		Category(err.ErrorCategory()).
		Context("operation", operation).
		Context("provider", providerName).
		Context("city", city).
		Build()
}

// errorType is the metrics label for a typed weather error
func errorType(err error) string {
	var catErr errors.CategorizedError
	if errors.As(err, &catErr) {
		return string(catErr.ErrorCategory())
	}
	return string(errors.CategoryGeneric)
}
