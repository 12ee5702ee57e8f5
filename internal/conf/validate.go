package conf

import (
	"fmt"
	"strings"
	"time"

	"github.com/tphakala/weatherapp/internal/errors"
)

const (
	minPort    = 1
	maxPort    = 65535
	maxTimeout = 2 * time.Minute
)

// ValidateSettings checks the loaded settings. A missing API key is not
// reported here; see Settings.HasAPIKey.
func ValidateSettings(settings *Settings) error {
	if settings == nil {
		return errors.NewStd("settings cannot be nil")
	}

	var problems []string

	if err := validateEndpoint(settings.OpenWeather.Endpoint); err != nil {
		problems = append(problems, fmt.Sprintf("openweather.endpoint: %v", err))
	}
	if err := validateTimeout(settings.OpenWeather.Timeout); err != nil {
		problems = append(problems, fmt.Sprintf("openweather.timeout: %v", err))
	}
	if err := validatePort(settings.WebServer.Port); err != nil {
		problems = append(problems, fmt.Sprintf("webserver.port: %v", err))
	}

	if len(problems) > 0 {
		return errors.Newf("invalid settings: %s", strings.Join(problems, "; ")).
			Component("configuration").
			Category(errors.CategoryValidation).
			Context("problem_count", len(problems)).
			Build()
	}

	return nil
}

func validatePort(port int) error {
	if port < minPort || port > maxPort {
		return fmt.Errorf("port must be between %d and %d, got %d", minPort, maxPort, port)
	}
	return nil
}

func validateTimeout(d time.Duration) error {
	if d <= 0 || d > maxTimeout {
		return fmt.Errorf("timeout must be greater than 0 and at most %s, got %s", maxTimeout, d)
	}
	return nil
}
