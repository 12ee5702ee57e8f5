// env.go - Environment variable configuration and validation for weatherapp
package conf

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tphakala/weatherapp/internal/errors"
)

// envBinding holds metadata for environment variable bindings (internal use)
type envBinding struct {
	ConfigKey string             // Viper config key
	EnvVar    string             // Environment variable name
	Validate  func(string) error // Optional validation function
}

// getEnvBindings returns all environment variable bindings with validation
func getEnvBindings() []envBinding {
	return []envBinding{
		{"openweather.apikey", APIKeyEnvVar, nil},
		{"openweather.endpoint", "WEATHERAPP_ENDPOINT", validateEnvEndpoint},
		{"openweather.timeout", "WEATHERAPP_TIMEOUT", validateEnvTimeout},

		{"webserver.host", "WEATHERAPP_HOST", nil},
		{"webserver.port", "WEATHERAPP_PORT", validateEnvPort},

		{"debug", "WEATHERAPP_DEBUG", validateEnvBool},
		{"logging.defaultlevel", "WEATHERAPP_LOG_LEVEL", validateEnvLogLevel},
		{"logging.timezone", "WEATHERAPP_LOG_TIMEZONE", validateEnvTimezone},
	}
}

// bindEnvVars sets up environment variable bindings with validation (internal)
func bindEnvVars() error {
	var warnings []string

	for _, binding := range getEnvBindings() {
		if err := viper.BindEnv(binding.ConfigKey, binding.EnvVar); err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to bind %s: %v", binding.EnvVar, err))
			continue
		}

		if binding.Validate == nil {
			continue
		}
		if envValue := os.Getenv(binding.EnvVar); envValue != "" {
			if err := binding.Validate(envValue); err != nil {
				warnings = append(warnings, fmt.Sprintf("Invalid %s value '%s': %v", binding.EnvVar, envValue, err))
			}
		}
	}

	if len(warnings) > 0 {
		return errors.Newf("environment variable issues:\n  - %s", strings.Join(warnings, "\n  - ")).
			Component("configuration").
			Category(errors.CategoryValidation).
			Build()
	}

	return nil
}

func validateEnvBool(value string) error {
	if _, err := strconv.ParseBool(strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("invalid boolean value '%s': must be true/false, 1/0, t/f, TRUE/FALSE, T/F", value)
	}
	return nil
}

func validateEnvPort(value string) error {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}
	return validatePort(port)
}

func validateEnvTimeout(value string) error {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid duration, expected a value like '10s': %w", err)
	}
	return validateTimeout(d)
}

func validateEnvEndpoint(value string) error {
	return validateEndpoint(value)
}

func validateEnvLogLevel(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("must be one of: trace, debug, info, warn, error")
	}
}

func validateEnvTimezone(value string) error {
	if value == "Local" {
		return nil
	}
	if _, err := time.LoadLocation(value); err != nil {
		return fmt.Errorf("unknown timezone: %w", err)
	}
	return nil
}

// configureEnvironmentVariables sets up environment variable support for Viper
func configureEnvironmentVariables() error {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return bindEnvVars()
}

// validateEndpoint accepts absolute http(s) URLs only
func validateEndpoint(value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint must include a host")
	}
	return nil
}
