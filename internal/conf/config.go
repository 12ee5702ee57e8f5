// Package conf loads weatherapp settings from defaults, an optional config.yaml,
// an optional .env file and environment variables.
package conf

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tphakala/weatherapp/internal/errors"
	"github.com/tphakala/weatherapp/internal/logger"
)

// APIKeyEnvVar is the environment variable holding the OpenWeatherMap API key
const APIKeyEnvVar = "OPENWEATHERMAP_API_KEY"

// maskedValue replaces secrets in dumped configuration
const maskedValue = "***MASKED***"

// Settings contains all configuration options for weatherapp
type Settings struct {
	Debug bool `yaml:"debug" mapstructure:"debug"`

	OpenWeather OpenWeatherSettings  `yaml:"openweather" mapstructure:"openweather"`
	WebServer   WebServerSettings    `yaml:"webserver" mapstructure:"webserver"`
	Logging     logger.LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// OpenWeatherSettings contains settings for the OpenWeatherMap current weather API
type OpenWeatherSettings struct {
	APIKey   string        `yaml:"apikey" mapstructure:"apikey"`     // API key, usually from OPENWEATHERMAP_API_KEY
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"` // base URL, the client appends /weather
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`   // per-request timeout
}

// WebServerSettings contains settings for the web presentation
type WebServerSettings struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// Address returns host:port for the web server listener
func (w WebServerSettings) Address() string {
	return fmt.Sprintf("%s:%d", w.Host, w.Port)
}

// HasAPIKey reports whether an API key is configured
func (s *Settings) HasAPIKey() bool {
	return s != nil && s.OpenWeather.APIKey != ""
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads defaults, the optional .env file, the optional config file and
// environment variables into a new Settings instance.
//
// A missing API key is not an error; callers warn about it and the weather
// client reports it per request.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, errors.New(fmt.Errorf("error unmarshaling config into struct: %w", err)).
			Component("configuration").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	settingsInstance = settings
	return settings, nil
}

// GetSettings returns the most recently loaded settings, or nil before Load
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// loadDotEnv loads .env from the working directory, or the file named by
// WEATHERAPP_ENV_FILE. Existing environment variables take precedence.
func loadDotEnv() error {
	path := os.Getenv("WEATHERAPP_ENV_FILE")
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		return errors.New(fmt.Errorf("error reading env file %s: %w", path, err)).
			Component("configuration").
			Category(errors.CategoryFileIO).
			Build()
	}

	if err := godotenv.Load(path); err != nil {
		return errors.New(fmt.Errorf("error parsing env file %s: %w", path, err)).
			Component("configuration").
			Category(errors.CategoryFileParsing).
			Build()
	}
	return nil
}

// initViper sets defaults, reads the config file when present and binds env vars
func initViper() error {
	setDefaultConfig()

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		for _, path := range GetDefaultConfigPaths() {
			viper.AddConfigPath(path)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.New(fmt.Errorf("fatal error reading config file: %w", err)).
				Component("configuration").
				Category(errors.CategoryFileParsing).
				Build()
		}
	}

	return configureEnvironmentVariables()
}

// YAML renders the settings with the API key masked
func (s *Settings) YAML() ([]byte, error) {
	masked := *s
	if masked.OpenWeather.APIKey != "" {
		masked.OpenWeather.APIKey = maskedValue
	}

	data, err := yaml.Marshal(&masked)
	if err != nil {
		return nil, fmt.Errorf("error marshaling settings to YAML: %w", err)
	}
	return data, nil
}
