// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"

	"github.com/tphakala/weatherapp/internal/logger"
)

const (
	// DefaultEndpoint is the OpenWeatherMap 2.5 API base URL
	DefaultEndpoint = "https://api.openweathermap.org/data/2.5"

	DefaultTimeout = 10 * time.Second
	DefaultHost    = "0.0.0.0"
	DefaultPort    = 5000
)

// setDefaultConfig sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("openweather.apikey", "")
	viper.SetDefault("openweather.endpoint", DefaultEndpoint)
	viper.SetDefault("openweather.timeout", DefaultTimeout)

	viper.SetDefault("webserver.host", DefaultHost)
	viper.SetDefault("webserver.port", DefaultPort)

	viper.SetDefault("logging.defaultlevel", logger.DefaultLogLevel)
	viper.SetDefault("logging.timezone", "Local")
	viper.SetDefault("logging.console.enabled", logger.DefaultConsoleEnabled)
	viper.SetDefault("logging.console.level", logger.DefaultLogLevel)
	viper.SetDefault("logging.fileoutput.enabled", false)
	viper.SetDefault("logging.fileoutput.path", logger.DefaultLogPath)
	viper.SetDefault("logging.fileoutput.level", logger.DefaultLogLevel)
}
