package weather

import (
	"sync"

	"github.com/tphakala/weatherapp/internal/logger"
)

var (
	serviceLogger logger.Logger
	loggerOnce    sync.Once
)

// GetLogger returns the weather package logger
func GetLogger() logger.Logger {
	loggerOnce.Do(func() {
		serviceLogger = logger.Global().Module("weather")
	})
	return serviceLogger
}
