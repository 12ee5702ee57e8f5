package observability

import (
	"fmt"

	"github.com/tphakala/weatherapp/internal/logger"
)

// getLogger resolves lazily so it picks up the logger installed by SetGlobal.
func getLogger() logger.Logger {
	return logger.Global().Module("telemetry")
}

// promErrorLog adapts the package logger to promhttp.Logger.
type promErrorLog struct{}

func (promErrorLog) Println(v ...any) {
	getLogger().Error("metrics handler error", logger.String("message", fmt.Sprint(v...)))
}
