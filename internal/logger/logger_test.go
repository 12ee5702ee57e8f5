package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLoggerLevels(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := NewSlogLogger(buf, LogLevelInfo, time.UTC)

	log.Debug("hidden")
	log.Info("visible", String("city", "London"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "city=London")
}

func TestTraceLevelName(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := NewSlogLogger(buf, LogLevelTrace, time.UTC)

	log.Trace("very verbose")

	assert.Contains(t, buf.String(), "level=TRACE")
}

func TestModuleNesting(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := NewSlogLogger(buf, LogLevelDebug, time.UTC).Module("api").Module("handler")

	log.Info("request")

	assert.Contains(t, buf.String(), "module=api.handler")
}

func TestWithDoesNotMutateParent(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	parent := NewSlogLogger(buf, LogLevelInfo, time.UTC)
	child := parent.With(String("request_id", "abc"))

	parent.Info("from parent")
	child.Info("from child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "request_id")
	assert.Contains(t, lines[1], "request_id=abc")
}

func TestWithContextTraceID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := NewSlogLogger(buf, LogLevelInfo, time.UTC)

	log.WithContext(WithTraceID(context.Background(), "trace-1")).Info("traced")
	log.WithContext(context.Background()).Info("untraced")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "trace_id=trace-1")
	assert.NotContains(t, lines[1], "trace_id")
}

func TestFieldToAttr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field Field
		want  slog.Value
	}{
		{"rounded_float", Float64("temp", 15.123456), slog.Float64Value(15.123)},
		{"duration_string", Duration("elapsed", 1500*time.Millisecond), slog.StringValue("1.5s")},
		{"nil_error", Error(nil), slog.AnyValue(nil)},
		{"sensitive_key", String("api_key", "abcdef123456"), slog.StringValue("[REDACTED]")},
		{"appid_in_value", String("url", "https://example.com/weather?q=Paris&appid=secret123"),
			slog.StringValue("https://example.com/weather?q=Paris&appid=[REDACTED]")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			attr := fieldToAttr(tt.field)
			assert.True(t, tt.want.Equal(attr.Value), "got %v", attr.Value)
		})
	}
}

func TestRedactSensitiveData(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", RedactSensitiveData(""))
	assert.Equal(t, "header Bearer [REDACTED]", RedactSensitiveData("header Bearer abc.def.ghi"))
	assert.Equal(t, "GET /weather?appid=[REDACTED]&q=Paris", RedactSensitiveData("GET /weather?appid=secret123&q=Paris"))
	assert.Equal(t, "plain message", RedactSensitiveData("plain message"))
}

func TestCentralLoggerFileOutput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	cl, err := NewCentralLogger(&LoggingConfig{
		DefaultLevel: "debug",
		Timezone:     "UTC",
		Console:      &ConsoleOutput{Enabled: false},
		FileOutput:   &FileOutput{Enabled: true, Path: path, Level: "debug"},
	})
	require.NoError(t, err)

	cl.Module("weather").Info("fetched", String("city", "Paris"), Int("status", 200))
	require.NoError(t, cl.Flush())
	require.NoError(t, cl.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "fetched", entry["msg"])
	assert.Equal(t, "weather", entry["module"])
	assert.Equal(t, "Paris", entry["city"])
	assert.InDelta(t, 200, entry["status"], 0)
}

func TestCentralLoggerModuleLevels(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	cl, err := NewCentralLogger(&LoggingConfig{
		DefaultLevel: "info",
		Console:      &ConsoleOutput{Enabled: false},
		FileOutput:   &FileOutput{Enabled: true, Path: path, Level: "trace"},
		ModuleLevels: map[string]string{"weather": "debug"},
	})
	require.NoError(t, err)

	cl.Module("weather").Debug("weather debug")
	cl.Module("api").Debug("api debug")
	require.NoError(t, cl.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "weather debug")
	assert.NotContains(t, string(data), "api debug")
}

func TestNewCentralLoggerErrors(t *testing.T) {
	t.Parallel()

	_, err := NewCentralLogger(nil)
	require.Error(t, err)

	_, err = NewCentralLogger(&LoggingConfig{Timezone: "Not/AZone"})
	require.Error(t, err)
}
