package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/weatherapp/internal/httpclient"
	"github.com/tphakala/weatherapp/internal/logger"
	"github.com/tphakala/weatherapp/internal/observability"
	"github.com/tphakala/weatherapp/internal/weather"
)

const testWeatherURL = weather.DefaultBaseURL + "/weather"

const londonResponse = `{
  "weather": [{"description": "clear sky", "icon": "01d"}],
  "main": {"temp": 15.4, "feels_like": 14.9, "pressure": 1012, "humidity": 60},
  "wind": {"speed": 3.2},
  "sys": {"country": "GB"},
  "name": "London"
}`

var fixedTime = time.Date(2026, time.March, 14, 12, 34, 56, 0, time.Local)

func discardLogger() logger.Logger {
	return logger.NewSlogLogger(io.Discard, logger.LogLevelDebug, time.UTC)
}

// newWeatherClient returns a weather client backed by a MockTransport that
// knows London and answers 404 for any other city.
func newWeatherClient(t *testing.T, apiKey string) (*weather.Client, *httpmock.MockTransport) {
	t.Helper()

	mock := httpmock.NewMockTransport()
	mock.RegisterResponder(http.MethodGet, testWeatherURL, func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("q") != "London" {
			return httpmock.NewStringResponse(http.StatusNotFound, `{"cod":"404","message":"city not found"}`), nil
		}
		return httpmock.NewStringResponse(http.StatusOK, londonResponse), nil
	})

	hc := httpclient.New(&httpclient.Config{Transport: mock, DefaultTimeout: 5 * time.Second})
	t.Cleanup(hc.Close)

	client := weather.NewClient(apiKey,
		weather.WithHTTPClient(hc),
		weather.WithClock(func() time.Time { return fixedTime }),
		weather.WithLogger(discardLogger()),
	)
	return client, mock
}

func newTestServer(t *testing.T, fetcher WeatherFetcher, opts ...ServerOption) *Server {
	t.Helper()

	s, err := New(DefaultConfig(), fetcher, append([]ServerOption{WithLogger(discardLogger())}, opts...)...)
	require.NoError(t, err)
	return s
}

func newTestServerWithMetrics(t *testing.T, fetcher WeatherFetcher) (*Server, *observability.Metrics) {
	t.Helper()

	m, err := observability.NewMetrics()
	require.NoError(t, err)
	return newTestServer(t, fetcher, WithMetrics(m)), m
}

func postCity(t *testing.T, s *Server, city string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	form.Set("city", city)
	req := httptest.NewRequest(http.MethodPost, "/weather", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return rec
}
