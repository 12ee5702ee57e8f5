package weather

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/weatherapp/internal/httpclient"
	"github.com/tphakala/weatherapp/internal/logger"
)

const (
	testAPIKey     = "test-api-key"
	testWeatherURL = DefaultBaseURL + "/weather"
)

// londonResponse is a complete payload for London.
const londonResponse = `{
  "coord": {"lon": -0.1257, "lat": 51.5085},
  "weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"}],
  "main": {"temp": 15.4, "feels_like": 14.9, "temp_min": 13.2, "temp_max": 16.8, "pressure": 1012, "humidity": 60},
  "wind": {"speed": 3.2, "deg": 240},
  "sys": {"country": "GB", "sunrise": 1700000000, "sunset": 1700030000},
  "name": "London",
  "cod": 200
}`

// parisResponse is a second city with different values.
const parisResponse = `{
  "weather": [{"description": "light rain", "icon": "10n"}],
  "main": {"temp": -2.5, "feels_like": -6.6, "pressure": 998, "humidity": 87},
  "wind": {"speed": 5},
  "sys": {"country": "FR"},
  "name": "Paris"
}`

// fixedTime is the clock used by test clients.
var fixedTime = time.Date(2026, time.March, 14, 12, 34, 56, 0, time.Local)

func fixedClock() time.Time { return fixedTime }

// newMockedClient returns a client whose requests go to a fresh MockTransport.
func newMockedClient(t *testing.T, apiKey string, opts ...Option) (*Client, *httpmock.MockTransport) {
	t.Helper()

	mock := httpmock.NewMockTransport()
	hc := httpclient.New(&httpclient.Config{Transport: mock, DefaultTimeout: 5 * time.Second})
	t.Cleanup(hc.Close)

	base := []Option{
		WithHTTPClient(hc),
		WithClock(fixedClock),
		WithLogger(logger.NewSlogLogger(io.Discard, logger.LogLevelDebug, time.UTC)),
	}
	return NewClient(apiKey, append(base, opts...)...), mock
}

// registerWeatherResponder answers GET /weather for any query with status and body.
func registerWeatherResponder(t *testing.T, mock *httpmock.MockTransport, status int, body string) {
	t.Helper()
	mock.RegisterResponder(http.MethodGet, testWeatherURL, httpmock.NewStringResponder(status, body))
}

// registerCityResponders answers by the q parameter; unknown cities get 404.
func registerCityResponders(t *testing.T, mock *httpmock.MockTransport, bodies map[string]string) {
	t.Helper()
	mock.RegisterResponder(http.MethodGet, testWeatherURL, func(req *http.Request) (*http.Response, error) {
		body, ok := bodies[req.URL.Query().Get("q")]
		if !ok {
			return httpmock.NewStringResponse(http.StatusNotFound, `{"cod":"404","message":"city not found"}`), nil
		}
		return httpmock.NewStringResponse(http.StatusOK, body), nil
	})
}

func requireOneCall(t *testing.T, mock *httpmock.MockTransport) {
	t.Helper()
	require.Equal(t, 1, mock.GetTotalCallCount(), "expected exactly one request")
}
