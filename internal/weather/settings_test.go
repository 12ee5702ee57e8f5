package weather

import (
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/weatherapp/internal/conf"
	"github.com/tphakala/weatherapp/internal/httpclient"
)

func TestNewClientFromSettings(t *testing.T) {
	t.Parallel()

	settings := &conf.Settings{}
	settings.OpenWeather.APIKey = testAPIKey
	settings.OpenWeather.Endpoint = "https://weather.example.test/v1/"
	settings.OpenWeather.Timeout = 2 * time.Second

	mock := httpmock.NewMockTransport()
	mock.RegisterResponder(http.MethodGet, "https://weather.example.test/v1/weather",
		httpmock.NewStringResponder(http.StatusOK, londonResponse))

	hc := httpclient.New(&httpclient.Config{Transport: mock})
	t.Cleanup(hc.Close)

	client := NewClientFromSettings(settings, WithHTTPClient(hc), WithClock(fixedClock))
	require.True(t, client.HasAPIKey())

	record, err := client.FetchCurrentWeather(t.Context(), "London")
	require.NoError(t, err)
	assert.Equal(t, "London", record.City())
	requireOneCall(t, mock)
}

func TestNewClientFromSettings_Nil(t *testing.T) {
	t.Parallel()

	client := NewClientFromSettings(nil)
	assert.False(t, client.HasAPIKey())
}

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	settings := &conf.Settings{}
	settings.OpenWeather.Timeout = 2 * time.Second

	hc := NewHTTPClient(settings)
	t.Cleanup(hc.Close)
	require.NotNil(t, hc)

	nilHC := NewHTTPClient(nil)
	t.Cleanup(nilHC.Close)
	require.NotNil(t, nilHC)
}
