package current

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/weatherapp/internal/httpclient"
	"github.com/tphakala/weatherapp/internal/weather"
	"github.com/tphakala/weatherapp/internal/weathericon"
)

const londonResponse = `{
  "weather": [{"description": "clear sky", "icon": "01d"}],
  "main": {"temp": 15.4, "feels_like": 14.9, "pressure": 1012, "humidity": 60},
  "wind": {"speed": 3.2},
  "sys": {"country": "GB"},
  "name": "London"
}`

var fixedTime = time.Date(2026, time.March, 14, 12, 34, 56, 0, time.Local)

type testEnv struct {
	client *weather.Client
	http   *httpclient.Client
	mock   *httpmock.MockTransport
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mock := httpmock.NewMockTransport()
	mock.RegisterResponder(http.MethodGet, weather.DefaultBaseURL+"/weather", func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("q") != "London" {
			return httpmock.NewStringResponse(http.StatusNotFound, `{"cod":"404"}`), nil
		}
		return httpmock.NewStringResponse(http.StatusOK, londonResponse), nil
	})

	hc := httpclient.New(&httpclient.Config{Transport: mock})
	t.Cleanup(hc.Close)

	return &testEnv{
		client: weather.NewClient("test-key",
			weather.WithHTTPClient(hc),
			weather.WithClock(func() time.Time { return fixedTime })),
		http:   hc,
		mock:   mock,
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
}

func (e *testEnv) options() Options {
	return Options{Out: e.out, ErrOut: e.errOut}
}

func TestRun_Card(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	require.NoError(t, Run(t.Context(), env.client, env.http, "  London ", env.options()))

	want := "London, GB\n" +
		"15°C\n" +
		"Clear sky\n\n" +
		"Feels like:   15°C\n" +
		"Humidity:     60%\n" +
		"Wind speed:   3.2 m/s\n" +
		"Pressure:     1012 hPa\n" +
		"Last updated: 12:34:56\n"
	assert.Equal(t, want, env.out.String())
	assert.Contains(t, env.errOut.String(), loadingMessage)
	assert.Equal(t, 1, env.mock.GetTotalCallCount())
}

func TestRun_JSON(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	opts := env.options()
	opts.JSON = true
	opts.NoSpinner = true

	require.NoError(t, Run(t.Context(), env.client, env.http, "London", opts))

	var snapshot weather.RecordSnapshot
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &snapshot))
	assert.Equal(t, "London", snapshot.City)
	assert.Equal(t, "clear sky", snapshot.Description)
	assert.InDelta(t, 3.2, snapshot.WindSpeedMps, 1e-9)
	assert.Empty(t, env.errOut.String())
}

func TestRun_EmptyCity(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	err := Run(t.Context(), env.client, env.http, "   ", env.options())
	require.Error(t, err)
	assert.Equal(t, "Error\nPlease enter a city name\n", env.out.String())
	assert.Equal(t, 0, env.mock.GetTotalCallCount())
}

func TestRun_NotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	opts := env.options()
	opts.NoSpinner = true

	err := Run(t.Context(), env.client, env.http, "Nonexistentville", opts)
	require.Error(t, err)

	var notFound *weather.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Error\nCity 'Nonexistentville' not found. Please check the spelling and try again.\n", env.out.String())
}

func TestRun_IconOut(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	var icon bytes.Buffer
	require.NoError(t, png.Encode(&icon, image.NewRGBA(image.Rect(0, 0, 100, 100))))
	env.mock.RegisterResponder(http.MethodGet, weathericon.URL("01d"), httpmock.NewBytesResponder(http.StatusOK, icon.Bytes()))

	opts := env.options()
	opts.NoSpinner = true
	opts.IconOut = filepath.Join(t.TempDir(), "icon.png")

	require.NoError(t, Run(t.Context(), env.client, env.http, "London", opts))

	saved, err := os.ReadFile(opts.IconOut)
	require.NoError(t, err)
	assert.Equal(t, icon.Bytes(), saved)
	assert.Contains(t, env.errOut.String(), "(100x100)")
	assert.Equal(t, 2, env.mock.GetTotalCallCount())
}
