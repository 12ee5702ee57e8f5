// Package weather fetches current conditions for a city from the
// OpenWeatherMap API and normalizes them into an immutable Record.
package weather

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tphakala/weatherapp/internal/httpclient"
	"github.com/tphakala/weatherapp/internal/logger"
)

const (
	// DefaultBaseURL is the OpenWeatherMap 2.5 API root
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	providerName = "openweathermap"
	units        = "metric"

	// maxBodySize caps how much of a response body is read
	maxBodySize = 1 << 20

	opFetchCurrent = "fetch_current_weather"
)

// MetricsRecorder receives fetch outcomes. Implemented by
// observability/metrics.WeatherMetrics.
type MetricsRecorder interface {
	RecordWeatherFetch(provider, status string)
	RecordWeatherFetchError(provider, errorType string)
	RecordWeatherFetchDuration(provider string, duration float64)
	RecordWeatherProviderRequest(provider, method, statusCode string)
	UpdateWeatherGauges(temperature, humidity, pressure, windSpeed float64)
}

// Client calls the current weather endpoint. It holds only configuration set
// at construction and is safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	http    *httpclient.Client
	now     func() time.Time
	log     logger.Logger
	metrics MetricsRecorder
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API root; "/weather" is appended per request.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient sets the transport used for requests
func WithHTTPClient(hc *httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithClock sets the time source used for FetchedAt
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics sets a recorder for fetch metrics
func WithMetrics(m MetricsRecorder) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient returns a client for apiKey. An empty key is accepted; every
// fetch then fails with a ConfigurationError.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.New(nil)
	}
	if c.log == nil {
		c.log = GetLogger()
	}
	return c
}

// HasAPIKey reports whether the client was built with a non-empty key
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// FetchCurrentWeather issues one GET for city and maps the response.
// city is sent as given; callers trim and reject empty input.
//
// On failure the Record is zero and the error wraps one of ConfigurationError,
// NotFoundError, APIError, NetworkError or ParseError.
func (c *Client) FetchCurrentWeather(ctx context.Context, city string) (Record, error) {
	start := time.Now()
	record, err := c.fetchCurrent(ctx, city)
	c.recordMetrics(record, err, time.Since(start))
	return record, err
}

func (c *Client) fetchCurrent(ctx context.Context, city string) (Record, error) {
	log := c.log.WithContext(ctx).With(logger.String("city", city))

	if c.apiKey == "" {
		log.Warn("Weather fetch attempted without API key")
		return Record{}, newWeatherError(&ConfigurationError{}, opFetchCurrent, city)
	}

	requestURL := c.buildURL(city)
	log.Info("Fetching weather data", logger.String("url", maskAPIKey(requestURL, "appid")))

	resp, err := c.http.Get(ctx, requestURL)
	if err != nil {
		netErr := &NetworkError{Err: maskErrorURL(err, c.apiKey)}
		log.Warn("Weather request failed", logger.Error(netErr))
		return Record{}, newWeatherError(netErr, opFetchCurrent, city)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Debug("Failed to close response body", logger.Error(cerr))
		}
	}()

	if c.metrics != nil {
		c.metrics.RecordWeatherProviderRequest(providerName, http.MethodGet, strconv.Itoa(resp.StatusCode))
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return c.readRecord(log, resp, city)
	case http.StatusNotFound:
		log.Info("City not found", logger.Int("status_code", resp.StatusCode))
		return Record{}, newWeatherError(&NotFoundError{City: city}, opFetchCurrent, city)
	default:
		apiErr := &APIError{StatusCode: resp.StatusCode, Reason: statusReason(resp)}
		log.Warn("Weather API returned error status", logger.Int("status_code", resp.StatusCode))
		return Record{}, newWeatherError(apiErr, opFetchCurrent, city)
	}
}

func (c *Client) readRecord(log logger.Logger, resp *http.Response, city string) (Record, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		netErr := &NetworkError{Err: err}
		log.Warn("Failed to read weather response", logger.Error(netErr))
		return Record{}, newWeatherError(netErr, opFetchCurrent, city)
	}

	payload, err := decodeResponse(body)
	if err != nil {
		log.Warn("Failed to parse weather response", logger.Error(err))
		// decodeResponse only returns *ParseError
		parseErr, _ := err.(*ParseError)
		return Record{}, newWeatherError(parseErr, opFetchCurrent, city)
	}

	record := mapResponse(payload, c.now())
	log.Debug("Weather data mapped",
		logger.Int("temperature", record.TemperatureC()),
		logger.String("description", record.Description()))
	return record, nil
}

func (c *Client) buildURL(city string) string {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", units)
	return c.baseURL + "/weather?" + params.Encode()
}

func (c *Client) recordMetrics(record Record, err error, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}

	c.metrics.RecordWeatherFetchDuration(providerName, elapsed.Seconds())
	if err != nil {
		c.metrics.RecordWeatherFetch(providerName, "error")
		c.metrics.RecordWeatherFetchError(providerName, errorType(err))
		return
	}

	c.metrics.RecordWeatherFetch(providerName, "success")
	c.metrics.UpdateWeatherGauges(
		float64(record.TemperatureC()),
		float64(record.HumidityPct()),
		float64(record.PressureHPa()),
		record.WindSpeedMps(),
	)
}

// statusReason returns the reason phrase from resp.Status, falling back to the
// standard text for the code.
func statusReason(resp *http.Response) string {
	if _, reason, ok := strings.Cut(resp.Status, " "); ok && reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
