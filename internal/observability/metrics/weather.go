package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WeatherMetrics contains Prometheus metrics for weather fetches
type WeatherMetrics struct {
	registry *prometheus.Registry

	weatherFetchesTotal     *prometheus.CounterVec
	weatherFetchErrorsTotal *prometheus.CounterVec
	weatherFetchDuration    *prometheus.HistogramVec

	weatherProviderRequestsTotal *prometheus.CounterVec

	// Last successfully fetched conditions
	weatherTemperatureGauge prometheus.Gauge
	weatherHumidityGauge    prometheus.Gauge
	weatherPressureGauge    prometheus.Gauge
	weatherWindSpeedGauge   prometheus.Gauge
}

// NewWeatherMetrics creates and registers new weather metrics
func NewWeatherMetrics(registry *prometheus.Registry) (*WeatherMetrics, error) {
	m := &WeatherMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *WeatherMetrics) initMetrics() {
	m.weatherFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_fetches_total",
			Help: "Total number of weather data fetch operations",
		},
		[]string{"provider", "status"}, // status: success, error
	)

	m.weatherFetchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_fetch_errors_total",
			Help: "Total number of weather fetch errors",
		},
		[]string{"provider", "error_type"}, // error_type: errors.ErrorCategory value
	)

	m.weatherFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "weather_fetch_duration_seconds",
			Help: "Time taken to fetch weather data",
			// 0.1s .. 51.2s
			Buckets: prometheus.ExponentialBuckets(BucketStart100ms, BucketFactor2, BucketCount10),
		},
		[]string{"provider"},
	)

	m.weatherProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_provider_requests_total",
			Help: "Total number of requests to weather providers",
		},
		[]string{"provider", "method", "status_code"},
	)

	m.weatherTemperatureGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "weather_temperature_celsius",
		Help: "Temperature of the last fetched city in Celsius",
	})

	m.weatherHumidityGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "weather_humidity_percentage",
		Help: "Humidity of the last fetched city",
	})

	m.weatherPressureGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "weather_pressure_hpa",
		Help: "Pressure of the last fetched city in hPa",
	})

	m.weatherWindSpeedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "weather_wind_speed_mps",
		Help: "Wind speed of the last fetched city in meters per second",
	})
}

func (m *WeatherMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.weatherFetchesTotal,
		m.weatherFetchErrorsTotal,
		m.weatherFetchDuration,
		m.weatherProviderRequestsTotal,
		m.weatherTemperatureGauge,
		m.weatherHumidityGauge,
		m.weatherPressureGauge,
		m.weatherWindSpeedGauge,
	}
}

// Describe implements the Collector interface
func (m *WeatherMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors() {
		c.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *WeatherMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors() {
		c.Collect(ch)
	}
}

// RecordWeatherFetch records a weather fetch operation
func (m *WeatherMetrics) RecordWeatherFetch(provider, status string) {
	m.weatherFetchesTotal.WithLabelValues(provider, status).Inc()
}

// RecordWeatherFetchError records a weather fetch error
func (m *WeatherMetrics) RecordWeatherFetchError(provider, errorType string) {
	m.weatherFetchErrorsTotal.WithLabelValues(provider, errorType).Inc()
}

// RecordWeatherFetchDuration records the duration of a weather fetch in seconds
func (m *WeatherMetrics) RecordWeatherFetchDuration(provider string, duration float64) {
	m.weatherFetchDuration.WithLabelValues(provider).Observe(duration)
}

// RecordWeatherProviderRequest records a request that reached the provider
func (m *WeatherMetrics) RecordWeatherProviderRequest(provider, method, statusCode string) {
	m.weatherProviderRequestsTotal.WithLabelValues(provider, method, statusCode).Inc()
}

// UpdateWeatherGauges sets the gauges to the last fetched conditions
func (m *WeatherMetrics) UpdateWeatherGauges(temperature, humidity, pressure, windSpeed float64) {
	m.weatherTemperatureGauge.Set(temperature)
	m.weatherHumidityGauge.Set(humidity)
	m.weatherPressureGauge.Set(pressure)
	m.weatherWindSpeedGauge.Set(windSpeed)
}
