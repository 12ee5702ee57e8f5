package weather

import (
	"github.com/tphakala/weatherapp/internal/conf"
	"github.com/tphakala/weatherapp/internal/httpclient"
)

// NewHTTPClient returns the transport configured by settings. Commands share
// it between the weather client and icon downloads.
func NewHTTPClient(settings *conf.Settings) *httpclient.Client {
	cfg := httpclient.DefaultConfig()
	if settings != nil && settings.OpenWeather.Timeout > 0 {
		cfg.DefaultTimeout = settings.OpenWeather.Timeout
	}
	return httpclient.New(&cfg)
}

// NewClientFromSettings builds a client from loaded settings. Options are
// applied after the settings, so they can override the endpoint or transport.
func NewClientFromSettings(settings *conf.Settings, opts ...Option) *Client {
	if settings == nil {
		return NewClient("", opts...)
	}

	base := []Option{
		WithBaseURL(settings.OpenWeather.Endpoint),
	}
	return NewClient(settings.OpenWeather.APIKey, append(base, opts...)...)
}
