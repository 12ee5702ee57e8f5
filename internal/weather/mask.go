package weather

import (
	"net/url"
	"strings"

	"github.com/tphakala/weatherapp/internal/errors"
)

const maskedKey = "***MASKED***"

// maskAPIKey replaces the value of keyParam in rawURL's query string so the
// URL can be logged. URLs without that parameter are returned unchanged.
func maskAPIKey(rawURL, keyParam string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	q := u.Query()
	if !q.Has(keyParam) {
		return rawURL
	}

	q.Set(keyParam, maskedKey)
	u.RawQuery = q.Encode()
	return u.String()
}

// maskErrorURL masks the key inside a *url.Error, whose message otherwise
// repeats the full request URL.
func maskErrorURL(err error, apiKey string) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	masked := *urlErr
	masked.URL = maskAPIKey(urlErr.URL, "appid")
	if apiKey != "" {
		masked.URL = strings.ReplaceAll(masked.URL, apiKey, maskedKey)
	}
	return &masked
}
