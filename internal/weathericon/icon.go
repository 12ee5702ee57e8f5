// Package weathericon downloads the PNG icons that accompany OpenWeatherMap
// conditions.
package weathericon

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"strings"

	"github.com/tphakala/weatherapp/internal/errors"
	"github.com/tphakala/weatherapp/internal/httpclient"
)

const (
	// BaseURL is the icon host root
	BaseURL = "https://openweathermap.org/img/wn"

	// maxIconSize caps the downloaded body; real icons are a few KB
	maxIconSize = 512 << 10

	componentName = "weathericon"
)

// URL returns the 2x icon URL for an icon code such as "01d".
func URL(code string) string {
	return fmt.Sprintf("%s/%s@2x.png", BaseURL, code)
}

// Fetch downloads and decodes the icon for code. The raw PNG bytes are
// returned alongside the decoded image so callers can save them unchanged.
func Fetch(ctx context.Context, client *httpclient.Client, code string) (image.Image, []byte, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil, errors.Newf("icon code is empty").
			Component(componentName).
			Category(errors.CategoryValidation).
			Build()
	}
	if client == nil {
		client = httpclient.New(nil)
	}

	iconURL := URL(code)
	resp, err := client.Get(ctx, iconURL)
	if err != nil {
		return nil, nil, errors.New(err).
			Component(componentName).
			Category(errors.CategoryImageFetch).
			Context("icon", code).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, errors.Newf("icon request failed with status %d", resp.StatusCode).
			Component(componentName).
			Category(errors.CategoryImageFetch).
			Context("icon", code).
			Context("status_code", resp.StatusCode).
			Build()
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIconSize))
	if err != nil {
		return nil, nil, errors.New(fmt.Errorf("failed to read icon body: %w", err)).
			Component(componentName).
			Category(errors.CategoryImageFetch).
			Context("icon", code).
			Build()
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, errors.New(fmt.Errorf("failed to decode icon PNG: %w", err)).
			Component(componentName).
			Category(errors.CategoryFileParsing).
			Context("icon", code).
			Build()
	}

	return img, data, nil
}
