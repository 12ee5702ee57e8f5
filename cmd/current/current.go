// Package current implements the terminal weather lookup command.
package current

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tphakala/weatherapp/internal/api"
	"github.com/tphakala/weatherapp/internal/conf"
	"github.com/tphakala/weatherapp/internal/errors"
	"github.com/tphakala/weatherapp/internal/httpclient"
	"github.com/tphakala/weatherapp/internal/logger"
	"github.com/tphakala/weatherapp/internal/weather"
	"github.com/tphakala/weatherapp/internal/weathericon"
	"github.com/tphakala/weatherapp/pkg/spinner"
)

const (
	loadingMessage = "Loading weather data..."
	iconFileMode   = 0o644
)

// Options control how the result is presented.
type Options struct {
	JSON        bool
	IconOut     string
	NoSpinner   bool
	Out, ErrOut io.Writer
}

// Command creates the current command.
func Command(settings *conf.Settings) *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:   "current <city>",
		Short: "Show the current weather for a city",
		Long:  "Fetch current conditions for a city from OpenWeatherMap and print them. Multi-word city names may be given unquoted.",
		Example: `  weatherapp current London
  weatherapp current New York --json
  weatherapp current Paris --icon-out paris.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Out = cmd.OutOrStdout()
			opts.ErrOut = cmd.ErrOrStderr()

			if !settings.HasAPIKey() {
				_, _ = fmt.Fprintf(opts.ErrOut, "Warning: No OpenWeatherMap API key found! Please set the %s environment variable.\n", conf.APIKeyEnvVar)
			}

			hc := weather.NewHTTPClient(settings)
			defer hc.Close()
			client := weather.NewClientFromSettings(settings, weather.WithHTTPClient(hc))

			err := Run(cmd.Context(), client, hc, strings.Join(args, " "), opts)
			if err != nil {
				// Run already printed the error card
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the weather record as JSON")
	cmd.Flags().StringVar(&opts.IconOut, "icon-out", "", "Download the condition icon PNG to this path")
	cmd.Flags().BoolVar(&opts.NoSpinner, "no-spinner", false, "Do not animate the loading indicator")

	return cmd
}

// Run fetches the weather for city and prints it to opts.Out. Errors are
// printed as an error card before being returned.
func Run(ctx context.Context, client *weather.Client, hc *httpclient.Client, city string, opts Options) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	log := logger.Global().Module("cmd").Module("current")

	city = strings.TrimSpace(city)
	if city == "" {
		err := errors.Newf("%s", api.MsgEmptyCity).
			Component("cmd").
			Category(errors.CategoryValidation).
			Build()
		printError(opts.Out, err)
		return err
	}

	record, err := fetch(ctx, client, city, opts)
	if err != nil {
		log.Debug("weather lookup failed", logger.String("city", city), logger.Error(err))
		printError(opts.Out, err)
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(record.Snapshot()); err != nil {
			return fmt.Errorf("failed to encode weather record: %w", err)
		}
	} else {
		printCard(opts.Out, record)
	}

	if opts.IconOut != "" {
		if err := saveIcon(ctx, hc, record.IconCode(), opts); err != nil {
			printError(opts.Out, err)
			return err
		}
	}

	return nil
}

type fetchResult struct {
	record weather.Record
	err    error
}

// fetch runs the lookup in a goroutine and animates the spinner until the
// result arrives on the completion channel.
func fetch(ctx context.Context, client *weather.Client, city string, opts Options) (weather.Record, error) {
	results := make(chan fetchResult, 1)
	go func() {
		record, err := client.FetchCurrentWeather(ctx, city)
		results <- fetchResult{record: record, err: err}
	}()

	if opts.NoSpinner {
		res := <-results
		return res.record, res.err
	}

	stop := make(chan struct{})
	stopped := make(chan struct{})
	s := spinner.NewSpinner(opts.ErrOut, loadingMessage)
	go func() {
		s.Run(stop, spinner.DefaultInterval)
		close(stopped)
	}()

	res := <-results
	close(stop)
	<-stopped

	return res.record, res.err
}

func saveIcon(ctx context.Context, hc *httpclient.Client, code string, opts Options) error {
	img, data, err := weathericon.Fetch(ctx, hc, code)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.IconOut, data, iconFileMode); err != nil {
		return errors.New(fmt.Errorf("failed to save icon: %w", err)).
			Component("cmd").
			Category(errors.CategoryFileIO).
			Context("path", opts.IconOut).
			Build()
	}

	bounds := img.Bounds()
	_, _ = fmt.Fprintf(opts.ErrOut, "Icon saved to %s (%dx%d)\n", opts.IconOut, bounds.Dx(), bounds.Dy())
	return nil
}

func printCard(w io.Writer, r weather.Record) {
	_, _ = fmt.Fprintf(w, "%s, %s\n", r.City(), r.Country())
	_, _ = fmt.Fprintf(w, "%d°C\n", r.TemperatureC())
	_, _ = fmt.Fprintf(w, "%s\n\n", api.Capitalize(r.Description()))
	_, _ = fmt.Fprintf(w, "Feels like:   %d°C\n", r.FeelsLikeC())
	_, _ = fmt.Fprintf(w, "Humidity:     %d%%\n", r.HumidityPct())
	_, _ = fmt.Fprintf(w, "Wind speed:   %s m/s\n", weather.FormatWindSpeed(r.WindSpeedMps()))
	_, _ = fmt.Fprintf(w, "Pressure:     %d hPa\n", r.PressureHPa())
	_, _ = fmt.Fprintf(w, "Last updated: %s\n", r.FetchedAt())
}

func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error\n%s\n", err.Error())
}
