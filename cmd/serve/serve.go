// Package serve implements the command that runs the weather web interface.
package serve

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/tphakala/weatherapp/internal/api"
	"github.com/tphakala/weatherapp/internal/conf"
	"github.com/tphakala/weatherapp/internal/logger"
	"github.com/tphakala/weatherapp/internal/observability"
	"github.com/tphakala/weatherapp/internal/weather"
)

// Command creates the serve command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the weather web interface",
		Long:  "Start the HTTP server with the city search page, the JSON weather endpoint, /healthz and /metrics.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return Run(ctx, settings)
		},
	}

	// Set up flags specific to the serve command
	if err := setupFlags(cmd); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

// setupFlags configures flags specific to the serve command.
func setupFlags(cmd *cobra.Command) error {
	cmd.Flags().String("host", conf.DefaultHost, "Interface address to listen on")
	cmd.Flags().Int("port", conf.DefaultPort, "Port to listen on")

	if err := viper.BindPFlag("webserver.host", cmd.Flags().Lookup("host")); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	if err := viper.BindPFlag("webserver.port", cmd.Flags().Lookup("port")); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}

// Run serves until ctx is canceled or the server fails.
func Run(ctx context.Context, settings *conf.Settings) error {
	log := logger.Global().Module("cmd").Module("serve")

	if !settings.HasAPIKey() {
		log.Warn("No OpenWeatherMap API key found! Please set the " + conf.APIKeyEnvVar + " environment variable.")
	}

	m, err := observability.NewMetrics()
	if err != nil {
		return err
	}

	hc := weather.NewHTTPClient(settings)
	defer hc.Close()
	hc.SetAfterResponseHook(func(req *http.Request, resp *http.Response, err error) {
		status := 0
		if err == nil && resp != nil {
			status = resp.StatusCode
		}
		m.HTTP.RecordOutboundRequest(req.URL.Host, status)
	})

	client := weather.NewClientFromSettings(settings,
		weather.WithHTTPClient(hc),
		weather.WithMetrics(m.Weather),
	)

	server, err := api.New(api.ConfigFromSettings(settings), client, api.WithMetrics(m))
	if err != nil {
		return err
	}

	log.Info("Starting weather web interface",
		logger.String("address", settings.WebServer.Address()),
		logger.Bool("api_key_configured", settings.HasAPIKey()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutdown signal received, initiating graceful shutdown")
		return server.Shutdown(context.WithoutCancel(gctx))
	})

	return g.Wait()
}
