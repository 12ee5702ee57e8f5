package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configcmd "github.com/tphakala/weatherapp/cmd/config"
	"github.com/tphakala/weatherapp/cmd/current"
	"github.com/tphakala/weatherapp/cmd/serve"
	"github.com/tphakala/weatherapp/internal/conf"
	"github.com/tphakala/weatherapp/internal/errors"
	"github.com/tphakala/weatherapp/internal/logger"
)

// RootCommand creates and returns the root command. Settings are loaded into
// settings before any subcommand runs.
func RootCommand(settings *conf.Settings) *cobra.Command {
	var centralLogger *logger.CentralLogger

	rootCmd := &cobra.Command{
		Use:          "weatherapp",
		Short:        "Current weather from OpenWeatherMap",
		Long:         "Look up current weather conditions for a city in the terminal or through a web interface.",
		SilenceUsage: true,
	}

	// Set up the global flags for the root command.
	if err := setupFlags(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "error setting up flags: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(
		serve.Command(settings),
		current.Command(settings),
		configcmd.Command(settings),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := conf.Load()
		if err != nil {
			return err
		}
		*settings = *loaded

		centralLogger, err = initialize(settings)
		return err
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return centralLogger.Close()
	}

	return rootCmd
}

// initialize sets up the global logger from the loaded settings.
func initialize(settings *conf.Settings) (*logger.CentralLogger, error) {
	if settings.Debug {
		settings.Logging.DefaultLevel = string(logger.LogLevelDebug)
		if settings.Logging.Console != nil {
			settings.Logging.Console.Level = string(logger.LogLevelDebug)
		}
	}

	cl, err := logger.NewCentralLogger(&settings.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.SetGlobal(cl)

	log := cl.Module("cmd")
	log.Debug("configuration loaded",
		logger.Bool("api_key_configured", settings.HasAPIKey()),
		logger.String("endpoint", settings.OpenWeather.Endpoint))

	errors.ClearErrorHooks()
	if settings.Debug {
		errors.AddErrorHook(errorTraceHook(cl.Module("errors")))
	}

	return cl, nil
}

// errorTraceHook logs every built error with its category and component.
func errorTraceHook(log logger.Logger) errors.ErrorHook {
	return func(ee *errors.EnhancedError) {
		log.Debug("error built",
			logger.String("category", ee.GetCategory()),
			logger.String("component", ee.GetComponent()),
			logger.String("message", errors.ScrubMessage(ee.Error())))
	}
}

// setupFlags defines flags that are global to the command line interface.
func setupFlags(rootCmd *cobra.Command) error {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default ./config.yaml or $HOME/.config/weatherapp/config.yaml)")
	flags.BoolP("debug", "d", false, "Enable debug output")
	flags.String("log-level", logger.DefaultLogLevel, "Log level (trace, debug, info, warn, error)")
	flags.String("endpoint", conf.DefaultEndpoint, "OpenWeatherMap API base URL")
	flags.Duration("timeout", conf.DefaultTimeout, "Timeout for weather API requests")

	bindings := map[string]string{
		"config":                "config",
		"debug":                 "debug",
		"logging.defaultlevel":  "log-level",
		"logging.console.level": "log-level",
		"openweather.endpoint":  "endpoint",
		"openweather.timeout":   "timeout",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("error binding flag %s: %w", flag, err)
		}
	}

	return nil
}
