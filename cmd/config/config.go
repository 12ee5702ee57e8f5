// Package config implements the command that prints the effective configuration.
package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/weatherapp/internal/conf"
)

// Command creates the config command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long:  "Print the configuration after defaults, config file, .env and environment variables are applied. The API key is masked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := settings.YAML()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	return cmd
}
