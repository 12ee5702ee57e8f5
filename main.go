package main

import (
	"context"
	"os"

	"github.com/tphakala/weatherapp/cmd"
	"github.com/tphakala/weatherapp/internal/conf"
)

func main() {
	settings := &conf.Settings{}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
