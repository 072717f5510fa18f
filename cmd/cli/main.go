package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/rainy-day/cmd/cli/commands"
	"github.com/couchcryptid/rainy-day/internal/adapter/openweather"
	"github.com/couchcryptid/rainy-day/internal/advisor"
	"github.com/couchcryptid/rainy-day/internal/config"
	"github.com/couchcryptid/rainy-day/internal/domain"
	"github.com/couchcryptid/rainy-day/internal/observability"
)

var app = &commands.AppContext{Out: os.Stdout}

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Rainy Day - flood-risk planting advice",
		Long:  `Scores 24-hour rainfall against soil drainage and tells you whether it is safe to plant.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(commands.AssessCmd(app))
	rootCmd.AddCommand(commands.SoilsCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads config and wires the advisor. Publishing is a service
// concern and stays off here.
func initApp() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "warn"
	}
	if os.Getenv("LOG_FORMAT") == "" {
		cfg.LogFormat = "text"
	}
	logger := observability.NewLoggerTo(os.Stderr, cfg)
	metrics := observability.NewMetricsWith(prometheus.NewRegistry())

	var weather domain.WeatherProvider
	if cfg.WeatherEnabled {
		weather = openweather.NewFromConfig(cfg, metrics, logger)
	}
	app.Advisor = advisor.New(weather, nil, logger, metrics)
	return nil
}
