package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/coxdev/internal/logging"
)

var (
	logFormat   string
	logLevel    string
	metricsAddr string

	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "coxfit",
	Short: "Fit and benchmark Cox proportional-hazards models on coxdev",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load() // .env is optional; missing file is not an error

		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			level = zerolog.InfoLevel
		}
		log = logging.New(logging.Config{Level: level, Format: logging.Format(logFormat)})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format: text or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")

	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(benchCmd)
}
