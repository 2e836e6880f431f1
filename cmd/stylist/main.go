// Command stylist runs the fashion shopping assistant: a demo of the four
// canonical queries, one-off questions, or the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/georgemunganga/stylist/internal/config"
	"github.com/georgemunganga/stylist/internal/logging"
	"github.com/georgemunganga/stylist/internal/modules/assistant"
	"github.com/georgemunganga/stylist/internal/modules/catalog"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "stylist",
	Short:         "Rule-based fashion shopping assistant",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")
	rootCmd.AddCommand(demoCmd, askCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app bundles the services every command needs.
type app struct {
	cfg       *config.Config
	logger    zerolog.Logger
	catalog   catalog.Service
	assistant assistant.Service
}

func newApp() (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	seed, err := catalog.LoadSeed(cfg.CatalogSeed)
	if err != nil {
		return nil, err
	}
	repo, err := catalog.NewMemoryRepository(seed)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	catalogService := catalog.NewService(repo, catalog.SystemClock, catalog.NewRand(cfg.ShippingSeed), logger)
	assistantService := assistant.NewService(catalogService, catalog.SystemClock, logger)

	logger.Debug().Str("seed", cfg.CatalogSeed).Msg("catalog loaded")
	return &app{
		cfg:       cfg,
		logger:    logger,
		catalog:   catalogService,
		assistant: assistantService,
	}, nil
}
