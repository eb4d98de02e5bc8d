package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kerbaras/pokedex/pkg/app"
	"github.com/kerbaras/pokedex/pkg/config"
	"github.com/kerbaras/pokedex/pkg/logging"
	"github.com/kerbaras/pokedex/pkg/metrics"
	"github.com/kerbaras/pokedex/pkg/pokeapi"
	"github.com/kerbaras/pokedex/pkg/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath  string
	logLevel    string
	metricsAddr string
	batchSize   int
)

var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "A terminal Pokédex",
	Long:  "Browse, search and filter Pokémon from PokéAPI with a TUI and CLI",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Launch TUI by default. Logs go to a file so they stay off the screen.
		env, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer env.close()

		return app.NewApp(env.controller).Run(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default ./pokedex.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address")
	rootCmd.PersistentFlags().IntVar(&batchSize, "batch-size", 0, "Pokémon fetched per aggregation batch")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(generationsCmd)
	rootCmd.AddCommand(exportCmd)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type environment struct {
	config     *config.Config
	logger     *zap.Logger
	controller *services.PokedexController
	cancel     context.CancelFunc
}

func (e *environment) close() {
	e.cancel()
	_ = e.logger.Sync()
}

// setup loads configuration, applies flag overrides and builds the
// controller every command shares.
func setup(cmd *cobra.Command, tui bool) (*environment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	if cmd.Flags().Changed("batch-size") {
		cfg.BatchSize = batchSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	logCfg := logging.Config{Level: cfg.LogLevel, Development: cfg.Development}
	if tui {
		logCfg.File = cfg.LogFile
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	collector := metrics.NewCollector("pokedex")
	if cfg.MetricsAddr != "" {
		go func() {
			if err := collector.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	client := pokeapi.NewClient(cfg.BaseURL,
		pokeapi.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		pokeapi.WithUserAgent(cfg.UserAgent),
		pokeapi.WithLogger(logger.Named("pokeapi")),
		pokeapi.WithMetrics(collector))

	exportDir, _ := os.Getwd()
	controller := services.NewPokedexControllerWithConfig(services.ControllerConfig{
		Source:      client,
		ExportDir:   exportDir,
		Logger:      logger,
		Metrics:     collector,
		BatchSize:   cfg.BatchSize,
		MaxPokemon:  cfg.MaxPokemon,
		Concurrency: cfg.Concurrency,
	})

	return &environment{
		config:     cfg,
		logger:     logger,
		controller: controller,
		cancel:     cancel,
	}, nil
}
