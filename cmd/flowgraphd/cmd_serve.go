package main

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/fluxwire/flowgraph/catalog"
	"github.com/fluxwire/flowgraph/internal/logging"
	"github.com/fluxwire/flowgraph/postgres"
	"github.com/fluxwire/flowgraph/server"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the flow document HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "path to yaml config")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errors.New("database_url is not set (config or DATABASE_URL)")
	}

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	log := logging.New("flowgraphd")

	pool, err := pgxpool.New(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	store := postgres.New(pool)
	if err := store.CreateSchema(cmd.Context()); err != nil {
		return fmt.Errorf("schema: %w", err)
	}

	providers := &server.StaticProviders{
		ProviderModels: map[string][]string{
			"openai":    {"gpt-4o", "gpt-4o-mini"},
			"anthropic": {"claude-sonnet-4-5", "claude-haiku-4-5"},
			"ollama":    {"llama3.1", "qwen2.5"},
		},
	}

	app := server.New(store, catalog.Builtin(), providers)
	log.Info("listening", "addr", cfg.Listen)
	return app.Listen(cfg.Listen)
}
