package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dexforge/dexforge/pkg/cmd"
	"github.com/dexforge/dexforge/pkg/log"
	"github.com/dexforge/dexforge/pkg/otelhelper"
	"github.com/dexforge/dexforge/pkg/tokenlist"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9091

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "dexforge-api",
		Usage:                 "Create and manage DeFi app flows",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Database connection URL for persistence (postgres://, redis:// or a file path)",
				Value:   "./data",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (kafka, gochannel)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringSliceFlag{
				Name:    "token-source",
				Usage:   "Token list source as chainID=url, repeatable",
				Sources: cli.EnvVars("TOKEN_SOURCES"),
			},
			&cli.StringFlag{
				Name:    "token-refresh",
				Usage:   "Cron schedule for token list refreshes",
				Value:   "@every 30m",
				Sources: cli.EnvVars("TOKEN_REFRESH"),
			},
			&cli.BoolFlag{
				Name:    "enable-tracing",
				Usage:   "Export OTLP traces for API requests",
				Sources: cli.EnvVars("ENABLE_TRACING"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing DexForge API")

			if command.Bool("enable-tracing") {
				if _, err := otelhelper.NewTracer(ctx, "dexforge-api"); err != nil {
					return fmt.Errorf("failed to initialize tracer: %w", err)
				}
			}

			registry := cmd.NewRegistry(logger)
			persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(command.String("event-bus"), logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			catalog, err := buildTokenCatalog(ctx, logger, command)
			if err != nil {
				return err
			}

			if catalog != nil {
				defer catalog.Stop()
			}

			api := NewAPI(
				logger,
				persistence,
				registry,
				eventBus,
				catalog,
			)

			if err := api.Start(command.Int("port")); err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}

// buildTokenCatalog wires the token list catalog when sources are configured.
// The first refresh happens inline so the API starts with a populated catalog.
func buildTokenCatalog(ctx context.Context, logger *slog.Logger, command *cli.Command) (*tokenlist.Catalog, error) {
	entries := command.StringSlice("token-source")
	if len(entries) == 0 {
		return nil, nil
	}

	sources := make(map[string]string, len(entries))

	for _, entry := range entries {
		chainID, url, found := strings.Cut(entry, "=")
		if !found {
			return nil, fmt.Errorf("invalid token source %q, expected chainID=url", entry)
		}

		sources[chainID] = url
	}

	catalog := tokenlist.NewCatalog(logger, nil, sources)

	if err := catalog.Refresh(ctx); err != nil {
		logger.WarnContext(ctx, "Initial token list refresh failed", "error", err)
	}

	if err := catalog.Start(ctx, command.String("token-refresh")); err != nil {
		return nil, err
	}

	return catalog, nil
}
