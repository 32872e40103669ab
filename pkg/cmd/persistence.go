package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dexforge/dexforge/pkg/persistence"
	"github.com/dexforge/dexforge/pkg/persistence/file"
	"github.com/dexforge/dexforge/pkg/persistence/postgresql"
	"github.com/dexforge/dexforge/pkg/persistence/redis"
)

// NewPersistence picks a backend from the database URL scheme. Postgres and
// Redis URLs get their native backends; anything else is treated as a file
// path.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) persistence.Persistence {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to initialize postgres persistence: %w", err))
		}

		return p
	case strings.HasPrefix(databaseURL, "redis://"), strings.HasPrefix(databaseURL, "rediss://"):
		p, err := redis.NewPersistence(ctx, databaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to initialize redis persistence: %w", err))
		}

		return p
	default:
		return file.NewPersistence(databaseURL)
	}
}
