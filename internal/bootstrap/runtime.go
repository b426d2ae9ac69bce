// Package bootstrap wires the runtime dependencies shared by the commands.
package bootstrap

import (
	"context"
	"fmt"

	"readable/internal/cache"
	"readable/internal/config"
	"readable/internal/database"
	"readable/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedFixtures loads the initial board content after the schema is applied.
	SeedFixtures bool
}

// InitRuntime connects to DB and Redis and optionally loads the fixtures.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedFixtures {
		if err := seed.Fixtures(ctx, db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed fixtures: %w", err)
		}
	}

	return db, r, nil
}
