// Package bootstrap wires shared runtime dependencies for the command
// entrypoints.
package bootstrap

import (
	"fmt"

	"sunflowerpost/internal/cache"
	"sunflowerpost/internal/config"
	"sunflowerpost/internal/database"
	"sunflowerpost/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoData bool
	SeedUsers    int
}

// InitRuntime connects to the database and Redis and optionally seeds demo
// data. The Redis client may be nil when the server is unreachable; callers
// degrade gracefully.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seed.Run(db, seed.Options{NumUsers: opts.SeedUsers}); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}
