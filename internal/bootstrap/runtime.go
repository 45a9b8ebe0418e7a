// Package bootstrap establishes runtime dependencies for commands.
package bootstrap

import (
	"fmt"
	"strings"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/seed"

	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates an empty development database with demo
	// users, groups and posts. Ignored outside the development env.
	SeedDemoData bool
}

// InitRuntime connects to the database and Redis and optionally seeds demo
// data. The cache degrades to a no-op when Redis is unreachable.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *cache.Cache, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	c := cache.New(cfg.RedisURL)

	if opts.SeedDemoData && strings.EqualFold(cfg.Env, "development") {
		var users int64
		if err := db.Table("users").Count(&users).Error; err != nil {
			return nil, nil, fmt.Errorf("checking for existing data: %w", err)
		}
		if users == 0 {
			if err := seed.Seed(db, seed.Options{}); err != nil {
				return nil, nil, fmt.Errorf("seeding demo data: %w", err)
			}
		}
	}

	return db, c, nil
}
