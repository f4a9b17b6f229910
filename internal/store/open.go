package store

import (
	"context"
	"fmt"

	"github.com/amterp/boardkit/internal/config"
)

// Open creates the backend selected by cfg.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	paths := cfg.Paths()

	switch cfg.Storage.Backend {
	case config.BackendFile, "":
		return NewFileStore(paths), nil
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendSQLite:
		path := cfg.Storage.SQLite.Path
		if path == "" {
			path = paths.SQLitePath()
		}
		return OpenSQLiteStore(path)
	case config.BackendS3:
		return OpenS3Store(ctx, cfg.Storage.S3)
	case config.BackendRedis:
		return OpenRedisStore(ctx, cfg.Storage.Redis)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
