package store

import (
	"context"
	"fmt"

	"github.com/desertthunder/kanban/internal/shared"
)

// Open returns the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg shared.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case shared.BackendFile, "":
		return NewFileStore(cfg.File.Dir)
	case shared.BackendSQLite:
		return OpenSQLiteStore(cfg.SQLite)
	case shared.BackendS3:
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
		defer cancel()
		return OpenS3Store(ctx, cfg.S3)
	case shared.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownBackend, cfg.Backend)
	}
}
