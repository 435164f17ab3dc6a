package app

import (
	"context"
	"fmt"

	"github.com/glabrego/rickmorty-cli/internal/config"
	"github.com/glabrego/rickmorty-cli/internal/storage"
)

// OpenStore opens and prepares the preference backend selected in cfg.
func OpenStore(ctx context.Context, cfg config.Config) (storage.KV, error) {
	switch cfg.Store {
	case config.StoreRedis:
		kv, err := storage.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("storage init error: %w", err)
		}
		return kv, nil
	case config.StoreSQLite, "":
		kv, err := storage.NewSQLite(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("storage init error: %w", err)
		}
		if err := kv.Init(ctx); err != nil {
			_ = kv.Close()
			return nil, fmt.Errorf("storage schema error: %w", err)
		}
		if err := kv.CheckWritable(ctx); err != nil {
			_ = kv.Close()
			return nil, fmt.Errorf("storage write check failed (%v). Verify RICKMORTY_DB_PATH is writable: %s", err, cfg.DBPath)
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
