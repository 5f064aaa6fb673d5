package watchlist

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"anilistbot/pkg/database"
	"anilistbot/pkg/utils"
)

// Open builds the configured backend. The returned close function releases
// its connection.
func Open(ctx context.Context, cfg utils.StoreConfig, logger *zap.Logger) (Store, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Backend {
	case "", "sqlite":
		dbCfg := database.DefaultConfig()
		db, err := database.Open(dbCfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("db migrate: %w", err)
		}
		logger.Info("watchlist store ready", zap.String("backend", "sqlite"), zap.String("path", dbCfg.Path))
		return NewRepo(db), db.Close, nil
	case "redis":
		client, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("watchlist store ready", zap.String("backend", "redis"))
		return NewRedisStore(client), client.Close, nil
	case "memory":
		return NewMemoryStore(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
