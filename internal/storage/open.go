package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/annel0/memory-isle/internal/config"
	"github.com/annel0/memory-isle/internal/logging"
)

// Open создаёт репозиторий по конфигурации
func Open(ctx context.Context, cfg config.StorageConfig) (SnapshotRepo, error) {
	switch cfg.Backend {
	case "", "memory":
		logging.Warn("⚠️ Сохранения хранятся в памяти и будут потеряны при выходе")
		return NewMemorySnapshotRepo(), nil
	case "badger":
		return NewBadgerSnapshotRepo(cfg.Path)
	case "redis":
		return NewRedisSnapshotRepo(ctx, &RedisConfig{
			Addr:      cfg.GetRedisAddr(),
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.KeyPrefix,
		})
	case "maria":
		return NewMariaSnapshotRepo(ctx, cfg.GetMariaDSN())
	case "tiered":
		cold, err := NewMariaSnapshotRepo(ctx, cfg.GetMariaDSN())
		if err != nil {
			return nil, err
		}
		hot, err := NewRedisSnapshotRepo(ctx, &RedisConfig{
			Addr:      cfg.GetRedisAddr(),
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.KeyPrefix,
			TTL:       time.Hour,
		})
		if err != nil {
			cold.Close()
			return nil, err
		}
		return NewTieredSnapshotRepo(hot, cold), nil
	default:
		return nil, fmt.Errorf("неизвестное хранилище: %q", cfg.Backend)
	}
}
