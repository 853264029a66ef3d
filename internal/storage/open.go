package storage

import (
	"context"
	"fmt"

	"github.com/annel0/hexboard/internal/config"
)

// Open создаёт хранилище раскладок по конфигурации
func Open(ctx context.Context, cfg config.StoreConfig) (LayoutRepo, error) {
	switch backend := cfg.GetBackend(); backend {
	case "memory":
		return NewMemoryLayoutRepo(), nil
	case "badger":
		return NewBadgerLayoutRepo(cfg.BadgerDir, cfg.Compress)
	case "redis":
		return NewRedisLayoutRepo(ctx, &RedisConfig{
			Addr:      cfg.GetRedisAddr(),
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisPrefix,
			TTL:       cfg.RedisTTL,
		})
	default:
		return nil, fmt.Errorf("неизвестный бэкенд хранилища: %q", backend)
	}
}
