package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"amenity-booking/internal/infra/cache"
	"amenity-booking/internal/pkg/config"
	"amenity-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewSlotCache,
	),
)

// NewSlotCache falls back to a no-op cache when Redis is disabled or unreachable.
func NewSlotCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.SlotCache {
	if !cfg.Redis.Enabled {
		return cache.NewNoopSlotCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, slot cache disabled", "addr", cfg.Redis.Addr, "error", err.Error())
		_ = client.Close()
		return cache.NewNoopSlotCache()
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	logger.Info("redis slot cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.SlotCacheTTL)
	return cache.NewRedisSlotCache(client, cfg.Redis.SlotCacheTTL)
}
