package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/Fukolomka/Sitea/internal/catalog"
	"github.com/Fukolomka/Sitea/internal/config"
)

// NewCatalogCache builds the catalog read cache selected by CACHE_TYPE.
// The returned client is nil for the in-memory cache.
func NewCatalogCache(ctx context.Context, cfg config.CacheConfig) (catalog.Cache, redis.UniversalClient, error) {
	if cfg.Type != config.CacheTypeRedis {
		slog.Info(LogMsgUsingMemCache, "size", cfg.Size, "ttl", cfg.TTL)
		return catalog.NewMemoryCache(cfg.Size, cfg.TTL), nil, nil
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.RedisAddr},
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf(ErrMsgRedisUnreachable, cfg.RedisAddr, err)
	}

	slog.Info(LogMsgUsingRedisCache, "addr", cfg.RedisAddr, "ttl", cfg.TTL)
	return catalog.NewRedisCache(client, cfg.TTL), client, nil
}
