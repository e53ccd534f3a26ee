package cache

import (
	"time"

	"weatherlog.app/config"
	"weatherlog.app/errors"
)

// NewFromConfig builds the cache backend selected by configuration
func NewFromConfig(cfg *config.CacheConfig) (Cache, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryCache(), nil
	case "redis":
		redisCache, err := NewRedisCache(&RedisCacheConfig{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  time.Duration(cfg.RedisDialTimeout) * time.Second,
			ReadTimeout:  time.Duration(cfg.RedisReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.RedisWriteTimeout) * time.Second,
		})
		if err != nil {
			return nil, errors.NewExternalAPIError("connect to redis cache", err)
		}
		return redisCache, nil
	default:
		return nil, errors.NewConfigurationError("unsupported cache type: "+cfg.Type, nil)
	}
}
