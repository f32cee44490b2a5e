package caching

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"mostruario/pkg/logger"
)

const keyPrefix = "mostruario:"

type CacheService interface {
	// Image probe caching
	GetImageProbe(ctx context.Context, url string) (exists bool, found bool, err error)
	SetImageProbe(ctx context.Context, url string, exists bool, ttl time.Duration) error

	// Cache invalidation
	InvalidateAllCache(ctx context.Context) error

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
	Close() error
}

// Key builds a namespaced key. Keys built this way are removed by InvalidateAllCache.
func Key(parts ...string) string {
	return keyPrefix + strings.Join(parts, ":")
}

func imageProbeKey(url string) string {
	return fmt.Sprintf("%simage-probe:%s", keyPrefix, url)
}

func encodeProbe(exists bool) string {
	if exists {
		return "1"
	}
	return "0"
}

type redisCacheService struct {
	client *redis.Client
	log    *logger.Logger
}

func NewRedisCacheService(addr, password string, db int, log *logger.Logger) CacheService {
	// Accept redis://host:port as well as host:port
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Warn("redis ping failed on initialization", "addr", parsedAddr, "error", pingErr)
	} else {
		log.Debug("redis connection established", "addr", parsedAddr)
	}

	return &redisCacheService{client: client, log: log}
}

func (r *redisCacheService) GetImageProbe(ctx context.Context, url string) (bool, bool, error) {
	val, err := r.GetString(ctx, imageProbeKey(url))
	if err != nil || val == "" {
		return false, false, err
	}
	return val == "1", true, nil
}

func (r *redisCacheService) SetImageProbe(ctx context.Context, url string, exists bool, ttl time.Duration) error {
	return r.client.Set(ctx, imageProbeKey(url), encodeProbe(exists), ttl).Err()
}

func (r *redisCacheService) InvalidateAllCache(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, keyPrefix+"*").Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCacheService) Close() error {
	return r.client.Close()
}
