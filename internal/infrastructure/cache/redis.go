package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-analyzer/internal/config"
	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
)

const detailsKeyPrefix = "solana:tx:"

// ErrCacheMiss indicates the key was not found in cache
var ErrCacheMiss = errors.New("cache miss")

// RedisCache stores transaction details in Redis. Confirmed transactions do
// not change, so entries are shared across instances until their TTL expires.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection
func NewRedisCache(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Connected to Redis",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Duration("ttl", ttl),
	)

	return NewRedisCacheWithClient(client, ttl, logger), nil
}

// NewRedisCacheWithClient wraps an existing client
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// DetailsKey returns the cache key for a transaction signature
func DetailsKey(signature string) string {
	return detailsKeyPrefix + signature
}

// GetTransactionDetails loads cached details for signature
func (c *RedisCache) GetTransactionDetails(ctx context.Context, signature string) (*entities.TransactionDetails, error) {
	val, err := c.client.Get(ctx, DetailsKey(signature)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get transaction details from cache: %w", err)
	}

	var details entities.TransactionDetails
	if err := json.Unmarshal(val, &details); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached transaction details: %w", err)
	}
	return &details, nil
}

// SetTransactionDetails caches details under their signature
func (c *RedisCache) SetTransactionDetails(ctx context.Context, details *entities.TransactionDetails) error {
	data, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction details: %w", err)
	}

	if err := c.client.Set(ctx, DetailsKey(details.Signature), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set transaction details cache: %w", err)
	}
	return nil
}

// HealthCheck checks if Redis is reachable
func (c *RedisCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
