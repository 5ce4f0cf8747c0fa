package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wassalha/wassalha/internal/domain/model"
)

// NotificationCache fronts the notifications table with a per-user Redis
// entry. Cache misses and backend failures fall through to the repository;
// the cache is never authoritative.
type NotificationCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewNotificationCache connects to Redis at addr and verifies the connection.
func NewNotificationCache(addr string, ttl time.Duration, logger *slog.Logger) (*NotificationCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to redis", slog.String("addr", addr))
	return &NotificationCache{client: client, ttl: ttl, logger: logger}, nil
}

func notificationKey(userID int64) string {
	return fmt.Sprintf("user:%d:notifications", userID)
}

// Get returns the cached notification list for userID, if present.
func (c *NotificationCache) Get(ctx context.Context, userID int64) ([]model.Notification, bool) {
	raw, err := c.client.Get(ctx, notificationKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("notification cache read failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return nil, false
	}
	var notifications []model.Notification
	if err := json.Unmarshal([]byte(raw), &notifications); err != nil {
		c.logger.Warn("notification cache entry corrupt, dropping", slog.Int64("user_id", userID))
		c.Invalidate(ctx, userID)
		return nil, false
	}
	return notifications, true
}

// Set stores the notification list for userID with the configured TTL.
func (c *NotificationCache) Set(ctx context.Context, userID int64, notifications []model.Notification) {
	raw, err := json.Marshal(notifications)
	if err != nil {
		c.logger.Warn("notification cache marshal failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return
	}
	if err := c.client.Set(ctx, notificationKey(userID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("notification cache write failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
	}
}

// Invalidate drops the cached list for userID.
func (c *NotificationCache) Invalidate(ctx context.Context, userID int64) {
	if err := c.client.Del(ctx, notificationKey(userID)).Err(); err != nil {
		c.logger.Warn("notification cache invalidate failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
	}
}

// Close releases the Redis connection.
func (c *NotificationCache) Close() error {
	return c.client.Close()
}

// NoopCache satisfies the cache contract without a backend: every read is a
// miss, writes are discarded.
type NoopCache struct{}

func (NoopCache) Get(context.Context, int64) ([]model.Notification, bool) { return nil, false }
func (NoopCache) Set(context.Context, int64, []model.Notification)        {}
func (NoopCache) Invalidate(context.Context, int64)                       {}
