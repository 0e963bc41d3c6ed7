// Package redis publishes vote change notifications for the push-update channel.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/canopy-network/votecollector/pkg/governance"
	"github.com/canopy-network/votecollector/pkg/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// VoteUpdatedChannel carries one message per recalculated entity.
	VoteUpdatedChannel = "votecollector:vote-updated"
	// VoteUpdatesStream keeps recent notifications for consumers that reconnect.
	VoteUpdatesStream = "votecollector:vote-updates"

	DefaultStreamMaxLen = 10000
)

// VoteUpdate is the notification payload.
type VoteUpdate struct {
	Type     string `json:"type"`
	EntityID uint64 `json:"entityId"`
}

// NewVoteUpdate describes a tally change of ref.
func NewVoteUpdate(ref governance.EntityRef) VoteUpdate {
	return VoteUpdate{Type: ref.Kind.String(), EntityID: ref.ID}
}

// Client wraps the Redis client for vote change notifications.
type Client struct {
	client       *redis.Client
	logger       *zap.Logger
	streamMaxLen int64 // Max entries per stream (0 = unlimited)
}

// NewClient creates a new Redis client using environment variables for configuration.
// Environment variables:
//   - REDIS_HOST: Redis host (default: "localhost")
//   - REDIS_PORT: Redis port (default: "6379")
//   - REDIS_PASSWORD: Redis password (default: "")
//   - REDIS_DB: Redis database number (default: "0")
//   - REDIS_STREAM_MAXLEN: Max entries per stream (default: 10000, 0 = unlimited)
func NewClient(ctx context.Context, logger *zap.Logger) (*Client, error) {
	host := utils.Env("REDIS_HOST", "localhost")
	port := utils.Env("REDIS_PORT", "6379")
	password := utils.Env("REDIS_PASSWORD", "")
	db := utils.EnvInt("REDIS_DB", 0)
	streamMaxLen := int64(utils.EnvInt("REDIS_STREAM_MAXLEN", DefaultStreamMaxLen))

	addr := fmt.Sprintf("%s:%s", host, port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		PoolSize:     10,
		MinIdleConns: 2,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	logger.Info("Connected to Redis",
		zap.String("addr", addr),
		zap.Int("db", db),
		zap.Int64("streamMaxLen", streamMaxLen))

	return &Client{
		client:       rdb,
		logger:       logger,
		streamMaxLen: streamMaxLen,
	}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// Health checks if Redis is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// VoteUpdated publishes a change notification for ref on the channel and appends it to the
// stream. Both writes are attempted; the joined error is returned for the caller to count.
func (c *Client) VoteUpdated(ctx context.Context, ref governance.EntityRef) error {
	msg, err := json.Marshal(NewVoteUpdate(ref))
	if err != nil {
		return err
	}

	pubErr := c.client.Publish(ctx, VoteUpdatedChannel, msg).Err()
	if pubErr != nil {
		c.logger.Warn("Failed to publish Redis message",
			zap.String("channel", VoteUpdatedChannel),
			zap.Stringer("entity", ref),
			zap.Error(pubErr))
	}

	args := &redis.XAddArgs{
		Stream: VoteUpdatesStream,
		Values: map[string]any{"type": ref.Kind.String(), "entityId": ref.ID},
	}
	if c.streamMaxLen > 0 {
		args.MaxLen = c.streamMaxLen
		args.Approx = true
	}
	streamErr := c.client.XAdd(ctx, args).Err()
	if streamErr != nil {
		c.logger.Warn("Failed to add to Redis stream",
			zap.String("stream", VoteUpdatesStream),
			zap.Stringer("entity", ref),
			zap.Error(streamErr))
	}

	return errors.Join(pubErr, streamErr)
}
