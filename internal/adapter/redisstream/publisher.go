// Package redisstream moves notifications through a Redis stream so a
// separate process can deliver them.
package redisstream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"

	"github.com/heartmarshall/carematch-backend/internal/config"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

const (
	fieldKind    = "kind"
	fieldPayload = "payload"
)

// NewClient opens a Redis client for cfg.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Publisher appends notifications to a stream.
type Publisher struct {
	rdb    *redis.Client
	stream string
	maxLen int64
	log    *slog.Logger
}

// NewPublisher creates a Publisher writing to cfg.Stream, trimmed to about
// cfg.MaxLen entries.
func NewPublisher(logger *slog.Logger, rdb *redis.Client, cfg config.RedisConfig) *Publisher {
	return &Publisher{
		rdb:    rdb,
		stream: cfg.Stream,
		maxLen: cfg.MaxLen,
		log:    logger.With("adapter", "redisstream"),
	}
}

// Send implements notify.Sender with XADD.
func (p *Publisher) Send(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("redisstream: encode: %w", err)
	}

	id, err := p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{
			fieldKind:    n.Kind.String(),
			fieldPayload: string(payload),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("redisstream: xadd: %w", err)
	}

	p.log.DebugContext(ctx, "notification published",
		slog.String("stream", p.stream),
		slog.String("id", id),
		slog.String("kind", n.Kind.String()),
	)
	return nil
}

// Ping checks the connection.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}
