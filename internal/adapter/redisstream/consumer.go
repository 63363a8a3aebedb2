package redisstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/heartmarshall/carematch-backend/internal/adapter/notify"
	"github.com/heartmarshall/carematch-backend/internal/config"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

const (
	defaultBatch = 16
	defaultBlock = 5 * time.Second
	maxBackoff   = 30 * time.Second
)

// Consumer reads notifications from a stream as a member of a consumer group
// and hands them to a Sender. Entries are acknowledged once delivered or once
// they turn out to be undeliverable; transient failures stay pending and are
// retried on the next start.
type Consumer struct {
	rdb    *redis.Client
	sender notify.Sender
	stream string
	group  string
	name   string
	batch  int64
	block  time.Duration
	log    *slog.Logger
}

// NewConsumer creates a Consumer named name in cfg.Group.
func NewConsumer(logger *slog.Logger, rdb *redis.Client, sender notify.Sender, cfg config.RedisConfig, name string) *Consumer {
	return &Consumer{
		rdb:    rdb,
		sender: sender,
		stream: cfg.Stream,
		group:  cfg.Group,
		name:   name,
		batch:  defaultBatch,
		block:  defaultBlock,
		log:    logger.With("adapter", "redisstream", "consumer", name),
	}
}

// Run consumes until ctx is cancelled. Pending entries left by an earlier
// run of this consumer are processed first.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.ensureGroup(ctx); err != nil {
		return err
	}

	for start := "0"; ; {
		last, err := c.poll(ctx, start)
		if err != nil {
			return err
		}
		if last == "" {
			break
		}
		start = last
	}

	c.log.InfoContext(ctx, "consumer started", slog.String("stream", c.stream), slog.String("group", c.group))

	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := c.poll(ctx, ">"); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.ErrorContext(ctx, "stream read failed",
				slog.String("error", err.Error()),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		backoff = time.Second
	}
}

func (c *Consumer) ensureGroup(ctx context.Context) error {
	err := c.rdb.XGroupCreateMkStream(ctx, c.stream, c.group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("redisstream: create group: %w", err)
	}
	return nil
}

// poll reads one batch. id ">" reads new entries; any other id reads this
// consumer's pending entries after it. Returns the id of the last entry seen,
// empty when the batch was empty.
func (c *Consumer) poll(ctx context.Context, id string) (string, error) {
	block := c.block
	if id != ">" {
		block = -1
	}

	streams, err := c.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.group,
		Consumer: c.name,
		Streams:  []string{c.stream, id},
		Count:    c.batch,
		Block:    block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redisstream: xreadgroup: %w", err)
	}

	last := ""
	for _, s := range streams {
		for _, msg := range s.Messages {
			last = msg.ID
			if c.handle(ctx, msg) {
				if err := c.rdb.XAck(ctx, c.stream, c.group, msg.ID).Err(); err != nil {
					return last, fmt.Errorf("redisstream: xack %s: %w", msg.ID, err)
				}
			}
		}
	}
	return last, nil
}

// handle delivers one entry and reports whether it should be acknowledged.
func (c *Consumer) handle(ctx context.Context, msg redis.XMessage) bool {
	n, err := decode(msg)
	if err != nil {
		c.log.ErrorContext(ctx, "dropping malformed entry", slog.String("id", msg.ID), slog.String("error", err.Error()))
		return true
	}

	err = c.sender.Send(ctx, n)
	switch {
	case err == nil:
		return true
	case errors.Is(err, notify.ErrUndeliverable):
		c.log.WarnContext(ctx, "dropping undeliverable notification",
			slog.String("id", msg.ID),
			slog.String("kind", n.Kind.String()),
			slog.String("error", err.Error()),
		)
		return true
	default:
		c.log.ErrorContext(ctx, "delivery failed, left pending",
			slog.String("id", msg.ID),
			slog.String("kind", n.Kind.String()),
			slog.String("error", err.Error()),
		)
		return false
	}
}

func decode(msg redis.XMessage) (domain.Notification, error) {
	raw, ok := msg.Values[fieldPayload].(string)
	if !ok {
		return domain.Notification{}, fmt.Errorf("missing %s field", fieldPayload)
	}
	var n domain.Notification
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return domain.Notification{}, fmt.Errorf("decode payload: %w", err)
	}
	if !n.Kind.IsValid() {
		return domain.Notification{}, fmt.Errorf("unknown kind %q", n.Kind)
	}
	return n, nil
}
