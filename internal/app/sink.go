package app

import (
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"

	"github.com/heartmarshall/carematch-backend/internal/adapter/notify"
	"github.com/heartmarshall/carematch-backend/internal/adapter/provider/alimtalk"
	"github.com/heartmarshall/carematch-backend/internal/adapter/redisstream"
	"github.com/heartmarshall/carematch-backend/internal/config"
)

// notificationSink is the delivery end of the notification pipeline as
// selected by the configured driver.
type notificationSink struct {
	sender notify.Sender
	// stream is set for the redis driver so health checks can probe it.
	stream *redisstream.Publisher
	rdb    *redis.Client
}

func newNotificationSink(logger *slog.Logger, cfg config.NotifyConfig) (*notificationSink, error) {
	switch cfg.Driver {
	case config.NotifyDriverLog:
		return &notificationSink{sender: notify.NewLogSender(logger)}, nil

	case config.NotifyDriverAlimtalk:
		return &notificationSink{sender: alimtalk.NewClient(logger, cfg.Alimtalk)}, nil

	case config.NotifyDriverRedis:
		rdb := redisstream.NewClient(cfg.Redis)
		pub := redisstream.NewPublisher(logger, rdb, cfg.Redis)
		return &notificationSink{sender: pub, stream: pub, rdb: rdb}, nil

	default:
		return nil, fmt.Errorf("notify: unknown driver %q", cfg.Driver)
	}
}

func (s *notificationSink) close(logger *slog.Logger) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Close(); err != nil {
		logger.Warn("close redis client", slog.String("error", err.Error()))
	}
}
