package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/carematch-backend/internal/config"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

type job struct {
	ctx context.Context
	n   domain.Notification
}

// Dispatcher queues notifications on a bounded channel drained by a fixed
// pool of workers. Notify never blocks: a full queue drops the notification.
type Dispatcher struct {
	sender  Sender
	queue   chan job
	timeout time.Duration
	log     *slog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher starts cfg.Workers goroutines sending through sender.
func NewDispatcher(logger *slog.Logger, sender Sender, cfg config.NotifyConfig) *Dispatcher {
	d := &Dispatcher{
		sender:  sender,
		queue:   make(chan job, cfg.QueueSize),
		timeout: cfg.SendTimeout,
		log:     logger.With("adapter", "notify"),
	}

	d.wg.Add(cfg.Workers)
	for range cfg.Workers {
		go d.worker()
	}
	return d
}

// Notify enqueues n. The request context only contributes its values; the
// send outlives the request.
func (d *Dispatcher) Notify(ctx context.Context, n domain.Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.WarnContext(ctx, "notification dropped: dispatcher closed",
			slog.String("kind", n.Kind.String()),
			slog.String("user_id", n.Recipient.UserID),
		)
		return
	}

	select {
	case d.queue <- job{ctx: context.WithoutCancel(ctx), n: n}:
	default:
		d.log.WarnContext(ctx, "notification dropped: queue full",
			slog.String("kind", n.Kind.String()),
			slog.String("user_id", n.Recipient.UserID),
		)
	}
}

// Close stops accepting notifications and waits for the queue to drain or
// ctx to expire, whichever comes first.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain notifications: %w", ctx.Err())
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.queue {
		d.send(j)
	}
}

func (d *Dispatcher) send(j job) {
	ctx, cancel := context.WithTimeout(j.ctx, d.timeout)
	defer cancel()

	if err := d.sender.Send(ctx, j.n); err != nil {
		d.log.ErrorContext(ctx, "notification failed",
			slog.String("kind", j.n.Kind.String()),
			slog.String("user_id", j.n.Recipient.UserID),
			slog.String("error", err.Error()),
		)
		return
	}

	d.log.DebugContext(ctx, "notification sent",
		slog.String("kind", j.n.Kind.String()),
		slog.String("user_id", j.n.Recipient.UserID),
	)
}
