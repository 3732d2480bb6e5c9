package notify

import (
	"context"
	"sync"
	"time"

	"visadesk/internal/core/ports"

	"go.uber.org/zap"
)

const (
	DefaultQueueSize   = 256
	DefaultWorkers     = 2
	DefaultSendTimeout = 10 * time.Second
)

// Config tunes the dispatcher. Zero values fall back to the defaults.
type Config struct {
	QueueSize   int
	Workers     int
	SendTimeout time.Duration
}

type job struct {
	ctx          context.Context
	notification Notification
}

// AsyncDispatcher implements ports.StatusNotifier with a bounded queue
// drained by a fixed pool of workers.
//
// NotifyOnOrderStatusUpdate never blocks: when the queue is full, or the
// dispatcher is not running, the notification is dropped with a warning.
// Sender errors and panics are logged and never reach the caller.
type AsyncDispatcher struct {
	sender Sender
	logger *zap.Logger
	cfg    Config
	now    func() time.Time

	mu      sync.Mutex
	queue   chan job
	running bool
	wg      sync.WaitGroup
}

var _ ports.StatusNotifier = (*AsyncDispatcher)(nil)

func NewAsyncDispatcher(sender Sender, cfg Config, logger *zap.Logger) *AsyncDispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultSendTimeout
	}

	return &AsyncDispatcher{
		sender: sender,
		logger: logger.With(zap.String("component", "notify_dispatcher")),
		cfg:    cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Start launches the workers. Calling Start on a running dispatcher does nothing.
func (d *AsyncDispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return
	}

	d.queue = make(chan job, d.cfg.QueueSize)
	d.running = true
	for range d.cfg.Workers {
		d.wg.Add(1)
		go d.work(d.queue)
	}

	d.logger.Info("dispatcher started", zap.Int("workers", d.cfg.Workers), zap.Int("queue_size", d.cfg.QueueSize))
}

// Stop refuses new notifications, lets the workers drain what is queued and
// waits for them.
func (d *AsyncDispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	d.logger.Info("dispatcher stopped")
}

// NotifyOnOrderStatusUpdate queues the notification for the order's applicant.
func (d *AsyncDispatcher) NotifyOnOrderStatusUpdate(ctx context.Context, change ports.StatusChange) {
	n, ok := NewNotification(change, d.now())
	if !ok {
		d.logger.Debug("no applicant to notify", orderField(change))
		return
	}

	// the request context ends with the response, the notification must not
	next := job{ctx: context.WithoutCancel(ctx), notification: n}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		d.logger.Warn("dispatcher is not running, notification dropped",
			zap.String("notification_id", n.ID.String()), orderField(change))
		return
	}

	select {
	case d.queue <- next:
	default:
		d.logger.Warn("notification queue is full, notification dropped",
			zap.String("notification_id", n.ID.String()), orderField(change))
	}
}

func (d *AsyncDispatcher) work(queue <-chan job) {
	defer d.wg.Done()
	for j := range queue {
		d.send(j)
	}
}

func (d *AsyncDispatcher) send(j job) {
	ctx, cancel := context.WithTimeout(j.ctx, d.cfg.SendTimeout)
	defer cancel()

	fields := []zap.Field{
		zap.String("notification_id", j.notification.ID.String()),
		zap.Int64("order_id", j.notification.OrderID),
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("sender panicked", append(fields, zap.Any("panic", r))...)
		}
	}()

	if err := d.sender.Send(ctx, j.notification); err != nil {
		d.logger.Error("failed to send notification", append(fields, zap.Error(err))...)
	}
}

func orderField(change ports.StatusChange) zap.Field {
	if change.Order == nil {
		return zap.Skip()
	}
	return zap.Int64("order_id", change.Order.ID().Int64())
}
