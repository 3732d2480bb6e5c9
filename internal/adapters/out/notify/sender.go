package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultChannel is the Redis channel status notifications are published to.
const DefaultChannel = "orders.status"

// Sender hands one notification to a delivery channel.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// Publisher is the part of *redis.Client used by RedisSender.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisSender publishes notifications as JSON for the mailer to pick up.
// Pub/sub keeps no backlog, so a notification published while no mailer is
// subscribed is lost.
type RedisSender struct {
	publisher Publisher
	channel   string
	logger    *zap.Logger
}

// NewRedisSender creates a sender. An empty channel means DefaultChannel.
func NewRedisSender(publisher Publisher, channel string, logger *zap.Logger) *RedisSender {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisSender{
		publisher: publisher,
		channel:   channel,
		logger:    logger.With(zap.String("component", "redis_sender")),
	}
}

func (s *RedisSender) Send(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	receivers, err := s.publisher.Publish(ctx, s.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("publish to %s: %w", s.channel, err)
	}

	s.logger.Debug("notification published",
		zap.String("notification_id", n.ID.String()),
		zap.String("channel", s.channel),
		zap.Int64("receivers", receivers))
	return nil
}

// LogSender only logs notifications. It is used when no Redis is configured.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger.With(zap.String("component", "log_sender"))}
}

func (s *LogSender) Send(_ context.Context, n Notification) error {
	s.logger.Info("order status notification",
		zap.String("notification_id", n.ID.String()),
		zap.Int64("order_id", n.OrderID),
		zap.String("order_number", n.OrderNumber),
		zap.String("old_status", n.OldStatus),
		zap.String("new_status", n.NewStatus),
		zap.String("recipient", n.Recipient))
	return nil
}
