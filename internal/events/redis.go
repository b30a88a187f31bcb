package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	EVENT_CHANNEL_PREFIX = "pos:events:"
	EVENT_CHANNEL_ALL    = "pos:events:all"
)

type Log interface {
	Warn(msg string, fields ...zap.Field)
}

// RedisForwarder republishes bus events on redis so other processes on the
// till (customer display, back office) can follow the sale.
type RedisForwarder struct {
	rdb      *redis.Client
	terminal string
	timeout  time.Duration
	log      Log
}

func NewRedisForwarder(rdb *redis.Client, terminal string, log Log) *RedisForwarder {
	return &RedisForwarder{rdb: rdb, terminal: terminal, timeout: 2 * time.Second, log: log}
}

// Attach subscribes the forwarder to every terminal topic.
func (f *RedisForwarder) Attach(bus *Bus) error {
	for _, topic := range Topics {
		if err := bus.Subscribe(topic, f.forward); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}
	}
	return nil
}

func (f *RedisForwarder) forward(e Event) {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()
	if err := f.publish(ctx, e); err != nil {
		f.log.Warn("failed to forward event", zap.String("topic", e.Topic), zap.Error(err))
	}
}

type forwardedEvent struct {
	Event
	Terminal string `json:"terminal"`
}

func (f *RedisForwarder) publish(ctx context.Context, e Event) error {
	eventJSON, err := json.Marshal(forwardedEvent{Event: e, Terminal: f.terminal})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	channel := EVENT_CHANNEL_PREFIX + e.Topic
	if err := f.rdb.Publish(ctx, channel, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	if err := f.rdb.Publish(ctx, EVENT_CHANNEL_ALL, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish to all channel: %w", err)
	}

	return nil
}
