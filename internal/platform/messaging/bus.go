package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrSubscriberClosed is returned by Publish when every subscriber of the
// topic had already stopped, so nothing will ever handle the event.
var ErrSubscriberClosed = errors.New("subscriber closed")

// Envelope is the event shape carried on the bus.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SourceService string          `json:"source_service"`
	PartitionKey  string          `json:"partition_key"`
	Data          json.RawMessage `json:"data"`
}

type Handler func(context.Context, Envelope) error

// subscriber is one consumer group's queue. Sends happen under the read
// lock; closing takes the write lock, so once closed is set no send can
// reach ch and the final drain sees every accepted event.
type subscriber struct {
	consumerGroup string
	ch            chan Envelope
	mu            sync.RWMutex
	closed        bool
}

// Bus is an in-process publish/subscribe queue for post-response tasks.
// Subscribers drain their buffered events when their context ends; Wait
// blocks until every subscriber goroutine has returned.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]*subscriber
	buffer      int
	wg          sync.WaitGroup
	logger      *slog.Logger
}

func NewBus(buffer int, logger *slog.Logger) *Bus {
	if buffer <= 0 {
		buffer = 128
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[string][]*subscriber),
		buffer:      buffer,
		logger:      logger,
	}
}

// Publish blocks until every live subscriber accepted the event or ctx ends.
// Stopped subscribers are skipped and logged as dropped.
func (b *Bus) Publish(ctx context.Context, topic string, event Envelope) error {
	b.mu.RLock()
	subs := append([]*subscriber(nil), b.subscribers[topic]...)
	b.mu.RUnlock()

	if len(subs) == 0 {
		b.logger.Warn("event published without subscribers",
			"event", "bus_publish_unrouted",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"event_id", event.EventID,
		)
		return nil
	}

	delivered := 0
	for _, sub := range subs {
		ok, err := b.send(ctx, sub, event)
		if err != nil {
			b.logger.Error("event publish aborted",
				"event", "bus_publish_aborted",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"event_id", event.EventID,
				"error", err.Error(),
			)
			return err
		}
		if !ok {
			b.logger.Error("event dropped for stopped subscriber",
				"event", "bus_publish_dropped",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"consumer_group", sub.consumerGroup,
				"event_id", event.EventID,
				"event_type", event.EventType,
			)
			continue
		}
		delivered++
	}
	if delivered == 0 {
		return ErrSubscriberClosed
	}

	b.logger.Debug("event published",
		"event", "bus_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
	)
	return nil
}

// send reports false when sub has stopped.
func (b *Bus) send(ctx context.Context, sub *subscriber, event Envelope) (bool, error) {
	sub.mu.RLock()
	defer sub.mu.RUnlock()
	if sub.closed {
		return false, nil
	}
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case sub.ch <- event:
		return true, nil
	}
}

func (b *Bus) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, Envelope) error,
) error {
	sub := &subscriber{consumerGroup: consumerGroup, ch: make(chan Envelope, b.buffer)}

	b.mu.Lock()
	b.subscribers[topic] = append(b.subscribers[topic], sub)
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-ctx.Done():
				b.close(context.WithoutCancel(ctx), topic, sub, handler)
				return
			case event := <-sub.ch:
				b.handle(ctx, topic, consumerGroup, event, handler)
			}
		}
	}()
	return nil
}

// Wait blocks until all subscriber goroutines have stopped.
func (b *Bus) Wait() {
	b.wg.Wait()
}

// close marks sub as stopped and handles everything it had accepted.
// Publishers blocked on a full queue hold the read lock, so events keep
// being consumed until the write lock is granted.
func (b *Bus) close(ctx context.Context, topic string, sub *subscriber, handler Handler) {
	closed := make(chan struct{})
	go func() {
		sub.mu.Lock()
		sub.closed = true
		sub.mu.Unlock()
		close(closed)
	}()

	drained := 0
	for open := true; open; {
		select {
		case event := <-sub.ch:
			b.handle(ctx, topic, sub.consumerGroup, event, handler)
			drained++
		case <-closed:
			open = false
		}
	}
	// No send can start once closed is set.
	for len(sub.ch) > 0 {
		b.handle(ctx, topic, sub.consumerGroup, <-sub.ch, handler)
		drained++
	}

	if drained > 0 {
		b.logger.Info("subscriber drained pending events",
			"event", "bus_subscriber_drained",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"consumer_group", sub.consumerGroup,
			"drained", drained,
		)
	}
}

func (b *Bus) handle(ctx context.Context, topic string, consumerGroup string, event Envelope, handler Handler) {
	if err := handler(ctx, event); err != nil {
		b.logger.Error("consumer handler failed",
			"event", "bus_consume_failed",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"consumer_group", consumerGroup,
			"event_id", event.EventID,
			"event_type", event.EventType,
			"error", err.Error(),
		)
	}
}
