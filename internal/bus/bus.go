// Package bus decouples channels from the agent loop: channels publish
// inbound messages, the loop publishes outbound replies, and each channel
// receives only the replies addressed to it.
package bus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mudabbir/internal/logging"
)

var ErrClosed = errors.New("bus closed")

const (
	DefaultInboundSize = 100
	outboundSize       = 64
	systemSize         = 32
)

type subscription[T any] struct {
	ch   chan T
	done chan struct{}
	once sync.Once
}

func newSubscription[T any](size int) *subscription[T] {
	return &subscription[T]{ch: make(chan T, size), done: make(chan struct{})}
}

func (s *subscription[T]) cancel() { s.once.Do(func() { close(s.done) }) }

// MessageBus routes messages between channels and the agent loop.
type MessageBus struct {
	inbound chan InboundMessage
	done    chan struct{}
	closing sync.Once

	mu       sync.RWMutex
	outbound map[string]map[string]*subscription[OutboundMessage]
	system   map[string]*subscription[SystemEvent]

	log zerolog.Logger
}

// New returns a bus whose inbound queue holds size messages. size <= 0 uses
// DefaultInboundSize.
func New(size int) *MessageBus {
	if size <= 0 {
		size = DefaultInboundSize
	}
	return &MessageBus{
		inbound:  make(chan InboundMessage, size),
		done:     make(chan struct{}),
		outbound: make(map[string]map[string]*subscription[OutboundMessage]),
		system:   make(map[string]*subscription[SystemEvent]),
		log:      logging.For("bus"),
	}
}

// PublishInbound queues msg for the agent loop, filling in the ID and time
// when unset. It blocks while the queue is full.
func (b *MessageBus) PublishInbound(ctx context.Context, msg InboundMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	select {
	case <-b.done:
		return ErrClosed
	default:
	}
	select {
	case b.inbound <- msg:
		return nil
	case <-b.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ConsumeInbound waits for the next inbound message.
func (b *MessageBus) ConsumeInbound(ctx context.Context) (InboundMessage, error) {
	select {
	case msg := <-b.inbound:
		return msg, nil
	case <-b.done:
		return InboundMessage{}, ErrClosed
	case <-ctx.Done():
		return InboundMessage{}, ctx.Err()
	}
}

// SubscribeOutbound returns the replies addressed to channel and a function
// that ends the subscription. The returned channel is never closed.
func (b *MessageBus) SubscribeOutbound(channel string) (<-chan OutboundMessage, func()) {
	sub := newSubscription[OutboundMessage](outboundSize)
	id := uuid.NewString()

	b.mu.Lock()
	subs, ok := b.outbound[channel]
	if !ok {
		subs = make(map[string]*subscription[OutboundMessage])
		b.outbound[channel] = subs
	}
	subs[id] = sub
	b.mu.Unlock()

	return sub.ch, func() {
		sub.cancel()
		b.mu.Lock()
		delete(b.outbound[channel], id)
		b.mu.Unlock()
	}
}

// PublishOutbound delivers msg to every subscriber of msg.Channel. Delivery
// blocks on a full subscriber until it drains, unsubscribes or ctx ends.
// A channel with no subscribers drops the message.
func (b *MessageBus) PublishOutbound(ctx context.Context, msg OutboundMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	b.mu.RLock()
	targets := make([]*subscription[OutboundMessage], 0, len(b.outbound[msg.Channel]))
	for _, s := range b.outbound[msg.Channel] {
		targets = append(targets, s)
	}
	b.mu.RUnlock()

	if len(targets) == 0 {
		b.log.Debug().Str("channel", msg.Channel).Str("chat_id", msg.ChatID).Msg("no subscriber for outbound message")
		return nil
	}
	for _, s := range targets {
		select {
		case s.ch <- msg:
		case <-s.done:
		case <-b.done:
			return ErrClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// SubscribeSystem returns every system event published after the call.
func (b *MessageBus) SubscribeSystem() (<-chan SystemEvent, func()) {
	sub := newSubscription[SystemEvent](systemSize)
	id := uuid.NewString()

	b.mu.Lock()
	b.system[id] = sub
	b.mu.Unlock()

	return sub.ch, func() {
		sub.cancel()
		b.mu.Lock()
		delete(b.system, id)
		b.mu.Unlock()
	}
}

// PublishSystem never blocks; slow observers miss events.
func (b *MessageBus) PublishSystem(evt SystemEvent) {
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now()
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, s := range b.system {
		select {
		case s.ch <- evt:
		default:
			b.log.Debug().Str("subscriber", id).Str("type", evt.Type).Msg("system event dropped")
		}
	}
}

// Close stops the bus. Pending and future publishes return ErrClosed.
func (b *MessageBus) Close() {
	b.closing.Do(func() { close(b.done) })
}
