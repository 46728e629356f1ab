package bus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestInboundRoundTrip(t *testing.T) {
	b := New(2)
	defer b.Close()
	ctx := context.Background()

	require.NoError(t, b.PublishInbound(ctx, InboundMessage{Channel: ChannelTelegram, ChatID: "42", Content: "hi"}))
	msg, err := b.ConsumeInbound(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())
	assert.Equal(t, "telegram:42", msg.SessionKey())
}

func TestSessionKeyOverride(t *testing.T) {
	msg := InboundMessage{Channel: ChannelWebSocket, ChatID: "c1", Metadata: map[string]any{"session_key": "websocket:shared"}}
	assert.Equal(t, "websocket:shared", msg.SessionKey())
}

func TestPublishInboundBlocksUntilContextDone(t *testing.T) {
	b := New(1)
	defer b.Close()
	require.NoError(t, b.PublishInbound(context.Background(), InboundMessage{Content: "a"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := b.PublishInbound(ctx, InboundMessage{Content: "b"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCloseUnblocksConsumers(t *testing.T) {
	b := New(1)
	errs := make(chan error, 1)
	go func() {
		_, err := b.ConsumeInbound(context.Background())
		errs <- err
	}()
	b.Close()
	assert.ErrorIs(t, <-errs, ErrClosed)
	assert.ErrorIs(t, b.PublishInbound(context.Background(), InboundMessage{}), ErrClosed)
	b.Close()
}

func TestOutboundFanOutPerChannel(t *testing.T) {
	b := New(1)
	defer b.Close()
	ctx := context.Background()

	tg1, stop1 := b.SubscribeOutbound(ChannelTelegram)
	defer stop1()
	tg2, stop2 := b.SubscribeOutbound(ChannelTelegram)
	defer stop2()
	ws, stopWS := b.SubscribeOutbound(ChannelWebSocket)
	defer stopWS()

	in := InboundMessage{ID: "in-1", Channel: ChannelTelegram, ChatID: "42"}
	require.NoError(t, b.PublishOutbound(ctx, in.Reply("done")))

	for _, ch := range []<-chan OutboundMessage{tg1, tg2} {
		got := <-ch
		assert.Equal(t, "done", got.Content)
		assert.Equal(t, "in-1", got.ReplyTo)
		assert.Equal(t, "42", got.ChatID)
	}
	select {
	case got := <-ws:
		t.Fatalf("websocket subscriber received %+v", got)
	default:
	}
}

func TestOutboundWithoutSubscriberIsDropped(t *testing.T) {
	b := New(1)
	defer b.Close()
	in := InboundMessage{Channel: ChannelCLI}
	assert.NoError(t, b.PublishOutbound(context.Background(), in.Reply("nobody")))
}

func TestUnsubscribeReleasesBlockedPublisher(t *testing.T) {
	b := New(1)
	defer b.Close()
	_, stop := b.SubscribeOutbound(ChannelCLI)
	in := InboundMessage{Channel: ChannelCLI}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < outboundSize+5; i++ {
			if err := b.PublishOutbound(context.Background(), in.Chunk("x")); err != nil {
				return
			}
		}
	}()
	time.Sleep(10 * time.Millisecond)
	stop()
	wg.Wait()
}

func TestStreamHelpers(t *testing.T) {
	in := InboundMessage{ID: "m", Channel: ChannelWebSocket, ChatID: "c"}
	chunk := in.Chunk("par")
	assert.True(t, chunk.StreamChunk)
	assert.False(t, chunk.StreamEnd)
	end := in.StreamEnd()
	assert.True(t, end.StreamEnd)
	assert.Empty(t, end.Content)
}

func TestSystemEventsDropWhenFull(t *testing.T) {
	b := New(1)
	defer b.Close()
	events, stop := b.SubscribeSystem()
	defer stop()

	for i := 0; i < systemSize+10; i++ {
		b.PublishSystem(SystemEvent{Type: EventThinking})
	}
	assert.Len(t, events, systemSize)
	got := <-events
	assert.Equal(t, EventThinking, got.Type)
	assert.False(t, got.CreatedAt.IsZero())
}
