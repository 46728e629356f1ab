package greeting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "mudabbir/internal/middleware"
)

func TestGreetingIntercepts(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello!", replies["en"]},
		{"good morning there", replies["en"]},
		{"السلام عليكم", replies["ar"]},
		{"مرحباً!", replies["ar"]},
		{"صباح الخير", replies["ar"]},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ev := &mw.Event{Name: mw.EventBeforeAgentRun, UserText: tt.input}
			dec, err := Greeting{}.OnEvent(context.Background(), ev)
			require.NoError(t, err)
			require.True(t, dec.Cancel)
			require.NotNil(t, dec.ReplaceText)
			assert.Equal(t, tt.want, *dec.ReplaceText)
		})
	}
}

func TestGreetingPassesThrough(t *testing.T) {
	for _, input := range []string{
		"hello please summarize this doc",
		"good",
		"مرحبا، شغل الموسيقى",
		"",
	} {
		ev := &mw.Event{Name: mw.EventBeforeAgentRun, UserText: input}
		dec, err := Greeting{}.OnEvent(context.Background(), ev)
		require.NoError(t, err)
		assert.False(t, dec.Cancel, input)
	}
}

func TestGreetingIgnoresReplies(t *testing.T) {
	ev := &mw.Event{Name: mw.EventAfterAgentReply, UserText: "hi", ReplyText: "hi"}
	dec, err := Greeting{}.OnEvent(context.Background(), ev)
	require.NoError(t, err)
	assert.False(t, dec.Cancel)
}

func TestGreetingOptOut(t *testing.T) {
	ev := &mw.Event{Context: map[string]any{ID: false}}
	assert.False(t, Greeting{}.ShouldLoad(context.Background(), ev))
	assert.True(t, Greeting{}.ShouldLoad(context.Background(), &mw.Event{}))
}
