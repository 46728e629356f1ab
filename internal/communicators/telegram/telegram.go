// Package telegram runs Mudabbir as a Telegram bot on a long poller.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	tele "gopkg.in/telebot.v3"

	"mudabbir/internal/bus"
	"mudabbir/internal/communicators"
	"mudabbir/internal/config"
	"mudabbir/internal/logging"
)

// maxMessageLen leaves headroom under Telegram's 4096 character limit.
const maxMessageLen = 4000

func init() {
	communicators.Register(&Adapter{})
}

// sender is the part of *tele.Bot used for delivery.
type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Adapter bridges a Telegram bot and the message bus.
type Adapter struct {
	log     zerolog.Logger
	allowed map[int64]bool

	mu      sync.Mutex
	pending map[string]*strings.Builder
}

func (a *Adapter) ID() string { return bus.ChannelTelegram }

func (a *Adapter) Start(ctx context.Context, b *bus.MessageBus, cfg config.Config) error {
	a.log = logging.For("telegram")
	token := cfg.Telegram.Token
	if token == "" {
		a.log.Info().Msg("disabled: no bot token configured")
		return nil
	}
	a.setAllowed(cfg.Telegram.AllowedChatIDs)
	if len(a.allowed) == 0 {
		a.log.Warn().Msg("no allowed chat ids configured; every chat may talk to the bot")
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			a.log.Warn().Err(err).Msg("handler error")
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot.Handle("/start", func(c tele.Context) error {
		if !a.permitted(c.Chat().ID) {
			return c.Send("⛔ This bot is private.")
		}
		return c.Send("👋 Welcome to Mudabbir! Ask me to control your desktop or send /help for commands.")
	})
	bot.Handle(tele.OnText, func(c tele.Context) error {
		return a.onText(ctx, b, bot, c)
	})

	out, unsubscribe := b.SubscribeOutbound(bus.ChannelTelegram)
	defer unsubscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.deliver(ctx, bot, out)
	}()

	go func() {
		<-ctx.Done()
		a.log.Info().Msg("shutting down")
		bot.Stop()
	}()

	a.log.Info().Str("bot", bot.Me.Username).Msg("bot started")
	bot.Start()
	<-done
	return nil
}

func (a *Adapter) setAllowed(ids []int64) {
	a.allowed = make(map[int64]bool, len(ids))
	for _, id := range ids {
		a.allowed[id] = true
	}
}

func (a *Adapter) permitted(chatID int64) bool {
	return len(a.allowed) == 0 || a.allowed[chatID]
}

func (a *Adapter) onText(ctx context.Context, b *bus.MessageBus, bot *tele.Bot, c tele.Context) error {
	chatID := c.Chat().ID
	if !a.permitted(chatID) {
		a.log.Warn().Int64("chat_id", chatID).Msg("message from chat outside the allow-list")
		return c.Send("⛔ This bot is private.")
	}
	_ = bot.Notify(c.Chat(), tele.Typing)

	msg := inbound(c.Sender(), chatID, c.Text())
	if err := b.PublishInbound(ctx, msg); err != nil {
		a.log.Error().Err(err).Int64("chat_id", chatID).Msg("publish inbound")
		return c.Send("⚠️ Mudabbir is shutting down. Please try again later.")
	}
	return nil
}

func inbound(from *tele.User, chatID int64, text string) bus.InboundMessage {
	msg := bus.InboundMessage{
		Channel:  bus.ChannelTelegram,
		ChatID:   strconv.FormatInt(chatID, 10),
		Content:  text,
		Metadata: map[string]any{"telegram_chat_id": chatID},
	}
	if from != nil {
		msg.SenderID = strconv.FormatInt(from.ID, 10)
		msg.Metadata["username"] = from.Username
	}
	return msg
}

// deliver sends outbound messages until out closes or ctx ends. Stream
// chunks are collected per chat and sent once the stream ends, since editing
// a message per chunk hits Telegram's rate limits.
func (a *Adapter) deliver(ctx context.Context, s sender, out <-chan bus.OutboundMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-out:
			if !ok {
				return
			}
			a.handleOutbound(s, m)
		}
	}
}

func (a *Adapter) handleOutbound(s sender, m bus.OutboundMessage) {
	var text string
	a.mu.Lock()
	if a.pending == nil {
		a.pending = make(map[string]*strings.Builder)
	}
	buf := a.pending[m.ChatID]
	switch {
	case m.StreamChunk:
		if buf == nil {
			buf = &strings.Builder{}
			a.pending[m.ChatID] = buf
		}
		buf.WriteString(m.Content)
	case m.StreamEnd:
		if buf != nil {
			text = buf.String()
			delete(a.pending, m.ChatID)
		}
	case buf != nil:
		buf.WriteString(m.Content)
	default:
		text = m.Content
	}
	a.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return
	}
	id, err := strconv.ParseInt(m.ChatID, 10, 64)
	if err != nil {
		a.log.Warn().Str("chat_id", m.ChatID).Msg("outbound message for a non-numeric chat id")
		return
	}
	if err := sendLong(s, &tele.Chat{ID: id}, text); err != nil {
		a.log.Error().Err(err).Int64("chat_id", id).Msg("send reply")
	}
}

// sendLong splits text into Telegram-sized messages.
func sendLong(s sender, to tele.Recipient, text string) error {
	for _, part := range split(text, maxMessageLen) {
		if _, err := s.Send(to, part); err != nil {
			return err
		}
	}
	return nil
}

// split cuts text into pieces of at most limit runes, preferring to break
// after a newline in the second half of a piece.
func split(text string, limit int) []string {
	var parts []string
	for utf8.RuneCountInString(text) > limit {
		r := []rune(text)
		cut := limit
		if i := strings.LastIndex(string(r[:limit]), "\n"); i >= 0 {
			if n := utf8.RuneCountInString(text[:i]); n >= limit/2 {
				cut = n + 1
			}
		}
		parts = append(parts, string(r[:cut]))
		text = string(r[cut:])
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}
