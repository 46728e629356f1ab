// Package ws serves the chat over WebSocket for the desktop UI. A
// client joins a chat with ?chat=<id> and receives the chat's replies plus
// the loop's system events for that chat.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"mudabbir/internal/bus"
	"mudabbir/internal/communicators"
	"mudabbir/internal/config"
	"mudabbir/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = pongWait * 9 / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local desktop UI
	},
}

func init() {
	communicators.Register(&Adapter{})
}

// Frame is the JSON message exchanged with clients.
type Frame struct {
	Type    string         `json:"type"`
	ChatID  string         `json:"chat_id,omitempty"`
	Content string         `json:"content,omitempty"`
	Event   string         `json:"event,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// Frame types.
const (
	FrameMessage = "message"
	FrameChunk   = "chunk"
	FrameEnd     = "stream_end"
	FrameSystem  = "system"
)

type Adapter struct{}

func (a *Adapter) ID() string { return bus.ChannelWebSocket }

func (a *Adapter) Start(ctx context.Context, b *bus.MessageBus, cfg config.Config) error {
	log := logging.For("websocket")
	if cfg.WebSocket.Addr == "" {
		log.Info().Msg("disabled: no listen address configured")
		return nil
	}
	hub := NewHub(b, log)
	srv := &http.Server{Addr: cfg.WebSocket.Addr, Handler: httpHandler(hub), ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()
	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		hub.Run(ctx)
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-errc:
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	hub.closeAll()
	<-hubDone
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func httpHandler(hub *Hub) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Hub tracks connected clients by chat and fans bus output out to them.
type Hub struct {
	bus *bus.MessageBus
	log zerolog.Logger

	out            <-chan bus.OutboundMessage
	sys            <-chan bus.SystemEvent
	unsubscribe    func()
	unsubscribeSys func()

	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
}

type client struct {
	conn   *websocket.Conn
	chatID string
	send   chan Frame
	once   sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// NewHub subscribes to the bus right away so nothing addressed to the
// channel is dropped before Run starts.
func NewHub(b *bus.MessageBus, log zerolog.Logger) *Hub {
	h := &Hub{bus: b, log: log, clients: make(map[string]map[*client]struct{})}
	h.out, h.unsubscribe = b.SubscribeOutbound(bus.ChannelWebSocket)
	h.sys, h.unsubscribeSys = b.SubscribeSystem()
	return h
}

// Run forwards outbound and system messages to clients until ctx is done,
// then drops the bus subscriptions.
func (h *Hub) Run(ctx context.Context) {
	defer h.unsubscribe()
	defer h.unsubscribeSys()

	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-h.out:
			if !ok {
				return
			}
			h.broadcast(m.ChatID, outboundFrame(m))
		case ev, ok := <-h.sys:
			if !ok {
				return
			}
			if chat, ok := chatOf(ev); ok {
				h.broadcast(chat, Frame{Type: FrameSystem, ChatID: chat, Event: ev.Type, Data: ev.Data})
			}
		}
	}
}

func outboundFrame(m bus.OutboundMessage) Frame {
	f := Frame{Type: FrameMessage, ChatID: m.ChatID, Content: m.Content}
	switch {
	case m.StreamEnd:
		f.Type = FrameEnd
	case m.StreamChunk:
		f.Type = FrameChunk
	}
	return f
}

// chatOf extracts the WebSocket chat id from an event's session key,
// "websocket:<chat>" optionally followed by ":<suffix>".
func chatOf(ev bus.SystemEvent) (string, bool) {
	key, _ := ev.Data["session_key"].(string)
	rest, ok := strings.CutPrefix(key, bus.ChannelWebSocket+":")
	if !ok || rest == "" {
		return "", false
	}
	chat, _, _ := strings.Cut(rest, ":")
	return chat, true
}

func (h *Hub) broadcast(chatID string, f Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[chatID] {
		select {
		case c.send <- f:
		default:
			h.log.Warn().Str("chat_id", chatID).Msg("client too slow; frame dropped")
		}
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.chatID] == nil {
		h.clients[c.chatID] = make(map[*client]struct{})
	}
	h.clients[c.chatID][c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set := h.clients[c.chatID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.chatID)
		}
	}
	c.close()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for chat, set := range h.clients {
		for c := range set {
			c.close()
		}
		delete(h.clients, chat)
	}
}

// ServeWS upgrades the request and runs the client's pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}
	chatID := r.URL.Query().Get("chat")
	if chatID == "" {
		chatID = uuid.NewString()
	}
	c := &client{conn: conn, chatID: chatID, send: make(chan Frame, sendBuffer)}
	c.send <- Frame{Type: FrameSystem, ChatID: chatID, Event: "connected"}
	h.add(c)
	h.log.Info().Str("chat_id", chatID).Str("remote", r.RemoteAddr).Msg("client connected")

	go h.writePump(c)
	h.readPump(r.Context(), c)
}

func (h *Hub) readPump(ctx context.Context, c *client) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
		h.log.Info().Str("chat_id", c.chatID).Msg("client disconnected")
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var f Frame
		if err := c.conn.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Str("chat_id", c.chatID).Msg("read")
			}
			return
		}
		if f.Type != FrameMessage || strings.TrimSpace(f.Content) == "" {
			continue
		}
		msg := bus.InboundMessage{
			Channel:  bus.ChannelWebSocket,
			ChatID:   c.chatID,
			SenderID: c.chatID,
			Content:  f.Content,
		}
		if err := h.bus.PublishInbound(ctx, msg); err != nil {
			h.log.Warn().Err(err).Str("chat_id", c.chatID).Msg("publish inbound")
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case f, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			data, err := json.Marshal(f)
			if err != nil {
				h.log.Error().Err(err).Msg("marshal frame")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
