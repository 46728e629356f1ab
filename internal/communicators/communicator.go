package communicators

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"mudabbir/internal/bus"
	"mudabbir/internal/config"
)

// Communicator is a chat channel (Telegram, WebSocket) attached to the bus.
type Communicator interface {
	// ID returns the channel name, matching the bus channel constants.
	ID() string

	// Start publishes the channel's incoming messages to b and delivers the
	// outbound messages addressed to it. It blocks until ctx is cancelled or
	// the channel fails. A channel that is not configured returns nil at once.
	Start(ctx context.Context, b *bus.MessageBus, cfg config.Config) error
}

var (
	registry   = make(map[string]Communicator)
	registryMu sync.RWMutex
)

// Register adds a Communicator to the global registry. Adapter packages call
// it from init.
func Register(c Communicator) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if c == nil {
		panic("communicator: Register communicator is nil")
	}
	if _, dup := registry[c.ID()]; dup {
		panic("communicator: Register called twice for communicator " + c.ID())
	}
	registry[c.ID()] = c
}

// Get returns a registered communicator by ID.
func Get(id string) (Communicator, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	c, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("communicator '%s' not found", id)
	}
	return c, nil
}

// All returns the registered communicators ordered by ID.
func All() []Communicator {
	registryMu.RLock()
	defer registryMu.RUnlock()

	list := make([]Communicator, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID() < list[j].ID() })
	return list
}
