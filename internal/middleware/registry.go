package middleware

import (
	"io"
	"strings"
	"sync"
)

var (
	registryMu sync.Mutex
	registry   []Middleware
)

// Register is called by middleware packages, typically from init, to make
// themselves available to NewChainFromRegistry.
func Register(m Middleware) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, m)
}

// Registered returns a shallow copy of all registered middleware.
func Registered() []Middleware {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]Middleware, len(registry))
	copy(out, registry)
	return out
}

// NewChainFromRegistry builds a chain from the registered middleware plus
// extra, leaving out any whose ID is listed in disabled. It returns nil when
// nothing is left.
func NewChainFromRegistry(debugWriter io.Writer, disabled []string, extra ...Middleware) *Chain {
	off := make(map[string]struct{}, len(disabled))
	for _, id := range disabled {
		if id = strings.TrimSpace(id); id != "" {
			off[id] = struct{}{}
		}
	}

	var mws []Middleware
	for _, mw := range append(Registered(), extra...) {
		if _, skip := off[mw.ID()]; !skip {
			mws = append(mws, mw)
		}
	}
	if len(mws) == 0 {
		return nil
	}
	c := NewChain(mws...)
	if debugWriter != nil {
		c.SetDebugWriter(debugWriter)
	}
	return c
}
