package fastpath

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mudabbir/internal/intent"
)

func TestSessionStorePending(t *testing.T) {
	s := NewSessionStore()
	first := intent.Resolve("shutdown the pc now")
	second := intent.Resolve("stop service Spooler")

	require.True(t, s.SetPending("k", first))
	assert.False(t, s.SetPending("k", second), "pending must not be overwritten")

	got, ok := s.Pending("k")
	require.True(t, ok)
	assert.Equal(t, "system.shutdown", got.CapabilityID)

	first.Params["mode"] = "mutated"
	got, _ = s.Pending("k")
	assert.Equal(t, "shutdown", got.Params["mode"])

	taken, ok := s.TakePending("k")
	require.True(t, ok)
	assert.Equal(t, "system.shutdown", taken.CapabilityID)
	_, ok = s.TakePending("k")
	assert.False(t, ok)
}

func TestSessionStoreRemember(t *testing.T) {
	tests := []struct {
		name   string
		action string
		params map[string]any
		result map[string]any
		want   Entities
	}{
		{"service from params", "service_tools", map[string]any{"name": "Spooler"}, nil, Entities{LastService: "Spooler"}},
		{"service from result", "service_tools", map[string]any{"name": "spool"}, map[string]any{"name": "Spooler"}, Entities{LastService: "Spooler"}},
		{"close app", "close_app", map[string]any{"process_name": "chrome"}, nil, Entities{LastApp: "chrome"}},
		{"open app result wins", "open_app", map[string]any{"query": "chr"}, map[string]any{"query": "chrome"}, Entities{LastApp: "chrome"}},
		{"window top app", "window_control", map[string]any{"mode": "list"}, map[string]any{"top_app": "Code"}, Entities{LastApp: "Code"}},
		{"nothing to remember", "volume", map[string]any{"mode": "get"}, map[string]any{"level_percent": 3.0}, Entities{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSessionStore()
			s.Remember("k", tt.action, tt.params, tt.result)
			assert.Equal(t, tt.want, s.Entities("k"))
		})
	}
}

func TestSessionStoreRememberKeepsOtherEntity(t *testing.T) {
	s := NewSessionStore()
	s.Remember("k", "service_tools", map[string]any{"name": "Spooler"}, nil)
	s.Remember("k", "open_app", map[string]any{"query": "notepad"}, nil)
	assert.Equal(t, Entities{LastApp: "notepad", LastService: "Spooler"}, s.Entities("k"))

	s.Forget("k")
	assert.Equal(t, Entities{}, s.Entities("k"))
}

func TestSessionStoreConcurrent(t *testing.T) {
	s := NewSessionStore()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			s.SetPending(key, intent.Resolve("shutdown the pc now"))
			s.Remember(key, "close_app", map[string]any{"process_name": "x"}, nil)
			s.TakePending(key)
		}(i)
	}
	wg.Wait()
	for i := 0; i < 4; i++ {
		_, ok := s.Pending(fmt.Sprintf("k%d", i))
		assert.False(t, ok)
	}
}
