package communicators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mudabbir/internal/bus"
	"mudabbir/internal/config"
)

type stub string

func (s stub) ID() string { return string(s) }

func (s stub) Start(context.Context, *bus.MessageBus, config.Config) error { return nil }

func TestRegistry(t *testing.T) {
	Register(stub("zz-test"))
	Register(stub("aa-test"))

	c, err := Get("zz-test")
	require.NoError(t, err)
	assert.Equal(t, "zz-test", c.ID())

	_, err = Get("carrier-pigeon")
	assert.EqualError(t, err, "communicator 'carrier-pigeon' not found")

	var ids []string
	for _, c := range All() {
		ids = append(ids, c.ID())
	}
	assert.Equal(t, []string{"aa-test", "zz-test"}, ids)

	assert.Panics(t, func() { Register(stub("aa-test")) })
	assert.Panics(t, func() { Register(nil) })
}
