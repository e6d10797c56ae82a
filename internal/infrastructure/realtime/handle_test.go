package realtime

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/ports"
)

func TestInit_CachesHandle(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	calls := 0
	mem := NewMemoryStore()
	connect := func(context.Context) (ports.RealtimeStore, error) {
		calls++
		return mem, nil
	}

	first := Init(context.Background(), connect, zerolog.Nop())
	second := Init(context.Background(), connect, zerolog.Nop())

	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Same(t, mem, Get())
	assert.Equal(t, 1, calls)
}

func TestInit_ConnectorFailure(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	for _, err := range []error{ErrNotConfigured, errors.New("dial tcp: refused")} {
		connect := func(context.Context) (ports.RealtimeStore, error) { return nil, err }
		assert.Nil(t, Init(context.Background(), connect, zerolog.Nop()))
		assert.Nil(t, Get())
	}
}

func TestInit_BootstrapsMandatoryCollections(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	mem := NewMemoryStore()
	require.NotNil(t, Init(context.Background(), MemoryConnector(mem), zerolog.Nop()))

	for _, name := range domain.MandatoryCollections {
		ok, err := mem.Exists(context.Background(), name)
		require.NoError(t, err)
		assert.True(t, ok, name)
	}
}

func TestGet_BeforeInit(t *testing.T) {
	Reset()
	assert.Nil(t, Get())
}
