package realtime

import (
	"context"

	"github.com/appzeto/food-admin/internal/core/ports"
)

// MemoryConnector hands out the given store, for local runs and tests.
func MemoryConnector(store *MemoryStore) Connector {
	return func(context.Context) (ports.RealtimeStore, error) {
		return store, nil
	}
}
