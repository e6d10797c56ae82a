// Package realtime owns the process-wide connection to the realtime database
// and its backends (Firebase, Redis and in-memory).
package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/appzeto/food-admin/internal/core/ports"
)

// ErrNotConfigured means the selected backend is missing required settings.
var ErrNotConfigured = errors.New("realtime database not configured")

const bootstrapTimeout = 10 * time.Second

// Connector opens a backend.
type Connector func(ctx context.Context) (ports.RealtimeStore, error)

var (
	mu     sync.Mutex
	handle ports.RealtimeStore
	log    = zerolog.Nop()
)

// Init connects once and caches the handle. Later calls return the cached
// handle without reconnecting. When the connector fails Init returns nil and
// the tracking layer runs disabled.
//
// On a fresh connection the mandatory collections are created before Init
// returns; bootstrap failures are logged only.
func Init(ctx context.Context, connect Connector, logger zerolog.Logger) ports.RealtimeStore {
	mu.Lock()
	defer mu.Unlock()

	log = logger
	if handle != nil {
		return handle
	}

	store, err := connect(ctx)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			log.Warn().Err(err).Msg("realtime tracking disabled")
		} else {
			log.Error().Err(err).Msg("failed to connect realtime database")
		}
		return nil
	}
	handle = store
	log.Info().Msg("realtime database connected")

	bctx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()
	if err := EnsureMandatoryCollections(bctx, store, time.Now().UnixMilli(), log); err != nil {
		log.Warn().Err(err).Msg("mandatory collection bootstrap incomplete")
	}

	return handle
}

// Get returns the cached handle, or nil when Init has not succeeded.
func Get() ports.RealtimeStore {
	mu.Lock()
	defer mu.Unlock()

	if handle == nil {
		log.Warn().Msg("realtime database not initialized")
	}
	return handle
}

// Reset drops the cached handle. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	handle = nil
	log = zerolog.Nop()
}
