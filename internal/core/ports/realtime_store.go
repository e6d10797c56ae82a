package ports

import (
	"context"

	"github.com/appzeto/food-admin/internal/core/domain"
)

// RealtimeStore is a path-addressed document store such as the Firebase
// Realtime Database. Paths are "/"-separated; the first segment names a
// collection ("delivery_boys/42").
type RealtimeStore interface {
	// Get returns the document at path, or nil when nothing is stored there.
	Get(ctx context.Context, path string) (domain.Record, error)
	Exists(ctx context.Context, path string) (bool, error)
	// Set replaces the document at path.
	Set(ctx context.Context, path string, value domain.Record) error
	// Update merges fields into the document at path, creating it if needed.
	Update(ctx context.Context, path string, fields domain.Record) error
	Remove(ctx context.Context, path string) error
	// QueryEqual returns the children of path whose child field equals value, keyed by child id.
	QueryEqual(ctx context.Context, path, child string, value any) (map[string]domain.Record, error)
}

// EventPublisher forwards tracking events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.TrackingEvent) error
}
