package domain

import "time"

// Realtime collections. Every one of them is created on first start.
const (
	CollectionUsers        = "users"
	CollectionDrivers      = "drivers"
	CollectionDeliveryBoys = "delivery_boys"
	CollectionActiveOrders = "active_orders"
	CollectionRouteCache   = "route_cache"
)

// MandatoryCollections lists the realtime collections in bootstrap order.
var MandatoryCollections = []string{
	CollectionUsers,
	CollectionDrivers,
	CollectionDeliveryBoys,
	CollectionActiveOrders,
	CollectionRouteCache,
}

// MetaKey is the child holding a collection's bootstrap metadata.
const MetaKey = "_meta"

// IsRequiredCollection reports whether a collection is flagged mandatory in its metadata stub.
func IsRequiredCollection(name string) bool {
	return name == CollectionUsers || name == CollectionDrivers
}

// Presence and order defaults.
const (
	DeliveryBoyOnline    = "online"
	DeliveryBoyOffline   = "offline"
	OrderStatusAssigned  = "assigned"
	DefaultDriverName    = "Delivery Partner"
	DefaultTransportType = "both"
	DefaultVehicleIcon   = "motor_bike"
	DriverKeyPrefix      = "driver_"
)

// DefaultNearestRadiusKm bounds the nearest delivery boy search when no radius is given.
const DefaultNearestRadiusKm = 20.0

// RouteCacheTTL is the advisory lifetime of a route_cache entry.
const RouteCacheTTL = 7 * 24 * time.Hour

// RouteCacheEntry is a cached route between two coordinates.
// Distance is in whatever unit the writer supplied.
type RouteCacheEntry struct {
	Key       string  `json:"key"`
	Distance  float64 `json:"distance"`
	Duration  float64 `json:"duration"`
	Polyline  string  `json:"polyline"`
	CachedAt  int64   `json:"cached_at"`
	ExpiresAt int64   `json:"expires_at"`
}

// Expired reports whether the entry is past expires_at. The store never
// enforces it; readers decide.
func (e RouteCacheEntry) Expired(nowMs int64) bool {
	return e.ExpiresAt <= nowMs
}

// NearestDeliveryBoy is the winner of a nearest online delivery boy search.
type NearestDeliveryBoy struct {
	BoyID      string
	DistanceKm float64
	Record     Record
}

// Flatten merges the id and distance into the stored record. Stored fields
// win over the computed ones.
func (n NearestDeliveryBoy) Flatten() Record {
	out := Record{
		"boy_id":      n.BoyID,
		"distance_km": n.DistanceKm,
	}
	for k, v := range n.Record {
		out[k] = v
	}
	return out
}

// TrackingEventType names a change applied to the realtime store.
type TrackingEventType string

const (
	EventPresenceUpdated      TrackingEventType = "presence.updated"
	EventOrderUpserted        TrackingEventType = "order.upserted"
	EventOrderLocationUpdated TrackingEventType = "order.location_updated"
	EventOrderStatusChanged   TrackingEventType = "order.status_changed"
	EventOrderRemoved         TrackingEventType = "order.removed"
	EventRouteCached          TrackingEventType = "route.cached"
)

// TrackingEvent describes a successful realtime write. It is published
// after the fact and never affects the write result.
type TrackingEvent struct {
	ID         string            `json:"id"`
	Type       TrackingEventType `json:"type"`
	Collection string            `json:"collection"`
	EntityID   string            `json:"entity_id"`
	OccurredAt time.Time         `json:"occurred_at"`
	Data       Record            `json:"data,omitempty"`
}
