package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/appzeto/food-admin/internal/api/metrics"
	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/geo"
	"github.com/appzeto/food-admin/internal/core/ports"
)

// StoreProvider returns the current realtime store handle, or nil when the
// store is not initialised.
type StoreProvider func() ports.RealtimeStore

// Operation names used in logs and metrics.
const (
	opUpsert         = "upsert"
	opUpdateLocation = "update_location"
	opSetStatus      = "set_status"
	opRemove         = "remove"
	opGet            = "get"
	opQuery          = "query"
)

// orderNumericFields are merged field by field on every active order upsert.
var orderNumericFields = []string{
	"boy_lat", "boy_lng",
	"customer_lat", "customer_lng",
	"restaurant_lat", "restaurant_lng",
	"distance", "duration",
}

// TrackingService writes presence, active order and route cache records to
// the realtime store. No method returns an error: failures are logged and
// reported as false (writes) or nil (reads).
type TrackingService struct {
	store     StoreProvider
	publisher ports.EventPublisher
	log       zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// TrackingOption customises a TrackingService.
type TrackingOption func(*TrackingService)

// WithClock overrides the wall clock used for timestamps.
func WithClock(now func() time.Time) TrackingOption {
	return func(s *TrackingService) { s.now = now }
}

// NewTrackingService returns a TrackingService. publisher may be nil.
func NewTrackingService(store StoreProvider, publisher ports.EventPublisher, log zerolog.Logger, opts ...TrackingOption) *TrackingService {
	s := &TrackingService{
		store:     store,
		publisher: publisher,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ── Presence ─────────────────────────────────────────────────────────────────

// UpsertDeliveryBoyPresence merges a location ping into delivery_boys/{id}.
func (s *TrackingService) UpsertDeliveryBoyPresence(ctx context.Context, boyID string, payload domain.Record) bool {
	st := s.acquire(domain.CollectionDeliveryBoys, opUpsert, boyID)
	if st == nil {
		return false
	}

	fields := domain.Record{
		"status":       payload.StringOr("status", domain.DeliveryBoyOffline),
		"lat":          payload.Number("lat"),
		"lng":          payload.Number("lng"),
		"last_updated": payload.Or("last_updated", s.nowMs()),
	}
	err := st.Update(ctx, childPath(domain.CollectionDeliveryBoys, boyID), fields)
	if !s.finish(domain.CollectionDeliveryBoys, opUpsert, boyID, err) {
		return false
	}

	s.publish(ctx, domain.EventPresenceUpdated, domain.CollectionDeliveryBoys, boyID, fields)
	return true
}

// UpsertDriverPresence merges a driver profile and location into drivers/driver_{id}.
func (s *TrackingService) UpsertDriverPresence(ctx context.Context, driverID string, payload domain.Record) bool {
	st := s.acquire(domain.CollectionDrivers, opUpsert, driverID)
	if st == nil {
		return false
	}

	now := s.nowMs()
	fields := domain.Record{
		"id":                payload.Or("id", driverID),
		"name":              payload.StringOr("name", domain.DefaultDriverName),
		"mobile":            payload.StringOr("mobile", ""),
		"is_active":         payload.Coalesce("is_active", 1),
		"is_available":      payload.Coalesce("is_available", true),
		"l":                 []any{payload.Number("lat"), payload.Number("lng")},
		"bearing":           payload.Number("bearing"),
		"transport_type":    payload.StringOr("transport_type", domain.DefaultTransportType),
		"vehicle_number":    payload.StringOr("vehicle_number", ""),
		"vehicle_type_name": payload.StringOr("vehicle_type_name", ""),
		"vehicle_type_icon": payload.StringOr("vehicle_type_icon", domain.DefaultVehicleIcon),
		"date":              payload.Or("date", driverDate(now)),
		"updated_at":        payload.Or("updated_at", now),
	}
	key := domain.DriverKeyPrefix + driverID
	err := st.Update(ctx, childPath(domain.CollectionDrivers, key), fields)
	if !s.finish(domain.CollectionDrivers, opUpsert, driverID, err) {
		return false
	}

	s.publish(ctx, domain.EventPresenceUpdated, domain.CollectionDrivers, driverID, fields)
	return true
}

// UpsertUserLocation merges a customer's last known location into users/{id}.
func (s *TrackingService) UpsertUserLocation(ctx context.Context, userID string, payload domain.Record) bool {
	st := s.acquire(domain.CollectionUsers, opUpsert, userID)
	if st == nil {
		return false
	}

	fields := domain.Record{
		"lat":               payload.Number("lat"),
		"lng":               payload.Number("lng"),
		"address":           payload.StringOr("address", ""),
		"area":              payload.StringOr("area", ""),
		"city":              payload.StringOr("city", ""),
		"state":             payload.StringOr("state", ""),
		"formatted_address": payload.StringOr("formatted_address", ""),
		"accuracy":          payload.Coalesce("accuracy", nil),
		"last_updated":      payload.Or("last_updated", s.nowMs()),
	}
	err := st.Update(ctx, childPath(domain.CollectionUsers, userID), fields)
	if !s.finish(domain.CollectionUsers, opUpsert, userID, err) {
		return false
	}

	s.publish(ctx, domain.EventPresenceUpdated, domain.CollectionUsers, userID, fields)
	return true
}

// ── Active orders ────────────────────────────────────────────────────────────

// UpsertActiveOrder rewrites active_orders/{id} with the payload merged over
// the stored record. Fields missing from the payload keep their stored
// value and created_at never changes once set.
//
// The read and the write are not atomic; concurrent upserts of the same
// order from different processes can overwrite each other.
func (s *TrackingService) UpsertActiveOrder(ctx context.Context, orderID string, payload domain.Record) bool {
	st := s.acquire(domain.CollectionActiveOrders, opUpsert, orderID)
	if st == nil {
		return false
	}

	path := childPath(domain.CollectionActiveOrders, orderID)
	existing, err := st.Get(ctx, path)
	if err != nil {
		return s.finish(domain.CollectionActiveOrders, opUpsert, orderID, err)
	}
	if existing == nil {
		existing = domain.Record{}
	}

	record := mergeActiveOrder(existing, payload, s.nowMs())
	err = st.Set(ctx, path, record)
	if !s.finish(domain.CollectionActiveOrders, opUpsert, orderID, err) {
		return false
	}

	s.publish(ctx, domain.EventOrderUpserted, domain.CollectionActiveOrders, orderID, record)
	return true
}

// mergeActiveOrder builds the full record written by UpsertActiveOrder.
func mergeActiveOrder(existing, payload domain.Record, nowMs int64) domain.Record {
	record := existing.Clone()

	record["boy_id"] = payload.Coalesce("boy_id", existing.Coalesce("boy_id", nil))
	for _, f := range orderNumericFields {
		record[f] = geo.Number(payload.Coalesce(f, existing.Coalesce(f, 0)))
	}

	polyline := payload.StringOr("polyline", "")
	if polyline == "" {
		polyline = geo.EncodePolyline(geo.PointsFromAny(payload["route_coordinates"]))
	}
	if polyline == "" {
		polyline = existing.StringOr("polyline", "")
	}
	record["polyline"] = polyline

	record["status"] = payload.StringOr("status", existing.StringOr("status", domain.OrderStatusAssigned))
	record["created_at"] = existing.Or("created_at", payload.Or("created_at", nowMs))
	record["last_updated"] = payload.Or("last_updated", nowMs)

	return record
}

// UpdateActiveOrderLocation moves the delivery boy of an active order.
func (s *TrackingService) UpdateActiveOrderLocation(ctx context.Context, orderID string, lat, lng any) bool {
	st := s.acquire(domain.CollectionActiveOrders, opUpdateLocation, orderID)
	if st == nil {
		return false
	}

	fields := domain.Record{
		"boy_lat":      geo.Number(lat),
		"boy_lng":      geo.Number(lng),
		"last_updated": s.nowMs(),
	}
	err := st.Update(ctx, childPath(domain.CollectionActiveOrders, orderID), fields)
	if !s.finish(domain.CollectionActiveOrders, opUpdateLocation, orderID, err) {
		return false
	}

	s.publish(ctx, domain.EventOrderLocationUpdated, domain.CollectionActiveOrders, orderID, fields)
	return true
}

// SetActiveOrderStatus changes the status label of an active order.
func (s *TrackingService) SetActiveOrderStatus(ctx context.Context, orderID, status string) bool {
	st := s.acquire(domain.CollectionActiveOrders, opSetStatus, orderID)
	if st == nil {
		return false
	}

	fields := domain.Record{
		"status":       status,
		"last_updated": s.nowMs(),
	}
	err := st.Update(ctx, childPath(domain.CollectionActiveOrders, orderID), fields)
	if !s.finish(domain.CollectionActiveOrders, opSetStatus, orderID, err) {
		return false
	}

	s.publish(ctx, domain.EventOrderStatusChanged, domain.CollectionActiveOrders, orderID, fields)
	return true
}

// RemoveActiveOrder deletes an active order, typically on completion or cancellation.
func (s *TrackingService) RemoveActiveOrder(ctx context.Context, orderID string) bool {
	st := s.acquire(domain.CollectionActiveOrders, opRemove, orderID)
	if st == nil {
		return false
	}

	err := st.Remove(ctx, childPath(domain.CollectionActiveOrders, orderID))
	if !s.finish(domain.CollectionActiveOrders, opRemove, orderID, err) {
		return false
	}

	s.publish(ctx, domain.EventOrderRemoved, domain.CollectionActiveOrders, orderID, nil)
	return true
}

// ── Route cache ──────────────────────────────────────────────────────────────

// UpsertRouteCache replaces route_cache/{key}. The polyline is taken from the
// payload when present, otherwise encoded from route_coordinates.
func (s *TrackingService) UpsertRouteCache(ctx context.Context, routeKey string, payload domain.Record) bool {
	st := s.acquire(domain.CollectionRouteCache, opUpsert, routeKey)
	if st == nil {
		return false
	}

	polyline := payload.StringOr("polyline", "")
	if polyline == "" {
		polyline = geo.EncodePolyline(geo.PointsFromAny(payload["route_coordinates"]))
	}

	now := s.nowMs()
	record := domain.Record{
		"distance":   payload.Number("distance"),
		"duration":   payload.Number("duration"),
		"polyline":   polyline,
		"cached_at":  now,
		"expires_at": now + domain.RouteCacheTTL.Milliseconds(),
	}
	err := st.Set(ctx, childPath(domain.CollectionRouteCache, routeKey), record)
	if !s.finish(domain.CollectionRouteCache, opUpsert, routeKey, err) {
		return false
	}

	s.publish(ctx, domain.EventRouteCached, domain.CollectionRouteCache, routeKey, record)
	return true
}

// GetRouteCache returns the cached route, expired or not.
func (s *TrackingService) GetRouteCache(ctx context.Context, routeKey string) *domain.RouteCacheEntry {
	rec := s.read(ctx, domain.CollectionRouteCache, routeKey, routeKey)
	if rec == nil {
		metrics.RouteCacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil
	}

	entry := &domain.RouteCacheEntry{
		Key:       routeKey,
		Distance:  rec.Number("distance"),
		Duration:  rec.Number("duration"),
		Polyline:  rec.StringOr("polyline", ""),
		CachedAt:  int64(rec.Number("cached_at")),
		ExpiresAt: int64(rec.Number("expires_at")),
	}
	if entry.Expired(s.nowMs()) {
		metrics.RouteCacheLookupsTotal.WithLabelValues("expired").Inc()
	} else {
		metrics.RouteCacheLookupsTotal.WithLabelValues("hit").Inc()
	}
	return entry
}

// ── Reads ────────────────────────────────────────────────────────────────────

func (s *TrackingService) GetDeliveryBoy(ctx context.Context, boyID string) domain.Record {
	return s.read(ctx, domain.CollectionDeliveryBoys, boyID, boyID)
}

func (s *TrackingService) GetDriver(ctx context.Context, driverID string) domain.Record {
	if driverID == "" {
		return s.read(ctx, domain.CollectionDrivers, "", "")
	}
	return s.read(ctx, domain.CollectionDrivers, driverID, domain.DriverKeyPrefix+driverID)
}

func (s *TrackingService) GetUser(ctx context.Context, userID string) domain.Record {
	return s.read(ctx, domain.CollectionUsers, userID, userID)
}

func (s *TrackingService) GetActiveOrder(ctx context.Context, orderID string) domain.Record {
	return s.read(ctx, domain.CollectionActiveOrders, orderID, orderID)
}

func (s *TrackingService) read(ctx context.Context, collection, id, key string) domain.Record {
	st := s.acquire(collection, opGet, id)
	if st == nil {
		return nil
	}

	rec, err := st.Get(ctx, childPath(collection, key))
	if !s.finish(collection, opGet, id, err) {
		return nil
	}
	return rec
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// acquire returns the store for an operation on collection/id, or nil after
// logging why the operation cannot run.
func (s *TrackingService) acquire(collection, op, id string) ports.RealtimeStore {
	var st ports.RealtimeStore
	if s.store != nil {
		st = s.store()
	}
	if st == nil || !validKey(id) {
		s.log.Warn().
			Str("collection", collection).
			Str("op", op).
			Str("id", id).
			Bool("store_ready", st != nil).
			Msg("realtime database not available")
		metrics.RealtimeOperationsTotal.WithLabelValues(collection, op, metrics.ResultUnavailable).Inc()
		return nil
	}
	return st
}

// finish records the outcome of a store call and reports whether it succeeded.
func (s *TrackingService) finish(collection, op, id string, err error) bool {
	if err != nil {
		s.log.Warn().Err(err).
			Str("collection", collection).
			Str("op", op).
			Str("id", id).
			Msg("realtime database operation failed")
		metrics.RealtimeOperationsTotal.WithLabelValues(collection, op, metrics.ResultError).Inc()
		return false
	}
	metrics.RealtimeOperationsTotal.WithLabelValues(collection, op, metrics.ResultOK).Inc()
	return true
}

func (s *TrackingService) publish(ctx context.Context, typ domain.TrackingEventType, collection, id string, data domain.Record) {
	if s.publisher == nil {
		return
	}

	event := domain.TrackingEvent{
		ID:         s.newID(),
		Type:       typ,
		Collection: collection,
		EntityID:   id,
		OccurredAt: s.now().UTC(),
		Data:       data,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("type", string(typ)).Str("id", id).Msg("failed to publish tracking event")
		metrics.EventsPublishedTotal.WithLabelValues(string(typ), metrics.ResultError).Inc()
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues(string(typ), metrics.ResultOK).Inc()
}

func (s *TrackingService) nowMs() int64 {
	return s.now().UnixMilli()
}

func childPath(collection, key string) string {
	return collection + "/" + key
}

// validKey rejects empty ids and characters the realtime database does not
// allow in keys (a "/" would also address a different node).
func validKey(id string) bool {
	return id != "" && !strings.ContainsAny(id, "/.#$[]")
}

// driverDate renders the "date" field of a driver record: UTC, millisecond
// precision, space separated ("2026-10-18 09:30:00.000").
func driverDate(nowMs int64) string {
	return time.UnixMilli(nowMs).UTC().Format("2006-01-02 15:04:05.000")
}
