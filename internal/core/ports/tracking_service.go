package ports

import (
	"context"

	"github.com/appzeto/food-admin/internal/core/domain"
)

// TrackingService is the presence and order tracking layer. Every method
// fails soft: writes report success as a bool and reads return nil.
type TrackingService interface {
	UpsertDeliveryBoyPresence(ctx context.Context, boyID string, payload domain.Record) bool
	UpsertDriverPresence(ctx context.Context, driverID string, payload domain.Record) bool
	UpsertUserLocation(ctx context.Context, userID string, payload domain.Record) bool

	UpsertActiveOrder(ctx context.Context, orderID string, payload domain.Record) bool
	UpdateActiveOrderLocation(ctx context.Context, orderID string, lat, lng any) bool
	SetActiveOrderStatus(ctx context.Context, orderID, status string) bool
	RemoveActiveOrder(ctx context.Context, orderID string) bool

	UpsertRouteCache(ctx context.Context, routeKey string, payload domain.Record) bool

	GetDeliveryBoy(ctx context.Context, boyID string) domain.Record
	GetDriver(ctx context.Context, driverID string) domain.Record
	GetUser(ctx context.Context, userID string) domain.Record
	GetActiveOrder(ctx context.Context, orderID string) domain.Record
	GetRouteCache(ctx context.Context, routeKey string) *domain.RouteCacheEntry

	FindNearestOnlineDeliveryBoy(ctx context.Context, lat, lng, maxDistanceKm float64) *domain.NearestDeliveryBoy
}
