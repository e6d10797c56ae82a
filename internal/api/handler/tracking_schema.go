package handler

import (
	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/geo"
)

type okResponse struct {
	OK bool `json:"ok"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// presenceRequest documents the common presence fields. Any other field is
// stored as sent.
type presenceRequest struct {
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	Status        string  `json:"status,omitempty"`
	Accuracy      float64 `json:"accuracy,omitempty"`
	Name          string  `json:"name,omitempty"`
	TransportType string  `json:"transport_type,omitempty"`
}

// orderRequest documents the fields merged into an active order.
type orderRequest struct {
	BoyID          string  `json:"boy_id,omitempty"`
	BoyLat         float64 `json:"boy_lat,omitempty"`
	BoyLng         float64 `json:"boy_lng,omitempty"`
	CustomerLat    float64 `json:"customer_lat,omitempty"`
	CustomerLng    float64 `json:"customer_lng,omitempty"`
	RestaurantLat  float64 `json:"restaurant_lat,omitempty"`
	RestaurantLng  float64 `json:"restaurant_lng,omitempty"`
	Polyline       string  `json:"polyline,omitempty"`
	Distance       float64 `json:"distance,omitempty"`
	Duration       float64 `json:"duration,omitempty"`
	Status         string  `json:"status,omitempty"`
	CustomerName   string  `json:"customer_name,omitempty"`
	RestaurantName string  `json:"restaurant_name,omitempty"`
}

// locationRequest keeps lat/lng loose; the tracking layer coerces them.
type locationRequest struct {
	Lat any `json:"lat" swaggertype:"number"`
	Lng any `json:"lng" swaggertype:"number"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type routeCacheRequest struct {
	RouteKey         string      `json:"route_key,omitempty"`
	StartLat         float64     `json:"start_lat"`
	StartLng         float64     `json:"start_lng"`
	EndLat           float64     `json:"end_lat"`
	EndLng           float64     `json:"end_lng"`
	Distance         float64     `json:"distance"`
	Duration         float64     `json:"duration"`
	Polyline         string      `json:"polyline,omitempty"`
	RouteCoordinates [][]float64 `json:"route_coordinates,omitempty"`
}

type routeCacheWriteResponse struct {
	OK       bool   `json:"ok"`
	RouteKey string `json:"route_key"`
}

type routeCacheResponse struct {
	RouteKey  string  `json:"route_key"`
	Distance  float64 `json:"distance"`
	Duration  float64 `json:"duration"`
	Polyline  string  `json:"polyline"`
	CachedAt  int64   `json:"cached_at"`
	ExpiresAt int64   `json:"expires_at"`
	Expired   bool    `json:"expired"`
}

func toRouteCacheResponse(e *domain.RouteCacheEntry, nowMs int64) routeCacheResponse {
	return routeCacheResponse{
		RouteKey:  e.Key,
		Distance:  e.Distance,
		Duration:  e.Duration,
		Polyline:  e.Polyline,
		CachedAt:  e.CachedAt,
		ExpiresAt: e.ExpiresAt,
		Expired:   e.Expired(nowMs),
	}
}

type encodeRequest struct {
	Points [][]float64 `json:"points"`
}

type decodeRequest struct {
	Polyline string `json:"polyline"`
}

type polylineResponse struct {
	Polyline string `json:"polyline"`
}

type pointsResponse struct {
	Points []geo.Point `json:"points"`
}
