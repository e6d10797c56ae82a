package handler

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/geo"
	"github.com/appzeto/food-admin/internal/core/ports"
	"github.com/appzeto/food-admin/internal/infrastructure/queue"
)

// OrderRunner applies jobs for the same order one at a time.
type OrderRunner interface {
	Do(ctx context.Context, orderID string, fn queue.Job) bool
}

// TrackingHandler exposes the presence and order tracking layer over HTTP.
// Writes answer {"ok": bool}; an unavailable realtime store turns into 503.
type TrackingHandler struct {
	service       ports.TrackingService
	orders        OrderRunner
	nearestRadius float64
}

// NewTrackingHandler wires the handler. nearestRadiusKm is used when a
// nearest search omits radius_km.
func NewTrackingHandler(service ports.TrackingService, orders OrderRunner, nearestRadiusKm float64) *TrackingHandler {
	if nearestRadiusKm <= 0 || math.IsNaN(nearestRadiusKm) {
		nearestRadiusKm = domain.DefaultNearestRadiusKm
	}
	return &TrackingHandler{service: service, orders: orders, nearestRadius: nearestRadiusKm}
}

// UpsertDeliveryBoyPresence handles PUT /api/tracking/delivery-boys/:id/presence.
//
// @Summary      Upsert delivery boy presence
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Delivery boy id"
// @Param        body  body      presenceRequest true  "Presence fields (lat, lng, status, ...)"
// @Success      200   {object}  okResponse
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  okResponse
// @Router       /api/tracking/delivery-boys/{id}/presence [put]
func (h *TrackingHandler) UpsertDeliveryBoyPresence(c echo.Context) error {
	payload, err := bindRecord(c)
	if err != nil {
		return err
	}
	return writeResult(c, h.service.UpsertDeliveryBoyPresence(c.Request().Context(), c.Param("id"), payload))
}

// GetDeliveryBoy handles GET /api/tracking/delivery-boys/:id.
//
// @Summary      Read a delivery boy presence record
// @Tags         tracking
// @Produce      json
// @Param        id   path      string  true  "Delivery boy id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  errorResponse
// @Router       /api/tracking/delivery-boys/{id} [get]
func (h *TrackingHandler) GetDeliveryBoy(c echo.Context) error {
	return readResult(c, h.service.GetDeliveryBoy(c.Request().Context(), c.Param("id")), "delivery boy not found")
}

// FindNearestDeliveryBoy handles GET /api/tracking/delivery-boys/nearest.
//
// @Summary      Find the nearest online delivery boy
// @Tags         tracking
// @Produce      json
// @Param        lat        query     number  true   "Latitude"
// @Param        lng        query     number  true   "Longitude"
// @Param        radius_km  query     number  false  "Search radius in km"
// @Success      200        {object}  map[string]any
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /api/tracking/delivery-boys/nearest [get]
func (h *TrackingHandler) FindNearestDeliveryBoy(c echo.Context) error {
	lat, err := queryFloat(c, "lat")
	if err != nil {
		return err
	}
	lng, err := queryFloat(c, "lng")
	if err != nil {
		return err
	}

	radius := h.nearestRadius
	if c.QueryParam("radius_km") != "" {
		if radius, err = queryFloat(c, "radius_km"); err != nil {
			return err
		}
		if radius < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "radius_km must not be negative")
		}
	}

	nearest := h.service.FindNearestOnlineDeliveryBoy(c.Request().Context(), lat, lng, radius)
	if nearest == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "no online delivery boy within radius"})
	}
	return c.JSON(http.StatusOK, nearest.Flatten())
}

// UpsertDriverPresence handles PUT /api/tracking/drivers/:id/presence.
//
// @Summary      Upsert driver presence
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Driver id"
// @Param        body  body      presenceRequest true  "Presence fields"
// @Success      200   {object}  okResponse
// @Failure      503   {object}  okResponse
// @Router       /api/tracking/drivers/{id}/presence [put]
func (h *TrackingHandler) UpsertDriverPresence(c echo.Context) error {
	payload, err := bindRecord(c)
	if err != nil {
		return err
	}
	return writeResult(c, h.service.UpsertDriverPresence(c.Request().Context(), c.Param("id"), payload))
}

// GetDriver handles GET /api/tracking/drivers/:id.
//
// @Summary      Read a driver record
// @Tags         tracking
// @Produce      json
// @Param        id   path      string  true  "Driver id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  errorResponse
// @Router       /api/tracking/drivers/{id} [get]
func (h *TrackingHandler) GetDriver(c echo.Context) error {
	return readResult(c, h.service.GetDriver(c.Request().Context(), c.Param("id")), "driver not found")
}

// UpsertUserLocation handles PUT /api/tracking/users/:id/location.
//
// @Summary      Upsert a user's location
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "User id"
// @Param        body  body      presenceRequest true  "Location fields"
// @Success      200   {object}  okResponse
// @Failure      503   {object}  okResponse
// @Router       /api/tracking/users/{id}/location [put]
func (h *TrackingHandler) UpsertUserLocation(c echo.Context) error {
	payload, err := bindRecord(c)
	if err != nil {
		return err
	}
	return writeResult(c, h.service.UpsertUserLocation(c.Request().Context(), c.Param("id"), payload))
}

// GetUser handles GET /api/tracking/users/:id.
//
// @Summary      Read a user location record
// @Tags         tracking
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  errorResponse
// @Router       /api/tracking/users/{id} [get]
func (h *TrackingHandler) GetUser(c echo.Context) error {
	return readResult(c, h.service.GetUser(c.Request().Context(), c.Param("id")), "user not found")
}

// UpsertActiveOrder handles PUT /api/tracking/orders/:id.
//
// @Summary      Create or merge an active order
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Order id"
// @Param        body  body      orderRequest  true  "Order fields"
// @Success      200   {object}  okResponse
// @Failure      503   {object}  okResponse
// @Router       /api/tracking/orders/{id} [put]
func (h *TrackingHandler) UpsertActiveOrder(c echo.Context) error {
	payload, err := bindRecord(c)
	if err != nil {
		return err
	}
	orderID := c.Param("id")
	ok := h.orders.Do(c.Request().Context(), orderID, func(ctx context.Context) bool {
		return h.service.UpsertActiveOrder(ctx, orderID, payload)
	})
	return writeResult(c, ok)
}

// UpdateActiveOrderLocation handles PATCH /api/tracking/orders/:id/location.
//
// @Summary      Move the delivery boy of an active order
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Order id"
// @Param        body  body      locationRequest  true  "Delivery boy coordinates"
// @Success      200   {object}  okResponse
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  okResponse
// @Router       /api/tracking/orders/{id}/location [patch]
func (h *TrackingHandler) UpdateActiveOrderLocation(c echo.Context) error {
	var req locationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	// 0 is a valid coordinate, so presence is checked by hand.
	if req.Lat == nil || req.Lng == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lat and lng are required")
	}

	orderID := c.Param("id")
	ok := h.orders.Do(c.Request().Context(), orderID, func(ctx context.Context) bool {
		return h.service.UpdateActiveOrderLocation(ctx, orderID, req.Lat, req.Lng)
	})
	return writeResult(c, ok)
}

// SetActiveOrderStatus handles PATCH /api/tracking/orders/:id/status.
//
// @Summary      Change the status of an active order
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Order id"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  okResponse
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  okResponse
// @Router       /api/tracking/orders/{id}/status [patch]
func (h *TrackingHandler) SetActiveOrderStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	orderID := c.Param("id")
	ok := h.orders.Do(c.Request().Context(), orderID, func(ctx context.Context) bool {
		return h.service.SetActiveOrderStatus(ctx, orderID, req.Status)
	})
	return writeResult(c, ok)
}

// RemoveActiveOrder handles DELETE /api/tracking/orders/:id.
//
// @Summary      Remove an active order
// @Tags         tracking
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  okResponse
// @Failure      503  {object}  okResponse
// @Router       /api/tracking/orders/{id} [delete]
func (h *TrackingHandler) RemoveActiveOrder(c echo.Context) error {
	orderID := c.Param("id")
	ok := h.orders.Do(c.Request().Context(), orderID, func(ctx context.Context) bool {
		return h.service.RemoveActiveOrder(ctx, orderID)
	})
	return writeResult(c, ok)
}

// GetActiveOrder handles GET /api/tracking/orders/:id.
//
// @Summary      Read an active order
// @Tags         tracking
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  errorResponse
// @Router       /api/tracking/orders/{id} [get]
func (h *TrackingHandler) GetActiveOrder(c echo.Context) error {
	return readResult(c, h.service.GetActiveOrder(c.Request().Context(), c.Param("id")), "order not found")
}

// UpsertRouteCache handles PUT /api/tracking/routes/cache.
// The key comes from route_key or from the start/end coordinates.
//
// @Summary      Cache a route between two coordinates
// @Tags         routes
// @Accept       json
// @Produce      json
// @Param        body  body      routeCacheRequest  true  "Route"
// @Success      200   {object}  routeCacheWriteResponse
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  okResponse
// @Router       /api/tracking/routes/cache [put]
func (h *TrackingHandler) UpsertRouteCache(c echo.Context) error {
	payload, err := bindRecord(c)
	if err != nil {
		return err
	}

	key := payload.StringOr("route_key", "")
	if key == "" {
		for _, f := range []string{"start_lat", "start_lng", "end_lat", "end_lng"} {
			if !payload.Has(f) {
				return echo.NewHTTPError(http.StatusBadRequest, "route_key or start_lat, start_lng, end_lat and end_lng are required")
			}
		}
		key = geo.RouteCacheKey(
			payload.Number("start_lat"), payload.Number("start_lng"),
			payload.Number("end_lat"), payload.Number("end_lng"),
		)
	}

	ok := h.service.UpsertRouteCache(c.Request().Context(), key, payload)
	if !ok {
		return c.JSON(http.StatusServiceUnavailable, okResponse{OK: false})
	}
	return c.JSON(http.StatusOK, routeCacheWriteResponse{OK: true, RouteKey: key})
}

// GetRouteCache handles GET /api/tracking/routes/cache.
//
// @Summary      Read a cached route
// @Tags         routes
// @Produce      json
// @Param        route_key  query     string  false  "Normalized key"
// @Param        start_lat  query     number  false  "Start latitude"
// @Param        start_lng  query     number  false  "Start longitude"
// @Param        end_lat    query     number  false  "End latitude"
// @Param        end_lng    query     number  false  "End longitude"
// @Success      200        {object}  routeCacheResponse
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /api/tracking/routes/cache [get]
func (h *TrackingHandler) GetRouteCache(c echo.Context) error {
	key := strings.TrimSpace(c.QueryParam("route_key"))
	if key == "" {
		var coords [4]float64
		for i, name := range []string{"start_lat", "start_lng", "end_lat", "end_lng"} {
			v, err := queryFloat(c, name)
			if err != nil {
				return err
			}
			coords[i] = v
		}
		key = geo.RouteCacheKey(coords[0], coords[1], coords[2], coords[3])
	}

	entry := h.service.GetRouteCache(c.Request().Context(), key)
	if entry == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "route not cached"})
	}
	return c.JSON(http.StatusOK, toRouteCacheResponse(entry, time.Now().UnixMilli()))
}

// EncodePolyline handles POST /api/tracking/routes/polyline/encode.
//
// @Summary      Encode coordinates as a polyline
// @Tags         routes
// @Accept       json
// @Produce      json
// @Param        body  body      encodeRequest   true  "Coordinates as [lat, lng] pairs"
// @Success      200   {object}  polylineResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/tracking/routes/polyline/encode [post]
func (h *TrackingHandler) EncodePolyline(c echo.Context) error {
	payload, err := bindRecord(c)
	if err != nil {
		return err
	}
	points := geo.PointsFromAny(payload["points"])
	return c.JSON(http.StatusOK, polylineResponse{Polyline: geo.EncodePolyline(points)})
}

// DecodePolyline handles POST /api/tracking/routes/polyline/decode.
//
// @Summary      Decode a polyline into coordinates
// @Tags         routes
// @Accept       json
// @Produce      json
// @Param        body  body      decodeRequest   true  "Encoded polyline"
// @Success      200   {object}  pointsResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/tracking/routes/polyline/decode [post]
func (h *TrackingHandler) DecodePolyline(c echo.Context) error {
	var req decodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	points, err := geo.DecodePolyline(req.Polyline)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if points == nil {
		points = []geo.Point{}
	}
	return c.JSON(http.StatusOK, pointsResponse{Points: points})
}

// bindRecord decodes a JSON object body. An empty body is an empty record.
func bindRecord(c echo.Context) (domain.Record, error) {
	payload := domain.Record{}
	if c.Request().ContentLength == 0 {
		return payload, nil
	}
	if err := c.Echo().JSONSerializer.Deserialize(c, &payload); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if payload == nil {
		payload = domain.Record{}
	}
	return payload, nil
}

func queryFloat(c echo.Context, name string) (float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return v, nil
}

func writeResult(c echo.Context, ok bool) error {
	if !ok {
		return c.JSON(http.StatusServiceUnavailable, okResponse{OK: false})
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

func readResult(c echo.Context, rec domain.Record, notFound string) error {
	if rec == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: notFound})
	}
	return c.JSON(http.StatusOK, rec)
}
