package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/appzeto/food-admin/docs"
	"github.com/appzeto/food-admin/internal/api/handler"
	"github.com/appzeto/food-admin/internal/api/middleware"
	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/ports"
)

// Dependencies is everything the router hands to its handlers.
type Dependencies struct {
	Logger    zerolog.Logger
	JWTSecret string

	Tracking        ports.TrackingService
	Orders          handler.OrderRunner
	NearestRadiusKm float64

	Cities ports.CityService
	Hubs   ports.HubService
	About  ports.AboutService

	Checks []handler.DependencyCheck

	// Registerer receives the HTTP metrics; nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// @title        Food Admin API
// @version      1.0
// @description  Admin backend and realtime tracking API for food delivery.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := registerer.(prometheus.Gatherer); ok {
		gatherer = g
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "food_admin",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks...)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Admin ---
	aboutHandler := handler.NewAboutHandler(deps.About)
	cityHandler := handler.NewCityHandler(deps.Cities)
	hubHandler := handler.NewHubHandler(deps.Hubs)

	api.GET("/about/public", aboutHandler.Public)

	admin := api.Group("/admin")
	if deps.JWTSecret != "" {
		admin.Use(middleware.Auth(deps.JWTSecret), middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin))
	} else {
		deps.Logger.Warn().Msg("JWT_SECRET not set, admin routes are unauthenticated")
	}

	admin.GET("/about", aboutHandler.Get)
	admin.PUT("/about", aboutHandler.Update)

	admin.GET("/cities", cityHandler.List)
	admin.POST("/cities", cityHandler.Create)
	admin.PUT("/cities/:id", cityHandler.Update)
	admin.DELETE("/cities/:id", cityHandler.Delete)

	admin.GET("/hubs", hubHandler.List)
	admin.POST("/hubs", hubHandler.Create)
	admin.PUT("/hubs/:id", hubHandler.Update)
	admin.DELETE("/hubs/:id", hubHandler.Delete)

	// --- Tracking ---
	tracking := handler.NewTrackingHandler(deps.Tracking, deps.Orders, deps.NearestRadiusKm)
	tr := api.Group("/tracking")

	tr.GET("/delivery-boys/nearest", tracking.FindNearestDeliveryBoy)
	tr.PUT("/delivery-boys/:id/presence", tracking.UpsertDeliveryBoyPresence)
	tr.GET("/delivery-boys/:id", tracking.GetDeliveryBoy)

	tr.PUT("/drivers/:id/presence", tracking.UpsertDriverPresence)
	tr.GET("/drivers/:id", tracking.GetDriver)

	tr.PUT("/users/:id/location", tracking.UpsertUserLocation)
	tr.GET("/users/:id", tracking.GetUser)

	tr.PUT("/orders/:id", tracking.UpsertActiveOrder)
	tr.GET("/orders/:id", tracking.GetActiveOrder)
	tr.DELETE("/orders/:id", tracking.RemoveActiveOrder)
	tr.PATCH("/orders/:id/location", tracking.UpdateActiveOrderLocation)
	tr.PATCH("/orders/:id/status", tracking.SetActiveOrderStatus)

	tr.PUT("/routes/cache", tracking.UpsertRouteCache)
	tr.GET("/routes/cache", tracking.GetRouteCache)
	tr.POST("/routes/polyline/encode", tracking.EncodePolyline)
	tr.POST("/routes/polyline/decode", tracking.DecodePolyline)

	return e
}

// requestLogger logs one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
