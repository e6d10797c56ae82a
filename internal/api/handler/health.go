package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/appzeto/food-admin/internal/core/ports"
)

// HealthHandler handles GET /health, the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// DependencyCheck probes one dependency. A failing optional check degrades
// readiness without failing it.
type DependencyCheck struct {
	Name     string
	Required bool
	Check    func(ctx context.Context) error
}

// MongoCheck pings the server and runs a ping command against the database.
func MongoCheck(db *mongo.Database) DependencyCheck {
	return DependencyCheck{
		Name:     "mongodb",
		Required: true,
		Check: func(ctx context.Context) error {
			if err := db.Client().Ping(ctx, nil); err != nil {
				return err
			}
			return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		},
	}
}

func RedisCheck(rdb *redis.Client, required bool) DependencyCheck {
	return DependencyCheck{
		Name:     "redis",
		Required: required,
		Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	}
}

var errRealtimeUnavailable = errors.New("realtime database not initialized")

// RealtimeCheck reports whether the realtime store handle is available.
// Tracking fails soft without it, so the check is optional.
func RealtimeCheck(store func() ports.RealtimeStore) DependencyCheck {
	return DependencyCheck{
		Name: "realtime",
		Check: func(ctx context.Context) error {
			if store() == nil {
				return errRealtimeUnavailable
			}
			return nil
		},
	}
}

// HealthDependenciesHandler handles GET /health/ready, the readiness probe.
type HealthDependenciesHandler struct {
	checks  []DependencyCheck
	timeout time.Duration
}

func NewHealthDependenciesHandler(checks ...DependencyCheck) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{checks: checks, timeout: 3 * time.Second}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checks))
	ready, degraded := true, false

	for _, chk := range h.checks {
		if err := chk.Check(ctx); err != nil {
			deps[chk.Name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			if chk.Required {
				ready = false
			} else {
				degraded = true
			}
			continue
		}
		deps[chk.Name] = dependencyStatus{Status: "ok"}
	}

	status, httpStatus := "ok", http.StatusOK
	switch {
	case !ready:
		status, httpStatus = "unavailable", http.StatusServiceUnavailable
	case degraded:
		status = "degraded"
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
