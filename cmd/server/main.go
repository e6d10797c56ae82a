package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/appzeto/food-admin/internal/api"
	"github.com/appzeto/food-admin/internal/api/handler"
	"github.com/appzeto/food-admin/internal/core/ports"
	"github.com/appzeto/food-admin/internal/core/service"
	"github.com/appzeto/food-admin/internal/infrastructure/db/mongo"
	"github.com/appzeto/food-admin/internal/infrastructure/db/redis"
	"github.com/appzeto/food-admin/internal/infrastructure/messaging"
	"github.com/appzeto/food-admin/internal/infrastructure/queue"
	"github.com/appzeto/food-admin/internal/infrastructure/realtime"
	"github.com/appzeto/food-admin/internal/pkg/config"
	"github.com/appzeto/food-admin/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "food-admin",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB (admin entities) ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	cityRepo := mongo.NewCityRepository(db)
	hubRepo := mongo.NewHubRepository(db)
	aboutRepo := mongo.NewAboutRepository(db)
	if err := mongo.EnsureIndexes(ctx, cityRepo, hubRepo, aboutRepo); err != nil {
		log.Warn().Err(err).Msg("failed to ensure MongoDB indexes")
	}

	checks := []handler.DependencyCheck{handler.MongoCheck(db)}

	// --- Redis (optional) ---
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, cfg.Redis.Connection())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer rdb.Close()
		checks = append(checks, handler.RedisCheck(rdb, cfg.Realtime.Backend == config.BackendRedis))
	}

	// --- Realtime database ---
	realtime.Init(ctx, connector(cfg, rdb), log.With().Str("component", "realtime").Logger())
	checks = append(checks, handler.RealtimeCheck(realtime.Get))

	// --- Tracking events ---
	var publisher ports.EventPublisher = messaging.NewLogPublisher(log)
	if cfg.Kafka.Enabled() {
		producer, err := messaging.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			log.Error().Err(err).Msg("kafka producer unavailable, tracking events will only be logged")
		} else {
			defer producer.Close()
			publisher = producer
		}
	}

	// --- Services ---
	// Stopped after e.Shutdown so writes accepted during the drain still apply.
	orders := queue.NewDispatcher(cfg.Realtime.OrderWorkers, log)
	orders.Start(context.Background())

	tracking := service.NewTrackingService(realtime.Get, publisher, logger.For("tracking"))
	cities := service.NewCityService(cityRepo, hubRepo, logger.For("cities"))
	hubs := service.NewHubService(hubRepo, cityRepo, logger.For("hubs"))
	about := service.NewAboutService(aboutRepo, logger.For("about"))

	e := api.NewRouter(api.Dependencies{
		Logger:          log,
		JWTSecret:       cfg.JWTSecret,
		Tracking:        tracking,
		Orders:          orders,
		NearestRadiusKm: cfg.Realtime.NearestMaxDistance,
		Cities:          cities,
		Hubs:            hubs,
		About:           about,
		Checks:          checks,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Realtime.Backend).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	orders.Stop()
}

// connector picks the realtime backend. The redis backend reuses the shared
// client when one is already open.
func connector(cfg *config.Config, rdb *goredis.Client) realtime.Connector {
	switch cfg.Realtime.Backend {
	case config.BackendRedis:
		if rdb != nil {
			return func(context.Context) (ports.RealtimeStore, error) {
				return realtime.NewRedisStore(rdb), nil
			}
		}
		return realtime.RedisConnector(cfg.Redis.Connection())
	case config.BackendMemory:
		return realtime.MemoryConnector(realtime.NewMemoryStore())
	default:
		return realtime.FirebaseConnector(realtime.FirebaseCredentials{
			ProjectID:   cfg.Firebase.ProjectID,
			ClientEmail: cfg.Firebase.ClientEmail,
			PrivateKey:  cfg.Firebase.PrivateKey,
			DatabaseURL: cfg.Firebase.DatabaseURL,
		})
	}
}
