package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"

	"github.com/appzeto/food-admin/internal/infrastructure/db/redis"
)

// Realtime backends accepted by REALTIME_BACKEND.
const (
	BackendFirebase = "firebase"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Firebase FirebaseConfig
	Realtime RealtimeConfig
	Kafka    KafkaConfig
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,            default=food_admin"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE, default=50"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=20"`
}

func (r RedisConfig) Connection() redis.Config {
	return redis.Config{Addr: r.Addr, Password: r.Password, DB: r.DB, PoolSize: r.PoolSize}
}

// FirebaseConfig holds the service-account values of the hosted realtime database.
// All four are required; a partial set leaves tracking disabled.
type FirebaseConfig struct {
	ProjectID   string `env:"FIREBASE_PROJECT_ID"`
	ClientEmail string `env:"FIREBASE_CLIENT_EMAIL"`
	PrivateKey  string `env:"FIREBASE_PRIVATE_KEY"`
	DatabaseURL string `env:"FIREBASE_DATABASE_URL"`
}

// Complete reports whether every required Firebase value is present.
func (f FirebaseConfig) Complete() bool {
	return f.ProjectID != "" && f.ClientEmail != "" && f.PrivateKey != "" && f.DatabaseURL != ""
}

// NormalizedPrivateKey turns literal "\n" sequences (as stored in .env files) into newlines.
func (f FirebaseConfig) NormalizedPrivateKey() string {
	return strings.ReplaceAll(f.PrivateKey, `\n`, "\n")
}

type RealtimeConfig struct {
	Backend            string  `env:"REALTIME_BACKEND,        default=firebase"`
	NearestMaxDistance float64 `env:"NEAREST_MAX_DISTANCE_KM, default=20"`
	OrderWorkers       int     `env:"ORDER_WORKERS,           default=8"`
}

type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS"`
	Topic   string   `env:"KAFKA_TOPIC, default=tracking-events"`
}

// Enabled reports whether at least one broker is configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}

	cfg.Realtime.Backend = strings.ToLower(strings.TrimSpace(cfg.Realtime.Backend))
	switch cfg.Realtime.Backend {
	case BackendFirebase, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown REALTIME_BACKEND %q", cfg.Realtime.Backend)
	}
	if cfg.Realtime.Backend == BackendRedis && cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("REALTIME_BACKEND=redis requires REDIS_ADDR")
	}

	return &cfg, nil
}
