package app

import (
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/learnpath-backend/internal/clients/redis"
	"github.com/yungbote/learnpath-backend/internal/data/db"
	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/platform/envutil"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

const (
	LockBackendMemory = "memory"
	LockBackendRedis  = "redis"
)

type Config struct {
	Port            string
	ShutdownTimeout time.Duration

	Postgres db.PostgresConfig
	Redis    redis.Config

	JWTSecretKey string

	LockBackend string
	LockTTL     time.Duration
	LockWait    time.Duration

	TxRetryAttempts int
	TxRetryBackoff  time.Duration

	ScoringWeightsPath     string
	RecommendationMaxLimit int

	MetricsEnabled bool
	Otel           observability.OtelConfig

	CORSAllowedOrigins []string
}

// LoadDotEnv reads .env files into the process environment. Missing files
// are fine; real environment variables always win.
func LoadDotEnv(log *logger.Logger, files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			log.Debug("No env file loaded", "file", f, "error", err)
		}
	}
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:            envutil.String("PORT", "8080", log),
		ShutdownTimeout: envutil.Duration("SHUTDOWN_TIMEOUT", 15*time.Second, log),

		Postgres: db.PostgresConfig{
			DSN:             envutil.String("DATABASE_URL", "", log),
			Host:            envutil.String("POSTGRES_HOST", "localhost", log),
			Port:            envutil.String("POSTGRES_PORT", "5432", log),
			User:            envutil.String("POSTGRES_USER", "postgres", log),
			Password:        envutil.String("POSTGRES_PASSWORD", "", log),
			Name:            envutil.String("POSTGRES_NAME", "learnpath", log),
			SSLMode:         envutil.String("POSTGRES_SSLMODE", "disable", log),
			MaxOpenConns:    envutil.Int("POSTGRES_MAX_OPEN_CONNS", 20, log),
			MaxIdleConns:    envutil.Int("POSTGRES_MAX_IDLE_CONNS", 10, log),
			ConnMaxLifetime: envutil.Duration("POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute, log),
			SlowThreshold:   envutil.Duration("POSTGRES_SLOW_THRESHOLD", time.Second, log),
		},
		Redis: redis.Config{
			Addr:     envutil.String("REDIS_ADDR", "", log),
			Password: envutil.String("REDIS_PASSWORD", "", log),
			DB:       envutil.Int("REDIS_DB", 0, log),
		},

		JWTSecretKey: envutil.String("JWT_SECRET_KEY", "", log),

		LockBackend: strings.ToLower(envutil.String("PROGRESS_LOCK_BACKEND", LockBackendMemory, log)),
		LockTTL:     envutil.Duration("PROGRESS_LOCK_TTL", 10*time.Second, log),
		LockWait:    envutil.Duration("PROGRESS_LOCK_WAIT", 5*time.Second, log),

		TxRetryAttempts: envutil.Int("PROGRESS_TX_RETRY_ATTEMPTS", 3, log),
		TxRetryBackoff:  envutil.Duration("PROGRESS_TX_RETRY_BACKOFF", 25*time.Millisecond, log),

		ScoringWeightsPath:     envutil.String("SCORING_WEIGHTS_PATH", "", log),
		RecommendationMaxLimit: envutil.Int("RECOMMENDATION_MAX_LIMIT", 50, log),

		MetricsEnabled: envutil.Bool("METRICS_ENABLED", true, log),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "learnpath-backend", log),
			Environment: envutil.String("APP_ENV", "development", log),
			Version:     envutil.String("APP_VERSION", "dev", log),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 1, log),
		},

		CORSAllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", nil, log),
	}
	if cfg.LockBackend != LockBackendRedis && cfg.LockBackend != LockBackendMemory {
		if log != nil {
			log.Warn("unknown PROGRESS_LOCK_BACKEND, using memory", "value", cfg.LockBackend)
		}
		cfg.LockBackend = LockBackendMemory
	}
	return cfg
}
