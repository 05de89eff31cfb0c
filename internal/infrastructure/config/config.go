package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string `env:"PORT,        default=8080"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	CORSOrigin string `env:"CORS_ORIGIN, default=http://localhost:3000"`
	BaseDomain string `env:"BASE_DOMAIN, default=yourdomain.com"`

	JWT       JWTConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type JWTConfig struct {
	// No default: an empty secret would silently sign every token with an
	// empty HMAC key, so startup refuses to proceed without one.
	Secret     string        `env:"JWT_SECRET, required"`
	SessionTTL time.Duration `env:"JWT_EXPIRE, default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=saas_dashboard"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// RateLimitConfig tunes the fixed-window limiters. Auth endpoints get a much
// tighter budget than the general API.
type RateLimitConfig struct {
	Window  time.Duration `env:"RATE_LIMIT_WINDOW,   default=15m"`
	AuthMax int           `env:"RATE_LIMIT_AUTH_MAX, default=5"`
	APIMax  int           `env:"RATE_LIMIT_API_MAX,  default=100"`
}

// Load reads configuration from environment variables using go-envconfig.
// The result is immutable process-wide state; handlers never read env vars.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
