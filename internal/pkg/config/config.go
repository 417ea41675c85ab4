package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	ServerAddr        string        `env:"SERVER_ADDR" envDefault:":8080"`
	AdminServerAddr   string        `env:"ADMIN_SERVER_ADDR" envDefault:":9091"`
	PostgresURL       string        `env:"POSTGRES_URL,required"`
	// RedisURL is a redis:// URL (redis.ParseURL format). Blank disables
	// the retailer cache.
	RedisURL          string        `env:"REDIS_URL"`
	RetailerCacheTTL  time.Duration `env:"RETAILER_CACHE_TTL" envDefault:"5m"`
	AdminSeedUser     string        `env:"ADMIN_SEED_USER"`
	AdminSeedPassword string        `env:"ADMIN_SEED_PASSWORD"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// .env file is optional, mainly for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
