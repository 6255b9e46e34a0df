package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Staff   StaffConfig
	Upload  UploadConfig

	Mongo MongoConfig
	Redis RedisConfig
}

type SessionConfig struct {
	Secret     string        `env:"SESSION_SECRET, required"`
	TTL        time.Duration `env:"SESSION_TTL,    default=2h"`
	CookieName string        `env:"SESSION_COOKIE, default=adoption_sid"`
	LockTTL    time.Duration `env:"LOCK_TTL,       default=60s"`
}

type StaffConfig struct {
	// AdminSecret opens the staff self-registration form.
	AdminSecret string `env:"ADMIN_SECRET, required"`
	BcryptCost  int    `env:"BCRYPT_COST,  default=10"`
}

type UploadConfig struct {
	MaxImageBytes int `env:"MAX_IMAGE_BYTES, default=5242880"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=adoption_site"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsDevelopment reports whether the process runs in the development env.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration from an arbitrary lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
