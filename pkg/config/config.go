package config

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration loaded from the environment (and .env when present).
type Config struct {
	AppName string `envconfig:"APP_NAME" default:"Fish Ledger v1.0"`
	Port    string `envconfig:"PORT" default:"3000"`

	// DBDriver selects the store: "sqlite" (embedded file) or "postgres".
	DBDriver    string        `envconfig:"DB_DRIVER" default:"sqlite"`
	DBPath      string        `envconfig:"DB_PATH" default:"fish-ledger.db"`
	DatabaseURL string        `envconfig:"DATABASE_URL"`
	SlowQuery   time.Duration `envconfig:"DB_SLOW_QUERY" default:"1s"`
	SQLDebug    bool          `envconfig:"DB_DEBUG" default:"false"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	JWTSecret     string        `envconfig:"JWT_SECRET" default:"your-super-secret-key-change-in-production"`
	JWTExpiry     time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`
	AdminEmail    string        `envconfig:"ADMIN_EMAIL" default:"admin@example.com"`
	AdminPassword string        `envconfig:"ADMIN_PASSWORD" default:"admin123"`
}

// Load reads .env (if any) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.DBDriver == "postgres" && cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL must be set when DB_DRIVER=postgres")
	}
	return &cfg, nil
}
