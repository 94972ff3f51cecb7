package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// EnvFilePathEnv overrides the location of the optional .env file.
const EnvFilePathEnv = "ENV_PATH"

const defaultEnvFile = ".env"

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	JWT      JWTConfig
	Database DatabaseConfig
	Admin    AdminConfig
}

// JWTConfig mirrors the Jwt:Key / Jwt:Issuer / Jwt:Audience settings.
type JWTConfig struct {
	// HS256 needs at least 256 bits of key material.
	Key       string        `env:"JWT_KEY"                 validate:"required,min=32"`
	Issuer    string        `env:"JWT_ISSUER"              validate:"required"`
	Audience  string        `env:"JWT_AUDIENCE"            validate:"required"`
	ClockSkew time.Duration `env:"JWT_CLOCK_SKEW, default=5m" validate:"gte=0"`
}

type DatabaseConfig struct {
	DSN   string `env:"DATABASE_DSN,   default=products.db" validate:"required"`
	Debug bool   `env:"DATABASE_DEBUG, default=false"`
}

// AdminConfig is the single credential pair accepted by /login.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME, default=admin"    validate:"required"`
	Password string `env:"ADMIN_PASSWORD, default=senha123" validate:"required"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads the optional .env file, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith resolves and validates the configuration from lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: process env: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile applies the .env file without overriding variables that are
// already set. A missing file is not an error.
func loadEnvFile() error {
	path := os.Getenv(EnvFilePathEnv)
	if path == "" {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}
