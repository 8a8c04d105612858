package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"properties-sub001"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"portal_app"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"properties"`

		// Elevated credentials back the provisioning path and profile directory
		// lookups only. They must never serve caller-scoped queries.
		ElevatedUser     string `envconfig:"DB_ELEVATED_USER" default:"portal_admin"`
		ElevatedPassword string `envconfig:"DB_ELEVATED_PASSWORD" default:""`
	}

	Auth struct {
		// Secret verifies bearer tokens. It grants no store access.
		Secret   string        `envconfig:"AUTH_SECRET"`
		Issuer   string        `envconfig:"AUTH_ISSUER" default:"properties-sub001"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
	}

	Storage struct {
		Root string `envconfig:"STORAGE_ROOT" default:"./storage"`
	}

	Dashboard struct {
		RefreshInterval time.Duration `envconfig:"DASHBOARD_REFRESH_INTERVAL" default:"30s"`
	}

	// Admin identifies the operator running the TUI console. The profile row
	// behind this email must exist and carry the admin role.
	Admin struct {
		Email string `envconfig:"ADMIN_EMAIL" default:"admin@portal.local"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// ElevatedConnectionString builds the DSN for the elevated credential pool.
func (c *Config) ElevatedConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.ElevatedUser, c.DB.ElevatedPassword, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("AUTH_SECRET is required")
	}

	return &cfg, nil
}
