// Package config loads catalog daemon configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog holds all configuration for the catalog daemon.
type Catalog struct {
	// Spatial grid cell side length, world units.
	GridSize float64 `yaml:"grid_size"`

	// Default collision report threshold, world units.
	CollisionDistance float64 `yaml:"collision_distance"`

	Monitor  Monitor        `yaml:"monitor"`
	Database DatabaseConfig `yaml:"database"`
	Export   Export         `yaml:"export"`
}

// Monitor configures the websocket event feed.
type Monitor struct {
	Enabled     bool   `yaml:"enabled"`
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
}

// Addr returns the listen address for the monitor HTTP server.
func (m Monitor) Addr() string {
	return fmt.Sprintf("%s:%d", m.BindAddress, m.Port)
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Export configures periodic catalog snapshots to PostgreSQL.
type Export struct {
	Enabled         bool `yaml:"enabled"`
	IntervalSeconds int  `yaml:"interval_seconds"`
}

// Default returns Catalog config with sensible defaults.
func Default() Catalog {
	return Catalog{
		GridSize:          10.0,
		CollisionDistance: 1.0,
		Monitor: Monitor{
			Enabled:     true,
			BindAddress: "0.0.0.0",
			Port:        8710,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "physcat",
			Password: "physcat",
			DBName:   "physcat",
			SSLMode:  "disable",
		},
		Export: Export{
			Enabled:         false,
			IntervalSeconds: 60,
		},
	}
}

// Load loads catalog config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Catalog, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.GridSize <= 0 {
		return cfg, fmt.Errorf("config %s: grid_size must be positive, got %v", path, cfg.GridSize)
	}

	return cfg, nil
}
