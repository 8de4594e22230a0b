// Package config provides configuration for the lexbank service.
//
// Precedence (highest to lowest): CLI flags > LEXBANK_* env vars >
// lexbank.yaml > built-in defaults. The default config from New() is
// always valid.
package config

import "fmt"

// Config is the complete service configuration.
type Config struct {
	// Server holds HTTP listener settings.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Database holds PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	// Port the API listens on.
	Port int `mapstructure:"port" yaml:"port"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode: "disable", "require", "verify-ca" or "verify-full".
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// MaxConns caps the connection pool.
	MaxConns int `mapstructure:"max_conns" yaml:"max_conns"`
}

// LogConfig holds application log settings.
type LogConfig struct {
	// Format is "json" or "text".
	Format string `mapstructure:"format" yaml:"format"`
	// Level is "debug", "info", "warn" or "error".
	Level string `mapstructure:"level" yaml:"level"`
}

// DSN builds a lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode,
	)
}

// GormDSN builds a keyword/value connection string for the GORM dialer.
func (d DatabaseConfig) GormDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// New creates a Config with sensible default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "lexbank",
			SSLMode:  "disable",
			MaxConns: 10,
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database max_conns must be positive")
	}
	switch c.Database.SSLMode {
	case "disable", "require", "verify-ca", "verify-full":
	default:
		return fmt.Errorf("invalid ssl_mode %q", c.Database.SSLMode)
	}
	return nil
}
