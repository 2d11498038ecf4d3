package config

import (
	"fmt"
	"net/url"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for reorder-engine.
// Configuration comes from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support
// both. Secrets (passwords, API keys) must only come from environment
// variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL" env-default:""` // Auto-derived from Port if empty
	Version  string `yaml:"-"`                                      // Set at load time, not from config

	// Database configuration (PostgreSQL catalogue store)
	Database DatabaseConfig `yaml:"database"`

	// Email configuration for purchase-order dispatch
	Email EmailConfig `yaml:"email"`

	// AI configuration for the agent endpoint
	AI AIConfig `yaml:"ai"`

	// MigrationsPath is the directory containing SQL migrations.
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"reorder"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"reorder_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// EmailConfig holds SMTP settings for outbound purchase orders.
type EmailConfig struct {
	Host     string `yaml:"host" env:"EMAIL_HOST" env-default:"smtp.gmail.com"`
	Port     int    `yaml:"port" env:"EMAIL_PORT" env-default:"465"`
	Username string `yaml:"username" env:"EMAIL_USERNAME" env-default:""`
	Password string `yaml:"-" env:"EMAIL_PASSWORD"` // Secret - not in YAML
	From     string `yaml:"from" env:"EMAIL_FROM" env-default:""`

	// InventoryLocation is stamped into the purchase-order body so vendors
	// know where to deliver.
	InventoryLocation string `yaml:"inventory_location" env:"INVENTORY_LOCATION" env-default:"Chennai"`
}

// AIConfig holds the LLM endpoint used by the agent. BaseURL and Model
// default to empty so the agent stays disabled until explicitly
// configured.
type AIConfig struct {
	// Provider selects the client implementation: "openai" (any
	// OpenAI-compatible endpoint) or "anthropic".
	Provider string `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`
	BaseURL  string `yaml:"base_url" env:"AI_BASE_URL" env-default:""`
	Model    string `yaml:"model" env:"AI_MODEL" env-default:""`
	APIKey   string `yaml:"-" env:"AI_API_KEY"` // Secret - not in YAML
}

// IsConfigured returns true if the agent endpoint can be used.
func (c *AIConfig) IsConfigured() bool {
	return c.BaseURL != "" && c.Model != ""
}

// Load reads configuration from config.yaml with environment variable
// overrides. The version parameter is injected at build time and set on the
// returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	// Auto-derive BaseURL from Port if not explicitly set
	if cfg.BaseURL == "" {
		cfg.BaseURL = (&url.URL{
			Scheme: "http",
			Host:   "localhost:" + cfg.Port,
		}).String()
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// FromAddress returns the From header value for outbound mail, defaulting
// to the SMTP username when not set explicitly.
func (c *EmailConfig) FromAddress() string {
	if c.From != "" {
		return c.From
	}
	return c.Username
}
