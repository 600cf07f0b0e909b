package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	InputPath string `env:"INPUT_PATH" envDefault:"google_playstore.csv"`
	TopN      int    `env:"TOP_N" envDefault:"10"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	// StripInstallFormatting removes "+" and "," from Installs before the
	// integer cast. Off by default: raw values must already be plain integers.
	StripInstallFormatting bool `env:"STRIP_INSTALL_FORMATTING" envDefault:"false"`

	ReportDir string `env:"REPORT_DIR"`
	XLSXPath  string `env:"XLSX_PATH"`

	PostgresEnabled  bool   `env:"POSTGRES_ENABLED" envDefault:"false"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"insights"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"insights123"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"playstore_db"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	MaxRetries int `env:"MAX_RETRIES" envDefault:"3"`
}

// Load reads the .env file and returns a populated Config struct.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings no run can succeed with.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("config: input path is empty")
	}
	if c.TopN < 1 {
		return fmt.Errorf("config: top-n must be at least 1, got %d", c.TopN)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("config: max retries must be at least 1, got %d", c.MaxRetries)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}
