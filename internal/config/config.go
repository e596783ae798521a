package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"weather-testdata/pkg/database"
)

const (
	SourceCSV     = "csv"
	SourceCatalog = "catalog"
)

// Config holds all runtime configuration
type Config struct {
	Generator GeneratorConfig
	Logging   LoggingConfig
	Database  DatabaseConfig
}

// GeneratorConfig controls where data is read from and written to
type GeneratorConfig struct {
	// Root is the project root; data files live under Root/data.
	Root          string
	Seed          uint64
	Compression   string
	StationSource string
	StatusAddr    string
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string
}

// DatabaseConfig holds the station catalogue connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoadConfig reads configuration from the environment, applying defaults
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Generator: GeneratorConfig{
			Root:          getEnv("GENERATOR_ROOT", filepath.Join("..", "..", "..")),
			Compression:   getEnv("GENERATOR_COMPRESSION", "none"),
			StationSource: getEnv("GENERATOR_STATION_SOURCE", SourceCSV),
			StatusAddr:    getEnv("GENERATOR_STATUS_ADDR", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "warn"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "weather"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}

	var err error
	if cfg.Generator.Seed, err = getEnvUint64("GENERATOR_SEED", 0); err != nil {
		return nil, err
	}
	if cfg.Database.Port, err = getEnvInt("DB_PORT", 5432); err != nil {
		return nil, err
	}
	if cfg.Database.MaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", 4); err != nil {
		return nil, err
	}
	if cfg.Database.MaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", 2); err != nil {
		return nil, err
	}
	if cfg.Database.ConnMaxLifetime, err = getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Database.ConnMaxIdleTime, err = getEnvDuration("DB_CONN_MAX_IDLE_TIME", time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks enumerations and numeric ranges
func (c *Config) Validate() error {
	switch c.Generator.StationSource {
	case SourceCSV, SourceCatalog:
	default:
		return fmt.Errorf("station source must be %q or %q, got %q", SourceCSV, SourceCatalog, c.Generator.StationSource)
	}

	if c.Generator.Root == "" {
		return fmt.Errorf("generator root must not be empty")
	}

	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database port out of range: %d", c.Database.Port)
	}

	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive: %d", c.Database.MaxOpenConns)
	}

	return nil
}

// StationsPath is the reference station list
func (g GeneratorConfig) StationsPath() string {
	return filepath.Join(g.Root, "data", "weather_stations.csv")
}

// MeasurementsPath is the uncompressed output file
func (g GeneratorConfig) MeasurementsPath() string {
	return filepath.Join(g.Root, "data", "measurements.txt")
}

// PostgresConfig converts the catalogue settings for the database package
func (d DatabaseConfig) PostgresConfig() *database.Config {
	return &database.Config{
		Host:            d.Host,
		Port:            d.Port,
		User:            d.User,
		Password:        d.Password,
		Database:        d.Database,
		SSLMode:         d.SSLMode,
		MaxOpenConns:    d.MaxOpenConns,
		MaxIdleConns:    d.MaxIdleConns,
		ConnMaxLifetime: d.ConnMaxLifetime,
		ConnMaxIdleTime: d.ConnMaxIdleTime,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvUint64(key string, fallback uint64) (uint64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
