package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	KeyPort              = "PORT"
	KeyDBDriver          = "DB_DRIVER"
	KeyDBPath            = "DB_PATH"
	KeyDatabaseURL       = "DATABASE_URL"
	KeyMapSeedPath       = "MAP_SEED_PATH"
	KeyMaxMandatoryStops = "MAX_MANDATORY_STOPS"
	KeyLogLevel          = "LOG_LEVEL"
	KeyLogDevelopment    = "LOG_DEVELOPMENT"
	KeyMetricsNamespace  = "METRICS_NAMESPACE"
)

// Config is the service configuration resolved from the environment.
type Config struct {
	Port              string
	DBDriver          string
	DBPath            string
	DatabaseURL       string
	MapSeedPath       string
	MaxMandatoryStops int
	LogLevel          string
	LogDevelopment    bool
	MetricsNamespace  string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyDBDriver, "sqlite")
	v.SetDefault(KeyDBPath, "data/park.db")
	v.SetDefault(KeyDatabaseURL, "")
	v.SetDefault(KeyMapSeedPath, "data/seeds/park.json")
	v.SetDefault(KeyMaxMandatoryStops, 8)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogDevelopment, false)
	v.SetDefault(KeyMetricsNamespace, "park")
	v.AutomaticEnv()
	return v
}

// Load reads the configuration. Call godotenv.Load first to pick up a .env file.
func Load() (*Config, error) {
	v := newViper()

	cfg := &Config{
		Port:              v.GetString(KeyPort),
		DBDriver:          strings.ToLower(strings.TrimSpace(v.GetString(KeyDBDriver))),
		DBPath:            v.GetString(KeyDBPath),
		DatabaseURL:       v.GetString(KeyDatabaseURL),
		MapSeedPath:       v.GetString(KeyMapSeedPath),
		MaxMandatoryStops: v.GetInt(KeyMaxMandatoryStops),
		LogLevel:          v.GetString(KeyLogLevel),
		LogDevelopment:    v.GetBool(KeyLogDevelopment),
		MetricsNamespace:  v.GetString(KeyMetricsNamespace),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite":
		if strings.TrimSpace(c.DBPath) == "" {
			return fmt.Errorf("%s is required for the sqlite driver", KeyDBPath)
		}
	case "pgx":
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("%s is required for the pgx driver", KeyDatabaseURL)
		}
	default:
		return fmt.Errorf("%s must be sqlite or pgx, got %q", KeyDBDriver, c.DBDriver)
	}

	if c.MaxMandatoryStops < 1 {
		return fmt.Errorf("%s must be at least 1", KeyMaxMandatoryStops)
	}
	return nil
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "pgx" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// Get returns an environment setting or fallback when it is unset or empty.
func Get(key, fallback string) string {
	v := viper.New()
	v.AutomaticEnv()
	if s := v.GetString(key); s != "" {
		return s
	}
	return fallback
}
