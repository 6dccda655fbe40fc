package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gastroguide/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "GASTROGUIDE"

// Load reads the YAML file at path (optional when empty or missing) and
// applies GASTROGUIDE_* environment overrides, e.g. GASTROGUIDE_SESSION_BACKEND.
func Load(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)
	// max_retries may be set to 0 explicitly.
	v.SetDefault("session.max_retries", 3)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// AutomaticEnv only covers keys viper already knows about, so every leaf is
// registered up front to make env-only deployments work without a file.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"app.name", "app.environment",
		"server.address", "server.shutdown_timeout",
		"logging.level", "logging.format",
		"database.driver", "database.sqlite_path", "database.seed",
		"database.postgres.host", "database.postgres.port", "database.postgres.database",
		"database.postgres.user", "database.postgres.password", "database.postgres.sslmode",
		"database.postgres.max_connections", "database.postgres.max_idle",
		"session.backend", "session.ttl", "session.max_retries", "session.bolt_path",
		"session.redis.address", "session.redis.password", "session.redis.db",
		"notifications.email_enabled", "notifications.dev_mode",
		"notifications.from_email", "notifications.aws_region",
		"intents.rules_file",
	} {
		_ = v.BindEnv(key)
	}
}

func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "gastroguide"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverSQLite
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = filepath.Join("data", "restaurant.db")
	}
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Session.Backend == "" {
		cfg.Session.Backend = SessionBackendRedis
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 24 * time.Hour
	}
	if cfg.Session.BoltPath == "" {
		cfg.Session.BoltPath = filepath.Join("data", "sessions.bolt")
	}
	if cfg.Session.Redis.Address == "" {
		cfg.Session.Redis.Address = "localhost:6379"
	}

	if cfg.Notifications.AWSRegion == "" {
		cfg.Notifications.AWSRegion = "us-east-1"
	}

	applyRestaurantDefaults(&cfg.Restaurant)
}

func applyRestaurantDefaults(r *model.RestaurantInfo) {
	d := model.DefaultRestaurantInfo()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&r.Name, d.Name)
	fill(&r.Assistant, d.Assistant)
	fill(&r.Description, d.Description)
	fill(&r.Hours.MondayThursday, d.Hours.MondayThursday)
	fill(&r.Hours.FridaySaturday, d.Hours.FridaySaturday)
	fill(&r.Hours.Sunday, d.Hours.Sunday)
	fill(&r.HappyHour, d.HappyHour)
	fill(&r.Location, d.Location)
	fill(&r.Phone, d.Phone)
	fill(&r.Email, d.Email)
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	switch cfg.Database.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required")
		}
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, cfg.Database.Driver)
	}

	switch cfg.Session.Backend {
	case SessionBackendRedis, SessionBackendBolt:
	default:
		return fmt.Errorf("session.backend must be %q or %q, got %q", SessionBackendRedis, SessionBackendBolt, cfg.Session.Backend)
	}
	if cfg.Session.MaxRetries < 0 {
		return fmt.Errorf("session.max_retries cannot be negative")
	}

	if cfg.Notifications.EmailEnabled && !cfg.Notifications.DevMode && cfg.Notifications.FromEmail == "" {
		return fmt.Errorf("notifications.from_email is required when email is enabled")
	}
	return nil
}
