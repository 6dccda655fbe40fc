package config

import (
	"fmt"
	"time"

	"gastroguide/model"
)

type Config struct {
	App           AppConfig            `mapstructure:"app"`
	Server        ServerConfig         `mapstructure:"server"`
	Logging       LoggingConfig        `mapstructure:"logging"`
	Database      DatabaseConfig       `mapstructure:"database"`
	Session       SessionConfig        `mapstructure:"session"`
	Notifications NotificationsConfig  `mapstructure:"notifications"`
	Restaurant    model.RestaurantInfo `mapstructure:"restaurant"`
	Intents       IntentsConfig        `mapstructure:"intents"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DatabaseConfig struct {
	Driver     string         `mapstructure:"driver"`
	SQLitePath string         `mapstructure:"sqlite_path"`
	Postgres   PostgresConfig `mapstructure:"postgres"`
	Seed       bool           `mapstructure:"seed"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"sslmode"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
}

// DSN renders a lib/pq connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

type SessionConfig struct {
	Backend    string        `mapstructure:"backend"`
	TTL        time.Duration `mapstructure:"ttl"`
	MaxRetries int           `mapstructure:"max_retries"`
	BoltPath   string        `mapstructure:"bolt_path"`
	Redis      RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type NotificationsConfig struct {
	EmailEnabled bool   `mapstructure:"email_enabled"`
	DevMode      bool   `mapstructure:"dev_mode"`
	FromEmail    string `mapstructure:"from_email"`
	AWSRegion    string `mapstructure:"aws_region"`
}

type IntentsConfig struct {
	RulesFile string `mapstructure:"rules_file"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	SessionBackendRedis = "redis"
	SessionBackendBolt  = "bolt"
)
