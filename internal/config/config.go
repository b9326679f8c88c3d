package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

type Config struct {
	AppEnv   string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	Server   ServerConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Security SecurityConfig
	Metrics  MetricsConfig
	Tracing  TracingConfig
}

type ServerConfig struct {
	Port            string        `mapstructure:"SERVER_PORT"`
	Timeout         time.Duration `mapstructure:"SERVER_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

type StoreConfig struct {
	Driver string `mapstructure:"STORE_DRIVER"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"MONGODB_URI"`
	Database       string        `mapstructure:"MONGODB_DATABASE"`
	ConnectTimeout time.Duration `mapstructure:"MONGODB_CONNECT_TIMEOUT"`
	ApplyIndexes   bool          `mapstructure:"MONGODB_APPLY_INDEXES"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	CacheTTL time.Duration `mapstructure:"CACHE_TTL"`
}

type SecurityConfig struct {
	PasswordHasher string `mapstructure:"PASSWORD_HASHER"`
	BcryptCost     int    `mapstructure:"BCRYPT_COST"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"METRICS_ENABLED"`
}

type TracingConfig struct {
	Endpoint    string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `mapstructure:"OTEL_SERVICE_NAME"`
}

var defaults = map[string]interface{}{
	"APP_ENV":                     "production",
	"LOG_LEVEL":                   "info",
	"SERVER_PORT":                 "3000",
	"SERVER_TIMEOUT":              "15s",
	"SHUTDOWN_TIMEOUT":            "30s",
	"STORE_DRIVER":                StoreDriverMongo,
	"MONGODB_URI":                 "mongodb://localhost:27017",
	"MONGODB_DATABASE":            "comp3123_assignment1",
	"MONGODB_CONNECT_TIMEOUT":     "10s",
	"MONGODB_APPLY_INDEXES":       true,
	"REDIS_ADDR":                  "",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"CACHE_TTL":                   "5m",
	"PASSWORD_HASHER":             "sha256",
	"BCRYPT_COST":                 10,
	"METRICS_ENABLED":             true,
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"OTEL_SERVICE_NAME":           "employee-api",
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	return FromViper(viper.New())
}

// FromViper builds a Config from v after applying defaults and env binding.
func FromViper(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config

	cfg.AppEnv = v.GetString("APP_ENV")
	cfg.LogLevel = v.GetString("LOG_LEVEL")

	cfg.Server.Port = v.GetString("SERVER_PORT")
	cfg.Server.Timeout = v.GetDuration("SERVER_TIMEOUT")
	cfg.Server.ShutdownTimeout = v.GetDuration("SHUTDOWN_TIMEOUT")

	cfg.Store.Driver = v.GetString("STORE_DRIVER")

	cfg.Mongo.URI = v.GetString("MONGODB_URI")
	cfg.Mongo.Database = v.GetString("MONGODB_DATABASE")
	cfg.Mongo.ConnectTimeout = v.GetDuration("MONGODB_CONNECT_TIMEOUT")
	cfg.Mongo.ApplyIndexes = v.GetBool("MONGODB_APPLY_INDEXES")

	cfg.Redis.Addr = v.GetString("REDIS_ADDR")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")
	cfg.Redis.CacheTTL = v.GetDuration("CACHE_TTL")

	cfg.Security.PasswordHasher = v.GetString("PASSWORD_HASHER")
	cfg.Security.BcryptCost = v.GetInt("BCRYPT_COST")

	cfg.Metrics.Enabled = v.GetBool("METRICS_ENABLED")

	cfg.Tracing.Endpoint = v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.Tracing.ServiceName = v.GetString("OTEL_SERVICE_NAME")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMongo, StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverMongo, StoreDriverMemory, c.Store.Driver)
	}

	switch c.Security.PasswordHasher {
	case "sha256", "bcrypt":
	default:
		return fmt.Errorf("PASSWORD_HASHER must be sha256 or bcrypt, got %q", c.Security.PasswordHasher)
	}

	if c.Server.Port == "" {
		return errors.New("SERVER_PORT is required")
	}

	if c.Store.Driver == StoreDriverMongo && c.Mongo.URI == "" {
		return errors.New("MONGODB_URI is required for the mongo store")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) CacheEnabled() bool {
	return c.Redis.Addr != ""
}
