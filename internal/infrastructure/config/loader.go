package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is the prefix of every environment override, e.g. PM_STORE_DRIVER
const EnvPrefix = "PM"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// envBindings maps short environment names onto config keys, in addition to
// the automatic PM_<SECTION>_<KEY> form
var envBindings = map[string]string{
	"database.host":     "PM_DB_HOST",
	"database.port":     "PM_DB_PORT",
	"database.username": "PM_DB_USERNAME",
	"database.password": "PM_DB_PASSWORD",
	"database.database": "PM_DB_NAME",
	"database.sslMode":  "PM_DB_SSL_MODE",
}

// LoadConfig loads configuration for the environment named by PM_ENV
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: could not load .env file:", err)
	}

	return Load(getEnvironment(), ConfigPaths...)
}

// Load reads <env>.yaml from the first matching path, applies defaults and
// environment overrides, and validates the result. A missing config file is
// not an error: defaults and the environment are enough to run.
func Load(env string, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, name := range envBindings {
		if err := v.BindEnv(key, name, envKey(key)); err != nil {
			return nil, fmt.Errorf("bind %s: %w", name, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// envKey returns the automatic environment name of a config key
func envKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// loadDotEnvFile loads the first .env file found in DotEnvPaths
func loadDotEnvFile() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("could not load %s: %w", path, err)
		}
		return nil
	}
	return errors.New("no .env file found in search paths")
}

// setDefaults sets default values for every key
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds
	v.SetDefault("server.corsOrigins", []string{})

	v.SetDefault("store.driver", StoreDriverFile)
	v.SetDefault("store.filePath", "data/users.json")
	v.SetDefault("store.seedPath", "")

	v.SetDefault("database.host", "")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "peer_market")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds
	v.SetDefault("database.logLevel", "warn")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stdout")

	v.SetDefault("market.defaultBalance", "100.00")
	v.SetDefault("market.writeQueueSize", 100)
}

// getEnvironment determines the environment from PM_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processDurations converts plain numbers into durations in their documented unit
func processDurations(config *Config) {
	config.Server.ReadTimeout = scale(config.Server.ReadTimeout, time.Second)
	config.Server.WriteTimeout = scale(config.Server.WriteTimeout, time.Second)
	config.Server.IdleTimeout = scale(config.Server.IdleTimeout, time.Second)
	config.Server.ReadHeaderTimeout = scale(config.Server.ReadHeaderTimeout, time.Second)
	config.Server.ShutdownTimeout = scale(config.Server.ShutdownTimeout, time.Second)

	config.Database.ConnMaxLifetime = scale(config.Database.ConnMaxLifetime, time.Minute)
	config.Database.ConnMaxIdleTime = scale(config.Database.ConnMaxIdleTime, time.Minute)
	config.Database.QueryTimeout = scale(config.Database.QueryTimeout, time.Second)
	config.Database.RetryDelay = scale(config.Database.RetryDelay, time.Second)
}

// scale treats values below one unit as a bare count of that unit, so "15"
// means 15s while "1m30s" is kept as written
func scale(d, unit time.Duration) time.Duration {
	if d > 0 && d < unit {
		return d * unit
	}
	return d
}

// Validate checks the settings needed to start
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Store.Driver {
	case StoreDriverFile:
		if c.Store.FilePath == "" {
			return errors.New("store.filePath is required for the file driver")
		}
	case StoreDriverPostgres:
		if c.Database.Host == "" {
			return errors.New("database.host is required for the postgres driver")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported store driver: %s", c.Store.Driver)
	}

	if c.Market.WriteQueueSize <= 0 {
		return fmt.Errorf("market.writeQueueSize must be positive, got: %d", c.Market.WriteQueueSize)
	}

	switch c.Logger.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logger.Level)
	}

	return nil
}

// IsProduction reports whether the production environment is active
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}
