package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string

	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	DBMaxOpenConns       int
	DBSlowQueryThreshold time.Duration
	DBAutoMigrate        bool

	LogLevel  string
	LogFormat string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	NotifyChannel     string
	NotifyWorkers     int
	NotifyQueueSize   int
	NotifySendTimeout time.Duration

	OrdersStrictTransitions bool
}

var ErrConfigIsInvalid = errors.New("invalid configuration")

// LoadConfig reads the configuration from the environment. Variables found in
// envFile are loaded first without overriding the real environment; a missing
// file is not an error, a malformed one is.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_SLOW_QUERY_THRESHOLD", "200ms")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("NOTIFY_CHANNEL", "orders.status")
	v.SetDefault("NOTIFY_WORKERS", 2)
	v.SetDefault("NOTIFY_QUEUE_SIZE", 256)
	v.SetDefault("NOTIFY_SEND_TIMEOUT", "10s")
	v.SetDefault("ORDERS_STRICT_TRANSITIONS", false)

	cfg := Config{
		HTTPPort:                v.GetString("HTTP_PORT"),
		DBHost:                  v.GetString("DB_HOST"),
		DBPort:                  v.GetString("DB_PORT"),
		DBUser:                  v.GetString("DB_USER"),
		DBPassword:              v.GetString("DB_PASSWORD"),
		DBName:                  v.GetString("DB_NAME"),
		DBSslMode:               v.GetString("DB_SSLMODE"),
		DBMaxOpenConns:          v.GetInt("DB_MAX_OPEN_CONNS"),
		DBSlowQueryThreshold:    v.GetDuration("DB_SLOW_QUERY_THRESHOLD"),
		DBAutoMigrate:           v.GetBool("DB_AUTO_MIGRATE"),
		LogLevel:                v.GetString("LOG_LEVEL"),
		LogFormat:               v.GetString("LOG_FORMAT"),
		RedisAddr:               v.GetString("REDIS_ADDR"),
		RedisPassword:           v.GetString("REDIS_PASSWORD"),
		RedisDB:                 v.GetInt("REDIS_DB"),
		NotifyChannel:           v.GetString("NOTIFY_CHANNEL"),
		NotifyWorkers:           v.GetInt("NOTIFY_WORKERS"),
		NotifyQueueSize:         v.GetInt("NOTIFY_QUEUE_SIZE"),
		NotifySendTimeout:       v.GetDuration("NOTIFY_SEND_TIMEOUT"),
		OrdersStrictTransitions: v.GetBool("ORDERS_STRICT_TRANSITIONS"),
	}

	return cfg, cfg.Validate()
}

// Validate reports every missing or unusable setting at once.
func (c Config) Validate() error {
	var problems []error
	if c.DBUser == "" {
		problems = append(problems, errors.New("DB_USER is required"))
	}
	if c.DBName == "" {
		problems = append(problems, errors.New("DB_NAME is required"))
	}
	if c.NotifyWorkers < 1 {
		problems = append(problems, fmt.Errorf("NOTIFY_WORKERS must be positive, got %d", c.NotifyWorkers))
	}
	if c.NotifyQueueSize < 1 {
		problems = append(problems, fmt.Errorf("NOTIFY_QUEUE_SIZE must be positive, got %d", c.NotifyQueueSize))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrConfigIsInvalid, errors.Join(problems...))
	}
	return nil
}

// DSN is the PostgreSQL connection URL.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSslMode}}.Encode(),
	}
	return u.String()
}

// HTTPAddr is the listen address of the API.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf("0.0.0.0:%s", c.HTTPPort)
}
