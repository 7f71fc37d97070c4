package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// DBDriver is "postgres" or "sqlite".
	DBDriver   string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	SQLitePath string

	JWTSecret string

	RedisURL string
	CacheTTL time.Duration

	RabbitMQURL   string
	EventExchange string

	// DefaultUnits is the unit system used when a request does not ask for one.
	DefaultUnits string
	LogLevel     string
}

// Load reads the first .env file found in paths (if any) and builds a Config
// from the process environment.
func Load(paths ...string) (*Config, error) {
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBDriver:      getEnv("DB_DRIVER", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "fitprofile"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		SQLitePath:    getEnv("SQLITE_PATH", "fitprofile.db"),
		JWTSecret:     os.Getenv("JWT_SECRET_KEY"),
		RedisURL:      os.Getenv("REDIS_URL"),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		EventExchange: getEnv("EVENT_EXCHANGE", "fitprofile.events"),
		DefaultUnits:  getEnv("DEFAULT_UNITS", "metric"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	ttl, err := getDuration("CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = ttl

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.DefaultUnits {
	case "metric", "imperial":
	default:
		return fmt.Errorf("unsupported DEFAULT_UNITS %q", c.DefaultUnits)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q: %w", c.Port, err)
	}
	return nil
}

// PostgresDSN builds the connection string the same way for the server and the CLI.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s application_name=fitprofile",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
