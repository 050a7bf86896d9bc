package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverMySQL  = "mysql"
	DriverRedis  = "redis"
)

// Config holds everything main needs to wire the storefront.
type Config struct {
	Port       string
	GinMode    string
	CORSOrigin string

	// --- Backend (catalog + orders) ---
	BackendURL     string
	OrderPath      string
	BackendTimeout time.Duration

	// --- Cart storage slot ---
	StorageDriver  string
	StorageDir     string
	DBDSN          string
	RedisAddr      string
	RedisNamespace string
	CartKey        string

	PlaceholderImage string

	LogLevel  logrus.Level
	LogFormat string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		logrus.Warn("could not load .env file, relying on system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:             getenv("PORT", "8080"),
		GinMode:          os.Getenv("GIN_MODE"),
		CORSOrigin:       getenv("CORS_ORIGIN", "http://localhost:5173"),
		BackendURL:       strings.TrimRight(getenv("BACKEND_URL", "http://localhost:8000/api"), "/"),
		OrderPath:        getenv("ORDER_PATH", "/orders"),
		StorageDriver:    strings.ToLower(getenv("STORAGE_DRIVER", DriverFile)),
		StorageDir:       getenv("STORAGE_DIR", "./data"),
		DBDSN:            os.Getenv("DB_DSN_PRIMARY"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisNamespace:   getenv("REDIS_NAMESPACE", "storefront"),
		CartKey:          getenv("CART_KEY", "cart"),
		PlaceholderImage: getenv("PLACEHOLDER_IMAGE", "/images/placeholder.png"),
		LogFormat:        strings.ToLower(getenv("LOG_FORMAT", "json")),
	}

	if raw := os.Getenv("BACKEND_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.Wrap(err, "invalid BACKEND_TIMEOUT")
		}
		if d < 0 {
			return nil, errors.Errorf("invalid BACKEND_TIMEOUT %q: must not be negative", raw)
		}
		cfg.BackendTimeout = d
	}

	level, err := logrus.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid LOG_LEVEL")
	}
	cfg.LogLevel = level

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, errors.Errorf("invalid PORT %q", cfg.Port)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverFile, DriverMemory:
	case DriverMySQL:
		if c.DBDSN == "" {
			return errors.New("DB_DSN_PRIMARY is required when STORAGE_DRIVER=mysql")
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required when STORAGE_DRIVER=redis")
		}
	default:
		return errors.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return errors.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}
	if strings.TrimSpace(c.CartKey) == "" {
		return errors.New("CART_KEY must not be empty")
	}
	if !strings.HasPrefix(c.OrderPath, "/") {
		c.OrderPath = "/" + c.OrderPath
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
