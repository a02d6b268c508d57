package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"

	defaultEnvFile = ".env"
)

var (
	ErrInvalidTransport = errors.New("MCP_TRANSPORT must be stdio or http")
	ErrInvalidTimeout   = errors.New("KAGI_TIMEOUT_SEC must be positive")
	ErrMissingHTTPAddr  = errors.New("MCP_HTTP_ADDR is required for http transport")
)

// Config - настройки процесса. API-ключа здесь нет: он ищется на каждый вызов.
type Config struct {
	Kagi    KagiConfig
	Server  ServerConfig
	Metrics MetricsConfig
	Log     LogConfig
	// путь к YAML с plugins.entries.<id>.config
	HostConfigPath string
}

type KagiConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ServerConfig struct {
	Transport string
	HTTPAddr  string
}

type MetricsConfig struct {
	Addr string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	if err := loadEnvFile(os.Getenv("KAGI_SEARCH_ENV_FILE")); err != nil {
		return nil, err
	}

	cfg := &Config{
		Kagi: KagiConfig{
			BaseURL: getEnvOrDefault("KAGI_BASE_URL", "https://kagi.com"),
			Timeout: time.Duration(getEnvIntOrDefault("KAGI_TIMEOUT_SEC", 30)) * time.Second,
		},
		Server: ServerConfig{
			Transport: getEnvOrDefault("MCP_TRANSPORT", TransportStdio),
			HTTPAddr:  getEnvOrDefault("MCP_HTTP_ADDR", ":8080"),
		},
		Metrics: MetricsConfig{
			Addr: os.Getenv("METRICS_ADDR"),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		HostConfigPath: os.Getenv("KAGI_SEARCH_HOST_CONFIG"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Server.Transport {
	case TransportStdio:
	case TransportHTTP:
		if c.Server.HTTPAddr == "" {
			return ErrMissingHTTPAddr
		}
	default:
		return ErrInvalidTransport
	}
	if c.Kagi.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// loadEnvFile подгружает .env, не перетирая уже выставленные переменные.
// Явно указанный файл обязан существовать, дефолтный .env - нет.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
