package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Store    StoreConfig
	Upstream UpstreamConfig
	CORS     CORSConfig
	LogLevel string
	LogFile  string
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// StoreConfig selects and tunes the saved-ideas backend.
type StoreConfig struct {
	Backend       string // memory | redis
	Capacity      int
	TTL           time.Duration
	SweepInterval time.Duration
}

// UpstreamConfig describes the OpenAI-compatible completion provider.
type UpstreamConfig struct {
	BaseURL          string
	Model            string
	ModelFamily      string
	Referer          string
	Title            string
	Timeout          time.Duration
	Temperature      float32
	TopP             float32
	FrequencyPenalty float32
	PresencePenalty  float32
	MaxTokens        int
}

type CORSConfig struct {
	AllowOrigin string
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "5001")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("STORE_BACKEND", BackendMemory)
	v.SetDefault("STORE_CAPACITY", 10)
	v.SetDefault("STORE_TTL", "24h")
	v.SetDefault("STORE_SWEEP_INTERVAL", "0s")
	v.SetDefault("UPSTREAM_BASE_URL", "https://openrouter.ai/api/v1")
	v.SetDefault("UPSTREAM_MODEL", "deepseek/deepseek-chat-v3-0324:free")
	v.SetDefault("UPSTREAM_MODEL_FAMILY", "deepseek")
	v.SetDefault("UPSTREAM_REFERER", "http://localhost:3000")
	v.SetDefault("UPSTREAM_TITLE", "AI Idea Generator")
	v.SetDefault("UPSTREAM_TIMEOUT", "60s")
	v.SetDefault("UPSTREAM_TEMPERATURE", 1.2)
	v.SetDefault("UPSTREAM_TOP_P", 0.9)
	v.SetDefault("UPSTREAM_FREQUENCY_PENALTY", 0.8)
	v.SetDefault("UPSTREAM_PRESENCE_PENALTY", 0.6)
	v.SetDefault("UPSTREAM_MAX_TOKENS", 2500)
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("LOG_LEVEL", "info")

	upstreamTimeout := v.GetDuration("UPSTREAM_TIMEOUT")

	cfg := &Config{
		Server: ServerConfig{
			Port:        v.GetString("SERVER_PORT"),
			Host:        v.GetString("SERVER_HOST"),
			Environment: v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout: 30 * time.Second,
			// streams may legitimately run for the whole upstream ceiling
			WriteTimeout: upstreamTimeout + 5*time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Store: StoreConfig{
			Backend:       strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND"))),
			Capacity:      v.GetInt("STORE_CAPACITY"),
			TTL:           v.GetDuration("STORE_TTL"),
			SweepInterval: v.GetDuration("STORE_SWEEP_INTERVAL"),
		},
		Upstream: UpstreamConfig{
			BaseURL:          strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
			Model:            v.GetString("UPSTREAM_MODEL"),
			ModelFamily:      v.GetString("UPSTREAM_MODEL_FAMILY"),
			Referer:          v.GetString("UPSTREAM_REFERER"),
			Title:            v.GetString("UPSTREAM_TITLE"),
			Timeout:          upstreamTimeout,
			Temperature:      float32(v.GetFloat64("UPSTREAM_TEMPERATURE")),
			TopP:             float32(v.GetFloat64("UPSTREAM_TOP_P")),
			FrequencyPenalty: float32(v.GetFloat64("UPSTREAM_FREQUENCY_PENALTY")),
			PresencePenalty:  float32(v.GetFloat64("UPSTREAM_PRESENCE_PENALTY")),
			MaxTokens:        v.GetInt("UPSTREAM_MAX_TOKENS"),
		},
		CORS:     CORSConfig{AllowOrigin: v.GetString("CORS_ALLOW_ORIGIN")},
		LogLevel: v.GetString("LOG_LEVEL"),
		LogFile:  v.GetString("LOG_FILE"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q (want memory or redis)", c.Store.Backend)
	}
	if c.Store.Capacity <= 0 {
		return fmt.Errorf("STORE_CAPACITY must be positive, got %d", c.Store.Capacity)
	}
	if c.Store.TTL <= 0 {
		return fmt.Errorf("STORE_TTL must be positive, got %s", c.Store.TTL)
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", c.Upstream.Timeout)
	}
	if c.Upstream.BaseURL == "" || c.Upstream.Model == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL and UPSTREAM_MODEL are required")
	}
	return nil
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.Redis.Host == "" {
		return ""
	}
	return c.Redis.Host + ":" + c.Redis.Port
}
