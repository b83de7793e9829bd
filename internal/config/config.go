package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultGeocoderBaseURL = "https://nominatim.openstreetmap.org"
	defaultUserAgent       = "address-search/1.0"
	defaultSelectionStream = "stream:location:selected"
)

type Config struct {
	Server   ServerConfig
	Geocoder GeocoderConfig
	Search   SearchConfig
	Session  SessionConfig
	Redis    RedisConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	AllowOrigins string
}

// GeocoderConfig - параметры внешнего геокодера (Nominatim-совместимый API)
type GeocoderConfig struct {
	BaseURL        string
	UserAgent      string
	Limit          int
	Language       string
	RequestTimeout time.Duration
	// RateLimit - запросов в секунду; 0 отключает ограничение
	RateLimit float64
}

type SearchConfig struct {
	DebounceDelay  time.Duration
	MinQueryLength int
}

type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
}

type RedisConfig struct {
	Enabled         bool
	Host            string
	Port            int
	Password        string
	DB              int
	SelectionStream string
}

type LogConfig struct {
	Level  string
	Output string
}

type WorkerConfig struct {
	ConsumerGroup string
	BatchSize     int
}

// Load читает конфигурацию из .env (если файл есть) и переменных окружения
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile читает конфигурацию из указанного файла и окружения.
// Отсутствующий файл не считается ошибкой: все ключи имеют значения по умолчанию.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("API_HOST"),
			Port:         v.GetInt("API_PORT"),
			Env:          v.GetString("API_ENV"),
			AllowOrigins: v.GetString("API_ALLOW_ORIGINS"),
		},
		Geocoder: GeocoderConfig{
			BaseURL:        v.GetString("GEOCODER_BASE_URL"),
			UserAgent:      v.GetString("GEOCODER_USER_AGENT"),
			Limit:          v.GetInt("GEOCODER_LIMIT"),
			Language:       v.GetString("GEOCODER_LANGUAGE"),
			RequestTimeout: time.Duration(v.GetInt("GEOCODER_REQUEST_TIMEOUT")) * time.Second,
			RateLimit:      v.GetFloat64("GEOCODER_RATE_LIMIT"),
		},
		Search: SearchConfig{
			DebounceDelay:  time.Duration(v.GetInt("SEARCH_DEBOUNCE_MS")) * time.Millisecond,
			MinQueryLength: v.GetInt("SEARCH_MIN_QUERY_LENGTH"),
		},
		Session: SessionConfig{
			IdleTimeout:   time.Duration(v.GetInt("SESSION_IDLE_TIMEOUT")) * time.Second,
			SweepInterval: time.Duration(v.GetInt("SESSION_SWEEP_INTERVAL")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:         v.GetBool("REDIS_ENABLED"),
			Host:            v.GetString("REDIS_HOST"),
			Port:            v.GetInt("REDIS_PORT"),
			Password:        v.GetString("REDIS_PASSWORD"),
			DB:              v.GetInt("REDIS_DB"),
			SelectionStream: v.GetString("SELECTION_STREAM"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Output: v.GetString("LOG_OUTPUT"),
		},
		Worker: WorkerConfig{
			ConsumerGroup: v.GetString("WORKER_CONSUMER_GROUP"),
			BatchSize:     v.GetInt("WORKER_BATCH_SIZE"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")

	v.SetDefault("GEOCODER_BASE_URL", defaultGeocoderBaseURL)
	v.SetDefault("GEOCODER_USER_AGENT", defaultUserAgent)
	v.SetDefault("GEOCODER_LIMIT", 5)
	v.SetDefault("GEOCODER_LANGUAGE", "en")
	v.SetDefault("GEOCODER_REQUEST_TIMEOUT", 10)
	v.SetDefault("GEOCODER_RATE_LIMIT", 1.0)

	v.SetDefault("SEARCH_DEBOUNCE_MS", 300)
	v.SetDefault("SEARCH_MIN_QUERY_LENGTH", 2)

	v.SetDefault("SESSION_IDLE_TIMEOUT", 600)
	v.SetDefault("SESSION_SWEEP_INTERVAL", 60)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SELECTION_STREAM", defaultSelectionStream)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_OUTPUT", "stdout")

	v.SetDefault("WORKER_CONSUMER_GROUP", "location-selection-consumers")
	v.SetDefault("WORKER_BATCH_SIZE", 20)
}

func (c *Config) validate() error {
	if c.Geocoder.BaseURL == "" {
		return fmt.Errorf("GEOCODER_BASE_URL must not be empty")
	}
	if c.Geocoder.Limit <= 0 {
		return fmt.Errorf("GEOCODER_LIMIT must be positive, got %d", c.Geocoder.Limit)
	}
	// нулевое значение контроллер заменил бы значением по умолчанию
	if c.Search.DebounceDelay <= 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE_MS must be positive")
	}
	if c.Search.MinQueryLength < 1 {
		return fmt.Errorf("SEARCH_MIN_QUERY_LENGTH must be at least 1, got %d", c.Search.MinQueryLength)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
