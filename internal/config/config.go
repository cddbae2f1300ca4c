package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Feedback  FeedbackConfig  `mapstructure:"feedback"`
	EventBus  EventBusConfig  `mapstructure:"event_bus"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// FeedbackConfig 外部反馈生成器（HTTP）配置
type FeedbackConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	TimeoutSeconds int           `mapstructure:"timeout_seconds"`
	Language       string        `mapstructure:"language"`
	Style          string        `mapstructure:"style"`
	Timeout        time.Duration `mapstructure:"-"`
}

// EventBusConfig 事件发布配置，channel 为空则关闭发布
type EventBusConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Channel string `mapstructure:"channel"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("SOFTSKILL")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")
	viper.BindEnv("server.port", "SERVER_PORT")

	// Feedback generator
	viper.BindEnv("feedback.base_url", "FEEDBACK_BASE_URL")
	viper.BindEnv("feedback.timeout_seconds", "FEEDBACK_TIMEOUT_SECONDS")
	viper.BindEnv("feedback.language", "FEEDBACK_LANGUAGE")
	viper.BindEnv("feedback.style", "FEEDBACK_STYLE")

	// Event bus
	viper.BindEnv("event_bus.enabled", "EVENT_BUS_ENABLED")
	viper.BindEnv("event_bus.channel", "EVENT_BUS_CHANNEL")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Feedback.BaseURL == "" {
		return nil, fmt.Errorf("feedback.base_url is required")
	}
	if cfg.Feedback.TimeoutSeconds <= 0 {
		cfg.Feedback.TimeoutSeconds = 30
	}
	cfg.Feedback.Timeout = time.Duration(cfg.Feedback.TimeoutSeconds) * time.Second

	if cfg.Feedback.Language == "" {
		cfg.Feedback.Language = "zh"
	}
	if cfg.Feedback.Style == "" {
		cfg.Feedback.Style = "constructive"
	}
	if cfg.EventBus.Enabled && cfg.EventBus.Channel == "" {
		cfg.EventBus.Channel = "softskill.events"
	}

	return &cfg, nil
}
