// config - источник загрузки конфигурации шлюза x-assistant.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
//
// Ключи провайдеров и секрет настроек обычно приходят из ENV
// (TWITTER_RAPIDAPI_KEY, GEMINI_API_KEY, CONFIG_SECRET) и перекрывают YAML.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

var (
	// ErrNoSecret — не задан CONFIG_SECRET: изменяющие маршруты /config не защищены.
	ErrNoSecret = errors.New("settings secret is required (CONFIG_SECRET)")
	// ErrBackend — неизвестное хранилище лимитов.
	ErrBackend = errors.New("unknown rate limit backend")
)

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
	Social    SocialConfig    `yaml:"social"`
	Language  LanguageConfig  `yaml:"language"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	Settings  SettingsConfig  `yaml:"settings"`
}

// TimeoutConfig — общий дедлайн запроса и дедлайн одного вызова апстрима.
type TimeoutConfig struct {
	Service  time.Duration `yaml:"service"  env:"SERVICE_TIMEOUT"  env-default:"30s"`
	Upstream time.Duration `yaml:"upstream" env:"UPSTREAM_TIMEOUT" env-default:"15s"`
}

// HTTPConfig — публичный REST-сервер шлюза.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"3000"`
	// IgnoreForwarded — не доверять X-Forwarded-For / X-Real-IP и брать адрес
	// клиента из соединения (шлюз без reverse proxy перед ним).
	IgnoreForwarded bool `yaml:"ignore_forwarded" env:"HTTP_IGNORE_FORWARDED"`
	// MaxBodyBytes — предел тела запроса.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"HTTP_MAX_BODY_BYTES" env-default:"1048576"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// SocialConfig — провайдер соцданных (RapidAPI).
type SocialConfig struct {
	BaseURL string  `yaml:"base_url" env:"SOCIAL_BASE_URL" env-default:"https://twitter-v24.p.rapidapi.com"`
	Host    string  `yaml:"host"     env:"SOCIAL_HOST"     env-default:"twitter-v24.p.rapidapi.com"`
	APIKey  string  `yaml:"api_key"  env:"TWITTER_RAPIDAPI_KEY"`
	RPS     float64 `yaml:"rps"      env:"SOCIAL_RPS"      env-default:"5"`
	Burst   int     `yaml:"burst"    env:"SOCIAL_BURST"    env-default:"10"`
}

// LanguageConfig — генеративная языковая модель.
// APIKey необязателен: клиент может прислать свой ключ в теле запроса.
type LanguageConfig struct {
	BaseURL string  `yaml:"base_url" env:"LANGUAGE_BASE_URL" env-default:"https://generativelanguage.googleapis.com"`
	Model   string  `yaml:"model"    env:"LANGUAGE_MODEL"    env-default:"gemini-2.0-flash"`
	APIKey  string  `yaml:"api_key"  env:"GEMINI_API_KEY"`
	RPS     float64 `yaml:"rps"      env:"LANGUAGE_RPS"      env-default:"2"`
	Burst   int     `yaml:"burst"    env:"LANGUAGE_BURST"    env-default:"4"`
}

// RateLimitConfig — лимиты шлюза по адресу клиента.
type RateLimitConfig struct {
	Backend  string `yaml:"backend"   env:"RATE_LIMIT_BACKEND" env-default:"memory"`
	RedisURL string `yaml:"redis_url" env:"REDIS_URL"          env-default:"redis://localhost:6379/0"`
	Prefix   string `yaml:"prefix"    env:"RATE_LIMIT_PREFIX"  env-default:"xa:rl:"`

	APIMax          int           `yaml:"api_max"          env:"API_RATE_LIMIT"         env-default:"60"`
	APIWindow       time.Duration `yaml:"api_window"       env:"API_RATE_WINDOW"        env-default:"1m"`
	AssistantMax    int           `yaml:"assistant_max"    env:"ASSISTANT_RATE_LIMIT"   env-default:"30"`
	AssistantWindow time.Duration `yaml:"assistant_window" env:"ASSISTANT_RATE_WINDOW"  env-default:"1m"`
	ConfigMax       int           `yaml:"config_max"       env:"RATE_LIMIT_MAX"         env-default:"10"`
	ConfigWindow    time.Duration `yaml:"config_window"    env:"RATE_LIMIT_WINDOW"      env-default:"5m"`
	DeleteMax       int           `yaml:"delete_max"       env:"DELETE_RATE_LIMIT"      env-default:"3"`
	SweepInterval   time.Duration `yaml:"sweep_interval"   env:"RATE_LIMIT_SWEEP"       env-default:"1m"`
}

// SettingsConfig — маршруты /config.
type SettingsConfig struct {
	Secret  string `yaml:"secret"  env:"CONFIG_SECRET"`
	AppURL  string `yaml:"app_url" env:"APP_URL" env-default:"http://localhost:3000"`
	Version string `yaml:"version" env:"APP_VERSION" env-default:"1.0.0"`
}

// Validate проверяет инварианты, без которых шлюз не стартует.
func (c *Config) Validate() error {
	const op = "internal/config/Validate"

	if c.Settings.Secret == "" {
		return fmt.Errorf("%s: %w", op, ErrNoSecret)
	}

	switch c.RateLimit.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("%s: %w: %q", op, ErrBackend, c.RateLimit.Backend)
	}

	return nil
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, nil
}
