// Package config загрузка конфигурации сервиса из TOML файла
// с переопределением значений переменными окружения
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
)

var (
	// ErrReadConfig ошибка чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrReadEnv ошибка чтения переменных окружения
	ErrReadEnv = errors.New("config: failed to read environment")

	// ErrInvalidConfig конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config корневая конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Booking       BookingConfig       `toml:"booking"`
	Penalty       PenaltyConfig       `toml:"penalty"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	HTTPRateLimit HTTPRateLimitConfig `toml:"http_rate_limit"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	// Isolation уровень изоляции транзакций: read_committed | repeatable_read | serializable
	Isolation string `toml:"isolation" env:"DB_ISOLATION"`
	// LockTimeoutMs SET LOCAL lock_timeout для транзакций, 0 - без ограничения
	LockTimeoutMs int  `toml:"lock_timeout_ms"`
	AutoMigrate   bool `toml:"auto_migrate" env:"DB_AUTO_MIGRATE"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL строка подключения в формате postgres:// для golang-migrate
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// LockTimeout lock_timeout в виде time.Duration
func (c DatabaseConfig) LockTimeout() time.Duration {
	return time.Duration(c.LockTimeoutMs) * time.Millisecond
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file" env:"LOG_FILE"`
	Level string `toml:"level" env:"LOG_LEVEL"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig настройки бронирования
type BookingConfig struct {
	// Timezone часовой пояс, в котором задано расписание ресурсов
	Timezone           string `toml:"timezone" env:"BOOKING_TIMEZONE"`
	DefaultSlotMinutes int    `toml:"default_slot_minutes"`
}

// Location загружает часовой пояс расписания
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// PenaltyConfig политика штрафов по умолчанию
type PenaltyConfig struct {
	GracePeriodDays int     `toml:"grace_period_days"`
	BaseRate        float64 `toml:"base_rate"`
	DailyRate       float64 `toml:"daily_rate"`
	MaxRate         float64 `toml:"max_rate"`
}

// RateLimitConfig ограничение частоты создания бронирований на пользователя
type RateLimitConfig struct {
	Enabled       bool   `toml:"enabled" env:"RATE_LIMIT_ENABLED"`
	RedisAddr     string `toml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `toml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `toml:"redis_db"`
	MaxPerUser    int    `toml:"max_per_user"`
	WindowSeconds int    `toml:"window_seconds"`
}

// Window окно ограничения в виде time.Duration
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// HTTPRateLimitConfig глобальное ограничение входящих запросов
type HTTPRateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// Load читает конфигурацию из TOML файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadEnv, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			Isolation:       "read_committed",
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "studio-booking",
		},
		Booking: BookingConfig{
			Timezone:           "America/Santiago",
			DefaultSlotMinutes: 60,
		},
		Penalty: PenaltyConfig{
			GracePeriodDays: 2,
			BaseRate:        0.05,
			DailyRate:       0.005,
			MaxRate:         0.50,
		},
		RateLimit: RateLimitConfig{
			MaxPerUser:    10,
			WindowSeconds: 86400,
		},
		HTTPRateLimit: HTTPRateLimitConfig{
			RPS:   100,
			Burst: 200,
		},
	}
}

// Validate проверяет допустимость значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	switch c.Database.Isolation {
	case "read_committed", "repeatable_read", "serializable":
	default:
		return fmt.Errorf("%w: database.isolation %q", ErrInvalidConfig, c.Database.Isolation)
	}
	if c.Database.LockTimeoutMs < 0 {
		return fmt.Errorf("%w: database.lock_timeout_ms must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if c.Booking.DefaultSlotMinutes < 5 || c.Booking.DefaultSlotMinutes > 480 {
		return fmt.Errorf("%w: booking.default_slot_minutes %d", ErrInvalidConfig, c.Booking.DefaultSlotMinutes)
	}
	p := c.Penalty
	if p.GracePeriodDays < 0 || p.BaseRate < 0 || p.DailyRate < 0 || p.MaxRate < 0 || p.MaxRate < p.BaseRate {
		return fmt.Errorf("%w: penalty policy %+v", ErrInvalidConfig, p)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RedisAddr == "" {
			return fmt.Errorf("%w: rate_limit.redis_addr is required", ErrInvalidConfig)
		}
		if c.RateLimit.MaxPerUser <= 0 || c.RateLimit.WindowSeconds <= 0 {
			return fmt.Errorf("%w: rate_limit.max_per_user and window_seconds must be positive", ErrInvalidConfig)
		}
	}
	if c.HTTPRateLimit.Enabled && (c.HTTPRateLimit.RPS <= 0 || c.HTTPRateLimit.Burst <= 0) {
		return fmt.Errorf("%w: http_rate_limit.rps and burst must be positive", ErrInvalidConfig)
	}
	return nil
}
