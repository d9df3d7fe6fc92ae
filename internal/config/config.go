package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/BurntSushi/toml"
)

// Источники доступности
const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать или разобрать
	ErrReadConfig = errors.New("config: failed to read file")

	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Config конфигурация сервиса
type Config struct {
	Server              ServerConfig              `toml:"server"`
	Logs                LogsConfig                `toml:"logs"`
	Metrics             MetricsConfig             `toml:"metrics"`
	Availability        AvailabilityConfig        `toml:"availability"`
	AvailabilityService AvailabilityServiceConfig `toml:"availability_service"`
	Database            DatabaseConfig            `toml:"database"`
	Sessions            SessionsConfig            `toml:"sessions"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AvailabilityConfig выбор источника доступности: http или postgres
type AvailabilityConfig struct {
	Source       string `toml:"source"`
	FetchTimeout int    `toml:"fetch_timeout"` // секунды, 0 = без таймаута
}

type AvailabilityServiceConfig struct {
	URL       string  `toml:"url"`
	Timeout   int     `toml:"timeout"`    // секунды
	RateLimit float64 `toml:"rate_limit"` // запросов в секунду, 0 = без ограничения
	Burst     int     `toml:"burst"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// SessionsConfig параметры сессий выбора, интервалы в секундах
type SessionsConfig struct {
	IdleTTL         int `toml:"idle_ttl"`
	CleanupInterval int `toml:"cleanup_interval"`
	MaxSessions     int `toml:"max_sessions"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "slot-picker",
		},
		Availability: AvailabilityConfig{
			Source:       SourceHTTP,
			FetchTimeout: 10,
		},
		AvailabilityService: AvailabilityServiceConfig{
			Timeout: 5,
			Burst:   1,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Sessions: SessionsConfig{
			IdleTTL:         1800,
			CleanupInterval: 60,
			MaxSessions:     10000,
		},
	}
}

// Load читает TOML файл поверх значений по умолчанию и проверяет результат
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}

	if c.Availability.FetchTimeout < 0 {
		return fmt.Errorf("%w: availability.fetch_timeout must not be negative", ErrInvalidConfig)
	}

	switch c.Availability.Source {
	case SourceHTTP:
		u, err := url.Parse(c.AvailabilityService.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: availability_service.url=%q", ErrInvalidConfig, c.AvailabilityService.URL)
		}
		if c.AvailabilityService.RateLimit < 0 {
			return fmt.Errorf("%w: availability_service.rate_limit must not be negative", ErrInvalidConfig)
		}
	case SourcePostgres:
		if c.Database.DBName == "" {
			return fmt.Errorf("%w: database.dbname is required for postgres source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: availability.source=%q (expected %s or %s)",
			ErrInvalidConfig, c.Availability.Source, SourceHTTP, SourcePostgres)
	}

	if c.Sessions.IdleTTL < 0 || c.Sessions.CleanupInterval < 0 || c.Sessions.MaxSessions < 0 {
		return fmt.Errorf("%w: sessions values must not be negative", ErrInvalidConfig)
	}
	return nil
}
