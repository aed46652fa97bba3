package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
	Sweeper  SweeperConfig  `toml:"sweeper"`
	Cascade  CascadeConfig  `toml:"cascade"`

	VenueService VenueServiceConfig `toml:"venue_service"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig настройки записи бронирований
type BookingConfig struct {
	// Максимальное ожидание блокировки корта в миллисекундах,
	// по истечении клиент получает 503 и может повторить запрос
	LockWaitMillis int `toml:"lock_wait_millis"`
}

// SweeperConfig настройки фонового перевода завершившихся бронирований
type SweeperConfig struct {
	IntervalSeconds  int `toml:"interval_seconds"`
	RetryAttempts    int `toml:"retry_attempts"`
	RetryDelayMillis int `toml:"retry_delay_millis"`
}

// CascadeConfig настройки каскадной отмены при удалении корта/площадки
type CascadeConfig struct {
	RetryAttempts    int `toml:"retry_attempts"`
	RetryDelayMillis int `toml:"retry_delay_millis"`
}

// VenueServiceConfig настройки клиента venue-сервиса
type VenueServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load читает конфигурацию из TOML-файла и применяет дефолты
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8083
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.File == "" {
		c.Logs.File = "logs/booking-service.log"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "booking-service"
	}

	if c.Booking.LockWaitMillis == 0 {
		c.Booking.LockWaitMillis = 3000
	}

	if c.Sweeper.IntervalSeconds == 0 {
		c.Sweeper.IntervalSeconds = 60
	}
	if c.Sweeper.RetryAttempts == 0 {
		c.Sweeper.RetryAttempts = 3
	}
	if c.Sweeper.RetryDelayMillis == 0 {
		c.Sweeper.RetryDelayMillis = 500
	}

	if c.Cascade.RetryAttempts == 0 {
		c.Cascade.RetryAttempts = 3
	}
	if c.Cascade.RetryDelayMillis == 0 {
		c.Cascade.RetryDelayMillis = 500
	}

	if c.VenueService.URL == "" {
		c.VenueService.URL = "http://localhost:8081"
	}
	if c.VenueService.Timeout == 0 {
		c.VenueService.Timeout = 5
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	return nil
}
