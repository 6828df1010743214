package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Clock    ClockConfig    `toml:"clock"`
	Studio   StudioConfig   `toml:"studio"`
	Notifier NotifierConfig `toml:"notifier"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры хранилища, из которого загружается история
type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
	Driver          string `toml:"driver"` // postgres | sqlite
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	Path            string `toml:"path"` // файл базы для sqlite
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	LoadTimeout     int    `toml:"load_timeout"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ClockConfig параметры тикера пересчета таймеров
type ClockConfig struct {
	TickIntervalMs int    `toml:"tick_interval_ms"`
	Timezone       string `toml:"timezone"`
}

// StudioConfig параметры студии
type StudioConfig struct {
	Rooms []int `toml:"rooms"` // используется, если каталог комнат в БД недоступен
}

// NotifierConfig параметры вебхука для предупреждений об окончании времени
type NotifierConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// DSN возвращает строку подключения для драйвера
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Load читает конфигурацию из TOML файла, применяет переменные окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Enabled && c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("%w: database.driver=%q", ErrInvalidConfig, c.Database.Driver)
	}
	if c.Database.Enabled && c.Database.Driver == "sqlite" && c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is required for sqlite", ErrInvalidConfig)
	}
	for _, room := range c.Studio.Rooms {
		if room <= 0 {
			return fmt.Errorf("%w: studio.rooms contains %d", ErrInvalidConfig, room)
		}
	}
	return nil
}

// applyEnv переопределяет значения переменными окружения STUDIO_*
func applyEnv(cfg *Config) error {
	if v := os.Getenv("STUDIO_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("STUDIO_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("STUDIO_HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: STUDIO_HTTP_PORT=%q", ErrInvalidConfig, v)
		}
		cfg.Server.HTTPPort = port
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Database.LoadTimeout == 0 {
		cfg.Database.LoadTimeout = 10
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "studio-service"
	}
	if cfg.Clock.TickIntervalMs == 0 {
		cfg.Clock.TickIntervalMs = 1000
	}
	if cfg.Notifier.Timeout == 0 {
		cfg.Notifier.Timeout = 3
	}
}
