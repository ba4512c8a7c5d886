package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server              ServerConfig       `toml:"server"`
	Database            DatabaseConfig     `toml:"database"`
	Redis               RedisConfig        `toml:"redis"`
	Logs                LogsConfig         `toml:"logs"`
	Metrics             MetricsConfig      `toml:"metrics"`
	CatalogService      ServiceConfig      `toml:"catalog_service"`
	NotificationService NotificationConfig `toml:"notification_service"`
	Scheduling          SchedulingConfig   `toml:"scheduling"`
	RateLimit           RateLimitConfig    `toml:"rate_limit"`
	Admin               AdminConfig        `toml:"admin"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
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

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки кэша доступности
type RedisConfig struct {
	Enabled         bool   `toml:"enabled"`
	Address         string `toml:"address"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	PoolSize        int    `toml:"pool_size"`
	AvailabilityTTL int    `toml:"availability_ttl"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Format string `toml:"format"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ServiceConfig настройки внешнего HTTP сервиса (timeout в секундах)
type ServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// NotificationConfig настройки сервиса уведомлений; при enabled = false уведомления не отправляются
type NotificationConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// SchedulingConfig параметры расписания
type SchedulingConfig struct {
	Timezone        string                 `toml:"timezone"`
	SlotStepMinutes int                    `toml:"slot_step_minutes"`
	LeadTimeMinutes int                    `toml:"lead_time_minutes"`
	DefaultWeek     map[string]DayTemplate `toml:"default_week"`
}

// DayTemplate часы работы дня недели по умолчанию ("09:00", "19:30")
type DayTemplate struct {
	Closed bool   `toml:"closed"`
	Open   string `toml:"open"`
	Close  string `toml:"close"`
}

// RateLimitConfig ограничение запросов к эндпоинтам отмены (на IP)
type RateLimitConfig struct {
	RPS   float64 `toml:"rps"`
	Burst int     `toml:"burst"`
}

// AdminConfig доступ к административным эндпоинтам
type AdminConfig struct {
	APIKey string `toml:"api_key"`
}

// Load загружает конфигурацию из TOML файла.
// Перед разбором подгружается .env (если есть) и подставляются ${VAR} из окружения.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(os.ExpandEnv(string(data)))
}

// Parse разбирает TOML, применяет значения по умолчанию и валидирует результат
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
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

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
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

	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.Redis.AvailabilityTTL == 0 {
		c.Redis.AvailabilityTTL = 60
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Logs.Format == "" {
		c.Logs.Format = "json"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "reservation-engine"
	}

	if c.CatalogService.Timeout == 0 {
		c.CatalogService.Timeout = 5
	}
	if c.NotificationService.Timeout == 0 {
		c.NotificationService.Timeout = 5
	}

	if c.Scheduling.Timezone == "" {
		c.Scheduling.Timezone = "Europe/Moscow"
	}
	if c.Scheduling.SlotStepMinutes == 0 {
		c.Scheduling.SlotStepMinutes = domain.SlotStepMinutes
	}
	if c.Scheduling.LeadTimeMinutes == 0 {
		c.Scheduling.LeadTimeMinutes = domain.LeadTimeMinutes
	}
	if len(c.Scheduling.DefaultWeek) == 0 {
		c.Scheduling.DefaultWeek = map[string]DayTemplate{
			"monday":    {Open: "09:00", Close: "19:30"},
			"tuesday":   {Open: "09:00", Close: "19:30"},
			"wednesday": {Open: "09:00", Close: "19:30"},
			"thursday":  {Open: "09:00", Close: "19:30"},
			"friday":    {Open: "09:00", Close: "19:30"},
			"saturday":  {Open: "10:00", Close: "16:00"},
			"sunday":    {Closed: true},
		}
	}

	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 1
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort)
	}
	if strings.TrimSpace(c.Database.Host) == "" {
		return errors.New("database.host is required")
	}
	if strings.TrimSpace(c.Database.DBName) == "" {
		return errors.New("database.dbname is required")
	}
	if c.Redis.Enabled && strings.TrimSpace(c.Redis.Address) == "" {
		return errors.New("redis.address is required when redis is enabled")
	}
	if strings.TrimSpace(c.CatalogService.URL) == "" {
		return errors.New("catalog_service.url is required")
	}
	if c.NotificationService.Enabled && strings.TrimSpace(c.NotificationService.URL) == "" {
		return errors.New("notification_service.url is required when notifications are enabled")
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Scheduling.SlotStepMinutes <= 0 || 24*60%c.Scheduling.SlotStepMinutes != 0 {
		return fmt.Errorf("scheduling.slot_step_minutes must divide a day: %d", c.Scheduling.SlotStepMinutes)
	}
	if c.Scheduling.LeadTimeMinutes < 0 {
		return fmt.Errorf("scheduling.lead_time_minutes must not be negative: %d", c.Scheduling.LeadTimeMinutes)
	}
	if _, err := c.DefaultWeek(); err != nil {
		return err
	}

	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate_limit values must not be negative")
	}

	return nil
}

// Location часовой пояс, в котором ведётся всё расписание
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Scheduling.Timezone)
	if err != nil {
		return nil, fmt.Errorf("scheduling.timezone %q: %w", c.Scheduling.Timezone, err)
	}
	return loc, nil
}

// DefaultWeek переводит [scheduling.default_week] в доменный шаблон недели
func (c *Config) DefaultWeek() (domain.WeekTemplate, error) {
	week := make(domain.WeekTemplate, len(c.Scheduling.DefaultWeek))

	for name, day := range c.Scheduling.DefaultWeek {
		wd, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("scheduling.default_week: %w", err)
		}

		if day.Closed {
			week[wd] = domain.DayTemplate{IsClosed: true}
			continue
		}

		open, err := types.NewTimeStringFromString(day.Open)
		if err != nil {
			return nil, fmt.Errorf("scheduling.default_week.%s.open: %w", name, err)
		}
		closeAt, err := types.NewTimeStringFromString(day.Close)
		if err != nil {
			return nil, fmt.Errorf("scheduling.default_week.%s.close: %w", name, err)
		}
		if !open.IsBefore(closeAt) {
			return nil, fmt.Errorf("scheduling.default_week.%s: close %s must be after open %s", name, closeAt, open)
		}

		week[wd] = domain.DayTemplate{OpenTime: open, CloseTime: closeAt}
	}

	return week, nil
}
