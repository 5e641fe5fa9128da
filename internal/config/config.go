package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	Sim       SimConfig       `yaml:"sim"`
	Storage   StorageConfig   `yaml:"storage"`
	EventBus  EventBusConfig  `yaml:"eventbus"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SimConfig управляет планировщиком симуляции
type SimConfig struct {
	TickRate        int     `yaml:"tick_rate"`    // Тиков в секунду
	MaxDeltaMs      float64 `yaml:"max_delta_ms"` // Верхняя граница шага
	Seed            int64   `yaml:"seed"`
	DurationSeconds int     `yaml:"duration_seconds"` // 0 — до сигнала
	StartMap        string  `yaml:"start_map"`
	Autopilot       bool    `yaml:"autopilot"`
}

// StorageConfig выбирает хранилище сохранений
type StorageConfig struct {
	Backend       string `yaml:"backend"` // memory | badger | redis | maria | tiered
	Path          string `yaml:"path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	KeyPrefix     string `yaml:"key_prefix"`
	MariaDSN      string `yaml:"maria_dsn"`
	Slot          string `yaml:"slot"`
}

type EventBusConfig struct {
	URL       string `yaml:"url"` // Пусто — шина в памяти
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
	Buffer    int    `yaml:"buffer"`
}

type MetricsConfig struct {
	Port int `yaml:"port"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type LoggingConfig struct {
	Component string `yaml:"component"`
	Level     string `yaml:"level"`
}

// Default возвращает конфигурацию для запуска без файла
func Default() *Config {
	return &Config{
		Sim: SimConfig{
			TickRate:   60,
			MaxDeltaMs: 100,
			Seed:       1,
			StartMap:   "village",
		},
		Storage: StorageConfig{
			Backend:   "memory",
			Path:      "data",
			KeyPrefix: "isle:save:",
			Slot:      "default",
		},
		EventBus: EventBusConfig{
			Stream:    "ISLE",
			Retention: 24,
			Buffer:    1024,
		},
		Telemetry: TelemetryConfig{ServiceName: "memory-isle"},
		Logging:   LoggingConfig{Component: "isle", Level: "info"},
	}
}

// TickInterval возвращает период тика
func (s *SimConfig) TickInterval() time.Duration {
	rate := s.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// Duration возвращает длительность прогона; 0 — без ограничения
func (s *SimConfig) Duration() time.Duration {
	if s.DurationSeconds <= 0 {
		return 0
	}
	return time.Duration(s.DurationSeconds) * time.Second
}

// GetRedisAddr возвращает адрес Redis с поддержкой fallback значений
func (s *StorageConfig) GetRedisAddr() string {
	return getStringWithEnvFallback(s.RedisAddr, "ISLE_REDIS_ADDR", "localhost:6379")
}

// GetMariaDSN возвращает DSN MariaDB с поддержкой fallback значений
func (s *StorageConfig) GetMariaDSN() string {
	return getStringWithEnvFallback(s.MariaDSN, "ISLE_MARIA_DSN", "isle:isle@tcp(localhost:3306)/isle")
}

// GetURL возвращает адрес NATS; пустая строка означает шину в памяти
func (e *EventBusConfig) GetURL() string {
	return getStringWithEnvFallback(e.URL, "ISLE_NATS_URL", "")
}

// RetentionDuration возвращает срок хранения событий в стриме
func (e *EventBusConfig) RetentionDuration() time.Duration {
	return time.Duration(e.Retention) * time.Hour
}

// GetPort возвращает порт Prometheus метрик с поддержкой fallback значений
func (m *MetricsConfig) GetPort() int {
	return getPortWithEnvFallback(m.Port, "ISLE_METRICS_PORT", 2112)
}

// Addr возвращает адрес HTTP-эндпоинта метрик
func (m *MetricsConfig) Addr() string {
	return fmt.Sprintf(":%d", m.GetPort())
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}
	return defaultPort
}

func getStringWithEnvFallback(value, envVar, def string) string {
	if value != "" {
		return value
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return def
}

// Load читает YAML файл конфигурации поверх Default().
// Если path == "", пытается прочитать путь из ENV ISLE_CONFIG; без него отдаёт Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("ISLE_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	return cfg, nil
}
