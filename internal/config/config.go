package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/annel0/hexboard/internal/logging"
)

// Config корневая структура конфигурации утилиты hexmap.
type Config struct {
	Layout  LayoutConfig  `yaml:"layout"`
	Store   StoreConfig   `yaml:"store"`
	Catalog CatalogConfig `yaml:"catalog"`
	Log     LogConfig     `yaml:"log"`
}

type LayoutConfig struct {
	HalfSize float64 `yaml:"half_size"`
	OriginX  float64 `yaml:"origin_x"`
	OriginY  float64 `yaml:"origin_y"`
}

type StoreConfig struct {
	Backend     string        `yaml:"backend"` // memory | badger | redis
	BadgerDir   string        `yaml:"badger_dir"`
	Compress    bool          `yaml:"compress"`
	RedisAddr   string        `yaml:"redis_addr"`
	RedisPrefix string        `yaml:"redis_prefix"`
	RedisDB     int           `yaml:"redis_db"`
	RedisTTL    time.Duration `yaml:"redis_ttl"`
}

type CatalogConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// Default возвращает конфигурацию по умолчанию.
// Бэкенд, адрес Redis и размер тайла остаются пустыми:
// их значения подставляют Get* с учётом переменных окружения.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			BadgerDir:   "data/layouts",
			Compress:    true,
			RedisPrefix: "hexmap:layout:",
		},
		Log: LogConfig{Level: "info"},
	}
}

// GetBackend возвращает бэкенд хранилища: config -> env -> memory
func (s *StoreConfig) GetBackend() string {
	return getWithEnvFallback(s.Backend, "HEXMAP_STORE", "memory")
}

// GetRedisAddr возвращает адрес Redis: config -> env -> localhost
func (s *StoreConfig) GetRedisAddr() string {
	return getWithEnvFallback(s.RedisAddr, "HEXMAP_REDIS_ADDR", "localhost:6379")
}

// GetHalfSize возвращает половину размера тайла с поддержкой env
func (l *LayoutConfig) GetHalfSize() float64 {
	if l.HalfSize > 0 {
		return l.HalfSize
	}
	if envVal := os.Getenv("HEXMAP_HALF_SIZE"); envVal != "" {
		if v, err := strconv.ParseFloat(envVal, 64); err == nil && v > 0 {
			return v
		}
	}
	return 3.5
}

// getWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getWithEnvFallback(configVal, envVar, defaultVal string) string {
	if configVal != "" {
		return configVal
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultVal
}

// Validate проверяет значения, которые нельзя исправить подстановкой дефолтов
func (c *Config) Validate() error {
	switch backend := c.Store.GetBackend(); backend {
	case "memory", "badger", "redis":
	default:
		return fmt.Errorf("неизвестный бэкенд хранилища: %q", backend)
	}
	if c.Layout.HalfSize < 0 {
		return fmt.Errorf("half_size не может быть отрицательным: %v", c.Layout.HalfSize)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV HEXMAP_CONFIG или возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("HEXMAP_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.GetConfigLogger().Debug("конфигурация загружена из %s", path)
	return cfg, nil
}
