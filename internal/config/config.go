// Package config загружает конфигурацию сервиса из переменных окружения
package config

import (
	"os"
	"strconv"
	"time"
)

// Config конфигурация сервиса поиска цен
type Config struct {
	// Сервер
	Port string `json:"port"`

	// База истории сканирований
	HistoryDatabasePath string `json:"history_database_path"`

	// Сканирование
	MaxConcurrency int           `json:"max_concurrency"`
	PerTaskTimeout time.Duration `json:"per_task_timeout"`
	OverallTimeout time.Duration `json:"overall_timeout"`

	// Источники
	DuckDuckGoBaseURL string        `json:"duckduckgo_base_url"`
	AsaxiyBaseURL     string        `json:"asaxiy_base_url"`
	OlxBaseURL        string        `json:"olx_base_url"`
	SourceRateEvery   time.Duration `json:"source_rate_every"`
	SourceTimeout     time.Duration `json:"source_timeout"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Для отсутствующих переменных используются значения по умолчанию
func LoadConfig() *Config {
	return &Config{
		Port:                getEnv("PORT", "8080"),
		HistoryDatabasePath: getEnv("HISTORY_DB_PATH", "price_history.db"),

		MaxConcurrency: getEnvInt("SCAN_MAX_CONCURRENCY", 16),
		PerTaskTimeout: getEnvDuration("SCAN_TASK_TIMEOUT", 10*time.Second),
		OverallTimeout: getEnvDuration("SCAN_OVERALL_TIMEOUT", 45*time.Second),

		DuckDuckGoBaseURL: getEnv("DUCKDUCKGO_BASE_URL", "https://html.duckduckgo.com"),
		AsaxiyBaseURL:     getEnv("ASAXIY_BASE_URL", "https://asaxiy.uz"),
		OlxBaseURL:        getEnv("OLX_BASE_URL", "https://www.olx.uz"),
		SourceRateEvery:   getEnvDuration("SOURCE_RATE_EVERY", time.Second),
		SourceTimeout:     getEnvDuration("SOURCE_TIMEOUT", 10*time.Second),
	}
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
