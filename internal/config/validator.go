package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	// Валидация пути к базе истории
	if c.HistoryDatabasePath == "" {
		errors = append(errors, "history database path is required")
	}

	// Валидация параметров сканирования
	if c.MaxConcurrency < 1 {
		errors = append(errors, "scan concurrency must be at least 1")
	}
	if c.PerTaskTimeout < time.Second {
		errors = append(errors, "per-task timeout must be at least 1 second")
	}
	if c.OverallTimeout < c.PerTaskTimeout {
		errors = append(errors, "overall timeout cannot be less than per-task timeout")
	}

	// Валидация источников
	if c.DuckDuckGoBaseURL == "" {
		errors = append(errors, "duckduckgo base url is required")
	}
	if c.AsaxiyBaseURL == "" {
		errors = append(errors, "asaxiy base url is required")
	}
	if c.OlxBaseURL == "" {
		errors = append(errors, "olx base url is required")
	}
	if c.SourceRateEvery <= 0 {
		errors = append(errors, "source rate interval must be positive")
	}
	if c.SourceTimeout < time.Second {
		errors = append(errors, "source timeout must be at least 1 second")
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}
