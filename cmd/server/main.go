package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pricefinder/database"
	"pricefinder/internal/config"
	"pricefinder/pricing"
	"pricefinder/scanner"
	"pricefinder/scanner/adapters"
	"pricefinder/server"
)

func main() {
	log.Println("Запуск сервиса поиска цен...")

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	// История сканирований не критична для работы движка,
	// при недоступной базе сервис стартует без нее
	history, err := database.NewHistoryStore(cfg.HistoryDatabasePath)
	if err != nil {
		log.Printf("Предупреждение: история сканирований недоступна: %v", err)
		history = nil
	} else {
		defer history.Close()
	}

	finder := pricing.NewFinderWithConfig(
		buildAdapters(cfg),
		scanner.ScanConfig{
			MaxConcurrency: cfg.MaxConcurrency,
			PerTaskTimeout: cfg.PerTaskTimeout,
			OverallTimeout: cfg.OverallTimeout,
		},
	)

	srv := server.NewServer(finder, history, cfg.Port)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("Ошибка запуска сервера: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Получен сигнал завершения, останавливаем сервер...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}

// buildAdapters собирает адаптеры источников из конфигурации
func buildAdapters(cfg *config.Config) []scanner.Adapter {
	return []scanner.Adapter{
		adapters.NewDuckDuckGoAdapter(adapters.DuckDuckGoConfig{
			BaseURL:   cfg.DuckDuckGoBaseURL,
			Timeout:   cfg.SourceTimeout,
			RateEvery: cfg.SourceRateEvery,
		}),
		adapters.NewAsaxiyAdapter(adapters.ShopConfig{
			BaseURL:   cfg.AsaxiyBaseURL,
			Timeout:   cfg.SourceTimeout,
			RateEvery: cfg.SourceRateEvery,
		}),
		adapters.NewOlxAdapter(adapters.ShopConfig{
			BaseURL:   cfg.OlxBaseURL,
			Timeout:   cfg.SourceTimeout,
			RateEvery: cfg.SourceRateEvery,
		}),
	}
}
