package scanner

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"pricefinder/expansion"
)

// ScanConfig параметры одного сканирования
type ScanConfig struct {
	// MaxConcurrency размер пула воркеров для задач вариант x адаптер
	MaxConcurrency int `json:"max_concurrency"`
	// PerTaskTimeout срок одной задачи (один запрос к одному источнику)
	PerTaskTimeout time.Duration `json:"per_task_timeout"`
	// OverallTimeout общий срок всего сканирования
	OverallTimeout time.Duration `json:"overall_timeout"`
}

// DefaultScanConfig возвращает параметры сканирования по умолчанию
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		MaxConcurrency: 16,
		PerTaskTimeout: 10 * time.Second,
		OverallTimeout: 45 * time.Second,
	}
}

// Orchestrator раздает декартово произведение вариантов и адаптеров
// на ограниченный пул воркеров и собирает кандидатов по мере завершения задач.
// Не хранит состояния между сканированиями, безопасен для конкурентных
// независимых запросов
type Orchestrator struct {
	config ScanConfig
}

// NewOrchestrator создает оркестратор; нулевые поля конфигурации
// заменяются значениями по умолчанию
func NewOrchestrator(config ScanConfig) *Orchestrator {
	defaults := DefaultScanConfig()
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = defaults.MaxConcurrency
	}
	if config.PerTaskTimeout <= 0 {
		config.PerTaskTimeout = defaults.PerTaskTimeout
	}
	if config.OverallTimeout <= 0 {
		config.OverallTimeout = defaults.OverallTimeout
	}
	return &Orchestrator{config: config}
}

// Scan выполняет задачи вариант x адаптер и возвращает собранных кандидатов.
// Никогда не возвращает ошибку: отказ отдельной задачи логируется
// и отбрасывается, повторов внутри одного запроса нет - ценность
// дает охват источников. Порядок кандидатов - порядок завершения задач,
// упорядочивание делает агрегатор
func (o *Orchestrator) Scan(ctx context.Context, variants []expansion.SearchVariant, adapters []Adapter) []PriceCandidate {
	if len(variants) == 0 || len(adapters) == 0 {
		return nil
	}

	scanCtx, cancel := context.WithTimeout(ctx, o.config.OverallTimeout)
	defer cancel()

	semaphore := make(chan struct{}, o.config.MaxConcurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	collected := make([]PriceCandidate, 0)

	started := time.Now()
	tasks := 0

dispatch:
	for _, variant := range variants {
		for _, adapter := range adapters {
			// Прекращаем раздачу задач после общего дедлайна
			select {
			case semaphore <- struct{}{}:
			case <-scanCtx.Done():
				break dispatch
			}

			tasks++
			wg.Add(1)
			go func(variant expansion.SearchVariant, adapter Adapter) {
				defer wg.Done()
				defer func() { <-semaphore }()

				defer func() {
					if r := recover(); r != nil {
						log.Printf("[Orchestrator] Panic в адаптере %s для варианта %q: %v", adapter.Name(), variant.Term, r)
					}
				}()

				taskCtx, taskCancel := context.WithTimeout(scanCtx, o.config.PerTaskTimeout)
				defer taskCancel()

				candidates, err := adapter.Search(taskCtx, variant)
				if err != nil {
					logTaskFailure(adapter.Name(), variant, err)
					return
				}

				// Частичные результаты задач, не успевших до общего дедлайна,
				// отбрасываются целиком
				mu.Lock()
				if scanCtx.Err() == nil {
					collected = append(collected, stampCandidates(candidates, variant)...)
				}
				mu.Unlock()
			}(variant, adapter)
		}
	}

	// Ждем завершения задач, но не дольше общего дедлайна:
	// зависшая задача не должна блокировать возврат результата
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-scanCtx.Done():
	}

	mu.Lock()
	results := make([]PriceCandidate, len(collected))
	copy(results, collected)
	mu.Unlock()

	log.Printf("[Orchestrator] Сканирование завершено: %d задач, %d кандидатов за %s",
		tasks, len(results), time.Since(started).Round(time.Millisecond))

	return results
}

// stampCandidates заполняет обязательные поля кандидатов и отбрасывает
// кандидатов с некорректной ссылкой или ценой
func stampCandidates(candidates []PriceCandidate, variant expansion.SearchVariant) []PriceCandidate {
	valid := make([]PriceCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Price < 0 || !ValidLink(c.Link) {
			continue
		}
		if c.Language == "" {
			c.Language = variant.Language
		}
		if c.Timestamp.IsZero() {
			c.Timestamp = time.Now()
		}
		valid = append(valid, c)
	}
	return valid
}

// logTaskFailure пишет типизированный отказ задачи в лог.
// Отказы задач никогда не становятся ошибкой запроса
func logTaskFailure(adapterName string, variant expansion.SearchVariant, err error) {
	failureType := "unknown"
	switch {
	case errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded):
		failureType = "timeout"
	case errors.Is(err, ErrRateLimited):
		failureType = "rate_limited"
	case errors.Is(err, ErrParseFailure):
		failureType = "parse_failure"
	case errors.Is(err, ErrUnreachable):
		failureType = "unreachable"
	case errors.Is(err, context.Canceled):
		failureType = "cancelled"
	}

	log.Printf("[Orchestrator] Задача отброшена [%s] адаптер=%s вариант=%q: %v",
		failureType, adapterName, variant.Term, err)
}
