// Package pricing собирает движок поиска цен из компонентов:
// словарь, расширитель запросов, оркестратор сканирования и агрегатор
package pricing

import (
	"context"
	"fmt"
	"log"
	"strings"

	"pricefinder/aggregation"
	"pricefinder/expansion"
	"pricefinder/lexicon"
	"pricefinder/scanner"
)

// Finder фасад движка поиска цен.
// Один запрос проходит путь: товар -> поисковые варианты ->
// параллельное сканирование источников -> сведенный результат
type Finder struct {
	expander     *expansion.Expander
	orchestrator *scanner.Orchestrator
	adapters     []scanner.Adapter
}

// Result результат поиска цен для одного товара
type Result struct {
	// ProductName исходное имя товара из запроса
	ProductName string
	// SearchQuery базовый поисковый запрос, от которого строились варианты
	SearchQuery string
	// Aggregated сведенные кандидаты цен; BestOverall nil, если цен не нашлось
	Aggregated *aggregation.AggregatedResult
}

// NewFinder создает движок поиска цен с настройками по умолчанию
func NewFinder(adapters []scanner.Adapter) *Finder {
	lex := lexicon.NewLexicon()
	return &Finder{
		expander:     expansion.NewExpander(lex),
		orchestrator: scanner.NewOrchestrator(scanner.DefaultScanConfig()),
		adapters:     adapters,
	}
}

// NewFinderWithConfig создает движок с явной конфигурацией сканирования
func NewFinderWithConfig(adapters []scanner.Adapter, config scanner.ScanConfig) *Finder {
	lex := lexicon.NewLexicon()
	return &Finder{
		expander:     expansion.NewExpander(lex),
		orchestrator: scanner.NewOrchestrator(config),
		adapters:     adapters,
	}
}

// FindPrice выполняет полный цикл поиска цены товара.
// Ошибка возвращается только при невозможности построить поисковые
// варианты; пустой результат сканирования - корректный исход
func (f *Finder) FindPrice(ctx context.Context, product expansion.Product) (*Result, error) {
	variants, err := f.expander.Expand(product)
	if err != nil {
		return nil, fmt.Errorf("расширение запроса: %w", err)
	}

	log.Printf("[Finder] Товар %q: построено вариантов: %d, источников: %d",
		product.Name, len(variants), len(f.adapters))

	candidates := f.orchestrator.Scan(ctx, variants, f.adapters)

	log.Printf("[Finder] Товар %q: собрано кандидатов: %d", product.Name, len(candidates))

	return &Result{
		ProductName: product.Name,
		SearchQuery: buildSearchQuery(product),
		Aggregated:  aggregation.Aggregate(candidates, variants),
	}, nil
}

// buildSearchQuery базовый поисковый запрос из имени и характеристик товара
func buildSearchQuery(product expansion.Product) string {
	parts := []string{strings.TrimSpace(product.Name)}
	for _, spec := range product.Specifications {
		value := strings.TrimSpace(spec.Value)
		if value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, " ")
}
