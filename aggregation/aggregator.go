// Package aggregation сводит кандидатов цен от всех источников
// в итоговый результат: дедупликация, сортировка и выбор лучших цен
package aggregation

import (
	"net/url"
	"sort"
	"strings"

	"pricefinder/expansion"
	"pricefinder/lexicon"
	"pricefinder/scanner"
)

// AggregatedResult итоговый результат сканирования цен
type AggregatedResult struct {
	// BestOverall кандидат с минимальной ценой среди всех, nil если кандидатов нет
	BestOverall *scanner.PriceCandidate `json:"best_overall,omitempty"`
	// BestPerLanguage лучший кандидат для каждого языка, по которому что-то нашлось
	BestPerLanguage map[lexicon.Language]scanner.PriceCandidate `json:"best_per_language"`
	// AllResults все кандидаты после дедупликации, отсортированы по возрастанию цены
	AllResults []scanner.PriceCandidate `json:"all_results"`
	// VariantsUsed поисковые варианты, участвовавшие в сканировании
	VariantsUsed []expansion.SearchVariant `json:"variants_used"`
}

// Aggregate сводит кандидатов в итоговый результат.
// Кандидаты с неположительной ценой или некорректной ссылкой отбрасываются,
// дубликаты по паре (магазин, ссылка) схлопываются в кандидата с меньшей ценой.
// Пустой набор кандидатов - корректный результат, а не ошибка
func Aggregate(candidates []scanner.PriceCandidate, variantsUsed []expansion.SearchVariant) *AggregatedResult {
	deduped := deduplicate(filter(candidates))

	sort.SliceStable(deduped, func(i, j int) bool {
		if deduped[i].Price != deduped[j].Price {
			return deduped[i].Price < deduped[j].Price
		}
		if !deduped[i].Timestamp.Equal(deduped[j].Timestamp) {
			return deduped[i].Timestamp.Before(deduped[j].Timestamp)
		}
		return deduped[i].Shop < deduped[j].Shop
	})

	result := &AggregatedResult{
		BestPerLanguage: make(map[lexicon.Language]scanner.PriceCandidate),
		AllResults:      deduped,
		VariantsUsed:    variantsUsed,
	}

	if len(deduped) > 0 {
		best := deduped[0]
		result.BestOverall = &best
	}

	// Кандидаты уже отсортированы, первый встреченный для языка и есть лучший
	for _, c := range deduped {
		if _, ok := result.BestPerLanguage[c.Language]; !ok {
			result.BestPerLanguage[c.Language] = c
		}
	}

	return result
}

// filter отбрасывает кандидатов с неположительной ценой или некорректной ссылкой
func filter(candidates []scanner.PriceCandidate) []scanner.PriceCandidate {
	kept := make([]scanner.PriceCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Price <= 0 {
			continue
		}
		if !scanner.ValidLink(c.Link) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// deduplicate схлопывает кандидатов с одинаковой парой (магазин, ссылка).
// Из дубликатов остается кандидат с меньшей ценой, при равных ценах - более ранний
func deduplicate(candidates []scanner.PriceCandidate) []scanner.PriceCandidate {
	type dedupKey struct {
		shop string
		link string
	}

	byKey := make(map[dedupKey]scanner.PriceCandidate, len(candidates))
	order := make([]dedupKey, 0, len(candidates))

	for _, c := range candidates {
		key := dedupKey{
			shop: strings.ToLower(strings.TrimSpace(c.Shop)),
			link: normalizeLinkKey(c.Link),
		}

		existing, seen := byKey[key]
		if !seen {
			byKey[key] = c
			order = append(order, key)
			continue
		}

		if c.Price < existing.Price ||
			(c.Price == existing.Price && c.Timestamp.Before(existing.Timestamp)) {
			byKey[key] = c
		}
	}

	deduped := make([]scanner.PriceCandidate, 0, len(order))
	for _, key := range order {
		deduped = append(deduped, byKey[key])
	}
	return deduped
}

// normalizeLinkKey приводит ссылку к ключу дедупликации: схема и хост
// не чувствительны к регистру. Путь сохраняется как есть, его регистр
// значим для части магазинов
func normalizeLinkKey(link string) string {
	trimmed := strings.TrimSpace(link)

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	return parsed.String()
}
