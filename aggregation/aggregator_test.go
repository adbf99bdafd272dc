package aggregation

import (
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricefinder/expansion"
	"pricefinder/lexicon"
	"pricefinder/scanner"
)

func candidate(shop, link string, price float64, lang lexicon.Language) scanner.PriceCandidate {
	return scanner.PriceCandidate{
		Shop:      shop,
		Price:     price,
		Currency:  "UZS",
		Link:      link,
		Method:    "test",
		Language:  lang,
		Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAggregate_BestOverall(t *testing.T) {
	candidates := []scanner.PriceCandidate{
		candidate("asaxiy.uz", "https://asaxiy.uz/p/1", 4500000, lexicon.LanguageUzbekLatin),
		candidate("olx.uz", "https://olx.uz/a/1", 3200000, lexicon.LanguageRussian),
		candidate("mediapark.uz", "https://mediapark.uz/p/1", 4100000, lexicon.LanguageRussian),
	}

	result := Aggregate(candidates, nil)

	require.NotNil(t, result.BestOverall)
	assert.Equal(t, "olx.uz", result.BestOverall.Shop)
	assert.Equal(t, float64(3200000), result.BestOverall.Price)

	// Все результаты отсортированы по возрастанию цены
	require.Len(t, result.AllResults, 3)
	assert.Equal(t, float64(3200000), result.AllResults[0].Price)
	assert.Equal(t, float64(4100000), result.AllResults[1].Price)
	assert.Equal(t, float64(4500000), result.AllResults[2].Price)
}

func TestAggregate_BestPerLanguage(t *testing.T) {
	candidates := []scanner.PriceCandidate{
		candidate("asaxiy.uz", "https://asaxiy.uz/p/1", 4500000, lexicon.LanguageUzbekLatin),
		candidate("texnomart.uz", "https://texnomart.uz/p/1", 3900000, lexicon.LanguageUzbekLatin),
		candidate("olx.uz", "https://olx.uz/a/1", 3200000, lexicon.LanguageRussian),
		candidate("ebay.com", "https://ebay.com/i/1", 5000000, lexicon.LanguageEnglish),
	}

	result := Aggregate(candidates, nil)

	require.Len(t, result.BestPerLanguage, 3)
	assert.Equal(t, float64(3900000), result.BestPerLanguage[lexicon.LanguageUzbekLatin].Price)
	assert.Equal(t, float64(3200000), result.BestPerLanguage[lexicon.LanguageRussian].Price)
	assert.Equal(t, float64(5000000), result.BestPerLanguage[lexicon.LanguageEnglish].Price)

	_, ok := result.BestPerLanguage[lexicon.LanguageUzbekCyrillic]
	assert.False(t, ok, "язык без кандидатов не должен попадать в карту")
}

func TestAggregate_Deduplication(t *testing.T) {
	candidates := []scanner.PriceCandidate{
		candidate("A", "http://x", 100, lexicon.LanguageRussian),
		candidate("A", "http://x", 90, lexicon.LanguageRussian),
		candidate("a", "http://x", 95, lexicon.LanguageRussian),
		candidate("A", "http://y", 100, lexicon.LanguageRussian),
	}

	result := Aggregate(candidates, nil)

	// Магазин сравнивается без учета регистра, из дубликатов остается меньшая цена
	require.Len(t, result.AllResults, 2)
	assert.Equal(t, float64(90), result.AllResults[0].Price)
	assert.Equal(t, "http://x", result.AllResults[0].Link)
	assert.Equal(t, float64(100), result.AllResults[1].Price)
}

func TestAggregate_DeduplicationLinkHostCase(t *testing.T) {
	candidates := []scanner.PriceCandidate{
		candidate("shop", "https://Shop.UZ/Item/1", 100, lexicon.LanguageRussian),
		candidate("shop", "https://shop.uz/Item/1", 90, lexicon.LanguageRussian),
		candidate("shop", "https://shop.uz/item/1", 95, lexicon.LanguageRussian),
	}

	result := Aggregate(candidates, nil)

	// Хост сравнивается без учета регистра, регистр пути значим
	require.Len(t, result.AllResults, 2)
	assert.Equal(t, float64(90), result.AllResults[0].Price)
	assert.Equal(t, float64(95), result.AllResults[1].Price)
}

func TestAggregate_DuplicateEqualPriceKeepsEarlier(t *testing.T) {
	earlier := candidate("A", "http://x", 100, lexicon.LanguageRussian)
	later := candidate("A", "http://x", 100, lexicon.LanguageRussian)
	earlier.Timestamp = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	later.Timestamp = time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC)

	result := Aggregate([]scanner.PriceCandidate{later, earlier}, nil)

	require.Len(t, result.AllResults, 1)
	assert.Equal(t, earlier.Timestamp, result.AllResults[0].Timestamp)
}

func TestAggregate_FiltersInvalid(t *testing.T) {
	candidates := []scanner.PriceCandidate{
		candidate("A", "https://a.uz/1", 0, lexicon.LanguageRussian),
		candidate("B", "https://b.uz/1", -50, lexicon.LanguageRussian),
		candidate("C", "not-a-url", 100, lexicon.LanguageRussian),
		candidate("D", "https://d.uz/1", 200, lexicon.LanguageRussian),
	}

	result := Aggregate(candidates, nil)

	require.Len(t, result.AllResults, 1)
	assert.Equal(t, "D", result.AllResults[0].Shop)
}

func TestAggregate_EmptyInput(t *testing.T) {
	variants := []expansion.SearchVariant{
		{Term: "смартфон", Language: lexicon.LanguageRussian, Origin: expansion.OriginOriginal},
	}

	result := Aggregate(nil, variants)

	require.NotNil(t, result)
	assert.Nil(t, result.BestOverall)
	assert.Empty(t, result.AllResults)
	assert.Empty(t, result.BestPerLanguage)
	assert.Equal(t, variants, result.VariantsUsed)
}

func TestAggregate_BulkRandomized(t *testing.T) {
	gofakeit.Seed(42)

	languages := []lexicon.Language{
		lexicon.LanguageUzbekLatin,
		lexicon.LanguageUzbekCyrillic,
		lexicon.LanguageRussian,
		lexicon.LanguageEnglish,
	}

	candidates := make([]scanner.PriceCandidate, 0, 500)
	for i := 0; i < 500; i++ {
		candidates = append(candidates, scanner.PriceCandidate{
			Shop:      gofakeit.DomainName(),
			Price:     gofakeit.Price(10000, 10000000),
			Currency:  "UZS",
			Link:      fmt.Sprintf("https://%s/item/%d", gofakeit.DomainName(), i),
			Method:    "test",
			Language:  languages[i%len(languages)],
			Timestamp: time.Now(),
		})
	}

	result := Aggregate(candidates, nil)

	require.NotNil(t, result.BestOverall)
	require.NotEmpty(t, result.AllResults)

	// Лучшая цена совпадает с первой в отсортированном списке
	assert.Equal(t, result.AllResults[0].Price, result.BestOverall.Price)

	// Порядок неубывающий
	for i := 1; i < len(result.AllResults); i++ {
		assert.LessOrEqual(t, result.AllResults[i-1].Price, result.AllResults[i].Price)
	}

	// Лучший по языку не дороже любого другого кандидата того же языка
	for _, c := range result.AllResults {
		best, ok := result.BestPerLanguage[c.Language]
		require.True(t, ok)
		assert.LessOrEqual(t, best.Price, c.Price)
	}
}
