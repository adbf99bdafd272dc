package scanner

import (
	"context"
	"errors"
	"net/url"
	"time"

	"pricefinder/expansion"
	"pricefinder/lexicon"
)

// Типизированные ошибки задач сканирования. Все они восстановимые:
// задача отбрасывается, сканирование продолжается
var (
	// ErrTimeout источник не ответил в срок задачи
	ErrTimeout = errors.New("источник не ответил в отведенное время")
	// ErrUnreachable источник недоступен по сети
	ErrUnreachable = errors.New("источник недоступен")
	// ErrParseFailure ответ источника не удалось разобрать
	ErrParseFailure = errors.New("не удалось разобрать ответ источника")
	// ErrRateLimited источник ограничил частоту запросов
	ErrRateLimited = errors.New("источник ограничил частоту запросов")
)

// PriceCandidate одно наблюдение цены из одного источника для одного варианта.
// Создается адаптером, далее неизменяем
type PriceCandidate struct {
	Shop              string           `json:"shop"`
	Price             float64          `json:"price"`
	Currency          string           `json:"currency"`
	OriginalPriceText string           `json:"original_price_text"`
	Link              string           `json:"link"`
	Method            string           `json:"method"`
	Language          lexicon.Language `json:"language"`
	Timestamp         time.Time        `json:"timestamp"`
}

// Adapter контракт адаптера одного семейства внешних источников.
// Адаптеры не хранят состояние запроса и безопасны для конкурентного
// вызова с разными вариантами
type Adapter interface {
	// Name возвращает идентификатор адаптера для логов и поля method
	Name() string

	// Search выполняет запрос к источнику для одного поискового варианта
	// и извлекает кандидатов цен. Ошибки оборачивают одну из типизированных
	// ошибок пакета. Нераспознанные отдельные позиции пропускаются без
	// прерывания всего ответа
	Search(ctx context.Context, variant expansion.SearchVariant) ([]PriceCandidate, error)
}

// ValidLink проверяет, что ссылка кандидата является абсолютным http(s)-URL.
// Кандидаты с иными ссылками отбрасываются
func ValidLink(link string) bool {
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
