package expansion

import (
	"pricefinder/lexicon"
)

// Product описание товара от вызывающей стороны.
// Неизменяемый вход одного запроса на поиск цены
type Product struct {
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Specifications []Specification `json:"specifications,omitempty"`
}

// Specification пара ключ-значение из структурированных характеристик товара
type Specification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Origin правило, породившее поисковый вариант
type Origin string

const (
	// OriginOriginal исходный термин без преобразования
	OriginOriginal Origin = "original"
	// OriginTransliteration межграфическая транслитерация
	OriginTransliteration Origin = "transliteration"
	// OriginTranslation словарный перевод
	OriginTranslation Origin = "translation"
	// OriginSynonym доменный синоним
	OriginSynonym Origin = "synonym"
	// OriginLocation комбинация с географическим уточнением
	OriginLocation Origin = "location"
	// OriginCategory синоним, подключенный по категории из спецификаций
	OriginCategory Origin = "category"
)

// SearchVariant один расширенный поисковый термин с меткой языка и происхождения.
// Создается расширителем в начале запроса, далее только читается
type SearchVariant struct {
	Term     string           `json:"term"`
	Language lexicon.Language `json:"language"`
	Origin   Origin           `json:"origin"`
}
