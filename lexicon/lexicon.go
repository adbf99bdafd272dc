package lexicon

import (
	"strings"

	"github.com/kljensen/snowball"
)

// Language язык поискового термина
// Явная метка языка переносится на каждом элементе данных от расширения
// запроса до агрегации, вместо повторного определения по тексту на каждом этапе
type Language string

const (
	// LanguageUzbekLatin узбекский язык в латинской графике
	LanguageUzbekLatin Language = "uzbek_latin"
	// LanguageUzbekCyrillic узбекский язык в кириллической графике
	LanguageUzbekCyrillic Language = "uzbek_cyrillic"
	// LanguageRussian русский язык
	LanguageRussian Language = "russian"
	// LanguageEnglish английский язык
	LanguageEnglish Language = "english"
	// LanguageOriginal язык исходного запроса (без преобразования)
	LanguageOriginal Language = "original"
)

// Translation перевод термина с меткой языка
type Translation struct {
	Term     string
	Language Language
}

// Lexicon статический словарь для мультиязычного расширения запросов.
// Все данные неизменяемы после создания, безопасен для конкурентного
// использования из многих запросов без синхронизации
type Lexicon struct {
	translations      map[string][]Translation
	synonyms          map[string][]string
	categorySynonyms  map[string][]string
	locationModifiers []string
}

// NewLexicon создает лексикон со встроенными таблицами предметной области
func NewLexicon() *Lexicon {
	return &Lexicon{
		translations:      buildTranslationTable(),
		synonyms:          buildSynonymTable(),
		categorySynonyms:  buildCategorySynonymTable(),
		locationModifiers: buildLocationModifiers(),
	}
}

// Translate возвращает известные переводы термина на другие языки.
// Поиск нечувствителен к регистру, но графика результата сохраняется
// в точности как в словаре. Промах возвращает пустой срез:
// это расширение по принципу best-effort, а не общий переводчик
func (l *Lexicon) Translate(term string) []Translation {
	key := normalizeKey(term)
	if key == "" {
		return nil
	}

	if found, ok := l.translations[key]; ok {
		return found
	}

	// Повторная попытка по стеммированной форме: "смартфоны" -> "смартфон"
	if stemmed := stemKey(key); stemmed != key {
		if found, ok := l.translations[stemmed]; ok {
			return found
		}
	}

	return nil
}

// SynonymsFor возвращает доменные синонимы термина.
// Необязательная категория (подсказка из спецификаций товара)
// добавляет синонимы категории
func (l *Lexicon) SynonymsFor(term string, category string) []string {
	result := make([]string, 0)

	key := normalizeKey(term)
	if key != "" {
		if found, ok := l.synonyms[key]; ok {
			result = append(result, found...)
		} else if stemmed := stemKey(key); stemmed != key {
			if found, ok := l.synonyms[stemmed]; ok {
				result = append(result, found...)
			}
		}
	}

	if catKey := normalizeKey(category); catKey != "" {
		if found, ok := l.categorySynonyms[catKey]; ok {
			result = append(result, found...)
		}
	}

	return result
}

// LocationModifiers возвращает рыночно-географические уточнения
// для комбинирования с поисковыми терминами
func (l *Lexicon) LocationModifiers() []string {
	// Копия, чтобы вызывающая сторона не изменила общие данные
	modifiers := make([]string, len(l.locationModifiers))
	copy(modifiers, l.locationModifiers)
	return modifiers
}

// normalizeKey приводит термин к ключу словаря: нижний регистр,
// обрезка и схлопывание внутренних пробелов
func normalizeKey(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(term))), " ")
}

// stemKey возвращает стеммированную форму ключа для повторного поиска в словаре.
// Язык стеммера выбирается по графике: кириллица - русский, латиница - английский.
// Ошибки стеммера не критичны, возвращается исходный ключ
func stemKey(key string) string {
	lang := "english"
	if hasCyrillic(key) {
		lang = "russian"
	}

	words := strings.Fields(key)
	for i, word := range words {
		stemmed, err := snowball.Stem(word, lang, true)
		if err != nil || stemmed == "" {
			continue
		}
		words[i] = stemmed
	}

	return strings.Join(words, " ")
}
