package expansion

import (
	"errors"
	"strings"
	"unicode/utf8"

	"pricefinder/lexicon"
)

// ErrEmptyProductName название товара пустое после обрезки пробелов.
// Единственная фатальная ошибка расширения: без названия сканирование
// не начинается
var ErrEmptyProductName = errors.New("название товара не может быть пустым")

const (
	// defaultMaxVariants предел вариантов одного запроса,
	// ограничивает дальнейший fan-out сканирования
	defaultMaxVariants = 40
	// defaultMaxLocationModifiers сколько географических уточнений
	// комбинируется с базовым термином
	defaultMaxLocationModifiers = 2
	// descriptionPrefixRunes какой префикс описания участвует в токенизации
	descriptionPrefixRunes = 80
)

// Expander расширитель запросов: превращает описание товара в упорядоченный
// дедуплицированный список поисковых вариантов по языкам
type Expander struct {
	lex                  *lexicon.Lexicon
	maxVariants          int
	maxLocationModifiers int
}

// NewExpander создает расширитель запросов поверх лексикона
func NewExpander(lex *lexicon.Lexicon) *Expander {
	return &Expander{
		lex:                  lex,
		maxVariants:          defaultMaxVariants,
		maxLocationModifiers: defaultMaxLocationModifiers,
	}
}

// NewExpanderWithLimits создает расширитель с нестандартными ограничениями
func NewExpanderWithLimits(lex *lexicon.Lexicon, maxVariants, maxLocationModifiers int) *Expander {
	e := NewExpander(lex)
	if maxVariants > 0 {
		e.maxVariants = maxVariants
	}
	if maxLocationModifiers > 0 {
		e.maxLocationModifiers = maxLocationModifiers
	}
	return e
}

// Expand строит список поисковых вариантов для товара.
// Результат детерминирован для одинакового входа и никогда не пуст
// для непустого названия. Порядок приоритета при ограничении количества:
// оригинал, переводы, транслитерации, синонимы и географические комбинации
func (e *Expander) Expand(product Product) ([]SearchVariant, error) {
	name := strings.TrimSpace(product.Name)
	if name == "" {
		return nil, ErrEmptyProductName
	}

	baseTerms := e.collectBaseTerms(name, product.Description)
	category := detectCategoryHint(product.Specifications)

	// Варианты собираются в порядке приоритета, дедупликация
	// сохраняет первую встреченную метку языка
	seen := make(map[string]struct{})
	variants := make([]SearchVariant, 0, e.maxVariants)

	add := func(term string, language lexicon.Language, origin Origin) {
		if len(variants) >= e.maxVariants {
			return
		}
		trimmed := strings.TrimSpace(term)
		if trimmed == "" {
			return
		}
		key := normalizeTerm(trimmed)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		variants = append(variants, SearchVariant{Term: trimmed, Language: language, Origin: origin})
	}

	// 1. Оригинальные термины
	add(name, lexicon.LanguageOriginal, OriginOriginal)
	for _, term := range baseTerms {
		add(term, lexicon.LanguageOriginal, OriginOriginal)
	}

	// 2. Словарные переводы
	for _, term := range append([]string{name}, baseTerms...) {
		for _, tr := range e.lex.Translate(term) {
			add(tr.Term, tr.Language, OriginTranslation)
		}
	}

	// 3. Транслитерации между узбекскими графиками
	for _, term := range append([]string{name}, baseTerms...) {
		switch lexicon.DetectScript(term) {
		case lexicon.ScriptCyrillic:
			add(lexicon.Transliterate(term, lexicon.ScriptCyrillic, lexicon.ScriptLatin), lexicon.LanguageUzbekLatin, OriginTransliteration)
		case lexicon.ScriptLatin:
			add(lexicon.Transliterate(term, lexicon.ScriptLatin, lexicon.ScriptCyrillic), lexicon.LanguageUzbekCyrillic, OriginTransliteration)
		}
	}

	// 4. Доменные синонимы и синонимы категории
	for _, term := range baseTerms {
		for _, syn := range e.lex.SynonymsFor(term, "") {
			add(syn, lexicon.GuessLanguage(syn), OriginSynonym)
		}
	}
	if category != "" {
		for _, syn := range e.lex.SynonymsFor("", category) {
			add(name+" "+syn, lexicon.GuessLanguage(syn), OriginCategory)
		}
	}

	// 5. Комбинации с географическими уточнениями
	modifiers := e.lex.LocationModifiers()
	if len(modifiers) > e.maxLocationModifiers {
		modifiers = modifiers[:e.maxLocationModifiers]
	}
	for _, modifier := range modifiers {
		add(name+" "+modifier, lexicon.LanguageOriginal, OriginLocation)
	}

	return variants, nil
}

// collectBaseTerms токенизирует название и короткий префикс описания
// в базовые термины для расширения
func (e *Expander) collectBaseTerms(name, description string) []string {
	terms := make([]string, 0, 8)

	for _, token := range strings.Fields(name) {
		if isUsefulToken(token) {
			terms = append(terms, token)
		}
	}

	if description != "" {
		prefix := description
		if utf8.RuneCountInString(prefix) > descriptionPrefixRunes {
			prefix = string([]rune(prefix)[:descriptionPrefixRunes])
		}
		for _, token := range strings.Fields(prefix) {
			if isUsefulToken(token) {
				terms = append(terms, token)
			}
		}
	}

	return terms
}

// isUsefulToken отсекает короткие служебные токены и чистые числа
func isUsefulToken(token string) bool {
	token = strings.TrimSpace(token)
	if utf8.RuneCountInString(token) < 3 {
		return false
	}

	hasLetter := false
	for _, r := range token {
		if !('0' <= r && r <= '9') && r != '.' && r != ',' && r != '-' {
			hasLetter = true
			break
		}
	}
	return hasLetter
}

// detectCategoryHint ищет подсказку категории в спецификациях товара
func detectCategoryHint(specs []Specification) string {
	for _, spec := range specs {
		key := strings.ToLower(strings.TrimSpace(spec.Key))
		if key == "category" || key == "type" || key == "категория" || key == "тип" {
			return strings.TrimSpace(spec.Value)
		}
	}
	return ""
}

// normalizeTerm ключ дедупликации: нижний регистр, обрезка,
// схлопывание внутренних пробелов
func normalizeTerm(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), " ")
}
