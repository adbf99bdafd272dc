package lexicon

import (
	"strings"
	"unicode"
)

// Script графика написания термина
type Script string

const (
	// ScriptLatin узбекская латиница
	ScriptLatin Script = "latin"
	// ScriptCyrillic кириллица (узбекская или русская)
	ScriptCyrillic Script = "cyrillic"
)

// translitPair пара графем для транслитерации.
// Диграфы должны идти раньше одиночных букв, порядок таблицы значим
type translitPair struct {
	latin    string
	cyrillic string
}

// latinCyrillicPairs таблица соответствий узбекской латиницы и кириллицы.
// Сначала диграфы и буквы с апострофом, затем одиночные буквы
var latinCyrillicPairs = []translitPair{
	{"o'", "ў"},
	{"g'", "ғ"},
	{"sh", "ш"},
	{"ch", "ч"},
	{"yo", "ё"},
	{"yu", "ю"},
	{"ya", "я"},
	{"ts", "ц"},
	{"a", "а"},
	{"b", "б"},
	{"d", "д"},
	{"e", "е"},
	{"f", "ф"},
	{"g", "г"},
	{"h", "ҳ"},
	{"i", "и"},
	{"j", "ж"},
	{"k", "к"},
	{"l", "л"},
	{"m", "м"},
	{"n", "н"},
	{"o", "о"},
	{"p", "п"},
	{"q", "қ"},
	{"r", "р"},
	{"s", "с"},
	{"t", "т"},
	{"u", "у"},
	{"v", "в"},
	{"x", "х"},
	{"y", "й"},
	{"z", "з"},
	{"'", "ъ"},
}

// extraCyrillicToLatin дополнительные кириллические буквы, встречающиеся
// в русских терминах. Обратного соответствия латиница->кириллица для них нет,
// поэтому они не входят в основную таблицу
var extraCyrillicToLatin = map[string]string{
	"э": "e",
	"щ": "sh",
	"ы": "i",
	"ь": "",
}

// Transliterate выполняет пографемную транслитерацию термина между
// узбекской латиницей и кириллицей. Функция тотальна: несопоставленные
// символы копируются без изменения, пустой результат невозможен
// для непустого входа
func Transliterate(term string, from Script, to Script) string {
	if from == to || term == "" {
		return term
	}

	if from == ScriptLatin && to == ScriptCyrillic {
		return mapGraphemes(term, func(window string) (string, int) {
			for _, pair := range latinCyrillicPairs {
				if strings.HasPrefix(window, pair.latin) {
					return pair.cyrillic, len(pair.latin)
				}
			}
			return "", 0
		})
	}

	return mapGraphemes(term, func(window string) (string, int) {
		for _, pair := range latinCyrillicPairs {
			if strings.HasPrefix(window, pair.cyrillic) {
				return pair.latin, len(pair.cyrillic)
			}
		}
		for cyr, lat := range extraCyrillicToLatin {
			if strings.HasPrefix(window, cyr) {
				return lat, len(cyr)
			}
		}
		return "", 0
	})
}

// mapGraphemes проходит по строке, на каждой позиции пытаясь сопоставить
// графему через match; несопоставленные руны переносятся как есть.
// Сопоставление ведется по нижнему регистру, заглавная исходная буква
// дает заглавную первую букву результата
func mapGraphemes(term string, match func(window string) (string, int)) string {
	lower := strings.ToLower(term)
	var b strings.Builder
	b.Grow(len(term))

	i := 0
	for i < len(lower) {
		replacement, consumed := match(lower[i:])
		if consumed == 0 {
			// Несопоставленный символ переносим без изменений
			runes := []rune(term[i:])
			b.WriteRune(runes[0])
			i += len(string(runes[0]))
			continue
		}

		if replacement != "" && isUpperAt(term, i) {
			replacement = upperFirst(replacement)
		}
		b.WriteString(replacement)
		i += consumed
	}

	return b.String()
}

// DetectScript определяет графику термина по первым буквенным символам
func DetectScript(term string) Script {
	for _, r := range term {
		if !unicode.IsLetter(r) {
			continue
		}
		if unicode.Is(unicode.Cyrillic, r) {
			return ScriptCyrillic
		}
		if r < 128 {
			return ScriptLatin
		}
	}
	return ScriptLatin
}

// hasCyrillic сообщает, содержит ли строка кириллические буквы
func hasCyrillic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}

// hasUzbekCyrillic сообщает, содержит ли строка специфично узбекские
// кириллические буквы (ў, қ, ғ, ҳ)
func hasUzbekCyrillic(s string) bool {
	return strings.ContainsAny(strings.ToLower(s), "ўқғҳ")
}

// GuessLanguage грубо определяет язык термина по графике.
// Используется только для первичной метки original-варианта;
// дальше по конвейеру метка переносится явно
func GuessLanguage(term string) Language {
	if hasUzbekCyrillic(term) {
		return LanguageUzbekCyrillic
	}
	if hasCyrillic(term) {
		return LanguageRussian
	}
	return LanguageEnglish
}

// isUpperAt сообщает, является ли руна на байтовой позиции i заглавной
func isUpperAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r := []rune(s[i:])[0]
	return unicode.IsUpper(r)
}

// upperFirst переводит первую руну строки в верхний регистр
func upperFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
