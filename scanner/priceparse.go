package scanner

import (
	"regexp"
	"strconv"
	"strings"
)

// Разбор цен из сырого текста объявлений. Источники пишут цены как угодно:
// "1 200 000 сум", "12,500,000 so'm", "от 350 000 UZS", "$ 1,199", "1.199 руб."

// priceRe число с пробельными, запятыми или точками в роли разделителей групп
// и необязательной десятичной частью
var priceRe = regexp.MustCompile(`(\d{1,3}(?:[ \x{00a0}\x{202f}',.]\d{3})*(?:[.,]\d{1,2})?|\d+(?:[.,]\d{1,2})?)`)

// currencyMarkers маркеры валют в порядке проверки.
// Узбекский сум проверяется первым: это основная валюта целевого рынка
var currencyMarkers = []struct {
	code    string
	markers []string
}{
	{"UZS", []string{"сум", "so'm", "so`m", "soʻm", "uzs"}},
	{"RUB", []string{"руб", "₽", "rub"}},
	{"USD", []string{"$", "usd", "доллар", "dollar"}},
	{"EUR", []string{"€", "eur", "евро"}},
}

// ParsePrice извлекает числовую цену и код валюты из сырого текста.
// Возвращает false, если ни числа, ни маркера валюты не найдено.
// Текст без маркера валюты трактуется в валюте по умолчанию
func ParsePrice(text string, defaultCurrency string) (float64, string, bool) {
	if strings.TrimSpace(text) == "" {
		return 0, "", false
	}

	currency := detectCurrency(text)
	if currency == "" {
		if defaultCurrency == "" {
			return 0, "", false
		}
		currency = defaultCurrency
	}

	match := priceRe.FindString(text)
	if match == "" {
		return 0, "", false
	}

	value, ok := parseNumber(match)
	if !ok || value <= 0 {
		return 0, "", false
	}

	return value, currency, true
}

// detectCurrency ищет маркер валюты в тексте
func detectCurrency(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range currencyMarkers {
		for _, marker := range entry.markers {
			if strings.Contains(lower, marker) {
				return entry.code
			}
		}
	}
	return ""
}

// parseNumber превращает найденную числовую подстроку в float64.
// Разделители групп (пробелы, неразрывные пробелы, апострофы) удаляются;
// запятая и точка разбираются одинаково: одиночный разделитель перед
// ровно тремя цифрами в конце - группа тысяч, перед одной-двумя - десятичный
func parseNumber(match string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\'':
			return -1
		}
		return r
	}, match)

	switch commas := strings.Count(cleaned, ","); {
	case commas > 1:
		// "12,500,000" - запятые как разделители групп
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case commas == 1:
		tail := cleaned[strings.Index(cleaned, ",")+1:]
		switch {
		case strings.Contains(tail, "."):
			// "1,199.50" - запятая группа, точка десятичная
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		case len(tail) == 3:
			// Три цифры после запятой - это группа тысяч
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		default:
			// "1,5" или "249,99" - десятичная запятая
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	}

	switch dots := strings.Count(cleaned, "."); {
	case dots > 1:
		// "4.200.000" - точки как разделители групп
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	case dots == 1:
		// "1.199" - группа тысяч, "249.99" - десятичная точка
		if tail := cleaned[strings.Index(cleaned, ".")+1:]; len(tail) == 3 {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
