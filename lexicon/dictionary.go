package lexicon

// Словарные таблицы предметной области: частые товарные термины тендеров
// в четырех языковых формах. Это не общий переводчик, а статическое
// расширение для повышения полноты поиска

// termGroup группа эквивалентных терминов на разных языках.
// Из одной группы генерируются переводы для каждого входящего в нее термина
type termGroup struct {
	uzbekLatin    []string
	uzbekCyrillic []string
	russian       []string
	english       []string
}

// productTermGroups основные товарные термины.
// Формы внутри группы взаимно заменяемы при поиске
var productTermGroups = []termGroup{
	{
		uzbekLatin:    []string{"smartfon", "telefon"},
		uzbekCyrillic: []string{"смартфон", "телефон"},
		russian:       []string{"смартфон", "телефон"},
		english:       []string{"smartphone", "phone"},
	},
	{
		uzbekLatin:    []string{"noutbuk"},
		uzbekCyrillic: []string{"ноутбук"},
		russian:       []string{"ноутбук"},
		english:       []string{"laptop", "notebook"},
	},
	{
		uzbekLatin:    []string{"planshet"},
		uzbekCyrillic: []string{"планшет"},
		russian:       []string{"планшет"},
		english:       []string{"tablet"},
	},
	{
		uzbekLatin:    []string{"kompyuter"},
		uzbekCyrillic: []string{"компьютер"},
		russian:       []string{"компьютер"},
		english:       []string{"computer", "pc"},
	},
	{
		uzbekLatin:    []string{"muzlatgich"},
		uzbekCyrillic: []string{"музлатгич"},
		russian:       []string{"холодильник"},
		english:       []string{"refrigerator", "fridge"},
	},
	{
		uzbekLatin:    []string{"televizor"},
		uzbekCyrillic: []string{"телевизор"},
		russian:       []string{"телевизор"},
		english:       []string{"television", "tv"},
	},
	{
		uzbekLatin:    []string{"kir yuvish mashinasi"},
		uzbekCyrillic: []string{"кир ювиш машинаси"},
		russian:       []string{"стиральная машина"},
		english:       []string{"washing machine"},
	},
	{
		uzbekLatin:    []string{"konditsioner"},
		uzbekCyrillic: []string{"кондиционер"},
		russian:       []string{"кондиционер"},
		english:       []string{"air conditioner"},
	},
	{
		uzbekLatin:    []string{"printer"},
		uzbekCyrillic: []string{"принтер"},
		russian:       []string{"принтер"},
		english:       []string{"printer"},
	},
	{
		uzbekLatin:    []string{"monitor"},
		uzbekCyrillic: []string{"монитор"},
		russian:       []string{"монитор"},
		english:       []string{"monitor", "display"},
	},
	{
		uzbekLatin:    []string{"velosiped"},
		uzbekCyrillic: []string{"велосипед"},
		russian:       []string{"велосипед"},
		english:       []string{"bicycle", "bike"},
	},
	{
		uzbekLatin:    []string{"nasos"},
		uzbekCyrillic: []string{"насос"},
		russian:       []string{"насос"},
		english:       []string{"pump"},
	},
	{
		uzbekLatin:    []string{"tsilindr"},
		uzbekCyrillic: []string{"цилиндр"},
		russian:       []string{"цилиндр"},
		english:       []string{"cylinder"},
	},
	{
		uzbekLatin:    []string{"kabel"},
		uzbekCyrillic: []string{"кабель"},
		russian:       []string{"кабель"},
		english:       []string{"cable"},
	},
	{
		uzbekLatin:    []string{"generator"},
		uzbekCyrillic: []string{"генератор"},
		russian:       []string{"генератор"},
		english:       []string{"generator"},
	},
	{
		uzbekLatin:    []string{"akkumulyator"},
		uzbekCyrillic: []string{"аккумулятор"},
		russian:       []string{"аккумулятор"},
		english:       []string{"battery", "accumulator"},
	},
	{
		uzbekLatin:    []string{"stol"},
		uzbekCyrillic: []string{"стол"},
		russian:       []string{"стол"},
		english:       []string{"table", "desk"},
	},
	{
		uzbekLatin:    []string{"stul"},
		uzbekCyrillic: []string{"стул"},
		russian:       []string{"стул"},
		english:       []string{"chair"},
	},
	{
		uzbekLatin:    []string{"qog'oz"},
		uzbekCyrillic: []string{"қоғоз"},
		russian:       []string{"бумага"},
		english:       []string{"paper"},
	},
	{
		uzbekLatin:    []string{"kamera"},
		uzbekCyrillic: []string{"камера"},
		russian:       []string{"камера", "видеокамера"},
		english:       []string{"camera"},
	},
	{
		uzbekLatin:    []string{"proyektor"},
		uzbekCyrillic: []string{"проектор"},
		russian:       []string{"проектор"},
		english:       []string{"projector"},
	},
	{
		uzbekLatin:    []string{"shina"},
		uzbekCyrillic: []string{"шина"},
		russian:       []string{"шина", "покрышка"},
		english:       []string{"tire"},
	},
	{
		uzbekLatin:    []string{"moy"},
		uzbekCyrillic: []string{"мой"},
		russian:       []string{"масло моторное"},
		english:       []string{"motor oil"},
	},
	{
		uzbekLatin:    []string{"g'isht"},
		uzbekCyrillic: []string{"ғишт"},
		russian:       []string{"кирпич"},
		english:       []string{"brick"},
	},
	{
		uzbekLatin:    []string{"sement"},
		uzbekCyrillic: []string{"цемент"},
		russian:       []string{"цемент"},
		english:       []string{"cement"},
	},
}

// buildTranslationTable разворачивает группы терминов в таблицу
// "нормализованный термин -> переводы на остальные языки"
func buildTranslationTable() map[string][]Translation {
	table := make(map[string][]Translation)

	for _, group := range productTermGroups {
		all := make([]Translation, 0, 8)
		for _, t := range group.uzbekLatin {
			all = append(all, Translation{Term: t, Language: LanguageUzbekLatin})
		}
		for _, t := range group.uzbekCyrillic {
			all = append(all, Translation{Term: t, Language: LanguageUzbekCyrillic})
		}
		for _, t := range group.russian {
			all = append(all, Translation{Term: t, Language: LanguageRussian})
		}
		for _, t := range group.english {
			all = append(all, Translation{Term: t, Language: LanguageEnglish})
		}

		for _, entry := range all {
			key := normalizeKey(entry.Term)
			others := make([]Translation, 0, len(all)-1)
			for _, other := range all {
				if normalizeKey(other.Term) != key {
					others = append(others, other)
				}
			}
			// Один термин (например "смартфон") может быть и русским,
			// и узбекско-кириллическим: первая группа задает переводы
			if _, exists := table[key]; !exists {
				table[key] = others
			}
		}
	}

	return table
}

// buildSynonymTable таблица доменных синонимов по отдельным терминам
func buildSynonymTable() map[string][]string {
	return map[string][]string{
		"телефон":    {"мобильный телефон", "сотовый телефон"},
		"смартфон":   {"мобильный телефон"},
		"smartphone": {"mobile phone", "cell phone"},
		"telefon":    {"mobil telefon", "uyali telefon"},
		"ноутбук":    {"портативный компьютер"},
		"laptop":     {"portable computer"},
		"телевизор":  {"жк телевизор", "smart tv"},
		"televizor":  {"smart televizor"},
		"насос":      {"помпа"},
		"pump":       {"water pump"},
		"кабель":     {"провод"},
		"cable":      {"wire"},
		"шина":       {"автошина"},
		"бумага":     {"бумага офисная"},
		"paper":      {"office paper"},
	}
}

// buildCategorySynonymTable синонимы, подключаемые по подсказке категории
// из спецификаций товара
func buildCategorySynonymTable() map[string][]string {
	return map[string][]string{
		"electronics": {"электроника", "elektronika"},
		"электроника": {"electronics", "texnika"},
		"appliances":  {"бытовая техника", "maishiy texnika"},
		"техника":     {"texnika", "appliances"},
		"sports":      {"спорттовары", "sport"},
		"спорт":       {"sport", "sports"},
		"мебель":      {"mebel", "furniture"},
		"furniture":   {"мебель", "mebel"},
		"стройматериалы": {"qurilish materiallari", "building materials"},
	}
}

// buildLocationModifiers рыночно-географические уточнения для целевого рынка
func buildLocationModifiers() []string {
	return []string{
		"Toshkent",
		"Ташкент",
		"Tashkent",
		"O'zbekiston",
		"Узбекистан",
	}
}
