package expansion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricefinder/lexicon"
)

func newTestExpander() *Expander {
	return NewExpander(lexicon.NewLexicon())
}

func TestExpand_EmptyName(t *testing.T) {
	e := newTestExpander()

	_, err := e.Expand(Product{Name: ""})
	assert.ErrorIs(t, err, ErrEmptyProductName)

	_, err = e.Expand(Product{Name: "   "})
	assert.ErrorIs(t, err, ErrEmptyProductName)
}

func TestExpand_NonEmptyResult(t *testing.T) {
	e := newTestExpander()

	variants, err := e.Expand(Product{Name: "гидротрансформатор без словаря"})
	require.NoError(t, err)
	// Даже при полном промахе словаря остаются оригинал,
	// транслитерация и географические комбинации
	assert.NotEmpty(t, variants)
	assert.Equal(t, OriginOriginal, variants[0].Origin)
}

func TestExpand_Deduplication(t *testing.T) {
	e := newTestExpander()

	variants, err := e.Expand(Product{Name: "телефон Телефон ТЕЛЕФОН"})
	require.NoError(t, err)

	seen := make(map[string]string)
	for _, v := range variants {
		key := strings.Join(strings.Fields(strings.ToLower(v.Term)), " ")
		if prev, dup := seen[key]; dup {
			t.Errorf("дубликат термина %q (варианты %q и %q)", key, prev, v.Term)
		}
		seen[key] = v.Term
	}
}

func TestExpand_Deterministic(t *testing.T) {
	e := newTestExpander()
	product := Product{
		Name:        "смартфон Samsung Galaxy",
		Description: "Смартфон с Android, 128 ГБ памяти",
		Specifications: []Specification{
			{Key: "Category", Value: "Electronics"},
			{Key: "Brand", Value: "Samsung"},
		},
	}

	first, err := e.Expand(product)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := e.Expand(product)
		require.NoError(t, err)
		assert.Equal(t, first, again, "повторный запуск должен давать тот же список")
	}
}

// TestExpand_MultilingualScenario сценарий из реального запроса:
// русское название должно дать варианты минимум на трех языках
func TestExpand_MultilingualScenario(t *testing.T) {
	e := newTestExpander()

	variants, err := e.Expand(Product{Name: "смартфон Samsung Galaxy"})
	require.NoError(t, err)
	require.NotEmpty(t, variants)

	byLanguage := make(map[lexicon.Language][]SearchVariant)
	for _, v := range variants {
		byLanguage[v.Language] = append(byLanguage[v.Language], v)
	}

	assert.NotEmpty(t, byLanguage[lexicon.LanguageOriginal], "нет original-вариантов")
	assert.NotEmpty(t, byLanguage[lexicon.LanguageUzbekLatin], "нет узбекско-латинских вариантов")

	foundSmartphone := false
	for _, v := range byLanguage[lexicon.LanguageEnglish] {
		if strings.Contains(strings.ToLower(v.Term), "smartphone") {
			foundSmartphone = true
		}
	}
	assert.True(t, foundSmartphone, "ожидался английский вариант со словом smartphone, получено %v", variants)
}

func TestExpand_VariantCap(t *testing.T) {
	e := NewExpanderWithLimits(lexicon.NewLexicon(), 5, 2)

	variants, err := e.Expand(Product{
		Name:        "смартфон телефон ноутбук планшет телевизор холодильник",
		Description: "компьютер принтер монитор велосипед насос кабель",
	})
	require.NoError(t, err)

	assert.LessOrEqual(t, len(variants), 5)
	// При ограничении оригинал имеет высший приоритет
	assert.Equal(t, OriginOriginal, variants[0].Origin)
}

func TestExpand_LocationModifiers(t *testing.T) {
	e := newTestExpander()

	variants, err := e.Expand(Product{Name: "цемент"})
	require.NoError(t, err)

	locationCount := 0
	for _, v := range variants {
		if v.Origin == OriginLocation {
			locationCount++
			assert.Contains(t, v.Term, "цемент")
		}
	}
	assert.Greater(t, locationCount, 0, "нет комбинаций с географическим уточнением")
	assert.LessOrEqual(t, locationCount, 2)
}

func TestExpand_CategorySynonyms(t *testing.T) {
	e := newTestExpander()

	variants, err := e.Expand(Product{
		Name: "велосипед Merida",
		Specifications: []Specification{
			{Key: "Type", Value: "Sports"},
		},
	})
	require.NoError(t, err)

	foundCategory := false
	for _, v := range variants {
		if v.Origin == OriginCategory {
			foundCategory = true
		}
	}
	assert.True(t, foundCategory, "подсказка категории из спецификаций должна давать варианты")
}

func TestExpand_TransliterationTagging(t *testing.T) {
	e := newTestExpander()

	variants, err := e.Expand(Product{Name: "noutbuk Lenovo"})
	require.NoError(t, err)

	foundCyrillic := false
	for _, v := range variants {
		if v.Origin == OriginTransliteration && v.Language == lexicon.LanguageUzbekCyrillic {
			foundCyrillic = true
		}
	}
	assert.True(t, foundCyrillic, "латинское название должно дать узбекско-кириллическую транслитерацию")
}
