package server

import (
	"pricefinder/expansion"
	"pricefinder/scanner"
)

// ProductRequest тело запроса поиска цены товара
type ProductRequest struct {
	Product ProductPayload `json:"product" binding:"required"`
}

// ProductPayload описание товара из запроса
type ProductPayload struct {
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Specifications []SpecificationPayload `json:"specifications"`
}

// SpecificationPayload одна характеристика товара
type SpecificationPayload struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PriceResponse ответ поиска цены товара.
// Ключи совпадают с публичным контрактом API
type PriceResponse struct {
	Success         bool                               `json:"success"`
	ProductName     string                             `json:"product_name"`
	SearchQuery     string                             `json:"search_query"`
	BestPrice       *scanner.PriceCandidate            `json:"best_price"`
	BestPerLanguage map[string]scanner.PriceCandidate  `json:"best_per_language"`
	AllResults      []scanner.PriceCandidate           `json:"all_results"`
	VariantsUsed    []expansion.SearchVariant          `json:"variants_used"`
	ScanID          string                             `json:"scan_id,omitempty"`
}

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HealthResponse ответ проверки работоспособности
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// toProduct преобразует тело запроса во внутреннюю модель товара
func (p ProductPayload) toProduct() expansion.Product {
	specs := make([]expansion.Specification, 0, len(p.Specifications))
	for _, s := range p.Specifications {
		specs = append(specs, expansion.Specification{Key: s.Key, Value: s.Value})
	}

	return expansion.Product{
		Name:           p.Name,
		Description:    p.Description,
		Specifications: specs,
	}
}
