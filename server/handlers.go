package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pricefinder/expansion"
	"pricefinder/lexicon"
	"pricefinder/scanner"
	apperrors "pricefinder/server/errors"
	"pricefinder/server/middleware"
)

// handleProductPrice обрабатывает запрос поиска цены товара
func (s *Server) handleProductPrice(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		sendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	reqID := middleware.GetRequestID(c.Request.Context())
	log.Printf("[Server] [%s] Поиск цены товара: %q", reqID, req.Product.Name)

	result, err := s.finder.FindPrice(c.Request.Context(), req.Product.toProduct())
	if err != nil {
		if errors.Is(err, expansion.ErrEmptyProductName) {
			appErr := apperrors.NewValidationError("имя товара не заполнено", err)
			sendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
			return
		}
		appErr := apperrors.NewInternalError("поиск цены", err)
		log.Printf("[Server] [%s] Ошибка поиска цены: %v", reqID, appErr)
		sendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	response := PriceResponse{
		Success:         true,
		ProductName:     result.ProductName,
		SearchQuery:     result.SearchQuery,
		BestPrice:       result.Aggregated.BestOverall,
		BestPerLanguage: languageKeyMap(result.Aggregated.BestPerLanguage),
		AllResults:      result.Aggregated.AllResults,
		VariantsUsed:    result.Aggregated.VariantsUsed,
	}

	// История не критична для ответа, ошибка сохранения только логируется
	if s.history != nil {
		scanID, err := s.history.SaveScan(c.Request.Context(), result.ProductName, result.SearchQuery, result.Aggregated)
		if err != nil {
			log.Printf("[Server] [%s] Не удалось сохранить историю: %v", reqID, err)
		} else {
			response.ScanID = scanID
		}
	}

	c.JSON(http.StatusOK, response)
}

// handleHealth обрабатывает проверку работоспособности
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: "pricefinder",
	})
}

// handleScanHistory возвращает последние сканирования из истории
func (s *Server) handleScanHistory(c *gin.Context) {
	if s.history == nil {
		appErr := apperrors.NewServiceUnavailableError("история сканирований отключена", nil)
		sendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			appErr := apperrors.NewValidationError("неверный формат limit", err)
			sendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
			return
		}
		limit = parsed
	}

	records, err := s.history.RecentScans(c.Request.Context(), limit)
	if err != nil {
		appErr := apperrors.NewInternalError("чтение истории", err)
		log.Printf("[Server] Ошибка чтения истории: %v", appErr)
		sendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"total":   len(records),
		"scans":   records,
	})
}

// languageKeyMap переводит карту лучших цен на строковые ключи JSON
func languageKeyMap(best map[lexicon.Language]scanner.PriceCandidate) map[string]scanner.PriceCandidate {
	out := make(map[string]scanner.PriceCandidate, len(best))
	for lang, candidate := range best {
		out[string(lang)] = candidate
	}
	return out
}

// sendJSONError отправляет ответ с ошибкой в едином формате
func sendJSONError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Success: false, Error: message})
}
