package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricefinder/database"
	"pricefinder/expansion"
	"pricefinder/pricing"
	"pricefinder/scanner"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fixedAdapter отдает одного кандидата на каждый вариант с нужной подстрокой
type fixedAdapter struct {
	candidate scanner.PriceCandidate
	match     string
}

func (f *fixedAdapter) Name() string { return "fixed" }

func (f *fixedAdapter) Search(ctx context.Context, variant expansion.SearchVariant) ([]scanner.PriceCandidate, error) {
	if f.match != "" && variant.Term != f.match {
		return nil, nil
	}
	return []scanner.PriceCandidate{f.candidate}, nil
}

func newTestServer(t *testing.T, withHistory bool) *Server {
	t.Helper()

	adapter := &fixedAdapter{
		match: "смартфон Samsung",
		candidate: scanner.PriceCandidate{
			Shop:     "olx.uz",
			Price:    3200000,
			Currency: "UZS",
			Link:     "https://olx.uz/a/1",
			Method:   "test",
		},
	}

	finder := pricing.NewFinderWithConfig(
		[]scanner.Adapter{adapter},
		scanner.ScanConfig{MaxConcurrency: 4, PerTaskTimeout: time.Second, OverallTimeout: 5 * time.Second},
	)

	var history *database.HistoryStore
	if withHistory {
		var err error
		history, err = database.NewHistoryStore(filepath.Join(t.TempDir(), "history.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = history.Close() })
	}

	return NewServer(finder, history, "0")
}

func postProductPrice(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/product-price", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	// Отключаем сжатие, чтобы читать тело ответа напрямую
	req.Header.Set("Accept-Encoding", "identity")

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHandleProductPrice_Success(t *testing.T) {
	srv := newTestServer(t, true)

	w := postProductPrice(t, srv, `{"product": {"name": "смартфон Samsung"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PriceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "смартфон Samsung", resp.ProductName)
	assert.Equal(t, "смартфон Samsung", resp.SearchQuery)
	require.NotNil(t, resp.BestPrice)
	assert.Equal(t, float64(3200000), resp.BestPrice.Price)
	assert.Equal(t, "olx.uz", resp.BestPrice.Shop)
	assert.NotEmpty(t, resp.AllResults)
	assert.NotEmpty(t, resp.VariantsUsed)
	assert.NotEmpty(t, resp.BestPerLanguage)
	assert.NotEmpty(t, resp.ScanID)
}

func TestHandleProductPrice_EmptyName(t *testing.T) {
	srv := newTestServer(t, false)

	w := postProductPrice(t, srv, `{"product": {"name": "   "}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestHandleProductPrice_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, false)

	w := postProductPrice(t, srv, `{"product": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleProductPrice_NoResults(t *testing.T) {
	srv := newTestServer(t, false)

	w := postProductPrice(t, srv, `{"product": {"name": "неизвестный товар xyz"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PriceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Nil(t, resp.BestPrice)
	assert.Empty(t, resp.AllResults)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Accept-Encoding", "identity")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "pricefinder", resp.Service)

	// Каждый ответ несет request ID
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHandleScanHistory(t *testing.T) {
	srv := newTestServer(t, true)

	// Наполняем историю одним сканированием
	w := postProductPrice(t, srv, `{"product": {"name": "смартфон Samsung"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/scan-history?limit=5", nil)
	req.Header.Set("Accept-Encoding", "identity")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Total   int                   `json:"total"`
		Scans   []database.ScanRecord `json:"scans"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "смартфон Samsung", resp.Scans[0].ProductName)
}

func TestHandleScanHistory_BadLimit(t *testing.T) {
	srv := newTestServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/scan-history?limit=abc", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleScanHistory_Disabled(t *testing.T) {
	srv := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/scan-history", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandlePriceReport(t *testing.T) {
	srv := newTestServer(t, true)

	w := postProductPrice(t, srv, `{"product": {"name": "смартфон Samsung"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/price-report", nil)
	req.Header.Set("Accept-Encoding", "identity")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "price_report_")
	assert.NotZero(t, rec.Body.Len())

	// XLSX файл начинается с сигнатуры ZIP архива
	body := rec.Body.Bytes()
	require.GreaterOrEqual(t, len(body), 2)
	assert.Equal(t, []byte{'P', 'K'}, body[:2])
}
