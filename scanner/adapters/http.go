// Package adapters содержит адаптеры внешних источников цен.
// Каждый адаптер инкапсулирует одно семейство источников: построение
// запроса из поискового варианта, сетевой вызов и разбор ответа
// в кандидатов цен
package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"pricefinder/scanner"
)

// browserUserAgent источники отдают урезанную верстку неизвестным клиентам,
// поэтому запросы представляются обычным браузером
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// maxResponseBytes предел размера читаемого ответа
const maxResponseBytes = 4 << 20

// newSearchRequest создает GET-запрос с браузерными заголовками
func newSearchRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: создание запроса: %v", scanner.ErrUnreachable, err)
	}

	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,uz;q=0.8,en-US;q=0.7,en;q=0.6")

	return req, nil
}

// classifyTransportError переводит сетевую ошибку в типизированную ошибку задачи
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", scanner.ErrTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", scanner.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", scanner.ErrUnreachable, err)
}

// classifyStatus переводит неуспешный HTTP-статус в типизированную ошибку задачи
func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: статус %d", scanner.ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: статус %d", scanner.ErrUnreachable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: неожиданный статус %d", scanner.ErrParseFailure, resp.StatusCode)
	}
	return nil
}

// readBody читает тело ответа и при необходимости перекодирует его в UTF-8.
// Часть магазинов целевого рынка до сих пор отдает страницы в windows-1251
func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: чтение ответа: %v", scanner.ErrUnreachable, err)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if strings.Contains(contentType, "windows-1251") || strings.Contains(contentType, "cp1251") {
		decoded, _, decodeErr := transform.Bytes(charmap.Windows1251.NewDecoder(), body)
		if decodeErr != nil {
			return nil, fmt.Errorf("%w: перекодирование windows-1251: %v", scanner.ErrParseFailure, decodeErr)
		}
		return decoded, nil
	}

	return body, nil
}
