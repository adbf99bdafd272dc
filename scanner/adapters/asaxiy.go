package adapters

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"pricefinder/expansion"
	"pricefinder/scanner"
)

// methodShopCatalog идентификатор метода извлечения для кандидатов
// со страниц каталога магазина
const methodShopCatalog = "asaxiy_catalog"

// AsaxiyAdapter адаптер каталога магазина asaxiy.uz.
// Цены на страницах каталога указаны в узбекских сумах
type AsaxiyAdapter struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ShopConfig общая конфигурация адаптеров магазинов
type ShopConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateEvery time.Duration
}

// NewAsaxiyAdapter создает адаптер каталога asaxiy.uz
func NewAsaxiyAdapter(config ShopConfig) *AsaxiyAdapter {
	if config.BaseURL == "" {
		config.BaseURL = "https://asaxiy.uz"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.RateEvery == 0 {
		config.RateEvery = time.Second
	}

	return &AsaxiyAdapter{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Every(config.RateEvery), 1),
	}
}

// Name возвращает идентификатор адаптера
func (a *AsaxiyAdapter) Name() string {
	return "asaxiy"
}

// Search запрашивает страницу поиска каталога и извлекает карточки товаров
func (a *AsaxiyAdapter) Search(ctx context.Context, variant expansion.SearchVariant) ([]scanner.PriceCandidate, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: ожидание лимита: %v", scanner.ErrRateLimited, err)
	}

	searchURL := fmt.Sprintf("%s/product?key=%s", a.baseURL, url.QueryEscape(variant.Term))

	req, err := newSearchRequest(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		return nil, err
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: разбор HTML: %v", scanner.ErrParseFailure, err)
	}

	return a.extractCandidates(doc, variant), nil
}

// extractCandidates извлекает кандидатов из карточек товаров.
// Карточка без цены или ссылки пропускается, разбор продолжается
func (a *AsaxiyAdapter) extractCandidates(doc *goquery.Document, variant expansion.SearchVariant) []scanner.PriceCandidate {
	candidates := make([]scanner.PriceCandidate, 0)

	doc.Find("div.product__item").Each(func(i int, s *goquery.Selection) {
		href, ok := s.Find("a").First().Attr("href")
		if !ok {
			return
		}
		link := a.absoluteLink(href)
		if !scanner.ValidLink(link) {
			return
		}

		priceText := strings.TrimSpace(s.Find(".product__item-price, .product__item__price").First().Text())
		if priceText == "" {
			return
		}

		price, currency, ok := scanner.ParsePrice(priceText, "UZS")
		if !ok {
			return
		}

		candidates = append(candidates, scanner.PriceCandidate{
			Shop:              "asaxiy.uz",
			Price:             price,
			Currency:          currency,
			OriginalPriceText: priceText,
			Link:              link,
			Method:            methodShopCatalog,
			Language:          variant.Language,
			Timestamp:         time.Now(),
		})
	})

	return candidates
}

// absoluteLink достраивает относительную ссылку карточки до абсолютной
func (a *AsaxiyAdapter) absoluteLink(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return a.baseURL + href
	}
	return a.baseURL + "/" + href
}
