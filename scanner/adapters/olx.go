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

// methodListingBoard идентификатор метода извлечения для кандидатов
// с доски объявлений
const methodListingBoard = "olx_listing"

// OlxAdapter адаптер доски объявлений olx.uz.
// Объявления размещают частные продавцы, имя магазина - хост доски
type OlxAdapter struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewOlxAdapter создает адаптер доски объявлений olx.uz
func NewOlxAdapter(config ShopConfig) *OlxAdapter {
	if config.BaseURL == "" {
		config.BaseURL = "https://www.olx.uz"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.RateEvery == 0 {
		config.RateEvery = time.Second
	}

	return &OlxAdapter{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Every(config.RateEvery), 1),
	}
}

// Name возвращает идентификатор адаптера
func (o *OlxAdapter) Name() string {
	return "olx"
}

// Search запрашивает страницу объявлений и извлекает карточки с ценами
func (o *OlxAdapter) Search(ctx context.Context, variant expansion.SearchVariant) ([]scanner.PriceCandidate, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: ожидание лимита: %v", scanner.ErrRateLimited, err)
	}

	searchURL := fmt.Sprintf("%s/list/q-%s/", o.baseURL, url.PathEscape(slugify(variant.Term)))

	req, err := newSearchRequest(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	resp, err := o.httpClient.Do(req)
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

	return o.extractCandidates(doc, variant), nil
}

// extractCandidates извлекает кандидатов из карточек объявлений
func (o *OlxAdapter) extractCandidates(doc *goquery.Document, variant expansion.SearchVariant) []scanner.PriceCandidate {
	candidates := make([]scanner.PriceCandidate, 0)

	doc.Find(`div[data-cy="l-card"]`).Each(func(i int, s *goquery.Selection) {
		href, ok := s.Find("a").First().Attr("href")
		if !ok {
			return
		}
		link := o.absoluteLink(href)
		if !scanner.ValidLink(link) {
			return
		}

		priceText := strings.TrimSpace(s.Find(`p[data-testid="ad-price"]`).First().Text())
		if priceText == "" {
			return
		}

		price, currency, ok := scanner.ParsePrice(priceText, "UZS")
		if !ok {
			return
		}

		candidates = append(candidates, scanner.PriceCandidate{
			Shop:              "olx.uz",
			Price:             price,
			Currency:          currency,
			OriginalPriceText: priceText,
			Link:              link,
			Method:            methodListingBoard,
			Language:          variant.Language,
			Timestamp:         time.Now(),
		})
	})

	return candidates
}

// absoluteLink достраивает относительную ссылку объявления до абсолютной
func (o *OlxAdapter) absoluteLink(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return o.baseURL + href
	}
	return o.baseURL + "/" + href
}

// slugify приводит поисковый термин к виду сегмента пути доски объявлений
func slugify(term string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(term)), "-")
}
