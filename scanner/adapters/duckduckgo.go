package adapters

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"pricefinder/expansion"
	"pricefinder/lexicon"
	"pricefinder/scanner"
)

// methodSearchSnippet идентификатор метода извлечения для кандидатов
// из сниппетов поисковой выдачи
const methodSearchSnippet = "duckduckgo_html"

// DuckDuckGoAdapter адаптер общей поисковой выдачи.
// Парсит HTML-страницу результатов DuckDuckGo и извлекает цены
// из сниппетов объявлений
type DuckDuckGoAdapter struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// DuckDuckGoConfig конфигурация адаптера поисковой выдачи
type DuckDuckGoConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateEvery time.Duration
}

// NewDuckDuckGoAdapter создает адаптер поисковой выдачи DuckDuckGo
func NewDuckDuckGoAdapter(config DuckDuckGoConfig) *DuckDuckGoAdapter {
	if config.BaseURL == "" {
		config.BaseURL = "https://html.duckduckgo.com"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.RateEvery == 0 {
		config.RateEvery = time.Second
	}

	return &DuckDuckGoAdapter{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Every(config.RateEvery), 1),
	}
}

// Name возвращает идентификатор адаптера
func (d *DuckDuckGoAdapter) Name() string {
	return "duckduckgo"
}

// Search выполняет HTML-поиск и извлекает кандидатов цен из выдачи
func (d *DuckDuckGoAdapter) Search(ctx context.Context, variant expansion.SearchVariant) ([]scanner.PriceCandidate, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: ожидание лимита: %v", scanner.ErrRateLimited, err)
	}

	// "narxi" / "цена" в запросе повышает долю сниппетов с ценами
	query := variant.Term + " " + priceKeyword(variant)
	searchURL := fmt.Sprintf("%s/html/?q=%s", d.baseURL, url.QueryEscape(query))

	req, err := newSearchRequest(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	resp, err := d.httpClient.Do(req)
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

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: разбор HTML: %v", scanner.ErrParseFailure, err)
	}

	return d.extractCandidates(doc, variant), nil
}

// priceKeyword ценовое ключевое слово на языке варианта
func priceKeyword(variant expansion.SearchVariant) string {
	switch variant.Language {
	case lexicon.LanguageUzbekLatin:
		return "narxi"
	case lexicon.LanguageEnglish:
		return "price"
	default:
		return "цена"
	}
}

// extractCandidates обходит дерево выдачи и собирает кандидатов
// из результатов, в сниппетах которых нашлась цена.
// Нераспознанный сниппет пропускается, а не прерывает разбор
func (d *DuckDuckGoAdapter) extractCandidates(n *html.Node, variant expansion.SearchVariant) []scanner.PriceCandidate {
	candidates := make([]scanner.PriceCandidate, 0)

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && isResultNode(node) {
			if c, ok := d.extractCandidate(node, variant); ok {
				candidates = append(candidates, c)
			}
			// Внутрь результата не спускаемся, чтобы не задвоить вложенные блоки
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return candidates
}

// extractCandidate собирает кандидата из одного блока результата
func (d *DuckDuckGoAdapter) extractCandidate(n *html.Node, variant expansion.SearchVariant) (scanner.PriceCandidate, bool) {
	link := findResultLink(n)
	if link == "" || !scanner.ValidLink(link) {
		return scanner.PriceCandidate{}, false
	}

	snippet := collectText(n)
	price, currency, ok := scanner.ParsePrice(snippet, "")
	if !ok {
		return scanner.PriceCandidate{}, false
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return scanner.PriceCandidate{}, false
	}

	return scanner.PriceCandidate{
		Shop:              parsed.Host,
		Price:             price,
		Currency:          currency,
		OriginalPriceText: truncate(snippet, 200),
		Link:              link,
		Method:            methodSearchSnippet,
		Language:          variant.Language,
		Timestamp:         time.Now(),
	}, true
}

// isResultNode проверяет, является ли узел блоком результата выдачи
func isResultNode(n *html.Node) bool {
	if n.Data != "div" {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, class := range strings.Fields(attr.Val) {
			if class == "result" || class == "web-result" || strings.HasPrefix(class, "result--") {
				return true
			}
		}
	}
	return false
}

// findResultLink находит первую внешнюю ссылку в блоке результата.
// Редиректные ссылки DuckDuckGo (/l/?uddg=...) разворачиваются
// до исходного URL
func findResultLink(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "a" {
		for _, attr := range n.Attr {
			if attr.Key == "href" && attr.Val != "" {
				return unwrapRedirect(attr.Val)
			}
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if link := findResultLink(child); link != "" {
			return link
		}
	}

	return ""
}

// unwrapRedirect извлекает целевой URL из редиректной ссылки DuckDuckGo
func unwrapRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}

	if strings.Contains(parsed.Path, "/l/") {
		if target := parsed.Query().Get("uddg"); target != "" {
			if decoded, err := url.QueryUnescape(target); err == nil {
				return decoded
			}
			return target
		}
	}

	return href
}

// collectText собирает текст узла и всех его потомков
func collectText(n *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			b.WriteString(" ")
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return strings.TrimSpace(strings.Join(strings.Fields(b.String()), " "))
}

// truncate обрезает строку до limit рун
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
