package service

import (
	"career_agent_backend/internal/config"
	"career_agent_backend/pkg/logger"
	"career_agent_backend/pkg/monitoring"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// SearchResult 一条网页搜索结果
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// WebSearcher 抽象网页搜索，测试里用固定结果替换
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// SearchService 通过DuckDuckGo的HTML轻量端点做网页搜索。
// 该端点不需要token，直接POST表单后解析返回的HTML。
type SearchService struct {
	region  string
	maxHits int
	client  *http.Client
}

func NewSearchService(cfg *config.SearchConfig) *SearchService {
	return &SearchService{
		region:  cfg.Region,
		maxHits: cfg.MaxResults,
		client:  &http.Client{Timeout: cfg.SearchTimeout()},
	}
}

func (s *SearchService) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 || maxResults > s.maxHits {
		maxResults = s.maxHits
	}

	form := fmt.Sprintf("q=%s&kl=%s&df=", url.QueryEscape(query), url.QueryEscape(s.region))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://html.duckduckgo.com/html/", strings.NewReader(form))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "https://html.duckduckgo.com/")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		monitoring.SearchCalls.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("web search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		monitoring.SearchCalls.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("web search returned status %d", resp.StatusCode)
	}

	results, err := parseSearchHTML(resp.Body, maxResults)
	if err != nil {
		monitoring.SearchCalls.WithLabelValues("error").Inc()
		return nil, err
	}

	monitoring.SearchCalls.WithLabelValues("ok").Inc()
	logger.Log.Debug("web search completed",
		zap.String("query", query),
		zap.Int("results", len(results)))
	return results, nil
}

func parseSearchHTML(body io.Reader, maxResults int) ([]SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("search html parse: %w", err)
	}

	var results []SearchResult
	doc.Find(".result, .web-result").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a, .result__title a").First()
		title := strings.TrimSpace(link.Text())
		href, exists := link.Attr("href")
		if !exists || title == "" {
			return true
		}

		href = unwrapRedirect(href)
		if href == "" {
			return true
		}

		snippet := strings.TrimSpace(sel.Find(".result__snippet, .result__body").First().Text())
		results = append(results, SearchResult{Title: title, URL: href, Snippet: snippet})
		return len(results) < maxResults
	})

	return results, nil
}

// unwrapRedirect 还原DDG的跳转链接：
// //duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com&rut=...
func unwrapRedirect(href string) string {
	if strings.Contains(href, "duckduckgo.com/l/") || strings.Contains(href, "uddg=") {
		if u, err := url.Parse(href); err == nil {
			if uddg := u.Query().Get("uddg"); uddg != "" {
				return uddg
			}
		}
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	return ""
}
