package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultGoogleURL     = "https://translate.googleapis.com"
	DefaultGoogleTimeout = 15 * time.Second
)

// GoogleConfig конфигурация клиента Google Translate.
type GoogleConfig struct {
	URL     string
	Timeout time.Duration
}

// Google переводит текст через публичный web-эндпоинт Google Translate.
type Google struct {
	baseURL    string
	catalog    *Catalog
	httpClient *http.Client
}

// NewGoogle создаёт клиент Google Translate.
func NewGoogle(cfg GoogleConfig, catalog *Catalog) *Google {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultGoogleTimeout
	}

	baseURL := cfg.URL
	if baseURL == "" {
		baseURL = DefaultGoogleURL
	}

	if catalog == nil {
		catalog = DefaultCatalog()
	}

	return &Google{
		baseURL: strings.TrimRight(baseURL, "/"),
		catalog: catalog,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Translate переводит text на язык targetLang, язык источника определяется сервисом.
func (g *Google) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if !g.catalog.Valid(targetLang) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, targetLang)
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", "auto")
	q.Set("tl", targetLang)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, "GET", g.baseURL+"/translate_a/single?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("google translate error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	translated, err := parseGoogleResponse(resp.Body)
	if err != nil {
		return "", err
	}

	log.Printf("Перевод (%s) за %v: %d -> %d символов", targetLang, time.Since(start).Round(time.Millisecond), len(text), len(translated))
	return translated, nil
}

// parseGoogleResponse собирает текст из сегментов ответа вида
// [[["Hola","Hello",null,null,10], ...], null, "en", ...].
func parseGoogleResponse(r io.Reader) (string, error) {
	var top []json.RawMessage
	if err := json.NewDecoder(r).Decode(&top); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(top) == 0 {
		return "", ErrEmptyResult
	}

	var segments [][]any
	if err := json.Unmarshal(top[0], &segments); err != nil {
		return "", fmt.Errorf("decode segments: %w", err)
	}

	var result strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			result.WriteString(s)
		}
	}

	if result.Len() == 0 {
		return "", ErrEmptyResult
	}
	return result.String(), nil
}
