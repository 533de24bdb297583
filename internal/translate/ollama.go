package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultOllamaURL     = "http://localhost:11434"
	DefaultOllamaModel   = "qwen2.5:1.5b"
	DefaultOllamaTimeout = 60 * time.Second
)

// OllamaConfig конфигурация клиента Ollama.
type OllamaConfig struct {
	URL     string
	Model   string
	Timeout time.Duration
}

// Ollama переводит текст локальной LLM через Ollama API.
type Ollama struct {
	baseURL    string
	model      string
	catalog    *Catalog
	httpClient *http.Client
}

// NewOllama создаёт клиент Ollama.
func NewOllama(cfg OllamaConfig, catalog *Catalog) *Ollama {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultOllamaTimeout
	}

	baseURL := cfg.URL
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOllamaModel
	}

	if catalog == nil {
		catalog = DefaultCatalog()
	}

	return &Ollama{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		catalog: catalog,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// generateRequest запрос к Ollama API.
type generateRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Stream  bool   `json:"stream"`
	Options struct {
		Temperature float64 `json:"temperature"`
		NumPredict  int     `json:"num_predict"`
	} `json:"options"`
}

// generateResponse ответ от Ollama API.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Translate переводит text на язык targetLang.
func (o *Ollama) Translate(ctx context.Context, text, targetLang string) (string, error) {
	lang, ok := o.catalog.Lookup(targetLang)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, targetLang)
	}

	prompt := fmt.Sprintf(`Translate the following text into %s. Reply with the translation only, without explanations:

%s`, titleCaser.String(lang.Name), text)

	req := generateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
	}
	req.Options.Temperature = 0.1 // Низкая температура для стабильного результата
	req.Options.NumPredict = 1000

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	log.Printf("Ollama: запрос перевода на %s (%d символов)", lang.Code, len(text))
	start := time.Now()

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if result.Error != "" {
		return "", fmt.Errorf("ollama: %s", result.Error)
	}

	translated := strings.TrimSpace(result.Response)
	if translated == "" {
		return "", ErrEmptyResult
	}
	log.Printf("Ollama: переведено за %v", time.Since(start).Round(time.Millisecond))

	return translated, nil
}

// IsAvailable проверяет доступность Ollama.
func (o *Ollama) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", o.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
