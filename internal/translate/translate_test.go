package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"glossa/internal/config"
)

func TestCatalogLabelsAndLookup(t *testing.T) {
	t.Parallel()

	c := DefaultCatalog()

	tests := []struct {
		code  string
		label string
	}{
		{"es", "Spanish (es)"},
		{"zh-cn", "Chinese (Simplified) (zh-cn)"},
		{"ht", "Haitian Creole (ht)"},
	}
	for _, tt := range tests {
		l, ok := c.Lookup(tt.code)
		if !ok {
			t.Fatalf("Lookup(%q) not found", tt.code)
		}
		if got := l.Label(); got != tt.label {
			t.Errorf("Label() = %q, want %q", got, tt.label)
		}
	}

	if !c.Valid("ES") {
		t.Error("Valid should match codes case-insensitively")
	}
	if c.Valid("xx") {
		t.Error("Valid(xx) should be false")
	}
	if code, ok := c.Canonical(" ZH-CN "); !ok || code != "zh-cn" {
		t.Errorf("Canonical(ZH-CN) = %q, %v", code, ok)
	}
	if _, ok := c.Canonical("xx"); ok {
		t.Error("Canonical(xx) should fail")
	}
	if got := c.Languages()[0].Code; got != "af" {
		t.Errorf("first language = %q, want af", got)
	}
}

func TestCatalogLanguagesIsACopy(t *testing.T) {
	t.Parallel()

	c := NewCatalog([]Language{{"en", "english"}})
	list := c.Languages()
	list[0].Code = "zz"

	if !c.Valid("en") || c.Languages()[0].Code != "en" {
		t.Fatal("mutating Languages() result changed the catalog")
	}
}

func TestGoogleTranslate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate_a/single" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("tl") != "es" || q.Get("q") != "hello. world" || q.Get("sl") != "auto" {
			t.Errorf("unexpected query %v", q)
		}
		w.Write([]byte(`[[["hola. ","hello. ",null,null,10],["mundo","world",null,null,10]],null,"en"]`))
	}))
	defer srv.Close()

	g := NewGoogle(GoogleConfig{URL: srv.URL}, nil)
	got, err := g.Translate(context.Background(), "hello. world", "es")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "hola. mundo" {
		t.Fatalf("Translate = %q, want %q", got, "hola. mundo")
	}
}

func TestGoogleTranslateErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("tl") {
		case "fr":
			http.Error(w, "too many requests", http.StatusTooManyRequests)
		case "de":
			w.Write([]byte(`[[],null,"en"]`))
		default:
			w.Write([]byte(`not json`))
		}
	}))
	defer srv.Close()

	g := NewGoogle(GoogleConfig{URL: srv.URL}, nil)
	ctx := context.Background()

	if _, err := g.Translate(ctx, "hi", "xx"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("unsupported language: got %v", err)
	}
	if _, err := g.Translate(ctx, "hi", "fr"); err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("http error: got %v", err)
	}
	if _, err := g.Translate(ctx, "hi", "de"); !errors.Is(err, ErrEmptyResult) {
		t.Errorf("empty result: got %v", err)
	}
	if _, err := g.Translate(ctx, "hi", "it"); err == nil {
		t.Error("malformed body: expected error")
	}
}

func TestOllamaTranslate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "test-model" || req.Stream {
			t.Errorf("unexpected request %+v", req)
		}
		if !strings.Contains(req.Prompt, "into Spanish") || !strings.HasSuffix(req.Prompt, "hello") {
			t.Errorf("unexpected prompt %q", req.Prompt)
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "  hola\n", Done: true})
	}))
	defer srv.Close()

	o := NewOllama(OllamaConfig{URL: srv.URL, Model: "test-model"}, nil)
	got, err := o.Translate(context.Background(), "hello", "es")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "hola" {
		t.Fatalf("Translate = %q, want hola", got)
	}
}

func TestOllamaReportsServiceError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.WriteHeader(http.StatusOK)
			return
		}
		json.NewEncoder(w).Encode(generateResponse{Error: "model not found"})
	}))
	defer srv.Close()

	o := NewOllama(OllamaConfig{URL: srv.URL}, nil)
	if !o.IsAvailable(context.Background()) {
		t.Error("IsAvailable = false, want true")
	}
	_, err := o.Translate(context.Background(), "hello", "es")
	if err == nil || !strings.Contains(err.Error(), "model not found") {
		t.Fatalf("Translate error = %v, want model not found", err)
	}
}

func TestNewSelectsProvider(t *testing.T) {
	t.Parallel()

	tr, err := New(config.TranslatorConfig{Provider: config.ProviderOllama}, nil)
	if err != nil {
		t.Fatalf("New(ollama): %v", err)
	}
	if _, ok := tr.(*Ollama); !ok {
		t.Errorf("New(ollama) = %T, want *Ollama", tr)
	}

	tr, err = New(config.TranslatorConfig{}, nil)
	if err != nil {
		t.Fatalf("New(default): %v", err)
	}
	if _, ok := tr.(*Google); !ok {
		t.Errorf("New(default) = %T, want *Google", tr)
	}

	if _, err := New(config.TranslatorConfig{Provider: "deepl"}, nil); err == nil {
		t.Error("New(deepl) should fail")
	}
}
