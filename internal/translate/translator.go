// Package translate provides text translation backends.
package translate

import (
	"context"
	"errors"
	"fmt"

	"glossa/internal/config"
)

var (
	// ErrUnsupportedLanguage is returned for target codes outside the catalog.
	ErrUnsupportedLanguage = errors.New("unsupported target language")
	// ErrEmptyResult is returned when the service answers without text.
	ErrEmptyResult = errors.New("empty translation")
)

// Translator converts free-form text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// New creates the translator selected in cfg.
func New(cfg config.TranslatorConfig, catalog *Catalog) (Translator, error) {
	switch cfg.Provider {
	case "", config.ProviderGoogle:
		return NewGoogle(GoogleConfig{}, catalog), nil
	case config.ProviderOllama:
		return NewOllama(OllamaConfig{URL: cfg.OllamaURL, Model: cfg.OllamaModel}, catalog), nil
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", cfg.Provider)
	}
}
