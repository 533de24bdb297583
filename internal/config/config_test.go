package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Parallel()

	cfg := Load(filepath.Join(t.TempDir(), "config.json"))

	if got := cfg.TargetLanguage(); got != DefaultTargetLanguage {
		t.Errorf("TargetLanguage() = %q, want %q", got, DefaultTargetLanguage)
	}
	if got := cfg.RecordDuration(); got != 5*time.Second {
		t.Errorf("RecordDuration() = %v, want 5s", got)
	}
	if got := cfg.DebugAudioPath(); got != DefaultDebugAudio {
		t.Errorf("DebugAudioPath() = %q, want %q", got, DefaultDebugAudio)
	}
	if got := cfg.Translator().Provider; got != ProviderGoogle {
		t.Errorf("Translator().Provider = %q, want %q", got, ProviderGoogle)
	}
	if got := cfg.Hotkey().String(); got != "ctrl+shift+space" {
		t.Errorf("Hotkey() = %q, want ctrl+shift+space", got)
	}
}

func TestSetTargetLanguagePersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Load(path)
	cfg.SetTargetLanguage("fr")

	reloaded := Load(path)
	if got := reloaded.TargetLanguage(); got != "fr" {
		t.Fatalf("reloaded TargetLanguage() = %q, want fr", got)
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	empty := ""
	data, err := json.Marshal(configData{
		TargetLanguage: "de",
		ModelID:        "vosk-en-small",
		Translator:     TranslatorConfig{Provider: ProviderOllama},
		RecordSeconds:  3,
		DebugAudio:     &empty,
		Timeouts:       Timeouts{Translation: 7},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := Load(path)

	if got := cfg.TargetLanguage(); got != "de" {
		t.Errorf("TargetLanguage() = %q, want de", got)
	}
	if got := cfg.ModelID(); got != "vosk-en-small" {
		t.Errorf("ModelID() = %q, want vosk-en-small", got)
	}
	tr := cfg.Translator()
	if tr.Provider != ProviderOllama || tr.OllamaURL != DefaultOllamaURL {
		t.Errorf("Translator() = %+v, want ollama with default URL", tr)
	}
	if got := cfg.RecordDuration(); got != 3*time.Second {
		t.Errorf("RecordDuration() = %v, want 3s", got)
	}
	if got := cfg.DebugAudioPath(); got != "" {
		t.Errorf("DebugAudioPath() = %q, want empty", got)
	}
	if got := cfg.TranslationTimeout(); got != 7*time.Second {
		t.Errorf("TranslationTimeout() = %v, want 7s", got)
	}
	if got := cfg.RecognitionTimeout(); got != 60*time.Second {
		t.Errorf("RecognitionTimeout() = %v, want 60s", got)
	}
}

func TestLoadIgnoresMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := Load(path)
	if got := cfg.TargetLanguage(); got != DefaultTargetLanguage {
		t.Fatalf("TargetLanguage() = %q, want default", got)
	}
}

func TestToggleNotifications(t *testing.T) {
	t.Parallel()

	cfg := Load("")
	if !cfg.NotificationsEnabled() {
		t.Fatal("notifications should be enabled by default")
	}
	if cfg.ToggleNotifications() {
		t.Fatal("ToggleNotifications() should return false after first toggle")
	}
	if cfg.NotificationsEnabled() {
		t.Fatal("NotificationsEnabled() should be false")
	}
}
