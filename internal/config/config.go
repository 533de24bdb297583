// Package config предоставляет конфигурацию приложения с сохранением в файл.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Modifier представляет модификатор клавиши.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
	ModAlt   Modifier = "alt"
	ModSuper Modifier = "super" // Win/Cmd
)

// Key представляет клавишу.
type Key string

const (
	KeySpace  Key = "space"
	KeyReturn Key = "return"
	KeyT      Key = "t"
	KeyR      Key = "r"
	KeyF9     Key = "f9"
	KeyF10    Key = "f10"
	KeyF11    Key = "f11"
	KeyF12    Key = "f12"
)

// HotkeyConfig хранит настройки горячей клавиши.
type HotkeyConfig struct {
	Modifiers []Modifier `json:"modifiers"`
	Key       Key        `json:"key"`
}

// String возвращает строковое представление горячей клавиши.
func (h HotkeyConfig) String() string {
	result := ""
	for _, m := range h.Modifiers {
		if result != "" {
			result += "+"
		}
		result += string(m)
	}
	if result != "" {
		result += "+"
	}
	result += string(h.Key)
	return result
}

// Провайдеры перевода.
const (
	ProviderGoogle = "google"
	ProviderOllama = "ollama"
)

// TranslatorConfig хранит настройки сервиса перевода.
type TranslatorConfig struct {
	Provider    string `json:"provider"`
	OllamaURL   string `json:"ollama_url,omitempty"`
	OllamaModel string `json:"ollama_model,omitempty"`
}

// Timeouts задаёт ограничения времени фоновых задач (в секундах).
type Timeouts struct {
	Recognition int `json:"recognition"`
	Translation int `json:"translation"`
	Synthesis   int `json:"synthesis"`
}

// configData структура для сериализации.
type configData struct {
	TargetLanguage      string           `json:"target_language"`
	RecognitionLanguage string           `json:"recognition_language"`
	UILanguage          string           `json:"ui_language,omitempty"`
	Notifications       bool             `json:"notifications"`
	Hotkey              HotkeyConfig     `json:"hotkey"`
	ModelID             string           `json:"model_id,omitempty"`
	ModelsDir           string           `json:"models_dir,omitempty"`
	Translator          TranslatorConfig `json:"translator"`
	RecordSeconds       int              `json:"record_seconds,omitempty"`
	DebugAudio          *string          `json:"debug_audio,omitempty"`
	Timeouts            Timeouts         `json:"timeouts"`
}

// Значения по умолчанию.
const (
	DefaultTargetLanguage = "es"
	DefaultModelID        = "whisper-base-en"
	DefaultRecordSeconds  = 5
	DefaultDebugAudio     = "test_audio.wav"
	DefaultOllamaURL      = "http://localhost:11434"
	DefaultOllamaModel    = "qwen2.5:1.5b"
)

// Config хранит настройки приложения.
type Config struct {
	mu                  sync.RWMutex
	targetLanguage      string
	recognitionLanguage string
	uiLanguage          string
	notifications       bool
	hotkey              HotkeyConfig
	modelID             string
	modelsDir           string
	translator          TranslatorConfig
	recordSeconds       int
	debugAudio          string
	timeouts            Timeouts
	configPath          string
}

// New создаёт конфигурацию из config.json рядом с бинарником.
func New() *Config {
	path := ""

	// Определяем путь к файлу конфигурации рядом с бинарником
	execPath, err := os.Executable()
	if err == nil {
		// Резолвим симлинки
		execPath, err = filepath.EvalSymlinks(execPath)
		if err == nil {
			path = filepath.Join(filepath.Dir(execPath), "config.json")
		}
	}

	return Load(path)
}

// Load создаёт конфигурацию, загружая её из указанного файла.
// Пустой путь означает конфигурацию только в памяти.
func Load(path string) *Config {
	c := &Config{
		targetLanguage:      DefaultTargetLanguage,
		recognitionLanguage: "en",
		uiLanguage:          "en",
		notifications:       true,
		hotkey: HotkeyConfig{
			Modifiers: []Modifier{ModCtrl, ModShift},
			Key:       KeySpace,
		},
		modelID: DefaultModelID,
		translator: TranslatorConfig{
			Provider:    ProviderGoogle,
			OllamaURL:   DefaultOllamaURL,
			OllamaModel: DefaultOllamaModel,
		},
		recordSeconds: DefaultRecordSeconds,
		debugAudio:    DefaultDebugAudio,
		timeouts: Timeouts{
			Recognition: 60,
			Translation: 20,
			Synthesis:   20,
		},
		configPath: path,
	}

	c.load()

	return c
}

// load загружает конфигурацию из файла.
func (c *Config) load() {
	if c.configPath == "" {
		return
	}

	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return // Файл не существует, используем defaults
	}

	var cfg configData
	if err := json.Unmarshal(data, &cfg); err != nil {
		return
	}

	if cfg.TargetLanguage != "" {
		c.targetLanguage = cfg.TargetLanguage
	}
	if cfg.RecognitionLanguage != "" {
		c.recognitionLanguage = cfg.RecognitionLanguage
	}
	if cfg.UILanguage != "" {
		c.uiLanguage = cfg.UILanguage
	}
	c.notifications = cfg.Notifications
	if cfg.Hotkey.Key != "" {
		c.hotkey = cfg.Hotkey
	}
	if cfg.ModelID != "" {
		c.modelID = cfg.ModelID
	}
	c.modelsDir = cfg.ModelsDir
	if cfg.Translator.Provider != "" {
		c.translator.Provider = cfg.Translator.Provider
	}
	if cfg.Translator.OllamaURL != "" {
		c.translator.OllamaURL = cfg.Translator.OllamaURL
	}
	if cfg.Translator.OllamaModel != "" {
		c.translator.OllamaModel = cfg.Translator.OllamaModel
	}
	if cfg.RecordSeconds > 0 {
		c.recordSeconds = cfg.RecordSeconds
	}
	// Пустая строка отключает отладочную запись, отсутствие поля - default
	if cfg.DebugAudio != nil {
		c.debugAudio = *cfg.DebugAudio
	}
	if cfg.Timeouts.Recognition > 0 {
		c.timeouts.Recognition = cfg.Timeouts.Recognition
	}
	if cfg.Timeouts.Translation > 0 {
		c.timeouts.Translation = cfg.Timeouts.Translation
	}
	if cfg.Timeouts.Synthesis > 0 {
		c.timeouts.Synthesis = cfg.Timeouts.Synthesis
	}
}

// save сохраняет конфигурацию в файл. Вызывается под c.mu.
func (c *Config) save() {
	if c.configPath == "" {
		return
	}

	debugAudio := c.debugAudio
	cfg := configData{
		TargetLanguage:      c.targetLanguage,
		RecognitionLanguage: c.recognitionLanguage,
		UILanguage:          c.uiLanguage,
		Notifications:       c.notifications,
		Hotkey:              c.hotkey,
		ModelID:             c.modelID,
		ModelsDir:           c.modelsDir,
		Translator:          c.translator,
		RecordSeconds:       c.recordSeconds,
		DebugAudio:          &debugAudio,
		Timeouts:            c.timeouts,
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}

	os.WriteFile(c.configPath, data, 0644)
}

// Path возвращает путь к файлу конфигурации.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.configPath
}

// TargetLanguage возвращает код целевого языка перевода.
func (c *Config) TargetLanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.targetLanguage
}

// SetTargetLanguage устанавливает код целевого языка перевода.
func (c *Config) SetTargetLanguage(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.targetLanguage = code
	c.save()
}

// RecognitionLanguage возвращает язык распознавания речи.
func (c *Config) RecognitionLanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.recognitionLanguage
}

// ToggleNotifications переключает состояние уведомлений.
func (c *Config) ToggleNotifications() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = !c.notifications
	c.save()
	return c.notifications
}

// NotificationsEnabled возвращает true если уведомления включены.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notifications
}

// Hotkey возвращает горячую клавишу записи.
func (c *Config) Hotkey() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hotkey
}

// ModelID возвращает ID модели распознавания.
func (c *Config) ModelID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.modelID
}

// ModelsDir возвращает директорию моделей (пусто - рядом с бинарником).
func (c *Config) ModelsDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.modelsDir
}

// Translator возвращает настройки сервиса перевода.
func (c *Config) Translator() TranslatorConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.translator
}

// RecordDuration возвращает длительность одной записи.
func (c *Config) RecordDuration() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.recordSeconds) * time.Second
}

// DebugAudioPath возвращает путь отладочной копии записи (пусто - не писать).
func (c *Config) DebugAudioPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.debugAudio
}

// RecognitionTimeout возвращает таймаут записи и распознавания.
func (c *Config) RecognitionTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.timeouts.Recognition) * time.Second
}

// TranslationTimeout возвращает таймаут перевода.
func (c *Config) TranslationTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.timeouts.Translation) * time.Second
}

// SynthesisTimeout возвращает таймаут синтеза речи.
func (c *Config) SynthesisTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.timeouts.Synthesis) * time.Second
}

// UILanguage возвращает язык интерфейса.
func (c *Config) UILanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.uiLanguage
}
