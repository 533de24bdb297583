// Package i18n provides the interface strings of the window, tray and dialogs.
package i18n

import "sync"

// Language represents a UI language.
type Language string

const (
	EN Language = "en"
	RU Language = "ru"
)

var (
	mu      sync.RWMutex
	current = EN
)

var translations = map[Language]map[string]string{
	EN: {
		// App
		"app_name":    "Glossa",
		"app_tooltip": "Glossa - voice translator",

		// Main window
		"window_title":         "AI Voice Translator",
		"window_prompt":        "Speak or type text to translate:",
		"window_speak":         "🎤 Speak",
		"window_target":        "Target language:",
		"window_filter":        "Filter languages",
		"window_translate":     "Translate",
		"window_output":        "Translated text:",
		"window_speak_output":  "🔊 Speak Translation",
		"window_copy":          "Copy",
		"window_history":       "Translation History:",
		"window_history_empty": "No translations yet",
		"window_translating":   "Translating...",

		// Tray menu
		"tray_ready":              "Ready",
		"tray_recording":          "Listening...",
		"tray_processing":         "Transcribing...",
		"tray_show":               "Show window",
		"tray_show_hint":          "Open the translator window",
		"tray_speak":              "Speak",
		"tray_speak_hint":         "Record and translate",
		"tray_language":           "Target language...",
		"tray_language_hint":      "Choose the translation language",
		"tray_notifications":      "Notifications",
		"tray_notifications_hint": "Show notifications",
		"tray_quit":               "Quit",
		"tray_quit_hint":          "Close application",

		// Notifications
		"notify_error":      "Error",
		"notify_translated": "Translated",
		"notify_ready":      "Glossa is ready",

		// Dialogs
		"dialog_language":       "Select the target language:",
		"dialog_language_title": "Target language",
		"dialog_model_missing":  "Recognition model not found",

		// Startup window
		"startup_loading": "Loading recognition model...",
		"startup_status":  "Starting...",

		// Errors
		"error_model_load":      "Could not load model",
		"error_hotkey_register": "Could not register hotkey",
		"error_translator":      "Translation service unavailable",
	},

	RU: {
		// App
		"app_name":    "Glossa",
		"app_tooltip": "Glossa - голосовой переводчик",

		// Main window
		"window_title":         "Голосовой переводчик",
		"window_prompt":        "Скажите или введите текст для перевода:",
		"window_speak":         "🎤 Сказать",
		"window_target":        "Язык перевода:",
		"window_filter":        "Поиск языка",
		"window_translate":     "Перевести",
		"window_output":        "Перевод:",
		"window_speak_output":  "🔊 Озвучить перевод",
		"window_copy":          "Скопировать",
		"window_history":       "История переводов:",
		"window_history_empty": "Переводов пока нет",
		"window_translating":   "Перевожу...",

		// Tray menu
		"tray_ready":              "Готов к работе",
		"tray_recording":          "Слушаю...",
		"tray_processing":         "Распознаю...",
		"tray_show":               "Показать окно",
		"tray_show_hint":          "Открыть окно переводчика",
		"tray_speak":              "Сказать",
		"tray_speak_hint":         "Записать и перевести",
		"tray_language":           "Язык перевода...",
		"tray_language_hint":      "Выбрать язык перевода",
		"tray_notifications":      "Уведомления",
		"tray_notifications_hint": "Показывать уведомления",
		"tray_quit":               "Выход",
		"tray_quit_hint":          "Закрыть приложение",

		// Notifications
		"notify_error":      "Ошибка",
		"notify_translated": "Переведено",
		"notify_ready":      "Glossa готова к работе",

		// Dialogs
		"dialog_language":       "Выберите язык перевода:",
		"dialog_language_title": "Язык перевода",
		"dialog_model_missing":  "Модель распознавания не найдена",

		// Startup window
		"startup_loading": "Загрузка модели распознавания...",
		"startup_status":  "Запуск...",

		// Errors
		"error_model_load":      "Не удалось загрузить модель",
		"error_hotkey_register": "Не удалось зарегистрировать горячую клавишу",
		"error_translator":      "Сервис перевода недоступен",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// SetLanguage sets the current UI language. Unknown languages fall back to English.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := translations[lang]; !ok {
		lang = EN
	}
	current = lang
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{EN, RU}
}
