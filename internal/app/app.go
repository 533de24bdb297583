// Package app связывает конфигурацию, аудио, распознавание, перевод и окна.
package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"glossa/internal/audio"
	"glossa/internal/config"
	"glossa/internal/dialog"
	"glossa/internal/hotkey"
	"glossa/internal/i18n"
	"glossa/internal/models"
	"glossa/internal/notify"
	"glossa/internal/session"
	"glossa/internal/speech"
	"glossa/internal/startup"
	"glossa/internal/translate"
	"glossa/internal/tray"
	"glossa/internal/tts"
	"glossa/internal/ui"
)

// ollamaProbeTimeout ограничивает проверку локального сервера перевода.
const ollamaProbeTimeout = 3 * time.Second

// ModelMissingError возвращается, если настроенная модель распознавания не скачана.
type ModelMissingError struct {
	Model     models.ModelInfo
	Path      string
	Available []models.ModelInfo
}

func (e *ModelMissingError) Error() string {
	return "Recognition model not found: " + e.Path
}

// Hint подсказывает, как получить модель или какую выбрать вместо неё.
func (e *ModelMissingError) Hint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run with -download to fetch %s (%s).", e.Model.Name, e.Model.ID)
	if len(e.Available) > 0 {
		ids := make([]string, len(e.Available))
		for i, m := range e.Available {
			ids[i] = m.ID
		}
		fmt.Fprintf(&b, " Downloaded models: %s.", strings.Join(ids, ", "))
	}
	return b.String()
}

// App представляет главное приложение.
type App struct {
	config     *config.Config
	catalog    *translate.Catalog
	model      models.ModelInfo
	manager    *models.Manager
	factory    *speech.Factory
	recorder   *audio.Recorder
	player     *audio.Player
	notifier   *notify.Notifier
	controller *session.Controller
	window     *ui.Window
	tray       *tray.Tray
	hotkey     *hotkey.Handler

	mu          sync.Mutex
	historySeen int
	closeOnce   sync.Once
}

// ResolveModel находит настроенную модель, заменяя неизвестный ID моделью по умолчанию.
func ResolveModel(cfg *config.Config) (*models.Manager, models.ModelInfo, error) {
	manager, err := models.NewManager(cfg.ModelsDir())
	if err != nil {
		return nil, models.ModelInfo{}, err
	}

	info, ok := models.GetModel(cfg.ModelID())
	if !ok {
		log.Printf("Неизвестная модель %q, используется %s", cfg.ModelID(), models.DefaultModelID())
		info, _ = models.GetModel(models.DefaultModelID())
	}
	return manager, info, nil
}

// Download скачивает настроенную модель, печатая прогресс в лог.
func Download(ctx context.Context, cfg *config.Config) error {
	manager, info, err := ResolveModel(cfg)
	if err != nil {
		return err
	}

	log.Printf("Загрузка модели %s в %s", info.Name, manager.GetModelPath(info))

	progress := make(chan models.Progress, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		var last int
		for p := range progress {
			if pct := int(startup.Fraction(p) * 100); pct >= last+10 || p.Done {
				last = pct
				log.Printf("%s: %s", info.ID, startup.ProgressText(p))
			}
		}
	}()

	err = manager.Download(ctx, info, progress)
	close(progress)
	<-done
	return err
}

// New создаёт приложение. Если модель не скачана, возвращает *ModelMissingError
// до открытия аудиоустройств.
func New(cfg *config.Config) (*App, error) {
	if uiLang := cfg.UILanguage(); uiLang != "" {
		i18n.SetLanguage(i18n.Language(uiLang))
	}

	manager, info, err := ResolveModel(cfg)
	if err != nil {
		return nil, err
	}
	if !manager.IsDownloaded(info) {
		return nil, &ModelMissingError{
			Model:     info,
			Path:      manager.GetModelPath(info),
			Available: manager.ListDownloaded(),
		}
	}

	catalog := translate.DefaultCatalog()
	translator, err := translate.New(cfg.Translator(), catalog)
	if err != nil {
		return nil, err
	}

	recorder, err := audio.NewRecorder()
	if err != nil {
		return nil, fmt.Errorf("микрофон недоступен: %w", err)
	}

	player, err := audio.NewPlayer()
	if err != nil {
		recorder.Close()
		return nil, fmt.Errorf("вывод звука недоступен: %w", err)
	}

	a := &App{
		config:   cfg,
		catalog:  catalog,
		model:    info,
		manager:  manager,
		factory:  speech.NewFactory(manager),
		recorder: recorder,
		player:   player,
		notifier: notify.New(cfg.NotificationsEnabled()),
	}

	if o, ok := translator.(*translate.Ollama); ok {
		go a.probeOllama(o)
	}

	language, ok := catalog.Canonical(cfg.TargetLanguage())
	if !ok {
		log.Printf("Неизвестный язык перевода %q, используется %s", cfg.TargetLanguage(), config.DefaultTargetLanguage)
		language = config.DefaultTargetLanguage
	}

	a.controller, err = session.New(session.Config{
		Capturer:            recorder,
		Transcriber:         a.factory,
		Translator:          translator,
		Synthesizer:         tts.NewGoogle(tts.Config{}),
		Player:              player,
		Clipboard:           systemClipboard{},
		Notifier:            a.notifier,
		Languages:           catalog,
		Language:            language,
		RecognitionLanguage: cfg.RecognitionLanguage(),
		RecordDuration:      cfg.RecordDuration(),
		RecognitionTimeout:  cfg.RecognitionTimeout(),
		TranslationTimeout:  cfg.TranslationTimeout(),
		SynthesisTimeout:    cfg.SynthesisTimeout(),
		Archive:             archiver(cfg.DebugAudioPath()),
		LanguageChanged:     a.onLanguageChanged,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	a.window = ui.New(a.controller, catalog, recorder)
	a.hotkey = hotkey.New(a.controller.StartRecording)
	a.tray = tray.New(tray.Callbacks{
		OnShow:     a.window.Show,
		OnSpeak:    a.controller.StartRecording,
		OnLanguage: a.chooseLanguage,
		OnNotificationsToggle: func() bool {
			enabled := a.config.ToggleNotifications()
			a.notifier.SetEnabled(enabled)
			return enabled
		},
		OnQuit: a.Close,
	}, cfg.NotificationsEnabled())

	a.controller.OnChange(a.onStateChange)

	return a, nil
}

// Run запускает приложение. Блокирует до выхода из трея.
func (a *App) Run() {
	a.tray.Run(func() {
		a.tray.SetLanguage(a.catalog.Name(a.controller.Snapshot().Language))

		// Регистрируем горячую клавишу после инициализации трея
		if err := a.hotkey.Register(a.config.Hotkey()); err != nil {
			log.Printf("Ошибка регистрации горячей клавиши: %v", err)
			a.notifier.Error(i18n.T("error_hotkey_register"))
		}

		a.window.Show()
		go a.loadRecognizer()
	})
}

func (a *App) loadRecognizer() {
	win := startup.New()
	win.SetStatus(i18n.T("startup_loading"), a.model.Name)
	win.Show()
	defer win.Hide()

	if err := a.factory.Load(a.model.ID); err != nil {
		log.Printf("Ошибка загрузки модели: %v", err)
		a.notifier.Error(i18n.T("error_model_load") + ": " + err.Error())
		return
	}

	log.Printf("Модель %s загружена", a.model.ID)
	a.notifier.Ready()
}

func (a *App) probeOllama(o *translate.Ollama) {
	ctx, cancel := context.WithTimeout(context.Background(), ollamaProbeTimeout)
	defer cancel()

	if !o.IsAvailable(ctx) {
		log.Printf("Ollama недоступна по адресу %s", a.config.Translator().OllamaURL)
		a.notifier.Error(i18n.T("error_translator"))
	}
}

// chooseLanguage открывает нативный список языков из меню трея.
func (a *App) chooseLanguage() {
	current := a.controller.Snapshot().Language
	code, err := dialog.SelectLanguage(a.catalog, current)
	if err != nil {
		return
	}
	if err := a.controller.SelectLanguage(code); err != nil {
		log.Printf("Ошибка выбора языка: %v", err)
	}
}

func (a *App) onLanguageChanged(code string) {
	a.config.SetTargetLanguage(code)
	a.tray.SetLanguage(a.catalog.Name(code))
	a.window.Invalidate()
}

// onStateChange вызывается в цикле контроллера и не должен блокировать.
func (a *App) onStateChange(s session.State) {
	a.window.Invalidate()
	a.tray.SetState(tray.StateOf(s))

	a.mu.Lock()
	fresh := s.History[min(a.historySeen, len(s.History)):]
	a.historySeen = len(s.History)
	a.mu.Unlock()

	// Когда окно закрыто, перевод по горячей клавише виден только в уведомлении
	if !a.window.IsVisible() {
		for _, rec := range fresh {
			a.notifier.Translated(rec.String())
		}
	}
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		if a.hotkey != nil {
			releaseHotkey(a.hotkey)
		}
		if a.window != nil {
			a.window.Hide()
		}
		if a.controller != nil {
			a.controller.Close()
		}
		if a.player != nil {
			a.player.Close()
		}
		if a.recorder != nil {
			a.recorder.Close()
		}
		if a.factory != nil {
			a.factory.Close()
		}
	})
}

// releaseHotkey снимает регистрацию горячей клавиши, записывая ошибку в лог.
func releaseHotkey(h interface{ Unregister() error }) {
	if err := h.Unregister(); err != nil {
		log.Printf("Ошибка снятия горячей клавиши: %v", err)
	}
}

// archiver возвращает запись отладочной копии или nil, если путь пуст.
func archiver(path string) func([]float32) error {
	if path == "" {
		return nil
	}
	return func(samples []float32) error {
		return audio.WriteWAV(path, samples, audio.SampleRate)
	}
}

// systemClipboard пишет в системный буфер обмена.
type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
