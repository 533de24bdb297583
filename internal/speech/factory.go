package speech

import (
	"errors"
	"fmt"
	"sync"

	"glossa/internal/models"
)

// ErrNotLoaded возвращается, пока модель распознавания не загружена.
// Текст попадает в поле ввода окна.
var ErrNotLoaded = errors.New("speech recognition model is still loading")

// Factory владеет текущим распознавателем. Создаётся окном приложения
// и закрывается вместе с ним.
//
// Движки не допускают параллельных вызовов: engine удерживается на всё
// время распознавания, а также при замене и закрытии распознавателя.
type Factory struct {
	manager *models.Manager
	current Recognizer
	modelID string
	mu      sync.RWMutex
	engine  sync.Mutex
}

// NewFactory создаёт фабрику распознавателей.
func NewFactory(manager *models.Manager) *Factory {
	return &Factory{
		manager: manager,
	}
}

// Create создаёт распознаватель для указанной модели.
func (f *Factory) Create(modelID string) (Recognizer, error) {
	info, ok := models.GetModel(modelID)
	if !ok {
		return nil, fmt.Errorf("модель не найдена: %s", modelID)
	}

	if !f.manager.IsDownloaded(info) {
		return nil, fmt.Errorf("модель не скачана: %s", info.Name)
	}

	modelPath := f.manager.GetModelPath(info)

	var rec Recognizer
	var err error

	switch info.Engine {
	case models.EngineWhisper:
		rec, err = NewWhisperFromFile(modelPath)
	case models.EngineVosk:
		rec, err = NewVosk(modelPath)
	default:
		return nil, fmt.Errorf("неизвестный движок: %s", info.Engine)
	}

	if err != nil {
		return nil, fmt.Errorf("ошибка создания распознавателя: %w", err)
	}

	return rec, nil
}

// Load загружает модель и устанавливает её как текущую.
func (f *Factory) Load(modelID string) error {
	rec, err := f.Create(modelID)
	if err != nil {
		return err
	}

	f.set(rec, modelID)
	return nil
}

func (f *Factory) set(rec Recognizer, modelID string) {
	f.engine.Lock()
	defer f.engine.Unlock()

	f.mu.Lock()
	old := f.current
	f.current = rec
	f.modelID = modelID
	f.mu.Unlock()

	if old != nil {
		old.Close()
	}
}

// Current возвращает текущий распознаватель (thread-safe).
func (f *Factory) Current() Recognizer {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// CurrentModelID возвращает ID текущей модели.
func (f *Factory) CurrentModelID() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.modelID
}

// IsLoaded проверяет, загружена ли модель.
func (f *Factory) IsLoaded() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current != nil
}

// Transcribe распознаёт речь текущим распознавателем. Вызовы выполняются
// по одному; следующий ждёт окончания предыдущего.
func (f *Factory) Transcribe(samples []float32, lang string) (string, error) {
	f.engine.Lock()
	defer f.engine.Unlock()

	rec := f.Current()
	if rec == nil {
		return "", ErrNotLoaded
	}
	return rec.Transcribe(samples, lang)
}

// Close закрывает текущий распознаватель, дождавшись идущего распознавания.
func (f *Factory) Close() {
	f.engine.Lock()
	defer f.engine.Unlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current != nil {
		f.current.Close()
		f.current = nil
	}
}
