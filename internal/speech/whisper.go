package speech

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// WhisperRecognizer реализует Recognizer через whisper.cpp.
type WhisperRecognizer struct {
	mu    sync.Mutex
	model whisper.Model
}

// NewWhisperFromFile создаёт WhisperRecognizer из файла модели.
func NewWhisperFromFile(modelPath string) (*WhisperRecognizer, error) {
	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, err
	}

	return &WhisperRecognizer{
		model: model,
	}, nil
}

// Name возвращает название движка.
func (w *WhisperRecognizer) Name() string {
	return "whisper"
}

// Transcribe распознаёт речь из аудио сэмплов.
func (w *WhisperRecognizer) Transcribe(samples []float32, lang string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.model == nil {
		return "", errors.New("whisper model is closed")
	}

	ctx, err := w.model.NewContext()
	if err != nil {
		return "", err
	}

	// Только транскрипция, переводом занимается отдельный сервис
	ctx.SetTranslate(false)

	// Английские модели (*.en) не поддерживают выбор языка
	if lang != "" && w.model.IsMultilingual() {
		if err := ctx.SetLanguage(lang); err != nil {
			return "", fmt.Errorf("language %q: %w", lang, err)
		}
	}

	if err := ctx.Process(samples, nil, nil, nil); err != nil {
		return "", err
	}

	// Собираем результат из сегментов
	var segments []string
	for {
		segment, err := ctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		segments = append(segments, segment.Text)
	}

	return cleanTranscript(segments), nil
}

// cleanTranscript склеивает сегменты и убирает служебные метки
// вроде "[BLANK_AUDIO]", которые whisper выдаёт на тишине.
func cleanTranscript(segments []string) string {
	var result strings.Builder
	for _, s := range segments {
		s = strings.TrimSpace(s)
		if s == "" || isNonSpeechMarker(s) {
			continue
		}
		if result.Len() > 0 {
			result.WriteByte(' ')
		}
		result.WriteString(s)
	}
	return result.String()
}

func isNonSpeechMarker(s string) bool {
	return (strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")) ||
		(strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"))
}

// Close освобождает ресурсы.
func (w *WhisperRecognizer) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.model != nil {
		w.model.Close()
		w.model = nil
	}
}
