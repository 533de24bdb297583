// Package models управляет моделями распознавания речи.
package models

// Engine тип движка распознавания.
type Engine string

const (
	EngineWhisper Engine = "whisper"
	EngineVosk    Engine = "vosk"
)

// ModelInfo информация о модели.
type ModelInfo struct {
	ID       string // Уникальный идентификатор: "whisper-base-en"
	Engine   Engine // Движок: whisper или vosk
	Name     string // Отображаемое имя
	Filename string // Имя файла/директории
	URL      string // URL для скачивания
	Size     int64  // Размер в байтах (для прогресса)
	IsZip    bool   // Нужно ли распаковывать
}

// Registry все доступные модели.
var Registry = []ModelInfo{
	// Whisper - английские модели, как и исходный голосовой ввод
	{
		ID:       "whisper-tiny-en",
		Engine:   EngineWhisper,
		Name:     "Tiny (English)",
		Filename: "ggml-tiny.en.bin",
		URL:      "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-tiny.en.bin",
		Size:     75 * 1024 * 1024,
	},
	{
		ID:       "whisper-base-en",
		Engine:   EngineWhisper,
		Name:     "Base (English)",
		Filename: "ggml-base.en.bin",
		URL:      "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-base.en.bin",
		Size:     142 * 1024 * 1024,
	},
	// Многоязычные модели для распознавания не только английской речи
	{
		ID:       "whisper-base-q5",
		Engine:   EngineWhisper,
		Name:     "Base Q5 (multilingual)",
		Filename: "ggml-base-q5_1.bin",
		URL:      "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-base-q5_1.bin",
		Size:     60 * 1024 * 1024,
	},
	{
		ID:       "whisper-small-q5",
		Engine:   EngineWhisper,
		Name:     "Small Q5 (multilingual)",
		Filename: "ggml-small-q5_1.bin",
		URL:      "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-small-q5_1.bin",
		Size:     190 * 1024 * 1024,
	},
	// Vosk
	{
		ID:       "vosk-en-small",
		Engine:   EngineVosk,
		Name:     "English Small",
		Filename: "vosk-model-small-en-us-0.15",
		URL:      "https://alphacephei.com/vosk/models/vosk-model-small-en-us-0.15.zip",
		Size:     40 * 1024 * 1024,
		IsZip:    true,
	},
	{
		ID:       "vosk-en",
		Engine:   EngineVosk,
		Name:     "English Large",
		Filename: "vosk-model-en-us-0.22",
		URL:      "https://alphacephei.com/vosk/models/vosk-model-en-us-0.22.zip",
		Size:     1800 * 1024 * 1024,
		IsZip:    true,
	},
}

// DefaultModelID модель по умолчанию.
func DefaultModelID() string {
	return "whisper-base-en"
}

// GetModel возвращает модель по ID.
func GetModel(id string) (ModelInfo, bool) {
	for _, m := range Registry {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}
