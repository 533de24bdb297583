package session

import (
	"context"
	"time"
)

// Capturer records a fixed-duration mono clip from the microphone.
type Capturer interface {
	Capture(ctx context.Context, d time.Duration) ([]float32, error)
}

// Transcriber turns a 16 kHz mono clip into text. An empty string with a
// nil error means nothing was understood.
type Transcriber interface {
	Transcribe(samples []float32, lang string) (string, error)
}

// Translator translates text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Synthesizer produces playable audio for text in lang.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// Player starts playback and returns without waiting for it to finish.
type Player interface {
	Play(data []byte) error
}

// Clipboard receives copied translations.
type Clipboard interface {
	WriteAll(text string) error
}

// Notifier surfaces failures that have no field of their own in the window.
type Notifier interface {
	Error(msg string)
}

// LanguageSet validates target-language codes and normalizes them to the
// form stored in State.Language.
type LanguageSet interface {
	Canonical(code string) (string, bool)
}
