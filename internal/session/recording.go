package session

import (
	"context"
	"log"
	"strings"
	"time"
)

// RecordingState is the lifecycle of one recording task.
type RecordingState int

const (
	RecordingIdle RecordingState = iota
	RecordingListening
	RecordingTranscribing
	RecordingDone
	RecordingFailed
)

func (s RecordingState) String() string {
	switch s {
	case RecordingIdle:
		return "idle"
	case RecordingListening:
		return "listening"
	case RecordingTranscribing:
		return "transcribing"
	case RecordingDone:
		return "done"
	case RecordingFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Active reports whether a recording task is still running.
func (s RecordingState) Active() bool {
	return s == RecordingListening || s == RecordingTranscribing
}

// RecordingEvent is a progress or terminal notification of a RecordingTask.
type RecordingEvent struct {
	State RecordingState
	Text  string // transcript, set with RecordingDone
	Err   error  // set with RecordingFailed
}

// RecordingTask captures audio and runs recognition on its own goroutine.
type RecordingTask struct {
	ID          string
	Capturer    Capturer
	Transcriber Transcriber
	Duration    time.Duration
	Language    string

	// Archive, if set, receives the raw capture before recognition.
	Archive func(samples []float32) error
}

// Run starts the task. The returned channel yields Listening, Transcribing
// and one terminal event, then closes. It never blocks on the reader.
func (t *RecordingTask) Run(ctx context.Context) <-chan RecordingEvent {
	events := make(chan RecordingEvent, 3)

	go func() {
		defer close(events)

		events <- RecordingEvent{State: RecordingListening}
		log.Printf("Запись %s: слушаю %v", t.ID, t.Duration)

		samples, err := t.Capturer.Capture(ctx, t.Duration)
		if err != nil {
			log.Printf("Запись %s: ошибка записи: %v", t.ID, err)
			events <- RecordingEvent{State: RecordingFailed, Err: err}
			return
		}

		if t.Archive != nil {
			if err := t.Archive(samples); err != nil {
				log.Printf("Запись %s: не удалось сохранить отладочную копию: %v", t.ID, err)
			}
		}

		events <- RecordingEvent{State: RecordingTranscribing}

		text, err := t.transcribe(ctx, samples)
		if err != nil {
			log.Printf("Запись %s: ошибка распознавания: %v", t.ID, err)
			events <- RecordingEvent{State: RecordingFailed, Err: err}
			return
		}

		text = strings.TrimSpace(text)
		log.Printf("Запись %s: распознано %d символов", t.ID, len(text))
		events <- RecordingEvent{State: RecordingDone, Text: text}
	}()

	return events
}

// transcribe waits for the engine or ctx, whichever ends first. Engines
// cannot be interrupted, so an abandoned call finishes in the background.
func (t *RecordingTask) transcribe(ctx context.Context, samples []float32) (string, error) {
	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		text, err := t.Transcriber.Transcribe(samples, t.Language)
		done <- result{text, err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
