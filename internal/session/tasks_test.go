package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func collect(events <-chan RecordingEvent) []RecordingEvent {
	var out []RecordingEvent
	for ev := range events {
		out = append(out, ev)
	}
	return out
}

func TestRecordingTaskEvents(t *testing.T) {
	t.Parallel()

	var archived []float32
	task := &RecordingTask{
		ID:          "t1",
		Capturer:    &fakeCapturer{samples: []float32{0.1, 0.2}},
		Transcriber: &fakeTranscriber{text: " hi there "},
		Duration:    time.Millisecond,
		Archive: func(s []float32) error {
			archived = s
			return nil
		},
	}

	got := collect(task.Run(context.Background()))
	want := []RecordingState{RecordingListening, RecordingTranscribing, RecordingDone}
	if len(got) != len(want) {
		t.Fatalf("events = %+v", got)
	}
	for i, ev := range got {
		if ev.State != want[i] {
			t.Errorf("event %d = %v, want %v", i, ev.State, want[i])
		}
	}
	if got[2].Text != "hi there" {
		t.Errorf("transcript = %q", got[2].Text)
	}
	if len(archived) != 2 {
		t.Errorf("archived %d samples, want 2", len(archived))
	}
}

func TestRecordingTaskArchiveFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	task := &RecordingTask{
		Capturer:    &fakeCapturer{},
		Transcriber: &fakeTranscriber{text: "ok"},
		Archive:     func([]float32) error { return errors.New("disk full") },
	}

	got := collect(task.Run(context.Background()))
	if last := got[len(got)-1]; last.State != RecordingDone || last.Text != "ok" {
		t.Errorf("last event = %+v", last)
	}
}

func TestRecordingTaskCaptureError(t *testing.T) {
	t.Parallel()

	task := &RecordingTask{
		Capturer:    &fakeCapturer{err: errors.New("no device")},
		Transcriber: &fakeTranscriber{},
	}

	got := collect(task.Run(context.Background()))
	if len(got) != 2 || got[1].State != RecordingFailed || got[1].Err == nil {
		t.Errorf("events = %+v", got)
	}
}

type slowTranscriber struct{ release chan struct{} }

func (s *slowTranscriber) Transcribe([]float32, string) (string, error) {
	<-s.release
	return "late", nil
}

func TestRecordingTaskTranscribeHonoursContext(t *testing.T) {
	t.Parallel()

	slow := &slowTranscriber{release: make(chan struct{})}
	defer close(slow.release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	task := &RecordingTask{Capturer: &fakeCapturer{}, Transcriber: slow}
	got := collect(task.Run(ctx))

	last := got[len(got)-1]
	if last.State != RecordingFailed || !errors.Is(last.Err, context.DeadlineExceeded) {
		t.Errorf("last event = %+v", last)
	}
}

func TestTranslationTaskSingleResult(t *testing.T) {
	t.Parallel()

	task := &TranslationTask{
		Translator: &fakeTranslator{dict: map[string]string{"hello": "hola"}},
		Text:       "hello",
		Lang:       "es",
	}

	var results []TranslationResult
	for res := range task.Run(context.Background()) {
		results = append(results, res)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
	if r := results[0]; r.Display() != "hola" || r.Source != "hello" || r.Lang != "es" {
		t.Errorf("result = %+v", r)
	}
}

func TestTranslationResultDisplay(t *testing.T) {
	t.Parallel()

	r := TranslationResult{Err: errors.New("boom")}
	if got := r.Display(); got != "Translation Error: boom" {
		t.Errorf("Display = %q", got)
	}
}

func TestRecordingStateActive(t *testing.T) {
	t.Parallel()

	for s, want := range map[RecordingState]bool{
		RecordingIdle:         false,
		RecordingListening:    true,
		RecordingTranscribing: true,
		RecordingDone:         false,
		RecordingFailed:       false,
	} {
		if s.Active() != want {
			t.Errorf("%v.Active() = %v", s, !want)
		}
	}
}
