package speech

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"glossa/internal/models"
)

type fakeRecognizer struct {
	text   string
	closed bool
}

func (f *fakeRecognizer) Transcribe([]float32, string) (string, error) { return f.text, nil }
func (f *fakeRecognizer) Close()                                        { f.closed = true }
func (f *fakeRecognizer) Name() string                                  { return "fake" }

func TestFactoryTranscribeRequiresModel(t *testing.T) {
	t.Parallel()

	f := NewFactory(nil)
	_, err := f.Transcribe(nil, "en")
	if !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Transcribe without model = %v, want ErrNotLoaded", err)
	}
	// Сообщение показывается в англоязычном поле ввода.
	if got := err.Error(); got != "speech recognition model is still loading" {
		t.Errorf("ErrNotLoaded = %q", got)
	}
}

func TestFactorySetReplacesAndCloses(t *testing.T) {
	t.Parallel()

	f := NewFactory(nil)
	first := &fakeRecognizer{text: "one"}
	second := &fakeRecognizer{text: "two"}

	f.set(first, "a")
	f.set(second, "b")

	if !first.closed {
		t.Error("previous recognizer was not closed")
	}
	if got, _ := f.Transcribe(nil, ""); got != "two" {
		t.Errorf("Transcribe = %q, want two", got)
	}
	if f.CurrentModelID() != "b" || !f.IsLoaded() {
		t.Errorf("CurrentModelID = %q, IsLoaded = %v", f.CurrentModelID(), f.IsLoaded())
	}

	f.Close()
	if !second.closed || f.IsLoaded() {
		t.Error("Close should release the current recognizer")
	}
}

// busyRecognizer counts overlapping Transcribe calls and use after Close.
type busyRecognizer struct {
	active    atomic.Int32
	overlap   atomic.Bool
	closed    atomic.Bool
	afterDone atomic.Bool
}

func (b *busyRecognizer) Transcribe([]float32, string) (string, error) {
	if b.closed.Load() {
		b.afterDone.Store(true)
	}
	if b.active.Add(1) > 1 {
		b.overlap.Store(true)
	}
	time.Sleep(5 * time.Millisecond)
	b.active.Add(-1)
	return "ok", nil
}

func (b *busyRecognizer) Close() {
	if b.active.Load() > 0 {
		b.afterDone.Store(true)
	}
	b.closed.Store(true)
}

func (b *busyRecognizer) Name() string { return "busy" }

func TestFactorySerializesEngineCalls(t *testing.T) {
	t.Parallel()

	f := NewFactory(nil)
	rec := &busyRecognizer{}
	f.set(rec, "busy")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Transcribe(nil, "en")
		}()
	}
	time.Sleep(2 * time.Millisecond)
	f.Close()
	wg.Wait()

	if rec.overlap.Load() {
		t.Error("Transcribe ran concurrently on one engine")
	}
	if rec.afterDone.Load() {
		t.Error("engine was closed while transcribing or used after Close")
	}
}

func TestFactoryCreateMissingModel(t *testing.T) {
	t.Parallel()

	m, err := models.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	f := NewFactory(m)

	if _, err := f.Create("unknown"); err == nil {
		t.Error("Create(unknown) should fail")
	}
	if err := f.Load(models.DefaultModelID()); err == nil {
		t.Error("Load should fail when the model is not downloaded")
	}
}

func TestCleanTranscript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		segments []string
		want     string
	}{
		{nil, ""},
		{[]string{" [BLANK_AUDIO] "}, ""},
		{[]string{" Hello", " world. "}, "Hello world."},
		{[]string{"(wind blowing)", " hi"}, "hi"},
	}
	for _, tt := range tests {
		if got := cleanTranscript(tt.segments); got != tt.want {
			t.Errorf("cleanTranscript(%q) = %q, want %q", tt.segments, got, tt.want)
		}
	}
}

func TestParseVoskResult(t *testing.T) {
	t.Parallel()

	got, err := parseVoskResult(`{"text" : "hello there"}`)
	if err != nil || got != "hello there" {
		t.Fatalf("parseVoskResult = %q, %v", got, err)
	}
	if _, err := parseVoskResult("oops"); err == nil {
		t.Fatal("malformed JSON should fail")
	}
}

func TestPCMBytesLittleEndian(t *testing.T) {
	t.Parallel()

	got := pcmBytes([]int16{1, -2})
	want := []byte{0x01, 0x00, 0xfe, 0xff}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pcmBytes = %v, want %v", got, want)
		}
	}
}
