package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestToPCM16Clamps(t *testing.T) {
	t.Parallel()

	got := ToPCM16([]float32{0, 1, -1, 2, -2, 0.5})
	want := []int16{0, math.MaxInt16, -math.MaxInt16, math.MaxInt16, -math.MaxInt16, math.MaxInt16 / 2}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestWriteWAVRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test_audio.wav")
	samples := []float32{0, 0.25, -0.25, 1}

	if err := WriteWAV(path, samples, SampleRate); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}
	// Повторная запись перезаписывает файл
	if err := WriteWAV(path, samples[:2], SampleRate); err != nil {
		t.Fatalf("WriteWAV (overwrite): %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if dec.SampleRate != SampleRate || dec.NumChans != 1 || dec.BitDepth != 16 {
		t.Fatalf("format = %d Hz, %d ch, %d bit", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}
	if len(buf.Data) != 2 {
		t.Fatalf("got %d samples, want 2", len(buf.Data))
	}
	if buf.Data[1] != int(ToPCM16([]float32{0.25})[0]) {
		t.Errorf("sample 1 = %d", buf.Data[1])
	}
}

func TestPadSilence(t *testing.T) {
	t.Parallel()

	if got := len(padSilence(make([]float32, 10))); got != MinSamples {
		t.Errorf("short recording padded to %d, want %d", got, MinSamples)
	}
	if got := len(padSilence(make([]float32, MinSamples+5))); got != MinSamples+5 {
		t.Errorf("long recording changed length to %d", got)
	}
}

func TestBytesToInt16(t *testing.T) {
	t.Parallel()

	dst := make([]int16, 3)
	bytesToInt16(dst, []byte{0x01, 0x00, 0xff, 0xff})

	want := []int16{1, -1, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestPlayRejectsEmptyAudio(t *testing.T) {
	t.Parallel()

	var p Player
	if err := p.Play(nil); !errors.Is(err, ErrNoAudio) {
		t.Fatalf("Play(nil) = %v, want ErrNoAudio", err)
	}
}
