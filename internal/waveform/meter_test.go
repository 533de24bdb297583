package waveform

import (
	"image/color"
	"testing"
	"time"
)

func TestLevel(t *testing.T) {
	t.Parallel()

	if got := Level(nil); got != 0 {
		t.Errorf("Level(nil) = %v", got)
	}

	quiet := make([]float32, 2048)
	for i := range quiet {
		quiet[i] = 0.1
	}
	if got := Level(quiet); got < 0.29 || got > 0.31 {
		t.Errorf("Level(0.1) = %v, want ~0.3", got)
	}

	loud := []float32{1, -1, 1, -1}
	if got := Level(loud); got != 1 {
		t.Errorf("Level(full scale) = %v, want 1", got)
	}
}

func TestLevelUsesTrailingWindow(t *testing.T) {
	t.Parallel()

	samples := make([]float32, levelWindow*2)
	for i := 0; i < levelWindow; i++ {
		samples[i] = 1
	}
	if got := Level(samples); got != 0 {
		t.Errorf("Level = %v, old samples should be ignored", got)
	}
}

func TestFormatElapsed(t *testing.T) {
	t.Parallel()

	tests := map[time.Duration]string{
		-time.Second:                 "0:00",
		0:                            "0:00",
		4900 * time.Millisecond:      "0:04",
		65 * time.Second:             "1:05",
		10*time.Minute + time.Second: "10:01",
	}
	for d, want := range tests {
		if got := FormatElapsed(d); got != want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestBarColor(t *testing.T) {
	t.Parallel()

	normal := color.NRGBA{G: 200, A: 255}
	if barColor(0.2, normal) != normal {
		t.Error("low level should use the normal color")
	}
	if c := barColor(0.5, normal); c.R != 255 || c.G != 180 {
		t.Errorf("medium level color = %v", c)
	}
	if c := barColor(0.9, normal); c.R != 255 || c.G != 80 {
		t.Errorf("high level color = %v", c)
	}
}
