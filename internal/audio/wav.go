package audio

import (
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ToPCM16 конвертирует float32 [-1, 1] в int16 с ограничением диапазона.
func ToPCM16(samples []float32) []int16 {
	pcm := make([]int16, len(samples))
	for i, sample := range samples {
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}
		pcm[i] = int16(sample * math.MaxInt16)
	}
	return pcm
}

// WriteWAV сохраняет mono запись как 16-bit PCM WAV, перезаписывая файл.
func WriteWAV(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("создание %s: %w", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, Channels, 1)

	pcm := ToPCM16(samples)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: Channels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(pcm)),
		SourceBitDepth: 16,
	}
	for i, v := range pcm {
		buf.Data[i] = int(v)
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("запись WAV: %w", err)
	}
	return enc.Close()
}
