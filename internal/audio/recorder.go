// Package audio предоставляет запись с микрофона и воспроизведение синтезированной речи.
package audio

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	// SampleRate - частота дискретизации (требование движков распознавания).
	SampleRate = 16000
	// Channels - количество каналов (mono).
	Channels = 1
	// FramesPerBuffer - размер буфера.
	FramesPerBuffer = 1024
	// MinSamples - минимальное количество сэмплов (200ms при 16kHz).
	// Whisper требует минимум 100ms, добавляем запас.
	MinSamples = SampleRate / 5
)

// ErrAlreadyRecording возвращается при попытке начать вторую запись.
var ErrAlreadyRecording = errors.New("recording already in progress")

// Recorder записывает аудио с микрофона.
type Recorder struct {
	mu      sync.Mutex
	stream  *portaudio.Stream
	buffer  []float32
	samples []float32
	running bool
	done    chan struct{}
}

// NewRecorder создаёт новый Recorder.
func NewRecorder() (*Recorder, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	return &Recorder{
		buffer: make([]float32, FramesPerBuffer),
	}, nil
}

// Capture записывает ровно d аудио и возвращает сэмплы float32 [-1, 1].
// Блокирует вызывающую горутину; отмена ctx прерывает запись.
func (r *Recorder) Capture(ctx context.Context, d time.Duration) ([]float32, error) {
	if err := r.Start(); err != nil {
		return nil, err
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		r.Stop()
		return nil, ctx.Err()
	}

	samples := r.Stop()

	// Обрезаем до запрошенной длительности
	if want := int(d.Seconds() * SampleRate); want >= MinSamples && len(samples) > want {
		samples = samples[:want]
	}

	return samples, nil
}

// Start начинает запись аудио.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return ErrAlreadyRecording
	}

	r.samples = make([]float32, 0, SampleRate*10)
	r.done = make(chan struct{})

	stream, err := portaudio.OpenDefaultStream(
		Channels,        // input channels
		0,               // output channels
		SampleRate,      // sample rate
		FramesPerBuffer, // frames per buffer
		r.buffer,        // buffer
	)
	if err != nil {
		return err
	}

	r.stream = stream
	r.running = true

	if err := stream.Start(); err != nil {
		r.stream.Close()
		r.stream = nil
		r.running = false
		return err
	}

	go r.recordLoop(stream, r.done)

	return nil
}

func (r *Recorder) recordLoop(stream *portaudio.Stream, done chan struct{}) {
	defer close(done)

	for {
		if !r.IsRecording() {
			return
		}

		// Проверяем доступность данных без блокировки
		available, err := stream.AvailableToRead()
		if err != nil || available == 0 {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		if err := stream.Read(); err != nil {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		r.mu.Lock()
		if r.running {
			r.samples = append(r.samples, r.buffer...)
		}
		r.mu.Unlock()
	}
}

// Stop останавливает запись и возвращает записанные сэмплы.
// Если запись слишком короткая, добавляет тишину для Whisper.
func (r *Recorder) Stop() []float32 {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}

	r.running = false
	stream := r.stream
	r.stream = nil
	samples := r.samples
	r.samples = nil
	done := r.done
	r.mu.Unlock()

	// Ждём завершения recordLoop (он проверяет running каждые 10ms)
	if done != nil {
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
	}

	if stream != nil {
		stream.Stop()
		stream.Close()
	}

	return padSilence(samples)
}

// padSilence дополняет запись тишиной до MinSamples.
func padSilence(samples []float32) []float32 {
	if len(samples) < MinSamples {
		padding := make([]float32, MinSamples-len(samples))
		samples = append(samples, padding...)
	}
	return samples
}

// Close освобождает ресурсы.
func (r *Recorder) Close() {
	r.Stop()
	portaudio.Terminate()
}

// IsRecording возвращает true если идёт запись.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// GetSamples возвращает копию текущих сэмплов без остановки записи.
// Используется индикатором уровня в окне.
func (r *Recorder) GetSamples() []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running || len(r.samples) == 0 {
		return nil
	}

	samples := make([]float32, len(r.samples))
	copy(samples, r.samples)
	return samples
}
