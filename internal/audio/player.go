package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/hajimehoshi/go-mp3"
)

// mp3 декодер всегда отдаёт 16-bit stereo little-endian.
const (
	playbackChannels = 2
	playbackFrames   = 2048
)

// ErrNoAudio возвращается при попытке воспроизвести пустые данные.
var ErrNoAudio = errors.New("нет аудио для воспроизведения")

// Player воспроизводит MP3 из памяти через устройство вывода по умолчанию.
// Новое воспроизведение прерывает предыдущее.
type Player struct {
	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewPlayer инициализирует аудиоподсистему для вывода.
func NewPlayer() (*Player, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	return &Player{}, nil
}

// Play запускает воспроизведение data и сразу возвращает управление.
func (p *Player) Play(data []byte) error {
	if len(data) == 0 {
		return ErrNoAudio
	}

	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("декодирование MP3: %w", err)
	}

	p.mu.Lock()
	if p.stop != nil {
		close(p.stop)
	}
	stop := make(chan struct{})
	p.stop = stop
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		if err := p.run(dec, dec.SampleRate(), stop); err != nil {
			log.Printf("Ошибка воспроизведения: %v", err)
		}
	}()

	return nil
}

func (p *Player) run(src io.Reader, sampleRate int, stop <-chan struct{}) error {
	out := make([]int16, playbackFrames*playbackChannels)
	raw := make([]byte, len(out)*2)

	stream, err := portaudio.OpenDefaultStream(0, playbackChannels, float64(sampleRate), playbackFrames, out)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return err
	}
	defer stream.Stop()

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		n, err := io.ReadFull(src, raw)
		if n > 0 {
			clear(raw[n:])
			bytesToInt16(out, raw)
			if werr := stream.Write(); werr != nil {
				return werr
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// bytesToInt16 раскладывает little-endian PCM в dst.
func bytesToInt16(dst []int16, src []byte) {
	for i := range dst {
		if 2*i+1 >= len(src) {
			dst[i] = 0
			continue
		}
		dst[i] = int16(binary.LittleEndian.Uint16(src[2*i:]))
	}
}

// Close останавливает воспроизведение и освобождает аудиоподсистему.
func (p *Player) Close() {
	p.mu.Lock()
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
	portaudio.Terminate()
}
