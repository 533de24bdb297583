// Package icons рисует иконки трея для каждого состояния приложения.
package icons

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log"
	"sync"
)

// Size - сторона иконки в пикселях.
const Size = 64

// Цвета состояний.
var (
	ColorIdle        = color.RGBA{128, 128, 128, 255} // серый
	ColorRecording   = color.RGBA{220, 50, 50, 255}   // красный
	ColorProcessing  = color.RGBA{230, 160, 50, 255}  // оранжевый
	ColorTranslating = color.RGBA{60, 140, 230, 255}  // синий
)

var (
	cacheMu sync.Mutex
	cache   = map[color.RGBA][]byte{}
)

// Idle возвращает PNG иконки ожидания.
func Idle() []byte { return cached(ColorIdle) }

// Recording возвращает PNG иконки записи.
func Recording() []byte { return cached(ColorRecording) }

// Processing возвращает PNG иконки распознавания.
func Processing() []byte { return cached(ColorProcessing) }

// Translating возвращает PNG иконки перевода.
func Translating() []byte { return cached(ColorTranslating) }

func cached(c color.RGBA) []byte {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if data, ok := cache[c]; ok {
		return data
	}
	data, err := Render(c)
	if err != nil {
		log.Printf("Ошибка генерации иконки: %v", err)
		return nil
	}
	cache[c] = data
	return data
}

// Render рисует упрощённый микрофон (круг на ножке) цветом c.
func Render(c color.RGBA) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, Size, Size))

	centerX, centerY := Size/2, Size/2-4
	const radius = 20

	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			dx, dy := x-centerX, y-centerY
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(x, y, c)
			}
		}
	}

	// Ножка
	for y := centerY + radius; y < centerY+radius+10 && y < Size; y++ {
		for x := centerX - 3; x <= centerX+3; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
