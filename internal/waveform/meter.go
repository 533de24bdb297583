// Package waveform draws the live microphone meter shown while recording.
package waveform

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// levelWindow is the number of trailing samples used for the volume level.
const levelWindow = 1024

// SampleProvider provides audio samples for visualization.
type SampleProvider interface {
	GetSamples() []float32
	IsRecording() bool
}

// Palette holds the meter colors.
type Palette struct {
	Panel  color.NRGBA
	Text   color.NRGBA
	Wave   color.NRGBA
	Pulse  color.NRGBA
	Accent color.NRGBA
}

// DefaultPalette matches the dark window theme.
func DefaultPalette() Palette {
	return Palette{
		Panel:  color.NRGBA{R: 45, G: 45, B: 50, A: 255},
		Text:   color.NRGBA{R: 240, G: 240, B: 245, A: 255},
		Wave:   color.NRGBA{R: 80, G: 200, B: 120, A: 255},
		Pulse:  color.NRGBA{R: 255, G: 100, B: 100, A: 255},
		Accent: color.NRGBA{R: 88, G: 166, B: 255, A: 255},
	}
}

// Meter renders a pulsing dot, the status text, an elapsed-time badge and
// the recent waveform with a volume bar.
type Meter struct {
	Theme   *material.Theme
	Palette Palette
}

// Layout draws the meter for a recording that started at start.
func (m Meter) Layout(gtx layout.Context, status string, samples []float32, start time.Time) layout.Dimensions {
	elapsed := time.Since(start)
	gtx.Constraints.Min.Y = 0

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return drawDot(gtx, elapsed, m.Palette.Pulse)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Label(m.Theme, unit.Sp(14), status)
					lbl.Font.Weight = font.Medium
					return lbl.Layout(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return m.badge(gtx, FormatElapsed(elapsed))
				}),
			)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Max.Y = gtx.Dp(unit.Dp(48))
			gtx.Constraints.Min.Y = gtx.Constraints.Max.Y
			return m.panel(gtx, samples)
		}),
	)
}

// Busy draws a spinner next to status, for stages without audio.
func (m Meter) Busy(gtx layout.Context, status string) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return Spinner(gtx, m.Palette.Accent, unit.Dp(20))
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(10)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Label(m.Theme, unit.Sp(14), status)
			lbl.Font.Weight = font.Medium
			return lbl.Layout(gtx)
		}),
	)
}

// FormatElapsed renders d as m:ss.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Level returns the normalized RMS of the trailing samples in [0, 1].
func Level(samples []float32) float32 {
	if len(samples) == 0 {
		return 0
	}
	if len(samples) > levelWindow {
		samples = samples[len(samples)-levelWindow:]
	}

	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	rms := float32(math.Sqrt(sum / float64(len(samples))))

	// Обычная речь даёт RMS 0.1-0.3
	level := rms * 3
	if level > 1 {
		level = 1
	}
	return level
}

func drawDot(gtx layout.Context, elapsed time.Duration, col color.NRGBA) layout.Dimensions {
	size := gtx.Dp(unit.Dp(10))

	pulse := float32(math.Sin(float64(elapsed.Milliseconds())/200.0)*0.3 + 0.7)
	col.A = uint8(float32(col.A) * pulse)

	circle := clip.Ellipse{Max: image.Pt(size, size)}
	paint.FillShape(gtx.Ops, col, circle.Op(gtx.Ops))

	return layout.Dimensions{Size: image.Pt(size, size)}
}

func (m Meter) badge(gtx layout.Context, text string) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := layout.Inset{
		Top: unit.Dp(3), Bottom: unit.Dp(3),
		Left: unit.Dp(8), Right: unit.Dp(8),
	}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		lbl := material.Label(m.Theme, unit.Sp(12), text)
		lbl.Font.Weight = font.Bold
		return lbl.Layout(gtx)
	})
	call := macro.Stop()

	rr := gtx.Dp(unit.Dp(6))
	paint.FillShape(gtx.Ops, m.Palette.Panel, clip.UniformRRect(image.Rectangle{Max: dims.Size}, rr).Op(gtx.Ops))
	call.Add(gtx.Ops)
	return dims
}

func (m Meter) panel(gtx layout.Context, samples []float32) layout.Dimensions {
	rr := gtx.Dp(unit.Dp(8))
	paint.FillShape(gtx.Ops, m.Palette.Panel, clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Max}, rr).Op(gtx.Ops))

	return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Max.X = gtx.Dp(unit.Dp(14))
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				return drawVolumeBar(gtx, Level(samples), m.Palette.Wave)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return drawWaveform(gtx, samples, m.Palette.Wave)
			}),
		)
	})
}

// barColor picks green, yellow or red by level.
func barColor(level float32, normal color.NRGBA) color.NRGBA {
	switch {
	case level > 0.7:
		return color.NRGBA{R: 255, G: 80, B: 80, A: 255}
	case level > 0.4:
		return color.NRGBA{R: 255, G: 180, B: 0, A: 255}
	default:
		return normal
	}
}

func drawVolumeBar(gtx layout.Context, level float32, normal color.NRGBA) layout.Dimensions {
	width := gtx.Constraints.Max.X
	height := gtx.Constraints.Max.Y
	rr := gtx.Dp(unit.Dp(4))

	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 35, B: 40, A: 255},
		clip.UniformRRect(image.Rectangle{Max: image.Pt(width, height)}, rr).Op(gtx.Ops))

	if barHeight := int(level * float32(height)); barHeight > 0 {
		bar := image.Rect(2, height-barHeight, width-2, height-2)
		paint.FillShape(gtx.Ops, barColor(level, normal), clip.UniformRRect(bar, rr-1).Op(gtx.Ops))
	}

	return layout.Dimensions{Size: image.Pt(width, height)}
}

func drawWaveform(gtx layout.Context, samples []float32, col color.NRGBA) layout.Dimensions {
	width := float32(gtx.Constraints.Max.X)
	height := float32(gtx.Constraints.Max.Y)
	size := image.Pt(int(width), int(height))
	centerY := height / 2

	centerLine := clip.Rect{Min: image.Pt(0, int(centerY)), Max: image.Pt(size.X, int(centerY)+1)}
	paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 60, B: 65, A: 255}, centerLine.Op())

	if len(samples) < 2 || size.X == 0 {
		return layout.Dimensions{Size: size}
	}
	if len(samples) > size.X {
		samples = samples[len(samples)-size.X:]
	}

	var path clip.Path
	path.Begin(gtx.Ops)
	step := width / float32(len(samples))
	for i, s := range samples {
		p := f32.Pt(float32(i)*step, centerY-s*centerY*0.85)
		if i == 0 {
			path.MoveTo(p)
		} else {
			path.LineTo(p)
		}
	}
	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: path.End(), Width: 2}.Op())

	return layout.Dimensions{Size: size}
}

// Spinner draws a ring of fading dots rotating with wall time.
func Spinner(gtx layout.Context, col color.NRGBA, diameter unit.Dp) layout.Dimensions {
	size := gtx.Dp(diameter)
	thickness := gtx.Dp(unit.Dp(3))
	rotation := float64(time.Now().UnixMilli()%800) / 800.0 * 2 * math.Pi

	center := size / 2
	radius := size/2 - thickness
	dotRadius := thickness / 2

	const dots = 12
	for i := 0; i < dots; i++ {
		angle := rotation + float64(i)*2*math.Pi/dots
		x := center + int(float64(radius)*math.Cos(angle))
		y := center + int(float64(radius)*math.Sin(angle))

		c := col
		c.A = uint8(max(40, 255-i*20))
		dot := clip.Ellipse{
			Min: image.Pt(x-dotRadius, y-dotRadius),
			Max: image.Pt(x+dotRadius, y+dotRadius),
		}
		paint.FillShape(gtx.Ops, c, dot.Op(gtx.Ops))
	}

	return layout.Dimensions{Size: image.Pt(size, size)}
}
