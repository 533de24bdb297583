// Package startup provides the model loading window shown while the app starts.
package startup

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"glossa/internal/i18n"
	"glossa/internal/models"
	"glossa/internal/waveform"
)

var (
	colorBG     = color.NRGBA{R: 30, G: 30, B: 34, A: 255}
	colorPanel  = color.NRGBA{R: 45, G: 45, B: 50, A: 255}
	colorText   = color.NRGBA{R: 240, G: 240, B: 245, A: 255}
	colorDim    = color.NRGBA{R: 140, G: 140, B: 150, A: 255}
	colorAccent = color.NRGBA{R: 88, G: 166, B: 255, A: 255}
	colorFill   = color.NRGBA{R: 255, G: 180, B: 0, A: 255}
)

// Window represents the startup loading window.
type Window struct {
	mu      sync.Mutex
	window  *app.Window
	theme   *material.Theme
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	status    string
	substatus string
	// progress is in [0, 1]; negative shows the spinner instead.
	progress float64
}

// New creates a new startup window.
func New() *Window {
	th := material.NewTheme()
	th.Palette.Fg = colorText

	return &Window{
		theme:    th,
		status:   i18n.T("startup_status"),
		progress: -1,
	}
}

// Show displays the loading window.
func (w *Window) Show() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.window = new(app.Window)
	stopCh := w.stopCh
	w.mu.Unlock()

	go w.runEventLoop(stopCh)
}

// Hide closes the loading window.
func (w *Window) Hide() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	stopCh := w.stopCh
	doneCh := w.doneCh
	w.stopCh = nil
	w.mu.Unlock()

	close(stopCh)

	select {
	case <-doneCh:
	case <-time.After(time.Second):
	}
}

// SetStatus updates the loading status text and switches back to the spinner.
func (w *Window) SetStatus(status, substatus string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = status
	w.substatus = substatus
	w.progress = -1
}

// SetProgress shows a download progress bar.
func (w *Window) SetProgress(p models.Progress) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.progress = Fraction(p)
	w.substatus = ProgressText(p)
}

// Track mirrors a download progress channel until it closes.
func (w *Window) Track(progress <-chan models.Progress) {
	for p := range progress {
		w.SetProgress(p)
	}
}

// Fraction returns the completed share of a download, or -1 when the size is unknown.
func Fraction(p models.Progress) float64 {
	if p.Done {
		return 1
	}
	if p.Total <= 0 {
		return -1
	}
	f := float64(p.Downloaded) / float64(p.Total)
	if f > 1 {
		f = 1
	}
	return f
}

// ProgressText renders a download line such as "12 MB / 142 MB".
func ProgressText(p models.Progress) string {
	if p.Total <= 0 {
		return FormatSize(p.Downloaded)
	}
	return fmt.Sprintf("%s / %s", FormatSize(p.Downloaded), FormatSize(p.Total))
}

// FormatSize renders a byte count with a binary unit.
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.0f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func (w *Window) snapshot() (string, string, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status, w.substatus, w.progress
}

func (w *Window) runEventLoop(stopCh chan struct{}) {
	defer close(w.doneCh)

	win := w.window
	win.Option(
		app.Title(i18n.T("app_name")),
		app.Size(unit.Dp(320), unit.Dp(160)),
		app.MinSize(unit.Dp(320), unit.Dp(160)),
		app.MaxSize(unit.Dp(320), unit.Dp(160)),
	)

	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				win.Perform(system.ActionClose)
				return
			case <-ticker.C:
				win.Invalidate()
			}
		}
	}()

	var ops op.Ops
	for {
		switch e := win.Event().(type) {
		case app.DestroyEvent:
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			w.draw(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (w *Window) draw(gtx layout.Context) layout.Dimensions {
	paint.FillShape(gtx.Ops, colorBG, clip.Rect{Max: gtx.Constraints.Max}.Op())

	status, substatus, progress := w.snapshot()

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if progress < 0 {
					return waveform.Spinner(gtx, colorAccent, unit.Dp(40))
				}
				gtx.Constraints.Min.X = gtx.Dp(unit.Dp(240))
				gtx.Constraints.Max.X = gtx.Constraints.Min.X
				return progressBar(gtx, progress)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Label(w.theme, unit.Sp(14), status)
				lbl.Font.Weight = font.Medium
				lbl.Alignment = text.Middle
				return lbl.Layout(gtx)
			}),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if substatus == "" {
					return layout.Dimensions{}
				}
				return layout.Inset{Top: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Label(w.theme, unit.Sp(11), substatus)
					lbl.Color = colorDim
					lbl.Alignment = text.Middle
					return lbl.Layout(gtx)
				})
			}),
		)
	})
}

func progressBar(gtx layout.Context, progress float64) layout.Dimensions {
	height := gtx.Dp(unit.Dp(6))
	width := gtx.Constraints.Max.X
	rr := height / 2

	paint.FillShape(gtx.Ops, colorPanel, clip.UniformRRect(image.Rectangle{Max: image.Pt(width, height)}, rr).Op(gtx.Ops))
	if fill := int(float64(width) * progress); fill > 0 {
		paint.FillShape(gtx.Ops, colorFill, clip.UniformRRect(image.Rectangle{Max: image.Pt(fill, height)}, rr).Op(gtx.Ops))
	}

	return layout.Dimensions{Size: image.Pt(width, height)}
}
