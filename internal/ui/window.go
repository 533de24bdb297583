// Package ui provides the translator main window.
package ui

import (
	"log"
	"strings"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"glossa/internal/i18n"
	"glossa/internal/session"
	"glossa/internal/translate"
	"glossa/internal/waveform"
)

// frameInterval drives animation while a task is running.
const frameInterval = 33 * time.Millisecond

// Controller is the part of session.Controller the window drives.
type Controller interface {
	Snapshot() session.State
	SetInput(text string)
	SelectLanguage(code string) error
	StartRecording()
	Translate()
	SpeakTranslation()
	CopyTranslation()
}

// Window is the main translator window. It can be closed and shown again;
// closing it keeps the application running in the tray.
type Window struct {
	ctrl    Controller
	samples waveform.SampleProvider
	langs   []translate.Language
	theme   *material.Theme
	meter   waveform.Meter

	mu      sync.Mutex
	window  *app.Window
	running bool
	doneCh  chan struct{}

	// Поля ниже принадлежат циклу событий окна.
	input        widget.Editor
	output       widget.Editor
	filter       widget.Editor
	speakBtn     widget.Clickable
	translateBtn widget.Clickable
	replayBtn    widget.Clickable
	copyBtn      widget.Clickable
	langBtns     []widget.Clickable
	langList     widget.List
	historyList  widget.List

	inputVersion uint64
	recording    session.RecordingState
	recordStart  time.Time
}

// New creates the window. samples may be nil.
func New(ctrl Controller, catalog *translate.Catalog, samples waveform.SampleProvider) *Window {
	th := material.NewTheme()
	th.Palette = material.Palette{
		Bg:         colorBG,
		Fg:         colorText,
		ContrastBg: colorAccent,
		ContrastFg: colorText,
	}

	w := &Window{
		ctrl:    ctrl,
		samples: samples,
		langs:   catalog.Languages(),
		theme:   th,
		meter:   waveform.Meter{Theme: th, Palette: waveform.DefaultPalette()},
	}
	w.input = widget.Editor{SingleLine: true, Submit: true}
	w.output = widget.Editor{ReadOnly: true}
	w.filter = widget.Editor{SingleLine: true}
	w.langBtns = make([]widget.Clickable, len(w.langs))
	w.langList.Axis = layout.Vertical
	w.historyList.Axis = layout.Vertical
	w.historyList.ScrollToEnd = true

	return w
}

// Show opens the window or raises it if it is already open.
func (w *Window) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		w.window.Perform(system.ActionRaise)
		return
	}

	w.running = true
	w.window = new(app.Window)
	w.doneCh = make(chan struct{})
	go w.runEventLoop(w.window, w.doneCh)
}

// Hide closes the window.
func (w *Window) Hide() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	win, doneCh := w.window, w.doneCh
	w.mu.Unlock()

	win.Perform(system.ActionClose)

	select {
	case <-doneCh:
	case <-time.After(time.Second):
	}
}

// IsVisible returns true if window is currently shown.
func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Invalidate requests a redraw; safe from any goroutine.
func (w *Window) Invalidate() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		w.window.Invalidate()
	}
}

func (w *Window) runEventLoop(win *app.Window, doneCh chan struct{}) {
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(doneCh)
	}()

	win.Option(
		app.Title(i18n.T("window_title")),
		app.Size(unit.Dp(560), unit.Dp(760)),
		app.MinSize(unit.Dp(420), unit.Dp(560)),
	)

	// Новое окно должно показать текущий текст ввода
	w.inputVersion = 0
	w.input.SetText(w.ctrl.Snapshot().Input)

	var ops op.Ops
	for {
		switch e := win.Event().(type) {
		case app.DestroyEvent:
			if e.Err != nil {
				log.Printf("Ошибка окна: %v", e.Err)
			}
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			w.frame(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

// frame applies widget events to the controller, then lays out the latest snapshot.
func (w *Window) frame(gtx layout.Context) {
	s := w.ctrl.Snapshot()

	w.syncInput(s)
	w.handleEvents(gtx)
	w.trackRecording(s, gtx.Now)

	if s.Recording.Active() || s.Translating > 0 {
		gtx.Execute(op.InvalidateCmd{At: gtx.Now.Add(frameInterval)})
	}

	w.layout(gtx, s)
}

// syncInput copies transcripts and messages written by the controller into the editor.
func (w *Window) syncInput(s session.State) {
	if s.InputVersion == w.inputVersion {
		return
	}
	w.inputVersion = s.InputVersion
	if w.input.Text() != s.Input {
		w.input.SetText(s.Input)
	}
}

func (w *Window) handleEvents(gtx layout.Context) {
	for {
		ev, ok := w.input.Update(gtx)
		if !ok {
			break
		}
		switch ev.(type) {
		case widget.ChangeEvent:
			w.ctrl.SetInput(w.input.Text())
		case widget.SubmitEvent:
			w.translate()
		}
	}

	if w.speakBtn.Clicked(gtx) {
		w.ctrl.StartRecording()
	}
	if w.translateBtn.Clicked(gtx) {
		w.translate()
	}
	if w.replayBtn.Clicked(gtx) {
		w.ctrl.SpeakTranslation()
	}
	if w.copyBtn.Clicked(gtx) {
		w.ctrl.CopyTranslation()
	}

	for i := range w.langBtns {
		if w.langBtns[i].Clicked(gtx) {
			if err := w.ctrl.SelectLanguage(w.langs[i].Code); err != nil {
				log.Printf("Ошибка выбора языка: %v", err)
			}
		}
	}
}

// translate sends the editor text first so the controller sees the latest input.
func (w *Window) translate() {
	w.ctrl.SetInput(w.input.Text())
	w.ctrl.Translate()
}

func (w *Window) trackRecording(s session.State, now time.Time) {
	if s.Recording == session.RecordingListening && w.recording != session.RecordingListening {
		w.recordStart = now
	}
	w.recording = s.Recording
}

// filterLanguages returns the indexes of langs whose label contains query.
func filterLanguages(langs []translate.Language, query string) []int {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]int, 0, len(langs))
	for i, l := range langs {
		if query == "" || strings.Contains(strings.ToLower(l.Label()), query) {
			out = append(out, i)
		}
	}
	return out
}
