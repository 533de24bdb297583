// Package session owns the translator window state. A single loop goroutine
// applies every change; background tasks report back through channels and
// readers see immutable snapshots.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Сообщения, которые видит пользователь.
const (
	MsgListening           = "Listening... Speak now!"
	MsgTranscribing        = "Transcribing..."
	MsgNotUnderstood       = "Could not understand speech."
	MsgEmptyInput          = "Please enter or speak text!"
	RecognitionErrorPrefix = "Error: "
	TranslationErrorPrefix = "Translation Error: "
)

// ErrUnknownLanguage is returned by SelectLanguage for codes outside the catalog.
var ErrUnknownLanguage = errors.New("unknown target language")

const closeTimeout = 2 * time.Second

// State is an immutable view of the window model.
type State struct {
	Input     string
	Output    string
	Status    string
	Language  string
	Recording RecordingState
	// Translating counts translation tasks still in flight.
	Translating int
	History     []Record

	// InputVersion changes whenever the controller itself rewrites Input,
	// so an editor can tell its own edits from transcripts.
	InputVersion uint64
}

// Config collects the collaborators and limits of a Controller.
type Config struct {
	Capturer    Capturer
	Transcriber Transcriber
	Translator  Translator
	Synthesizer Synthesizer
	Player      Player
	Clipboard   Clipboard
	Notifier    Notifier
	Languages   LanguageSet

	Language            string
	RecognitionLanguage string
	RecordDuration      time.Duration
	RecognitionTimeout  time.Duration
	TranslationTimeout  time.Duration
	SynthesisTimeout    time.Duration

	// Archive, if set, receives every raw capture.
	Archive func(samples []float32) error
	// LanguageChanged is called on the loop after a successful SelectLanguage.
	LanguageChanged func(code string)
}

// Controller is the window model. All methods are safe for concurrent use.
type Controller struct {
	cfg Config

	ctx     context.Context
	cancel  context.CancelFunc
	actions chan func()
	done    chan struct{}
	wg      sync.WaitGroup

	// Поля ниже принадлежат циклу.
	state    State
	history  []Record
	outputOK bool
	dirty    bool

	snap atomic.Pointer[State]

	mu        sync.Mutex
	observers []func(State)

	closeOnce sync.Once
}

// New validates cfg and starts the controller loop.
func New(cfg Config) (*Controller, error) {
	if cfg.Capturer == nil || cfg.Transcriber == nil || cfg.Translator == nil {
		return nil, errors.New("capturer, transcriber and translator are required")
	}
	if cfg.Languages != nil {
		code, ok := cfg.Languages.Canonical(cfg.Language)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, cfg.Language)
		}
		cfg.Language = code
	}
	if cfg.RecordDuration <= 0 {
		cfg.RecordDuration = 5 * time.Second
	}
	if cfg.RecognitionTimeout <= 0 {
		cfg.RecognitionTimeout = 60 * time.Second
	}
	if cfg.TranslationTimeout <= 0 {
		cfg.TranslationTimeout = 20 * time.Second
	}
	if cfg.SynthesisTimeout <= 0 {
		cfg.SynthesisTimeout = 20 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
		actions: make(chan func(), 64),
		done:    make(chan struct{}),
		state:   State{Language: cfg.Language},
	}
	initial := c.state
	c.snap.Store(&initial)

	go c.run()
	return c, nil
}

func (c *Controller) run() {
	defer close(c.done)

	for {
		select {
		case fn := <-c.actions:
			fn()
			if c.dirty {
				c.publish()
			}
		case <-c.ctx.Done():
			return
		}
	}
}

// post queues fn for the loop. After Close it is dropped.
func (c *Controller) post(fn func()) {
	select {
	case c.actions <- fn:
	case <-c.ctx.Done():
	}
}

func (c *Controller) publish() {
	c.dirty = false
	s := c.state
	s.History = c.history[:len(c.history):len(c.history)]
	c.snap.Store(&s)

	c.mu.Lock()
	observers := append([]func(State){}, c.observers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(s)
	}
}

// forward relays task events to the loop in order.
func forward[E any](c *Controller, events <-chan E, handle func(E)) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for ev := range events {
			c.post(func() { handle(ev) })
		}
	}()
}

// Snapshot returns the latest published state.
func (c *Controller) Snapshot() State {
	return *c.snap.Load()
}

// OnChange registers fn to run on the loop after every state change.
// fn must not block.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// SetInput replaces the input text with what the user typed.
func (c *Controller) SetInput(text string) {
	c.post(func() {
		if c.state.Input == text {
			return
		}
		c.state.Input = text
		c.dirty = true
	})
}

// SelectLanguage changes the target language for later translations.
func (c *Controller) SelectLanguage(code string) error {
	if c.cfg.Languages != nil {
		canonical, ok := c.cfg.Languages.Canonical(code)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
		}
		code = canonical
	}
	c.post(func() {
		if c.state.Language == code {
			return
		}
		c.state.Language = code
		c.dirty = true
		log.Printf("Язык перевода: %s", code)
		if c.cfg.LanguageChanged != nil {
			c.cfg.LanguageChanged(code)
		}
	})
	return nil
}

// StartRecording begins a capture unless one is already running.
func (c *Controller) StartRecording() {
	c.post(c.startRecording)
}

// Translate translates the current input.
func (c *Controller) Translate() {
	c.post(c.translate)
}

// SpeakTranslation replays the current output if it is a translation.
func (c *Controller) SpeakTranslation() {
	c.post(func() {
		if !c.outputOK || c.state.Output == "" {
			log.Println("Нечего озвучивать")
			return
		}
		c.speak(c.state.Output, c.state.Language)
	})
}

// CopyTranslation puts the current output on the clipboard.
func (c *Controller) CopyTranslation() {
	c.post(func() {
		text := c.state.Output
		if text == "" || c.cfg.Clipboard == nil {
			return
		}
		c.background(func() {
			if err := c.cfg.Clipboard.WriteAll(text); err != nil {
				log.Printf("Ошибка копирования: %v", err)
				c.notify(fmt.Sprintf("Copy failed: %v", err))
			}
		})
	})
}

func (c *Controller) startRecording() {
	if c.state.Recording.Active() {
		log.Println("Запись уже идёт, повторный запуск пропущен")
		return
	}

	task := &RecordingTask{
		ID:          uuid.NewString(),
		Capturer:    c.cfg.Capturer,
		Transcriber: c.cfg.Transcriber,
		Duration:    c.cfg.RecordDuration,
		Language:    c.cfg.RecognitionLanguage,
		Archive:     c.cfg.Archive,
	}

	c.state.Recording = RecordingListening
	c.state.Status = MsgListening
	c.dirty = true

	ctx, cancel := context.WithTimeout(c.ctx, c.cfg.RecordDuration+c.cfg.RecognitionTimeout)
	forward(c, task.Run(ctx), func(ev RecordingEvent) {
		if ev.State == RecordingDone || ev.State == RecordingFailed {
			cancel()
		}
		c.onRecording(ev)
	})
}

func (c *Controller) onRecording(ev RecordingEvent) {
	c.state.Recording = ev.State
	c.dirty = true

	switch ev.State {
	case RecordingListening:
		c.state.Status = MsgListening
	case RecordingTranscribing:
		c.state.Status = MsgTranscribing
	case RecordingFailed:
		c.state.Status = ""
		c.setInput(RecognitionErrorPrefix + ev.Err.Error())
	case RecordingDone:
		c.state.Status = ""
		if ev.Text == "" {
			c.setInput(MsgNotUnderstood)
			return
		}
		c.setInput(ev.Text)
		c.translate()
	}
}

func (c *Controller) setInput(text string) {
	c.state.Input = text
	c.state.InputVersion++
	c.dirty = true
}

func (c *Controller) translate() {
	text := strings.TrimSpace(c.state.Input)
	if text == "" {
		c.state.Output = MsgEmptyInput
		c.outputOK = false
		c.dirty = true
		return
	}

	task := &TranslationTask{
		ID:         uuid.NewString(),
		Translator: c.cfg.Translator,
		Text:       text,
		Lang:       c.state.Language,
	}
	c.state.Translating++
	c.dirty = true

	ctx, cancel := context.WithTimeout(c.ctx, c.cfg.TranslationTimeout)
	forward(c, task.Run(ctx), func(res TranslationResult) {
		cancel()
		c.onTranslated(res)
	})
}

func (c *Controller) onTranslated(res TranslationResult) {
	c.state.Translating--
	c.state.Output = res.Display()
	c.outputOK = res.Err == nil
	c.dirty = true

	if res.Err != nil {
		c.notify(c.state.Output)
		return
	}

	c.history = append(c.history, Record{
		ID:         uuid.NewString(),
		Original:   res.Source,
		Translated: res.Text,
		Lang:       res.Lang,
		At:         time.Now(),
	})
	c.speak(res.Text, res.Lang)
}

// speak synthesizes and plays text off the loop.
func (c *Controller) speak(text, lang string) {
	if c.cfg.Synthesizer == nil || c.cfg.Player == nil {
		return
	}
	c.background(func() {
		ctx, cancel := context.WithTimeout(c.ctx, c.cfg.SynthesisTimeout)
		defer cancel()

		data, err := c.cfg.Synthesizer.Synthesize(ctx, text, lang)
		if err != nil {
			log.Printf("Ошибка синтеза речи: %v", err)
			c.notify(fmt.Sprintf("Speech synthesis failed: %v", err))
			return
		}
		if err := c.cfg.Player.Play(data); err != nil {
			log.Printf("Ошибка воспроизведения: %v", err)
			c.notify(fmt.Sprintf("Playback failed: %v", err))
		}
	})
}

func (c *Controller) background(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

func (c *Controller) notify(msg string) {
	if c.cfg.Notifier != nil {
		c.cfg.Notifier.Error(msg)
	}
}

// Close cancels running tasks and stops the loop. Callers after Close are
// ignored.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		<-c.done

		waited := make(chan struct{})
		go func() {
			c.wg.Wait()
			close(waited)
		}()

		select {
		case <-waited:
		case <-time.After(closeTimeout):
			log.Println("Фоновые задачи не завершились вовремя")
		}
	})
}
