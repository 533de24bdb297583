// Package tray предоставляет системный трей с меню.
package tray

import (
	"github.com/getlantern/systray"
	"glossa/internal/i18n"
	"glossa/internal/icons"
	"glossa/internal/session"
)

// State представляет состояние приложения для отображения в трее.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateProcessing
	StateTranslating
)

// StateOf выбирает состояние трея по снимку окна. Запись важнее перевода.
func StateOf(s session.State) State {
	switch {
	case s.Recording == session.RecordingListening:
		return StateRecording
	case s.Recording == session.RecordingTranscribing:
		return StateProcessing
	case s.Translating > 0:
		return StateTranslating
	default:
		return StateIdle
	}
}

// Callbacks содержит обработчики событий меню.
type Callbacks struct {
	OnShow                func()
	OnSpeak               func()
	OnLanguage            func()
	OnNotificationsToggle func() bool
	OnQuit                func()
}

// Tray управляет иконкой в системном трее.
type Tray struct {
	callbacks     Callbacks
	notifications bool
	state         State

	status   *systray.MenuItem
	show     *systray.MenuItem
	speak    *systray.MenuItem
	language *systray.MenuItem
	notifyOn *systray.MenuItem
	quitBtn  *systray.MenuItem
}

// New создаёт новый Tray.
func New(callbacks Callbacks, notifications bool) *Tray {
	return &Tray{
		callbacks:     callbacks,
		notifications: notifications,
		state:         -1,
	}
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, func() {})
}

func (t *Tray) onReady() {
	systray.SetIcon(icons.Idle())
	systray.SetTitle(i18n.T("app_name"))
	systray.SetTooltip(i18n.T("app_tooltip"))

	t.status = systray.AddMenuItem(i18n.T("tray_ready"), "")
	t.status.Disable()

	systray.AddSeparator()

	t.show = systray.AddMenuItem(i18n.T("tray_show"), i18n.T("tray_show_hint"))
	t.speak = systray.AddMenuItem(i18n.T("tray_speak"), i18n.T("tray_speak_hint"))
	t.language = systray.AddMenuItem(i18n.T("tray_language"), i18n.T("tray_language_hint"))
	t.notifyOn = systray.AddMenuItemCheckbox(i18n.T("tray_notifications"), i18n.T("tray_notifications_hint"), t.notifications)

	systray.AddSeparator()

	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		case <-t.show.ClickedCh:
			call(t.callbacks.OnShow)

		case <-t.speak.ClickedCh:
			call(t.callbacks.OnSpeak)

		case <-t.language.ClickedCh:
			// Диалог zenity блокирует, меню должно оставаться живым
			go call(t.callbacks.OnLanguage)

		case <-t.notifyOn.ClickedCh:
			if t.callbacks.OnNotificationsToggle != nil {
				if t.callbacks.OnNotificationsToggle() {
					t.notifyOn.Check()
				} else {
					t.notifyOn.Uncheck()
				}
			}

		case <-t.quitBtn.ClickedCh:
			call(t.callbacks.OnQuit)
			systray.Quit()
			return
		}
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// SetState обновляет иконку и строку статуса. Повторный вызов с тем же
// состоянием ничего не делает.
func (t *Tray) SetState(state State) {
	if state == t.state {
		return
	}
	t.state = state

	var icon []byte
	var key string
	switch state {
	case StateRecording:
		icon, key = icons.Recording(), "tray_recording"
	case StateProcessing:
		icon, key = icons.Processing(), "tray_processing"
	case StateTranslating:
		icon, key = icons.Translating(), "window_translating"
	default:
		icon, key = icons.Idle(), "tray_ready"
	}

	systray.SetIcon(icon)
	systray.SetTooltip(i18n.T("app_name") + " - " + i18n.T(key))
	if t.status != nil {
		t.status.SetTitle(i18n.T(key))
	}
}

// SetLanguage показывает текущий язык перевода в пункте меню.
func (t *Tray) SetLanguage(label string) {
	if t.language != nil {
		t.language.SetTitle(i18n.T("tray_language") + " " + label)
	}
}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}
