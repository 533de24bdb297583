// Package hotkey предоставляет глобальную горячую клавишу записи.
package hotkey

import (
	"log"
	"sync"
	"time"

	"glossa/internal/config"
	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"
)

// debounceInterval защищает от key repeat.
const debounceInterval = 300 * time.Millisecond

// Handler вызывает onPress при нажатии горячей клавиши.
type Handler struct {
	mu      sync.Mutex
	hk      *hotkey.Hotkey
	onPress func()
	current config.HotkeyConfig
	stopCh  chan struct{}
}

// New создаёт обработчик горячей клавиши.
func New(onPress func()) *Handler {
	return &Handler{onPress: onPress}
}

// Register регистрирует горячую клавишу, заменяя предыдущую.
func (h *Handler) Register(cfg config.HotkeyConfig) error {
	log.Printf("Регистрация горячей клавиши: %s", cfg.String())

	if err := h.Unregister(); err != nil {
		log.Printf("Не удалось снять прежнюю горячую клавишу: %v", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	hk := hotkey.New(modifiers(cfg.Modifiers), key(cfg.Key))
	if err := hk.Register(); err != nil {
		log.Printf("Ошибка регистрации: %v", err)
		return err
	}

	h.hk = hk
	h.current = cfg
	h.stopCh = make(chan struct{})

	log.Printf("Горячая клавиша зарегистрирована: %s", cfg.String())
	go h.listen(hk, h.stopCh)
	return nil
}

func (h *Handler) listen(hk *hotkey.Hotkey, stopCh chan struct{}) {
	var last time.Time
	for {
		select {
		case <-stopCh:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}
			now := time.Now()
			if now.Sub(last) < debounceInterval {
				continue
			}
			last = now
			if h.onPress != nil {
				h.onPress()
			}
		case _, ok := <-hk.Keyup():
			if !ok {
				return
			}
		}
	}
}

// Unregister отменяет регистрацию горячей клавиши.
func (h *Handler) Unregister() error {
	h.mu.Lock()
	hk := h.hk
	if h.stopCh != nil {
		close(h.stopCh)
		h.stopCh = nil
	}
	h.hk = nil
	h.mu.Unlock()

	if hk == nil {
		return nil
	}

	// Unregister может зависнуть на некоторых оконных менеджерах
	done := make(chan error, 1)
	go func() { done <- hk.Unregister() }()
	select {
	case err := <-done:
		return err
	case <-time.After(500 * time.Millisecond):
		log.Println("Hotkey unregister timeout")
		return nil
	}
}

// Current возвращает текущую зарегистрированную горячую клавишу.
func (h *Handler) Current() config.HotkeyConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// RunOnMainThread запускает функцию в главном потоке (требование для macOS).
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

func modifiers(mods []config.Modifier) []hotkey.Modifier {
	out := make([]hotkey.Modifier, 0, len(mods))
	for _, m := range mods {
		if mod, ok := modifierMap[m]; ok {
			out = append(out, mod)
		}
	}
	return out
}

func key(k config.Key) hotkey.Key {
	if hk, ok := keyMap[k]; ok {
		return hk
	}
	return hotkey.KeySpace
}

// modifierMap определён в modifiers_<os>.go.

var keyMap = map[config.Key]hotkey.Key{
	config.KeySpace:  hotkey.KeySpace,
	config.KeyReturn: hotkey.KeyReturn,
	config.KeyT:      hotkey.KeyT,
	config.KeyR:      hotkey.KeyR,
	config.KeyF9:     hotkey.KeyF9,
	config.KeyF10:    hotkey.KeyF10,
	config.KeyF11:    hotkey.KeyF11,
	config.KeyF12:    hotkey.KeyF12,
}
