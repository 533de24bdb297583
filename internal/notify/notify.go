// Package notify предоставляет системные уведомления.
package notify

import (
	"log"
	"sync/atomic"

	"github.com/gen2brain/beeep"
	"glossa/internal/i18n"
)

const (
	// maxMessage ограничивает длину текста уведомления в рунах.
	maxMessage = 100
	queueSize  = 16
)

// send подменяется в тестах.
var send = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

type message struct{ title, body string }

// Notifier отправляет системные уведомления. Доставка идёт в отдельной
// горутине, методы не блокируют вызывающего.
type Notifier struct {
	enabled atomic.Bool
	queue   chan message
	send    func(title, message string) error
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	n := &Notifier{queue: make(chan message, queueSize), send: send}
	n.enabled.Store(enabled)
	go n.deliver()
	return n
}

func (n *Notifier) deliver() {
	for m := range n.queue {
		if err := n.send(m.title, m.body); err != nil {
			log.Printf("Ошибка уведомления: %v", err)
		}
	}
}

// SetEnabled включает/выключает уведомления.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled.Store(enabled)
}

// Ready сообщает о готовности к работе.
func (n *Notifier) Ready() {
	n.notify("", i18n.T("notify_ready"))
}

// Translated показывает результат перевода, когда окно скрыто.
func (n *Notifier) Translated(line string) {
	n.notify(i18n.T("notify_translated"), line)
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("notify_error"), msg)
}

func (n *Notifier) notify(title, text string) {
	if !n.enabled.Load() {
		return
	}
	if r := []rune(text); len(r) > maxMessage {
		text = string(r[:maxMessage]) + "..."
	}

	name := i18n.T("app_name")
	if title != "" {
		name += ": " + title
	}

	select {
	case n.queue <- message{title: name, body: text}:
	default:
		log.Printf("Очередь уведомлений переполнена, пропущено: %s", text)
	}
}
