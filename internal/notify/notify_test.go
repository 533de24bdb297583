package notify

import (
	"strings"
	"testing"
	"time"
)

type sent struct{ title, message string }

func capture(t *testing.T) chan sent {
	t.Helper()

	got := make(chan sent, queueSize)
	prev := send
	send = func(title, message string) error {
		got <- sent{title, message}
		return nil
	}
	t.Cleanup(func() { send = prev })
	return got
}

func next(t *testing.T, got <-chan sent) sent {
	t.Helper()

	select {
	case n := <-got:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("notification not delivered")
		return sent{}
	}
}

func TestErrorNotification(t *testing.T) {
	got := capture(t)

	New(true).Error("Translation Error: timeout")

	if n := next(t, got); n.title != "Glossa: Error" || n.message != "Translation Error: timeout" {
		t.Errorf("notification = %+v", n)
	}
}

func TestDisabledNotifierIsSilent(t *testing.T) {
	got := capture(t)

	n := New(false)
	n.Error("boom")
	n.SetEnabled(true)
	n.Ready()

	if first := next(t, got); first.title != "Glossa" {
		t.Errorf("first notification = %+v", first)
	}
	select {
	case extra := <-got:
		t.Errorf("unexpected notification %+v", extra)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestLongMessageIsTruncated(t *testing.T) {
	got := capture(t)

	New(true).Translated(strings.Repeat("я", 150))

	msg := next(t, got).message
	if !strings.HasSuffix(msg, "...") || len([]rune(msg)) != maxMessage+3 {
		t.Errorf("message has %d runes", len([]rune(msg)))
	}
}

func TestSlowDeliveryDoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	delivered := make(chan string, queueSize+8)
	prev := send
	send = func(_, message string) error {
		<-release
		delivered <- message
		return nil
	}
	t.Cleanup(func() { send = prev })

	n := New(true)
	returned := make(chan struct{})
	go func() {
		for i := 0; i < queueSize+4; i++ {
			n.Error("boom")
		}
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Error blocked on a stalled notification backend")
	}

	close(release)
	if msg := <-delivered; msg != "boom" {
		t.Errorf("delivered %q", msg)
	}
}
