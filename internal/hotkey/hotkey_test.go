package hotkey

import (
	"testing"

	"glossa/internal/config"
	"golang.design/x/hotkey"
)

func TestKeyFallsBackToSpace(t *testing.T) {
	if got := key(config.KeyF9); got != hotkey.KeyF9 {
		t.Errorf("key(f9) = %v", got)
	}
	if got := key("pause"); got != hotkey.KeySpace {
		t.Errorf("key(pause) = %v, want space", got)
	}
}

func TestModifiersSkipsUnknown(t *testing.T) {
	got := modifiers([]config.Modifier{config.ModCtrl, "hyper", config.ModShift})
	if len(got) != 2 || got[0] != modifierMap[config.ModCtrl] || got[1] != modifierMap[config.ModShift] {
		t.Errorf("modifiers = %v", got)
	}
}

func TestEveryConfigKeyIsMapped(t *testing.T) {
	for _, k := range []config.Key{
		config.KeySpace, config.KeyReturn, config.KeyT, config.KeyR,
		config.KeyF9, config.KeyF10, config.KeyF11, config.KeyF12,
	} {
		if _, ok := keyMap[k]; !ok {
			t.Errorf("key %q has no mapping", k)
		}
	}
}
