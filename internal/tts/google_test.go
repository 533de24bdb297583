package tts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"
)

func TestChunkText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{"empty", "   ", 10, nil},
		{"fits", "hola mundo", 10, []string{"hola mundo"}},
		{"wraps", "uno dos tres cuatro", 8, []string{"uno dos", "tres", "cuatro"}},
		{"long word", "abcdefghij xy", 4, []string{"abcd", "efgh", "ij", "xy"}},
		{"runes", "привет мир", 6, []string{"привет", "мир"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := chunkText(tt.text, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("chunkText = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
				if n := utf8.RuneCountInString(got[i]); n > tt.max {
					t.Errorf("chunk %d has %d runes, max %d", i, n, tt.max)
				}
			}
		})
	}
}

func TestGoogleSynthesizeConcatenatesChunks(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		seen []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/translate_tts" || q.Get("tl") != "es" || q.Get("client") != "tw-ob" {
			t.Errorf("unexpected request %s", r.URL)
		}
		mu.Lock()
		seen = append(seen, q.Get("idx")+"/"+q.Get("total"))
		mu.Unlock()
		w.Write([]byte("[" + q.Get("idx") + "]"))
	}))
	defer srv.Close()

	g := NewGoogle(Config{URL: srv.URL})
	text := strings.Repeat("palabra ", 30) // 240 runes
	data, err := g.Synthesize(context.Background(), text, "es")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(data) != "[0][1][2]" {
		t.Fatalf("audio = %q, want [0][1][2]", data)
	}
	if len(seen) != 3 || seen[2] != "2/3" {
		t.Fatalf("requests = %v", seen)
	}
}

func TestGoogleSynthesizeErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad language", http.StatusBadRequest)
	}))
	defer srv.Close()

	g := NewGoogle(Config{URL: srv.URL})

	if _, err := g.Synthesize(context.Background(), "", "es"); !errors.Is(err, ErrEmptyText) {
		t.Errorf("empty text: got %v", err)
	}
	_, err := g.Synthesize(context.Background(), "hola", "xx")
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Errorf("bad status: got %v", err)
	}
}
