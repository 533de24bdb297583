// Package tts synthesizes speech for translated text.
package tts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultURL     = "https://translate.google.com"
	DefaultTimeout = 15 * time.Second

	// maxChunk is the longest text the endpoint accepts in one request.
	maxChunk = 100
)

// ErrEmptyText is returned when there is nothing to speak.
var ErrEmptyText = errors.New("no text to speak")

// Synthesizer turns text into playable audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// Config holds the Google TTS client settings.
type Config struct {
	URL     string
	Timeout time.Duration
}

// Google synthesizes MP3 speech with the Google Translate TTS endpoint.
// Audio stays in memory.
type Google struct {
	baseURL    string
	httpClient *http.Client
}

// NewGoogle creates a Google TTS client.
func NewGoogle(cfg Config) *Google {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	baseURL := cfg.URL
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Google{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Synthesize returns MP3 data for text spoken in lang.
func (g *Google) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	chunks := chunkText(text, maxChunk)
	if len(chunks) == 0 {
		return nil, ErrEmptyText
	}

	start := time.Now()
	var buf bytes.Buffer
	for i, chunk := range chunks {
		if err := g.fetch(ctx, &buf, chunk, lang, i, len(chunks)); err != nil {
			return nil, fmt.Errorf("synthesize chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}

	log.Printf("TTS (%s): %d фрагментов, %d байт за %v", lang, len(chunks), buf.Len(), time.Since(start).Round(time.Millisecond))
	return buf.Bytes(), nil
}

func (g *Google) fetch(ctx context.Context, w io.Writer, chunk, lang string, idx, total int) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("q", chunk)
	q.Set("ttsspeed", "1")
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, "GET", g.baseURL+"/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tts error %d (language %q)", resp.StatusCode, lang)
	}

	_, err = io.Copy(w, resp.Body)
	return err
}

// chunkText packs words into pieces of at most max runes. Words longer
// than max are split.
func chunkText(text string, max int) []string {
	var (
		chunks []string
		cur    strings.Builder
		curLen int
	)

	flush := func() {
		if curLen > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, word := range strings.Fields(text) {
		runes := []rune(word)
		for len(runes) > max {
			flush()
			chunks = append(chunks, string(runes[:max]))
			runes = runes[max:]
		}
		if len(runes) == 0 {
			continue
		}

		n := len(runes)
		if curLen > 0 && curLen+1+n > max {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(string(runes))
		curLen += n
	}
	flush()

	return chunks
}
