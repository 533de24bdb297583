package ui

import (
	"testing"
	"time"

	"glossa/internal/session"
	"glossa/internal/translate"
)

func TestFilterLanguages(t *testing.T) {
	t.Parallel()

	langs := []translate.Language{
		{Code: "es", Name: "spanish"},
		{Code: "fr", Name: "french"},
		{Code: "sv", Name: "swedish"},
	}

	if got := filterLanguages(langs, ""); len(got) != 3 {
		t.Errorf("empty query = %v, want all", got)
	}
	if got := filterLanguages(langs, " SP "); len(got) != 1 || got[0] != 0 {
		t.Errorf("query sp = %v", got)
	}
	if got := filterLanguages(langs, "(fr)"); len(got) != 1 || got[0] != 1 {
		t.Errorf("query by code = %v", got)
	}
	if got := filterLanguages(langs, "xx"); len(got) != 0 {
		t.Errorf("query xx = %v", got)
	}
}

func TestIsErrorOutput(t *testing.T) {
	t.Parallel()

	for text, want := range map[string]bool{
		"hola":                    false,
		"":                        false,
		session.MsgEmptyInput:     true,
		"Translation Error: boom": true,
	} {
		if got := isErrorOutput(text); got != want {
			t.Errorf("isErrorOutput(%q) = %v", text, got)
		}
	}
}

type stubController struct {
	state session.State
	input []string
}

func (s *stubController) Snapshot() session.State     { return s.state }
func (s *stubController) SetInput(text string)        { s.input = append(s.input, text) }
func (s *stubController) SelectLanguage(string) error { return nil }
func (s *stubController) StartRecording()             {}
func (s *stubController) Translate()                  {}
func (s *stubController) SpeakTranslation()           {}
func (s *stubController) CopyTranslation()            {}

func TestSyncInputFollowsControllerVersion(t *testing.T) {
	t.Parallel()

	ctrl := &stubController{}
	w := New(ctrl, translate.DefaultCatalog(), nil)

	w.input.SetText("typed by user")
	w.syncInput(session.State{Input: "stale", InputVersion: 0})
	if got := w.input.Text(); got != "typed by user" {
		t.Errorf("unchanged version overwrote the editor: %q", got)
	}

	w.syncInput(session.State{Input: "hello", InputVersion: 1})
	if got := w.input.Text(); got != "hello" {
		t.Errorf("editor = %q, want transcript", got)
	}
}

func TestTrackRecordingStart(t *testing.T) {
	t.Parallel()

	w := New(&stubController{}, translate.DefaultCatalog(), nil)
	t0 := time.Unix(100, 0)

	w.trackRecording(session.State{Recording: session.RecordingListening}, t0)
	w.trackRecording(session.State{Recording: session.RecordingListening}, t0.Add(time.Second))
	if !w.recordStart.Equal(t0) {
		t.Errorf("recordStart = %v, want first listening frame", w.recordStart)
	}

	w.trackRecording(session.State{Recording: session.RecordingDone}, t0.Add(2*time.Second))
	w.trackRecording(session.State{Recording: session.RecordingListening}, t0.Add(3*time.Second))
	if !w.recordStart.Equal(t0.Add(3 * time.Second)) {
		t.Errorf("recordStart = %v after a new recording", w.recordStart)
	}
}

func TestDarken(t *testing.T) {
	t.Parallel()

	got := darken(colorAccent, 0.5)
	if got.R != colorAccent.R/2 || got.A != colorAccent.A {
		t.Errorf("darken = %v", got)
	}
}
