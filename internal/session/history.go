package session

import "time"

// Record is one successful translation kept for the current run.
type Record struct {
	ID         string
	Original   string
	Translated string
	Lang       string
	At         time.Time
}

// String renders the history line shown in the window.
func (r Record) String() string {
	return r.Original + " ➝ " + r.Translated
}
