package session

import (
	"context"
	"log"
)

// TranslationResult is the single terminal event of a TranslationTask.
type TranslationResult struct {
	Source string
	Lang   string
	Text   string // translated text, empty on failure
	Err    error
}

// Display returns what the output field shows for this result.
func (r TranslationResult) Display() string {
	if r.Err != nil {
		return TranslationErrorPrefix + r.Err.Error()
	}
	return r.Text
}

// TranslationTask runs one translation call on its own goroutine.
type TranslationTask struct {
	ID         string
	Translator Translator
	Text       string
	Lang       string
}

// Run starts the task. The channel yields exactly one result and closes;
// failures are carried in the result, never dropped.
func (t *TranslationTask) Run(ctx context.Context) <-chan TranslationResult {
	results := make(chan TranslationResult, 1)

	go func() {
		defer close(results)

		res := TranslationResult{Source: t.Text, Lang: t.Lang}
		res.Text, res.Err = t.Translator.Translate(ctx, t.Text, t.Lang)
		if res.Err != nil {
			res.Text = ""
			log.Printf("Перевод %s: ошибка: %v", t.ID, res.Err)
		}
		results <- res
	}()

	return results
}
