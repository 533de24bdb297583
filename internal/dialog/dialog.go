// Package dialog предоставляет нативные диалоги через zenity.
package dialog

import (
	"errors"

	"github.com/ncruces/zenity"
	"glossa/internal/i18n"
	"glossa/internal/translate"
)

// ErrCanceled возвращается, если пользователь закрыл диалог.
var ErrCanceled = zenity.ErrCanceled

// SelectLanguage открывает список языков перевода и возвращает выбранный код.
func SelectLanguage(catalog *translate.Catalog, current string) (string, error) {
	langs := catalog.Languages()
	labels := make([]string, len(langs))
	var selected string
	for i, l := range langs {
		labels[i] = l.Label()
		if l.Code == current {
			selected = labels[i]
		}
	}

	opts := []zenity.Option{
		zenity.Title(i18n.T("dialog_language_title")),
		zenity.Height(480),
	}
	if selected != "" {
		opts = append(opts, zenity.DefaultItems(selected))
	}

	choice, err := zenity.List(i18n.T("dialog_language"), labels, opts...)
	if err != nil {
		return current, err
	}

	code, ok := codeForLabel(langs, choice)
	if !ok {
		return current, errors.New("выбран неизвестный язык: " + choice)
	}
	return code, nil
}

func codeForLabel(langs []translate.Language, label string) (string, bool) {
	for _, l := range langs {
		if l.Label() == label {
			return l.Code, true
		}
	}
	return "", false
}

// ShowInfo показывает информационное сообщение.
func ShowInfo(title, message string) {
	zenity.Info(message, zenity.Title(title))
}

// ShowError показывает сообщение об ошибке.
func ShowError(title, message string) {
	zenity.Error(message, zenity.Title(title), zenity.ErrorIcon)
}
