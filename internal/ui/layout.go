package ui

import (
	"image"
	"image/color"
	"strings"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"glossa/internal/i18n"
	"glossa/internal/session"
)

var (
	colorBG       = color.NRGBA{R: 30, G: 30, B: 34, A: 255}
	colorPanel    = color.NRGBA{R: 45, G: 45, B: 50, A: 255}
	colorText     = color.NRGBA{R: 240, G: 240, B: 245, A: 255}
	colorTextDim  = color.NRGBA{R: 140, G: 140, B: 150, A: 255}
	colorAccent   = color.NRGBA{R: 88, G: 166, B: 255, A: 255}
	colorSuccess  = color.NRGBA{R: 80, G: 200, B: 120, A: 255}
	colorSelected = color.NRGBA{R: 60, G: 100, B: 160, A: 255}
	colorError    = color.NRGBA{R: 255, G: 110, B: 110, A: 255}
)

type (
	C = layout.Context
	D = layout.Dimensions
)

func (w *Window) layout(gtx C, s session.State) D {
	paint.FillShape(gtx.Ops, colorBG, clip.Rect{Max: gtx.Constraints.Max}.Op())

	gap := layout.Rigid(layout.Spacer{Height: unit.Dp(10)}.Layout)

	return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				lbl := material.H6(w.theme, i18n.T("window_title"))
				lbl.Font.Weight = font.Bold
				return lbl.Layout(gtx)
			}),
			gap,
			layout.Rigid(w.caption(i18n.T("window_prompt"))),
			layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
			layout.Rigid(func(gtx C) D { return w.layoutInputRow(gtx, s) }),
			gap,
			layout.Rigid(func(gtx C) D { return w.layoutStatus(gtx, s) }),
			gap,
			layout.Rigid(func(gtx C) D { return w.layoutLanguages(gtx, s) }),
			gap,
			layout.Rigid(func(gtx C) D {
				return w.button(gtx, &w.translateBtn, i18n.T("window_translate"), colorAccent, true)
			}),
			gap,
			layout.Rigid(w.caption(i18n.T("window_output"))),
			layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
			layout.Rigid(func(gtx C) D { return w.layoutOutput(gtx, s) }),
			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
			layout.Rigid(func(gtx C) D { return w.layoutOutputActions(gtx, s) }),
			gap,
			layout.Rigid(w.caption(i18n.T("window_history"))),
			layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
			layout.Flexed(1, func(gtx C) D { return w.layoutHistory(gtx, s) }),
		)
	})
}

func (w *Window) caption(text string) layout.Widget {
	return func(gtx C) D {
		lbl := material.Body2(w.theme, text)
		lbl.Color = colorTextDim
		return lbl.Layout(gtx)
	}
}

func (w *Window) layoutInputRow(gtx C, s session.State) D {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return w.panel(gtx, func(gtx C) D {
				ed := material.Editor(w.theme, &w.input, i18n.T("window_prompt"))
				ed.HintColor = colorTextDim
				return ed.Layout(gtx)
			})
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx C) D {
			return w.button(gtx, &w.speakBtn, i18n.T("window_speak"), colorSuccess, !s.Recording.Active())
		}),
	)
}

func (w *Window) layoutStatus(gtx C, s session.State) D {
	gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(72))
	gtx.Constraints.Max.Y = gtx.Constraints.Min.Y

	switch {
	case s.Recording == session.RecordingListening:
		var samples []float32
		if w.samples != nil {
			samples = w.samples.GetSamples()
		}
		return w.meter.Layout(gtx, s.Status, samples, w.recordStart)
	case s.Recording == session.RecordingTranscribing:
		return w.meter.Busy(gtx, s.Status)
	case s.Translating > 0:
		return w.meter.Busy(gtx, i18n.T("window_translating"))
	default:
		return D{Size: image.Pt(gtx.Constraints.Max.X, gtx.Constraints.Min.Y)}
	}
}

func (w *Window) layoutLanguages(gtx C, s session.State) D {
	visible := filterLanguages(w.langs, w.filter.Text())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(w.caption(i18n.T("window_target"))),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Flexed(1, func(gtx C) D {
					return w.panel(gtx, func(gtx C) D {
						ed := material.Editor(w.theme, &w.filter, i18n.T("window_filter"))
						ed.HintColor = colorTextDim
						ed.TextSize = unit.Sp(13)
						return ed.Layout(gtx)
					})
				}),
			)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Max.Y = gtx.Dp(unit.Dp(132))
			gtx.Constraints.Min.Y = gtx.Constraints.Max.Y
			return w.fill(gtx, colorPanel, func(gtx C) D {
				return material.List(w.theme, &w.langList).Layout(gtx, len(visible), func(gtx C, i int) D {
					idx := visible[i]
					return w.languageItem(gtx, idx, w.langs[idx].Code == s.Language)
				})
			})
		}),
	)
}

func (w *Window) languageItem(gtx C, idx int, selected bool) D {
	btn := &w.langBtns[idx]
	return btn.Layout(gtx, func(gtx C) D {
		macro := op.Record(gtx.Ops)
		dims := layout.Inset{
			Top: unit.Dp(5), Bottom: unit.Dp(5),
			Left: unit.Dp(10), Right: unit.Dp(10),
		}.Layout(gtx, func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			lbl := material.Body1(w.theme, w.langs[idx].Label())
			if selected {
				lbl.Font.Weight = font.Bold
			}
			return lbl.Layout(gtx)
		})
		call := macro.Stop()

		switch {
		case selected:
			paint.FillShape(gtx.Ops, colorSelected, clip.Rect{Max: dims.Size}.Op())
		case btn.Hovered():
			paint.FillShape(gtx.Ops, colorBG, clip.Rect{Max: dims.Size}.Op())
		}
		call.Add(gtx.Ops)
		return dims
	})
}

func (w *Window) layoutOutput(gtx C, s session.State) D {
	if w.output.Text() != s.Output {
		w.output.SetText(s.Output)
	}

	gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(64))
	return w.panel(gtx, func(gtx C) D {
		ed := material.Editor(w.theme, &w.output, "")
		ed.TextSize = unit.Sp(16)
		if isErrorOutput(s.Output) {
			ed.Color = colorError
		}
		return ed.Layout(gtx)
	})
}

// isErrorOutput reports whether the output field holds a message rather than a translation.
func isErrorOutput(text string) bool {
	return text == session.MsgEmptyInput || strings.HasPrefix(text, session.TranslationErrorPrefix)
}

func (w *Window) layoutOutputActions(gtx C, s session.State) D {
	hasOutput := s.Output != "" && !isErrorOutput(s.Output)
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return w.button(gtx, &w.replayBtn, i18n.T("window_speak_output"), colorAccent, hasOutput)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Flexed(1, func(gtx C) D {
			return w.button(gtx, &w.copyBtn, i18n.T("window_copy"), colorPanel, s.Output != "")
		}),
	)
}

func (w *Window) layoutHistory(gtx C, s session.State) D {
	return w.fill(gtx, colorPanel, func(gtx C) D {
		if len(s.History) == 0 {
			return layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx C) D {
				lbl := material.Body2(w.theme, i18n.T("window_history_empty"))
				lbl.Color = colorTextDim
				return lbl.Layout(gtx)
			})
		}
		return material.List(w.theme, &w.historyList).Layout(gtx, len(s.History), func(gtx C, i int) D {
			return layout.Inset{
				Top: unit.Dp(4), Bottom: unit.Dp(4),
				Left: unit.Dp(10), Right: unit.Dp(10),
			}.Layout(gtx, material.Body1(w.theme, s.History[i].String()).Layout)
		})
	})
}

// panel draws content on a rounded panel sized to the content.
func (w *Window) panel(gtx C, content layout.Widget) D {
	macro := op.Record(gtx.Ops)
	dims := layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx C) D {
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		return content(gtx)
	})
	call := macro.Stop()

	rr := gtx.Dp(unit.Dp(8))
	paint.FillShape(gtx.Ops, colorPanel, clip.UniformRRect(image.Rectangle{Max: dims.Size}, rr).Op(gtx.Ops))
	call.Add(gtx.Ops)
	return dims
}

// fill draws a rounded background over the whole constraint and clips content to it.
func (w *Window) fill(gtx C, bg color.NRGBA, content layout.Widget) D {
	size := gtx.Constraints.Max
	rr := gtx.Dp(unit.Dp(8))
	shape := clip.UniformRRect(image.Rectangle{Max: size}, rr)

	paint.FillShape(gtx.Ops, bg, shape.Op(gtx.Ops))
	defer shape.Push(gtx.Ops).Pop()

	gtx.Constraints.Min = size
	content(gtx)
	return D{Size: size}
}

func (w *Window) button(gtx C, btn *widget.Clickable, label string, bg color.NRGBA, enabled bool) D {
	textColor := colorText
	if !enabled {
		textColor = colorTextDim
		bg = colorPanel
		gtx = gtx.Disabled()
	}

	macro := op.Record(gtx.Ops)
	dims := material.Clickable(gtx, btn, func(gtx C) D {
		return layout.Inset{
			Top: unit.Dp(10), Bottom: unit.Dp(10),
			Left: unit.Dp(18), Right: unit.Dp(18),
		}.Layout(gtx, func(gtx C) D {
			return layout.Center.Layout(gtx, func(gtx C) D {
				lbl := material.Label(w.theme, unit.Sp(14), label)
				lbl.Color = textColor
				lbl.Font.Weight = font.Medium
				return lbl.Layout(gtx)
			})
		})
	})
	call := macro.Stop()

	if enabled && btn.Hovered() {
		bg = darken(bg, 0.85)
	}
	rr := gtx.Dp(unit.Dp(8))
	paint.FillShape(gtx.Ops, bg, clip.UniformRRect(image.Rectangle{Max: dims.Size}, rr).Op(gtx.Ops))
	call.Add(gtx.Ops)
	return dims
}

func darken(c color.NRGBA, k float32) color.NRGBA {
	return color.NRGBA{
		R: uint8(float32(c.R) * k),
		G: uint8(float32(c.G) * k),
		B: uint8(float32(c.B) * k),
		A: c.A,
	}
}
