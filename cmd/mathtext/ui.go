package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mathtext/internal/a11y"
	"github.com/dshills/mathtext/internal/config"
	"github.com/dshills/mathtext/internal/field"
)

const fieldRow = 2

// ui owns the screen and the field. tcell events arrive on the main
// goroutine; config reloads arrive from the watcher goroutine and are
// forwarded through the event queue so the field stays single-writer.
type ui struct {
	screen   tcell.Screen
	cfg      config.Config
	fld      *field.Field
	live     *a11y.Live
	mathMode bool
	dragging bool
}

// configEvent carries a reloaded config into the event loop.
type configEvent struct {
	tcell.EventTime
	cfg config.Config
}

func newUI(cfg config.Config, opts options) (*ui, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	u := &ui{screen: screen, cfg: cfg, mathMode: opts.MathMode}
	u.newField(opts.Latex)
	return u, nil
}

func (u *ui) newField(src string) {
	u.live = a11y.NewLive()
	if u.mathMode {
		u.fld = field.NewMathField(u.cfg, u.live)
	} else {
		u.fld = field.NewTextField(u.cfg, u.live)
	}
	if src != "" {
		_ = u.fld.SetLatex(src)
	}
	u.fld.Focus()
}

// ApplyConfig is the config watcher callback. Safe to call from any
// goroutine.
func (u *ui) ApplyConfig(cfg config.Config) {
	ev := &configEvent{cfg: cfg}
	ev.SetEventNow()
	_ = u.screen.PostEvent(ev) // best-effort; event queue may be full
}

func (u *ui) Close() {
	u.screen.Fini()
}

func (u *ui) Run() error {
	for {
		u.draw()
		switch ev := u.screen.PollEvent().(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventKey:
			if !u.handleKey(ev) {
				return nil
			}
		case *tcell.EventMouse:
			u.handleMouse(ev)
		case *configEvent:
			// Rebuild the field with the new metrics, keeping content.
			u.cfg = ev.cfg
			src := u.fld.Latex()
			u.newField(src)
		case nil:
			return nil
		}
	}
}

// handleKey returns false to quit.
func (u *ui) handleKey(ev *tcell.EventKey) bool {
	shift := ev.Modifiers()&tcell.ModShift != 0
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyCtrlA:
		u.fld.SelectAll()
	case tcell.KeyLeft:
		u.fld.Keystroke(withShift("Left", shift))
	case tcell.KeyRight:
		u.fld.Keystroke(withShift("Right", shift))
	case tcell.KeyHome:
		u.fld.Keystroke(withShift("Home", shift))
	case tcell.KeyEnd:
		u.fld.Keystroke(withShift("End", shift))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		u.fld.Keystroke("Backspace")
	case tcell.KeyDelete:
		u.fld.Keystroke("Del")
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			// Text-mode roots swallow the spacebar chord; the space
			// is then typed as a character.
			if !u.fld.Keystroke(withShift("Spacebar", shift)) {
				u.fld.TypedText(" ")
			}
			return true
		}
		u.fld.TypedText(string(r))
	}
	return true
}

func (u *ui) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	if row != fieldRow {
		if u.dragging && ev.Buttons()&tcell.Button1 == 0 {
			u.dragging = false
			u.fld.MouseUp()
		}
		return
	}
	x := u.cfg.Render.OriginX + float64(col)*u.cfg.Render.GlyphWidth
	switch {
	case ev.Buttons()&tcell.Button1 != 0 && !u.dragging:
		u.dragging = true
		u.fld.MouseDown(x)
	case ev.Buttons()&tcell.Button1 != 0:
		u.fld.DragTo(x)
	case u.dragging:
		u.dragging = false
		u.fld.MouseUp()
	}
}

func (u *ui) draw() {
	u.screen.Clear()
	style := tcell.StyleDefault

	mode := "text"
	if u.mathMode {
		mode = "math"
	}
	drawString(u.screen, 0, 0, style.Bold(true), "mathtext ("+mode+" field)")
	drawString(u.screen, 0, fieldRow, style, u.fld.Text())
	drawString(u.screen, 0, fieldRow+2, style.Dim(true), "latex: "+u.fld.Latex())

	if spoken := u.live.Spoken(); len(spoken) > 0 {
		drawString(u.screen, 0, fieldRow+4, style.Dim(true), "aria: "+spoken[len(spoken)-1])
	}

	if u.fld.CaretVisible() {
		col := int((u.fld.CaretX() - u.cfg.Render.OriginX) / u.cfg.Render.GlyphWidth)
		u.screen.ShowCursor(col, fieldRow)
	} else {
		u.screen.HideCursor()
	}
	u.screen.Show()
}

func drawString(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func withShift(key string, shift bool) string {
	if shift {
		return "Shift-" + key
	}
	return key
}
