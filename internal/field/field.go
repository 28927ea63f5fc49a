// Package field wires a root block, a cursor, a parser, and an announcer
// into the editable field surface the host embeds: latex get/set, typed
// text, named keystrokes, and mouse seek/drag selection.
package field

import (
	"strings"

	"github.com/dshills/mathtext/internal/a11y"
	"github.com/dshills/mathtext/internal/config"
	"github.com/dshills/mathtext/internal/grapheme"
	"github.com/dshills/mathtext/internal/latex"
	"github.com/dshills/mathtext/internal/render"
	"github.com/dshills/mathtext/internal/text"
	"github.com/dshills/mathtext/internal/tree"
)

// Mode selects the field's root flavor.
type Mode int

const (
	// ModeText is a plain-text field that can host inline math via `$…$`.
	ModeText Mode = iota
	// ModeMath is a math field that can host text regions.
	ModeMath
)

// Edit event kinds reported to observers.
const (
	EditWrite      = "write"
	EditDelete     = "delete"
	EditSetContent = "setContent"
	EditStructure  = "structure"
)

// EditEvent describes one completed mutation, published after reflow so
// observers always see a consistent tree.
type EditEvent struct {
	Kind  string
	Latex string
}

// Observer receives edit events.
type Observer func(EditEvent)

// Field is one editable field: a root block, the live cursor, and the
// field-level surface over them. All operations run synchronously to
// completion; the field is single-writer by construction.
type Field struct {
	cfg      config.Config
	mode     Mode
	root     tree.Node
	cursor   *tree.Cursor
	aria     a11y.Announcer
	parser   *latex.Parser
	focused  bool
	dirty    bool
	dragging bool

	observers []Observer
}

type reflowable interface {
	OnReflow(func())
}

// New creates a field in the given mode. A nil announcer, or announcements
// disabled in cfg, silences accessibility output.
func New(mode Mode, cfg config.Config, aria a11y.Announcer) *Field {
	if aria == nil || !cfg.A11y.Announce {
		aria = a11y.Nop{}
	}
	metrics := render.CellMetrics{CellWidth: cfg.Render.GlyphWidth}

	var root tree.Node
	if mode == ModeText {
		root = text.NewRootTextBlock(metrics, cfg.Render.OriginX)
	} else {
		root = text.NewRootMathBlock(metrics, cfg.Render.OriginX)
	}

	f := &Field{
		cfg:    cfg,
		mode:   mode,
		root:   root,
		aria:   aria,
		parser: latex.NewParser(latex.NewRegistry()),
	}
	root.(reflowable).OnReflow(func() { f.dirty = true })
	f.cursor = tree.NewCursor(root, aria)
	f.cursor.Hide()
	return f
}

// NewTextField creates a plain-text field.
func NewTextField(cfg config.Config, aria a11y.Announcer) *Field {
	return New(ModeText, cfg, aria)
}

// NewMathField creates a math field.
func NewMathField(cfg config.Config, aria a11y.Announcer) *Field {
	return New(ModeMath, cfg, aria)
}

// Subscribe registers an observer for edit events.
func (f *Field) Subscribe(o Observer) {
	f.observers = append(f.observers, o)
}

// Latex returns the field content as canonical escaped source.
func (f *Field) Latex() string {
	var b strings.Builder
	f.root.WriteLatex(&b)
	return b.String()
}

// Text returns the field's plain-text content.
func (f *Field) Text() string {
	return f.root.Text()
}

// SetLatex replaces the field's full content. If the field is not
// focused the cursor is parked, hidden, at the field end. Malformed
// source leaves the field empty and returns the parse error.
func (f *Field) SetLatex(src string) error {
	f.clearContent()
	f.cursor.ClearSelection()
	f.cursor.EndSelection()

	var err error
	if f.mode == ModeText {
		err = f.parser.ParseTextInto(f.root, src)
	} else {
		err = f.parser.ParseMathInto(f.root, src)
	}
	if err != nil {
		f.clearContent()
	}

	f.cursor.InsAtRightEnd(f.root)
	if f.focused {
		f.cursor.Show()
	} else {
		f.cursor.Hide()
	}
	tree.BubbleReflow(f.root)
	f.flush(EditSetContent)
	return err
}

func (f *Field) clearContent() {
	if f.root.End(tree.L) != nil {
		tree.NewFragment(f.root.End(tree.L), f.root.End(tree.R)).Remove()
	}
}

// TypedText writes each character of s through the focused block's write
// path, exactly as if typed.
func (f *Field) TypedText(s string) {
	for _, ch := range grapheme.Clusters(s) {
		f.cursor.Parent.Write(f.cursor, ch)
	}
	f.flush(EditWrite)
}

// WriteText inserts s at the cursor without interpreting the mode-switch
// character when the cursor is inside a text region; elsewhere it types
// normally.
func (f *Field) WriteText(s string) {
	if blk, ok := f.cursor.Parent.(*text.Block); ok {
		blk.WriteVerbatim(f.cursor, s)
	} else {
		for _, ch := range grapheme.Clusters(s) {
			f.cursor.Parent.Write(f.cursor, ch)
		}
	}
	f.flush(EditWrite)
}

// InsertTextRegion inserts a text region at the cursor, converting any
// selection into the region's initial content by replaying it through
// the normal write path.
func (f *Field) InsertTextRegion(v text.Variant) {
	c := f.cursor
	blk := text.NewBlock(v)
	if sel := c.Selection(); sel != nil {
		blk.Replaces(sel.Text())
		c.DeleteSelection()
		c.EndSelection()
	}
	blk.InsertAt(c)
	f.flush(EditStructure)
}

// Focus gives the field the caret.
func (f *Field) Focus() {
	f.focused = true
	f.cursor.Show()
	f.cursor.Parent.Focus()
	f.flush(EditStructure)
}

// Blur removes the caret, normalizing or dropping the region under the
// cursor.
func (f *Field) Blur() {
	f.focused = false
	f.dragging = false
	f.cursor.Hide()
	f.cursor.Parent.Blur(f.cursor)
	tree.BubbleReflow(f.root)
	f.flush(EditStructure)
}

// Focused reports whether the field has the caret.
func (f *Field) Focused() bool { return f.focused }

// CaretX returns the caret's pixel x position.
func (f *Field) CaretX() float64 { return f.cursor.X() }

// CaretVisible reports whether the caret is shown.
func (f *Field) CaretVisible() bool { return f.cursor.Visible() }

// Cursor exposes the live cursor to in-process hosts.
func (f *Field) Cursor() *tree.Cursor { return f.cursor }

// Root exposes the root block to in-process hosts.
func (f *Field) Root() tree.Node { return f.root }

// SelectionLatex returns the selection's source form, or "".
func (f *Field) SelectionLatex() string {
	if sel := f.cursor.Selection(); sel != nil {
		return sel.Latex()
	}
	return ""
}

// flush publishes pending accessibility output and, if the tree changed,
// one edit event. Called at the end of every public operation so
// observers never see a half-mutated tree.
func (f *Field) flush(kind string) {
	if live, ok := f.aria.(*a11y.Live); ok {
		live.Flush()
	}
	if !f.dirty {
		return
	}
	f.dirty = false
	ev := EditEvent{Kind: kind, Latex: f.Latex()}
	for _, o := range f.observers {
		o(ev)
	}
}
