package text

import (
	"strings"

	"github.com/dshills/mathtext/internal/render"
	"github.com/dshills/mathtext/internal/tree"
)

// Symbol is a leaf rendering a single literal glyph, with a possibly
// different source form (e.g. the escaped dollar `\$` rendering as `$`).
type Symbol struct {
	tree.Base
	ctrlSeq string
	glyph   string
}

// NewSymbol creates a detached symbol with the given source form and
// rendered glyph.
func NewSymbol(ctrlSeq, glyph string) *Symbol {
	s := &Symbol{ctrlSeq: ctrlSeq, glyph: glyph}
	tree.Bind(s, render.NewText(glyph))
	return s
}

// NewDollarSymbol returns the escaped-dollar literal.
func NewDollarSymbol() *Symbol {
	return NewSymbol(`\$`, "$")
}

// NewCharSymbol returns a symbol whose source form and glyph are both ch.
func NewCharSymbol(ch string) *Symbol {
	return NewSymbol(ch, ch)
}

// Text implements tree.Node.
func (s *Symbol) Text() string { return s.glyph }

// WriteLatex implements tree.Node.
func (s *Symbol) WriteLatex(b *strings.Builder) {
	b.WriteString(s.ctrlSeq)
}

// DeleteTowards implements tree.Node: the symbol is removed whole and the
// deleted glyph announced.
func (s *Symbol) DeleteTowards(d tree.Dir, c *tree.Cursor) {
	former := s.Sibling(d)
	tree.Remove(s)
	c.SetSide(d, former)
	c.Aria.Queue(s.glyph)
}

// Seek implements tree.Node: the cursor lands on whichever side of the
// glyph is nearer the struck coordinate.
func (s *Symbol) Seek(x float64, c *tree.Cursor) {
	if x-render.X(s.Elem()) < s.Elem().Width()/2 {
		c.InsLeftOf(s)
	} else {
		c.InsRightOf(s)
	}
}
