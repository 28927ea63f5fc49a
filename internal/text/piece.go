package text

import (
	"fmt"
	"strings"

	"github.com/dshills/mathtext/internal/grapheme"
	"github.com/dshills/mathtext/internal/render"
	"github.com/dshills/mathtext/internal/tree"
)

// Piece is a text run: a leaf node owning a nonempty contiguous string,
// mirrored one-to-one by a rendered text fragment. Every mutation updates
// the string and the mirror together; there is no caller-visible state
// where they differ.
type Piece struct {
	tree.Base
	textStr string
}

// NewPiece creates a detached run holding s.
func NewPiece(s string) *Piece {
	p := &Piece{textStr: s}
	tree.Bind(p, render.NewText(s))
	return p
}

func (p *Piece) rendered() *render.Text {
	return p.Elem().(*render.Text)
}

// Text returns the run's string.
func (p *Piece) Text() string { return p.textStr }

// Len returns the run's length in characters.
func (p *Piece) Len() int { return grapheme.Count(p.textStr) }

// WriteLatex implements tree.Node. A run renders as its raw characters;
// the owning region handles escaping.
func (p *Piece) WriteLatex(b *strings.Builder) {
	b.WriteString(p.textStr)
}

// AppendText adds s at the run's right end.
func (p *Piece) AppendText(s string) {
	p.textStr += s
	p.rendered().AppendData(s)
}

// PrependText adds s at the run's left end.
func (p *Piece) PrependText(s string) {
	p.textStr = s + p.textStr
	p.rendered().PrependData(s)
}

// InsTextAtDirEnd adds s at the run's d end.
func (p *Piece) InsTextAtDirEnd(s string, d tree.Dir) {
	if d == tree.R {
		p.AppendText(s)
	} else {
		p.PrependText(s)
	}
}

// SplitRight splits the run before character offset i: the prefix stays
// here, and a new sibling run holding the suffix is inserted immediately
// to the right, with the rendered mirror split at the same offset. A true
// split requires 0 < i < Len; boundary offsets are the caller's problem.
func (p *Piece) SplitRight(i int) *Piece {
	n := p.Len()
	if i <= 0 || i >= n {
		panic(fmt.Sprintf("mathtext: split offset %d outside (0,%d)", i, n))
	}
	prefix, suffix := grapheme.SplitAt(p.textStr, i)
	newPc := &Piece{textStr: suffix}
	tree.Adopt(newPc, p.Parent(), p, p.Sibling(tree.R))
	tree.Bind(newPc, p.rendered().SplitAt(i))
	p.textStr = prefix
	return newPc
}

// endChar returns the character at the d end of s.
func endChar(d tree.Dir, s string) string {
	if d == tree.L {
		return grapheme.First(s)
	}
	return grapheme.Last(s)
}

// MoveTowards transfers the run's character nearest the cursor into the
// neighboring run in direction d, creating that neighbor if absent, so
// the cursor steps across one character at a time.
func (p *Piece) MoveTowards(d tree.Dir, c *tree.Cursor) {
	ch := endChar(d.Opp(), p.textStr)

	if from := p.Sibling(d.Opp()); from != nil {
		from.(*Piece).InsTextAtDirEnd(ch, d)
	} else {
		tree.CreateDir(NewPiece(ch), d.Opp(), c)
	}
	p.DeleteTowards(d, c)
}

// DeleteTowards removes one character from the end nearest the cursor, or
// the whole run when only one character remains, announcing the deleted
// character either way.
func (p *Piece) DeleteTowards(d tree.Dir, c *tree.Cursor) {
	if p.Len() > 1 {
		var deleted string
		if d == tree.R {
			deleted = grapheme.First(p.textStr)
			p.rendered().DeleteData(0, 1)
			_, p.textStr = grapheme.SplitAt(p.textStr, 1)
		} else {
			deleted = grapheme.Last(p.textStr)
			p.rendered().DeleteData(p.Len()-1, 1)
			p.textStr, _ = grapheme.SplitAt(p.textStr, p.Len()-1)
		}
		c.Aria.Queue(deleted)
		return
	}
	deleted := p.textStr
	former := p.Sibling(d)
	tree.Remove(p)
	c.SetSide(d, former)
	c.Aria.Queue(deleted)
}

// SelectTowards grows the selection by one character in direction d,
// keeping the anticursor valid even when this run is about to vanish.
func (p *Piece) SelectTowards(d tree.Dir, c *tree.Cursor) {
	anti := c.Anticursor()
	if anti == nil {
		panic("mathtext: selectTowards without an anticursor")
	}
	ch := endChar(d.Opp(), p.textStr)

	if anti.Side(d) == p {
		// selection is just starting here: expose the first character as
		// its own run and hang the anticursor off it
		newPc := NewPiece(ch)
		tree.CreateDir(newPc, d, c)
		anti.SetSide(d, newPc)
		c.InsDirOf(d, newPc)
	} else {
		if from := p.Sibling(d.Opp()); from != nil {
			from.(*Piece).InsTextAtDirEnd(ch, d)
		} else {
			tree.CreateDir(NewPiece(ch), d.Opp(), c)
		}

		if p.Len() == 1 && anti.Side(d.Opp()) == p {
			// p is about to be removed by the delete below
			anti.SetSide(d.Opp(), p.Sibling(d.Opp()))
		}
	}
	p.DeleteTowards(d, c)
}
