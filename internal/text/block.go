package text

import (
	"strings"

	"github.com/dshills/mathtext/internal/grapheme"
	"github.com/dshills/mathtext/internal/render"
	"github.com/dshills/mathtext/internal/tree"
)

var latexEscaper = strings.NewReplacer(
	`\`, `\backslash `,
	`{`, `\{`,
	`}`, `\}`,
)

// Block is a text region: a container whose children are text runs. After
// normalization it owns at most one canonical run; during incremental
// edits it may transiently own several.
type Block struct {
	tree.Base
	variant      Variant
	replacedText string

	// antiOffset caches the anticursor's character offset within this
	// region during a drag that started here. Negative means unset.
	antiOffset int
}

// NewBlock creates an empty detached region configured by v.
func NewBlock(v Variant) *Block {
	span := render.NewSpan(v.Tag)
	for k, val := range v.Attrs {
		span.SetAttr(k, val)
	}
	b := &Block{variant: v, antiOffset: -1}
	tree.Bind(b, span)
	return b
}

// NewParsedBlock builds a region from source literal content. An empty
// literal yields an empty region with no run.
func NewParsedBlock(v Variant, literal string) *Block {
	b := NewBlock(v)
	if literal != "" {
		tree.AppendChild(b, NewPiece(literal))
	}
	return b
}

// Replaces stages text to be replayed through the normal write path when
// the region is inserted, used when a selection is converted into text.
func (b *Block) Replaces(text string) {
	b.replacedText = text
}

// Variant returns the region's configuration.
func (b *Block) Variant() Variant { return b.variant }

func (b *Block) span() *render.Span {
	return b.Elem().(*render.Span)
}

// TextContents returns the exact characters accumulated across the
// region's runs, left to right.
func (b *Block) TextContents() string {
	var sb strings.Builder
	for n := b.End(tree.L); n != nil; n = n.Sibling(tree.R) {
		sb.WriteString(n.Text())
	}
	return sb.String()
}

// Text implements tree.Node.
func (b *Block) Text() string { return b.TextContents() }

// WriteLatex implements tree.Node: an empty region renders as nothing, a
// nonempty one as its control sequence wrapping the escaped contents.
func (b *Block) WriteLatex(w *strings.Builder) {
	contents := b.TextContents()
	if contents == "" {
		return
	}
	w.WriteString(b.variant.CtrlSeq)
	w.WriteByte('{')
	latexEscaper.WriteString(w, contents)
	w.WriteByte('}')
}

// InsertAt places the region in the tree at the cursor, moves the cursor
// inside, replays any staged replacement text through the normal write
// path, and notifies the new siblings and layout.
func (b *Block) InsertAt(c *tree.Cursor) {
	tree.CreateLeftOf(b, c)
	if r := b.Sibling(tree.R); r != nil {
		r.SiblingCreated(tree.L)
	}
	if l := b.Sibling(tree.L); l != nil {
		l.SiblingCreated(tree.R)
	}
	tree.BubbleReflow(b)
	c.InsAtRightEnd(b)
	// dispatch through the cursor's block: a staged `$` exits the region,
	// and the rest of the replay must follow the cursor out
	for _, ch := range grapheme.Clusters(b.replacedText) {
		c.Parent.Write(c, ch)
	}
}

// Write inserts one typed character at the cursor. The mode-switch
// character `$` exits or splits the region instead of becoming content.
func (b *Block) Write(c *tree.Cursor, ch string) {
	c.Show()
	c.DeleteSelection()

	switch {
	case ch != "$":
		if c.L == nil {
			tree.CreateLeftOf(NewPiece(ch), c)
		} else {
			c.L.(*Piece).AppendText(ch)
		}
	case b.IsEmpty():
		// an empty region degenerates back into a literal dollar
		c.InsRightOf(b)
		tree.CreateLeftOf(NewDollarSymbol(), c)
	case c.R == nil:
		c.InsRightOf(b)
	case c.L == nil:
		c.InsLeftOf(b)
	default:
		b.splitAtCursor(c)
	}
	tree.BubbleReflow(b)
	c.Aria.Alert(ch)
}

// splitAtCursor splits the region in two at the cursor: everything left
// of the cursor moves into a freshly created predecessor region, and the
// cursor lands between the two siblings.
func (b *Block) splitAtCursor(c *tree.Cursor) {
	leftBlock := NewBlock(b.variant)
	leftSpan := leftBlock.span()

	frag := tree.NewFragment(b.End(tree.L), c.L)
	frag.Each(func(n tree.Node) bool {
		el := n.Elem()
		if p := el.Parent(); p != nil {
			p.RemoveChild(el)
		}
		leftSpan.AppendChild(el)
		return true
	})
	frag.Disown()
	frag.AdoptInto(leftBlock, nil, nil)

	c.InsLeftOf(b)
	tree.CreateLeftOf(leftBlock, c)
}

// WriteVerbatim inserts a literal string at the cursor without
// interpreting the mode-switch character.
func (b *Block) WriteVerbatim(c *tree.Cursor, s string) {
	if s == "" {
		return
	}
	if c.L == nil {
		tree.CreateLeftOf(NewPiece(s), c)
	} else {
		c.L.(*Piece).AppendText(s)
	}
	tree.BubbleReflow(b)
}

// MoveTowards implements tree.Node: entering the region from direction d
// places the cursor at the end nearest the entrance.
func (b *Block) MoveTowards(d tree.Dir, c *tree.Cursor) {
	c.InsAtDirEnd(d.Opp(), b)
	if d == tree.R {
		c.Aria.Queue(b.variant.Speak[0])
	} else {
		c.Aria.Queue(b.variant.Speak[1])
	}
}

// MoveOutOf implements tree.Node.
func (b *Block) MoveOutOf(d tree.Dir, c *tree.Cursor) {
	c.InsDirOf(d, b)
	if d == tree.R {
		c.Aria.Queue(b.variant.Speak[1])
	} else {
		c.Aria.Queue(b.variant.Speak[0])
	}
}

// UnselectInto implements tree.Node: retracting a selection edge re-enters
// the region the same way moving into it would.
func (b *Block) UnselectInto(d tree.Dir, c *tree.Cursor) {
	b.MoveTowards(d, c)
}

// SelectOutOf implements tree.Node.
func (b *Block) SelectOutOf(d tree.Dir, c *tree.Cursor) {
	c.InsDirOf(d, b)
}

// DeleteOutOf implements tree.Node: deletion at a region boundary does
// not dissolve the region.
func (b *Block) DeleteOutOf(tree.Dir, *tree.Cursor) {}

// Blur implements tree.Node: an empty region removes itself on defocus,
// re-linking any cursor endpoint that pointed at it; a nonempty one
// normalizes back to a single canonical run.
func (b *Block) Blur(c *tree.Cursor) {
	if c == nil {
		return
	}
	if b.TextContents() == "" {
		tree.Remove(b)
		if c.L == b {
			c.L = b.Sibling(tree.L)
		} else if c.R == b {
			c.R = b.Sibling(tree.R)
		}
		return
	}
	b.fuse()
}

// fuse collapses the region's runs into exactly one canonical run
// mirroring the normalized rendered container. Returns nil for an empty
// region.
func (b *Block) fuse() *Piece {
	span := b.span()
	span.Normalize()

	first := span.FirstChild()
	if first == nil {
		return nil
	}
	txt, ok := first.(*render.Text)
	if !ok || span.ChildCount() != 1 {
		panic("mathtext: text region did not normalize to a single rendered text")
	}

	pc := &Piece{textStr: txt.Data()}
	tree.Bind(pc, txt)

	if b.End(tree.L) != nil {
		tree.NewFragment(b.End(tree.L), b.End(tree.R)).Disown()
	}
	tree.Adopt(pc, b, nil, nil)
	return pc
}
