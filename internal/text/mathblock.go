package text

import (
	"strings"

	"github.com/dshills/mathtext/internal/render"
	"github.com/dshills/mathtext/internal/tree"
)

// MathBlock is a generic block of math content. This subsystem only ever
// needs plain symbol writing inside it; the full command grammar lives
// elsewhere.
type MathBlock struct {
	tree.Base
	onReflow func()
}

// NewMathBlock creates an empty detached math block.
func NewMathBlock() *MathBlock {
	b := &MathBlock{}
	tree.Bind(b, render.NewSpan("math"))
	return b
}

// NewRootMathBlock creates a math block positioned as a field root, with
// its own layout metrics and pixel origin.
func NewRootMathBlock(m render.Metrics, origin float64) *MathBlock {
	b := &MathBlock{}
	tree.Bind(b, render.NewRoot(m, origin))
	return b
}

// OnReflow registers the handler invoked when a reflow bubbles up to this
// block. Root blocks use it to notify the owning field.
func (b *MathBlock) OnReflow(fn func()) {
	b.onReflow = fn
}

// Reflow implements tree.Node.
func (b *MathBlock) Reflow() {
	if b.onReflow != nil {
		b.onReflow()
	}
}

// Text implements tree.Node.
func (b *MathBlock) Text() string {
	var sb strings.Builder
	for n := b.End(tree.L); n != nil; n = n.Sibling(tree.R) {
		sb.WriteString(n.Text())
	}
	return sb.String()
}

// WriteLatex implements tree.Node.
func (b *MathBlock) WriteLatex(w *strings.Builder) {
	for n := b.End(tree.L); n != nil; n = n.Sibling(tree.R) {
		n.WriteLatex(w)
	}
}

// Write implements tree.Node: ordinary math writing inserts one symbol
// per character; a typed `$` becomes the escaped-dollar literal.
func (b *MathBlock) Write(c *tree.Cursor, ch string) {
	c.Show()
	c.DeleteSelection()
	var sym *Symbol
	if ch == "$" {
		sym = NewDollarSymbol()
	} else {
		sym = NewCharSymbol(ch)
	}
	tree.CreateLeftOf(sym, c)
	tree.BubbleReflow(b)
	c.Aria.Alert(ch)
}

// MoveOutOf implements tree.Node: moving out of an inner block exits past
// the wrapping command; a root block has nowhere to go.
func (b *MathBlock) MoveOutOf(d tree.Dir, c *tree.Cursor) {
	if cmd := b.Parent(); cmd != nil {
		c.InsDirOf(d, cmd)
	}
}

// SelectOutOf implements tree.Node.
func (b *MathBlock) SelectOutOf(d tree.Dir, c *tree.Cursor) {
	if cmd := b.Parent(); cmd != nil {
		c.InsDirOf(d, cmd)
	}
}

// DeleteOutOf implements tree.Node: deleting outward from an empty inner
// block removes the wrapping command; from a nonempty one it just exits.
// Root blocks absorb the deletion.
func (b *MathBlock) DeleteOutOf(d tree.Dir, c *tree.Cursor) {
	cmd := b.Parent()
	if cmd == nil {
		return
	}
	c.InsDirOf(d, cmd)
	if b.IsEmpty() {
		tree.Remove(cmd)
		c.SetSide(d.Opp(), cmd.Sibling(d.Opp()))
	}
}

// Seek implements tree.Node: narrow down to the child under x, then let
// it place the cursor.
func (b *MathBlock) Seek(x float64, c *tree.Cursor) {
	node := b.End(tree.R)
	if node == nil || render.X(node.Elem())+node.Elem().Width() < x {
		c.InsAtRightEnd(b.Self())
		return
	}
	if x < render.X(b.End(tree.L).Elem()) {
		c.InsAtLeftEnd(b.Self())
		return
	}
	for x < render.X(node.Elem()) {
		node = node.Sibling(tree.L)
	}
	node.Seek(x, c)
}
