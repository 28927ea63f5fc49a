package text

import (
	"strings"

	"github.com/dshills/mathtext/internal/render"
	"github.com/dshills/mathtext/internal/tree"
)

// RootMathCommand hosts one inline math sub-expression inside a
// plain-text field, rendered and serialized as `$…$`.
type RootMathCommand struct {
	tree.Base
	block *mathBridgeBlock
}

// mathBridgeBlock is the command's inner block, whose write treats `$` as
// the mode toggle instead of content.
type mathBridgeBlock struct {
	MathBlock
}

// NewRootMathCommand creates a detached math bridge with an empty inner
// block.
func NewRootMathCommand() *RootMathCommand {
	cmd := &RootMathCommand{}
	span := render.NewSpan("math-mode")
	tree.Bind(cmd, span)

	inner := &mathBridgeBlock{}
	tree.Bind(inner, render.NewSpan("math"))
	span.AppendChild(inner.Elem())
	tree.Adopt(inner, cmd, nil, nil)
	cmd.block = inner
	return cmd
}

// Block returns the command's inner math block.
func (cmd *RootMathCommand) Block() tree.Node { return cmd.block }

// IsEmpty implements tree.Node: the command is as empty as its block.
func (cmd *RootMathCommand) IsEmpty() bool { return cmd.block.IsEmpty() }

// Text implements tree.Node.
func (cmd *RootMathCommand) Text() string { return cmd.block.Text() }

// WriteLatex implements tree.Node.
func (cmd *RootMathCommand) WriteLatex(b *strings.Builder) {
	b.WriteByte('$')
	cmd.block.WriteLatex(b)
	b.WriteByte('$')
}

// MoveTowards implements tree.Node: the cursor enters the inner block at
// the end nearest the entrance.
func (cmd *RootMathCommand) MoveTowards(d tree.Dir, c *tree.Cursor) {
	c.InsAtDirEnd(d.Opp(), cmd.block)
}

// UnselectInto implements tree.Node.
func (cmd *RootMathCommand) UnselectInto(d tree.Dir, c *tree.Cursor) {
	c.InsAtDirEnd(d.Opp(), cmd.block)
}

// Seek implements tree.Node.
func (cmd *RootMathCommand) Seek(x float64, c *tree.Cursor) {
	cmd.block.Seek(x, c)
}

// Write implements tree.Node for the inner block. A `$` in an empty block
// deletes the whole bridge and leaves a literal dollar behind; at either
// boundary it exits the bridge without being consumed as content; in the
// interior it is ordinary math writing.
func (ib *mathBridgeBlock) Write(c *tree.Cursor, ch string) {
	if ch != "$" {
		ib.MathBlock.Write(c, ch)
		return
	}
	cmd := ib.Parent()
	switch {
	case ib.IsEmpty():
		c.InsRightOf(cmd)
		tree.Remove(cmd)
		c.SetSide(tree.L, cmd.Sibling(tree.L))
		tree.CreateLeftOf(NewDollarSymbol(), c)
		c.Show()
		tree.BubbleReflow(c.Parent)
		c.Aria.Alert(ch)
	case c.R == nil:
		c.InsRightOf(cmd)
	case c.L == nil:
		c.InsLeftOf(cmd)
	default:
		ib.MathBlock.Write(c, ch)
	}
}

// RootTextBlock is the root block of a plain-text field. Characters are
// written as literal symbols; a typed `$` opens a new math bridge at the
// cursor.
type RootTextBlock struct {
	MathBlock
}

// NewRootTextBlock creates the root block of a text field, with its own
// layout metrics and pixel origin.
func NewRootTextBlock(m render.Metrics, origin float64) *RootTextBlock {
	b := &RootTextBlock{}
	tree.Bind(b, render.NewRoot(m, origin))
	return b
}

// SuppressesKeystroke reports keystrokes the default handler must ignore
// so they fall through to plain typed text.
func (rb *RootTextBlock) SuppressesKeystroke(key string) bool {
	return key == "Spacebar" || key == "Shift-Spacebar"
}

// Write implements tree.Node.
func (rb *RootTextBlock) Write(c *tree.Cursor, ch string) {
	c.Show()
	c.DeleteSelection()
	switch ch {
	case "$":
		cmd := NewRootMathCommand()
		tree.CreateLeftOf(cmd, c)
		c.InsAtRightEnd(cmd.block)
	case `\`:
		tree.CreateLeftOf(NewSymbol(`\\`, `\`), c)
	default:
		// angle brackets render as their literal glyphs; an HTML backend
		// entity-escapes them at output time
		tree.CreateLeftOf(NewCharSymbol(ch), c)
	}
	tree.BubbleReflow(rb)
	c.Aria.Alert(ch)
}
