package tree

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/mathtext/internal/render"
)

// Node is a tree node. Concrete node types embed Base, which supplies the
// structural plumbing and default behavior for every operation; a type
// overrides only the operations it gives meaning to.
type Node interface {
	base() *Base

	// ID returns the node's stable identity, assigned at Bind time.
	ID() uuid.UUID
	// Parent returns the parent node, or nil.
	Parent() Node
	// Sibling returns the adjacent sibling in direction d, or nil.
	Sibling(d Dir) Node
	// End returns the child at the d end of this node, or nil.
	End(d Dir) Node
	// Elem returns the node's rendered mirror element.
	Elem() render.Elem
	// IsEmpty reports whether the node has no children.
	IsEmpty() bool
	// Text returns the node's plain-text content.
	Text() string
	// WriteLatex appends the node's source form to b.
	WriteLatex(b *strings.Builder)

	// Write inserts one typed character at the cursor inside this node.
	Write(c *Cursor, ch string)
	// MoveTowards moves the cursor into or across this node in direction d.
	MoveTowards(d Dir, c *Cursor)
	// MoveOutOf moves the cursor out of this node in direction d.
	MoveOutOf(d Dir, c *Cursor)
	// DeleteTowards deletes in direction d when the cursor is about to
	// step onto this node.
	DeleteTowards(d Dir, c *Cursor)
	// DeleteOutOf deletes in direction d when the cursor is at this
	// node's d end with nothing left inside it to delete.
	DeleteOutOf(d Dir, c *Cursor)
	// SelectTowards extends the selection over this node in direction d.
	SelectTowards(d Dir, c *Cursor)
	// SelectOutOf extends the selection out of this node in direction d.
	SelectOutOf(d Dir, c *Cursor)
	// UnselectInto retracts the selection edge back across this node.
	UnselectInto(d Dir, c *Cursor)
	// Seek places the cursor at the gap nearest pixel coordinate x.
	Seek(x float64, c *Cursor)
	// Focus notifies the node it now contains the cursor.
	Focus()
	// Blur notifies the node the cursor left it. The cursor may be nil
	// when the whole field is blurring.
	Blur(c *Cursor)
	// SiblingCreated notifies the node a sibling was just created on its
	// d side.
	SiblingCreated(d Dir)
	// Reflow notifies the node its rendered layout may have changed.
	// Bubbled upward after every mutation.
	Reflow()
}

// Base carries the structural state shared by every node type. Embed it
// and call Bind before attaching the node anywhere.
type Base struct {
	id     uuid.UUID
	self   Node
	parent Node
	l, r   Node
	endL   Node
	endR   Node
	el     render.Elem
}

// Bind assigns n its identity and rendered mirror. Must be called exactly
// once, before the node enters a tree.
func Bind(n Node, el render.Elem) {
	b := n.base()
	if b.self != nil {
		panic("mathtext: node bound twice")
	}
	b.id = uuid.New()
	b.self = n
	b.el = el
}

func (b *Base) base() *Base { return b }

// ID implements Node.
func (b *Base) ID() uuid.UUID { return b.id }

// Parent implements Node.
func (b *Base) Parent() Node { return b.parent }

// Sibling implements Node.
func (b *Base) Sibling(d Dir) Node {
	checkDir(d)
	if d == L {
		return b.l
	}
	return b.r
}

func (b *Base) setSibling(d Dir, n Node) {
	checkDir(d)
	if d == L {
		b.l = n
	} else {
		b.r = n
	}
}

// End implements Node.
func (b *Base) End(d Dir) Node {
	checkDir(d)
	if d == L {
		return b.endL
	}
	return b.endR
}

func (b *Base) setEnd(d Dir, n Node) {
	checkDir(d)
	if d == L {
		b.endL = n
	} else {
		b.endR = n
	}
}

// Elem implements Node.
func (b *Base) Elem() render.Elem { return b.el }

// IsEmpty implements Node.
func (b *Base) IsEmpty() bool { return b.endL == nil && b.endR == nil }

// Text implements Node. Nodes without textual content render as nothing.
func (b *Base) Text() string { return "" }

// WriteLatex implements Node.
func (b *Base) WriteLatex(*strings.Builder) {}

// Write implements Node. Only blocks accept typed characters.
func (b *Base) Write(*Cursor, string) {
	panic("mathtext: write dispatched to a non-block node")
}

// MoveTowards implements Node: the cursor steps over the node, the leaf
// default.
func (b *Base) MoveTowards(d Dir, c *Cursor) {
	c.InsDirOf(d, b.self)
}

// MoveOutOf implements Node. Only blocks contain a cursor to move out of.
func (b *Base) MoveOutOf(Dir, *Cursor) {
	panic("mathtext: moveOutOf dispatched to a non-block node")
}

// DeleteTowards implements Node: an empty node in the cursor's path is
// removed and skipped over, never merged; a nonempty one is stepped into.
func (b *Base) DeleteTowards(d Dir, c *Cursor) {
	if b.self.IsEmpty() {
		former := b.Sibling(d)
		Remove(b.self)
		c.SetSide(d, former)
		return
	}
	b.self.MoveTowards(d, c)
}

// DeleteOutOf implements Node.
func (b *Base) DeleteOutOf(Dir, *Cursor) {
	panic("mathtext: deleteOutOf dispatched to a non-block node")
}

// SelectTowards implements Node: the cursor passes over the node so the
// node lands inside the selection when it is rebuilt.
func (b *Base) SelectTowards(d Dir, c *Cursor) {
	c.InsDirOf(d, b.self)
}

// SelectOutOf implements Node.
func (b *Base) SelectOutOf(Dir, *Cursor) {
	panic("mathtext: selectOutOf dispatched to a non-block node")
}

// UnselectInto implements Node: retracting a selection edge moves the
// cursor the same way stepping across the node would.
func (b *Base) UnselectInto(d Dir, c *Cursor) {
	b.self.MoveTowards(d, c)
}

// Seek implements Node.
func (b *Base) Seek(float64, *Cursor) {
	panic("mathtext: seek dispatched to a node without geometry")
}

// Focus implements Node.
func (b *Base) Focus() {}

// Blur implements Node.
func (b *Base) Blur(*Cursor) {}

// SiblingCreated implements Node.
func (b *Base) SiblingCreated(Dir) {}

// Reflow implements Node.
func (b *Base) Reflow() {}

// Self returns the node the Base belongs to.
func (b *Base) Self() Node { return b.self }

// Adopt attaches n to parent between the adjacent siblings leftward and
// rightward; either may be nil at a block end.
func Adopt(n Node, parent, leftward, rightward Node) {
	NewFragment(n, n).AdoptInto(parent, leftward, rightward)
}

// Disown detaches n from its parent. The node keeps its stale parent and
// sibling links so callers can still ask where it used to be.
func Disown(n Node) {
	NewFragment(n, n).Disown()
}

// Remove detaches n from both the tree and the rendered mirror.
func Remove(n Node) {
	detachElem(n)
	Disown(n)
}

func detachElem(n Node) {
	el := n.Elem()
	if el == nil {
		return
	}
	if p := el.Parent(); p != nil {
		p.RemoveChild(el)
	}
}

// SpanOf returns the node's rendered element as a container span.
func SpanOf(n Node) *render.Span {
	s, ok := n.Elem().(*render.Span)
	if !ok {
		panic("mathtext: node's rendered element is not a container")
	}
	return s
}

// CreateDir inserts n into the tree and the rendered mirror at the
// cursor's gap, leaving the cursor on n's d.Opp() side.
func CreateDir(n Node, d Dir, c *Cursor) {
	checkDir(d)
	span := SpanOf(c.Parent)
	if c.L != nil {
		span.InsertAfter(n.Elem(), c.L.Elem())
	} else if c.R != nil {
		span.InsertBefore(n.Elem(), c.R.Elem())
	} else {
		span.AppendChild(n.Elem())
	}
	Adopt(n, c.Parent, c.L, c.R)
	c.SetSide(d, n)
}

// AppendChild attaches n as parent's rightmost child in both the tree and
// the rendered mirror.
func AppendChild(parent, n Node) {
	SpanOf(parent).AppendChild(n.Elem())
	Adopt(n, parent, parent.End(R), nil)
}

// CreateLeftOf inserts n immediately left of the cursor.
func CreateLeftOf(n Node, c *Cursor) {
	CreateDir(n, L, c)
}

// Bubble walks from n to the root, calling visit on each node until it
// returns false.
func Bubble(n Node, visit func(Node) bool) {
	for a := n; a != nil; a = a.Parent() {
		if !visit(a) {
			return
		}
	}
}

// BubbleReflow notifies n and every ancestor that layout changed.
func BubbleReflow(n Node) {
	Bubble(n, func(a Node) bool {
		a.Reflow()
		return true
	})
}
