package tree

import (
	"github.com/google/uuid"

	"github.com/dshills/mathtext/internal/a11y"
	"github.com/dshills/mathtext/internal/render"
)

// Point is a gap position: the parent block plus the two neighboring
// siblings, either of which is nil at a block end.
type Point struct {
	Parent Node
	L      Node
	R      Node
}

// Side returns the neighbor in direction d.
func (p *Point) Side(d Dir) Node {
	checkDir(d)
	if d == L {
		return p.L
	}
	return p.R
}

// SetSide sets the neighbor in direction d.
func (p *Point) SetSide(d Dir, n Node) {
	checkDir(d)
	if d == L {
		p.L = n
	} else {
		p.R = n
	}
}

// Cursor is the live editing position. It also owns the in-progress
// selection and its frozen far endpoint, the anticursor.
type Cursor struct {
	Point

	// Aria receives the accessibility announcements edit operations make.
	Aria a11y.Announcer

	root       Node
	visible    bool
	selection  *Selection
	anticursor *Anticursor
}

// NewCursor creates a cursor parked at the right end of root.
func NewCursor(root Node, aria a11y.Announcer) *Cursor {
	if aria == nil {
		aria = a11y.Nop{}
	}
	c := &Cursor{Aria: aria, root: root}
	c.InsAtDirEnd(R, root)
	return c
}

// Root returns the root block the cursor is confined to.
func (c *Cursor) Root() Node { return c.root }

// Show makes the caret visible.
func (c *Cursor) Show() *Cursor {
	c.visible = true
	return c
}

// Hide makes the caret invisible.
func (c *Cursor) Hide() *Cursor {
	c.visible = false
	return c
}

// Visible reports whether the caret is shown.
func (c *Cursor) Visible() bool { return c.visible }

// InsDirOf places the cursor on the d side of n.
func (c *Cursor) InsDirOf(d Dir, n Node) {
	checkDir(d)
	c.Parent = n.Parent()
	c.SetSide(d, n.Sibling(d))
	c.SetSide(d.Opp(), n)
}

// InsLeftOf places the cursor immediately left of n.
func (c *Cursor) InsLeftOf(n Node) { c.InsDirOf(L, n) }

// InsRightOf places the cursor immediately right of n.
func (c *Cursor) InsRightOf(n Node) { c.InsDirOf(R, n) }

// InsAtDirEnd places the cursor at the d end inside block.
func (c *Cursor) InsAtDirEnd(d Dir, block Node) {
	checkDir(d)
	c.Parent = block
	c.SetSide(d, nil)
	c.SetSide(d.Opp(), block.End(d))
}

// InsAtLeftEnd places the cursor at the left end inside block.
func (c *Cursor) InsAtLeftEnd(block Node) { c.InsAtDirEnd(L, block) }

// InsAtRightEnd places the cursor at the right end inside block.
func (c *Cursor) InsAtRightEnd(block Node) { c.InsAtDirEnd(R, block) }

// X returns the cursor gap's pixel position: the left edge of the right
// neighbor, the right edge of the left neighbor, or the parent's content
// origin in an empty block.
func (c *Cursor) X() float64 {
	switch {
	case c.R != nil:
		return render.X(c.R.Elem())
	case c.L != nil:
		return render.X(c.L.Elem()) + c.L.Elem().Width()
	default:
		return render.X(c.Parent.Elem())
	}
}

// Anticursor is the frozen far end of a drag selection. Its ancestor set
// is captured when selection starts so the selection can be rebuilt after
// arbitrary structural edits near the live cursor.
type Anticursor struct {
	Point
	ancestors map[uuid.UUID]Node
}

// StartSelection freezes the cursor's current position as the anticursor.
func (c *Cursor) StartSelection() {
	anti := &Anticursor{Point: c.Point, ancestors: map[uuid.UUID]Node{}}
	for a := c.Parent; a != nil; a = a.Parent() {
		anti.ancestors[a.ID()] = a
	}
	c.anticursor = anti
}

// EndSelection drops the anticursor, ending the in-progress drag.
func (c *Cursor) EndSelection() {
	c.anticursor = nil
}

// Anticursor returns the in-progress selection's far endpoint, or nil.
func (c *Cursor) Anticursor() *Anticursor { return c.anticursor }

// SetAnticursorAtCursor repoints the anticursor to coincide with the
// cursor, collapsing the selection to zero length.
func (c *Cursor) SetAnticursorAtCursor() {
	if c.anticursor == nil {
		panic("mathtext: no anticursor to repoint")
	}
	c.anticursor.Point = c.Point
}

// Selection returns the current selection, or nil.
func (c *Cursor) Selection() *Selection { return c.selection }

// ClearSelection unwraps the current selection without deleting content.
func (c *Cursor) ClearSelection() *Cursor {
	c.selection = nil
	return c
}

// DeleteSelection removes the selected nodes from the tree and the mirror
// and re-links the cursor around the hole.
func (c *Cursor) DeleteSelection() {
	if c.selection == nil {
		return
	}
	c.L = c.selection.End(L).Sibling(L)
	c.R = c.selection.End(R).Sibling(R)
	c.selection.Remove()
	c.selection = nil
}

// selEnd is one end of an in-construction selection: either a node or a
// point (the cursor or anticursor itself).
type selEnd struct {
	node Node
	pt   *Point
}

func (e selEnd) parent() Node {
	if e.node != nil {
		return e.node.Parent()
	}
	return e.pt.Parent
}

func (e selEnd) side(d Dir) Node {
	if e.node != nil {
		return e.node.Sibling(d)
	}
	return e.pt.Side(d)
}

// Select rebuilds the selection spanning from the anticursor to the
// cursor. It reports false, with no selection, when the two coincide.
func (c *Cursor) Select() bool {
	anti := c.anticursor
	if anti == nil {
		panic("mathtext: select without an anticursor")
	}
	if c.L == anti.L && c.Parent == anti.Parent {
		return false
	}

	// Find the lowest common ancestor, and the ancestor of the cursor
	// whose parent is the LCA (one end of the selection fragment).
	var lca Node
	cur := selEnd{pt: &c.Point}
	for {
		p := cur.parent()
		if p == nil {
			panic("mathtext: cursor and anticursor in different trees")
		}
		if _, ok := anti.ancestors[p.ID()]; ok {
			lca = p
			break
		}
		cur = selEnd{node: p}
	}

	// The other end: the ancestor of the anticursor whose parent is the LCA.
	antiEnd := selEnd{pt: &anti.Point}
	for antiEnd.parent() != lca {
		antiEnd = selEnd{node: antiEnd.parent()}
	}

	// Figure out which end is left and which is right. As a special case
	// the anti end can be the node immediately left of the cursor end;
	// otherwise the anti end is rightward of the cursor end iff some node
	// at or rightward of the cursor end shares its right neighbor.
	dir := R
	var leftEnd, rightEnd selEnd
	if !(antiEnd.node != nil && cur.side(L) == antiEnd.node) {
		aR := antiEnd.side(R)
		rw := cur
		for {
			if rw.side(R) == aR {
				dir = L
				leftEnd = cur
				rightEnd = antiEnd
				break
			}
			next := rw.side(R)
			if next == nil {
				break
			}
			rw = selEnd{node: next}
		}
	}
	if dir == R {
		leftEnd = antiEnd
		rightEnd = cur
	}

	// Only nodes can be selected; a point end resolves to its inward
	// neighbor.
	lNode := leftEnd.node
	if lNode == nil {
		lNode = leftEnd.pt.R
	}
	rNode := rightEnd.node
	if rNode == nil {
		rNode = rightEnd.pt.L
	}
	if lNode == nil || rNode == nil {
		panic("mathtext: selection end resolved to no node")
	}

	c.Hide()
	c.selection = &Selection{Fragment: NewFragment(lNode, rNode)}
	c.InsDirOf(dir, c.selection.End(dir))
	return true
}
