package text

import (
	"fmt"
	"math"

	"github.com/dshills/mathtext/internal/grapheme"
	"github.com/dshills/mathtext/internal/tree"
)

// Seek places the cursor at the character gap nearest pixel coordinate x,
// then reconciles any in-progress anticursor that lives in this region.
//
// The estimate assumes uniform character widths; the refinement walk
// below corrects for the glyphs where that is wrong. The walk is
// deliberately the documented step-until-overshoot heuristic, not a
// search: downstream selection semantics depend on it being
// deterministic, not pixel-perfect.
func (b *Block) Seek(x float64, c *tree.Cursor) {
	c.Hide()
	pc := b.fuse()

	placed := false
	if pc != nil {
		if rects := pc.rendered().Rects(); len(rects) == 1 {
			rect := rects[0]
			n := pc.Len()
			avg := rect.Width / float64(n)
			approx := int(math.Round((x - rect.Left) / avg))
			switch {
			case approx <= 0:
				c.InsAtLeftEnd(b)
			case approx >= n:
				c.InsAtRightEnd(b)
			default:
				c.InsLeftOf(pc.SplitRight(approx))
			}
			placed = true
		}
	}
	if !placed {
		c.InsAtLeftEnd(b)
	}

	// step one node at a time while each step keeps closing the gap in
	// the same direction; step back once on overshoot
	c.Show()
	displ := x - c.X()
	var d tree.Dir
	if displ < 0 {
		d = tree.L
	} else {
		d = tree.R
	}
	prev := float64(d)
	for c.Side(d) != nil && displ*prev > 0 {
		c.Side(d).MoveTowards(d, c)
		prev = displ
		displ = x - c.X()
	}
	if float64(d)*displ < -float64(d)*prev {
		if back := c.Side(d.Opp()); back != nil {
			back.MoveTowards(d.Opp(), c)
		}
	}

	if anti := c.Anticursor(); anti == nil {
		// a selection may be about to start here; remember where
		b.antiOffset = cursorOffset(c)
	} else if anti.Parent == b {
		b.reinsertAnticursor(c)
	}
}

// cursorOffset returns the cursor's character offset within its region.
func cursorOffset(c *tree.Cursor) int {
	if c.L == nil {
		return 0
	}
	return grapheme.Count(c.L.Text())
}

// reinsertAnticursor recomputes the anticursor after edits moved or split
// the run it pointed at, preserving its logical character offset. The
// split and the repoint are one step; no state with a stale anticursor is
// ever observable.
func (b *Block) reinsertAnticursor(c *tree.Cursor) {
	if b.antiOffset < 0 {
		panic("mathtext: drag reconciliation without a cached anticursor offset")
	}
	anti := c.Anticursor()
	cursorPos := cursorOffset(c)

	switch {
	case b.antiOffset == cursorPos:
		c.SetAnticursorAtCursor()

	case b.antiOffset < cursorPos:
		if b.antiOffset == 0 {
			anti.Point = tree.Point{Parent: b, L: nil, R: b.End(tree.L)}
			return
		}
		newPc := c.L.(*Piece).SplitRight(b.antiOffset)
		c.L = newPc
		anti.Point = tree.Point{Parent: b, L: newPc.Sibling(tree.L), R: newPc}

	default:
		right, ok := c.R.(*Piece)
		if !ok {
			panic(fmt.Sprintf("mathtext: anticursor offset %d beyond region content", b.antiOffset))
		}
		rel := b.antiOffset - cursorPos
		if rel >= right.Len() {
			anti.Point = tree.Point{Parent: b, L: b.End(tree.R), R: nil}
			return
		}
		newPc := right.SplitRight(rel)
		anti.Point = tree.Point{Parent: b, L: newPc.Sibling(tree.L), R: newPc}
	}
}
