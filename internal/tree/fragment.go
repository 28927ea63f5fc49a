package tree

import "strings"

// Fragment is a contiguous range of sibling nodes, both ends inclusive.
// The zero Fragment is empty. Fragments are how multi-node structure moves
// atomically: a disown or adopt either relinks the whole range or panics.
type Fragment struct {
	leftEnd  Node
	rightEnd Node
}

// NewFragment creates a fragment spanning leftEnd through rightEnd, which
// must be ordered siblings. Both nil yields the empty fragment.
func NewFragment(leftEnd, rightEnd Node) Fragment {
	if (leftEnd == nil) != (rightEnd == nil) {
		panic("mathtext: fragment with one nil end")
	}
	return Fragment{leftEnd: leftEnd, rightEnd: rightEnd}
}

// Empty reports whether the fragment spans no nodes.
func (f Fragment) Empty() bool { return f.leftEnd == nil }

// End returns the fragment's end node in direction d.
func (f Fragment) End(d Dir) Node {
	checkDir(d)
	if d == L {
		return f.leftEnd
	}
	return f.rightEnd
}

// Each visits the fragment's nodes left to right until fn returns false.
func (f Fragment) Each(fn func(Node) bool) {
	if f.Empty() {
		return
	}
	for n := f.leftEnd; ; n = n.Sibling(R) {
		if !fn(n) || n == f.rightEnd {
			return
		}
		if n.Sibling(R) == nil {
			panic("mathtext: fragment ends are not ordered siblings")
		}
	}
}

// Text returns the concatenated plain-text content of the fragment.
func (f Fragment) Text() string {
	var b strings.Builder
	f.Each(func(n Node) bool {
		b.WriteString(n.Text())
		return true
	})
	return b.String()
}

// WriteLatex appends the fragment's source form to b.
func (f Fragment) WriteLatex(b *strings.Builder) {
	f.Each(func(n Node) bool {
		n.WriteLatex(b)
		return true
	})
}

// AdoptInto attaches the fragment to parent between leftward and
// rightward, which must be adjacent children of parent (nil at an end).
func (f Fragment) AdoptInto(parent, leftward, rightward Node) {
	if f.Empty() {
		return
	}
	if parent == nil {
		panic("mathtext: fragment adopted into nil parent")
	}
	// leftward and rightward must bound a single gap in parent
	if leftward != nil {
		if leftward.Sibling(R) != rightward {
			panic("mathtext: fragment adopted into a non-gap")
		}
	} else if parent.End(L) != rightward {
		panic("mathtext: fragment adopted into a non-gap")
	}

	f.Each(func(n Node) bool {
		n.base().parent = parent
		return true
	})

	f.leftEnd.base().setSibling(L, leftward)
	f.rightEnd.base().setSibling(R, rightward)
	if leftward != nil {
		leftward.base().setSibling(R, f.leftEnd)
	} else {
		parent.base().setEnd(L, f.leftEnd)
	}
	if rightward != nil {
		rightward.base().setSibling(L, f.rightEnd)
	} else {
		parent.base().setEnd(R, f.rightEnd)
	}
}

// Disown detaches the fragment from its parent. The fragment's nodes keep
// their stale outward links; only the parent and the remaining siblings
// are relinked.
func (f Fragment) Disown() Fragment {
	if f.Empty() {
		return f
	}
	parent := f.leftEnd.Parent()
	if parent == nil {
		panic("mathtext: fragment disowned twice")
	}
	leftward := f.leftEnd.Sibling(L)
	rightward := f.rightEnd.Sibling(R)

	if leftward != nil {
		leftward.base().setSibling(R, rightward)
	} else {
		parent.base().setEnd(L, rightward)
	}
	if rightward != nil {
		rightward.base().setSibling(L, leftward)
	} else {
		parent.base().setEnd(R, leftward)
	}

	// mark detached so a second disown is caught, but keep l/r stale
	f.Each(func(n Node) bool {
		n.base().parent = nil
		return true
	})
	return f
}

// Remove detaches the fragment from the tree and every node's rendered
// element from the mirror.
func (f Fragment) Remove() Fragment {
	f.Each(func(n Node) bool {
		detachElem(n)
		return true
	})
	return f.Disown()
}
