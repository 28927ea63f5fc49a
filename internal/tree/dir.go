package tree

import "fmt"

// Dir is a horizontal traversal direction. Every positional operation is
// written once, parameterized over Dir, instead of in left/right variants.
//
// The numeric values are chosen so that sign arithmetic works: moving in
// direction d changes a pixel coordinate with the sign of d.
type Dir int8

const (
	// L is toward the start of the content.
	L Dir = -1
	// R is toward the end of the content.
	R Dir = 1
)

// Opp returns the opposite direction.
func (d Dir) Opp() Dir {
	switch d {
	case L:
		return R
	case R:
		return L
	}
	panic(fmt.Sprintf("mathtext: invalid direction %d", int8(d)))
}

// String returns "left" or "right".
func (d Dir) String() string {
	switch d {
	case L:
		return "left"
	case R:
		return "right"
	}
	return fmt.Sprintf("Dir(%d)", int8(d))
}

func checkDir(d Dir) {
	if d != L && d != R {
		panic(fmt.Sprintf("mathtext: invalid direction %d", int8(d)))
	}
}
