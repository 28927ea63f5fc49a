package tree

import "strings"

// Selection is the contiguous sibling range currently selected. It is
// rebuilt from scratch by Cursor.Select after every change, never mutated
// in place.
type Selection struct {
	Fragment
}

// Latex returns the selection's source form.
func (s *Selection) Latex() string {
	var b strings.Builder
	s.WriteLatex(&b)
	return b.String()
}
