// Package text implements the editable plain-text region of the editor:
// regions (Block), the text runs inside them (Piece), plain symbols, the
// generic math block, and the two mode bridges that let text host inline
// math and math host text.
//
// The editing model follows three rules. A run's string is never empty; a
// run that would become empty removes itself. A run's rendered mirror
// holds exactly the run's string at the end of every public operation.
// And a region owns at most one canonical run after normalization, though
// incremental edits may fragment it into several runs in between.
package text
