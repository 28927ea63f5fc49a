// Package render implements the rendered-primitive side of the editor's
// mirror invariant: every logical text run in the node tree is shadowed by
// exactly one rendered Text, and every block by a Span container.
//
// The package is deliberately backend-agnostic. Geometry is single-line and
// horizontal: an element's position is the sum of the widths of everything
// before it, and widths come from a pluggable Metrics so hit-testing sees
// the same non-uniform glyph widths a real renderer would produce.
package render
