// Package tree implements the editor's node tree: parent and sibling
// links, end-child pointers, adopt/disown of contiguous sibling fragments,
// and the transient positions that ride on top of the tree (cursor,
// anticursor, selection).
//
// A position is always a gap between two sibling nodes, or the open end of
// a block. Positions are not stored in the tree; an edit consumes the
// cursor it was given and leaves it pointing at the new neighbors.
//
// Structural operations never touch the rendered mirror on their own.
// Node implementations mutate their rendered element and their logical
// state in lock-step, so that the two never diverge across the boundary of
// a public operation.
package tree
