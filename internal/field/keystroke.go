package field

import (
	"github.com/dshills/mathtext/internal/tree"
)

// suppressor is implemented by root blocks that swallow certain
// keystrokes so the host types the character instead.
type suppressor interface {
	SuppressesKeystroke(key string) bool
}

// Keystroke handles one named key chord. Names follow the usual
// browser-ish convention: Left, Right, Shift-Left, Shift-Right,
// Backspace, Del, Home, End, Shift-Home, Shift-End. It returns false
// when the root suppresses the key and the host should fall through to
// character input.
func (f *Field) Keystroke(key string) bool {
	if s, ok := f.root.(suppressor); ok && s.SuppressesKeystroke(key) {
		return false
	}
	switch key {
	case "Left":
		f.moveDir(tree.L)
	case "Right":
		f.moveDir(tree.R)
	case "Shift-Left":
		f.selectDir(tree.L)
	case "Shift-Right":
		f.selectDir(tree.R)
	case "Backspace":
		f.deleteDir(tree.L)
	case "Del":
		f.deleteDir(tree.R)
	case "Home":
		f.moveToEnd(tree.L)
	case "End":
		f.moveToEnd(tree.R)
	case "Shift-Home":
		f.selectToEnd(tree.L)
	case "Shift-End":
		f.selectToEnd(tree.R)
	default:
		return false
	}
	return true
}

// moveDir moves the caret one step. A standing selection collapses to
// its near edge instead of moving.
func (f *Field) moveDir(d tree.Dir) {
	c := f.cursor
	if sel := c.Selection(); sel != nil {
		c.InsDirOf(d, sel.End(d))
		c.ClearSelection()
	} else if n := c.Side(d); n != nil {
		n.MoveTowards(d, c)
	} else if c.Parent != c.Root() {
		c.Parent.MoveOutOf(d, c)
	}
	c.EndSelection()
	c.Show()
	f.flush(EditStructure)
}

func (f *Field) moveToEnd(d tree.Dir) {
	c := f.cursor
	if sel := c.Selection(); sel != nil {
		c.InsDirOf(d, sel.End(d))
		c.ClearSelection()
	}
	c.InsAtDirEnd(d, c.Parent)
	c.EndSelection()
	c.Show()
	f.flush(EditStructure)
}

// deleteDir deletes one step. A standing selection is deleted whole.
func (f *Field) deleteDir(d tree.Dir) {
	c := f.cursor
	c.Show()
	if c.Selection() != nil {
		c.DeleteSelection()
		c.EndSelection()
	} else if n := c.Side(d); n != nil {
		n.DeleteTowards(d, c)
	} else if c.Parent != c.Root() {
		c.Parent.DeleteOutOf(d, c)
	}
	tree.BubbleReflow(c.Parent)
	f.flush(EditDelete)
}

// selectDir grows or retracts the selection one step toward d. The
// anticursor pins the fixed edge; stepping back toward it unselects.
func (f *Field) selectDir(d tree.Dir) {
	c := f.cursor
	if c.Anticursor() == nil {
		c.StartSelection()
	}
	if n := c.Side(d); n != nil {
		sel := c.Selection()
		if sel != nil && sel.End(d) == n && c.Anticursor().Side(d.Opp()) != n {
			n.UnselectInto(d, c)
		} else {
			n.SelectTowards(d, c)
		}
	} else if c.Parent != c.Root() {
		c.Parent.SelectOutOf(d, c)
	}
	c.ClearSelection()
	if !c.Select() {
		c.Show()
	}
	f.flush(EditStructure)
}

func (f *Field) selectToEnd(d tree.Dir) {
	for f.cursor.Side(d) != nil {
		f.selectDir(d)
	}
}

// SelectAll selects the field's whole content.
func (f *Field) SelectAll() {
	c := f.cursor
	c.ClearSelection()
	c.EndSelection()
	c.InsAtLeftEnd(f.root)
	f.selectToEnd(tree.R)
}
