package field

// MouseDown seeks the caret to the pixel position x and arms drag
// selection there.
func (f *Field) MouseDown(x float64) {
	c := f.cursor
	c.ClearSelection()
	c.EndSelection()
	f.root.Seek(x, c)
	c.StartSelection()
	f.dragging = true
	if !f.focused {
		f.Focus()
		return
	}
	f.flush(EditStructure)
}

// DragTo extends a drag selection to the pixel position x. It is a
// no-op unless a MouseDown armed the drag and drag selection is enabled;
// a keyboard-started selection has no seek anchor and is never dragged.
func (f *Field) DragTo(x float64) {
	if !f.cfg.Input.DragSelect || !f.dragging {
		return
	}
	c := f.cursor
	if c.Anticursor() == nil {
		return
	}
	c.ClearSelection()
	f.root.Seek(x, c)
	if !c.Select() {
		c.Show()
	}
	f.flush(EditStructure)
}

// MouseUp finishes a drag, leaving any selection standing.
func (f *Field) MouseUp() {
	f.dragging = false
	f.cursor.EndSelection()
	f.flush(EditStructure)
}

// ClickAt is a click with no drag: seek and show the caret.
func (f *Field) ClickAt(x float64) {
	f.MouseDown(x)
	f.MouseUp()
	f.cursor.Show()
}
