package render

import (
	"fmt"
	"strings"

	"github.com/dshills/mathtext/internal/grapheme"
)

// Elem is a rendered element: a Text fragment or a Span container.
type Elem interface {
	// Parent returns the containing Span, or nil for a detached element
	// or the root.
	Parent() *Span

	// Width returns the element's rendered width in pixels.
	Width() float64

	setParent(*Span)
}

// Rect is a rendered bounding box. Layout is single-line, so only the
// horizontal extent matters.
type Rect struct {
	Left  float64
	Width float64
}

// Right returns the right edge of the rect.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Text is a rendered run of characters, the mirror of one logical text run.
type Text struct {
	parent *Span
	data   string
}

// NewText creates a detached rendered text holding s.
func NewText(s string) *Text {
	return &Text{data: s}
}

// Parent implements Elem.
func (t *Text) Parent() *Span { return t.parent }

func (t *Text) setParent(s *Span) { t.parent = s }

// Data returns the character data.
func (t *Text) Data() string { return t.data }

// AppendData appends s to the character data.
func (t *Text) AppendData(s string) { t.data += s }

// PrependData prepends s to the character data.
func (t *Text) PrependData(s string) { t.data = s + t.data }

// DeleteData removes n grapheme clusters starting at cluster offset i.
func (t *Text) DeleteData(i, n int) {
	prefix, rest := grapheme.SplitAt(t.data, i)
	_, suffix := grapheme.SplitAt(rest, n)
	t.data = prefix + suffix
}

// SplitAt splits the text before cluster offset i, leaving the prefix in t
// and returning a new sibling holding the suffix, inserted immediately
// after t in the parent span. The two fragments concatenate to the
// original data.
func (t *Text) SplitAt(i int) *Text {
	if t.parent == nil {
		panic("mathtext: split of detached rendered text")
	}
	prefix, suffix := grapheme.SplitAt(t.data, i)
	next := NewText(suffix)
	t.parent.InsertAfter(next, t)
	t.data = prefix
	return next
}

// Width implements Elem.
func (t *Text) Width() float64 {
	return metricsFor(t).Advance(t.data)
}

// Rects returns the bounding rects of the text: one rect when there is
// character data, none when empty.
func (t *Text) Rects() []Rect {
	if t.data == "" {
		return nil
	}
	return []Rect{{Left: X(t), Width: t.Width()}}
}

// Span is a rendered container. The root span additionally carries layout
// metrics and a pixel origin for its content.
type Span struct {
	parent   *Span
	tag      string
	attrs    map[string]string
	children []Elem

	metrics Metrics
	origin  float64
}

// NewSpan creates a detached span with the given render tag.
func NewSpan(tag string) *Span {
	return &Span{tag: tag}
}

// NewRoot creates a root span positioned at origin and measured by m.
func NewRoot(m Metrics, origin float64) *Span {
	return &Span{tag: "root", metrics: m, origin: origin}
}

// Parent implements Elem.
func (s *Span) Parent() *Span { return s.parent }

func (s *Span) setParent(p *Span) { s.parent = p }

// Tag returns the span's render tag.
func (s *Span) Tag() string { return s.tag }

// SetAttr records a render attribute on the span.
func (s *Span) SetAttr(key, value string) {
	if s.attrs == nil {
		s.attrs = map[string]string{}
	}
	s.attrs[key] = value
}

// Attr returns a render attribute, or "".
func (s *Span) Attr(key string) string { return s.attrs[key] }

// AppendChild adds e as the last child of s.
func (s *Span) AppendChild(e Elem) { s.InsertBefore(e, nil) }

// InsertBefore inserts e immediately before ref; a nil ref appends.
func (s *Span) InsertBefore(e, ref Elem) {
	if e.Parent() != nil {
		panic("mathtext: rendered element inserted while still attached")
	}
	if ref == nil {
		s.children = append(s.children, e)
	} else {
		i := s.indexOf(ref)
		s.children = append(s.children, nil)
		copy(s.children[i+1:], s.children[i:])
		s.children[i] = e
	}
	e.setParent(s)
}

// InsertAfter inserts e immediately after ref; a nil ref prepends.
func (s *Span) InsertAfter(e, ref Elem) {
	if ref == nil {
		if len(s.children) == 0 {
			s.InsertBefore(e, nil)
		} else {
			s.InsertBefore(e, s.children[0])
		}
		return
	}
	i := s.indexOf(ref)
	if i+1 == len(s.children) {
		s.InsertBefore(e, nil)
	} else {
		s.InsertBefore(e, s.children[i+1])
	}
}

// RemoveChild detaches e from s.
func (s *Span) RemoveChild(e Elem) {
	i := s.indexOf(e)
	s.children = append(s.children[:i], s.children[i+1:]...)
	e.setParent(nil)
}

func (s *Span) indexOf(e Elem) int {
	for i, c := range s.children {
		if c == e {
			return i
		}
	}
	panic(fmt.Sprintf("mathtext: rendered element not a child of span %q", s.tag))
}

// FirstChild returns the first child, or nil.
func (s *Span) FirstChild() Elem {
	if len(s.children) == 0 {
		return nil
	}
	return s.children[0]
}

// ChildCount returns the number of children.
func (s *Span) ChildCount() int { return len(s.children) }

// Children returns the children slice; callers must not mutate it.
func (s *Span) Children() []Elem { return s.children }

// Normalize merges runs of adjacent Text children into single Texts and
// drops empty Texts, the rendered-side half of fuse.
func (s *Span) Normalize() {
	out := s.children[:0]
	for _, c := range s.children {
		t, ok := c.(*Text)
		if !ok {
			out = append(out, c)
			continue
		}
		if t.data == "" {
			t.parent = nil
			continue
		}
		if len(out) > 0 {
			if prev, ok := out[len(out)-1].(*Text); ok {
				prev.data += t.data
				t.parent = nil
				continue
			}
		}
		out = append(out, t)
	}
	s.children = out
}

// Width implements Elem: the sum of the children's widths.
func (s *Span) Width() float64 {
	var w float64
	for _, c := range s.children {
		w += c.Width()
	}
	return w
}

// TextContent returns the concatenated character data under s.
func (s *Span) TextContent() string {
	var b strings.Builder
	for _, c := range s.children {
		switch e := c.(type) {
		case *Text:
			b.WriteString(e.data)
		case *Span:
			b.WriteString(e.TextContent())
		}
	}
	return b.String()
}

// X returns the absolute left edge of e in pixels.
func X(e Elem) float64 {
	p := e.Parent()
	if p == nil {
		if s, ok := e.(*Span); ok {
			return s.origin
		}
		return 0
	}
	x := X(p)
	for _, c := range p.children {
		if c == e {
			break
		}
		x += c.Width()
	}
	return x
}

func metricsFor(e Elem) Metrics {
	for s := e.Parent(); s != nil; s = s.parent {
		if s.metrics != nil {
			return s.metrics
		}
	}
	if s, ok := e.(*Span); ok && s.metrics != nil {
		return s.metrics
	}
	return DefaultMetrics()
}
