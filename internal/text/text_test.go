package text

import (
	"strings"
	"testing"

	"github.com/dshills/mathtext/internal/a11y"
	"github.com/dshills/mathtext/internal/render"
	"github.com/dshills/mathtext/internal/tree"
)

func newRegionEnv(t *testing.T) (*RootTextBlock, *Block, *tree.Cursor, *a11y.Live) {
	t.Helper()
	live := a11y.NewLive()
	root := NewRootTextBlock(render.CellMetrics{CellWidth: 8}, 0)
	c := tree.NewCursor(root, live)
	b := NewBlock(TextVariant())
	b.InsertAt(c)
	return root, b, c, live
}

func typeString(c *tree.Cursor, s string) {
	for _, ch := range strings.Split(s, "") {
		c.Parent.Write(c, ch)
	}
}

func latexOf(n tree.Node) string {
	var sb strings.Builder
	n.WriteLatex(&sb)
	return sb.String()
}

func regionSpan(b *Block) *render.Span { return tree.SpanOf(b) }

func TestBlock_WriteAccumulates(t *testing.T) {
	_, b, c, _ := newRegionEnv(t)
	typeString(c, "cat")

	if got := b.TextContents(); got != "cat" {
		t.Errorf("TextContents = %q, want %q", got, "cat")
	}
	if got := latexOf(b); got != `\text{cat}` {
		t.Errorf("latex = %q, want %q", got, `\text{cat}`)
	}
	// incremental typing extends a single run
	if b.End(tree.L) != b.End(tree.R) {
		t.Error("expected a single run after appends")
	}
}

func TestBlock_WriteMidRun(t *testing.T) {
	_, b, c, _ := newRegionEnv(t)
	typeString(c, "cat")

	// step left over "t", then type
	c.Side(tree.L).MoveTowards(tree.L, c)
	typeString(c, "d")

	if got := b.TextContents(); got != "cadt" {
		t.Errorf("TextContents = %q, want %q", got, "cadt")
	}
	if got := regionSpan(b).TextContent(); got != "cadt" {
		t.Errorf("rendered mirror = %q, want %q", got, "cadt")
	}

	// forward delete removes the run to the right
	c.Side(tree.R).DeleteTowards(tree.R, c)
	if got := b.TextContents(); got != "cad" {
		t.Errorf("after delete = %q, want %q", got, "cad")
	}
}

func TestBlock_DollarInEmptyRegion(t *testing.T) {
	root, b, c, _ := newRegionEnv(t)

	b.Write(c, "$")
	b.Blur(c)

	if got := root.Text(); got != "$" {
		t.Errorf("root text = %q, want %q", got, "$")
	}
	if got := latexOf(root); got != `\$` {
		t.Errorf("root latex = %q, want %q", got, `\$`)
	}
}

func TestBlock_DollarAtRightEnd(t *testing.T) {
	root, b, c, _ := newRegionEnv(t)
	typeString(c, "ab")

	b.Write(c, "$")

	if c.Parent != tree.Node(root) {
		t.Fatal("expected cursor to exit into the root")
	}
	if c.L != tree.Node(b) {
		t.Error("expected cursor immediately right of the region")
	}
	if got := b.TextContents(); got != "ab" {
		t.Errorf("region contents = %q, want %q", got, "ab")
	}
}

func TestBlock_DollarAtLeftEnd(t *testing.T) {
	root, b, c, _ := newRegionEnv(t)
	typeString(c, "ab")
	c.InsAtLeftEnd(b)

	b.Write(c, "$")

	if c.Parent != tree.Node(root) || c.R != tree.Node(b) {
		t.Error("expected cursor immediately left of the region")
	}
	if got := b.TextContents(); got != "ab" {
		t.Errorf("region contents = %q, want %q", got, "ab")
	}
}

func TestBlock_DollarSplitsInterior(t *testing.T) {
	root, b, c, _ := newRegionEnv(t)
	typeString(c, "hello")

	// step left over "llo"
	for i := 0; i < 3; i++ {
		c.Side(tree.L).MoveTowards(tree.L, c)
	}
	b.Write(c, "$")

	left, ok := root.End(tree.L).(*Block)
	if !ok {
		t.Fatal("expected a region at the root's left end")
	}
	if got := left.TextContents(); got != "he" {
		t.Errorf("left region = %q, want %q", got, "he")
	}
	if got := b.TextContents(); got != "llo" {
		t.Errorf("right region = %q, want %q", got, "llo")
	}
	if c.L != tree.Node(left) || c.R != tree.Node(b) {
		t.Error("expected cursor between the two regions")
	}
	if got := latexOf(root); got != `\text{he}\text{llo}` {
		t.Errorf("root latex = %q, want %q", got, `\text{he}\text{llo}`)
	}
}

func TestBlock_LatexEscaping(t *testing.T) {
	_, b, c, _ := newRegionEnv(t)
	b.WriteVerbatim(c, `a\{b}`)

	if got := latexOf(b); got != `\text{a\backslash \{b\}}` {
		t.Errorf("latex = %q, want %q", got, `\text{a\backslash \{b\}}`)
	}
	if got := b.TextContents(); got != `a\{b}` {
		t.Errorf("contents = %q, want %q", got, `a\{b}`)
	}
}

func TestBlock_FuseCollapsesRuns(t *testing.T) {
	_, b, c, _ := newRegionEnv(t)
	typeString(c, "abc")
	c.Side(tree.L).MoveTowards(tree.L, c)
	typeString(c, "x") // two runs now: "abx" and "c"

	pc := b.fuse()
	if pc == nil {
		t.Fatal("expected a fused run")
	}
	if pc.Text() != "abxc" {
		t.Errorf("fused run = %q, want %q", pc.Text(), "abxc")
	}
	if b.End(tree.L) != tree.Node(pc) || b.End(tree.R) != tree.Node(pc) {
		t.Error("expected the fused run to be the region's only child")
	}

	// fusing an already canonical region keeps the content
	pc2 := b.fuse()
	if pc2.Text() != "abxc" {
		t.Errorf("second fuse = %q, want %q", pc2.Text(), "abxc")
	}
}

func TestBlock_BlurRemovesEmptyRegion(t *testing.T) {
	root, b, c, _ := newRegionEnv(t)

	b.Blur(c)

	if !root.IsEmpty() {
		t.Error("expected empty region removed from the root")
	}
	if c.L != nil || c.R != nil {
		t.Error("expected cursor endpoints relinked to nil")
	}
	if b.Parent() != nil {
		t.Error("expected removed region disowned")
	}
}

func TestBlock_DeleteSoleCharRemovesRun(t *testing.T) {
	_, b, c, live := newRegionEnv(t)
	typeString(c, "x")

	c.Side(tree.L).DeleteTowards(tree.L, c)

	if !b.IsEmpty() {
		t.Error("expected region emptied")
	}
	if c.L != nil || c.R != nil {
		t.Error("expected cursor at the empty region's gap")
	}
	live.Flush()
	spoken := live.Spoken()
	if len(spoken) == 0 || !strings.Contains(spoken[len(spoken)-1], "x") {
		t.Errorf("expected deleted character announced, got %v", spoken)
	}
}

func TestBlock_DeleteOntoEmptyRegionSkipsIt(t *testing.T) {
	root, b, c, _ := newRegionEnv(t)
	typeString(c, "a")

	// surround the region with literal characters
	c.InsLeftOf(b)
	typeString(c, "x")
	c.InsRightOf(b)
	typeString(c, "y")

	// empty the region from inside
	c.InsAtRightEnd(b)
	c.Side(tree.L).DeleteTowards(tree.L, c)
	if !b.IsEmpty() {
		t.Fatal("expected region emptied")
	}

	// backspacing onto the empty region removes and skips it, never
	// merging the neighbors into it
	c.InsRightOf(b)
	c.Side(tree.L).DeleteTowards(tree.L, c)

	if b.Parent() != nil {
		t.Error("expected empty region removed from the root")
	}
	if got := root.Text(); got != "xy" {
		t.Errorf("root text = %q, want %q", got, "xy")
	}
	if c.L == nil || c.L.Text() != "x" {
		t.Error("expected cursor relinked right of the preceding character")
	}
	if c.R == nil || c.R.Text() != "y" {
		t.Error("expected cursor still left of the following character")
	}

	// the next backspace reaches the preceding character directly
	c.Side(tree.L).DeleteTowards(tree.L, c)
	if got := root.Text(); got != "y" {
		t.Errorf("root text = %q, want %q", got, "y")
	}
}

func TestBlock_DeleteOutOfBoundaryIsNoop(t *testing.T) {
	root, b, c, _ := newRegionEnv(t)
	typeString(c, "hi")

	// backspace at the region's left end with content remaining
	c.InsAtLeftEnd(b)
	b.DeleteOutOf(tree.L, c)

	if b.Parent() != tree.Node(root) {
		t.Error("expected region still attached")
	}
	if got := b.TextContents(); got != "hi" {
		t.Errorf("TextContents = %q, want %q", got, "hi")
	}
	if c.Parent != tree.Node(b) || c.L != nil {
		t.Error("expected cursor still at the region's left end")
	}
}

func TestBlock_MoveTowardsAnnounces(t *testing.T) {
	root, b, c, live := newRegionEnv(t)
	typeString(c, "hi")
	c.InsRightOf(b)

	// entering leftward announces the end of the region first
	b.MoveTowards(tree.L, c)
	if c.Parent != tree.Node(b) || c.R != nil {
		t.Error("expected cursor inside at the right end")
	}
	live.Flush()
	spoken := live.Spoken()
	if len(spoken) == 0 || !strings.Contains(spoken[len(spoken)-1], "end") {
		t.Errorf("expected end-of-region announcement, got %v", spoken)
	}

	b.MoveOutOf(tree.R, c)
	if c.Parent != tree.Node(root) || c.L != tree.Node(b) {
		t.Error("expected cursor back outside on the right")
	}
}

func TestSymbol_Latex(t *testing.T) {
	root := NewRootTextBlock(render.CellMetrics{CellWidth: 8}, 0)
	c := tree.NewCursor(root, nil)
	typeString(c, "ab")

	if got := latexOf(root); got != "ab" {
		t.Errorf("latex = %q, want %q", got, "ab")
	}
	if got := root.Text(); got != "ab" {
		t.Errorf("text = %q, want %q", got, "ab")
	}
}

func TestSymbol_SeekNearerHalf(t *testing.T) {
	root := NewRootTextBlock(render.CellMetrics{CellWidth: 8}, 0)
	c := tree.NewCursor(root, nil)
	typeString(c, "ab")
	sym := root.End(tree.L)

	sym.Seek(3, c) // left half of "a"
	if c.R != sym {
		t.Error("expected cursor left of the symbol")
	}
	sym.Seek(5, c) // right half of "a"
	if c.L != sym {
		t.Error("expected cursor right of the symbol")
	}
}

func TestRootTextBlock_DollarOpensBridge(t *testing.T) {
	root := NewRootTextBlock(render.CellMetrics{CellWidth: 8}, 0)
	c := tree.NewCursor(root, nil)

	typeString(c, "a$xy$b")

	if got := latexOf(root); got != "a$xy$b" {
		t.Errorf("latex = %q, want %q", got, "a$xy$b")
	}
	if got := root.Text(); got != "axyb" {
		t.Errorf("text = %q, want %q", got, "axyb")
	}
	cmd, ok := root.End(tree.L).Sibling(tree.R).(*RootMathCommand)
	if !ok {
		t.Fatal("expected a math bridge after the first symbol")
	}
	if got := cmd.Text(); got != "xy" {
		t.Errorf("bridge text = %q, want %q", got, "xy")
	}
}

func TestMathBridge_EmptyDollarDegenerates(t *testing.T) {
	root := NewRootTextBlock(render.CellMetrics{CellWidth: 8}, 0)
	c := tree.NewCursor(root, nil)

	typeString(c, "a$")
	// cursor is now inside the empty bridge; a second $ collapses it
	typeString(c, "$")

	if got := latexOf(root); got != `a\$` {
		t.Errorf("latex = %q, want %q", got, `a\$`)
	}
	if got := root.Text(); got != "a$" {
		t.Errorf("text = %q, want %q", got, "a$")
	}
	if c.Parent != tree.Node(root) {
		t.Error("expected cursor back in the root")
	}
}

func TestMathBridge_BoundaryDollarExits(t *testing.T) {
	root := NewRootTextBlock(render.CellMetrics{CellWidth: 8}, 0)
	c := tree.NewCursor(root, nil)

	typeString(c, "$x$")

	if c.Parent != tree.Node(root) {
		t.Fatal("expected cursor to exit the bridge")
	}
	if got := latexOf(root); got != "$x$" {
		t.Errorf("latex = %q, want %q", got, "$x$")
	}

	// typing after the exit extends the outer text
	typeString(c, "y")
	if got := root.Text(); got != "xy" {
		t.Errorf("text = %q, want %q", got, "xy")
	}
}

func TestMathBlock_DeleteOutOfEmptyRemovesBridge(t *testing.T) {
	root := NewRootTextBlock(render.CellMetrics{CellWidth: 8}, 0)
	c := tree.NewCursor(root, nil)

	typeString(c, "a$")
	// backspace out of the empty bridge
	c.Parent.DeleteOutOf(tree.L, c)

	if got := latexOf(root); got != "a" {
		t.Errorf("latex = %q, want %q", got, "a")
	}
	if c.Parent != tree.Node(root) {
		t.Error("expected cursor back in the root")
	}
}

func TestVariants_Builtins(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range Builtins() {
		if v.CtrlSeq == "" || v.Tag == "" {
			t.Errorf("variant %+v missing control sequence or tag", v)
		}
		if seen[v.CtrlSeq] {
			t.Errorf("duplicate control sequence %q", v.CtrlSeq)
		}
		seen[v.CtrlSeq] = true
	}
	if !seen[`\text`] || !seen[`\textit`] || !seen[`\textbf`] {
		t.Error("expected the basic style variants among the builtins")
	}
}

func TestBlock_VariantLatex(t *testing.T) {
	root := NewRootTextBlock(render.CellMetrics{CellWidth: 8}, 0)
	c := tree.NewCursor(root, nil)

	var italic Variant
	for _, v := range Builtins() {
		if v.CtrlSeq == `\textit` {
			italic = v
		}
	}
	b := NewBlock(italic)
	b.InsertAt(c)
	typeString(c, "hi")

	if got := latexOf(root); got != `\textit{hi}` {
		t.Errorf("latex = %q, want %q", got, `\textit{hi}`)
	}
}

func TestBlock_ReplacesReplaysThroughWrite(t *testing.T) {
	root := NewRootTextBlock(render.CellMetrics{CellWidth: 8}, 0)
	c := tree.NewCursor(root, nil)

	b := NewBlock(TextVariant())
	b.Replaces("ab$cd")
	b.InsertAt(c)

	// the staged `$` replays as a mode switch, splitting the replay
	if got := b.TextContents(); got != "ab" {
		t.Errorf("region contents = %q, want %q", got, "ab")
	}
	if got := root.Text(); got != "abcd" {
		t.Errorf("root text = %q, want %q", got, "abcd")
	}
}

func TestPiece_SplitRight(t *testing.T) {
	_, b, c, _ := newRegionEnv(t)
	typeString(c, "hello")

	pc := b.End(tree.L).(*Piece)
	suffix := pc.SplitRight(2)

	if pc.Text() != "he" || suffix.Text() != "llo" {
		t.Errorf("split = (%q, %q), want (he, llo)", pc.Text(), suffix.Text())
	}
	if pc.Sibling(tree.R) != tree.Node(suffix) || suffix.Sibling(tree.L) != tree.Node(pc) {
		t.Error("expected split halves linked as siblings")
	}
	if got := regionSpan(b).TextContent(); got != "hello" {
		t.Errorf("rendered mirror = %q, want %q", got, "hello")
	}
}

func TestPiece_SplitRightBoundsPanic(t *testing.T) {
	_, b, c, _ := newRegionEnv(t)
	typeString(c, "ab")
	pc := b.End(tree.L).(*Piece)

	for _, i := range []int{0, 2, -1, 5} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for split offset %d", i)
				}
			}()
			pc.SplitRight(i)
		}()
	}
}

func TestPiece_MirrorStaysInSync(t *testing.T) {
	_, b, c, _ := newRegionEnv(t)
	typeString(c, "ab")
	pc := b.End(tree.L).(*Piece)

	pc.PrependText("x")
	pc.AppendText("y")

	if pc.Text() != "xaby" {
		t.Errorf("text = %q, want %q", pc.Text(), "xaby")
	}
	if got := pc.rendered().Data(); got != "xaby" {
		t.Errorf("rendered data = %q, want %q", got, "xaby")
	}
}
