package render

import (
	runewidth "github.com/mattn/go-runewidth"

	"github.com/dshills/mathtext/internal/grapheme"
)

// Metrics measures horizontal advances of rendered text.
type Metrics interface {
	// Advance returns the width in pixels of s when rendered.
	Advance(s string) float64
}

// CellMetrics measures text the way a terminal does: every grapheme cluster
// occupies one or two character cells, scaled by the pixel width of a cell.
// Double-width clusters (CJK, most emoji) make advances non-uniform, which
// is exactly what the seek refinement loop exists to correct for.
type CellMetrics struct {
	// CellWidth is the pixel width of a single terminal cell.
	CellWidth float64
}

// Advance implements Metrics.
func (m CellMetrics) Advance(s string) float64 {
	cells := 0
	for _, c := range grapheme.Clusters(s) {
		w := runewidth.StringWidth(c)
		if w < 1 {
			w = 1
		}
		cells += w
	}
	return float64(cells) * m.CellWidth
}

// DefaultMetrics returns CellMetrics with an 8px cell, the fallback used
// when a rendered tree has no root metrics configured.
func DefaultMetrics() Metrics {
	return CellMetrics{CellWidth: 8}
}
