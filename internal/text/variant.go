package text

// Variant configures one rendering of the region engine. All style
// variants share the exact same editing behavior; only the control
// sequence, the accessible label, and the rendered tag differ.
type Variant struct {
	// CtrlSeq is the LaTeX wrapper, e.g. `\text`.
	CtrlSeq string
	// AriaLabel names the region for accessibility announcements.
	AriaLabel string
	// Speak is the two-element speakable template announced when the
	// cursor crosses the region's open and close boundaries.
	Speak [2]string
	// Tag is the rendered container's tag.
	Tag string
	// Attrs are extra rendered container attributes.
	Attrs map[string]string
}

func makeVariant(ctrlSeq, label, tag string, attrs map[string]string) Variant {
	return Variant{
		CtrlSeq:   ctrlSeq,
		AriaLabel: label,
		Speak:     [2]string{"start " + label, "end " + label},
		Tag:       tag,
		Attrs:     attrs,
	}
}

// Builtins returns the static table of region variants, built once at
// startup and immutable thereafter. Callers index it by control sequence.
func Builtins() []Variant {
	return []Variant{
		makeVariant(`\text`, "text", "span", map[string]string{"class": "text-mode"}),
		makeVariant(`\textit`, "italic", "i", nil),
		makeVariant(`\textbf`, "bold", "b", nil),
		makeVariant(`\textsf`, "sans-serif", "span", map[string]string{"class": "sans-serif"}),
		makeVariant(`\texttt`, "monospace", "span", map[string]string{"class": "monospace"}),
		makeVariant(`\textsc`, "small-caps", "span", map[string]string{"style": "font-variant:small-caps"}),
		makeVariant(`\uppercase`, "uppercase", "span", map[string]string{"style": "text-transform:uppercase"}),
		makeVariant(`\lowercase`, "lowercase", "span", map[string]string{"style": "text-transform:lowercase"}),
	}
}

// TextVariant returns the canonical `\text` variant.
func TextVariant() Variant {
	return Builtins()[0]
}
