// Package grapheme wraps uniseg so the rest of the editor can treat a
// user-perceived character (grapheme cluster) as the unit of editing.
package grapheme

import "github.com/rivo/uniseg"

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	if s == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(s)
}

// Clusters splits s into its grapheme clusters, in order.
func Clusters(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var c string
		c, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, c)
	}
	return out
}

// SplitAt splits s before the i-th grapheme cluster. i is clamped to
// [0, Count(s)].
func SplitAt(s string, i int) (prefix, suffix string) {
	if i <= 0 {
		return "", s
	}
	rest := s
	state := -1
	for n := 0; n < i && len(rest) > 0; n++ {
		_, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
	}
	return s[:len(s)-len(rest)], rest
}

// First returns the first grapheme cluster of s, or "" if s is empty.
func First(s string) string {
	if s == "" {
		return ""
	}
	c, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return c
}

// Last returns the last grapheme cluster of s, or "" if s is empty.
func Last(s string) string {
	if s == "" {
		return ""
	}
	prefix, _ := SplitAt(s, Count(s)-1)
	return s[len(prefix):]
}
