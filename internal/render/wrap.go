package render

import "strings"

// Measurer measures rendered text in pixels. *gg.Context satisfies it once a
// font face is set.
type Measurer interface {
	MeasureString(s string) (w, h float64)
}

// WrapText greedily wraps text to maxWidth pixels. Words are joined by a
// single space while the candidate line still fits; an individual word wider
// than maxWidth is broken at character granularity. Every returned line fits
// within maxWidth except a line holding a single glyph wider than the width.
func WrapText(m Measurer, text string, maxWidth float64) []string {
	words := strings.Fields(text)
	lines := []string{}
	current := ""

	for _, word := range words {
		test := word
		if current != "" {
			test = current + " " + word
		}
		w, _ := m.MeasureString(test)
		if w <= maxWidth {
			current = test
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word

		ww, _ := m.MeasureString(word)
		if ww > maxWidth {
			lines = append(lines, breakLongWord(m, word, maxWidth)...)
			current = ""
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// breakLongWord accumulates characters while the part still fits, flushing on
// overflow. A single character wider than maxWidth becomes its own part.
func breakLongWord(m Measurer, word string, maxWidth float64) []string {
	parts := []string{}
	current := ""
	for _, r := range word {
		test := current + string(r)
		w, _ := m.MeasureString(test)
		if w <= maxWidth {
			current = test
			continue
		}
		if current != "" {
			parts = append(parts, current)
		}
		current = string(r)
	}
	if current != "" {
		parts = append(parts, current)
	}
	return parts
}
