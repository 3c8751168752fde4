package render

import (
	"strings"
	"unicode/utf8"
)

const (
	// autoSplitThreshold is the text length above which separator-less input
	// is broken into multiple slides.
	autoSplitThreshold = 1000
	// autoSplitChunkSize is the per-slide target during auto-splitting.
	autoSplitChunkSize = 800
)

// SegmentSlides splits raw text into ordered slide strings. Text is split on
// the literal separator, each part trimmed, empty parts dropped. When that
// yields a single slide and the original text is longer than the auto-split
// threshold, the text is re-split on paragraph boundaries instead.
func SegmentSlides(text, separator string) []string {
	if separator == "" {
		separator = "========"
	}
	parts := strings.Split(text, separator)
	slides := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			slides = append(slides, p)
		}
	}
	if len(slides) == 1 && utf8.RuneCountInString(text) > autoSplitThreshold {
		return autoSplitText(text)
	}
	return slides
}

// autoSplitText greedily packs blank-line-separated paragraphs into chunks
// under autoSplitChunkSize characters. A paragraph already at or over the
// target becomes its own slide; paragraphs are never split internally.
func autoSplitText(text string) []string {
	rawParas := strings.Split(text, "\n\n")
	paragraphs := make([]string, 0, len(rawParas))
	for _, p := range rawParas {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	slides := []string{}
	current := ""
	for _, para := range paragraphs {
		if utf8.RuneCountInString(current)+utf8.RuneCountInString(para) < autoSplitChunkSize {
			if current == "" {
				current = para
			} else {
				current += "\n\n" + para
			}
		} else {
			if current != "" {
				slides = append(slides, strings.TrimSpace(current))
			}
			current = para
		}
	}
	if current != "" {
		slides = append(slides, strings.TrimSpace(current))
	}
	return slides
}
