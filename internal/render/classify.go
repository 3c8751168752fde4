package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yungbote/carousel-backend/internal/domain"
)

// maxTitleLineLength bounds rule 3: an all-caps line only reads as a title
// when it is short.
const maxTitleLineLength = 50

// ClassifyContent splits one slide's text into ordered title/body blocks,
// one block per non-blank line. Rules, in priority order:
//
//  1. **text** markers on both ends: title, markers stripped
//  2. leading #: title, hashes and surrounding whitespace stripped
//  3. fully upper-case and under 50 characters: title, as-is
//  4. anything else: body
//
// Consecutive body lines are never merged; block boundaries drive the
// inter-block spacing in the layout.
func ClassifyContent(text string) []domain.ContentBlock {
	lines := strings.Split(text, "\n")
	blocks := make([]domain.ContentBlock, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**"):
			blocks = append(blocks, domain.ContentBlock{Kind: domain.BlockTitle, Text: stripBoldMarkers(line)})
		case strings.HasPrefix(line, "#"):
			blocks = append(blocks, domain.ContentBlock{Kind: domain.BlockTitle, Text: strings.TrimSpace(strings.TrimLeft(line, "#"))})
		case isUpperLine(line) && utf8.RuneCountInString(line) < maxTitleLineLength:
			blocks = append(blocks, domain.ContentBlock{Kind: domain.BlockTitle, Text: line})
		default:
			blocks = append(blocks, domain.ContentBlock{Kind: domain.BlockBody, Text: line})
		}
	}
	return blocks
}

func stripBoldMarkers(line string) string {
	if len(line) < 4 {
		return ""
	}
	return strings.TrimSpace(line[2 : len(line)-2])
}

// isUpperLine reports whether the line contains at least one cased letter and
// no lower-case letters.
func isUpperLine(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			hasCased = true
		}
	}
	return hasCased
}
