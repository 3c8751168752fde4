package render

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// charMeasurer charges a fixed width per character, height 12.
type charMeasurer struct {
	perChar float64
}

func (m charMeasurer) MeasureString(s string) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * m.perChar, 12
}

func TestWrapTextFitsWidth(t *testing.T) {
	t.Parallel()
	m := charMeasurer{perChar: 10}
	text := "This is a long text that should be wrapped into multiple lines"
	lines := WrapText(m, text, 200)
	if len(lines) < 2 {
		t.Fatalf("want multiple lines, got=%d", len(lines))
	}
	for i, line := range lines {
		if utf8.RuneCountInString(line) > 20 {
			t.Fatalf("line %d over width: %q (%d chars)", i, line, utf8.RuneCountInString(line))
		}
	}
	// no words lost
	joined := strings.Join(lines, " ")
	if joined != text {
		t.Fatalf("content changed:\nwant=%q\ngot=%q", text, joined)
	}
}

func TestWrapTextSingleShortLine(t *testing.T) {
	t.Parallel()
	m := charMeasurer{perChar: 10}
	lines := WrapText(m, "short", 200)
	if len(lines) != 1 || lines[0] != "short" {
		t.Fatalf("want [short], got=%v", lines)
	}
}

func TestWrapTextEmpty(t *testing.T) {
	t.Parallel()
	m := charMeasurer{perChar: 10}
	if lines := WrapText(m, "   ", 200); len(lines) != 0 {
		t.Fatalf("blank input: want no lines, got=%v", lines)
	}
}

func TestWrapTextBreaksLongWord(t *testing.T) {
	t.Parallel()
	m := charMeasurer{perChar: 10}
	word := "supercalifragilisticexpialidocious" // 34 chars, 340px
	lines := WrapText(m, word, 100)
	if len(lines) < 3 {
		t.Fatalf("want >=3 parts, got=%d (%v)", len(lines), lines)
	}
	for i, line := range lines {
		if utf8.RuneCountInString(line) > 10 {
			t.Fatalf("part %d over width: %q", i, line)
		}
	}
	if strings.Join(lines, "") != word {
		t.Fatalf("characters lost: %v", lines)
	}
}

func TestWrapTextLongWordAmongShortOnes(t *testing.T) {
	t.Parallel()
	m := charMeasurer{perChar: 10}
	lines := WrapText(m, "ok thisalonewordistoolongtofit end", 100)
	for i, line := range lines {
		if utf8.RuneCountInString(line) > 10 {
			t.Fatalf("line %d over width: %q", i, line)
		}
	}
	if lines[0] != "ok" {
		t.Fatalf("first line: want=%q got=%q", "ok", lines[0])
	}
	if lines[len(lines)-1] != "end" {
		t.Fatalf("last line: want=%q got=%q", "end", lines[len(lines)-1])
	}
}

func TestBreakLongWordSingleWideGlyph(t *testing.T) {
	t.Parallel()
	// every glyph is wider than the limit; each becomes its own part
	m := charMeasurer{perChar: 50}
	parts := breakLongWord(m, "abc", 40)
	if len(parts) != 3 {
		t.Fatalf("want 3 single-glyph parts, got=%v", parts)
	}
}
