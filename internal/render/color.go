package render

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"math"
	"strings"
)

// ParseHex parses a #RRGGBB color. The leading '#' is optional.
func ParseHex(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("expected 6 hex chars, got %q", s)
	}
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 3 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xff}, nil
}

// MustParseHex is ParseHex for trusted literals; invalid input yields opaque black.
func MustParseHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}

func HexString(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ContrastRatio computes the WCAG luminance contrast between two colors.
// The result is in [1, 21]: 21 for black on white, 1 for identical colors.
func ContrastRatio(a, b color.NRGBA) float64 {
	la := relativeLuminance(a)
	lb := relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func relativeLuminance(c color.NRGBA) float64 {
	r := gammaExpand(float64(c.R) / 255)
	g := gammaExpand(float64(c.G) / 255)
	b := gammaExpand(float64(c.B) / 255)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func gammaExpand(c float64) float64 {
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// IsLight reports whether a color reads as light, using perceived brightness.
func IsLight(c color.NRGBA) bool {
	brightness := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
	return brightness > 127
}
