package fonts

import (
	"os"

	"github.com/golang/freetype/truetype"
)

// Well-known system font locations, most specific distros first. The local
// fonts/ entries cover containers that ship a font next to the binary.
var defaultSystemFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
	"/System/Library/Fonts/Arial.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"C:/Windows/Fonts/arial.ttf",
	"C:/Windows/Fonts/calibri.ttf",
	"fonts/DejaVuSans.ttf",
	"fonts/arial.ttf",
}

// probeSystemFonts returns the first path whose contents parse as a usable
// font, along with the parsed font. Unreadable and malformed files are
// skipped.
func probeSystemFonts(paths []string) (string, *truetype.Font, bool) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			continue
		}
		return path, f, true
	}
	return "", nil, false
}
