package render

import (
	"image"
	"testing"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/yungbote/carousel-backend/internal/domain"
)

func testFaces(t *testing.T, titleSize, bodySize float64) Faces {
	t.Helper()
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("truetype.Parse: %v", err)
	}
	newFace := func(size float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
	}
	return Faces{Title: newFace(titleSize), Body: newFace(bodySize)}
}

func whiteCanvas(w, h int) *gg.Context {
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	return dc
}

// inkBounds returns the bounding box of all non-white pixels.
func inkBounds(img image.Image) (minX, minY, maxX, maxY int, ok bool) {
	b := img.Bounds()
	minX, minY = b.Max.X, b.Max.Y
	maxX, maxY = -1, -1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r < 0xf000 || g < 0xf000 || bl < 0xf000 {
				if x < minX {
					minX = x
				}
				if y < minY {
					minY = y
				}
				if x > maxX {
					maxX = x
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	return minX, minY, maxX, maxY, maxX >= 0
}

func regionHasInk(img image.Image, x0, y0, x1, y1 int) bool {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r < 0xf000 || g < 0xf000 || b < 0xf000 {
				return true
			}
		}
	}
	return false
}

func TestDrawSlideAlignment(t *testing.T) {
	t.Parallel()

	faces := testFaces(t, 24, 24)
	block := []domain.ContentBlock{{Kind: domain.BlockBody, Text: "Hi"}}

	render := func(align string) image.Image {
		cfg := domain.DefaultRenderConfig()
		cfg.Padding = 40
		cfg.TextAlign = align
		dc := whiteCanvas(400, 120)
		DrawSlide(dc, block, faces, cfg, 1, 1)
		return dc.Image()
	}

	leftMinX, _, _, _, ok := inkBounds(render(domain.AlignLeft))
	if !ok {
		t.Fatalf("left aligned: no ink drawn")
	}
	rightMinX, _, rightMaxX, _, ok := inkBounds(render(domain.AlignRight))
	if !ok {
		t.Fatalf("right aligned: no ink drawn")
	}
	centerMinX, _, _, _, ok := inkBounds(render(domain.AlignCenter))
	if !ok {
		t.Fatalf("center aligned: no ink drawn")
	}

	if leftMinX > 60 {
		t.Fatalf("left aligned minX: want near padding 40, got %d", leftMinX)
	}
	if rightMinX < 250 {
		t.Fatalf("right aligned minX: want > 250, got %d", rightMinX)
	}
	if rightMaxX > 365 {
		t.Fatalf("right aligned maxX: want within content edge 360, got %d", rightMaxX)
	}
	if centerMinX <= leftMinX || centerMinX >= rightMinX {
		t.Fatalf("center aligned minX: want between %d and %d, got %d", leftMinX, rightMinX, centerMinX)
	}
}

func TestDrawSlideTitleUsesTitleFace(t *testing.T) {
	t.Parallel()

	faces := testFaces(t, 64, 16)
	cfg := domain.DefaultRenderConfig()
	cfg.Padding = 20

	inkHeight := func(kind domain.BlockKind) int {
		dc := whiteCanvas(400, 200)
		DrawSlide(dc, []domain.ContentBlock{{Kind: kind, Text: "AB"}}, faces, cfg, 1, 1)
		_, minY, _, maxY, ok := inkBounds(dc.Image())
		if !ok {
			t.Fatalf("no ink drawn for %s block", kind)
		}
		return maxY - minY
	}

	titleHeight := inkHeight(domain.BlockTitle)
	bodyHeight := inkHeight(domain.BlockBody)
	if titleHeight <= bodyHeight {
		t.Fatalf("title ink height: want > body (%d), got %d", bodyHeight, titleHeight)
	}
	if titleHeight < 25 {
		t.Fatalf("title ink height: want >= 25 for 64px face, got %d", titleHeight)
	}
}

func TestDrawSlideBlocksStack(t *testing.T) {
	t.Parallel()

	faces := testFaces(t, 24, 24)
	cfg := domain.DefaultRenderConfig()
	cfg.Padding = 20

	maxYFor := func(blocks []domain.ContentBlock) int {
		dc := whiteCanvas(300, 300)
		DrawSlide(dc, blocks, faces, cfg, 1, 1)
		_, _, _, maxY, ok := inkBounds(dc.Image())
		if !ok {
			t.Fatalf("no ink drawn")
		}
		return maxY
	}

	one := maxYFor([]domain.ContentBlock{{Kind: domain.BlockBody, Text: "first"}})
	two := maxYFor([]domain.ContentBlock{
		{Kind: domain.BlockBody, Text: "first"},
		{Kind: domain.BlockBody, Text: "second"},
	})
	if two <= one {
		t.Fatalf("second block must draw below the first: one=%d two=%d", one, two)
	}
}

func TestDrawSlidePageNumbers(t *testing.T) {
	t.Parallel()

	faces := testFaces(t, 24, 24)
	const w, h = 300, 300

	render := func(enabled bool) image.Image {
		cfg := domain.DefaultRenderConfig()
		cfg.Padding = 20
		cfg.AddPageNumbers = enabled
		dc := whiteCanvas(w, h)
		DrawSlide(dc, nil, faces, cfg, 2, 5)
		return dc.Image()
	}

	if !regionHasInk(render(true), w-120, h-60, w, h) {
		t.Fatalf("page number: want ink in bottom-right region")
	}
	if regionHasInk(render(false), w-120, h-60, w, h) {
		t.Fatalf("page number disabled: want no ink in bottom-right region")
	}
}

func TestDrawSlideLogoText(t *testing.T) {
	t.Parallel()

	faces := testFaces(t, 24, 24)
	const w, h = 300, 300

	render := func(enabled bool, logo string) image.Image {
		cfg := domain.DefaultRenderConfig()
		cfg.Padding = 20
		cfg.AddLogoText = enabled
		cfg.LogoText = logo
		dc := whiteCanvas(w, h)
		DrawSlide(dc, nil, faces, cfg, 1, 1)
		return dc.Image()
	}

	if !regionHasInk(render(true, "@brand"), 0, h-60, 150, h) {
		t.Fatalf("logo text: want ink in bottom-left region")
	}
	if regionHasInk(render(true, ""), 0, h-60, 150, h) {
		t.Fatalf("empty logo text: want no ink in bottom-left region")
	}
	if regionHasInk(render(false, "@brand"), 0, h-60, 150, h) {
		t.Fatalf("logo disabled: want no ink in bottom-left region")
	}
}

func TestDrawSlideInvalidTextColorFallsBack(t *testing.T) {
	t.Parallel()

	faces := testFaces(t, 24, 24)
	cfg := domain.DefaultRenderConfig()
	cfg.Padding = 20
	cfg.TextColor = "not-a-color"

	dc := whiteCanvas(200, 100)
	DrawSlide(dc, []domain.ContentBlock{{Kind: domain.BlockBody, Text: "x"}}, faces, cfg, 1, 1)
	if _, _, _, _, ok := inkBounds(dc.Image()); !ok {
		t.Fatalf("invalid text color: want black fallback ink, got none")
	}
}
