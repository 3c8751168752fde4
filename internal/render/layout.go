package render

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/yungbote/carousel-backend/internal/domain"
)

const (
	// Extra vertical gap after a block, on top of the per-line advance.
	titleGap = 30
	bodyGap  = 20

	decorationMargin = 20
)

// Faces carries the two sized faces one slide render needs. Both come from
// the same family; title blocks use the larger cut.
type Faces struct {
	Title font.Face
	Body  font.Face
}

// DrawSlide lays the slide's classified blocks onto the context top-down from
// the padding edge, then draws the optional page number and logo text.
// Content past the bottom edge is clipped by the canvas; there is no reflow.
func DrawSlide(dc *gg.Context, blocks []domain.ContentBlock, faces Faces, cfg domain.RenderConfig, slideNumber, totalSlides int) {
	padding := float64(cfg.Padding)
	contentWidth := float64(dc.Width()) - 2*padding

	textColor, err := ParseHex(cfg.TextColor)
	if err != nil {
		textColor = color.NRGBA{A: 0xff}
	}
	dc.SetColor(textColor)

	y := padding
	for _, block := range blocks {
		face := faces.Body
		gap := float64(bodyGap)
		if block.Kind == domain.BlockTitle {
			face = faces.Title
			gap = titleGap
		}
		y = drawTextBlock(dc, block.Text, face, padding, y, contentWidth, cfg.LineSpacing, cfg.TextAlign)
		y += gap
	}

	if cfg.AddPageNumbers && totalSlides > 0 {
		drawPageNumber(dc, faces.Body, slideNumber, totalSlides)
	}
	if cfg.AddLogoText && cfg.LogoText != "" {
		drawLogoText(dc, faces.Body, cfg.LogoText)
	}
}

// drawTextBlock wraps one block to the content width and draws it line by
// line, returning the cursor position below the last line.
func drawTextBlock(dc *gg.Context, text string, face font.Face, x, y, maxWidth, lineSpacing float64, align string) float64 {
	dc.SetFontFace(face)
	asc := ascent(face)

	for _, line := range WrapText(dc, text, maxWidth) {
		lineWidth, lineHeight := dc.MeasureString(line)

		lineX := x
		switch align {
		case domain.AlignCenter:
			lineX = x + (maxWidth-lineWidth)/2
		case domain.AlignRight:
			lineX = x + maxWidth - lineWidth
		}

		dc.DrawString(line, lineX, y+asc)
		y += lineHeight * lineSpacing
	}
	return y
}

func drawPageNumber(dc *gg.Context, face font.Face, slideNumber, totalSlides int) {
	dc.SetFontFace(face)
	text := fmt.Sprintf("%d/%d", slideNumber, totalSlides)
	w, h := dc.MeasureString(text)
	x := float64(dc.Width()) - w - decorationMargin
	y := float64(dc.Height()) - h - decorationMargin
	dc.DrawString(text, x, y+ascent(face))
}

func drawLogoText(dc *gg.Context, face font.Face, logoText string) {
	dc.SetFontFace(face)
	_, h := dc.MeasureString(logoText)
	y := float64(dc.Height()) - h - decorationMargin
	dc.DrawString(logoText, decorationMargin, y+ascent(face))
}

// DrawString anchors at the baseline; block cursors track the line top.
func ascent(face font.Face) float64 {
	return float64(face.Metrics().Ascent) / 64
}
