package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/yungbote/carousel-backend/internal/domain"
)

// ComposeSlide renders one slide's text onto a fresh canvas and returns PNG
// bytes. With a corner radius the canvas is clipped to a rounded rectangle
// before the background fill, leaving transparent corners.
func ComposeSlide(text string, cfg domain.RenderConfig, faces Faces, width, height, slideNumber, totalSlides int) ([]byte, error) {
	dc := gg.NewContext(width, height)

	if cfg.CornerRadius > 0 {
		dc.DrawRoundedRectangle(0, 0, float64(width), float64(height), float64(cfg.CornerRadius))
		dc.Clip()
	}

	bg, err := ParseHex(cfg.BackgroundColor)
	if err != nil {
		bg = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	dc.SetColor(bg)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()

	DrawSlide(dc, ClassifyContent(text), faces, cfg, slideNumber, totalSlides)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
