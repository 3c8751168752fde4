package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/carousel-backend/internal/config"
	"github.com/yungbote/carousel-backend/internal/domain"
	"github.com/yungbote/carousel-backend/internal/fonts"
	errs "github.com/yungbote/carousel-backend/internal/pkg/errors"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

// Renderer turns text plus a validated config into finished slide images.
// Slides render strictly in input order; any failure discards the whole
// carousel.
type Renderer interface {
	RenderCarousel(ctx context.Context, text string, cfg domain.RenderConfig) ([]domain.RenderedSlide, error)
	// RenderSlide renders one slide without segmentation. Non-positive
	// dimensions fall back to the config's platform dimensions.
	RenderSlide(ctx context.Context, text string, cfg domain.RenderConfig, width, height, slideNumber, totalSlides int) (domain.RenderedSlide, error)
}

type renderer struct {
	log       *logger.Logger
	resolver  fonts.Resolver
	maxSlides int
}

func NewRenderer(resolver fonts.Resolver, maxSlides int, log *logger.Logger) Renderer {
	return &renderer{
		log:       log.With("service", "Renderer"),
		resolver:  resolver,
		maxSlides: maxSlides,
	}
}

func (r *renderer) RenderCarousel(ctx context.Context, text string, cfg domain.RenderConfig) ([]domain.RenderedSlide, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errs.ErrEmptyText
	}

	slides := SegmentSlides(text, cfg.SlideSeparator)
	if len(slides) == 0 {
		return nil, errs.ErrEmptyText
	}
	if r.maxSlides > 0 && len(slides) > r.maxSlides {
		return nil, fmt.Errorf("%w: got %d, max %d", errs.ErrTooManySlides, len(slides), r.maxSlides)
	}

	width, height := r.dimensions(cfg)
	faces := r.facesFor(ctx, cfg)

	total := len(slides)
	out := make([]domain.RenderedSlide, 0, total)
	for i, slideText := range slides {
		png, err := ComposeSlide(slideText, cfg, faces, width, height, i+1, total)
		if err != nil {
			return nil, fmt.Errorf("%w: slide %d: %v", errs.ErrRenderFailed, i+1, err)
		}
		out = append(out, domain.RenderedSlide{
			SlideNumber: i + 1,
			Text:        slideText,
			PNG:         png,
			Width:       width,
			Height:      height,
		})
	}

	r.log.Info("Carousel rendered",
		"slides", total,
		"width", width,
		"height", height,
		"platform", cfg.Platform,
	)
	return out, nil
}

func (r *renderer) RenderSlide(ctx context.Context, text string, cfg domain.RenderConfig, width, height, slideNumber, totalSlides int) (domain.RenderedSlide, error) {
	if strings.TrimSpace(text) == "" {
		return domain.RenderedSlide{}, errs.ErrEmptyText
	}
	if width <= 0 || height <= 0 {
		width, height = r.dimensions(cfg)
	}
	if slideNumber <= 0 {
		slideNumber = 1
	}
	if totalSlides <= 0 {
		totalSlides = slideNumber
	}

	faces := r.facesFor(ctx, cfg)
	png, err := ComposeSlide(text, cfg, faces, width, height, slideNumber, totalSlides)
	if err != nil {
		return domain.RenderedSlide{}, fmt.Errorf("%w: %v", errs.ErrRenderFailed, err)
	}
	return domain.RenderedSlide{
		SlideNumber: slideNumber,
		Text:        text,
		PNG:         png,
		Width:       width,
		Height:      height,
	}, nil
}

func (r *renderer) dimensions(cfg domain.RenderConfig) (int, int) {
	spec, _ := config.PlatformByName(r.log, cfg.Platform)
	return cfg.Dimensions(spec.PlatformSpec)
}

// facesFor resolves the title and body faces once per render; per-slide work
// reuses them.
func (r *renderer) facesFor(ctx context.Context, cfg domain.RenderConfig) Faces {
	title, titleProv := r.resolver.Resolve(ctx, cfg.FontFamily, cfg.TitleFontWeight, float64(cfg.TitleFontSize))
	body, bodyProv := r.resolver.Resolve(ctx, cfg.FontFamily, cfg.FontWeight, float64(cfg.FontSize))
	r.log.Debug("Fonts prepared",
		"family", cfg.FontFamily,
		"title_provenance", string(titleProv),
		"body_provenance", string(bodyProv),
	)
	return Faces{Title: title, Body: body}
}
