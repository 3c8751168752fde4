package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/carousel-backend/internal/domain"
	"github.com/yungbote/carousel-backend/internal/fonts"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
	"github.com/yungbote/carousel-backend/internal/render"
)

// Font preview samples render at a fixed card size.
const (
	fontPreviewWidth  = 400
	fontPreviewHeight = 200
)

type FontService interface {
	// Catalog returns the static font catalog grouped by category plus the
	// per-platform recommendations.
	Catalog() FontCatalog
	// Recommend scores the catalog against platform, style, and category.
	// Empty arguments take the documented defaults.
	Recommend(platform, style, category string) []fonts.FontRecommendation
	// Preview renders a one-slide font sample card.
	Preview(ctx context.Context, req FontPreviewRequest) (*FontPreview, error)
	CacheStats() (fonts.CacheStats, error)
	ClearCache() error
}

type FontCatalog struct {
	PopularByCategory       map[string][]fonts.CatalogFont        `json:"popular_by_category"`
	PlatformRecommendations map[string]fonts.PlatformFontDefaults `json:"platform_recommendations"`
	TotalFonts              int                                   `json:"total_fonts"`
}

type FontPreviewRequest struct {
	FontFamily      string `json:"font_family"`
	FontWeight      string `json:"font_weight"`
	Text            string `json:"text"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	FontSize        int    `json:"font_size"`
}

type FontInfo struct {
	Family string `json:"family"`
	Weight string `json:"weight"`
	Size   int    `json:"size"`
}

type FontPreview struct {
	Slide domain.RenderedSlide
	Info  FontInfo
	Text  string
}

type fontService struct {
	log      *logger.Logger
	resolver fonts.Resolver
	renderer render.Renderer
}

func NewFontService(log *logger.Logger, resolver fonts.Resolver, renderer render.Renderer) (FontService, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("font resolver required")
	}
	if renderer == nil {
		return nil, fmt.Errorf("renderer required")
	}
	return &fontService{
		log:      log.With("service", "FontService"),
		resolver: resolver,
		renderer: renderer,
	}, nil
}

func (s *fontService) Catalog() FontCatalog {
	return FontCatalog{
		PopularByCategory:       fonts.CatalogByCategory(s.log),
		PlatformRecommendations: fonts.PlatformFontConfigs(s.log),
		TotalFonts:              fonts.CatalogSize(s.log),
	}
}

func (s *fontService) Recommend(platform, style, category string) []fonts.FontRecommendation {
	if strings.TrimSpace(platform) == "" {
		platform = "instagram_post"
	}
	if strings.TrimSpace(style) == "" {
		style = "modern"
	}
	if strings.TrimSpace(category) == "" {
		category = "sans-serif"
	}
	return fonts.Recommend(s.log, platform, style, category)
}

func (s *fontService) Preview(ctx context.Context, req FontPreviewRequest) (*FontPreview, error) {
	family := strings.TrimSpace(req.FontFamily)
	if family == "" {
		family = "Inter"
	}
	weight := strings.TrimSpace(req.FontWeight)
	if weight == "" {
		weight = "400"
	}
	text := req.Text
	if strings.TrimSpace(text) == "" {
		text = "Sample Text"
	}
	size := req.FontSize
	if size <= 0 {
		size = 48
	}

	cfg := domain.DefaultRenderConfig()
	if c := strings.TrimSpace(req.BackgroundColor); c != "" {
		cfg.BackgroundColor = c
	}
	if c := strings.TrimSpace(req.TextColor); c != "" {
		cfg.TextColor = c
	}
	cfg.FontFamily = family
	cfg.FontWeight = weight
	cfg.TitleFontWeight = weight
	cfg.FontSize = size
	cfg.TitleFontSize = size
	cfg.Padding = 40
	cfg.CornerRadius = 8
	cfg.TextAlign = domain.AlignCenter

	slide, err := s.renderer.RenderSlide(ctx, text, cfg, fontPreviewWidth, fontPreviewHeight, 1, 1)
	if err != nil {
		return nil, err
	}

	s.log.Debug("Font preview rendered", "family", family, "weight", weight, "size", size)
	return &FontPreview{
		Slide: slide,
		Info:  FontInfo{Family: family, Weight: weight, Size: size},
		Text:  text,
	}, nil
}

func (s *fontService) CacheStats() (fonts.CacheStats, error) {
	return s.resolver.CacheStats()
}

func (s *fontService) ClearCache() error {
	if err := s.resolver.ClearCache(); err != nil {
		return err
	}
	s.log.Info("Font cache cleared")
	return nil
}
