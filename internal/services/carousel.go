package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/carousel-backend/internal/config"
	"github.com/yungbote/carousel-backend/internal/domain"
	errs "github.com/yungbote/carousel-backend/internal/pkg/errors"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
	"github.com/yungbote/carousel-backend/internal/render"
)

const (
	batchMinSize     = 1
	batchMaxSize     = 10
	batchConcurrency = 4

	longTextWarnRunes = 5000
	minAnalyzedWords  = 5
)

type CarouselService interface {
	// Generate validates text and config, then renders the full carousel.
	Generate(ctx context.Context, text string, patch ConfigPatch) (*GenerateResult, error)
	// GenerateWithConfig renders with an already-assembled config, used by
	// the AI-config flow where defaults were applied upstream.
	GenerateWithConfig(ctx context.Context, text string, cfg domain.RenderConfig) (*GenerateResult, error)
	// GenerateBatch renders up to batchMaxSize carousels with bounded
	// concurrency. A failed member is reported in its slot; it never aborts
	// the other members.
	GenerateBatch(ctx context.Context, items []BatchItem, batchPatch ConfigPatch) ([]BatchItemResult, error)
	// PreviewSlide renders the text as a single slide, at the given size or
	// at half the platform size when no size is given.
	PreviewSlide(ctx context.Context, text string, patch ConfigPatch, width, height int) (*domain.RenderedSlide, error)
	// AnalyzeText reports text statistics and validation findings without
	// rendering anything. The patch is merged over the defaults so the
	// color pair the caller would render with can be checked for contrast.
	AnalyzeText(text string, patch ConfigPatch) TextAnalysis
}

// GenerateResult carries the rendered slides plus the fully merged config
// they were rendered with.
type GenerateResult struct {
	TotalSlides int
	Slides      []domain.RenderedSlide
	Config      domain.RenderConfig
}

// BatchItem is one member of a batch request. Its config patch is applied on
// top of the batch-level patch, which is applied on top of the defaults.
type BatchItem struct {
	Text   string      `json:"text"`
	Config ConfigPatch `json:"config"`
}

// BatchItemResult holds the outcome for one batch member. Exactly one of
// Result and Err is set.
type BatchItemResult struct {
	Index  int
	Result *GenerateResult
	Err    error
}

// TextAnalysis is the validate-text report: counts, the slide estimate, and
// any findings. Errors make the text unrenderable; warnings do not.
type TextAnalysis struct {
	Length          int      `json:"length"`
	WordCount       int      `json:"word_count"`
	LineCount       int      `json:"line_count"`
	HasSeparators   bool     `json:"has_separators"`
	SeparatorCount  int      `json:"separator_count"`
	EstimatedSlides int      `json:"estimated_slides"`
	Valid           bool     `json:"valid"`
	Warnings        []string `json:"warnings"`
	Errors          []string `json:"errors"`
}

type carouselService struct {
	log      *logger.Logger
	renderer render.Renderer

	maxTextLength int
	maxSlides     int
	separator     string
}

func NewCarouselService(log *logger.Logger, renderer render.Renderer, maxTextLength, maxSlides int, separator string) (CarouselService, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if renderer == nil {
		return nil, fmt.Errorf("renderer required")
	}
	if maxTextLength <= 0 {
		maxTextLength = 10000
	}
	if maxSlides <= 0 {
		maxSlides = 20
	}
	if separator == "" {
		separator = domain.DefaultRenderConfig().SlideSeparator
	}
	return &carouselService{
		log:           log.With("service", "CarouselService"),
		renderer:      renderer,
		maxTextLength: maxTextLength,
		maxSlides:     maxSlides,
		separator:     separator,
	}, nil
}

func (s *carouselService) Generate(ctx context.Context, text string, patch ConfigPatch) (*GenerateResult, error) {
	return s.GenerateWithConfig(ctx, text, patch.Apply(domain.DefaultRenderConfig()))
}

func (s *carouselService) GenerateWithConfig(ctx context.Context, text string, cfg domain.RenderConfig) (*GenerateResult, error) {
	if err := s.checkText(text); err != nil {
		return nil, err
	}
	if err := validateRenderConfig(s.log, cfg); err != nil {
		return nil, err
	}

	slides, err := s.renderer.RenderCarousel(ctx, text, cfg)
	if err != nil {
		return nil, err
	}
	return &GenerateResult{
		TotalSlides: len(slides),
		Slides:      slides,
		Config:      cfg,
	}, nil
}

func (s *carouselService) GenerateBatch(ctx context.Context, items []BatchItem, batchPatch ConfigPatch) ([]BatchItemResult, error) {
	if len(items) < batchMinSize || len(items) > batchMaxSize {
		return nil, fmt.Errorf("%w: batch must contain between %d and %d carousels", errs.ErrInvalidConfig, batchMinSize, batchMaxSize)
	}

	base := batchPatch.Apply(domain.DefaultRenderConfig())
	results := make([]BatchItemResult, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			res, err := s.GenerateWithConfig(gctx, item.Text, item.Config.Apply(base))
			results[i] = BatchItemResult{Index: i, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.log.Info("Batch generated",
		"total", len(results),
		"successful", len(results)-failed,
		"failed", failed,
	)
	return results, nil
}

func (s *carouselService) PreviewSlide(ctx context.Context, text string, patch ConfigPatch, width, height int) (*domain.RenderedSlide, error) {
	if err := s.checkText(text); err != nil {
		return nil, err
	}
	cfg := patch.Apply(domain.DefaultRenderConfig())
	if err := validateRenderConfig(s.log, cfg); err != nil {
		return nil, err
	}
	if width > maxCustomDimension || height > maxCustomDimension {
		return nil, fmt.Errorf("%w: preview dimensions must be %d or less", errs.ErrInvalidConfig, maxCustomDimension)
	}
	if width <= 0 || height <= 0 {
		spec, _ := config.PlatformByName(s.log, cfg.Platform)
		w, h := cfg.Dimensions(spec.PlatformSpec)
		width, height = w/2, h/2
	}

	slide, err := s.renderer.RenderSlide(ctx, text, cfg, width, height, 1, 1)
	if err != nil {
		return nil, err
	}
	return &slide, nil
}

func (s *carouselService) AnalyzeText(text string, patch ConfigPatch) TextAnalysis {
	a := TextAnalysis{
		Length:    utf8.RuneCountInString(text),
		WordCount: len(strings.Fields(text)),
		LineCount: lineCount(text),
		Warnings:  []string{},
		Errors:    []string{},
	}
	if s.separator != "" {
		a.SeparatorCount = strings.Count(text, s.separator)
	}
	a.HasSeparators = a.SeparatorCount > 0
	a.EstimatedSlides = 1
	if a.HasSeparators {
		a.EstimatedSlides = a.SeparatorCount + 1
	}

	if strings.TrimSpace(text) == "" {
		a.Errors = append(a.Errors, "Text content cannot be empty")
	}
	if a.Length > s.maxTextLength {
		a.Errors = append(a.Errors, fmt.Sprintf("Text too long. Maximum length: %d characters", s.maxTextLength))
	}
	if a.EstimatedSlides > s.maxSlides {
		a.Warnings = append(a.Warnings, fmt.Sprintf("Too many slides (%d). Maximum: %d", a.EstimatedSlides, s.maxSlides))
	}
	if a.Length > longTextWarnRunes && !a.HasSeparators {
		a.Warnings = append(a.Warnings, "Long text without slide separators may result in poor formatting")
	}
	if a.WordCount < minAnalyzedWords {
		a.Warnings = append(a.Warnings, "Very short text may not fill slides effectively")
	}
	if w, ok := contrastWarning(patch.Apply(domain.DefaultRenderConfig())); ok {
		a.Warnings = append(a.Warnings, w)
	}

	a.Valid = len(a.Errors) == 0
	return a
}

// contrastWarning checks the merged color pair against the WCAG AA
// threshold. Unparseable colors are left for the range validator to report.
func contrastWarning(cfg domain.RenderConfig) (string, bool) {
	bg, err := render.ParseHex(cfg.BackgroundColor)
	if err != nil {
		return "", false
	}
	fg, err := render.ParseHex(cfg.TextColor)
	if err != nil {
		return "", false
	}
	ratio := render.ContrastRatio(bg, fg)
	if ratio >= minContrastRatio {
		return "", false
	}
	suggested := "#ffffff"
	if render.IsLight(bg) {
		suggested = "#000000"
	}
	return fmt.Sprintf("Low contrast between text and background colors (%.1f:1); consider %s text on %s",
		ratio, suggested, cfg.BackgroundColor), true
}

func (s *carouselService) checkText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errs.ErrEmptyText
	}
	if n := utf8.RuneCountInString(text); n > s.maxTextLength {
		return fmt.Errorf("%w: %d characters, maximum is %d", errs.ErrTextTooLong, n, s.maxTextLength)
	}
	return nil
}

// lineCount counts lines the way a text editor numbers them; a trailing
// newline does not open a new line, and the empty string has no lines.
func lineCount(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if strings.HasSuffix(s, "\n") {
		return n
	}
	return n + 1
}
