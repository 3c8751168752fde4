package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yungbote/carousel-backend/internal/config"
	"github.com/yungbote/carousel-backend/internal/domain"
	errs "github.com/yungbote/carousel-backend/internal/pkg/errors"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ConfigPatch is the partial styling config clients send. Nil fields keep
// the value of whatever base config the patch is applied to, so defaults,
// batch-level overrides, and per-request overrides layer cleanly.
type ConfigPatch struct {
	BackgroundColor *string  `json:"background_color"`
	TextColor       *string  `json:"text_color"`
	FontFamily      *string  `json:"font_family"`
	FontWeight      *string  `json:"font_weight"`
	TitleFontWeight *string  `json:"title_font_weight"`
	FontSize        *int     `json:"font_size"`
	TitleFontSize   *int     `json:"title_font_size"`
	Padding         *int     `json:"padding"`
	CornerRadius    *int     `json:"corner_radius"`
	LineSpacing     *float64 `json:"line_spacing"`
	TextAlign       *string  `json:"text_align"`
	Platform        *string  `json:"platform"`
	CustomWidth     *int     `json:"custom_width"`
	CustomHeight    *int     `json:"custom_height"`
	AddPageNumbers  *bool    `json:"add_page_numbers"`
	AddLogoText     *bool    `json:"add_logo_text"`
	LogoText        *string  `json:"logo_text"`
	SlideSeparator  *string  `json:"slide_separator"`
}

// Apply lays the patch over base and returns the merged config.
func (p ConfigPatch) Apply(base domain.RenderConfig) domain.RenderConfig {
	out := base
	if p.BackgroundColor != nil {
		out.BackgroundColor = *p.BackgroundColor
	}
	if p.TextColor != nil {
		out.TextColor = *p.TextColor
	}
	if p.FontFamily != nil {
		out.FontFamily = *p.FontFamily
	}
	if p.FontWeight != nil {
		out.FontWeight = *p.FontWeight
	}
	if p.TitleFontWeight != nil {
		out.TitleFontWeight = *p.TitleFontWeight
	}
	if p.FontSize != nil {
		out.FontSize = *p.FontSize
	}
	if p.TitleFontSize != nil {
		out.TitleFontSize = *p.TitleFontSize
	}
	if p.Padding != nil {
		out.Padding = *p.Padding
	}
	if p.CornerRadius != nil {
		out.CornerRadius = *p.CornerRadius
	}
	if p.LineSpacing != nil {
		out.LineSpacing = *p.LineSpacing
	}
	if p.TextAlign != nil {
		out.TextAlign = *p.TextAlign
	}
	if p.Platform != nil {
		out.Platform = *p.Platform
	}
	if p.CustomWidth != nil {
		w := *p.CustomWidth
		out.CustomWidth = &w
	}
	if p.CustomHeight != nil {
		h := *p.CustomHeight
		out.CustomHeight = &h
	}
	if p.AddPageNumbers != nil {
		out.AddPageNumbers = *p.AddPageNumbers
	}
	if p.AddLogoText != nil {
		out.AddLogoText = *p.AddLogoText
	}
	if p.LogoText != nil {
		out.LogoText = *p.LogoText
	}
	if p.SlideSeparator != nil {
		out.SlideSeparator = *p.SlideSeparator
	}
	return out
}

// validateRenderConfig checks every range of the public config contract and
// reports all violations at once, so a client can fix a request in one pass.
func validateRenderConfig(log *logger.Logger, cfg domain.RenderConfig) error {
	var problems []string

	if !hexColorRe.MatchString(cfg.BackgroundColor) {
		problems = append(problems, "background_color must be a hex color like #ffffff")
	}
	if !hexColorRe.MatchString(cfg.TextColor) {
		problems = append(problems, "text_color must be a hex color like #000000")
	}
	if cfg.FontSize < 8 || cfg.FontSize > 200 {
		problems = append(problems, "font_size must be between 8 and 200")
	}
	if cfg.TitleFontSize < 8 || cfg.TitleFontSize > 300 {
		problems = append(problems, "title_font_size must be between 8 and 300")
	}
	if cfg.Padding < 0 || cfg.Padding > 500 {
		problems = append(problems, "padding must be between 0 and 500")
	}
	if cfg.CornerRadius < 0 || cfg.CornerRadius > 100 {
		problems = append(problems, "corner_radius must be between 0 and 100")
	}
	if cfg.LineSpacing < 0.5 || cfg.LineSpacing > 3.0 {
		problems = append(problems, "line_spacing must be between 0.5 and 3.0")
	}
	switch cfg.TextAlign {
	case domain.AlignLeft, domain.AlignCenter, domain.AlignRight:
	default:
		problems = append(problems, "text_align must be left, center, or right")
	}
	if _, ok := config.PlatformByName(log, cfg.Platform); !ok {
		problems = append(problems, fmt.Sprintf("platform must be one of: %s", strings.Join(config.PlatformNames(log), ", ")))
	}
	if cfg.CustomWidth != nil && (*cfg.CustomWidth < 100 || *cfg.CustomWidth > maxCustomDimension) {
		problems = append(problems, "custom_width must be between 100 and 4000")
	}
	if cfg.CustomHeight != nil && (*cfg.CustomHeight < 100 || *cfg.CustomHeight > maxCustomDimension) {
		problems = append(problems, "custom_height must be between 100 and 4000")
	}
	if len([]rune(cfg.LogoText)) > maxLogoTextLength {
		problems = append(problems, "logo_text must be 50 characters or less")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", errs.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

const (
	maxCustomDimension = 4000
	maxLogoTextLength  = 50
)
