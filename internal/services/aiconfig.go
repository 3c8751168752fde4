package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yungbote/carousel-backend/internal/clients/openai"
	"github.com/yungbote/carousel-backend/internal/config"
	"github.com/yungbote/carousel-backend/internal/domain"
	errs "github.com/yungbote/carousel-backend/internal/pkg/errors"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
	"github.com/yungbote/carousel-backend/internal/render"
)

// minContrastRatio is the WCAG AA floor for normal text. Generated palettes
// below it get their text color forced to a safe value.
const minContrastRatio = 4.5

type AIConfigService interface {
	// GenerateConfig produces a styling config from a free-text description.
	// With no client configured, or when the model call fails, it falls back
	// to deterministic keyword styling; it never fails past input validation.
	GenerateConfig(ctx context.Context, req ConfigRequest) (*GeneratedConfig, error)
	// StyleSuggestions returns the canned style presets.
	StyleSuggestions(industry, targetAudience string) []StylePreset
}

type ConfigRequest struct {
	Description            string   `json:"description"`
	Platform               string   `json:"platform"`
	AdditionalRequirements string   `json:"additional_requirements"`
	BrandColors            []string `json:"brand_colors"`
}

type GeneratedConfig struct {
	Config      domain.RenderConfig `json:"config"`
	Explanation string              `json:"explanation"`
	Platform    string              `json:"platform"`
	Fallback    bool                `json:"fallback"`
}

type StylePreset struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Config      domain.RenderConfig `json:"config"`
	UseCase     string              `json:"use_case"`
}

type aiConfigService struct {
	log *logger.Logger
	ai  openai.Client
}

// NewAIConfigService builds the design-config generator. A nil client is
// allowed; every request then takes the keyword fallback path.
func NewAIConfigService(log *logger.Logger, ai openai.Client) (AIConfigService, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &aiConfigService{
		log: log.With("service", "AIConfigService"),
		ai:  ai,
	}, nil
}

func (s *aiConfigService) GenerateConfig(ctx context.Context, req ConfigRequest) (*GeneratedConfig, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", errs.ErrInvalidConfig)
	}
	platform := strings.TrimSpace(strings.ToLower(req.Platform))
	if platform == "" {
		platform = domain.DefaultRenderConfig().Platform
	}

	if s.ai == nil {
		return s.fallbackConfig(description, platform), nil
	}

	spec, _ := config.PlatformByName(s.log, platform)
	system, user := promptDesignConfig(description, platform, spec, req.AdditionalRequirements, req.BrandColors)
	obj, err := s.ai.GenerateJSON(ctx, system, user, "carousel_design_config", schemaDesignConfig())
	if err != nil {
		s.log.Warn("AI config generation failed; using fallback", "platform", platform, "error", err)
		return s.fallbackConfig(description, platform), nil
	}

	cfg := s.sanitizeConfig(obj["config"], platform)
	explanation := strings.TrimSpace(asString(obj["explanation"]))
	if explanation == "" {
		explanation = "AI-generated configuration"
	}

	s.log.Info("AI config generated", "platform", platform)
	return &GeneratedConfig{
		Config:      cfg,
		Explanation: explanation,
		Platform:    platform,
	}, nil
}

// sanitizeConfig lays the model output over the defaults, keeping only
// known keys with in-range values. The model is untrusted input.
func (s *aiConfigService) sanitizeConfig(raw any, platform string) domain.RenderConfig {
	cfg := domain.DefaultRenderConfig()
	if _, ok := config.PlatformByName(s.log, platform); ok {
		cfg.Platform = platform
	}

	m, _ := raw.(map[string]any)
	if m == nil {
		return cfg
	}

	bgSet, textSet := false, false
	if c, ok := hexColorValue(m["background_color"]); ok {
		cfg.BackgroundColor = c
		bgSet = true
	}
	if c, ok := hexColorValue(m["text_color"]); ok {
		cfg.TextColor = c
		textSet = true
	}
	if v, ok := intValue(m["font_size"], 8, 200); ok {
		cfg.FontSize = v
	}
	if v, ok := intValue(m["title_font_size"], 8, 300); ok {
		cfg.TitleFontSize = v
	}
	if v, ok := intValue(m["padding"], 0, 500); ok {
		cfg.Padding = v
	}
	if v, ok := intValue(m["corner_radius"], 0, 100); ok {
		cfg.CornerRadius = v
	}
	if v, ok := floatValue(m["line_spacing"], 0.5, 3.0); ok {
		cfg.LineSpacing = v
	}
	switch asString(m["text_align"]) {
	case domain.AlignLeft:
		cfg.TextAlign = domain.AlignLeft
	case domain.AlignCenter:
		cfg.TextAlign = domain.AlignCenter
	case domain.AlignRight:
		cfg.TextAlign = domain.AlignRight
	}
	if v, ok := m["add_page_numbers"].(bool); ok {
		cfg.AddPageNumbers = v
	}
	if v, ok := m["add_logo_text"].(bool); ok {
		cfg.AddLogoText = v
	}
	if v, ok := m["logo_text"].(string); ok {
		cfg.LogoText = truncateRunes(v, maxLogoTextLength)
	}

	// Only police contrast when the model picked both sides of the pair.
	if bgSet && textSet {
		bg := render.MustParseHex(cfg.BackgroundColor)
		fg := render.MustParseHex(cfg.TextColor)
		if render.ContrastRatio(bg, fg) < minContrastRatio {
			switch strings.ToLower(cfg.BackgroundColor) {
			case "#ffffff", "#fff":
				cfg.TextColor = "#000000"
			default:
				cfg.TextColor = "#ffffff"
			}
		}
	}
	return cfg
}

// fallbackConfig styles by keyword matching against the description. The
// same palette table the model is prompted with, minus the model.
func (s *aiConfigService) fallbackConfig(description, platform string) *GeneratedConfig {
	s.log.Info("Generating fallback configuration", "platform", platform)

	desc := strings.ToLower(description)
	cfg := domain.DefaultRenderConfig()
	if _, ok := config.PlatformByName(s.log, platform); ok {
		cfg.Platform = platform
	}

	switch {
	case containsAny(desc, "dark", "black", "night"):
		cfg.BackgroundColor = "#1a1a1a"
		cfg.TextColor = "#ffffff"
	case containsAny(desc, "light", "white", "clean"):
		cfg.BackgroundColor = "#ffffff"
		cfg.TextColor = "#333333"
	case containsAny(desc, "blue", "corporate", "business"):
		cfg.BackgroundColor = "#1e3d59"
		cfg.TextColor = "#ffffff"
	case containsAny(desc, "red", "urgent", "important"):
		cfg.BackgroundColor = "#dc3545"
		cfg.TextColor = "#ffffff"
	case containsAny(desc, "green", "nature", "eco"):
		cfg.BackgroundColor = "#28a745"
		cfg.TextColor = "#ffffff"
	}

	switch platform {
	case "instagram_story":
		cfg.FontSize = 48
		cfg.TitleFontSize = 64
	case "tiktok":
		cfg.FontSize = 46
		cfg.TitleFontSize = 60
	}

	switch {
	case containsAny(desc, "modern", "minimal"):
		cfg.CornerRadius = 20
		cfg.Padding = 100
	case containsAny(desc, "classic", "traditional"):
		cfg.CornerRadius = 0
		cfg.Padding = 80
	}

	return &GeneratedConfig{
		Config:      cfg,
		Explanation: fmt.Sprintf("Fallback configuration based on keywords from: %s", description),
		Platform:    platform,
		Fallback:    true,
	}
}

func (s *aiConfigService) StyleSuggestions(industry, targetAudience string) []StylePreset {
	_ = industry
	_ = targetAudience
	base := domain.DefaultRenderConfig()

	professional := base
	professional.BackgroundColor = "#f8f9fa"
	professional.TextColor = "#343a40"
	professional.CornerRadius = 15
	professional.Padding = 90

	modernBold := base
	modernBold.BackgroundColor = "#6c5ce7"
	modernBold.TextColor = "#ffffff"
	modernBold.CornerRadius = 25
	modernBold.Padding = 80
	modernBold.FontSize = 46

	minimalist := base
	minimalist.BackgroundColor = "#ffffff"
	minimalist.TextColor = "#2d3436"
	minimalist.CornerRadius = 0
	minimalist.Padding = 100
	minimalist.TextAlign = domain.AlignCenter

	return []StylePreset{
		{
			Name:        "Professional",
			Description: "Clean, corporate design suitable for business content",
			Config:      professional,
			UseCase:     "Business presentations, corporate announcements",
		},
		{
			Name:        "Modern Bold",
			Description: "Eye-catching design with vibrant colors",
			Config:      modernBold,
			UseCase:     "Marketing campaigns, social media engagement",
		},
		{
			Name:        "Minimalist",
			Description: "Simple, elegant design focusing on content",
			Config:      minimalist,
			UseCase:     "Educational content, thought leadership",
		},
	}
}

func promptDesignConfig(description, platform string, spec config.Platform, extra string, brandColors []string) (system string, user string) {
	system = `You are an expert graphic designer specializing in social media carousel design.
Generate an optimal design configuration for the described style.
Return ONLY JSON matching the schema, with "config" holding the configuration and "explanation" briefly describing the design choices.

Design principles:
- Ensure strong contrast between text and background colors
- Choose font sizes appropriate for the platform and readability
- Consider modern design trends and accessibility
- Adapt to the platform-specific requirements

Allowed configuration values:
- background_color: hex color (e.g. "#ffffff")
- text_color: hex color (e.g. "#000000")
- font_size: integer 8-200
- title_font_size: integer 8-300
- padding: integer 0-500 (pixels)
- corner_radius: integer 0-100 (pixels)
- line_spacing: number 0.5-3.0
- text_align: "left", "center", or "right"
- add_page_numbers: boolean
- add_logo_text: boolean
- logo_text: string (empty unless add_logo_text is true)`

	width, height := spec.Width, spec.Height
	if width <= 0 || height <= 0 {
		width, height = 1080, 1080
	}

	parts := []string{
		fmt.Sprintf("Generate a carousel design configuration for %s.", platform),
		fmt.Sprintf("Platform dimensions: %dx%d pixels.", width, height),
		fmt.Sprintf("Style description: %s", description),
	}
	if strings.TrimSpace(extra) != "" {
		parts = append(parts, fmt.Sprintf("Additional requirements: %s", extra))
	}
	if len(brandColors) > 0 {
		parts = append(parts, fmt.Sprintf("Consider these brand colors: %s", strings.Join(brandColors, ", ")))
	}
	if hint, ok := platformGuidance[platform]; ok {
		parts = append(parts, hint)
	}
	return system, strings.Join(parts, " ")
}

var platformGuidance = map[string]string{
	"instagram_post":  "Design for Instagram feed posts - clean, modern, eye-catching.",
	"instagram_story": "Design for Instagram stories - vertical format, bold and engaging.",
	"linkedin":        "Design for LinkedIn - professional, business-oriented, readable.",
	"tiktok":          "Design for TikTok - vibrant, youthful, attention-grabbing.",
	"twitter":         "Design for Twitter - concise, clear, informative.",
	"facebook":        "Design for Facebook - engaging, social, accessible.",
}

func schemaDesignConfig() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"config": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"background_color": map[string]any{"type": "string"},
					"text_color":       map[string]any{"type": "string"},
					"font_size":        map[string]any{"type": "integer"},
					"title_font_size":  map[string]any{"type": "integer"},
					"padding":          map[string]any{"type": "integer"},
					"corner_radius":    map[string]any{"type": "integer"},
					"line_spacing":     map[string]any{"type": "number"},
					"text_align":       map[string]any{"type": "string"},
					"add_page_numbers": map[string]any{"type": "boolean"},
					"add_logo_text":    map[string]any{"type": "boolean"},
					"logo_text":        map[string]any{"type": "string"},
				},
				"required": []any{
					"background_color", "text_color", "font_size", "title_font_size",
					"padding", "corner_radius", "line_spacing", "text_align",
					"add_page_numbers", "add_logo_text", "logo_text",
				},
				"additionalProperties": false,
			},
			"explanation": map[string]any{"type": "string"},
		},
		"required":             []any{"config", "explanation"},
		"additionalProperties": false,
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func hexColorValue(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if !hexColorRe.MatchString(s) {
		return "", false
	}
	return strings.ToUpper(s), true
}

func intValue(v any, min, max int) (int, bool) {
	var n int
	switch t := v.(type) {
	case float64:
		n = int(t)
	case int:
		n = t
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if n < min || n > max {
		return 0, false
	}
	return n, true
}

func floatValue(v any, min, max float64) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f < min || f > max {
		return 0, false
	}
	return f, true
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
