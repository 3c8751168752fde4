package domain

// RenderConfig is the full styling input for one carousel render. It is
// assembled once at the request boundary (defaults + client overrides),
// validated there, and treated as immutable for the duration of the render.
type RenderConfig struct {
	BackgroundColor string  `json:"background_color"`
	TextColor       string  `json:"text_color"`
	FontFamily      string  `json:"font_family"`
	FontWeight      string  `json:"font_weight"`
	TitleFontWeight string  `json:"title_font_weight"`
	FontSize        int     `json:"font_size"`
	TitleFontSize   int     `json:"title_font_size"`
	Padding         int     `json:"padding"`
	CornerRadius    int     `json:"corner_radius"`
	LineSpacing     float64 `json:"line_spacing"`
	TextAlign       string  `json:"text_align"`
	Platform        string  `json:"platform"`
	CustomWidth     *int    `json:"custom_width,omitempty"`
	CustomHeight    *int    `json:"custom_height,omitempty"`
	AddPageNumbers  bool    `json:"add_page_numbers"`
	AddLogoText     bool    `json:"add_logo_text"`
	LogoText        string  `json:"logo_text"`
	SlideSeparator  string  `json:"slide_separator"`
}

const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// DefaultRenderConfig mirrors the documented defaults. Platform dimensions
// are resolved separately against the platform table.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		BackgroundColor: "#ffffff",
		TextColor:       "#000000",
		FontFamily:      "Inter",
		FontWeight:      "400",
		TitleFontWeight: "600",
		FontSize:        44,
		TitleFontSize:   56,
		Padding:         80,
		CornerRadius:    0,
		LineSpacing:     1.2,
		TextAlign:       AlignLeft,
		Platform:        "instagram_post",
		AddPageNumbers:  false,
		AddLogoText:     false,
		LogoText:        "",
		SlideSeparator:  "========",
	}
}

// Slide is one segmented unit of input text, rendered to exactly one image.
type Slide struct {
	Number int    `json:"number"` // 1-based
	Text   string `json:"text"`
}

type BlockKind string

const (
	BlockTitle BlockKind = "title"
	BlockBody  BlockKind = "body"
)

// ContentBlock is a single classified source line within a slide. Consecutive
// body lines are deliberately not merged; inter-block spacing depends on the
// per-line boundaries.
type ContentBlock struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text"`
}

// FontProvenance records which step of the resolution chain produced a font.
type FontProvenance string

const (
	FontCached         FontProvenance = "cached"
	FontDownloaded     FontProvenance = "downloaded"
	FontSystemFallback FontProvenance = "system-fallback"
	FontBuiltin        FontProvenance = "builtin"
)

// RenderedSlide is one finished carousel image plus the text it was rendered
// from. Immutable once produced.
type RenderedSlide struct {
	SlideNumber int    `json:"slide_number"`
	Text        string `json:"text"`
	PNG         []byte `json:"-"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// PlatformSpec is one row of the platform dimension table.
type PlatformSpec struct {
	Name        string `json:"name" yaml:"name"`
	Width       int    `json:"width" yaml:"width"`
	Height      int    `json:"height" yaml:"height"`
	AspectRatio string `json:"aspect_ratio" yaml:"aspect_ratio"`
}

// Dimensions returns the output size for the config: an explicit custom
// override wins, otherwise the platform table entry, otherwise the fallback.
func (c RenderConfig) Dimensions(spec PlatformSpec) (int, int) {
	if c.CustomWidth != nil && c.CustomHeight != nil && *c.CustomWidth > 0 && *c.CustomHeight > 0 {
		return *c.CustomWidth, *c.CustomHeight
	}
	if spec.Width > 0 && spec.Height > 0 {
		return spec.Width, spec.Height
	}
	return 1080, 1080
}
