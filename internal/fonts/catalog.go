package fonts

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

const fontCatalogEnv = "FONT_CATALOG_YAML"

//go:embed catalog.yaml
var fontCatalogFS embed.FS

// CatalogFont is one curated family within a category.
type CatalogFont struct {
	Family      string   `yaml:"family" json:"family"`
	Weights     []string `yaml:"weights" json:"weights"`
	Description string   `yaml:"description" json:"description"`
}

// PlatformFontDefaults captures the recommended families and size ranges for
// one output platform.
type PlatformFontDefaults struct {
	Recommended    []string `yaml:"recommended" json:"recommended_fonts"`
	FontSizeRange  []int    `yaml:"font_size_range" json:"font_size_range"`
	TitleSizeRange []int    `yaml:"title_size_range" json:"title_size_range"`
}

// FontRecommendation is one scored catalog match.
type FontRecommendation struct {
	Family      string   `json:"family"`
	Score       int      `json:"score"`
	Reason      string   `json:"reason"`
	Weights     []string `json:"weights"`
	Description string   `json:"description"`
	UseCases    []string `json:"use_cases"`
	Category    string   `json:"category"`
}

type fontCatalog struct {
	Catalog          string                          `yaml:"catalog"`
	Version          int                             `yaml:"version"`
	Categories       map[string][]CatalogFont        `yaml:"categories"`
	PlatformDefaults map[string]PlatformFontDefaults `yaml:"platform_defaults"`
	Styles           map[string][]string             `yaml:"styles"`
	PlatformPicks    map[string][]string             `yaml:"platform_picks"`
	UseCases         map[string][]string             `yaml:"use_cases"`
}

var fallbackFontCatalog = &fontCatalog{
	Catalog: "fonts",
	Version: 1,
	Categories: map[string][]CatalogFont{
		"sans-serif": {
			{Family: "Inter", Weights: []string{"300", "400", "500", "600", "700"}, Description: "Modern, clean, excellent readability"},
			{Family: "Roboto", Weights: []string{"300", "400", "500", "700"}, Description: "Google's signature font, versatile"},
			{Family: "Open Sans", Weights: []string{"300", "400", "600", "700"}, Description: "Friendly, readable, professional"},
		},
		"serif": {
			{Family: "Merriweather", Weights: []string{"300", "400", "700"}, Description: "Readable, traditional, trustworthy"},
			{Family: "Playfair Display", Weights: []string{"400", "500", "600", "700"}, Description: "Elegant, high contrast, luxury"},
		},
		"display": {
			{Family: "Oswald", Weights: []string{"300", "400", "500", "600", "700"}, Description: "Bold, condensed, impactful"},
			{Family: "Bebas Neue", Weights: []string{"400"}, Description: "Strong, condensed, attention-grabbing"},
		},
	},
	PlatformDefaults: map[string]PlatformFontDefaults{
		"instagram_post":  {Recommended: []string{"Inter", "Poppins", "Montserrat"}, FontSizeRange: []int{40, 60}, TitleSizeRange: []int{56, 80}},
		"instagram_story": {Recommended: []string{"Inter", "Roboto", "Open Sans"}, FontSizeRange: []int{45, 65}, TitleSizeRange: []int{60, 85}},
		"linkedin":        {Recommended: []string{"Inter", "Source Sans Pro", "Lato"}, FontSizeRange: []int{42, 58}, TitleSizeRange: []int{58, 75}},
		"tiktok":          {Recommended: []string{"Poppins", "Nunito", "Montserrat"}, FontSizeRange: []int{44, 64}, TitleSizeRange: []int{60, 82}},
	},
	Styles: map[string][]string{
		"modern":       {"Inter", "Poppins", "Montserrat", "Work Sans"},
		"classic":      {"Merriweather", "Lora", "Libre Baskerville", "EB Garamond"},
		"elegant":      {"Playfair Display", "Raleway", "Crimson Text", "Lato"},
		"bold":         {"Oswald", "Bebas Neue", "Anton", "Righteous"},
		"friendly":     {"Nunito", "Open Sans", "Poppins", "Source Sans Pro"},
		"professional": {"Inter", "Source Sans Pro", "Lato", "Roboto"},
	},
	PlatformPicks: map[string][]string{
		"instagram_post":  {"Inter", "Poppins", "Montserrat", "Nunito"},
		"instagram_story": {"Oswald", "Bebas Neue", "Poppins", "Montserrat"},
		"linkedin":        {"Inter", "Source Sans Pro", "Lato", "Merriweather"},
		"tiktok":          {"Poppins", "Nunito", "Oswald", "Righteous"},
		"twitter":         {"Inter", "Roboto", "Open Sans", "Lato"},
		"facebook":        {"Open Sans", "Roboto", "Lato", "Nunito"},
	},
	UseCases: map[string][]string{
		"Inter":   {"titles", "body_text", "captions"},
		"Roboto":  {"body_text", "headings", "buttons"},
		"Oswald":  {"titles", "headings", "emphasis"},
		"Poppins": {"headings", "titles", "call_to_action"},
	},
}

var fontCatalogOnce sync.Once
var fontCatalogCache *fontCatalog
var fontCatalogErr error

func currentFontCatalog(log *logger.Logger) *fontCatalog {
	fontCatalogOnce.Do(func() {
		fontCatalogCache, fontCatalogErr = loadFontCatalog()
	})
	if fontCatalogErr != nil {
		if log != nil {
			log.Warn("font catalog load failed; using fallback", "error", fontCatalogErr)
		}
		return fallbackFontCatalog
	}
	return fontCatalogCache
}

// CatalogByCategory returns the curated font families grouped by category.
func CatalogByCategory(log *logger.Logger) map[string][]CatalogFont {
	return currentFontCatalog(log).Categories
}

// PlatformFontConfigs returns the per-platform recommended families and size
// ranges.
func PlatformFontConfigs(log *logger.Logger) map[string]PlatformFontDefaults {
	return currentFontCatalog(log).PlatformDefaults
}

// CatalogSize returns the number of families across all categories.
func CatalogSize(log *logger.Logger) int {
	n := 0
	for _, fonts := range currentFontCatalog(log).Categories {
		n += len(fonts)
	}
	return n
}

// Recommend scores the requested category's families against the style and
// platform lists. Zero-score families are dropped; ties keep catalog order;
// at most ten results are returned.
func Recommend(log *logger.Logger, platform, style, category string) []FontRecommendation {
	cat := currentFontCatalog(log)

	styleFonts := cat.Styles[strings.TrimSpace(strings.ToLower(style))]
	platformFonts := cat.PlatformPicks[strings.TrimSpace(strings.ToLower(platform))]

	recs := make([]FontRecommendation, 0)
	for _, f := range cat.Categories[strings.TrimSpace(strings.ToLower(category))] {
		score := 0
		var reasons []string

		if containsFamily(styleFonts, f.Family) {
			score += 2
			reasons = append(reasons, fmt.Sprintf("Perfect for %s style", style))
		}
		if containsFamily(platformFonts, f.Family) {
			score += 2
			reasons = append(reasons, fmt.Sprintf("Optimized for %s", platform))
		}
		if score == 0 {
			continue
		}

		recs = append(recs, FontRecommendation{
			Family:      f.Family,
			Score:       score,
			Reason:      strings.Join(reasons, "; "),
			Weights:     f.Weights,
			Description: f.Description,
			UseCases:    useCasesFor(cat, f.Family),
			Category:    category,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > 10 {
		recs = recs[:10]
	}
	return recs
}

func containsFamily(list []string, family string) bool {
	for _, f := range list {
		if f == family {
			return true
		}
	}
	return false
}

func useCasesFor(cat *fontCatalog, family string) []string {
	if uses, ok := cat.UseCases[family]; ok {
		return uses
	}
	return []string{"general_use"}
}

func loadFontCatalog() (*fontCatalog, error) {
	data, err := readFontCatalog()
	if err != nil {
		return nil, err
	}
	var cat fontCatalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, err
	}
	if err := validateFontCatalog(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func readFontCatalog() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(fontCatalogEnv)); path != "" {
		return os.ReadFile(path)
	}
	return fontCatalogFS.ReadFile("catalog.yaml")
}

func validateFontCatalog(cat *fontCatalog) error {
	if cat == nil {
		return errors.New("missing font catalog")
	}
	if strings.TrimSpace(cat.Catalog) != "fonts" {
		return fmt.Errorf("unexpected catalog: %s", cat.Catalog)
	}
	if len(cat.Categories) == 0 {
		return errors.New("no font categories defined")
	}
	for category, list := range cat.Categories {
		if len(list) == 0 {
			return fmt.Errorf("category %s is empty", category)
		}
		seen := map[string]bool{}
		for _, f := range list {
			family := strings.TrimSpace(f.Family)
			if family == "" {
				return fmt.Errorf("category %s: family name is required", category)
			}
			if seen[family] {
				return fmt.Errorf("category %s: duplicate family %s", category, family)
			}
			seen[family] = true
		}
	}
	return nil
}
