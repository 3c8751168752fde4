package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/carousel-backend/internal/domain"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

const platformTableEnv = "PLATFORM_SPECS_YAML"

//go:embed platforms.yaml
var platformSpecFS embed.FS

// fallback table used when the YAML is missing or invalid
var fallbackPlatforms = []Platform{
	{PlatformSpec: domain.PlatformSpec{Name: "instagram_post", Width: 1080, Height: 1080, AspectRatio: "1:1"}, Label: "Instagram Post"},
	{PlatformSpec: domain.PlatformSpec{Name: "instagram_story", Width: 1080, Height: 1920, AspectRatio: "9:16"}, Label: "Instagram Story"},
	{PlatformSpec: domain.PlatformSpec{Name: "linkedin", Width: 1080, Height: 1080, AspectRatio: "1:1"}, Label: "LinkedIn"},
	{PlatformSpec: domain.PlatformSpec{Name: "tiktok", Width: 1080, Height: 1350, AspectRatio: "4:5"}, Label: "TikTok"},
	{PlatformSpec: domain.PlatformSpec{Name: "twitter", Width: 1024, Height: 512, AspectRatio: "2:1"}, Label: "Twitter"},
	{PlatformSpec: domain.PlatformSpec{Name: "facebook", Width: 1200, Height: 630, AspectRatio: "1.91:1"}, Label: "Facebook"},
}

// Platform is one output target: fixed dimensions plus a display label.
type Platform struct {
	domain.PlatformSpec `yaml:",inline"`
	Label               string `yaml:"label" json:"label"`
}

type yamlPlatformTable struct {
	Catalog   string     `yaml:"catalog"`
	Version   int        `yaml:"version"`
	Platforms []Platform `yaml:"platforms"`
}

var platformOnce sync.Once
var platformCache []Platform
var platformErr error

func currentPlatforms(log *logger.Logger) []Platform {
	platformOnce.Do(func() {
		platformCache, platformErr = loadPlatformTable()
	})
	if platformErr != nil {
		if log != nil {
			log.Warn("platform table load failed; using fallback", "error", platformErr)
		}
		return fallbackPlatforms
	}
	return platformCache
}

// Platforms returns the full output-target table in declaration order.
func Platforms(log *logger.Logger) []Platform {
	return currentPlatforms(log)
}

// PlatformByName resolves one table entry; ok is false for unknown names.
func PlatformByName(log *logger.Logger, name string) (Platform, bool) {
	name = strings.TrimSpace(strings.ToLower(name))
	for _, p := range currentPlatforms(log) {
		if p.Name == name {
			return p, true
		}
	}
	return Platform{}, false
}

// PlatformNames returns the valid platform identifiers in table order.
func PlatformNames(log *logger.Logger) []string {
	table := currentPlatforms(log)
	names := make([]string, 0, len(table))
	for _, p := range table {
		names = append(names, p.Name)
	}
	return names
}

func loadPlatformTable() ([]Platform, error) {
	data, err := readPlatformSpec()
	if err != nil {
		return nil, err
	}
	var table yamlPlatformTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	if err := validatePlatformTable(&table); err != nil {
		return nil, err
	}
	out := make([]Platform, 0, len(table.Platforms))
	for _, p := range table.Platforms {
		p.Name = strings.TrimSpace(strings.ToLower(p.Name))
		out = append(out, p)
	}
	return out, nil
}

func readPlatformSpec() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(platformTableEnv)); path != "" {
		return os.ReadFile(path)
	}
	return platformSpecFS.ReadFile("platforms.yaml")
}

func validatePlatformTable(table *yamlPlatformTable) error {
	if table == nil {
		return errors.New("missing platform table")
	}
	if strings.TrimSpace(table.Catalog) != "platforms" {
		return fmt.Errorf("unexpected catalog: %s", table.Catalog)
	}
	if len(table.Platforms) == 0 {
		return errors.New("no platforms defined")
	}
	seen := map[string]bool{}
	for _, p := range table.Platforms {
		name := strings.TrimSpace(strings.ToLower(p.Name))
		if name == "" {
			return errors.New("platform name is required")
		}
		if seen[name] {
			return fmt.Errorf("duplicate platform: %s", name)
		}
		seen[name] = true
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("platform %s: dimensions must be positive", name)
		}
	}
	return nil
}
