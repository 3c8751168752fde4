package fonts

import (
	"context"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/sync/singleflight"

	"github.com/yungbote/carousel-backend/internal/domain"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

// Resolver maps (family, weight) to a drawable face. Resolution never fails:
// the chain runs disk cache, Google Fonts metadata API, CSS scrape, system
// font probe, and finally a builtin bitmap face. Each key resolves at most
// once per process; concurrent first lookups of the same key are collapsed.
type Resolver interface {
	// Resolve returns a face at the requested size plus where the underlying
	// font came from. The builtin face ignores size.
	Resolve(ctx context.Context, family, weight string, size float64) (font.Face, domain.FontProvenance)
	ClearCache() error
	CacheStats() (CacheStats, error)
}

type resolvedFont struct {
	font       *truetype.Font
	provenance domain.FontProvenance
}

type resolver struct {
	log    *logger.Logger
	cache  *DiskCache
	google *GoogleClient

	group singleflight.Group

	mu    sync.RWMutex
	fonts map[string]resolvedFont

	systemPaths []string
}

func NewResolver(cache *DiskCache, google *GoogleClient, log *logger.Logger) Resolver {
	return &resolver{
		log:         log.With("service", "FontResolver"),
		cache:       cache,
		google:      google,
		fonts:       make(map[string]resolvedFont),
		systemPaths: defaultSystemFontPaths,
	}
}

func resolveKey(family, weight string) string {
	return strings.ToLower(strings.TrimSpace(family)) + "|" + strings.ToLower(strings.TrimSpace(weight))
}

func (r *resolver) Resolve(ctx context.Context, family, weight string, size float64) (font.Face, domain.FontProvenance) {
	key := resolveKey(family, weight)

	r.mu.RLock()
	rf, ok := r.fonts[key]
	r.mu.RUnlock()

	if !ok {
		v, _, _ := r.group.Do(key, func() (any, error) {
			r.mu.RLock()
			existing, hit := r.fonts[key]
			r.mu.RUnlock()
			if hit {
				return existing, nil
			}

			resolved := r.resolveUncached(ctx, family, weight)

			r.mu.Lock()
			r.fonts[key] = resolved
			r.mu.Unlock()

			return resolved, nil
		})
		rf = v.(resolvedFont)
	}

	if rf.font == nil {
		return basicfont.Face7x13, rf.provenance
	}

	// Faces are not safe for concurrent use; mint one per call from the
	// shared parsed font.
	face := truetype.NewFace(rf.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, rf.provenance
}

// resolveUncached walks the resolution chain. Every step failure is swallowed
// and the next step tried.
func (r *resolver) resolveUncached(ctx context.Context, family, weight string) resolvedFont {
	if data, err := r.cache.Load(family, weight); err == nil {
		if f, parseErr := truetype.Parse(data); parseErr == nil {
			r.log.Debug("Font resolved from disk cache", "family", family, "weight", weight)
			return resolvedFont{font: f, provenance: domain.FontCached}
		}
		r.log.Warn("Cached font unparseable, refetching", "family", family, "weight", weight)
	}

	if r.google != nil {
		if f, ok := r.fetchAndStore(ctx, family, weight, r.google.FetchFamily, "metadata"); ok {
			return resolvedFont{font: f, provenance: domain.FontDownloaded}
		}
		if f, ok := r.fetchAndStore(ctx, family, weight, r.google.FetchCSS, "css"); ok {
			return resolvedFont{font: f, provenance: domain.FontDownloaded}
		}
	}

	if path, f, ok := probeSystemFonts(r.systemPaths); ok {
		r.log.Warn("Falling back to system font", "family", family, "weight", weight, "path", path)
		return resolvedFont{font: f, provenance: domain.FontSystemFallback}
	}

	r.log.Warn("No font available, using builtin face", "family", family, "weight", weight)
	return resolvedFont{provenance: domain.FontBuiltin}
}

func (r *resolver) fetchAndStore(
	ctx context.Context,
	family, weight string,
	fetch func(context.Context, string, string) ([]byte, error),
	source string,
) (*truetype.Font, bool) {
	data, err := fetch(ctx, family, weight)
	if err != nil {
		r.log.Debug("Font fetch failed", "family", family, "weight", weight, "source", source, "error", err.Error())
		return nil, false
	}

	// Validate before persisting so a bad payload never poisons the cache.
	f, err := truetype.Parse(data)
	if err != nil {
		r.log.Warn("Downloaded font unparseable", "family", family, "weight", weight, "source", source, "error", err.Error())
		return nil, false
	}

	if _, err := r.cache.Store(family, weight, data); err != nil {
		r.log.Warn("Failed to persist downloaded font", "family", family, "weight", weight, "error", err.Error())
	}
	return f, true
}

// ClearCache drops both the in-memory font table and the on-disk cache, so
// the next Resolve of any key re-runs the chain.
func (r *resolver) ClearCache() error {
	r.mu.Lock()
	r.fonts = make(map[string]resolvedFont)
	r.mu.Unlock()
	return r.cache.Clear()
}

func (r *resolver) CacheStats() (CacheStats, error) {
	return r.cache.Stats()
}
