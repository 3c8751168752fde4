package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

// DiskCache persists downloaded font files under a single directory so a
// family+weight is fetched from the network at most once per deployment.
type DiskCache struct {
	log *logger.Logger
	dir string
}

type CacheStats struct {
	Dir        string `json:"cache_dir"`
	Files      int    `json:"cached_fonts"`
	TotalBytes int64  `json:"total_size_bytes"`
}

func NewDiskCache(dir string, log *logger.Logger) *DiskCache {
	return &DiskCache{
		log: log.With("service", "FontDiskCache"),
		dir: dir,
	}
}

func (c *DiskCache) Dir() string { return c.dir }

// FileName maps a family+weight pair onto a stable on-disk name. Families
// arrive user-controlled, so everything outside [a-z0-9_-] is dropped.
func FileName(family, weight string) string {
	sanitize := func(s string) string {
		s = strings.ToLower(strings.TrimSpace(s))
		s = strings.ReplaceAll(s, " ", "_")
		var b strings.Builder
		for _, r := range s {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
				b.WriteRune(r)
			}
		}
		return b.String()
	}
	fam := sanitize(family)
	if fam == "" {
		fam = "font"
	}
	w := sanitize(weight)
	if w == "" {
		w = "400"
	}
	return fmt.Sprintf("%s_%s.ttf", fam, w)
}

func (c *DiskCache) Path(family, weight string) string {
	return filepath.Join(c.dir, FileName(family, weight))
}

func (c *DiskCache) Load(family, weight string) ([]byte, error) {
	data, err := os.ReadFile(c.Path(family, weight))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("cached font %s is empty", FileName(family, weight))
	}
	return data, nil
}

// Store writes the font bytes via a temp file and rename so concurrent
// readers never observe a partial file. Returns the final path.
func (c *DiskCache) Store(family, weight string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("refusing to cache empty font data for %s %s", family, weight)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir font cache: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".font-*")
	if err != nil {
		return "", fmt.Errorf("create temp font file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write temp font file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close temp font file: %w", err)
	}

	final := c.Path(family, weight)
	if err := os.Rename(tmpPath, final); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename font file: %w", err)
	}
	return final, nil
}

// Clear removes every entry under the cache directory. A missing directory
// is treated as already clear.
func (c *DiskCache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read font cache dir: %w", err)
	}
	for _, e := range entries {
		path := filepath.Join(c.dir, e.Name())
		if err := os.RemoveAll(path); err != nil {
			c.log.Warn("Failed to delete cached font", "path", path, "error", err.Error())
		}
	}
	return nil
}

func (c *DiskCache) Stats() (CacheStats, error) {
	stats := CacheStats{Dir: c.dir}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("read font cache dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".ttf") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		stats.Files++
		stats.TotalBytes += info.Size()
	}
	return stats, nil
}

// FormatSize renders a byte count the way the cache endpoints report it.
func FormatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
