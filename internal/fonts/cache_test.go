package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestFileName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		family string
		weight string
		want   string
	}{
		{"Inter", "400", "inter_400.ttf"},
		{"Open Sans", "600", "open_sans_600.ttf"},
		{"  Playfair Display ", "700", "playfair_display_700.ttf"},
		{"../../etc/passwd", "400", "etcpasswd_400.ttf"},
		{"", "", "font_400.ttf"},
	}
	for _, tc := range cases {
		if got := FileName(tc.family, tc.weight); got != tc.want {
			t.Fatalf("FileName(%q, %q): want=%q got=%q", tc.family, tc.weight, tc.want, got)
		}
	}
}

func TestDiskCacheStoreLoad(t *testing.T) {
	cache := NewDiskCache(t.TempDir(), testLogger(t))

	path, err := cache.Store("Inter", "400", goregular.TTF)
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if filepath.Base(path) != "inter_400.ttf" {
		t.Fatalf("Store path: want base %q got=%q", "inter_400.ttf", filepath.Base(path))
	}

	data, err := cache.Load("Inter", "400")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data) != len(goregular.TTF) {
		t.Fatalf("Load size: want=%d got=%d", len(goregular.TTF), len(data))
	}
}

func TestDiskCacheLoadMiss(t *testing.T) {
	cache := NewDiskCache(t.TempDir(), testLogger(t))
	if _, err := cache.Load("Nope", "400"); err == nil {
		t.Fatalf("Load: expected error for missing font")
	}
}

func TestDiskCacheRejectsEmptyData(t *testing.T) {
	cache := NewDiskCache(t.TempDir(), testLogger(t))
	if _, err := cache.Store("Inter", "400", nil); err == nil {
		t.Fatalf("Store: expected error for empty data")
	}
}

func TestDiskCacheStatsAndClear(t *testing.T) {
	dir := t.TempDir()
	cache := NewDiskCache(dir, testLogger(t))

	if _, err := cache.Store("Inter", "400", goregular.TTF); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if _, err := cache.Store("Inter", "700", goregular.TTF); err != nil {
		t.Fatalf("Store: %v", err)
	}
	// Non-font files in the directory are ignored by Stats.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	stats, err := cache.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Files != 2 {
		t.Fatalf("Stats.Files: want=2 got=%d", stats.Files)
	}
	want := int64(2 * len(goregular.TTF))
	if stats.TotalBytes != want {
		t.Fatalf("Stats.TotalBytes: want=%d got=%d", want, stats.TotalBytes)
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	stats, err = cache.Stats()
	if err != nil {
		t.Fatalf("Stats after Clear: %v", err)
	}
	if stats.Files != 0 || stats.TotalBytes != 0 {
		t.Fatalf("Stats after Clear: want empty got files=%d bytes=%d", stats.Files, stats.TotalBytes)
	}
}

func TestDiskCacheStatsMissingDir(t *testing.T) {
	cache := NewDiskCache(filepath.Join(t.TempDir(), "does-not-exist"), testLogger(t))
	stats, err := cache.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Files != 0 {
		t.Fatalf("Stats.Files: want=0 got=%d", stats.Files)
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear on missing dir: %v", err)
	}
}

func TestFormatSize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{1536, "1.5 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tc := range cases {
		if got := FormatSize(tc.n); got != tc.want {
			t.Fatalf("FormatSize(%d): want=%q got=%q", tc.n, tc.want, got)
		}
	}
}
