package services

import (
	"context"
	"testing"

	"github.com/yungbote/carousel-backend/internal/fonts"
	"github.com/yungbote/carousel-backend/internal/render"
)

func testFontService(t *testing.T) FontService {
	t.Helper()
	log := testLogger(t)
	resolver := fonts.NewResolver(fonts.NewDiskCache(t.TempDir(), log), nil, log)
	renderer := render.NewRenderer(resolver, 20, log)
	svc, err := NewFontService(log, resolver, renderer)
	if err != nil {
		t.Fatalf("NewFontService: %v", err)
	}
	return svc
}

func TestFontServiceCatalog(t *testing.T) {
	svc := testFontService(t)

	cat := svc.Catalog()
	if got := len(cat.PopularByCategory["sans-serif"]); got != 10 {
		t.Fatalf("sans-serif families: want=10 got=%d", got)
	}
	if cat.TotalFonts != 20 {
		t.Fatalf("total fonts: want=20 got=%d", cat.TotalFonts)
	}
	if _, ok := cat.PlatformRecommendations["instagram_post"]; !ok {
		t.Fatalf("missing instagram_post recommendations")
	}
}

func TestFontServiceRecommendDefaults(t *testing.T) {
	svc := testFontService(t)

	recs := svc.Recommend("", "", "")
	if len(recs) == 0 {
		t.Fatalf("default recommendation query returned nothing")
	}
	if recs[0].Family != "Inter" {
		t.Fatalf("top default recommendation: want=Inter got=%q", recs[0].Family)
	}
}

func TestFontServicePreviewDefaults(t *testing.T) {
	svc := testFontService(t)

	preview, err := svc.Preview(context.Background(), FontPreviewRequest{})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	w, h := pngSize(t, preview.Slide.PNG)
	if w != 400 || h != 200 {
		t.Fatalf("preview size: want=400x200 got=%dx%d", w, h)
	}
	if preview.Info.Family != "Inter" || preview.Info.Weight != "400" || preview.Info.Size != 48 {
		t.Fatalf("default font info: got %+v", preview.Info)
	}
	if preview.Text != "Sample Text" {
		t.Fatalf("default preview text: got %q", preview.Text)
	}
}

func TestFontServicePreviewOverrides(t *testing.T) {
	svc := testFontService(t)

	preview, err := svc.Preview(context.Background(), FontPreviewRequest{
		FontFamily:      "Roboto",
		FontWeight:      "700",
		Text:            "Hello",
		BackgroundColor: "#000000",
		TextColor:       "#ffffff",
		FontSize:        30,
	})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if preview.Info.Family != "Roboto" || preview.Info.Weight != "700" || preview.Info.Size != 30 {
		t.Fatalf("font info: got %+v", preview.Info)
	}
	if preview.Text != "Hello" {
		t.Fatalf("preview text: got %q", preview.Text)
	}
	if len(preview.Slide.PNG) == 0 {
		t.Fatalf("empty preview image")
	}
}

func TestFontServiceCacheStatsAndClear(t *testing.T) {
	svc := testFontService(t)

	stats, err := svc.CacheStats()
	if err != nil {
		t.Fatalf("CacheStats: %v", err)
	}
	if stats.Files != 0 || stats.TotalBytes != 0 {
		t.Fatalf("fresh cache should be empty: %+v", stats)
	}

	if err := svc.ClearCache(); err != nil {
		t.Fatalf("ClearCache: %v", err)
	}
}
