package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/carousel-backend/internal/config"
)

func healthEngine(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler(testLogger(t), cfg, nil)

	r := gin.New()
	r.GET("/health", h.HealthCheck)
	r.GET("/status", h.Status)
	return r
}

func TestHealthEndpoint(t *testing.T) {
	r := healthEngine(t, config.Config{})

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: want=%d got=%d", http.StatusOK, w.Code)
	}

	data := decodeData(t, w)
	if status := data["status"]; status != "healthy" {
		t.Fatalf("status: want=%q got=%v", "healthy", status)
	}
	if service := data["service"]; service != "carousel-api" {
		t.Fatalf("service: want=%q got=%v", "carousel-api", service)
	}
	if version := data["version"]; version != "1.0.0" {
		t.Fatalf("version: want=%q got=%v", "1.0.0", version)
	}
	if uptime, ok := data["uptime_seconds"].(float64); !ok || uptime < 0 {
		t.Fatalf("uptime_seconds: want non-negative number, got %v", data["uptime_seconds"])
	}
}

func TestStatusEndpoint(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := config.Config{
		Env:           "test",
		MaxSlides:     20,
		MaxTextLength: 10000,
		FontCacheDir:  t.TempDir(),
	}
	r := healthEngine(t, cfg)

	w := doJSON(t, r, http.MethodGet, "/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: want=%d got=%d", http.StatusOK, w.Code)
	}

	data := decodeData(t, w)
	if status := data["status"]; status != "healthy" {
		t.Fatalf("status: want=%q got=%v", "healthy", status)
	}

	deps := data["dependencies"].(map[string]any)
	if got := deps["redis"]; got != "disabled" {
		t.Fatalf("dependencies.redis: want=%q got=%v", "disabled", got)
	}
	if got := deps["openai"]; got != "not_configured" {
		t.Fatalf("dependencies.openai: want=%q got=%v", "not_configured", got)
	}
	if got := deps["font_cache"]; got != "writable" {
		t.Fatalf("dependencies.font_cache: want=%q got=%v", "writable", got)
	}

	conf := data["configuration"].(map[string]any)
	if got := conf["max_slides"].(float64); got != 20 {
		t.Fatalf("configuration.max_slides: want=20 got=%v", got)
	}
	if got := conf["platforms"].(float64); got < 5 {
		t.Fatalf("configuration.platforms: want at least 5, got %v", got)
	}

	rt := data["runtime"].(map[string]any)
	if got := rt["goroutines"].(float64); got < 1 {
		t.Fatalf("runtime.goroutines: want at least 1, got %v", got)
	}
}

func TestStatusEndpointDegradedWithoutCacheDir(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	r := healthEngine(t, config.Config{Env: "test"})

	w := doJSON(t, r, http.MethodGet, "/status", nil)
	data := decodeData(t, w)
	if status := data["status"]; status != "degraded" {
		t.Fatalf("status: want=%q got=%v", "degraded", status)
	}
	deps := data["dependencies"].(map[string]any)
	if got := deps["font_cache"]; got != "unavailable" {
		t.Fatalf("dependencies.font_cache: want=%q got=%v", "unavailable", got)
	}
}

func TestDocsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewDocsHandler()
	r := gin.New()
	r.GET("/docs", h.Docs)

	w := doJSON(t, r, http.MethodGet, "/docs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: want=%d got=%d", http.StatusOK, w.Code)
	}

	data := decodeData(t, w)
	if base := data["base_path"]; base != "/api/v1" {
		t.Fatalf("base_path: want=%q got=%v", "/api/v1", base)
	}
	endpoints := data["endpoints"].([]any)
	if len(endpoints) != 16 {
		t.Fatalf("endpoints: want=16 got=%d", len(endpoints))
	}
	found := false
	for _, e := range endpoints {
		if e.(map[string]any)["path"] == "/generate-carousel" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("endpoint listing missing /generate-carousel")
	}
}
