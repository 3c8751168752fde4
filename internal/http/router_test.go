package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/carousel-backend/internal/config"
	"github.com/yungbote/carousel-backend/internal/fonts"
	httpH "github.com/yungbote/carousel-backend/internal/http/handlers"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
	"github.com/yungbote/carousel-backend/internal/render"
	"github.com/yungbote/carousel-backend/internal/services"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func testRouter(t *testing.T, apiKeys []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := testLogger(t)
	resolver := fonts.NewResolver(fonts.NewDiskCache(t.TempDir(), log), nil, log)
	renderer := render.NewRenderer(resolver, 20, log)
	fontSvc, err := services.NewFontService(log, resolver, renderer)
	if err != nil {
		t.Fatalf("NewFontService: %v", err)
	}

	return NewRouter(RouterConfig{
		Log:           log,
		APIKeys:       apiKeys,
		FontsHandler:  httpH.NewFontsHandler(fontSvc),
		HealthHandler: httpH.NewHealthHandler(log, config.Config{FontCacheDir: t.TempDir()}, nil),
		DocsHandler:   httpH.NewDocsHandler(),
	})
}

func serve(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterHealthStaysPublic(t *testing.T) {
	r := testRouter(t, []string{"k1"})

	for _, path := range []string{"/api/v1/health", "/api/v1/status", "/api/v1/docs"} {
		if w := serve(r, http.MethodGet, path, nil); w.Code != http.StatusOK {
			t.Fatalf("%s: want=%d got=%d", path, http.StatusOK, w.Code)
		}
	}
}

func TestRouterAPIKeyGate(t *testing.T) {
	r := testRouter(t, []string{"k1"})

	if w := serve(r, http.MethodGet, "/api/v1/fonts", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("without key: want=%d got=%d", http.StatusUnauthorized, w.Code)
	}
	if w := serve(r, http.MethodGet, "/api/v1/fonts", map[string]string{"X-API-Key": "k1"}); w.Code != http.StatusOK {
		t.Fatalf("with key: want=%d got=%d", http.StatusOK, w.Code)
	}
}

func TestRouterOpenWithoutKeys(t *testing.T) {
	r := testRouter(t, nil)

	if w := serve(r, http.MethodGet, "/api/v1/fonts", nil); w.Code != http.StatusOK {
		t.Fatalf("want=%d got=%d", http.StatusOK, w.Code)
	}
}

func TestRouterNilHandlersDoNotRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterConfig{Log: testLogger(t)})

	if w := serve(r, http.MethodGet, "/api/v1/fonts", nil); w.Code != http.StatusNotFound {
		t.Fatalf("want=%d got=%d", http.StatusNotFound, w.Code)
	}
}

func TestRouterSetsTraceHeaders(t *testing.T) {
	r := testRouter(t, nil)

	w := serve(r, http.MethodGet, "/api/v1/docs", nil)
	if w.Header().Get("X-Trace-Id") == "" {
		t.Fatalf("X-Trace-Id header not set")
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("X-Request-Id header not set")
	}
}
