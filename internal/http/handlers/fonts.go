package handlers

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/carousel-backend/internal/http/response"
	"github.com/yungbote/carousel-backend/internal/services"
)

type FontsHandler struct {
	fonts services.FontService
}

func NewFontsHandler(fonts services.FontService) *FontsHandler {
	return &FontsHandler{fonts: fonts}
}

// GET /fonts
func (h *FontsHandler) List(c *gin.Context) {
	response.RespondOK(c, h.fonts.Catalog())
}

// POST /fonts/preview
// body: { "font_family": "...", "font_weight": "400", "text": "...", "font_size": 48 }
func (h *FontsHandler) Preview(c *gin.Context) {
	var req services.FontPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	preview, err := h.fonts.Preview(c.Request.Context(), req)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"image":        base64.StdEncoding.EncodeToString(preview.Slide.PNG),
		"font_info":    preview.Info,
		"preview_text": preview.Text,
		"width":        preview.Slide.Width,
		"height":       preview.Slide.Height,
	})
}

// GET /fonts/recommendations?platform=&style=&category=
func (h *FontsHandler) Recommendations(c *gin.Context) {
	platform := c.DefaultQuery("platform", "instagram_post")
	style := c.DefaultQuery("style", "modern")
	category := c.DefaultQuery("category", "sans-serif")

	response.RespondOK(c, gin.H{
		"recommendations": h.fonts.Recommend(platform, style, category),
		"platform":        platform,
		"style":           style,
		"category":        category,
	})
}

// GET /fonts/cache
func (h *FontsHandler) CacheStats(c *gin.Context) {
	stats, err := h.fonts.CacheStats()
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"cache_dir":        stats.Dir,
		"cached_fonts":     stats.Files,
		"total_size_bytes": stats.TotalBytes,
		"total_size_human": humanSize(stats.TotalBytes),
	})
}

// DELETE /fonts/cache
func (h *FontsHandler) ClearCache(c *gin.Context) {
	if err := h.fonts.ClearCache(); err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, gin.H{"cleared": true})
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
