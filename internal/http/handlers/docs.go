package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/carousel-backend/internal/config"
	"github.com/yungbote/carousel-backend/internal/http/response"
)

type DocsHandler struct{}

func NewDocsHandler() *DocsHandler { return &DocsHandler{} }

type endpointDoc struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var apiEndpoints = []endpointDoc{
	{"POST", "/generate-carousel", "Render a carousel from text plus styling overrides"},
	{"POST", "/generate-config", "Generate a styling config from a free-text description"},
	{"POST", "/from-text", "Generate a config from a description, then render the text with it"},
	{"POST", "/generate-batch", "Render up to 10 carousels in one request"},
	{"POST", "/validate-text", "Analyze text without rendering"},
	{"POST", "/preview-slide", "Render a single slide at reduced or custom size"},
	{"GET", "/platforms", "List output platforms and their dimensions"},
	{"GET", "/fonts", "Font catalog grouped by category"},
	{"POST", "/fonts/preview", "Render a font sample card"},
	{"GET", "/fonts/recommendations", "Scored font recommendations for a platform and style"},
	{"GET", "/fonts/cache", "Font cache statistics"},
	{"DELETE", "/fonts/cache", "Clear the font cache"},
	{"GET", "/style-suggestions", "Canned style presets"},
	{"GET", "/health", "Liveness check"},
	{"GET", "/status", "Runtime and dependency status"},
	{"GET", "/docs", "This endpoint listing"},
}

// GET /docs
func (h *DocsHandler) Docs(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"service":   config.ServiceName,
		"version":   config.Version,
		"base_path": "/api/v1",
		"endpoints": apiEndpoints,
	})
}
