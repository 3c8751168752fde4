package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/carousel-backend/internal/config"
	"github.com/yungbote/carousel-backend/internal/domain"
	"github.com/yungbote/carousel-backend/internal/http/response"
	errs "github.com/yungbote/carousel-backend/internal/pkg/errors"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
	"github.com/yungbote/carousel-backend/internal/services"
)

type CarouselHandler struct {
	log      *logger.Logger
	carousel services.CarouselService
	ai       services.AIConfigService
}

func NewCarouselHandler(log *logger.Logger, carousel services.CarouselService, ai services.AIConfigService) *CarouselHandler {
	return &CarouselHandler{
		log:      log,
		carousel: carousel,
		ai:       ai,
	}
}

type slidePayload struct {
	SlideNumber int    `json:"slide_number"`
	Text        string `json:"text"`
	Image       string `json:"image"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

func slidePayloads(slides []domain.RenderedSlide) []slidePayload {
	out := make([]slidePayload, 0, len(slides))
	for _, s := range slides {
		out = append(out, slidePayload{
			SlideNumber: s.SlideNumber,
			Text:        s.Text,
			Image:       base64.StdEncoding.EncodeToString(s.PNG),
			Width:       s.Width,
			Height:      s.Height,
		})
	}
	return out
}

// POST /generate-carousel
// body: { "text": "...", "config": { ...optional overrides... } }
func (h *CarouselHandler) Generate(c *gin.Context) {
	var req struct {
		Text   string               `json:"text"`
		Config services.ConfigPatch `json:"config"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	res, err := h.carousel.Generate(c.Request.Context(), req.Text, req.Config)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"total_slides": res.TotalSlides,
		"config_used":  res.Config,
		"slides":       slidePayloads(res.Slides),
	})
}

// POST /from-text
// body: { "text": "...", "description": "...", "platform": "..." }
func (h *CarouselHandler) FromText(c *gin.Context) {
	var req struct {
		Text        string `json:"text"`
		Description string `json:"description"`
		Platform    string `json:"platform"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Description == "" {
		req.Description = "Modern clean design"
	}

	gen, err := h.ai.GenerateConfig(c.Request.Context(), services.ConfigRequest{
		Description: req.Description,
		Platform:    req.Platform,
	})
	if err != nil {
		response.RespondMapped(c, err)
		return
	}

	res, err := h.carousel.GenerateWithConfig(c.Request.Context(), req.Text, gen.Config)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"total_slides":   res.TotalSlides,
		"config_used":    res.Config,
		"ai_explanation": gen.Explanation,
		"ai_fallback":    gen.Fallback,
		"slides":         slidePayloads(res.Slides),
	})
}

// POST /generate-batch
// body: { "carousels": [{ "text": "...", "config": {...} }], "batch_config": {...} }
func (h *CarouselHandler) GenerateBatch(c *gin.Context) {
	var req struct {
		Carousels   []services.BatchItem `json:"carousels"`
		BatchConfig services.ConfigPatch `json:"batch_config"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	results, err := h.carousel.GenerateBatch(c.Request.Context(), req.Carousels, req.BatchConfig)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}

	entries := make([]gin.H, 0, len(results))
	successful := 0
	for _, r := range results {
		if r.Err != nil {
			entries = append(entries, gin.H{
				"index":   r.Index,
				"success": false,
				"error":   batchErrorPayload(r.Err),
			})
			continue
		}
		successful++
		entries = append(entries, gin.H{
			"index":        r.Index,
			"success":      true,
			"total_slides": r.Result.TotalSlides,
			"config_used":  r.Result.Config,
			"slides":       slidePayloads(r.Result.Slides),
		})
	}

	failed := len(results) - successful
	rate := 0.0
	if len(results) > 0 {
		rate = float64(successful) / float64(len(results)) * 100
	}
	status := http.StatusOK
	if failed > 0 && successful > 0 {
		status = http.StatusMultiStatus
	} else if failed > 0 {
		status = http.StatusBadRequest
	}
	response.Respond(c, status, gin.H{
		"results": entries,
		"summary": gin.H{
			"total":        len(results),
			"successful":   successful,
			"failed":       failed,
			"success_rate": rate,
		},
	})
}

// POST /validate-text
// body: { "text": "..." }
func (h *CarouselHandler) ValidateText(c *gin.Context) {
	var req struct {
		Text   string               `json:"text"`
		Config services.ConfigPatch `json:"config"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	response.RespondOK(c, h.carousel.AnalyzeText(req.Text, req.Config))
}

// POST /preview-slide
// body: { "text": "...", "config": {...}, "width": 540, "height": 540 }
func (h *CarouselHandler) PreviewSlide(c *gin.Context) {
	var req struct {
		Text   string               `json:"text"`
		Config services.ConfigPatch `json:"config"`
		Width  int                  `json:"width"`
		Height int                  `json:"height"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	slide, err := h.carousel.PreviewSlide(c.Request.Context(), req.Text, req.Config, req.Width, req.Height)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"image":  base64.StdEncoding.EncodeToString(slide.PNG),
		"text":   slide.Text,
		"width":  slide.Width,
		"height": slide.Height,
	})
}

// GET /platforms
func (h *CarouselHandler) Platforms(c *gin.Context) {
	table := config.Platforms(h.log)
	response.RespondOK(c, gin.H{
		"platforms": table,
		"count":     len(table),
	})
}

func batchErrorPayload(err error) gin.H {
	code := "internal_error"
	switch {
	case errs.IsValidation(err):
		code = "validation_error"
	case errors.Is(err, errs.ErrRenderFailed):
		code = "render_failed"
	}
	return gin.H{"message": err.Error(), "code": code}
}
