package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/carousel-backend/internal/config"
	"github.com/yungbote/carousel-backend/internal/http/response"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
	"github.com/yungbote/carousel-backend/internal/services"
)

const (
	minDescriptionRunes  = 5
	maxDescriptionRunes  = 500
	maxRequirementsRunes = 200
)

type AIConfigHandler struct {
	log *logger.Logger
	ai  services.AIConfigService
}

func NewAIConfigHandler(log *logger.Logger, ai services.AIConfigService) *AIConfigHandler {
	return &AIConfigHandler{log: log, ai: ai}
}

// POST /generate-config
// body: { "description": "...", "platform": "...", "additional_requirements": "...", "brand_colors": ["#..."] }
func (h *AIConfigHandler) GenerateConfig(c *gin.Context) {
	var req services.ConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(req.Description)); n < minDescriptionRunes || n > maxDescriptionRunes {
		response.RespondError(c, http.StatusBadRequest, "validation_error",
			fmt.Errorf("description must be between %d and %d characters", minDescriptionRunes, maxDescriptionRunes))
		return
	}
	if utf8.RuneCountInString(req.AdditionalRequirements) > maxRequirementsRunes {
		response.RespondError(c, http.StatusBadRequest, "validation_error",
			fmt.Errorf("additional_requirements must be %d characters or less", maxRequirementsRunes))
		return
	}

	gen, err := h.ai.GenerateConfig(c.Request.Context(), req)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}

	payload := gin.H{
		"config":      gen.Config,
		"explanation": gen.Explanation,
		"platform":    gen.Platform,
		"fallback":    gen.Fallback,
	}
	if spec, ok := config.PlatformByName(h.log, gen.Platform); ok {
		payload["platform_specs"] = spec
	}
	response.RespondOK(c, payload)
}

// GET /style-suggestions?industry=&target_audience=
func (h *AIConfigHandler) StyleSuggestions(c *gin.Context) {
	suggestions := h.ai.StyleSuggestions(c.Query("industry"), c.Query("target_audience"))
	response.RespondOK(c, gin.H{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}
