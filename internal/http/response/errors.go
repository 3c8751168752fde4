package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/yungbote/carousel-backend/internal/pkg/errors"
	"github.com/yungbote/carousel-backend/internal/platform/apierr"
)

// RespondMapped translates service errors into HTTP statuses: typed apierr
// values keep their status and code, validation sentinels become 400, and
// anything else is reported as an internal error.
func RespondMapped(c *gin.Context, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		status := ae.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		RespondError(c, status, ae.Code, err)
		return
	}
	switch {
	case errs.IsValidation(err):
		RespondError(c, http.StatusBadRequest, "validation_error", err)
	case errors.Is(err, errs.ErrRenderFailed):
		RespondError(c, http.StatusInternalServerError, "render_failed", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
