package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/carousel-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"
)

// AttachTraceContext assigns every request a trace ID and a request ID.
// Inbound headers win so callers can correlate across hops; otherwise the
// trace ID comes from the active OTel span, or a fresh UUID when tracing is
// off. Both IDs are echoed on the response and stored on the request context
// for the access log.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		td := ctxutil.TraceData{
			TraceID:   strings.TrimSpace(c.GetHeader(headerTraceID)),
			RequestID: strings.TrimSpace(c.GetHeader(headerRequestID)),
		}
		if td.TraceID == "" {
			if span := trace.SpanContextFromContext(c.Request.Context()); span.HasTraceID() {
				td.TraceID = span.TraceID().String()
			} else {
				td.TraceID = uuid.NewString()
			}
		}
		if td.RequestID == "" {
			td.RequestID = uuid.NewString()
		}

		c.Request = c.Request.WithContext(ctxutil.WithTraceData(c.Request.Context(), td))
		c.Writer.Header().Set(headerTraceID, td.TraceID)
		c.Writer.Header().Set(headerRequestID, td.RequestID)
		c.Next()
	}
}
