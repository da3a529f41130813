package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/learnpath-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"

	maxRequestIDLen = 64
)

// AttachTraceContext stores trace and request ids on the request context and
// echoes them as response headers. An active span's trace id wins over the
// inbound X-Trace-Id header; both fall back to a fresh uuid.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		td := &ctxutil.TraceData{
			TraceID:   traceIDFor(c),
			RequestID: sanitizeRequestID(c.GetHeader(headerRequestID)),
		}
		if td.RequestID == "" {
			td.RequestID = uuid.NewString()
		}

		c.Request = c.Request.WithContext(ctxutil.WithTraceData(c.Request.Context(), td))
		c.Header(headerTraceID, td.TraceID)
		c.Header(headerRequestID, td.RequestID)
		c.Next()
	}
}

func traceIDFor(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	if id := sanitizeRequestID(c.GetHeader(headerTraceID)); id != "" {
		return id
	}
	return uuid.NewString()
}

// sanitizeRequestID keeps caller-supplied ids out of logs unless they are
// short and limited to [A-Za-z0-9._-].
func sanitizeRequestID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxRequestIDLen {
		return ""
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return ""
		}
	}
	return raw
}
