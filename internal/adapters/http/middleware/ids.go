// Package middleware provides the gin middleware chain of the ritual API.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/ritual-service/internal/platform/logging"
)

const (
	// HeaderRequestID identifies one HTTP request.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID follows a business transaction across services,
	// e.g. a checkout and the webhook and fulfilment calls it causes.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin context key of the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin context key of the correlation ID.
	ContextKeyCorrelationID = "correlation_id"

	// maxInboundIDLen bounds caller-supplied IDs before they reach logs.
	maxInboundIDLen = 128
)

type contextKey string

const (
	ctxKeyRequestID     contextKey = "request_id"
	ctxKeyCorrelationID contextKey = "correlation_id"
)

type idConfig struct {
	header   string
	ginKey   string
	ctxKey   contextKey
	enricher func(context.Context, string) context.Context
}

// RequestID reuses a well-formed X-Request-ID or generates a UUID, then
// exposes it on the response, the gin context and the request logger.
func RequestID() gin.HandlerFunc {
	return idMiddleware(idConfig{
		header:   HeaderRequestID,
		ginKey:   ContextKeyRequestID,
		ctxKey:   ctxKeyRequestID,
		enricher: logging.WithRequestID,
	})
}

// CorrelationID is RequestID for X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return idMiddleware(idConfig{
		header:   HeaderCorrelationID,
		ginKey:   ContextKeyCorrelationID,
		ctxKey:   ctxKeyCorrelationID,
		enricher: logging.WithCorrelationID,
	})
}

func idMiddleware(cfg idConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.header)
		if !validInboundID(id) {
			id = uuid.NewString()
		}

		c.Set(cfg.ginKey, id)
		c.Header(cfg.header, id)

		ctx := context.WithValue(c.Request.Context(), cfg.ctxKey, id)
		c.Request = c.Request.WithContext(cfg.enricher(ctx, id))

		c.Next()
	}
}

// validInboundID accepts short printable ASCII IDs only.
func validInboundID(id string) bool {
	if id == "" || len(id) > maxInboundIDLen {
		return false
	}

	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}

	return true
}

// GetRequestID returns the request ID stored by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID stored by CorrelationID, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

// RequestIDFromContext returns the request ID for propagation to downstream calls.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}

// CorrelationIDFromContext returns the correlation ID for propagation to downstream calls.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyCorrelationID).(string)
	return id
}

// ContextWithRequestID stores a request ID outside the HTTP chain, e.g. for worker jobs.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return logging.WithRequestID(context.WithValue(ctx, ctxKeyRequestID, id), id)
}

// ContextWithCorrelationID stores a correlation ID outside the HTTP chain.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return logging.WithCorrelationID(context.WithValue(ctx, ctxKeyCorrelationID, id), id)
}
