package ctxutil

import (
	"context"

	"jsonview/api/response"
	"jsonview/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// WithRequestID returns the request context carrying the gin request id.
func WithRequestID(ctx *gin.Context) context.Context {
	reqCtx := ctx.Request.Context()
	if persistence.RequestIDFromContext(reqCtx) != "" {
		return reqCtx
	}
	return persistence.ContextWithRequestID(reqCtx, response.GetRequestID(ctx))
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
