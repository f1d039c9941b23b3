package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tags each request so log lines can be correlated. An incoming
// X-Request-ID is honored; otherwise one is generated.
func RequestID(ctx *gin.Context) {
	id := ctx.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	ctx.Set("requestId", id)
	ctx.Header("X-Request-ID", id)
	ctx.Next()
}
