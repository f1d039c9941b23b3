package middlewares

import (
	"bytes"
	"fmt"
	"lrs/src/lib"

	"github.com/gin-gonic/gin"
)

type cachingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *cachingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays cached responses for retried mutating requests.
// Writes are not safe to retry blindly; a client that supplies
// X-Idempotency-Key gets the stored response of its first successful
// attempt instead of a second state transition.
func Idempotency(ctx *gin.Context) {
	key := ctx.GetHeader("X-Idempotency-Key")
	if key == "" {
		ctx.Next()
		return
	}
	userId := ctx.GetUint("id")
	cacheKey := fmt.Sprintf("idem:%d:%s", userId, key)
	if cached := lib.GetCachedResponse(ctx.Request.Context(), cacheKey); cached != "" {
		ctx.Header("X-Idempotency-Replayed", "true")
		ctx.Data(200, "application/json; charset=utf-8", []byte(cached))
		ctx.Abort()
		return
	}
	writer := &cachingWriter{ResponseWriter: ctx.Writer, body: &bytes.Buffer{}}
	ctx.Writer = writer
	ctx.Next()
	if ctx.Writer.Status() >= 200 && ctx.Writer.Status() < 300 && writer.body.Len() > 0 {
		lib.CacheResponse(ctx.Request.Context(), cacheKey, writer.body.String())
	}
}
