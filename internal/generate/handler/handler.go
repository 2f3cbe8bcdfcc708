package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ideagen/ideagen/backend/go-services/internal/generate"
	"github.com/ideagen/ideagen/backend/go-services/pkg/apperr"
)

// RegisterRoutes mounts POST /api/generate-idea. Errors are plain text since
// clients read this endpoint as a text stream.
func RegisterRoutes(r gin.IRoutes, relay *generate.Relay) {
	r.POST("/api/generate-idea", func(c *gin.Context) {
		var req generate.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			plain(c, apperr.Wrap(apperr.KindInvalidRequest, "Invalid request body", err))
			return
		}
		p, err := relay.Prepare(req)
		if err != nil {
			plain(c, err)
			return
		}

		ctx, cancel := c.Request.Context(), context.CancelFunc(func() {})
		if d := relay.Timeout(); d > 0 {
			ctx, cancel = context.WithTimeout(ctx, d)
		}
		defer cancel()

		stream, err := relay.Open(ctx, p)
		if err != nil {
			plain(c, err)
			return
		}

		h := c.Writer.Header()
		h.Set("Content-Type", "text/plain; charset=utf-8")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)
		c.Writer.WriteHeaderNow()
		c.Writer.Flush()

		relay.Pipe(ctx, stream, c.Writer, c.Writer.Flush)
	})
}

func plain(c *gin.Context, err error) {
	c.String(apperr.StatusCode(err), apperr.Message(err))
	c.Abort()
}
