package middleware

import (
	"context"
	"time"

	"github.com/freshline/backend/internal/infrastructure/visitor"
	"github.com/gin-gonic/gin"
)

// visitorCookie marks a session as already recorded
const visitorCookie = "fl_seen"

// Visitor records one row per visitor session on a background
// goroutine. The request path is never delayed or failed by it.
func Visitor(recorder *visitor.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := c.Cookie(visitorCookie); err == nil {
			c.Next()
			return
		}

		c.SetCookie(visitorCookie, "1", int((24 * time.Hour).Seconds()), "/", "", false, true)

		ip := c.ClientIP()
		userAgent := c.Request.UserAgent()
		path := c.Request.URL.Path

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			recorder.Record(ctx, ip, userAgent, path)
		}()

		c.Next()
	}
}
