package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware handles cross-origin requests. The tracking snippet and the
// lead form run on customers' quiz pages, so the event and lead endpoints
// must accept any origin; the dashboard origin can be pinned via FE_ORIGIN.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := "*"
		if os.Getenv("FE_ORIGIN") != "" {
			origin = os.Getenv("FE_ORIGIN")
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
