package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"keepup-api/internal/logger"
)

// AdminKeyAuth guards the admin billing surface with a shared key. Requests
// must present the key in X-Admin-Key; a server without ADMIN_API_KEY set
// refuses all admin traffic rather than running open.
func AdminKeyAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := os.Getenv("ADMIN_API_KEY")
		if expected == "" {
			logger.Log.Error("ADMIN_API_KEY is not configured; rejecting admin request",
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "admin API is not configured",
			})
			return
		}

		provided := c.GetHeader("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			logger.Log.Warn("Rejected admin request with bad key",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid admin key",
			})
			return
		}

		c.Next()
	}
}
