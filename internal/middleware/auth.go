package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"posgate/internal/envelope"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth gates every /api route behind the shared bearer key. The header
// must be exactly "Bearer <key>"; anything else aborts with 401 before any
// handler or query runs.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope.New("Invalid API key"))
			return
		}

		key := strings.TrimPrefix(header, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope.New("Invalid API key"))
			return
		}
		c.Next()
	}
}
