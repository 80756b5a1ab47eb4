package middleware

import (
	"github.com/gin-gonic/gin"

	"prompt-api/internal/config"
)

// CORS middleware for handling Cross-Origin Resource Sharing.
// Preflight requests are passed through so the generate handler can answer them.
func CORS(cors config.CORSConfig) gin.HandlerFunc {
	headers := cors.Headers()
	return func(c *gin.Context) {
		for key, value := range headers {
			c.Header(key, value)
		}
		c.Next()
	}
}
