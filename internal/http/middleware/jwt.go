package middleware

import (
	"net/http"
	"strings"

	"prime31/internal/service"

	"github.com/gin-gonic/gin"
)

// ContextUsername is the gin context key JWT stores the token subject under.
const ContextUsername = "username"

// JWT requires an "Authorization: Bearer <token>" header.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		username, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUsername, username)
		c.Next()
	}
}
