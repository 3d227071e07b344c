package middleware

import (
	"net/http"
	"strings"

	"randevio/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthBusinessMiddleware guards the portal endpoints. It validates the
// bearer token and places the business id into the request context under
// "businessID".
func JWTAuthBusinessMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		businessID, err := utils.ExtractBusinessIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("businessID", businessID)
		c.Next()
	}
}
