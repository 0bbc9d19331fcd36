package middleware

import (
	"net/http"
	"strings"

	"central/utils"

	"github.com/gin-gonic/gin"
)

// bearerToken pulls the token out of the Authorization header, empty when absent.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// JWTAuthMiddleware requires a valid session token and stores the caller's
// identity in the request context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		userID, name, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		c.Set("userID", userID)
		c.Set("userName", name)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the identity when a token is present but
// lets anonymous requests through. The chat flow serves both.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if userID, name, err := utils.ExtractClaimsFromToken(tokenString); err == nil && userID != "" {
				c.Set("userID", userID)
				c.Set("userName", name)
			}
		}
		c.Next()
	}
}
