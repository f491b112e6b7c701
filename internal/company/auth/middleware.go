package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinMiddleware rejects requests whose method is in protectedMethods unless
// they carry a valid Bearer token. An empty secret disables the check.
func GinMiddleware(jwtSecret string, protectedMethods ...string) gin.HandlerFunc {
	protected := make(map[string]bool, len(protectedMethods))
	for _, m := range protectedMethods {
		protected[m] = true
	}

	return func(c *gin.Context) {
		if jwtSecret == "" || !protected[c.Request.Method] {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}

		tokenString, err := parseBearer(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
			return
		}

		claims, err := validateToken(tokenString, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
			return
		}

		c.Set("user_id", Subject(claims))
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userContextKey, claims))
		c.Next()
	}
}
