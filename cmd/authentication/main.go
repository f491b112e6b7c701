// This is a **mock authentication service**, designed to provide JWT tokens
// for the write endpoints of the company service, simulating user authentication.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gartstein/hiringboard/internal/company/auth"
	"github.com/gartstein/hiringboard/internal/company/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultPort   = "8081"       // Default port for the authentication service
	defaultSecret = "jwt_secret" // Secret for signing JWT when none is configured
	tokenTTL      = 24 * time.Hour
)

// TokenResponse represents the response structure
type TokenResponse struct {
	Token string `json:"token"`
}

// tokenHandler generates a JWT and returns it in JSON response
func tokenHandler(secret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Simulate a user ID for the token
		userID := c.DefaultQuery("user", "12345")

		token, err := auth.GenerateToken(userID, secret, tokenTTL)
		if err != nil {
			logger.Error("failed to generate token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, TokenResponse{Token: token})
	}
}

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	secret := cfg.JWTSecret
	if secret == "" {
		secret = defaultSecret
		logger.Warn("JWT_SECRET not set, signing with the default secret")
	}

	port := os.Getenv("AUTH_PORT")
	if port == "" {
		port = defaultPort
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/token", tokenHandler(secret, logger))

	logger.Info("Authentication service running", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("authentication service stopped", zap.Error(err))
	}
}
