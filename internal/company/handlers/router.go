package handlers

import (
	"context"
	"net/http"

	"github.com/gartstein/hiringboard/internal/company/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RouterConfig tunes the HTTP router.
type RouterConfig struct {
	// JWTSecret enables bearer-token checks on write methods when set.
	JWTSecret string
	// RateLimit is the per-IP write rate in requests per second; zero disables it.
	RateLimit rate.Limit
	RateBurst int
	// Ping backs the health endpoint. Nil reports healthy.
	Ping func(ctx context.Context) error
}

// NewRouter builds the gin engine serving the company resource.
func NewRouter(h *HTTPHandler, cfg RouterConfig, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(logger))

	r.GET("/healthz", func(c *gin.Context) {
		if cfg.Ping != nil {
			if err := cfg.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	companies := r.Group("/companies")
	companies.Use(auth.GinMiddleware(cfg.JWTSecret, http.MethodPost, http.MethodPatch, http.MethodDelete))
	throttle := RateLimitByIP(cfg.RateLimit, cfg.RateBurst)
	{
		companies.GET("/", h.ListCompanies)
		companies.POST("/", throttle, h.CreateCompany)
		companies.GET("/:name/", h.GetCompany)
		companies.PATCH("/:name/", throttle, h.UpdateCompany)
		companies.DELETE("/:name/", throttle, h.DeleteCompany)
	}
	return r
}
