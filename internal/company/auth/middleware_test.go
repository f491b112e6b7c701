package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware(secret, http.MethodPost))
	handler := func(c *gin.Context) {
		claims, _ := ClaimsFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"sub": Subject(claims), "user_id": c.GetString("user_id")})
	}
	r.GET("/companies/", handler)
	r.POST("/companies/", handler)
	return r
}

func TestGinMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		method     string
		authHeader string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "unprotected method passes",
			secret:     validSecret,
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			secret:     validSecret,
			method:     http.MethodPost,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"detail":"Authentication credentials were not provided."}`,
		},
		{
			name:       "malformed header",
			secret:     validSecret,
			method:     http.MethodPost,
			authHeader: "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			secret:     validSecret,
			method:     http.MethodPost,
			authHeader: "Bearer " + signToken(invalidSecret, time.Now().Add(time.Hour)),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"detail":"Invalid token."}`,
		},
		{
			name:       "valid token",
			secret:     validSecret,
			method:     http.MethodPost,
			authHeader: "Bearer " + signToken(validSecret, time.Now().Add(time.Hour)),
			wantStatus: http.StatusOK,
			wantBody:   `{"sub":"test-user","user_id":"test-user"}`,
		},
		{
			name:       "disabled without secret",
			method:     http.MethodPost,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(tt.secret)
			req := httptest.NewRequest(tt.method, "/companies/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}
