package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/foodtrace/backend/internal/middleware"
	"github.com/pageza/foodtrace/backend/internal/testhelpers"
)

func limitedRouter(rl *middleware.RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/account/login", rl.ByClientIP(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func login(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/account/login", nil)
	req.RemoteAddr = ip + ":40000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterByClientIP(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	router := limitedRouter(middleware.NewRateLimiter(client, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     2,
		KeyPrefix: "test:login",
	}))

	assert.Equal(t, http.StatusOK, login(router, "10.0.0.1").Code)
	w := login(router, "10.0.0.1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusTooManyRequests, login(router, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, login(router, "10.0.0.2").Code, "other clients are unaffected")
}

func TestRateLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	router := limitedRouter(middleware.NewLoginRateLimiter(client))
	assert.Equal(t, http.StatusOK, login(router, "10.0.0.1").Code)
}
