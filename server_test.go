package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func TestRateLimitMiddleware_RedisDownFailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Nothing listens here; every Redis call errors out.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	defer client.Close()

	rl := NewRateLimiter(client, 10, time.Minute)

	r := gin.New()
	r.Use(rl.RateLimitMiddleware)
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("rate limiter must degrade to no limiting when redis is unreachable, got %d", w.Code)
	}
}
