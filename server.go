package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rossostudios/puerta-abierta-sub004/config"
	"github.com/rossostudios/puerta-abierta-sub004/coreapi"
	"github.com/rossostudios/puerta-abierta-sub004/middlewares"
	"github.com/rossostudios/puerta-abierta-sub004/models/reports"
	"github.com/rossostudios/puerta-abierta-sub004/utils"
	"github.com/sirupsen/logrus"
)

const defaultPort = "8080"

// Define a struct to represent the rate limiter.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

type overviewQuery struct {
	Locale string `form:"locale" binding:"omitempty,oneof=en-US es-PY"`
}

func main() {
	// Load env from .env
	godotenv.Load()

	logger := config.GetLogger()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		gin.SetMode(gin.ReleaseMode)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := gin.New()

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// Production-safe CORS:
	// - In production, require explicit allowlist via CORS_ALLOWED_ORIGINS (comma-separated).
	// - In non-production, allow all (developer convenience).
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			// Safer default: deny all if not configured in production.
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization", "X-Org-Id", "X-Correlation-Id")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition", "X-Correlation-Id")
	corsConfig.AllowCredentials = true

	r.Use(cors.New(corsConfig))

	// Optional rate limiting (recommended for production).
	// Env:
	// - RATE_LIMIT_ENABLED=true
	// - RATE_LIMIT_WINDOW_SECONDS=60
	// - RATE_LIMIT_MAX_REQUESTS=600
	if strings.EqualFold(strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED")), "true") {
		client := redis.NewClient(&redis.Options{Addr: os.Getenv("REDIS_ADDRESS")})
		limit := int64(600)
		if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_MAX_REQUESTS")); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				limit = n
			}
		}
		windowSec := int64(60)
		if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_WINDOW_SECONDS")); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				windowSec = n
			}
		}
		rateLimiter := NewRateLimiter(client, limit, time.Duration(windowSec)*time.Second)
		r.Use(rateLimiter.RateLimitMiddleware)
	}

	r.Use(middlewares.CorrelationMiddleware())
	r.Use(middlewares.AuthMiddleware())
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	api := r.Group("/api/v1")
	api.GET("/properties/:propertyId/overview", overviewHandler())
	if config.OverviewExportEnabled() {
		api.GET("/properties/:propertyId/overview/export", overviewExportHandler())
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	// Start listening immediately (startup probes are TCP based).
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect the optional cache after the port is open; the service is
	// fully functional without it.
	go config.ConnectRedis()

	log.Println("Server started successfully on :" + port)

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	// Drain HTTP requests.
	shutdownTimeout := 30 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	// Close Redis (best-effort).
	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}

func overviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var query overviewQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			var verr validator.ValidationErrors
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		locale := query.Locale
		if locale == "" {
			locale = "es-PY"
		}

		orgId, ok := utils.GetOrgIdFromContext(ctx)
		if !ok || orgId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ErrorOrgIdRequired.Error()})
			return
		}
		propertyId := strings.TrimSpace(c.Param("propertyId"))
		if propertyId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "property id is required"})
			return
		}

		token, _ := utils.GetTokenFromContext(ctx)
		client := coreapi.NewClient(token)

		data := reports.TimedPropertyOverview(ctx, orgId, propertyId, locale, func() *reports.PropertyOverviewData {
			snapshot := client.LoadPropertyRelationSnapshot(ctx, orgId, propertyId)
			return reports.BuildPropertyOverview(snapshot, propertyId, locale, time.Now())
		})

		c.JSON(http.StatusOK, data)
	}
}

func overviewExportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var query overviewQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			var verr validator.ValidationErrors
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		locale := query.Locale
		if locale == "" {
			locale = "es-PY"
		}

		orgId, ok := utils.GetOrgIdFromContext(ctx)
		if !ok || orgId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ErrorOrgIdRequired.Error()})
			return
		}
		propertyId := strings.TrimSpace(c.Param("propertyId"))
		if propertyId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "property id is required"})
			return
		}

		token, _ := utils.GetTokenFromContext(ctx)
		client := coreapi.NewClient(token)

		data := reports.TimedPropertyOverview(ctx, orgId, propertyId, locale, func() *reports.PropertyOverviewData {
			snapshot := client.LoadPropertyRelationSnapshot(ctx, orgId, propertyId)
			return reports.BuildPropertyOverview(snapshot, propertyId, locale, time.Now())
		})

		f, err := reports.BuildOverviewWorkbook(data)
		if err != nil {
			config.LogError(config.GetLogger(), "server.go", "overviewExportHandler", "BuildOverviewWorkbook", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
			return
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=overview-%s.xlsx", propertyId))
		if err := f.Write(c.Writer); err != nil {
			config.LogError(config.GetLogger(), "server.go", "overviewExportHandler", "f.Write", nil, err)
		}
	}
}

// customErrorLogger is a custom Gin middleware that logs only errors
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only log when there are errors
		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

// Initialize a new RateLimiter instance.
func NewRateLimiter(client *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Middleware function to check rate limits. Best-effort: like the overview
// cache, an unreachable Redis degrades to no limiting instead of taking the
// API down.
func (rl *RateLimiter) RateLimitMiddleware(c *gin.Context) {
	// Get the IP address or user identifier from the request.
	key := c.ClientIP() // Assuming IP-based rate limiting

	// Check if the key exists in Redis.
	exists, err := rl.client.Exists(c.Request.Context(), key).Result()
	if err != nil {
		config.LogError(config.GetLogger(), "server.go", "RateLimitMiddleware", "exists", key, err)
		c.Next()
		return
	}

	// If the key doesn't exist, create it and set expiry.
	if exists == 0 {
		if err := rl.client.Set(c.Request.Context(), key, 1, rl.window).Err(); err != nil {
			config.LogError(config.GetLogger(), "server.go", "RateLimitMiddleware", "set", key, err)
		}
		c.Next()
		return
	}

	// If the key exists, get the current count.
	count, err := rl.client.Incr(c.Request.Context(), key).Result()
	if err != nil {
		config.LogError(config.GetLogger(), "server.go", "RateLimitMiddleware", "incr", key, err)
		c.Next()
		return
	}

	// If the count exceeds the limit, return an error response.
	if count > rl.limit {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": fmt.Sprintf("Rate limit exceeded. Try again in %d seconds", int(rl.window.Seconds())),
		})
		return
	}

	c.Next()
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
