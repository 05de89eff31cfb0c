package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Version is the reported API version.
const Version = "1.0.0"

// HealthHandler serves the liveness, status, and version endpoints.
type HealthHandler struct {
	env       string
	startedAt time.Time
}

func NewHealthHandler(env string) *HealthHandler {
	return &HealthHandler{env: env, startedAt: time.Now()}
}

// Root serves GET /, a small service banner.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message":       "SaaS Dashboard Backend API",
		"version":       Version,
		"documentation": "/swagger/index.html",
		"status":        "running",
	})
}

// Liveness serves GET /health and GET /api/v1/health.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"version":     Version,
		"environment": h.env,
	})
}

// Status serves GET /api/v1/status with uptime and memory diagnostics.
func (h *HealthHandler) Status(c echo.Context) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "running",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
		"memory": map[string]string{
			"alloc":       fmt.Sprintf("%dMB", mem.Alloc/1024/1024),
			"total_alloc": fmt.Sprintf("%dMB", mem.TotalAlloc/1024/1024),
			"sys":         fmt.Sprintf("%dMB", mem.Sys/1024/1024),
		},
		"goroutines": runtime.NumGoroutine(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// APIVersion serves GET /api/v1/version.
func (h *HealthHandler) APIVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"version":     Version,
		"api_version": "v1",
		"features": []string{
			"authentication",
			"user-management",
			"multi-tenancy",
			"subscription-management",
		},
	})
}

// ReadinessHandler serves GET /health/ready by pinging the dependencies.
type ReadinessHandler struct {
	mongo *mongo.Database
	redis *redis.Client
}

func NewReadinessHandler(db *mongo.Database, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{mongo: db, redis: rdb}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	if err := h.mongo.Client().Ping(ctx, nil); err != nil {
		deps["mongodb"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		deps["mongodb"] = dependencyStatus{Status: "ok"}
	}

	if _, err := h.redis.Ping(ctx).Result(); err != nil {
		deps["redis"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		deps["redis"] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
