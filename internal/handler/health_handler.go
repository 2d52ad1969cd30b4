package handler

import (
	"net/http"
	"time"

	"github.com/LoganMichel/logmi-app/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewHealthHandler(db *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Healthz reports process liveness only.
func (h *HealthHandler) Healthz(c *gin.Context) {
	response.OK(c, "healthy", gin.H{
		"status": "up",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Readyz reports whether the backing stores are reachable.
func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{}
	ready := true

	if err := h.db.Ping(ctx); err != nil {
		checks["postgres"] = err.Error()
		ready = false
	} else {
		checks["postgres"] = "ok"
	}

	if err := h.redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
		ready = false
	} else {
		checks["redis"] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "not ready",
			"checks":  checks,
		})
		return
	}
	response.OK(c, "ready", checks)
}
