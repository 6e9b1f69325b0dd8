package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recipes-be/internal/logging"
)

// Pinger is anything that can report whether its backend is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type HealthController struct {
	checks map[string]Pinger
	log    logging.Logger
}

// NewHealthController reports healthy only while every named check passes.
func NewHealthController(checks map[string]Pinger, log logging.Logger) *HealthController {
	return &HealthController{checks: checks, log: log}
}

// Health handles GET /health
func (hc *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	for name, check := range hc.checks {
		if err := check.PingContext(ctx); err != nil {
			hc.log.Warn(ctx, "health check failed", "check", name, "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
