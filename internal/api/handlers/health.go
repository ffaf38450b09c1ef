package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/analysis"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

// cachePinger is the slice of the cache the health check needs.
type cachePinger interface {
	Exists(ctx context.Context, key string) bool
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	svc         *analysis.Service
	cache       cachePinger
}

func NewHealthHandler(serviceName string, svc *analysis.Service, cache cachePinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, svc: svc, cache: cache}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthStatus{
		Status:    "healthy",
		Service:   h.serviceName,
		Timestamp: time.Now(),
	})
}

// Ready handles GET /ready: the service is ready once a league snapshot
// has been loaded. Cache state is reported but never fails readiness,
// since analyses work without it.
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := make(map[string]string)
	status := http.StatusOK
	overall := "ready"

	if age, ok := h.svc.SnapshotAge(); ok {
		checks["snapshot"] = fmt.Sprintf("loaded %s ago", age.Round(time.Second))
	} else {
		checks["snapshot"] = "not loaded"
		overall = "not_ready"
		status = http.StatusServiceUnavailable
	}

	if h.cache != nil {
		checks["cache"] = "connected"
	} else {
		checks["cache"] = "disabled"
	}

	c.JSON(status, types.HealthStatus{
		Status:    overall,
		Service:   h.serviceName,
		Timestamp: time.Now(),
		Checks:    checks,
	})
}
