package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type readinessChecker interface {
	Ready() bool
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics   http.Handler
	readiness readinessChecker
}

// NewMetricsHandler constructs a metrics handler. metrics is typically MetricsService.Handler().
func NewMetricsHandler(metrics http.Handler, readiness readinessChecker) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, readiness: readiness}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness probes.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports 503 until a dataset is loaded.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.readiness == nil || !h.readiness.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "dataset not loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
