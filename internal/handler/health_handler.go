package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain"
)

// readinessTimeout bounds the backend probe of a readiness check
const readinessTimeout = 5 * time.Second

// HealthHandler handles health checks
type HealthHandler struct {
	backend domain.EncoderBackend
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(backend domain.EncoderBackend) *HealthHandler {
	return &HealthHandler{
		backend: backend,
	}
}

// Ping basic health check
func (h *HealthHandler) Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{
		"status":  "ok",
		"message": "pong",
	})
}

// Readiness checks that the encoding backend answers its catalog request
func (h *HealthHandler) Readiness(ctx context.Context, c *app.RequestContext) {
	probeCtx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	logs, err := h.backend.ListLogs(probeCtx)
	if err != nil {
		c.JSON(consts.StatusServiceUnavailable, utils.H{
			"status":  "not_ready",
			"backend": "unhealthy",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(consts.StatusOK, utils.H{
		"status":     "ready",
		"backend":    "healthy",
		"event_logs": len(logs),
	})
}

// Liveness checks that the process is alive
func (h *HealthHandler) Liveness(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{
		"status": "alive",
	})
}
