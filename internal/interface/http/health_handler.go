package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/growth-partner/pkg/response"
)

// Pinger is anything whose reachability the health check reports.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	Checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{Checks: checks}
}

// Get handles GET /healthz. Any failing check turns the answer into a 503.
func (h *HealthHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.Checks))
	for name, ping := range h.Checks {
		if err := ping(ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}
	if status != http.StatusOK {
		response.Error[any](c, status, "unhealthy", results)
		return
	}
	response.Success(c, status, results, "healthy", nil)
}
