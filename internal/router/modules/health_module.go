package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/mywallet/pkg/response"
)

// ReadyFunc checks the backing stores.
type ReadyFunc func(ctx context.Context) error

// HealthModule exposes GET /healthz and, when a handler is set, GET /metrics.
type HealthModule struct {
	Ready   ReadyFunc
	Metrics http.Handler
}

func NewHealthModule(ready ReadyFunc, metricsHandler http.Handler) *HealthModule {
	return &HealthModule{Ready: ready, Metrics: metricsHandler}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.healthz)
	if m.Metrics != nil {
		rg.GET("/metrics", gin.WrapH(m.Metrics))
	}
}

func (m *HealthModule) healthz(c *gin.Context) {
	if m.Ready != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := m.Ready(ctx); err != nil {
			response.Success(c, http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}
