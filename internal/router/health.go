package router

import (
	"squadhealth/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthRouter 探針與 metrics，k8s / prometheus 會高頻打這些路徑
type HealthRouter struct {
	health *handler.HealthHandler
}

func NewHealthRouter(health *handler.HealthHandler) *HealthRouter {
	return &HealthRouter{health: health}
}

// RegisterProbeRoutes 必須在 engine.Use 之前呼叫，這些路由不進 trace / log / envelope
func (r *HealthRouter) RegisterProbeRoutes(engine *gin.Engine) {
	engine.GET("/health-check", r.health.HealthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	probes := engine.Group("/health")
	probes.GET("/liveness", r.health.Liveness)
	probes.GET("/readiness", r.health.Readiness)
}
