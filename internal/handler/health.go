package handler

import (
	"net/http"

	"squadhealth/internal/pkg/response"
	"squadhealth/internal/service"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthStatus *service.HealthService
}

func NewHealthHandler(status *service.HealthService) *HealthHandler {
	return &HealthHandler{healthStatus: status}
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	if h.healthStatus.IsLive() {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
		return
	}
	c.Status(http.StatusServiceUnavailable)
}

// Readiness 啟動完成且 mongo / redis 都能連線才算 ready
func (h *HealthHandler) Readiness(c *gin.Context) {
	if !h.healthStatus.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
		return
	}
	deps, healthy := h.healthStatus.CheckDependencies(c.Request.Context())
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "dependencies": deps})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "dependencies": deps})
}

// HealthCheck 給負載平衡器用，只回報程序存活
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, response.Response{
		Code:        0,
		Data:        "ok",
		Message:     "success",
		Description: "service is alive",
	})
	c.Abort()
}
