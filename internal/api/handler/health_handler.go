package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// probeTimeout 单个依赖的探测超时
const probeTimeout = 2 * time.Second

// Probe 依赖探测项
// Required=false 的依赖（Redis）不可用时只降级，不影响整体可用性
type Probe struct {
	Name     string
	Required bool
	Check    func(ctx context.Context) error
}

// HealthHandler 健康检查
type HealthHandler struct {
	probes []Probe
	now    func() time.Time
}

// NewHealthHandler 创建 HealthHandler 实例
func NewHealthHandler(probes ...Probe) *HealthHandler {
	return &HealthHandler{probes: probes, now: time.Now}
}

// Check 逐个探测依赖
// GET /health
// 必需依赖不可用返回 503，否则 200（可选依赖不可用时 status=degraded）
func (h *HealthHandler) Check(c *gin.Context) {
	status := "ok"
	code := http.StatusOK
	components := make(gin.H, len(h.probes))

	for _, p := range h.probes {
		ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
		err := p.Check(ctx)
		cancel()

		if err == nil {
			components[p.Name] = "up"
			continue
		}
		components[p.Name] = "down"
		if p.Required {
			status = "down"
			code = http.StatusServiceUnavailable
		} else if status == "ok" {
			status = "degraded"
		}
	}

	c.JSON(code, gin.H{
		"status":     status,
		"components": components,
		"time":       h.now().Format(time.RFC3339),
	})
}
