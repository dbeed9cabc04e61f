package handler

import (
	"github.com/gin-gonic/gin"

	"labportal/internal/service"
	"labportal/pkg/response"
)

// DeliveryHandler 交付模块 HTTP 处理器
type DeliveryHandler struct {
	deliverySvc service.DeliveryService
}

// NewDeliveryHandler 创建 DeliveryHandler
func NewDeliveryHandler(deliverySvc service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliverySvc: deliverySvc}
}

// Tomorrow 下一个工作日的交付
// GET /api/v1/users/:id/deliveries/tomorrow
func (h *DeliveryHandler) Tomorrow(c *gin.Context) {
	lab, ok := MustGetLab(c)
	if !ok {
		return
	}

	result, err := h.deliverySvc.Tomorrow(c.Request.Context(), lab)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Calendar 交付日历订阅
// GET /api/v1/users/:id/deliveries/calendar.ics
func (h *DeliveryHandler) Calendar(c *gin.Context) {
	lab, ok := MustGetLab(c)
	if !ok {
		return
	}

	ics, err := h.deliverySvc.Calendar(c.Request.Context(), lab)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Attachment(c, "text/calendar; charset=utf-8", "entregas.ics", []byte(ics))
}
