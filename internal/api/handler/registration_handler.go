package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"labportal/internal/dto"
	"labportal/internal/service"
	"labportal/pkg/response"
)

// RegistrationHandler 登记模块 HTTP 处理器
type RegistrationHandler struct {
	regSvc service.RegistrationService
}

// NewRegistrationHandler 创建 RegistrationHandler
func NewRegistrationHandler(regSvc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regSvc: regSvc}
}

// ListRegistrations 工单登记列表
// GET /api/v1/users/:id/jobs/:number/registrations
func (h *RegistrationHandler) ListRegistrations(c *gin.Context) {
	list, err := h.regSvc.List(c.Request.Context(), c.Param("number"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateRegistration 新建登记
// POST /api/v1/users/:id/jobs/:number/registrations
func (h *RegistrationHandler) CreateRegistration(c *gin.Context) {
	lab, ok := MustGetLab(c)
	if !ok {
		return
	}

	var req dto.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	reg, err := h.regSvc.Create(c.Request.Context(), lab, c.Param("number"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, reg)
}

// UpdateRegistration 更新登记
// PUT /api/v1/users/:id/jobs/:number/registrations/:rid
func (h *RegistrationHandler) UpdateRegistration(c *gin.Context) {
	rid, ok := parseRegistrationID(c)
	if !ok {
		return
	}

	var req dto.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	reg, err := h.regSvc.Update(c.Request.Context(), c.Param("number"), rid, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, reg)
}

// DeleteRegistration 删除登记
// DELETE /api/v1/users/:id/jobs/:number/registrations/:rid
func (h *RegistrationHandler) DeleteRegistration(c *gin.Context) {
	rid, ok := parseRegistrationID(c)
	if !ok {
		return
	}

	if err := h.regSvc.Delete(c.Request.Context(), c.Param("number"), rid); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

func parseRegistrationID(c *gin.Context) (int64, bool) {
	rid, err := strconv.ParseInt(c.Param("rid"), 10, 64)
	if err != nil || rid <= 0 {
		response.BadRequest(c, "登记 ID 无效")
		return 0, false
	}
	return rid, true
}
