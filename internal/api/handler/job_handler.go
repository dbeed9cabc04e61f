package handler

import (
	"github.com/gin-gonic/gin"

	"labportal/internal/dto"
	"labportal/internal/service"
	"labportal/pkg/response"
)

// JobHandler 工单模块 HTTP 处理器
// 路由挂在 SelfScope 之后；带 :number 的路由再经过 JobAccess
type JobHandler struct {
	jobSvc service.JobService
}

// NewJobHandler 创建 JobHandler
func NewJobHandler(jobSvc service.JobService) *JobHandler {
	return &JobHandler{jobSvc: jobSvc}
}

// ListJobs 实验室工单列表
// GET /api/v1/users/:id/jobs?phase=&from=&to=&page=&page_size=
func (h *JobHandler) ListJobs(c *gin.Context) {
	lab, ok := MustGetLab(c)
	if !ok {
		return
	}

	var req dto.JobListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	list, total, err := h.jobSvc.List(c.Request.Context(), lab, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	page, size := req.Normalize()
	response.OKPage(c, list, total, page, size)
}

// CreateJob 新建工单，归属当前用户实验室
// POST /api/v1/users/:id/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	lab, ok := MustGetLab(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	view, err := h.jobSvc.Create(c.Request.Context(), lab, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, view)
}

// GetJob 工单汇总视图
// GET /api/v1/users/:id/jobs/:number
func (h *JobHandler) GetJob(c *gin.Context) {
	view, err := h.jobSvc.Assemble(c.Request.Context(), c.Param("number"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, view)
}

// UpdateJob 保存工单可编辑属性
// PUT /api/v1/users/:id/jobs/:number
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dto.JobAttributesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	view, err := h.jobSvc.SaveAttributes(c.Request.Context(), c.Param("number"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, view)
}
