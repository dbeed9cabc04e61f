package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"labportal/internal/dto"
	"labportal/internal/service"
	"labportal/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportJobs 导出实验室工单列表，过滤参数与列表接口一致
// GET /api/v1/users/:id/export/jobs.xlsx?phase=&from=&to=
func (h *ExportHandler) ExportJobs(c *gin.Context) {
	lab, ok := MustGetLab(c)
	if !ok {
		return
	}

	var req dto.JobListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	buf, filename, err := h.exportSvc.ExportJobs(c.Request.Context(), lab, &req)
	if err != nil {
		if errors.Is(err, service.ErrExportGenerateFail) {
			response.InternalError(c)
			return
		}
		handleServiceError(c, err)
		return
	}

	response.Attachment(c, xlsxContentType, filename, buf.Bytes())
}
