package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"labportal/internal/api/middleware"
	"labportal/internal/service"
	pkgerrors "labportal/pkg/errors"
	"labportal/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.CtxUserID)
	if s == "" {
		response.Unauthorized(c, response.CodeUnauthenticated, "未认证")
		return "", false
	}
	return s, true
}

// MustGetLab 从 Gin 上下文中提取 SelfScope 解析出的实验室
func MustGetLab(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.CtxLab)
	if s == "" {
		response.Denied(c)
		return "", false
	}
	return s, true
}

// tokenMeta 当前 Access Token 的 jti 与过期时间，供登出使用
func tokenMeta(c *gin.Context) (string, time.Time) {
	return c.GetString(middleware.CtxTokenJTI), c.GetTime(middleware.CtxTokenExp)
}

// bindFailed 参数校验失败统一返回 400
// 请求体超限时只记录错误，由 BodyLimit 写 413
func bindFailed(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		_ = c.Error(err)
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "参数校验失败", err.Error())
}

// handleServiceError 将业务错误映射为统一响应
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrJobDenied):
		response.Denied(c)
	case errors.Is(err, service.ErrJobExists):
		response.Conflict(c, response.CodeJobExists, "工单号已存在")
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c)
	case errors.Is(err, pkgerrors.ErrStoreUnavailable):
		response.ServiceUnavailable(c)
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
