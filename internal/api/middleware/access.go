package middleware

import (
	"github.com/gin-gonic/gin"

	"labportal/internal/service"
	"labportal/pkg/response"
)

// identityFrom 读取 JWTAuth 注入的身份
func identityFrom(c *gin.Context) service.Identity {
	return service.Identity{
		UserID:   c.GetString(CtxUserID),
		Username: c.GetString(CtxUsername),
	}
}

// SelfScope 用户作用域中间件，挂在 /users/:id 下
// URL 中的 :id 必须是当前登录用户；通过后解析用户实验室并注入上下文。
// 任何失败都返回同一个 403，不暴露原因。
func SelfScope(access service.AccessService, labs service.LabService) gin.HandlerFunc {
	return func(c *gin.Context) {
		who := identityFrom(c)
		if !access.CheckIdentity(who, c.Param("id")) {
			response.Denied(c)
			c.Abort()
			return
		}

		lab, err := labs.ResolveLab(c.Request.Context(), who.Username)
		if err != nil {
			response.Denied(c)
			c.Abort()
			return
		}

		c.Set(CtxLab, lab)
		c.Next()
	}
}

// JobAccess 工单访问中间件，挂在 /jobs/:number 下
// 工单号格式错误在访问任何数据源之前返回 400；鉴权失败统一返回 403。
func JobAccess(access service.AccessService) gin.HandlerFunc {
	return func(c *gin.Context) {
		number := c.Param("number")
		if !service.ValidJobNumber(number) {
			response.BadRequest(c, "工单号必须为数字")
			c.Abort()
			return
		}

		if !access.Authorize(c.Request.Context(), identityFrom(c), number, c.Param("id")) {
			response.Denied(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
