package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"labportal/config"
	"labportal/internal/api/handler"
	"labportal/internal/api/middleware"
	"labportal/internal/service"
	"labportal/pkg/jwt"
	"labportal/pkg/redis"
)

// maxBodyBytes 请求体上限，接口只接收小型 JSON
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时 Token 吊销与登录限流均不生效
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	svc *service.Service,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	var (
		blacklist middleware.TokenChecker
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", h.Health.Check)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(limiter, "login", cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 用户作用域：:id 必须是当前用户，并注入实验室
			self := authorized.Group("/users/:id")
			self.Use(middleware.SelfScope(svc.Access, svc.Lab))
			{
				self.GET("/jobs", h.Job.ListJobs)
				self.POST("/jobs", h.Job.CreateJob)

				// 单个工单：实验室归属鉴权
				job := self.Group("/jobs/:number")
				job.Use(middleware.JobAccess(svc.Access))
				{
					job.GET("", h.Job.GetJob)
					job.PUT("", h.Job.UpdateJob)
					job.GET("/registrations", h.Registration.ListRegistrations)
					job.POST("/registrations", h.Registration.CreateRegistration)
					job.PUT("/registrations/:rid", h.Registration.UpdateRegistration)
					job.DELETE("/registrations/:rid", h.Registration.DeleteRegistration)
				}

				self.GET("/deliveries/tomorrow", h.Delivery.Tomorrow)
				self.GET("/deliveries/calendar.ics", h.Delivery.Calendar)
				self.GET("/export/jobs.xlsx", h.Export.ExportJobs)
			}
		}
	}

	return r
}
