package handler

import (
	"labportal/config"
	"labportal/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Job          *JobHandler
	Registration *RegistrationHandler
	Delivery     *DeliveryHandler
	Export       *ExportHandler
	Health       *HealthHandler
}

// NewHandler 创建 Handler 聚合
// probes 为 /health 的依赖探测项，由 main 按实际连接组装
func NewHandler(cfg *config.Config, svc *service.Service, probes ...Probe) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth, &cfg.Server),
		Job:          NewJobHandler(svc.Job),
		Registration: NewRegistrationHandler(svc.Registration),
		Delivery:     NewDeliveryHandler(svc.Delivery),
		Export:       NewExportHandler(svc.Export),
		Health:       NewHealthHandler(probes...),
	}
}
