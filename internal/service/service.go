package service

import (
	"go.uber.org/zap"

	"labportal/config"
	"labportal/internal/repository"
	"labportal/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Lab          LabService
	Access       AccessService
	Auth         AuthService
	User         UserService
	Job          JobService
	Delivery     DeliveryService
	Registration RegistrationService
	Export       ExportService
}

// NewService 创建 Service 聚合
// blacklist 为 nil 时不启用 token 吊销（未配置 Redis）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	labs := NewLabService(repo, logger)

	return &Service{
		Lab:          labs,
		Access:       NewAccessService(repo, labs, logger),
		Auth:         NewAuthService(repo, labs, jwtMgr, blacklist, logger),
		User:         NewUserService(repo, logger),
		Job:          NewJobService(&cfg.Media, repo, logger),
		Delivery:     NewDeliveryService(repo, logger),
		Registration: NewRegistrationService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
