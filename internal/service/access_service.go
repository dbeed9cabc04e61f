package service

import (
	"context"

	"go.uber.org/zap"

	"labportal/internal/repository"
)

// Identity 当前登录用户（来自 JWT）
type Identity struct {
	UserID   string
	Username string
}

// AccessService 工单访问鉴权
//
// 两项检查相互独立且必须同时通过：
//   - URL 中的用户 ID 与当前登录用户一致
//   - 工单在 Optimus 中的归属实验室与用户实验室完全一致（区分大小写）
//
// 任何查询失败都视为拒绝；拒绝原因只写日志，不返回给调用方。
type AccessService interface {
	Authorize(ctx context.Context, who Identity, jobNumber, pathUserID string) bool
	// CheckIdentity 仅做 URL 用户 ID 校验，用于不针对具体工单的接口
	CheckIdentity(who Identity, pathUserID string) bool
}

type accessService struct {
	repo   *repository.Repository
	labs   LabService
	logger *zap.Logger
}

// NewAccessService 创建 AccessService 实例
func NewAccessService(repo *repository.Repository, labs LabService, logger *zap.Logger) AccessService {
	return &accessService{repo: repo, labs: labs, logger: logger}
}

func (s *accessService) CheckIdentity(who Identity, pathUserID string) bool {
	return who.UserID != "" && pathUserID == who.UserID
}

func (s *accessService) Authorize(ctx context.Context, who Identity, jobNumber, pathUserID string) bool {
	deny := func(reason string, fields ...zap.Field) bool {
		fields = append(fields,
			zap.String("username", who.Username),
			zap.String("job", jobNumber),
			zap.String("reason", reason),
		)
		s.logger.Debug("工单访问被拒绝", fields...)
		return false
	}

	if !ValidJobNumber(jobNumber) {
		return deny("invalid_job_number")
	}
	if !s.CheckIdentity(who, pathUserID) {
		return deny("identity_mismatch")
	}

	userLab, err := s.labs.ResolveLab(ctx, who.Username)
	if err != nil {
		return deny("lab_unresolved", zap.Error(err))
	}

	jobLab, err := s.repo.Job.GetCustomer(ctx, jobNumber)
	if err != nil {
		return deny("job_lookup_failed", zap.Error(err))
	}

	if jobLab != userLab {
		return deny("lab_mismatch")
	}
	return true
}
