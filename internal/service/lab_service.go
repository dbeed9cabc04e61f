package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"labportal/internal/repository"
	pkgerrors "labportal/pkg/errors"
)

// ErrLabNotFound 用户未关联任何实验室
var ErrLabNotFound = fmt.Errorf("%w: 用户未关联实验室", pkgerrors.ErrNotFound)

// LabService 实验室目录：用户名 → 实验室
type LabService interface {
	// ResolveLab 查询用户所属实验室
	// 无记录返回 ErrLabNotFound，调用方必须按拒绝处理
	ResolveLab(ctx context.Context, username string) (string, error)
}

type labService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLabService 创建 LabService 实例
func NewLabService(repo *repository.Repository, logger *zap.Logger) LabService {
	return &labService{repo: repo, logger: logger}
}

func (s *labService) ResolveLab(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", ErrLabNotFound
	}

	ul, err := s.repo.Lab.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrLabNotFound
		}
		s.logger.Error("查询用户实验室失败", zap.String("username", username), zap.Error(err))
		return "", pkgerrors.Unavailable("authdb", err)
	}
	if ul.Lab == "" {
		return "", ErrLabNotFound
	}

	return ul.Lab, nil
}
