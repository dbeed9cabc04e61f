package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"labportal/internal/dto"
	"labportal/internal/model"
	"labportal/internal/repository"
	pkgerrors "labportal/pkg/errors"
)

// ── 用户模块业务错误 ──

var (
	ErrUsernameExists = errors.New("用户名已存在")
	ErrWeakPassword   = errors.New("密码长度至少 8 位")
	ErrEmptyLab       = errors.New("实验室不能为空")
	ErrEmptyUsername  = errors.New("用户名不能为空")
)

// UserService 账号维护，由运维命令行调用
type UserService interface {
	// CreateUser 新建账号并关联实验室
	CreateUser(ctx context.Context, username, password, lab string) (*dto.UserResponse, error)
	// AssignLab 修改账号关联的实验室
	AssignLab(ctx context.Context, username, lab string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) CreateUser(ctx context.Context, username, password, lab string) (*dto.UserResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	if lab == "" {
		return nil, ErrEmptyLab
	}

	if _, err := s.repo.User.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Unavailable("authdb", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:       uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("新建用户失败", zap.String("username", username), zap.Error(err))
		return nil, pkgerrors.Unavailable("authdb", err)
	}

	if err := s.repo.Lab.Assign(ctx, &model.UserLab{Username: username, Lab: lab}); err != nil {
		s.logger.Error("关联实验室失败", zap.String("username", username), zap.Error(err))
		return nil, pkgerrors.Unavailable("authdb", err)
	}

	s.logger.Info("新建用户", zap.String("username", username), zap.String("lab", lab))
	return &dto.UserResponse{ID: user.UserID, Username: username, Lab: lab}, nil
}

func (s *userService) AssignLab(ctx context.Context, username, lab string) error {
	if lab == "" {
		return ErrEmptyLab
	}

	if _, err := s.repo.User.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return pkgerrors.Unavailable("authdb", err)
	}

	if err := s.repo.Lab.Assign(ctx, &model.UserLab{Username: username, Lab: lab}); err != nil {
		s.logger.Error("关联实验室失败", zap.String("username", username), zap.Error(err))
		return pkgerrors.Unavailable("authdb", err)
	}
	return nil
}
