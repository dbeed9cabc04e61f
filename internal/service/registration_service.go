package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"labportal/internal/dto"
	"labportal/internal/model"
	"labportal/internal/repository"
	pkgerrors "labportal/pkg/errors"
)

// ErrRegistrationNotFound 登记不存在或不属于该工单
var ErrRegistrationNotFound = fmt.Errorf("%w: 登记不存在", pkgerrors.ErrNotFound)

// RegistrationService Backstage 登记记录维护
// 调用前工单访问已通过鉴权；登记必须属于 URL 中的工单
type RegistrationService interface {
	List(ctx context.Context, number string) ([]dto.RegistrationResponse, error)
	Create(ctx context.Context, lab, number string, req *dto.RegistrationRequest) (*dto.RegistrationResponse, error)
	Update(ctx context.Context, number string, id int64, req *dto.RegistrationRequest) (*dto.RegistrationResponse, error)
	Delete(ctx context.Context, number string, id int64) error
}

type registrationService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewRegistrationService 创建 RegistrationService 实例
func NewRegistrationService(repo *repository.Repository, logger *zap.Logger) RegistrationService {
	return &registrationService{repo: repo, logger: logger, now: time.Now}
}

func (s *registrationService) List(ctx context.Context, number string) ([]dto.RegistrationResponse, error) {
	regs, err := s.repo.Registration.ListByJob(ctx, number)
	if err != nil {
		s.logger.Error("查询登记失败", zap.String("job", number), zap.Error(err))
		return nil, pkgerrors.Unavailable("backstage", err)
	}

	result := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		result = append(result, toRegistrationResponse(&regs[i]))
	}
	return result, nil
}

func (s *registrationService) Create(ctx context.Context, lab, number string, req *dto.RegistrationRequest) (*dto.RegistrationResponse, error) {
	reg := &model.Registration{
		Code:        req.Code,
		JobNumber:   number,
		Customer:    lab,
		Date:        s.dateOrNow(req.Date),
		Description: req.Description,
	}

	if err := s.repo.Registration.Create(ctx, reg); err != nil {
		s.logger.Error("新建登记失败", zap.String("job", number), zap.Error(err))
		return nil, pkgerrors.Unavailable("backstage", err)
	}

	resp := toRegistrationResponse(reg)
	return &resp, nil
}

func (s *registrationService) Update(ctx context.Context, number string, id int64, req *dto.RegistrationRequest) (*dto.RegistrationResponse, error) {
	reg, err := s.getOwned(ctx, number, id)
	if err != nil {
		return nil, err
	}

	reg.Code = req.Code
	reg.Description = req.Description
	if req.Date != nil {
		reg.Date = *req.Date
	}

	if err := s.repo.Registration.Update(ctx, reg); err != nil {
		s.logger.Error("更新登记失败", zap.Int64("id", id), zap.Error(err))
		return nil, pkgerrors.Unavailable("backstage", err)
	}

	resp := toRegistrationResponse(reg)
	return &resp, nil
}

func (s *registrationService) Delete(ctx context.Context, number string, id int64) error {
	if _, err := s.getOwned(ctx, number, id); err != nil {
		return err
	}

	if err := s.repo.Registration.Delete(ctx, id); err != nil {
		s.logger.Error("删除登记失败", zap.Int64("id", id), zap.Error(err))
		return pkgerrors.Unavailable("backstage", err)
	}
	return nil
}

func (s *registrationService) getOwned(ctx context.Context, number string, id int64) (*model.Registration, error) {
	reg, err := s.repo.Registration.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		s.logger.Error("查询登记失败", zap.Int64("id", id), zap.Error(err))
		return nil, pkgerrors.Unavailable("backstage", err)
	}
	if reg.JobNumber != number {
		return nil, ErrRegistrationNotFound
	}
	return reg, nil
}

func (s *registrationService) dateOrNow(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return s.now()
}

func toRegistrationResponse(reg *model.Registration) dto.RegistrationResponse {
	return dto.RegistrationResponse{
		ID:          reg.ID,
		Code:        reg.Code,
		JobNumber:   reg.JobNumber,
		Date:        reg.Date,
		Description: reg.Description,
	}
}
