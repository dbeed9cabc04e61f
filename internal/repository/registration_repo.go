package repository

import (
	"context"

	"gorm.io/gorm"

	"labportal/internal/model"
)

// RegistrationRepository Backstage 登记记录
type RegistrationRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Registration, error)
	ListByJob(ctx context.Context, number string) ([]model.Registration, error)
	// FirstByJob 取工单最早的一条登记，用于反查登记编码
	FirstByJob(ctx context.Context, number string) (*model.Registration, error)
	CountByCode(ctx context.Context, code string) (int64, error)
	Create(ctx context.Context, reg *model.Registration) error
	Update(ctx context.Context, reg *model.Registration) error
	Delete(ctx context.Context, id int64) error
}

type registrationRepo struct {
	db *gorm.DB
}

// NewRegistrationRepo 创建 RegistrationRepository 实例
func NewRegistrationRepo(db *gorm.DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

func (r *registrationRepo) GetByID(ctx context.Context, id int64) (*model.Registration, error) {
	var reg model.Registration
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepo) ListByJob(ctx context.Context, number string) ([]model.Registration, error) {
	var regs []model.Registration
	err := r.db.WithContext(ctx).
		Where("obra = ?", number).
		Order("data DESC").
		Find(&regs).Error
	return regs, err
}

func (r *registrationRepo) FirstByJob(ctx context.Context, number string) (*model.Registration, error) {
	var reg model.Registration
	err := r.db.WithContext(ctx).
		Where("obra = ? AND codigo <> ''", number).
		Order("data ASC").
		Order("id ASC").
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepo) CountByCode(ctx context.Context, code string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Registration{}).
		Where("codigo = ?", code).
		Count(&count).Error
	return count, err
}

func (r *registrationRepo) Create(ctx context.Context, reg *model.Registration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *registrationRepo) Update(ctx context.Context, reg *model.Registration) error {
	return r.db.WithContext(ctx).Save(reg).Error
}

func (r *registrationRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Registration{}).Error
}
