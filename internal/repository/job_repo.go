package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"labportal/internal/model"
)

// JobListFilters 工单列表过滤条件
type JobListFilters struct {
	Customer   string
	Statuses   []int
	TypePrefix string     // 非空时按 j_type LIKE 'prefix%' 过滤
	From       *time.Time // 交货日期下界（含）
	To         *time.Time // 交货日期上界（不含）
}

// JobRepository Optimus 工单数据访问接口
type JobRepository interface {
	GetByNumber(ctx context.Context, number string) (*model.Job, error)
	// GetCustomer 只取归属实验室，用于鉴权
	GetCustomer(ctx context.Context, number string) (string, error)
	List(ctx context.Context, filters *JobListFilters, offset, limit int) ([]model.Job, int64, error)
	Create(ctx context.Context, job *model.Job) error
	// SaveAttributes 按工单号插入或整体覆盖可编辑属性
	SaveAttributes(ctx context.Context, job *model.Job) error
}

type jobRepo struct {
	db *gorm.DB
}

// NewJobRepo 创建 JobRepository 实例
func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) GetByNumber(ctx context.Context, number string) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).
		Where("j_number = ?", number).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) GetCustomer(ctx context.Context, number string) (string, error) {
	var job model.Job
	err := r.db.WithContext(ctx).
		Select("j_number", "j_customer").
		Where("j_number = ?", number).
		First(&job).Error
	if err != nil {
		return "", err
	}
	return job.Customer, nil
}

func (r *jobRepo) List(ctx context.Context, filters *JobListFilters, offset, limit int) ([]model.Job, int64, error) {
	var jobs []model.Job
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Job{})

	if filters != nil {
		if filters.Customer != "" {
			db = db.Where("j_customer = ?", filters.Customer)
		}
		if len(filters.Statuses) > 0 {
			db = db.Where("j_status IN ?", filters.Statuses)
		}
		if filters.TypePrefix != "" {
			db = db.Where("j_type LIKE ?", filters.TypePrefix+"%")
		}
		if filters.From != nil {
			db = db.Where("j_del_date >= ?", *filters.From)
		}
		if filters.To != nil {
			db = db.Where("j_del_date < ?", *filters.To)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Order("j_del_date DESC").Order("j_number DESC").
		Offset(offset).Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepo) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepo) SaveAttributes(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "j_number"}},
			DoUpdates: clause.AssignmentColumns(model.EditableJobColumns),
		}).
		Create(job).Error
}
