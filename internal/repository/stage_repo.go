package repository

import (
	"context"

	"gorm.io/gorm"

	"labportal/internal/model"
)

// StageRepository 工时记录（生产时间线）
type StageRepository interface {
	// ListByJob 按开始时间升序返回，附带工序名与操作员
	ListByJob(ctx context.Context, number string) ([]model.Stage, error)
}

type stageRepo struct {
	db *gorm.DB
}

// NewStageRepo 创建 StageRepository 实例
func NewStageRepo(db *gorm.DB) StageRepository {
	return &stageRepo{db: db}
}

func (r *stageRepo) ListByJob(ctx context.Context, number string) ([]model.Stage, error) {
	var stages []model.Stage
	err := r.db.WithContext(ctx).
		Preload("Activity").
		Preload("Staff").
		Where("jt_job = ?", number).
		Order("jt_start ASC").
		Order("jt_id ASC").
		Find(&stages).Error
	return stages, err
}
