package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"labportal/internal/model"
)

// LabRepository 用户 → 实验室映射
type LabRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.UserLab, error)
	Assign(ctx context.Context, ul *model.UserLab) error
}

type labRepo struct {
	db *gorm.DB
}

// NewLabRepo 创建 LabRepository 实例
func NewLabRepo(db *gorm.DB) LabRepository {
	return &labRepo{db: db}
}

func (r *labRepo) GetByUsername(ctx context.Context, username string) (*model.UserLab, error) {
	var ul model.UserLab
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&ul).Error
	if err != nil {
		return nil, err
	}
	return &ul, nil
}

// Assign 设置用户所属实验室，已存在则覆盖
func (r *labRepo) Assign(ctx context.Context, ul *model.UserLab) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"lab"}),
		}).
		Create(ul).Error
}
