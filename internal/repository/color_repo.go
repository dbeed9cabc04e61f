package repository

import (
	"context"

	"gorm.io/gorm"

	"labportal/internal/model"
)

// ColorRepository 色版参考表（只读）
type ColorRepository interface {
	ListByNames(ctx context.Context, names []string) ([]model.Color, error)
}

type colorRepo struct {
	db *gorm.DB
}

// NewColorRepo 创建 ColorRepository 实例
func NewColorRepo(db *gorm.DB) ColorRepository {
	return &colorRepo{db: db}
}

func (r *colorRepo) ListByNames(ctx context.Context, names []string) ([]model.Color, error) {
	var colors []model.Color
	if len(names) == 0 {
		return colors, nil
	}
	err := r.db.WithContext(ctx).
		Where("c_name IN ?", names).
		Find(&colors).Error
	return colors, err
}
