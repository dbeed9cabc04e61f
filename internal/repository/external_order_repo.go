package repository

import (
	"context"

	"gorm.io/gorm"

	"labportal/internal/model"
)

// ExternalOrderRepository 稿件系统订单（只读）
// 同一标识可能有多行，取最新一行（id 最大）
type ExternalOrderRepository interface {
	GetBySubOrder(ctx context.Context, subOrderID string) (*model.ExternalOrder, error)
	GetByProject(ctx context.Context, projectID string) (*model.ExternalOrder, error)
}

type externalOrderRepo struct {
	db *gorm.DB
}

// NewExternalOrderRepo 创建 ExternalOrderRepository 实例
func NewExternalOrderRepo(db *gorm.DB) ExternalOrderRepository {
	return &externalOrderRepo{db: db}
}

func (r *externalOrderRepo) GetBySubOrder(ctx context.Context, subOrderID string) (*model.ExternalOrder, error) {
	return r.first(ctx, "suborder_id = ?", subOrderID)
}

func (r *externalOrderRepo) GetByProject(ctx context.Context, projectID string) (*model.ExternalOrder, error) {
	return r.first(ctx, "project_id = ?", projectID)
}

func (r *externalOrderRepo) first(ctx context.Context, cond string, arg string) (*model.ExternalOrder, error) {
	var order model.ExternalOrder
	err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("id DESC").
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
