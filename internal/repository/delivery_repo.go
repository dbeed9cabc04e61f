package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"labportal/internal/model"
)

// DeliveryRepository 交付记录
// 所有查询只返回顶层交付（d_parent = 0）
type DeliveryRepository interface {
	ListTopLevelByJob(ctx context.Context, number string) ([]model.Delivery, error)
	// ListTopLevelByCustomer 指定实验室在 [from, to) 内的交付，附带工单信息
	ListTopLevelByCustomer(ctx context.Context, customer string, from, to time.Time) ([]model.Delivery, error)
}

type deliveryRepo struct {
	db *gorm.DB
}

// NewDeliveryRepo 创建 DeliveryRepository 实例
func NewDeliveryRepo(db *gorm.DB) DeliveryRepository {
	return &deliveryRepo{db: db}
}

func (r *deliveryRepo) ListTopLevelByJob(ctx context.Context, number string) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := r.db.WithContext(ctx).
		Where("d_job = ? AND d_parent = 0", number).
		Order("d_date ASC").
		Find(&deliveries).Error
	return deliveries, err
}

func (r *deliveryRepo) ListTopLevelByCustomer(ctx context.Context, customer string, from, to time.Time) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := r.db.WithContext(ctx).
		Preload("Job").
		Joins("JOIN job ON job.j_number = delivery.d_job").
		Where("job.j_customer = ?", customer).
		Where("delivery.d_parent = 0").
		Where("delivery.d_date >= ? AND delivery.d_date < ?", from, to).
		Order("delivery.d_date ASC").
		Find(&deliveries).Error
	return deliveries, err
}
