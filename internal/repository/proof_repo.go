package repository

import (
	"context"

	"gorm.io/gorm"

	"labportal/internal/model"
)

// ProofRepository Backstage 打样工单（只读）
type ProofRepository interface {
	GetByNumber(ctx context.Context, number string) (*model.Proof, error)
	// ListByNumbers 按实验室过滤后返回给定工单号中存在打样记录的部分
	ListByNumbers(ctx context.Context, customer string, numbers []string) ([]model.Proof, error)
}

type proofRepo struct {
	db *gorm.DB
}

// NewProofRepo 创建 ProofRepository 实例
func NewProofRepo(db *gorm.DB) ProofRepository {
	return &proofRepo{db: db}
}

func (r *proofRepo) GetByNumber(ctx context.Context, number string) (*model.Proof, error) {
	var proof model.Proof
	err := r.db.WithContext(ctx).
		Where("numero = ?", number).
		First(&proof).Error
	if err != nil {
		return nil, err
	}
	return &proof, nil
}

func (r *proofRepo) ListByNumbers(ctx context.Context, customer string, numbers []string) ([]model.Proof, error) {
	var proofs []model.Proof
	if len(numbers) == 0 {
		return proofs, nil
	}
	err := r.db.WithContext(ctx).
		Where("cliente = ? AND numero IN ?", customer, numbers).
		Find(&proofs).Error
	return proofs, err
}
