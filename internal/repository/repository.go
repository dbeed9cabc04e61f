package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
// 三个数据源各自独立：Optimus（生产）、Backstage（打样/稿件）、认证库
type Repository struct {
	// 认证库
	User UserRepository
	Lab  LabRepository

	// Optimus
	Job      JobRepository
	Stage    StageRepository
	Delivery DeliveryRepository
	Color    ColorRepository

	// Backstage
	Proof         ProofRepository
	Registration  RegistrationRepository
	ExternalOrder ExternalOrderRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(optimus, backstage, auth *gorm.DB) *Repository {
	return &Repository{
		User:          NewUserRepo(auth),
		Lab:           NewLabRepo(auth),
		Job:           NewJobRepo(optimus),
		Stage:         NewStageRepo(optimus),
		Delivery:      NewDeliveryRepo(optimus),
		Color:         NewColorRepo(optimus),
		Proof:         NewProofRepo(backstage),
		Registration:  NewRegistrationRepo(backstage),
		ExternalOrder: NewExternalOrderRepo(backstage),
	}
}
