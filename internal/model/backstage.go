package model

import "time"

// ── Backstage 打样/稿件库 ──

// Proof 打样工单 — 对应 obras
// 只是 Optimus 工单的子集，缺失记录属正常情况
type Proof struct {
	Number    string     `gorm:"column:numero;type:varchar(20);primaryKey" json:"number"`
	Customer  string     `gorm:"column:cliente;type:varchar(64);index"     json:"customer"`
	Title     string     `gorm:"column:titulo;type:varchar(255)"           json:"title"`
	State     string     `gorm:"column:estado;type:varchar(32)"            json:"state"`
	ProofDate *time.Time `gorm:"column:data_prova"                         json:"proof_date,omitempty"`
	Version   int        `gorm:"column:versao"                             json:"version"`
}

// TableName 指定表名
func (Proof) TableName() string { return "obras" }

// Registration 登记记录 — 对应 registos
// Code 为内部登记编码，同一编码可对应多个工单
type Registration struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"      json:"id"`
	Code        string    `gorm:"column:codigo;type:varchar(64);index"    json:"code"`
	JobNumber   string    `gorm:"column:obra;type:varchar(20);index"      json:"job_number"`
	Customer    string    `gorm:"column:cliente;type:varchar(64)"         json:"customer"`
	Date        time.Time `gorm:"column:data"                             json:"date"`
	Description string    `gorm:"column:descricao;type:text"              json:"description"`
}

// TableName 指定表名
func (Registration) TableName() string { return "registos" }

// ExternalOrder 稿件系统订单 — 对应 encomendas
// 与 Optimus 没有共同主键，只能按子订单号或项目号查找
type ExternalOrder struct {
	ID         int64  `gorm:"column:id;primaryKey"                          json:"id"`
	SubOrderID string `gorm:"column:suborder_id;type:varchar(64);index"     json:"suborder_id"`
	ProjectID  string `gorm:"column:project_id;type:varchar(64);index"      json:"project_id"`
	Location   string `gorm:"column:localizacao;type:varchar(512)"          json:"location"`
}

// TableName 指定表名
func (ExternalOrder) TableName() string { return "encomendas" }
