package dto

import "time"

// ── 工单模块 DTO ──

// 工单阶段（列表过滤）
const (
	PhaseProduction = "production"
	PhaseProof      = "proof"
	PhaseDelivered  = "delivered"
)

// JobListRequest 实验室工单列表查询参数
type JobListRequest struct {
	PaginationRequest
	Phase string `form:"phase" binding:"omitempty,oneof=production proof delivered"`
	From  string `form:"from"  binding:"omitempty,datetime=2006-01-02"`
	To    string `form:"to"    binding:"omitempty,datetime=2006-01-02"`
}

// JobSummary 列表中的工单摘要
type JobSummary struct {
	Number       string     `json:"number"`
	Title1       string     `json:"title1"`
	Title2       string     `json:"title2"`
	Product      string     `json:"product"`
	Status       int        `json:"status"`
	Phase        string     `json:"phase"`
	Type         string     `json:"type"`
	QtyOrdered   int        `json:"qty_ordered"`
	OrderDate    *time.Time `json:"order_date,omitempty"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	ProofState   string     `json:"proof_state,omitempty"`
}

// JobAttributesRequest 工单可编辑属性（整体覆盖）
type JobAttributesRequest struct {
	Title1         string     `json:"title1"          binding:"max=255"`
	Title2         string     `json:"title2"          binding:"max=255"`
	Product        string     `json:"product"         binding:"max=255"`
	Material       string     `json:"material"        binding:"max=255"`
	Colors         string     `json:"colors"          binding:"max=255"`
	QtyOrdered     int        `json:"qty_ordered"     binding:"min=0"`
	DeliveryDate   *time.Time `json:"delivery_date"`
	VarnishMachine bool       `json:"varnish_machine"`
	VarnishUV      bool       `json:"varnish_uv"`
	Braille        bool       `json:"braille"`
	Notes          string     `json:"notes"           binding:"max=2000"`
}

// CreateJobRequest 新建工单（归属当前用户实验室）
type CreateJobRequest struct {
	Number string `json:"number" binding:"required,numeric,max=20"`
	JobAttributesRequest
}

// ColorSwatch 色版
// Hex 为空表示参考表中无此色版
type ColorSwatch struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// OrderMeta 稿件系统订单信息
type OrderMeta struct {
	SubOrderID string `json:"suborder_id,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
	Path       string `json:"path"`
}

// StageView 生产阶段
type StageView struct {
	Code       string     `json:"code"`
	Activity   string     `json:"activity"`
	Department string     `json:"department"`
	Operator   string     `json:"operator,omitempty"`
	Start      time.Time  `json:"start"`
	End        *time.Time `json:"end,omitempty"`
}

// DeliveryView 交付
type DeliveryView struct {
	ID      int64     `json:"id"`
	Date    time.Time `json:"date"`
	Qty     int       `json:"qty"`
	Address string    `json:"address,omitempty"`
}

// ProofView Backstage 打样信息
type ProofView struct {
	State     string     `json:"state"`
	Version   int        `json:"version"`
	ProofDate *time.Time `json:"proof_date,omitempty"`
}

// JobStats 工单统计
type JobStats struct {
	PriorRegistrations int64 `json:"prior_registrations"`
	StageCount         int   `json:"stage_count"`
	WorkedMinutes      int64 `json:"worked_minutes"`
	DeliveryCount      int   `json:"delivery_count"`
	ScheduledQty       int   `json:"scheduled_qty"`
}

// JobView 工单汇总视图
// Known=false 表示 Optimus 中无此工单，其余字段为空
type JobView struct {
	Number         string         `json:"number"`
	Known          bool           `json:"known"`
	Lab            string         `json:"lab,omitempty"`
	Title1         string         `json:"title1,omitempty"`
	Title2         string         `json:"title2,omitempty"`
	Product        string         `json:"product,omitempty"`
	Material       string         `json:"material,omitempty"`
	ColorSpec      string         `json:"color_spec,omitempty"`
	Colors         []ColorSwatch  `json:"colors"`
	QtyOrdered     int            `json:"qty_ordered"`
	Status         int            `json:"status"`
	Phase          string         `json:"phase,omitempty"`
	Type           string         `json:"type,omitempty"`
	OrderDate      *time.Time     `json:"order_date,omitempty"`
	DeliveryDate   *time.Time     `json:"delivery_date,omitempty"`
	VarnishMachine bool           `json:"varnish_machine"`
	VarnishUV      bool           `json:"varnish_uv"`
	Braille        bool           `json:"braille"`
	Notes          string         `json:"notes,omitempty"`
	Order          OrderMeta      `json:"order"`
	Thumbnail      string         `json:"thumbnail,omitempty"`
	CurrentStage   *StageView     `json:"current_stage,omitempty"`
	Stages         []StageView    `json:"stages"`
	Deliveries     []DeliveryView `json:"deliveries"`
	LastDelivery   *DeliveryView  `json:"last_delivery,omitempty"`
	Proof          *ProofView     `json:"proof,omitempty"`
	Stats          JobStats       `json:"stats"`
}
