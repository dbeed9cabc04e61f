package model

import "time"

// ── Optimus 生产库 ──
// 表结构由生产系统维护，本服务只读（job 表的属性编辑除外）

// 工单状态码（只做过滤，不校验流转）
const (
	JobStatusOrdered      = 0
	JobStatusInProduction = 10
	JobStatusDelivered    = 20
	JobStatusInvoiced     = 30
	JobStatusClosed       = 40

	// ProofTypePrefix 打样类工单的类型前缀
	ProofTypePrefix = "12"
)

// OpenStatuses 在产工单状态
var OpenStatuses = []int{JobStatusOrdered, JobStatusInProduction}

// DeliveredStatuses 已交付工单状态
var DeliveredStatuses = []int{JobStatusDelivered, JobStatusInvoiced, JobStatusClosed}

// Job 工单 — 对应 job
type Job struct {
	Number         string     `gorm:"column:j_number;type:varchar(20);primaryKey" json:"number"`
	Customer       string     `gorm:"column:j_customer;type:varchar(64);index"    json:"customer"`
	Title1         string     `gorm:"column:j_title1;type:varchar(255)"           json:"title1"`
	Title2         string     `gorm:"column:j_title2;type:varchar(255)"           json:"title2"`
	Product        string     `gorm:"column:j_product;type:varchar(255)"          json:"product"`
	Material       string     `gorm:"column:j_material;type:varchar(255)"         json:"material"`
	Colors         string     `gorm:"column:j_colors;type:varchar(255)"           json:"colors"`
	QtyOrdered     int        `gorm:"column:j_qty_ordered"                        json:"qty_ordered"`
	Status         int        `gorm:"column:j_status;index"                       json:"status"`
	Type           string     `gorm:"column:j_type;type:varchar(20)"              json:"type"`
	OrderDate      *time.Time `gorm:"column:j_ord_date"                           json:"order_date,omitempty"`
	DeliveryDate   *time.Time `gorm:"column:j_del_date"                           json:"delivery_date,omitempty"`
	SubOrderID     string     `gorm:"column:j_suborder;type:varchar(64)"          json:"suborder_id"`
	ProjectID      string     `gorm:"column:j_project;type:varchar(64)"           json:"project_id"`
	RegCode        *string    `gorm:"column:j_regcode;type:varchar(64)"           json:"reg_code,omitempty"`
	VarnishMachine YesNo      `gorm:"column:j_varnish_machine;type:varchar(8)"    json:"varnish_machine"`
	VarnishUV      YesNo      `gorm:"column:j_varnish_uv;type:varchar(8)"         json:"varnish_uv"`
	Braille        YesNo      `gorm:"column:j_braille;type:varchar(8)"            json:"braille"`
	Notes          string     `gorm:"column:j_notes;type:text"                    json:"notes"`
}

// TableName 指定表名
func (Job) TableName() string { return "job" }

// EditableJobColumns 属性编辑时整体覆盖的列
var EditableJobColumns = []string{
	"j_title1", "j_title2", "j_product", "j_material", "j_colors", "j_qty_ordered",
	"j_del_date", "j_varnish_machine", "j_varnish_uv", "j_braille", "j_notes",
}

// Stage 工时记录 — 对应 jobtime
type Stage struct {
	ID           int64      `gorm:"column:jt_id;primaryKey"                 json:"id"`
	JobNumber    string     `gorm:"column:jt_job;type:varchar(20);index"    json:"job_number"`
	ActivityCode string     `gorm:"column:jt_activity;type:varchar(32)"     json:"activity_code"`
	StaffID      *int64     `gorm:"column:jt_staff"                         json:"staff_id,omitempty"`
	Start        time.Time  `gorm:"column:jt_start"                         json:"start"`
	End          *time.Time `gorm:"column:jt_end"                           json:"end,omitempty"`

	// 关联
	Activity *Activity `gorm:"foreignKey:ActivityCode;references:Code" json:"activity,omitempty"`
	Staff    *Staff    `gorm:"foreignKey:StaffID;references:ID"        json:"staff,omitempty"`
}

// TableName 指定表名
func (Stage) TableName() string { return "jobtime" }

// Delivery 交付记录 — 对应 delivery
// Parent 非 0 表示子交付，不进入顶层交付列表
type Delivery struct {
	ID        int64     `gorm:"column:d_id;primaryKey"              json:"id"`
	JobNumber string    `gorm:"column:d_job;type:varchar(20);index" json:"job_number"`
	Date      time.Time `gorm:"column:d_date"                       json:"date"`
	Qty       int       `gorm:"column:d_qty"                        json:"qty"`
	Parent    int64     `gorm:"column:d_parent;default:0"           json:"parent"`
	Address   string    `gorm:"column:d_address;type:varchar(255)"  json:"address"`

	Job *Job `gorm:"foreignKey:JobNumber;references:Number" json:"job,omitempty"`
}

// TableName 指定表名
func (Delivery) TableName() string { return "delivery" }

// Staff 员工 — 对应 staff
type Staff struct {
	ID   int64  `gorm:"column:s_id;primaryKey"            json:"id"`
	Name string `gorm:"column:s_name;type:varchar(100)"   json:"name"`
}

// TableName 指定表名
func (Staff) TableName() string { return "staff" }

// Activity 工序 — 对应 activity
type Activity struct {
	Code string `gorm:"column:a_code;type:varchar(32);primaryKey" json:"code"`
	Name string `gorm:"column:a_name;type:varchar(100)"           json:"name"`
}

// TableName 指定表名
func (Activity) TableName() string { return "activity" }

// Color 色版参考表 — 对应 color
type Color struct {
	Name string `gorm:"column:c_name;type:varchar(64);primaryKey" json:"name"`
	Hex  string `gorm:"column:c_hex;type:varchar(7)"              json:"hex"`
}

// TableName 指定表名
func (Color) TableName() string { return "color" }
