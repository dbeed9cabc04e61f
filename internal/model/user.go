package model

// ── 认证库 ──

// User 登录用户 — 对应 users
type User struct {
	UserID       string `gorm:"type:varchar(36);primaryKey"            json:"user_id"`
	Username     string `gorm:"type:varchar(64);not null;uniqueIndex"  json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"             json:"-"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// UserLab 用户与实验室的对应关系 — 对应 users_labs
// 每个用户名恰好对应一个实验室，查询时实时解析，不写入会话
type UserLab struct {
	Username string `gorm:"type:varchar(64);primaryKey" json:"username"`
	Lab      string `gorm:"type:varchar(64);not null"   json:"lab"`
}

// TableName 指定表名
func (UserLab) TableName() string { return "users_labs" }
