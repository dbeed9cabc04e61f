package dto

import "time"

// ── 登记模块 DTO ──

// RegistrationRequest 新建/更新登记
type RegistrationRequest struct {
	Code        string     `json:"code"        binding:"required,max=64"`
	Date        *time.Time `json:"date"`
	Description string     `json:"description" binding:"max=2000"`
}

// RegistrationResponse 登记记录
type RegistrationResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	JobNumber   string    `json:"job_number"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}
