package dto

import "time"

// ── 交付模块 DTO ──

// LabDeliveryResponse 实验室交付条目
type LabDeliveryResponse struct {
	ID        int64     `json:"id"`
	JobNumber string    `json:"job_number"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Qty       int       `json:"qty"`
	Address   string    `json:"address,omitempty"`
}

// TomorrowDeliveriesResponse 下一个工作日的交付
type TomorrowDeliveriesResponse struct {
	Day  string                `json:"day"` // 2006-01-02
	List []LabDeliveryResponse `json:"list"`
}
