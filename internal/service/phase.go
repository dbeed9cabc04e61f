package service

import (
	"strings"

	"labportal/internal/model"
)

// 工单生命周期阶段，由状态码与类型推断，不做流转校验
const (
	PhaseOrdered      = "ordered"
	PhaseInProduction = "in_production"
	PhaseProofed      = "proofed"
	PhaseDelivered    = "delivered"
	PhaseUnknown      = "unknown"
)

// JobPhase 推断工单阶段
func JobPhase(status int, jobType string) string {
	for _, s := range model.DeliveredStatuses {
		if status == s {
			return PhaseDelivered
		}
	}
	if status != model.JobStatusOrdered && status != model.JobStatusInProduction {
		return PhaseUnknown
	}
	if strings.HasPrefix(jobType, model.ProofTypePrefix) {
		return PhaseProofed
	}
	if status == model.JobStatusInProduction {
		return PhaseInProduction
	}
	return PhaseOrdered
}

// ValidJobNumber 工单号必须为 1-20 位数字
func ValidJobNumber(number string) bool {
	if number == "" || len(number) > 20 {
		return false
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
