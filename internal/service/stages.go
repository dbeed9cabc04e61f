package service

import (
	"labportal/internal/dto"
	"labportal/internal/model"
)

// departmentByActivity 工序代码 → 部门
// 未列出的代码原样作为部门名
var departmentByActivity = map[string]string{
	"001 PREIMP":   "PRE",
	"002 CTP":      "PRE",
	"003 CORTE":    "CORT",
	"004 GUILHOT":  "CORT",
	"005 PROVA":    "PROVA",
	"006 IMPRIM":   "ACAB",
	"007 VERNIZ":   "ACAB",
	"008 CORTANTE": "ACAB",
	"009 COLAGEM":  "ACAB",
	"010 EXPED":    "EXP",
}

// Department 将工序代码映射为部门
func Department(activityCode string) string {
	if dept, ok := departmentByActivity[activityCode]; ok {
		return dept
	}
	return activityCode
}

// CurrentStage 当前阶段：结束时间最晚的记录
// 尚未结束的记录不参与比较；全部未结束时取开始时间最晚的一条
func CurrentStage(stages []model.Stage) *model.Stage {
	var current *model.Stage
	for i := range stages {
		s := &stages[i]
		if s.End == nil {
			continue
		}
		if current == nil || !s.End.Before(*current.End) {
			current = s
		}
	}
	if current != nil {
		return current
	}

	for i := range stages {
		s := &stages[i]
		if current == nil || !s.Start.Before(current.Start) {
			current = s
		}
	}
	return current
}

// WorkedMinutes 已结束阶段的累计分钟数
func WorkedMinutes(stages []model.Stage) int64 {
	var total int64
	for _, s := range stages {
		if s.End == nil || s.End.Before(s.Start) {
			continue
		}
		total += int64(s.End.Sub(s.Start).Minutes())
	}
	return total
}

func toStageView(s *model.Stage) dto.StageView {
	view := dto.StageView{
		Code:       s.ActivityCode,
		Activity:   s.ActivityCode,
		Department: Department(s.ActivityCode),
		Start:      s.Start,
		End:        s.End,
	}
	if s.Activity != nil && s.Activity.Name != "" {
		view.Activity = s.Activity.Name
	}
	if s.Staff != nil {
		view.Operator = s.Staff.Name
	}
	return view
}
