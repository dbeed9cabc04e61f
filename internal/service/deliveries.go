package service

import (
	"time"

	"labportal/internal/dto"
	"labportal/internal/model"
)

// TopLevelDeliveries 过滤掉子交付（Parent 非 0）
func TopLevelDeliveries(deliveries []model.Delivery) []model.Delivery {
	top := make([]model.Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		if d.Parent == 0 {
			top = append(top, d)
		}
	}
	return top
}

// LastDelivery 顶层交付中计划日期最晚的一条，没有时返回 nil
func LastDelivery(deliveries []model.Delivery) *model.Delivery {
	var last *model.Delivery
	for i := range deliveries {
		d := &deliveries[i]
		if d.Parent != 0 {
			continue
		}
		if last == nil || d.Date.After(last.Date) || (d.Date.Equal(last.Date) && d.ID > last.ID) {
			last = d
		}
	}
	return last
}

// NextWorkingDay 下一个工作日的零点
// 周五、周六跳到下周一；节假日不处理
func NextWorkingDay(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch now.Weekday() {
	case time.Friday:
		return day.AddDate(0, 0, 3)
	case time.Saturday:
		return day.AddDate(0, 0, 2)
	default:
		return day.AddDate(0, 0, 1)
	}
}

func toDeliveryView(d *model.Delivery) dto.DeliveryView {
	return dto.DeliveryView{
		ID:      d.ID,
		Date:    d.Date,
		Qty:     d.Qty,
		Address: d.Address,
	}
}
