package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"labportal/internal/dto"
	"labportal/internal/model"
	"labportal/internal/repository"
	pkgerrors "labportal/pkg/errors"
)

// calendarHorizonDays 交付日历覆盖的天数
const calendarHorizonDays = 60

// DeliveryService 实验室交付查询
type DeliveryService interface {
	// Tomorrow 下一个工作日的顶层交付
	Tomorrow(ctx context.Context, lab string) (*dto.TomorrowDeliveriesResponse, error)
	// Calendar 未来交付的 iCalendar 订阅内容
	Calendar(ctx context.Context, lab string) (string, error)
}

type deliveryService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewDeliveryService 创建 DeliveryService 实例
func NewDeliveryService(repo *repository.Repository, logger *zap.Logger) DeliveryService {
	return &deliveryService{repo: repo, logger: logger, now: time.Now}
}

func (s *deliveryService) Tomorrow(ctx context.Context, lab string) (*dto.TomorrowDeliveriesResponse, error) {
	day := NextWorkingDay(s.now())

	deliveries, err := s.repo.Delivery.ListTopLevelByCustomer(ctx, lab, day, day.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("查询交付失败", zap.String("lab", lab), zap.Error(err))
		return nil, pkgerrors.Unavailable("optimus", err)
	}

	list := make([]dto.LabDeliveryResponse, 0, len(deliveries))
	for i := range deliveries {
		list = append(list, toLabDelivery(&deliveries[i]))
	}

	return &dto.TomorrowDeliveriesResponse{
		Day:  day.Format("2006-01-02"),
		List: list,
	}, nil
}

func (s *deliveryService) Calendar(ctx context.Context, lab string) (string, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, calendarHorizonDays)

	deliveries, err := s.repo.Delivery.ListTopLevelByCustomer(ctx, lab, from, to)
	if err != nil {
		s.logger.Error("查询交付失败", zap.String("lab", lab), zap.Error(err))
		return "", pkgerrors.Unavailable("optimus", err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//labportal//deliveries//PT")
	cal.SetName("Entregas " + lab)

	for i := range deliveries {
		d := toLabDelivery(&deliveries[i])
		event := cal.AddEvent(fmt.Sprintf("delivery-%d@labportal", d.ID))
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(d.Date)
		event.SetAllDayEndAt(d.Date.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("%s %s", d.JobNumber, d.Title))
		event.SetDescription(fmt.Sprintf("Qtd: %d", d.Qty))
		if d.Address != "" {
			event.SetLocation(d.Address)
		}
	}

	return cal.Serialize(), nil
}

func toLabDelivery(d *model.Delivery) dto.LabDeliveryResponse {
	resp := dto.LabDeliveryResponse{
		ID:        d.ID,
		JobNumber: d.JobNumber,
		Date:      d.Date,
		Qty:       d.Qty,
		Address:   d.Address,
	}
	if d.Job != nil {
		resp.Title = d.Job.Title1
	}
	return resp
}
