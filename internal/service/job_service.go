package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"labportal/config"
	"labportal/internal/dto"
	"labportal/internal/model"
	"labportal/internal/repository"
	pkgerrors "labportal/pkg/errors"
)

// ── 工单模块业务错误 ──

var (
	ErrInvalidJobNumber = fmt.Errorf("%w: 工单号必须为数字", pkgerrors.ErrValidation)
	ErrInvalidDateRange = fmt.Errorf("%w: 日期范围无效", pkgerrors.ErrValidation)
	ErrJobNotFound      = fmt.Errorf("%w: 工单不存在", pkgerrors.ErrNotFound)
	ErrJobExists        = errors.New("工单号已存在")

	// ErrJobDenied 工单号被其他实验室占用，对外与鉴权拒绝一致，不暴露工单是否存在
	ErrJobDenied = errors.New("无权访问")
)

// deliveredWindowDays 已交付列表未指定日期时默认回看的天数
const deliveredWindowDays = 30

// JobService 工单业务接口
type JobService interface {
	// Assemble 汇总单个工单视图
	// 工单不存在时返回 Known=false 的视图；仅核心记录查询失败时返回错误
	Assemble(ctx context.Context, number string) (*dto.JobView, error)
	List(ctx context.Context, lab string, req *dto.JobListRequest) ([]dto.JobSummary, int64, error)
	Create(ctx context.Context, lab string, req *dto.CreateJobRequest) (*dto.JobView, error)
	SaveAttributes(ctx context.Context, number string, req *dto.JobAttributesRequest) (*dto.JobView, error)
}

type jobService struct {
	repo      *repository.Repository
	paths     MediaPathRewriter
	thumbnail string
	logger    *zap.Logger
	now       func() time.Time
}

// NewJobService 创建 JobService 实例
func NewJobService(media *config.MediaConfig, repo *repository.Repository, logger *zap.Logger) JobService {
	return &jobService{
		repo:      repo,
		paths:     MediaPathRewriter{SharePrefix: media.SharePrefix, MediaPrefix: media.MediaPrefix},
		thumbnail: media.ThumbnailPrefix,
		logger:    logger,
		now:       time.Now,
	}
}

// ═══════════════════════════════════════════════════════════
// Assemble — 工单汇总
// ═══════════════════════════════════════════════════════════
//
// 步骤：核心记录 → 色版 → 稿件订单 → 生产阶段 → 交付 → 打样 → 统计
// 除核心记录外，每一步失败只留空对应字段并记录 warn 日志

func (s *jobService) Assemble(ctx context.Context, number string) (*dto.JobView, error) {
	if !ValidJobNumber(number) {
		return nil, ErrInvalidJobNumber
	}

	job, err := s.repo.Job.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.JobView{
				Number:     number,
				Known:      false,
				Colors:     []dto.ColorSwatch{},
				Stages:     []dto.StageView{},
				Deliveries: []dto.DeliveryView{},
			}, nil
		}
		s.logger.Error("查询工单失败", zap.String("job", number), zap.Error(err))
		return nil, pkgerrors.Unavailable("optimus", err)
	}

	view := &dto.JobView{
		Number:         job.Number,
		Known:          true,
		Lab:            job.Customer,
		Title1:         job.Title1,
		Title2:         job.Title2,
		Product:        job.Product,
		Material:       job.Material,
		ColorSpec:      job.Colors,
		QtyOrdered:     job.QtyOrdered,
		Status:         job.Status,
		Phase:          JobPhase(job.Status, job.Type),
		Type:           job.Type,
		OrderDate:      job.OrderDate,
		DeliveryDate:   job.DeliveryDate,
		VarnishMachine: bool(job.VarnishMachine),
		VarnishUV:      bool(job.VarnishUV),
		Braille:        bool(job.Braille),
		Notes:          job.Notes,
	}

	view.Colors = s.resolveColors(ctx, job)
	view.Order = s.resolveOrder(ctx, job)
	if view.Order.Path != "" && s.thumbnail != "" {
		view.Thumbnail = s.thumbnail + job.Number + ".jpg"
	}
	s.fillStages(ctx, job, view)
	s.fillDeliveries(ctx, job, view)
	view.Proof = s.resolveProof(ctx, job)
	view.Stats.PriorRegistrations = s.countPriorRegistrations(ctx, job)

	return view, nil
}

func (s *jobService) resolveColors(ctx context.Context, job *model.Job) []dto.ColorSwatch {
	names := DeriveColorNames(job.Colors)
	hexByName := make(map[string]string, len(names))

	colors, err := s.repo.Color.ListByNames(ctx, names)
	if err != nil {
		s.logger.Warn("查询色版参考表失败", zap.String("job", job.Number), zap.Error(err))
	}
	for _, c := range colors {
		hexByName[c.Name] = c.Hex
	}

	return BuildSwatches(names, hexByName)
}

// resolveOrder 先按子订单号查，位置为空再按项目号查
func (s *jobService) resolveOrder(ctx context.Context, job *model.Job) dto.OrderMeta {
	meta := dto.OrderMeta{SubOrderID: job.SubOrderID, ProjectID: job.ProjectID}

	location := ""
	if job.SubOrderID != "" {
		location = s.orderLocation(ctx, job.Number, "suborder", func() (*model.ExternalOrder, error) {
			return s.repo.ExternalOrder.GetBySubOrder(ctx, job.SubOrderID)
		})
	}
	if location == "" && job.ProjectID != "" {
		location = s.orderLocation(ctx, job.Number, "project", func() (*model.ExternalOrder, error) {
			return s.repo.ExternalOrder.GetByProject(ctx, job.ProjectID)
		})
	}

	meta.Path = s.paths.Rewrite(location)
	return meta
}

func (s *jobService) orderLocation(ctx context.Context, number, key string, fetch func() (*model.ExternalOrder, error)) string {
	order, err := fetch()
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("查询稿件订单失败", zap.String("job", number), zap.String("key", key), zap.Error(err))
		}
		return ""
	}
	return order.Location
}

func (s *jobService) fillStages(ctx context.Context, job *model.Job, view *dto.JobView) {
	view.Stages = []dto.StageView{}

	stages, err := s.repo.Stage.ListByJob(ctx, job.Number)
	if err != nil {
		s.logger.Warn("查询生产阶段失败", zap.String("job", job.Number), zap.Error(err))
		return
	}

	for i := range stages {
		view.Stages = append(view.Stages, toStageView(&stages[i]))
	}
	if current := CurrentStage(stages); current != nil {
		sv := toStageView(current)
		view.CurrentStage = &sv
	}
	view.Stats.StageCount = len(stages)
	view.Stats.WorkedMinutes = WorkedMinutes(stages)
}

func (s *jobService) fillDeliveries(ctx context.Context, job *model.Job, view *dto.JobView) {
	view.Deliveries = []dto.DeliveryView{}

	deliveries, err := s.repo.Delivery.ListTopLevelByJob(ctx, job.Number)
	if err != nil {
		s.logger.Warn("查询交付记录失败", zap.String("job", job.Number), zap.Error(err))
		return
	}

	deliveries = TopLevelDeliveries(deliveries)
	for i := range deliveries {
		view.Deliveries = append(view.Deliveries, toDeliveryView(&deliveries[i]))
		view.Stats.ScheduledQty += deliveries[i].Qty
	}
	if last := LastDelivery(deliveries); last != nil {
		dv := toDeliveryView(last)
		view.LastDelivery = &dv
	}
	view.Stats.DeliveryCount = len(deliveries)
}

func (s *jobService) resolveProof(ctx context.Context, job *model.Job) *dto.ProofView {
	proof, err := s.repo.Proof.GetByNumber(ctx, job.Number)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("查询打样记录失败", zap.String("job", job.Number), zap.Error(err))
		}
		return nil
	}
	return &dto.ProofView{State: proof.State, Version: proof.Version, ProofDate: proof.ProofDate}
}

// countPriorRegistrations 工单自带登记编码时直接计数，否则按工单号反查编码
func (s *jobService) countPriorRegistrations(ctx context.Context, job *model.Job) int64 {
	code := ""
	if job.RegCode != nil {
		code = *job.RegCode
	}
	if code == "" {
		reg, err := s.repo.Registration.FirstByJob(ctx, job.Number)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("反查登记编码失败", zap.String("job", job.Number), zap.Error(err))
			}
			return 0
		}
		code = reg.Code
	}
	if code == "" {
		return 0
	}

	count, err := s.repo.Registration.CountByCode(ctx, code)
	if err != nil {
		s.logger.Warn("统计登记次数失败", zap.String("job", job.Number), zap.Error(err))
		return 0
	}
	return count
}

// ────────────────────── List ──────────────────────

func (s *jobService) List(ctx context.Context, lab string, req *dto.JobListRequest) ([]dto.JobSummary, int64, error) {
	filters, err := buildJobFilters(lab, req, s.now())
	if err != nil {
		return nil, 0, err
	}

	offset, limit := req.Window()
	jobs, total, err := s.repo.Job.List(ctx, filters, offset, limit)
	if err != nil {
		s.logger.Error("查询工单列表失败", zap.String("lab", lab), zap.Error(err))
		return nil, 0, pkgerrors.Unavailable("optimus", err)
	}

	return s.toSummaries(ctx, lab, jobs), total, nil
}

func (s *jobService) toSummaries(ctx context.Context, lab string, jobs []model.Job) []dto.JobSummary {
	numbers := make([]string, 0, len(jobs))
	for _, j := range jobs {
		numbers = append(numbers, j.Number)
	}

	// 打样状态来自 Backstage，缺失或失败时留空
	proofState := make(map[string]string)
	proofs, err := s.repo.Proof.ListByNumbers(ctx, lab, numbers)
	if err != nil {
		s.logger.Warn("批量查询打样记录失败", zap.String("lab", lab), zap.Error(err))
	}
	for _, p := range proofs {
		proofState[p.Number] = p.State
	}

	result := make([]dto.JobSummary, 0, len(jobs))
	for _, j := range jobs {
		result = append(result, dto.JobSummary{
			Number:       j.Number,
			Title1:       j.Title1,
			Title2:       j.Title2,
			Product:      j.Product,
			Status:       j.Status,
			Phase:        JobPhase(j.Status, j.Type),
			Type:         j.Type,
			QtyOrdered:   j.QtyOrdered,
			OrderDate:    j.OrderDate,
			DeliveryDate: j.DeliveryDate,
			ProofState:   proofState[j.Number],
		})
	}
	return result
}

// buildJobFilters 各列表统一的状态过滤规则：
//   - production: j_status IN (0,10)
//   - proof:      j_status IN (0,10) 且 j_type LIKE '12%'
//   - delivered:  j_status IN (20,30,40)，按交货日期窗口，默认最近 30 天
func buildJobFilters(lab string, req *dto.JobListRequest, now time.Time) (*repository.JobListFilters, error) {
	filters := &repository.JobListFilters{Customer: lab}

	from, err := parseDay(req.From, now.Location())
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	to, err := parseDay(req.To, now.Location())
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if to != nil {
		end := to.AddDate(0, 0, 1) // 结束日期包含当天
		to = &end
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, ErrInvalidDateRange
	}

	switch req.Phase {
	case dto.PhaseDelivered:
		filters.Statuses = model.DeliveredStatuses
		if from == nil && to == nil {
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			start := today.AddDate(0, 0, -deliveredWindowDays)
			end := today.AddDate(0, 0, 1)
			from, to = &start, &end
		}
	case dto.PhaseProof:
		filters.Statuses = model.OpenStatuses
		filters.TypePrefix = model.ProofTypePrefix
	default:
		filters.Statuses = model.OpenStatuses
	}
	filters.From = from
	filters.To = to

	return filters, nil
}

func parseDay(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ────────────────────── Create / SaveAttributes ──────────────────────

func (s *jobService) Create(ctx context.Context, lab string, req *dto.CreateJobRequest) (*dto.JobView, error) {
	if !ValidJobNumber(req.Number) {
		return nil, ErrInvalidJobNumber
	}

	owner, err := s.repo.Job.GetCustomer(ctx, req.Number)
	if err == nil {
		if owner != lab {
			s.logger.Debug("新建工单被拒绝", zap.String("job", req.Number), zap.String("reason", "foreign_lab"))
			return nil, ErrJobDenied
		}
		return nil, ErrJobExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询工单失败", zap.String("job", req.Number), zap.Error(err))
		return nil, pkgerrors.Unavailable("optimus", err)
	}

	now := s.now()
	job := &model.Job{
		Number:    req.Number,
		Customer:  lab,
		Status:    model.JobStatusOrdered,
		OrderDate: &now,
	}
	applyAttributes(job, &req.JobAttributesRequest)

	if err := s.repo.Job.Create(ctx, job); err != nil {
		s.logger.Error("新建工单失败", zap.String("job", req.Number), zap.Error(err))
		return nil, pkgerrors.Unavailable("optimus", err)
	}

	s.logger.Info("新建工单", zap.String("job", job.Number), zap.String("lab", lab))
	return s.Assemble(ctx, job.Number)
}

func (s *jobService) SaveAttributes(ctx context.Context, number string, req *dto.JobAttributesRequest) (*dto.JobView, error) {
	if !ValidJobNumber(number) {
		return nil, ErrInvalidJobNumber
	}

	job, err := s.repo.Job.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		s.logger.Error("查询工单失败", zap.String("job", number), zap.Error(err))
		return nil, pkgerrors.Unavailable("optimus", err)
	}

	applyAttributes(job, req)

	if err := s.repo.Job.SaveAttributes(ctx, job); err != nil {
		s.logger.Error("保存工单属性失败", zap.String("job", number), zap.Error(err))
		return nil, pkgerrors.Unavailable("optimus", err)
	}

	return s.Assemble(ctx, number)
}

// applyAttributes 可编辑属性整体覆盖
func applyAttributes(job *model.Job, req *dto.JobAttributesRequest) {
	job.Title1 = req.Title1
	job.Title2 = req.Title2
	job.Product = req.Product
	job.Material = req.Material
	job.Colors = req.Colors
	job.QtyOrdered = req.QtyOrdered
	job.DeliveryDate = req.DeliveryDate
	job.VarnishMachine = model.YesNo(req.VarnishMachine)
	job.VarnishUV = model.YesNo(req.VarnishUV)
	job.Braille = model.YesNo(req.Braille)
	job.Notes = req.Notes
}
