package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"labportal/internal/dto"
	"labportal/internal/model"
	"labportal/internal/repository"
	pkgerrors "labportal/pkg/errors"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// exportRowLimit 单次导出的最大行数
const exportRowLimit = 5000

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
// 过滤规则与工单列表一致。
type ExportService interface {
	// ExportJobs 导出实验室工单列表为 Excel
	ExportJobs(ctx context.Context, lab string, req *dto.JobListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

var exportHeaders = []string{
	"Obra", "Título", "Título 2", "Produto", "Material", "Cores",
	"Quantidade", "Estado", "Data encomenda", "Data entrega",
	"Verniz máquina", "Verniz UV", "Braille",
}

func (s *exportService) ExportJobs(ctx context.Context, lab string, req *dto.JobListRequest) (*bytes.Buffer, string, error) {
	now := s.now()
	filters, err := buildJobFilters(lab, req, now)
	if err != nil {
		return nil, "", err
	}

	jobs, _, err := s.repo.Job.List(ctx, filters, 0, exportRowLimit)
	if err != nil {
		s.logger.Error("查询导出工单失败", zap.String("lab", lab), zap.Error(err))
		return nil, "", pkgerrors.Unavailable("optimus", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Obras"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "C", 32)
	f.SetColWidth(sheetName, "D", "F", 20)
	f.SetColWidth(sheetName, "G", "M", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range exportHeaders {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(exportHeaders)-1), 1), headerStyle)
	f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	row := 2
	for i := range jobs {
		writeJobRow(f, sheetName, row, &jobs[i])
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	phase := req.Phase
	if phase == "" {
		phase = dto.PhaseProduction
	}
	filename := fmt.Sprintf("obras_%s_%s_%s.xlsx", lab, phase, now.Format("20060102"))
	return buf, filename, nil
}

func writeJobRow(f *excelize.File, sheet string, row int, j *model.Job) {
	values := []interface{}{
		j.Number, j.Title1, j.Title2, j.Product, j.Material, j.Colors,
		j.QtyOrdered, JobPhase(j.Status, j.Type), formatDay(j.OrderDate), formatDay(j.DeliveryDate),
		model.FormatYesNo(bool(j.VarnishMachine)), model.FormatYesNo(bool(j.VarnishUV)), model.FormatYesNo(bool(j.Braille)),
	}
	for i, v := range values {
		f.SetCellValue(sheet, cell(colName(i), row), v)
	}
}

// ── 辅助函数 ──

func formatDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
